package filter

import (
	"regexp"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/lecterndev/lectern/catalog"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	// Check cache if enabled
	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached.(CompiledFilter), nil
		}
	}

	// Compile with static environment for validation
	program, err := expr.Compile(expression,
		expr.Env(c.helperFuncs),
		expr.AllowUndefinedVariables(), // Allow lecture properties
		expr.AsBool(),                  // Ensure boolean result
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Evaluate evaluates the filter against a lecture
func (f *exprFilter) Evaluate(lecture catalog.Lecture) bool {
	env := createRuntimeEnvironment(lecture)

	result, err := expr.Run(f.program, env)
	if err != nil {
		// Skip lectures whose data makes the expression fail
		return false
	}

	// Result is guaranteed to be bool due to AsBool() option during compilation
	return result.(bool)
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// createHelperFunctions creates the static helper functions used during compilation
func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)
	addHelperFunctions(funcs)
	return funcs
}

// addHelperFunctions adds all helper functions to the provided map
func addHelperFunctions(env map[string]any) {
	// String helpers
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["matches"] = func(str, pattern string) bool {
		matched, _ := regexp.MatchString(pattern, str)
		return matched
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	// Date helpers; publishedDate is a display string like 2024-01-01
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["now"] = time.Now
}

// createRuntimeEnvironment creates the runtime environment for filter evaluation
func createRuntimeEnvironment(lecture catalog.Lecture) map[string]any {
	env := make(map[string]any, 32)

	// Add helper functions
	addHelperFunctions(env)

	// Add lecture data
	env["Lecture"] = lecture

	// Lecture-specific helpers using closures
	env["hasConcept"] = createHasConceptFunc(lecture.KeyConcepts)
	env["conceptCount"] = createConceptCountFunc(lecture.KeyConcepts)

	// Direct lecture properties for convenience
	env["Slug"] = lecture.Slug
	env["Title"] = lecture.Title
	env["Description"] = lecture.Description
	env["Duration"] = lecture.Duration
	env["Image"] = lecture.Image
	env["PublishedDate"] = lecture.PublishedDate
	env["Views"] = lecture.Views
	env["AISummary"] = lecture.AISummary
	env["KeyConcepts"] = lecture.KeyConcepts

	return env
}

func createHasConceptFunc(concepts []catalog.KeyConcept) func(string) bool {
	// Pre-convert to lowercase for case-insensitive comparison
	lowerTitles := make([]string, len(concepts))
	for i, kc := range concepts {
		lowerTitles[i] = strings.ToLower(kc.Title)
	}
	return func(title string) bool {
		target := strings.ToLower(title)
		for _, t := range lowerTitles {
			if strings.Contains(t, target) {
				return true
			}
		}
		return false
	}
}

func createConceptCountFunc(concepts []catalog.KeyConcept) func() int {
	return func() int {
		return len(concepts)
	}
}
