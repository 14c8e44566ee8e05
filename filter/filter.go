package filter

import (
	"strings"

	"github.com/lecterndev/lectern/catalog"
)

// defaultCompiler is shared so repeated list invocations reuse compiled
// programs via the LRU cache.
var defaultCompiler = NewExprCompiler(WithCache(32))

// ParseAndCreateFilter parses a filter expression and returns a filter function
func ParseAndCreateFilter(expression string) (func(catalog.Lecture) bool, error) {
	if strings.TrimSpace(expression) == "" {
		// Empty filter matches everything
		return func(catalog.Lecture) bool { return true }, nil
	}

	compiled, err := defaultCompiler.Compile(expression)
	if err != nil {
		return nil, err
	}

	return compiled.Evaluate, nil
}

// Apply returns the lectures matching the filter, preserving catalog order.
func Apply(lectures []catalog.Lecture, match func(catalog.Lecture) bool) []catalog.Lecture {
	var out []catalog.Lecture
	for _, lecture := range lectures {
		if match(lecture) {
			out = append(out, lecture)
		}
	}
	return out
}
