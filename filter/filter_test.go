package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lecterndev/lectern/catalog"
)

func testLectures() []catalog.Lecture {
	return []catalog.Lecture{
		{
			Slug:          "intro-to-systems",
			Title:         "Introduction to Systems",
			Description:   "Where it all begins",
			Duration:      "42:10",
			PublishedDate: "2024-01-01",
			Views:         "1,204",
			KeyConcepts: []catalog.KeyConcept{
				{Title: "Processes", Timestamp: "03:12"},
				{Title: "Virtual memory", Timestamp: "17:45"},
			},
		},
		{
			Slug:          "pointers-deep-dive",
			Title:         "Pointers Deep Dive",
			Description:   "Addresses and what lives there",
			Duration:      "55:02",
			PublishedDate: "2024-02-14",
			Views:         "987",
			KeyConcepts:   []catalog.KeyConcept{},
		},
	}
}

func TestCompile(t *testing.T) {
	compiler := NewExprCompiler()

	tests := []struct {
		name       string
		expression string
		wantErr    bool
	}{
		{
			name:       "simple title match",
			expression: `contains(Title, "systems")`,
			wantErr:    false,
		},
		{
			name:       "concept helper",
			expression: `hasConcept("memory")`,
			wantErr:    false,
		},
		{
			name:       "empty expression",
			expression: "   ",
			wantErr:    true,
		},
		{
			name:       "syntax error",
			expression: `contains(Title,`,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compiled, err := compiler.Compile(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.ErrorAs(t, err, &compErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expression, compiled.Expression())
		})
	}
}

func TestEvaluate(t *testing.T) {
	lectures := testLectures()

	tests := []struct {
		name       string
		expression string
		wantSlugs  []string
	}{
		{
			name:       "contains on title",
			expression: `contains(Title, "pointers")`,
			wantSlugs:  []string{"pointers-deep-dive"},
		},
		{
			name:       "hasConcept matches partial concept title",
			expression: `hasConcept("memory")`,
			wantSlugs:  []string{"intro-to-systems"},
		},
		{
			name:       "conceptCount",
			expression: `conceptCount() == 0`,
			wantSlugs:  []string{"pointers-deep-dive"},
		},
		{
			name:       "published date comparison",
			expression: `parseDate(PublishedDate) > parseDate("2024-01-31")`,
			wantSlugs:  []string{"pointers-deep-dive"},
		},
		{
			name:       "regex on slug",
			expression: `matches(Slug, "^intro-")`,
			wantSlugs:  []string{"intro-to-systems"},
		},
		{
			name:       "lecture struct access",
			expression: `Lecture.Duration == "42:10"`,
			wantSlugs:  []string{"intro-to-systems"},
		},
		{
			name:       "matches nothing",
			expression: `contains(Title, "quantum")`,
			wantSlugs:  nil,
		},
	}

	compiler := NewExprCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compiled, err := compiler.Compile(tt.expression)
			require.NoError(t, err)

			var got []string
			for _, lecture := range lectures {
				if compiled.Evaluate(lecture) {
					got = append(got, lecture.Slug)
				}
			}
			assert.Equal(t, tt.wantSlugs, got)
		})
	}
}

func TestParseAndCreateFilter(t *testing.T) {
	t.Run("empty expression matches everything", func(t *testing.T) {
		match, err := ParseAndCreateFilter("")
		require.NoError(t, err)
		assert.Len(t, Apply(testLectures(), match), 2)
	})

	t.Run("filter preserves catalog order", func(t *testing.T) {
		match, err := ParseAndCreateFilter(`contains(Description, "e")`)
		require.NoError(t, err)

		got := Apply(testLectures(), match)
		require.Len(t, got, 2)
		assert.Equal(t, "intro-to-systems", got[0].Slug)
		assert.Equal(t, "pointers-deep-dive", got[1].Slug)
	})
}

func TestCompilerCache(t *testing.T) {
	compiler := NewExprCompiler(WithCache(2))

	first, err := compiler.Compile(`contains(Title, "a")`)
	require.NoError(t, err)
	assert.Equal(t, 1, compiler.Size())

	// Same expression comes back from the cache
	second, err := compiler.Compile(`contains(Title, "a")`)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, compiler.Size())

	// Eviction beyond capacity
	_, err = compiler.Compile(`contains(Title, "b")`)
	require.NoError(t, err)
	_, err = compiler.Compile(`contains(Title, "c")`)
	require.NoError(t, err)
	assert.Equal(t, 2, compiler.Size())

	compiler.Clear()
	assert.Equal(t, 0, compiler.Size())
}
