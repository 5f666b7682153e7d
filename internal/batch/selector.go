package batch

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrNoCategories is returned when a Selector is built from an empty
// allow-list.
var ErrNoCategories = errors.New("batch: no material types selected")

// Selector matches material names against a category allow-list.
// A name matches when its upper-cased form contains any upper-cased
// category. Selector is safe for concurrent use.
type Selector struct {
	categories []string
}

// NewSelector builds a Selector. Blank categories are ignored.
func NewSelector(categories []string) (*Selector, error) {
	s := &Selector{}
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		s.categories = append(s.categories, upper(c))
	}
	if len(s.categories) == 0 {
		return nil, ErrNoCategories
	}
	return s, nil
}

// Match reports whether the material name is eligible.
func (s *Selector) Match(name string) bool {
	name = upper(name)
	for _, c := range s.categories {
		if strings.Contains(name, c) {
			return true
		}
	}
	return false
}

// Categories returns the upper-cased allow-list.
func (s *Selector) Categories() []string {
	return append([]string(nil), s.categories...)
}

// upper applies Unicode full case mapping. A Caser is stateful, so each
// call uses its own.
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}
