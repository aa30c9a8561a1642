package domain

import (
	"fmt"
	"sort"
	"strings"
)

// ValueSet is a set of field values.
type ValueSet map[string]struct{}

// NewValueSet builds a deduplicated set from values.
func NewValueSet(values ...string) ValueSet {
	s := make(ValueSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether v is in the set.
func (s ValueSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the values in lexical order.
func (s ValueSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Filter is a named include/exclude configuration over chant and source
// fields. It holds no data and can be applied to any number of corpora.
type Filter struct {
	name     string
	includes map[string]ValueSet
	excludes map[string]ValueSet
}

// NewFilter creates an empty filter.
func NewFilter(name string) *Filter {
	return &Filter{
		name:     name,
		includes: make(map[string]ValueSet),
		excludes: make(map[string]ValueSet),
	}
}

// Name returns the filter name.
func (f *Filter) Name() string { return f.name }

// AddValueInclude allows values for field. Sources or chants whose value is
// not among the allowed ones are discarded.
func (f *Filter) AddValueInclude(field string, values ...string) error {
	return addValues(f.includes, field, values)
}

// AddValueExclude forbids values for field.
func (f *Filter) AddValueExclude(field string, values ...string) error {
	return addValues(f.excludes, field, values)
}

func addValues(m map[string]ValueSet, field string, values []string) error {
	if !IsFilterField(field) {
		return &InvalidFieldError{Field: field}
	}
	set, ok := m[field]
	if !ok {
		set = make(ValueSet, len(values))
		m[field] = set
	}
	for _, v := range values {
		set[v] = struct{}{}
	}
	return nil
}

// DeleteField drops every constraint on field. Absent fields are ignored.
func (f *Filter) DeleteField(field string) {
	delete(f.includes, field)
	delete(f.excludes, field)
}

// Includes returns the allowed values for field.
func (f *Filter) Includes(field string) ValueSet { return f.includes[field] }

// Excludes returns the forbidden values for field.
func (f *Filter) Excludes(field string) ValueSet { return f.excludes[field] }

// IsEmpty reports whether the filter constrains nothing.
func (f *Filter) IsEmpty() bool {
	return len(f.includes) == 0 && len(f.excludes) == 0
}

// ConstrainedFields returns the fields that carry a non-empty include or
// exclude set and pass the given field predicate, sorted by name.
func (f *Filter) ConstrainedFields(recognised func(string) bool) []string {
	seen := make(map[string]struct{})
	for field, set := range f.includes {
		if len(set) > 0 && recognised(field) {
			seen[field] = struct{}{}
		}
	}
	for field, set := range f.excludes {
		if len(set) > 0 && recognised(field) {
			seen[field] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for field := range seen {
		out = append(out, field)
	}
	sort.Strings(out)
	return out
}

// Accepts reports whether a record passes the constraints on fields, reading
// values through get.
func (f *Filter) Accepts(fields []string, get func(string) (string, bool)) bool {
	for _, field := range fields {
		value, _ := get(field)
		if inc := f.includes[field]; len(inc) > 0 && !inc.Has(value) {
			return false
		}
		if exc := f.excludes[field]; len(exc) > 0 && exc.Has(value) {
			return false
		}
	}
	return true
}

// FilterDocument is the serialisable form of a Filter.
type FilterDocument struct {
	Name          string              `yaml:"name" toml:"name"`
	IncludeValues map[string][]string `yaml:"include_values" toml:"include_values"`
	ExcludeValues map[string][]string `yaml:"exclude_values" toml:"exclude_values"`
}

// FilterDocumentKeys are the top-level keys every filter document must carry.
var FilterDocumentKeys = []string{"name", "include_values", "exclude_values"}

// Document exports the filter state with values sorted.
func (f *Filter) Document() FilterDocument {
	doc := FilterDocument{
		Name:          f.name,
		IncludeValues: make(map[string][]string, len(f.includes)),
		ExcludeValues: make(map[string][]string, len(f.excludes)),
	}
	for field, set := range f.includes {
		doc.IncludeValues[field] = set.Sorted()
	}
	for field, set := range f.excludes {
		doc.ExcludeValues[field] = set.Sorted()
	}
	return doc
}

// Replace swaps the filter's name and both maps for those in doc.
// The filter is left untouched when doc names an unknown field.
func (f *Filter) Replace(doc FilterDocument) error {
	next := NewFilter(doc.Name)
	for field, values := range doc.IncludeValues {
		if err := next.AddValueInclude(field, values...); err != nil {
			return err
		}
	}
	for field, values := range doc.ExcludeValues {
		if err := next.AddValueExclude(field, values...); err != nil {
			return err
		}
	}
	*f = *next
	return nil
}

// String renders the filter configuration deterministically.
func (f *Filter) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "name: %s\n", f.name)
	writeSection(&b, "include_values", f.includes)
	writeSection(&b, "exclude_values", f.excludes)
	return strings.TrimRight(b.String(), "\n")
}

func writeSection(b *strings.Builder, title string, m map[string]ValueSet) {
	if len(m) == 0 {
		fmt.Fprintf(b, "%s: {}\n", title)
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	fields := make([]string, 0, len(m))
	for field := range m {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(b, "  %s: [%s]\n", field, strings.Join(m[field].Sorted(), ", "))
	}
}
