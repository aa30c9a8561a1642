package domain

// SourceFields holds the values of one source record.
type SourceFields struct {
	// Mandatory.
	Title   string
	SrcLink string
	Siglum  string

	// Optional.
	Century    string
	Provenance string
	Cursus     string

	// NumericCentury is derived from Century when not supplied.
	NumericCentury *int
}

// Get reads a field by schema name.
func (f *SourceFields) Get(field string) (string, bool) {
	acc, ok := sourceAccessors[field]
	if !ok {
		return "", false
	}
	return acc.get(f), true
}

// Set writes a field by schema name.
func (f *SourceFields) Set(field, value string) error {
	acc, ok := sourceAccessors[field]
	if !ok {
		return &InvalidFieldError{Field: field}
	}
	return acc.set(f, value)
}

// Source is one manuscript or printed collection. SrcLink is its identity key.
type Source struct {
	fields SourceFields
	locked bool
}

// NewSource validates mandatory fields and creates a source.
func NewSource(fields SourceFields) (*Source, error) {
	for _, name := range SourceSchema.Mandatory {
		if v, _ := fields.Get(name); IsMissing(v) {
			return nil, &SchemaValidationError{Kind: KindSource, Field: name}
		}
	}
	if fields.NumericCentury != nil {
		n := *fields.NumericCentury
		fields.NumericCentury = &n
	}
	return &Source{fields: fields}, nil
}

// MinimalSource builds the placeholder created for a source known only
// from chant records.
func MinimalSource(srcLink, siglum string) *Source {
	return &Source{fields: SourceFields{Title: siglum, SrcLink: srcLink, Siglum: siglum}}
}

// Fields returns a copy of the source's values.
func (s *Source) Fields() SourceFields {
	f := s.fields
	if f.NumericCentury != nil {
		n := *f.NumericCentury
		f.NumericCentury = &n
	}
	return f
}

// Get reads a field by schema name.
func (s *Source) Get(field string) (string, bool) { return s.fields.Get(field) }

// Set writes a field by schema name.
func (s *Source) Set(field, value string) error {
	if s.locked {
		return lockedError("source", field)
	}
	return s.fields.Set(field, value)
}

// Title returns the source title.
func (s *Source) Title() string { return s.fields.Title }

// SrcLink returns the source's identity key.
func (s *Source) SrcLink() string { return s.fields.SrcLink }

// Siglum returns the source siglum.
func (s *Source) Siglum() string { return s.fields.Siglum }

// NumericCentury returns the numeric century, if known.
func (s *Source) NumericCentury() (int, bool) {
	if s.fields.NumericCentury == nil {
		return 0, false
	}
	return *s.fields.NumericCentury, true
}

// Locked reports whether the source rejects modification.
func (s *Source) Locked() bool { return s.locked }

// Lock freezes the source. Locking is one-way.
func (s *Source) Lock() { s.locked = true }

// ExportRow returns the source's values in export column order.
func (s *Source) ExportRow() []string {
	row := make([]string, len(SourceSchema.Export))
	for i, name := range SourceSchema.Export {
		row[i], _ = s.fields.Get(name)
	}
	return row
}

func (s *Source) String() string {
	return s.fields.Siglum
}
