package domain

// ChantFields holds the values of one chant record.
// It is the mutable builder form; a Chant only hands out copies of it.
type ChantFields struct {
	// Mandatory.
	CantusID  string
	Incipit   string
	Siglum    string
	SrcLink   string
	ChantLink string
	Folio     string
	DB        string

	// Optional.
	Sequence string
	Feast    string
	Genre    string
	Office   string
	Position string
	MelodyID string
	Image    string
	Mode     string
	FullText string
	Melody   string
	Century  string

	// Rite is derived from Genre when empty.
	Rite string
}

// Get reads a field by schema name.
func (f *ChantFields) Get(field string) (string, bool) {
	acc, ok := chantAccessors[field]
	if !ok {
		return "", false
	}
	return acc.get(f), true
}

// Set writes a field by schema name.
func (f *ChantFields) Set(field, value string) error {
	acc, ok := chantAccessors[field]
	if !ok {
		return &InvalidFieldError{Field: field}
	}
	return acc.set(f, value)
}

// Chant is one occurrence of a chant in one source.
type Chant struct {
	fields ChantFields
	melody *Melody
	locked bool
}

// NewChant validates mandatory fields, derives the rite and attaches a
// melody when notation is present.
func NewChant(fields ChantFields) (*Chant, error) {
	for _, name := range ChantSchema.Mandatory {
		if v, _ := fields.Get(name); IsMissing(v) {
			return nil, &SchemaValidationError{Kind: KindChant, Field: name}
		}
	}
	c := &Chant{fields: fields}
	if c.fields.Rite == "" {
		c.fields.Rite, _ = RiteForGenre(c.fields.Genre)
	}
	c.buildMelody()
	return c, nil
}

func (c *Chant) buildMelody() {
	if c.fields.Melody == "" {
		c.melody = nil
		return
	}
	c.melody = NewMelody(c.fields.Melody, c.fields.ChantLink, c.fields.CantusID, c.fields.Mode)
}

// Fields returns a copy of the chant's values.
func (c *Chant) Fields() ChantFields { return c.fields }

// Get reads a field by schema name.
func (c *Chant) Get(field string) (string, bool) { return c.fields.Get(field) }

// Set writes a field by schema name. Setting the melody rebuilds the
// attached Melody.
func (c *Chant) Set(field, value string) error {
	if c.locked {
		return lockedError("chant", field)
	}
	if err := c.fields.Set(field, value); err != nil {
		return err
	}
	if field == FieldMelody {
		c.buildMelody()
	}
	return nil
}

// CantusID returns the Cantus ID.
func (c *Chant) CantusID() string { return c.fields.CantusID }

// ChantLink returns the chant's identity key.
func (c *Chant) ChantLink() string { return c.fields.ChantLink }

// SrcLink returns the key of the source the chant belongs to.
func (c *Chant) SrcLink() string { return c.fields.SrcLink }

// Siglum returns the source siglum.
func (c *Chant) Siglum() string { return c.fields.Siglum }

// Rite returns the explicit or derived rite.
func (c *Chant) Rite() string { return c.fields.Rite }

// HasMelody reports whether the chant carries notation.
func (c *Chant) HasMelody() bool { return c.melody != nil }

// Melody returns the attached melody, or nil.
func (c *Chant) Melody() *Melody { return c.melody }

// Locked reports whether the chant rejects modification.
func (c *Chant) Locked() bool { return c.locked }

// Lock freezes the chant and its melody. Locking is one-way.
func (c *Chant) Lock() {
	c.locked = true
	if c.melody != nil {
		c.melody.Lock()
	}
}

// ExportRow returns the chant's values in export column order.
func (c *Chant) ExportRow() []string {
	row := make([]string, len(ChantSchema.Export))
	for i, name := range ChantSchema.Export {
		row[i], _ = c.fields.Get(name)
	}
	return row
}

func (c *Chant) String() string {
	return c.fields.ChantLink + " : " + c.fields.CantusID
}
