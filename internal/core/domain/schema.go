package domain

import (
	"slices"
	"strconv"
	"strings"
)

// EntityKind identifies a record type known to the schema registry.
type EntityKind string

const (
	// KindChant identifies chant records.
	KindChant EntityKind = "chant"

	// KindSource identifies source records.
	KindSource EntityKind = "source"
)

// Chant field names.
const (
	FieldCantusID  = "cantus_id"
	FieldIncipit   = "incipit"
	FieldSiglum    = "siglum"
	FieldSrcLink   = "srclink"
	FieldChantLink = "chantlink"
	FieldFolio     = "folio"
	FieldDB        = "db"
	FieldSequence  = "sequence"
	FieldFeast     = "feast"
	FieldGenre     = "genre"
	FieldOffice    = "office"
	FieldPosition  = "position"
	FieldMelodyID  = "melody_id"
	FieldImage     = "image"
	FieldMode      = "mode"
	FieldFullText  = "full_text"
	FieldMelody    = "melody"
	FieldCentury   = "century"
	FieldRite      = "rite"
)

// Source field names not shared with chants.
const (
	FieldTitle          = "title"
	FieldProvenance     = "provenance"
	FieldNumericCentury = "numeric_century"
	FieldCursus         = "cursus"
)

// Schema describes the fields of one entity kind.
type Schema struct {
	Kind EntityKind

	// Mandatory fields must be present and non-missing in every record.
	Mandatory []string

	// Optional fields are read when present.
	Optional []string

	// Export is the column order used when writing records out.
	Export []string
}

// ChantSchema is the schema of chant records.
var ChantSchema = Schema{
	Kind: KindChant,
	Mandatory: []string{
		FieldCantusID, FieldIncipit, FieldSiglum, FieldSrcLink,
		FieldChantLink, FieldFolio, FieldDB,
	},
	Optional: []string{
		FieldSequence, FieldFeast, FieldGenre, FieldOffice, FieldPosition,
		FieldMelodyID, FieldImage, FieldMode, FieldFullText, FieldMelody,
		FieldCentury, FieldRite,
	},
	// rite is derived and internal, so it is not exported.
	Export: []string{
		FieldCantusID, FieldIncipit, FieldSiglum, FieldSrcLink, FieldChantLink,
		FieldFolio, FieldDB, FieldSequence, FieldFeast, FieldGenre, FieldOffice,
		FieldPosition, FieldMelodyID, FieldImage, FieldMode, FieldFullText,
		FieldMelody, FieldCentury,
	},
}

// SourceSchema is the schema of source records.
var SourceSchema = Schema{
	Kind:      KindSource,
	Mandatory: []string{FieldTitle, FieldSrcLink, FieldSiglum},
	Optional:  []string{FieldCentury, FieldProvenance, FieldNumericCentury, FieldCursus},
	Export: []string{
		FieldTitle, FieldSrcLink, FieldSiglum, FieldCentury,
		FieldProvenance, FieldNumericCentury, FieldCursus,
	},
}

// SchemaFor returns the schema registered for kind.
func SchemaFor(kind EntityKind) (Schema, bool) {
	switch kind {
	case KindChant:
		return ChantSchema, true
	case KindSource:
		return SourceSchema, true
	default:
		return Schema{}, false
	}
}

// Has reports whether field belongs to the schema.
func (s Schema) Has(field string) bool {
	return slices.Contains(s.Mandatory, field) || slices.Contains(s.Optional, field)
}

// fieldAccessor reads and writes one field of a record without reflection.
type fieldAccessor[T any] struct {
	get func(*T) string
	set func(*T, string) error
}

func stringField[T any](ptr func(*T) *string) fieldAccessor[T] {
	return fieldAccessor[T]{
		get: func(r *T) string { return *ptr(r) },
		set: func(r *T, v string) error {
			*ptr(r) = v
			return nil
		},
	}
}

var chantAccessors = map[string]fieldAccessor[ChantFields]{
	FieldCantusID:  stringField(func(f *ChantFields) *string { return &f.CantusID }),
	FieldIncipit:   stringField(func(f *ChantFields) *string { return &f.Incipit }),
	FieldSiglum:    stringField(func(f *ChantFields) *string { return &f.Siglum }),
	FieldSrcLink:   stringField(func(f *ChantFields) *string { return &f.SrcLink }),
	FieldChantLink: stringField(func(f *ChantFields) *string { return &f.ChantLink }),
	FieldFolio:     stringField(func(f *ChantFields) *string { return &f.Folio }),
	FieldDB:        stringField(func(f *ChantFields) *string { return &f.DB }),
	FieldSequence:  stringField(func(f *ChantFields) *string { return &f.Sequence }),
	FieldFeast:     stringField(func(f *ChantFields) *string { return &f.Feast }),
	FieldGenre:     stringField(func(f *ChantFields) *string { return &f.Genre }),
	FieldOffice:    stringField(func(f *ChantFields) *string { return &f.Office }),
	FieldPosition:  stringField(func(f *ChantFields) *string { return &f.Position }),
	FieldMelodyID:  stringField(func(f *ChantFields) *string { return &f.MelodyID }),
	FieldImage:     stringField(func(f *ChantFields) *string { return &f.Image }),
	FieldMode:      stringField(func(f *ChantFields) *string { return &f.Mode }),
	FieldFullText:  stringField(func(f *ChantFields) *string { return &f.FullText }),
	FieldMelody:    stringField(func(f *ChantFields) *string { return &f.Melody }),
	FieldCentury:   stringField(func(f *ChantFields) *string { return &f.Century }),
	FieldRite:      stringField(func(f *ChantFields) *string { return &f.Rite }),
}

var sourceAccessors = map[string]fieldAccessor[SourceFields]{
	FieldTitle:      stringField(func(f *SourceFields) *string { return &f.Title }),
	FieldSrcLink:    stringField(func(f *SourceFields) *string { return &f.SrcLink }),
	FieldSiglum:     stringField(func(f *SourceFields) *string { return &f.Siglum }),
	FieldCentury:    stringField(func(f *SourceFields) *string { return &f.Century }),
	FieldProvenance: stringField(func(f *SourceFields) *string { return &f.Provenance }),
	FieldCursus:     stringField(func(f *SourceFields) *string { return &f.Cursus }),
	FieldNumericCentury: {
		get: func(f *SourceFields) string {
			if f.NumericCentury == nil {
				return ""
			}
			return strconv.Itoa(*f.NumericCentury)
		},
		set: func(f *SourceFields, v string) error {
			v = strings.TrimSpace(v)
			if v == "" {
				f.NumericCentury = nil
				return nil
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return ErrInvalidInput
			}
			f.NumericCentury = &n
			return nil
		},
	},
}

// ChantFilterFields lists the chant fields a filter may constrain.
var ChantFilterFields = append(slices.Clone(ChantSchema.Export), FieldRite)

// SourceFilterFields lists the source fields a filter may constrain.
var SourceFilterFields = slices.Clone(SourceSchema.Export)

// IsChantFilterField reports whether field can constrain chants.
func IsChantFilterField(field string) bool {
	return slices.Contains(ChantFilterFields, field)
}

// IsSourceFilterField reports whether field can constrain sources.
func IsSourceFilterField(field string) bool {
	return slices.Contains(SourceFilterFields, field)
}

// IsFilterField reports whether field is recognised by filters at all.
func IsFilterField(field string) bool {
	return IsChantFilterField(field) || IsSourceFilterField(field)
}
