package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaFor(t *testing.T) {
	chant, ok := SchemaFor(KindChant)
	require.True(t, ok)
	assert.Equal(t, KindChant, chant.Kind)
	assert.Len(t, chant.Mandatory, 7)

	source, ok := SchemaFor(KindSource)
	require.True(t, ok)
	assert.Equal(t, []string{FieldTitle, FieldSrcLink, FieldSiglum}, source.Mandatory)

	_, ok = SchemaFor("melody")
	assert.False(t, ok)
}

func TestSchema_ExportExcludesRite(t *testing.T) {
	assert.NotContains(t, ChantSchema.Export, FieldRite)
	assert.True(t, ChantSchema.Has(FieldRite))
	assert.Contains(t, ChantFilterFields, FieldRite)
}

func TestSchema_EveryFieldHasAccessor(t *testing.T) {
	for _, field := range append(ChantSchema.Mandatory, ChantSchema.Optional...) {
		_, ok := chantAccessors[field]
		assert.True(t, ok, "chant field %s", field)
	}
	for _, field := range append(SourceSchema.Mandatory, SourceSchema.Optional...) {
		_, ok := sourceAccessors[field]
		assert.True(t, ok, "source field %s", field)
	}
}

func TestFilterFields(t *testing.T) {
	tests := []struct {
		field  string
		chant  bool
		source bool
	}{
		{FieldGenre, true, false},
		{FieldRite, true, false},
		{FieldTitle, false, true},
		{FieldProvenance, false, true},
		{FieldCentury, true, true},
		{FieldSrcLink, true, true},
		{"colour", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.chant, IsChantFilterField(tt.field))
			assert.Equal(t, tt.source, IsSourceFilterField(tt.field))
			assert.Equal(t, tt.chant || tt.source, IsFilterField(tt.field))
		})
	}
}
