package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumericCentury(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   int
		wantOK bool
	}{
		{"ordinal", "12th century", 12, true},
		{"year range", "1345 - 1390", 14, true},
		{"single digit", "9", 9, true},
		{"empty", "", 0, false},
		{"no digits", "unknown", 0, false},
		{"two digit range takes first", "11th-12th century", 11, true},
		{"two digits beat single digit", "9th or 10th", 10, true},
		{"several single digits fall through", "1 or 2", 0, false},
		{"single year", "ca. 1250", 13, true},
		{"first of several years", "1480, 1520", 15, true},
		{"three digit run ignored", "100", 0, false},
		{"five digit run ignored", "12345", 0, false},
		{"year with single digit", "1345 and 9", 9, true},
		{"embedded in words", "s.XII/13 ex", 13, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NumericCentury(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumericCenturyPtr(t *testing.T) {
	assert.Nil(t, NumericCenturyPtr(""))

	got := NumericCenturyPtr("12th century")
	if assert.NotNil(t, got) {
		assert.Equal(t, 12, *got)
	}
}
