// Package volpiano implements notation transformers for volpiano melodies.
//
// Volpiano encodes a melody as a clef ('1'), pitch letters '8' to 's'
// (skipping 'i'), liquescent forms of those pitches, flats and naturals,
// bar lines '3' to '7', and '-' boundaries where one, two and three dashes
// separate neumes, syllables and words.
package volpiano

import (
	"context"
	"strings"
	"unicode"

	"github.com/custodia-labs/cantus-corpus/internal/core/domain"
)

const (
	// Notes are the plain pitches, lowest first.
	Notes = domain.VolpianoNotes
	// Liquescents are the liquescent pitches, aligned with Notes.
	Liquescents = "()ABCDEFGHJKLMNOPQRS"
	// Flats and Naturals mark accidentals. Each is aligned with the pitch
	// it alters in AccidentalNotes.
	Flats           = "iwxyz"
	Naturals        = "IWXYZ"
	AccidentalNotes = "jbemq"
	// Bars are the bar line characters.
	Bars = "34567"
	// Boundary separates neumes, syllables and words.
	Boundary = '-'
)

// Transformer names.
const (
	CleanName                = "clean"
	ExpandAccidentalsName    = "expand_accidentals"
	NormalizeLiquescentsName = "normalize_liquescents"
	DiscardDifferentiaName   = "discard_differentia"
	StripBoundariesName      = "strip_boundaries"
)

var liquescentReplacer = func() *strings.Replacer {
	pairs := make([]string, 0, 2*len(Liquescents))
	for i := range Liquescents {
		pairs = append(pairs, Liquescents[i:i+1], Notes[i:i+1])
	}
	return strings.NewReplacer(pairs...)
}()

// plain returns the plain pitch of a note or liquescent, or 0.
func plain(c byte) byte {
	if i := strings.IndexByte(Notes, c); i >= 0 {
		return Notes[i]
	}
	if i := strings.IndexByte(Liquescents, c); i >= 0 {
		return Notes[i]
	}
	return 0
}

// Clean keeps the allowed characters and optionally boundaries and bars.
// Everything else, clefs included, is dropped.
type Clean struct {
	allowed        string
	keepBoundaries bool
	neume          string
	syllable       string
	word           string
	keepBars       bool
	allowedBars    string
	bar            string
}

// CleanOption configures Clean.
type CleanOption func(*Clean)

// AllowedChars replaces the default set of kept characters (pitches,
// liquescents and accidentals).
func AllowedChars(chars string) CleanOption {
	return func(c *Clean) { c.allowed = chars }
}

// KeepBoundaries keeps boundaries, written as the boundary marks.
func KeepBoundaries() CleanOption {
	return func(c *Clean) { c.keepBoundaries = true }
}

// BoundaryMarks sets what neume, syllable and word boundaries are written
// as. All three default to a space.
func BoundaryMarks(neume, syllable, word string) CleanOption {
	return func(c *Clean) { c.neume, c.syllable, c.word = neume, syllable, word }
}

// KeepBars keeps the allowed bar lines, written as the bar mark.
func KeepBars() CleanOption {
	return func(c *Clean) { c.keepBars = true }
}

// AllowedBars sets which bar lines survive KeepBars. Defaults to "345".
func AllowedBars(bars string) CleanOption {
	return func(c *Clean) { c.allowedBars = bars }
}

// BarMark sets what kept bar lines are written as. Defaults to "|".
func BarMark(bar string) CleanOption {
	return func(c *Clean) { c.bar = bar }
}

// NewClean creates a Clean transformer.
func NewClean(opts ...CleanOption) Clean {
	c := Clean{
		allowed:     Notes + Liquescents + Flats + Naturals,
		neume:       " ",
		syllable:    " ",
		word:        " ",
		allowedBars: "345",
		bar:         "|",
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Name implements driven.MelodyTransformer.
func (Clean) Name() string { return CleanName }

// Transform implements driven.MelodyTransformer.
func (c Clean) Transform(_ context.Context, v string) (string, error) {
	var b strings.Builder
	b.Grow(len(v))
	dashes := 0
	flush := func() {
		if c.keepBoundaries {
			switch {
			case dashes == 1:
				b.WriteString(c.neume)
			case dashes == 2:
				b.WriteString(c.syllable)
			case dashes >= 3:
				b.WriteString(c.word)
			}
		}
		dashes = 0
	}
	for _, r := range v {
		if r == Boundary {
			dashes++
			continue
		}
		flush()
		switch {
		case strings.ContainsRune(c.allowed, r):
			b.WriteRune(r)
		case c.keepBars && strings.ContainsRune(c.allowedBars, r):
			b.WriteString(c.bar)
		}
	}
	flush()
	return b.String(), nil
}

// ExpandAccidentals writes an accidental before every note in its scope.
// A flat holds until a natural for the same pitch or one of the barlines.
type ExpandAccidentals struct {
	omitNotes     bool
	barlines      string
	applyOnceOnly bool
}

// ExpandOption configures ExpandAccidentals.
type ExpandOption func(*ExpandAccidentals)

// OmitNotes writes the flat alone in place of each flattened note.
func OmitNotes() ExpandOption {
	return func(e *ExpandAccidentals) { e.omitNotes = true }
}

// ScopeBarlines sets the bar lines that end a flat's scope. Defaults to "3456".
func ScopeBarlines(bars string) ExpandOption {
	return func(e *ExpandAccidentals) { e.barlines = bars }
}

// ApplyOnceOnly ends a flat's scope after the first note it alters.
func ApplyOnceOnly() ExpandOption {
	return func(e *ExpandAccidentals) { e.applyOnceOnly = true }
}

// NewExpandAccidentals creates an ExpandAccidentals transformer.
func NewExpandAccidentals(opts ...ExpandOption) ExpandAccidentals {
	e := ExpandAccidentals{barlines: "3456"}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Name implements driven.MelodyTransformer.
func (ExpandAccidentals) Name() string { return ExpandAccidentalsName }

// Transform implements driven.MelodyTransformer.
func (e ExpandAccidentals) Transform(_ context.Context, v string) (string, error) {
	active := make(map[byte]byte)
	var b strings.Builder
	b.Grow(2 * len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if f := strings.IndexByte(Flats, c); f >= 0 {
			target := AccidentalNotes[f]
			active[target] = c
			// The note right after writes the flat itself.
			if i+1 < len(v) && plain(v[i+1]) == target {
				continue
			}
			b.WriteByte(c)
			continue
		}
		if n := strings.IndexByte(Naturals, c); n >= 0 {
			delete(active, AccidentalNotes[n])
			b.WriteByte(c)
			continue
		}
		if strings.IndexByte(e.barlines, c) >= 0 {
			clear(active)
			b.WriteByte(c)
			continue
		}
		p := plain(c)
		flat, ok := active[p]
		if p == 0 || !ok {
			b.WriteByte(c)
			continue
		}
		b.WriteByte(flat)
		if !e.omitNotes {
			b.WriteByte(c)
		}
		if e.applyOnceOnly {
			delete(active, p)
		}
	}
	return b.String(), nil
}

// NormalizeLiquescents writes every liquescent as its plain pitch.
type NormalizeLiquescents struct{}

// Name implements driven.MelodyTransformer.
func (NormalizeLiquescents) Name() string { return NormalizeLiquescentsName }

// Transform implements driven.MelodyTransformer.
func (NormalizeLiquescents) Transform(_ context.Context, v string) (string, error) {
	return liquescentReplacer.Replace(v), nil
}

// differentiaTexts are the vowel abbreviations sung on a differentia.
var differentiaTexts = []string{"euouae", "evovae"}

// differentiaSyllables is the syllable count of "e u o u a e".
const differentiaSyllables = 6

// finalSegment splits v at its last bar line before any trailing bars and
// boundaries. It returns the index of that bar line and the notation after
// it, or -1 when there is no such bar line.
func finalSegment(v string) (int, string) {
	core := strings.TrimRight(v, Bars+string(Boundary))
	at := strings.LastIndexAny(core, Bars)
	if at < 0 {
		return -1, ""
	}
	return at, core[at+1:]
}

// syllableCount counts the syllables of a stretch of notation. Syllables
// are separated by two or more boundaries and must hold a pitch.
func syllableCount(segment string) int {
	count := 0
	for _, syl := range strings.Split(segment, "--") {
		if strings.ContainsAny(syl, Notes+Liquescents) {
			count++
		}
	}
	return count
}

func lettersOnly(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HasDifferentia reports whether v ends with a differentia. With text the
// chant text must end with "euouae"; without it the notation after the
// last bar line must have exactly six syllables.
func HasDifferentia(v, text string) bool {
	at, segment := finalSegment(v)
	if at < 0 {
		return false
	}
	if text != "" {
		letters := lettersOnly(text)
		for _, d := range differentiaTexts {
			if strings.HasSuffix(letters, d) {
				return true
			}
		}
		return false
	}
	return syllableCount(segment) == differentiaSyllables
}

// StripDifferentia drops the differentia of v, keeping the bar line before it.
func StripDifferentia(v, text string) string {
	if !HasDifferentia(v, text) {
		return v
	}
	at, _ := finalSegment(v)
	return v[:at+1]
}

// DiscardDifferentia strips a trailing differentia. It uses the chant text
// carried by the context when there is one.
type DiscardDifferentia struct{}

// Name implements driven.MelodyTransformer.
func (DiscardDifferentia) Name() string { return DiscardDifferentiaName }

// Transform implements driven.MelodyTransformer.
func (DiscardDifferentia) Transform(ctx context.Context, v string) (string, error) {
	text, _ := domain.ChantTextFrom(ctx)
	return StripDifferentia(v, text), nil
}

// StripBoundaries removes '-' boundaries and leaves everything else.
type StripBoundaries struct{}

// Name implements driven.MelodyTransformer.
func (StripBoundaries) Name() string { return StripBoundariesName }

// Transform implements driven.MelodyTransformer.
func (StripBoundaries) Transform(_ context.Context, v string) (string, error) {
	return strings.ReplaceAll(v, string(Boundary), ""), nil
}
