package domain

import (
	"context"
	"strings"
)

// VolpianoNotes are the plain volpiano pitches, lowest first.
const VolpianoNotes = "89abcdefghjklmnopqrs"

// Melody is the volpiano notation attached to one chant.
// It refers back to its chant by chantlink only; the chant owns the melody.
type Melody struct {
	chantLink   string
	cantusID    string
	mode        string
	rawVolpiano string
	volpiano    string
	locked      bool
}

// NewMelody creates a melody whose working copy starts as the raw notation.
func NewMelody(volpiano, chantLink, cantusID, mode string) *Melody {
	return &Melody{
		chantLink:   chantLink,
		cantusID:    cantusID,
		mode:        mode,
		rawVolpiano: volpiano,
		volpiano:    volpiano,
	}
}

// ChantLink identifies the owning chant.
func (m *Melody) ChantLink() string { return m.chantLink }

// CantusID returns the Cantus ID of the owning chant.
func (m *Melody) CantusID() string { return m.cantusID }

// Mode returns the chant mode, if known.
func (m *Melody) Mode() string { return m.mode }

// RawVolpiano returns the notation as loaded. It never changes.
func (m *Melody) RawVolpiano() string { return m.rawVolpiano }

// Volpiano returns the working copy of the notation.
func (m *Melody) Volpiano() string { return m.volpiano }

// String returns the working notation.
func (m *Melody) String() string { return m.volpiano }

// Locked reports whether the melody rejects modification.
func (m *Melody) Locked() bool { return m.locked }

// Lock freezes the melody. There is no way back.
func (m *Melody) Lock() { m.locked = true }

// Rewrite replaces the working notation with fn applied to it.
func (m *Melody) Rewrite(fn func(string) (string, error)) error {
	if m.locked {
		return lockedError("melody", "volpiano")
	}
	out, err := fn(m.volpiano)
	if err != nil {
		return err
	}
	m.volpiano = out
	return nil
}

// Reset restores the working notation to the raw notation.
func (m *Melody) Reset() error {
	if m.locked {
		return lockedError("melody", "volpiano")
	}
	m.volpiano = m.rawVolpiano
	return nil
}

// Range reports how many steps below and above its final note the working
// notation reaches. Only plain pitches count; liquescents are skipped.
// ok is false when the notation has no plain pitch.
func (m *Melody) Range() (below, above int, ok bool) {
	lowest, highest, final := -1, -1, -1
	for _, r := range m.volpiano {
		p := strings.IndexRune(VolpianoNotes, r)
		if p < 0 {
			continue
		}
		if lowest < 0 || p < lowest {
			lowest = p
		}
		if p > highest {
			highest = p
		}
		final = p
	}
	if final < 0 {
		return 0, 0, false
	}
	return final - lowest, highest - final, true
}

type chantTextKey struct{}

// WithChantText returns a context carrying the full text of the chant whose
// melody is being rewritten.
func WithChantText(ctx context.Context, text string) context.Context {
	return context.WithValue(ctx, chantTextKey{}, text)
}

// ChantTextFrom returns the chant text stored by WithChantText.
func ChantTextFrom(ctx context.Context) (string, bool) {
	text, ok := ctx.Value(chantTextKey{}).(string)
	return text, ok && text != ""
}
