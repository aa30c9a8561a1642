package transforms

import (
	"github.com/custodia-labs/cantus-corpus/internal/core/ports/driven"
	"github.com/custodia-labs/cantus-corpus/internal/transforms/volpiano"
)

// RegisterDefaults registers the built-in volpiano transformers.
func RegisterDefaults(r *Registry) {
	r.Register(volpiano.CleanName, buildClean)
	r.Register(volpiano.ExpandAccidentalsName, buildExpandAccidentals)
	r.Register(volpiano.NormalizeLiquescentsName, func(map[string]any) (driven.MelodyTransformer, error) {
		return volpiano.NormalizeLiquescents{}, nil
	})
	r.Register(volpiano.DiscardDifferentiaName, func(map[string]any) (driven.MelodyTransformer, error) {
		return volpiano.DiscardDifferentia{}, nil
	})
	r.Register(volpiano.StripBoundariesName, func(map[string]any) (driven.MelodyTransformer, error) {
		return volpiano.StripBoundaries{}, nil
	})
}

// DefaultRegistry returns a registry with the built-in transformers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

// buildClean supports:
//   - allowed_chars (string): kept characters (default: pitches, liquescents, accidentals)
//   - keep_boundaries (bool): keep boundaries (default: false)
//   - neume_boundary, syllable_boundary, word_boundary (string): boundary marks (default: " ")
//   - keep_bars (bool): keep bar lines (default: false)
//   - allowed_bars (string): bar lines kept (default: "345")
//   - bar (string): bar mark (default: "|")
func buildClean(cfg map[string]any) (driven.MelodyTransformer, error) {
	var opts []volpiano.CleanOption
	if chars, ok := getString(cfg, "allowed_chars"); ok {
		opts = append(opts, volpiano.AllowedChars(chars))
	}
	if getBool(cfg, "keep_boundaries") {
		opts = append(opts, volpiano.KeepBoundaries())
	}
	neume, hasNeume := getString(cfg, "neume_boundary")
	syllable, hasSyllable := getString(cfg, "syllable_boundary")
	word, hasWord := getString(cfg, "word_boundary")
	if hasNeume || hasSyllable || hasWord {
		opts = append(opts, volpiano.BoundaryMarks(
			orDefault(neume, hasNeume, " "),
			orDefault(syllable, hasSyllable, " "),
			orDefault(word, hasWord, " "),
		))
	}
	if getBool(cfg, "keep_bars") {
		opts = append(opts, volpiano.KeepBars())
	}
	if bars, ok := getString(cfg, "allowed_bars"); ok {
		opts = append(opts, volpiano.AllowedBars(bars))
	}
	if bar, ok := getString(cfg, "bar"); ok {
		opts = append(opts, volpiano.BarMark(bar))
	}
	return volpiano.NewClean(opts...), nil
}

// buildExpandAccidentals supports:
//   - omit_notes (bool): write the flat alone for flattened notes (default: false)
//   - barlines (string): bar lines ending a flat's scope (default: "3456")
//   - apply_once_only (bool): a flat alters one note only (default: false)
func buildExpandAccidentals(cfg map[string]any) (driven.MelodyTransformer, error) {
	var opts []volpiano.ExpandOption
	if getBool(cfg, "omit_notes") {
		opts = append(opts, volpiano.OmitNotes())
	}
	if bars, ok := getString(cfg, "barlines"); ok {
		opts = append(opts, volpiano.ScopeBarlines(bars))
	}
	if getBool(cfg, "apply_once_only") {
		opts = append(opts, volpiano.ApplyOnceOnly())
	}
	return volpiano.NewExpandAccidentals(opts...), nil
}

func getBool(cfg map[string]any, key string) bool {
	v, _ := cfg[key].(bool)
	return v
}

func getString(cfg map[string]any, key string) (string, bool) {
	v, ok := cfg[key].(string)
	return v, ok
}

func orDefault(v string, ok bool, def string) string {
	if ok {
		return v
	}
	return def
}
