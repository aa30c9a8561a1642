package file

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/cantus-corpus/internal/core/domain"
	"github.com/custodia-labs/cantus-corpus/internal/core/ports/driven"
)

// Ensure the codecs implement the interface.
var (
	_ driven.FilterCodec = YAMLFilterCodec{}
	_ driven.FilterCodec = TOMLFilterCodec{}
)

// YAMLFilterCodec reads and writes filter documents as YAML.
type YAMLFilterCodec struct{}

// Format implements driven.FilterCodec.
func (YAMLFilterCodec) Format() string { return "yaml" }

// Encode implements driven.FilterCodec.
func (YAMLFilterCodec) Encode(w io.Writer, filter *domain.Filter) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(filter.Document()); err != nil {
		return fmt.Errorf("encoding filter %q: %w", filter.Name(), err)
	}
	return enc.Close()
}

// Decode implements driven.FilterCodec.
func (YAMLFilterCodec) Decode(r io.Reader, filter *domain.Filter) error {
	return decodeFilter(r, filter, yaml.Unmarshal)
}

// TOMLFilterCodec reads and writes filter documents as TOML.
type TOMLFilterCodec struct{}

// Format implements driven.FilterCodec.
func (TOMLFilterCodec) Format() string { return "toml" }

// Encode implements driven.FilterCodec.
func (TOMLFilterCodec) Encode(w io.Writer, filter *domain.Filter) error {
	if err := toml.NewEncoder(w).Encode(filter.Document()); err != nil {
		return fmt.Errorf("encoding filter %q: %w", filter.Name(), err)
	}
	return nil
}

// Decode implements driven.FilterCodec.
func (TOMLFilterCodec) Decode(r io.Reader, filter *domain.Filter) error {
	return decodeFilter(r, filter, toml.Unmarshal)
}

// FilterCodecFor picks a codec by file extension. Anything that is not
// .toml is treated as YAML.
func FilterCodecFor(path string) driven.FilterCodec {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return TOMLFilterCodec{}
	}
	return YAMLFilterCodec{}
}

type unmarshalFunc func(data []byte, v any) error

// decodeFilter checks the top-level keys before touching filter, so a
// rejected document leaves it unchanged.
func decodeFilter(r io.Reader, filter *domain.Filter, unmarshal unmarshalFunc) error {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return fmt.Errorf("%w: reading filter document: %v", domain.ErrConfiguration, err)
	}

	var top map[string]any
	if err := unmarshal(buf.Bytes(), &top); err != nil {
		return fmt.Errorf("%w: malformed filter document: %v", domain.ErrConfiguration, err)
	}
	for _, key := range domain.FilterDocumentKeys {
		if _, ok := top[key]; !ok {
			return fmt.Errorf("%w: filter document is missing %q", domain.ErrConfiguration, key)
		}
	}

	var doc domain.FilterDocument
	if err := unmarshal(buf.Bytes(), &doc); err != nil {
		return fmt.Errorf("%w: malformed filter document: %v", domain.ErrConfiguration, err)
	}
	return filter.Replace(doc)
}
