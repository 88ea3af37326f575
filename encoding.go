package cutf8

import (
	"encoding"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

var (
	_ encoding.TextMarshaler   = CUtf8{}
	_ encoding.TextUnmarshaler = (*CUtf8)(nil)
	_ json.Marshaler           = CUtf8{}
	_ json.Unmarshaler         = (*CUtf8)(nil)
	_ yaml.Marshaler           = CUtf8{}
	_ yaml.Unmarshaler         = (*CUtf8)(nil)
	_ encoding.TextMarshaler   = (*Buf)(nil)
	_ encoding.TextUnmarshaler = (*Buf)(nil)
)

// MarshalText implements encoding.TextMarshaler. The nul byte is not part of the text.
func (c CUtf8) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler with the same validation as New.
func (c *CUtf8) UnmarshalText(text []byte) error {
	v, err := New(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// MarshalJSON implements json.Marshaler, encoding the content as a JSON string.
func (c CUtf8) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON implements json.Unmarshaler. A JSON null leaves c unchanged.
func (c *CUtf8) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		return nil
	}
	return c.UnmarshalText([]byte(*s))
}

// MarshalYAML implements yaml.Marshaler, encoding the content as a YAML string.
func (c CUtf8) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for scalar nodes.
func (c *CUtf8) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return c.UnmarshalText([]byte(s))
}

// MarshalText implements encoding.TextMarshaler.
func (b *Buf) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, replacing the contents of b.
func (b *Buf) UnmarshalText(text []byte) error {
	v, err := New(string(text))
	if err != nil {
		return err
	}
	b.b = []byte(v.s)
	b.pending = nil
	return nil
}
