package cutf8

// Mut is a mutable view of bytes that are valid UTF-8 followed by exactly one nul byte. It only allows edits that keep
// both properties.
type Mut struct {
	b []byte
}

// UncheckedMutFromBytes returns a Mut over b without checking UTF-8 validity or the trailing nul byte. The caller
// guarantees both.
func UncheckedMutFromBytes(b []byte) *Mut {
	return &Mut{b: b}
}

// View returns m as a read-only CUtf8 over the same memory. Later edits through m are visible in the view.
func (m *Mut) View() CUtf8 {
	if len(m.b) == 0 {
		return Empty
	}
	return UncheckedFromBytes(m.b)
}

// content excludes the nul, so no edit can touch it.
func (m *Mut) content() []byte {
	if len(m.b) == 0 {
		return nil
	}
	return m.b[:len(m.b)-1]
}

// MakeASCIIUpper converts ASCII 'a' to 'z' to upper case in place. Other bytes, including every byte of a multi-byte
// sequence, are left alone.
func (m *Mut) MakeASCIIUpper() {
	content := m.content()
	for i, c := range content {
		if 'a' <= c && c <= 'z' {
			content[i] = c - ('a' - 'A')
		}
	}
}

// MakeASCIILower converts ASCII 'A' to 'Z' to lower case in place.
func (m *Mut) MakeASCIILower() {
	content := m.content()
	for i, c := range content {
		if 'A' <= c && c <= 'Z' {
			content[i] = c + ('a' - 'A')
		}
	}
}
