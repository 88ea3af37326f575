// Package literalgen writes Go source declaring cutf8.CUtf8 literals, with validation done at generation time so the
// generated declarations cost nothing at runtime.
package literalgen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/tetratelabs/cutf8"
)

// Entry is one literal to declare.
type Entry struct {
	// Name is the Go identifier of the declared variable.
	Name string `mapstructure:"name"`

	// Value is the content, without a trailing nul. It must be UTF-8 and must not contain a nul byte.
	Value string `mapstructure:"value"`

	// Doc is an optional doc comment, without the leading "//".
	Doc string `mapstructure:"doc"`
}

// ErrNoEntries is returned by Generate when there is nothing to declare.
var ErrNoEntries = errors.New("no literals to generate")

// Generate returns a gofmt-ed Go file declaring each entry as a cutf8.CUtf8 variable, sorted by name.
//
// Each value is checked with cutf8.New, so a value with an interior nul or invalid UTF-8 fails here rather than
// becoming an ambiguous C string at runtime.
func Generate(c *Config, entries []Entry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	if !isIdentifier(c.packageName) {
		return nil, fmt.Errorf("invalid package name %q", c.packageName)
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for i, e := range sorted {
		if !isIdentifier(e.Name) {
			return nil, fmt.Errorf("invalid literal name %q", e.Name)
		}
		if i > 0 && sorted[i-1].Name == e.Name {
			return nil, fmt.Errorf("duplicate literal name %q", e.Name)
		}
		if _, err := cutf8.New(e.Value); err != nil {
			return nil, fmt.Errorf("literal %s: %w", e.Name, err)
		}
	}

	qualifier := path.Base(c.importPath)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by %s. DO NOT EDIT.\n\n", c.generator)
	if c.buildTags != "" {
		fmt.Fprintf(&buf, "//go:build %s\n\n", c.buildTags)
	}
	fmt.Fprintf(&buf, "package %s\n\n", c.packageName)
	fmt.Fprintf(&buf, "import %q\n\n", c.importPath)
	buf.WriteString("var (\n")
	for _, e := range sorted {
		for _, line := range docLines(e.Doc) {
			fmt.Fprintf(&buf, "\t// %s\n", line)
		}
		fmt.Fprintf(&buf, "\t%s = %s.UncheckedFromString(%s)\n", e.Name, qualifier, strconv.Quote(e.Value+"\x00"))
	}
	buf.WriteString(")\n")

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}
	return src, nil
}

func isIdentifier(name string) bool {
	return token.IsIdentifier(name)
}

func docLines(doc string) []string {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return nil
	}
	lines := strings.Split(doc, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return lines
}
