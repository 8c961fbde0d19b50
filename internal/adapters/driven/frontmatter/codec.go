// Package frontmatter renders and parses YAML front matter in Markdown files.
package frontmatter

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jordyarms/everyday/internal/core/ports/driven"
)

// Ensure Codec implements the interface.
var _ driven.FrontMatterCodec = (*Codec)(nil)

const delimiter = "---"

// Codec is a YAML front matter codec backed by gopkg.in/yaml.v3.
type Codec struct{}

// New creates a front matter codec.
func New() *Codec {
	return &Codec{}
}

// Render produces "---\n<yaml>---\n\n". Map keys are emitted sorted.
func (c *Codec) Render(fields map[string]any) ([]byte, error) {
	if fields == nil {
		fields = map[string]any{}
	}

	body, err := yaml.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshalling front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(len(body) + 2*len(delimiter) + 3)
	buf.WriteString(delimiter + "\n")
	buf.Write(body)
	buf.WriteString(delimiter + "\n\n")
	return buf.Bytes(), nil
}

// Parse returns the mapping held between a leading "---" line and the next
// "---" or "..." line.
func (c *Codec) Parse(content []byte) (map[string]any, bool, error) {
	block, ok := splitFrontMatter(content)
	if !ok {
		return nil, false, nil
	}

	var data any
	if err := yaml.Unmarshal(block, &data); err != nil {
		return nil, false, fmt.Errorf("parsing front matter: %w", err)
	}

	fields, ok := toStringMap(data)
	return fields, ok, nil
}

// splitFrontMatter finds the YAML block. Line endings may be LF or CRLF.
func splitFrontMatter(content []byte) ([]byte, bool) {
	content = bytes.TrimPrefix(content, []byte("\xEF\xBB\xBF"))

	first, rest, _ := cutLine(content)
	if !isDelimiter(first, delimiter) {
		return nil, false
	}

	start := len(content) - len(rest)
	offset := start
	for len(rest) > 0 {
		var line []byte
		line, rest, _ = cutLine(rest)
		if isDelimiter(line, delimiter) || isDelimiter(line, "...") {
			return content[start:offset], true
		}
		offset = len(content) - len(rest)
	}
	return nil, false
}

// cutLine splits off the first line, without its terminator.
func cutLine(b []byte) (line, rest []byte, found bool) {
	line, rest, found = bytes.Cut(b, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r")), rest, found
}

func isDelimiter(line []byte, want string) bool {
	return string(bytes.TrimRight(line, " \t")) == want
}

// toStringMap normalises a decoded YAML mapping to map[string]any.
func toStringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}
