package driven

// FrontMatterCodec renders and parses Markdown YAML front matter.
type FrontMatterCodec interface {
	// Render produces a complete Markdown document whose front matter holds
	// fields, with keys sorted.
	Render(fields map[string]any) ([]byte, error)

	// Parse extracts the front matter mapping from a Markdown document.
	// It returns ok=false when the document has no front matter block or
	// the block is not a mapping.
	Parse(content []byte) (fields map[string]any, ok bool, err error)
}
