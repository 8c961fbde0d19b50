package meta

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"

	"github.com/jordyarms/everyday/internal/core/domain"
	"github.com/jordyarms/everyday/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.MetadataExtractor = (*Extractor)(nil)

// maxPageBytes caps how much of a page is parsed.
const maxPageBytes = 10 << 20

const jsonLDType = "application/ld+json"

// Extractor reads page metadata from HTML.
type Extractor struct{}

// New creates a metadata extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract parses an HTML document and collects its metadata.
func (e *Extractor) Extract(r io.Reader, contentType string) (domain.PageMetadata, error) {
	utf8Reader, err := charset.NewReader(io.LimitReader(r, maxPageBytes), contentType)
	if err != nil {
		return domain.PageMetadata{}, fmt.Errorf("detecting charset: %w", err)
	}

	doc, err := html.Parse(utf8Reader)
	if err != nil {
		return domain.PageMetadata{}, fmt.Errorf("parsing HTML: %w", err)
	}

	var c collector
	c.walk(doc)
	return c.meta, nil
}

// collector gathers the first occurrence of each field during a walk.
type collector struct {
	meta      domain.PageMetadata
	haveTitle bool
	haveLD    bool
}

func (c *collector) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Title:
			if !c.haveTitle {
				c.haveTitle = true
				c.meta.Title = strings.TrimSpace(textOf(n))
			}
		case atom.Meta:
			c.metaTag(n)
		case atom.Script:
			if !c.haveLD && strings.EqualFold(strings.TrimSpace(attr(n, "type")), jsonLDType) {
				c.haveLD = true
				c.meta.JSONLD = compactJSON(textOf(n))
			}
		case atom.Svg:
			// SVG carries its own <title> elements.
			return
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.walk(child)
	}
}

// metaTag records a <meta> element's content in the first empty field
// it names.
func (c *collector) metaTag(n *html.Node) {
	content, ok := attrOK(n, "content")
	if !ok {
		return
	}

	var field *string
	switch strings.ToLower(attr(n, "name")) {
	case "description":
		field = &c.meta.Description
	case "keywords":
		field = &c.meta.Keywords
	}
	switch strings.ToLower(attr(n, "property")) {
	case "article:published_time":
		field = &c.meta.PublishedDate
	case "og:title":
		field = &c.meta.OGTitle
	case "og:description":
		field = &c.meta.OGDescription
	case "og:image":
		field = &c.meta.OGImage
	case "og:url":
		field = &c.meta.OGURL
	}

	if field != nil && *field == "" {
		*field = content
	}
}

// textOf concatenates the text children of n.
func textOf(n *html.Node) string {
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			b.WriteString(child.Data)
		}
	}
	return b.String()
}

func attr(n *html.Node, key string) string {
	v, _ := attrOK(n, key)
	return v
}

func attrOK(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// compactJSON re-encodes a JSON document without insignificant whitespace.
// Invalid JSON yields an empty string.
func compactJSON(s string) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(strings.TrimSpace(s))); err != nil {
		return ""
	}
	return buf.String()
}
