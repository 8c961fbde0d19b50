// Package meta provides a MetadataExtractor for HTML pages.
// It reads the document title, standard meta tags, Open Graph properties
// and the first JSON-LD block, decoding the page from its declared charset.
package meta
