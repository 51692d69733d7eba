package referent

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// Paragraphs in the output are separated by blank lines.
	Convert(html string) (string, error)
}
