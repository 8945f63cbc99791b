package docdig

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// Links are preserved as Markdown references and lines are never wrapped.
	Convert(html string) (string, error)
}
