package referent

import "context"

// Markers returned when a field could not be located in the page.
// Callers must compare against these rather than test for emptiness.
const (
	TitleNotFound = "Title not found"
	BodyNotFound  = "Content not found"
)

// Article holds the data extracted from an article page.
type Article struct {
	// Title is the article headline, or TitleNotFound.
	Title string `json:"title"`

	// PublishedAt is the publish date exactly as it appears in the page.
	// It is not parsed or normalized. Nil when no date was found.
	PublishedAt *string `json:"date"`

	// Body is plain text with paragraphs separated by blank lines,
	// or BodyNotFound.
	Body string `json:"content"`
}

// HasTitle reports whether a title was found.
func (a *Article) HasTitle() bool {
	return a.Title != TitleNotFound
}

// HasBody reports whether body text was found.
func (a *Article) HasBody() bool {
	return a.Body != BodyNotFound
}

// Extractor locates the title, publish date and body of an article in raw HTML.
type Extractor interface {
	// Extract processes raw HTML and returns the article data.
	// Fields that cannot be located are set to their not-found markers;
	// an error is returned only when the input itself is unusable.
	Extract(html string) (*Article, error)
}

// ArticleParser fetches a page and extracts the article from it.
type ArticleParser interface {
	// Parse fetches the URL and extracts the article.
	// Returns EINVALID for a malformed URL and ETIMEOUT when the fetch
	// does not complete within the configured budget.
	Parse(ctx context.Context, url string) (*Article, error)
}
