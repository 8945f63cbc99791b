package docdig

// Document is the structured content extracted from one HTML page.
// It is derived deterministically from the page body and never mutated
// after creation.
type Document struct {
	URL   string
	Title string

	// Body is the normalized Markdown rendering of the main content.
	Body string

	// ContentHTML is the serialized markup of the main-content node after
	// chrome (nav, scripts, footers, ...) has been stripped.
	ContentHTML string
}

// EventType identifies a progress signal emitted during a harvest.
type EventType int

// Progress signals. Decoration is the caller's responsibility.
const (
	EventTryingSitemap EventType = iota
	EventSitemapFound
	EventSitemapEmpty
	EventFallbackCrawl
	EventPageWritten
	EventPageFailed
	EventSeedFinished
)

// Event reports progress during a harvest.
type Event struct {
	Type EventType
	Seed string
	Host string

	// Seq is the sequence number of an accepted page within its session.
	// For sitemap runs Total holds the number of in-scope sitemap URLs.
	Seq   int
	Total int

	URL  string
	Path string // relative to the seed's output directory

	// Unchanged is set when diff mode left an existing file untouched.
	Unchanged bool

	Err error
}

// EventFunc is called as a harvest proceeds. It may be nil.
type EventFunc func(Event)

// Emit calls fn with e if fn is non-nil.
func (fn EventFunc) Emit(e Event) {
	if fn != nil {
		fn(e)
	}
}
