package driven

import "context"

// BlobStore persists binary artifacts and returns stable URLs for them.
// Generated view images go through Upload before a ledger commit so that
// revisions never reference transient provider URLs.
type BlobStore interface {
	// Upload stores the data under fileName and returns the URL at which
	// it can later be fetched.
	Upload(ctx context.Context, data []byte, fileName string) (string, error)

	// Fetch retrieves a previously uploaded blob by its URL.
	Fetch(ctx context.Context, url string) ([]byte, error)
}
