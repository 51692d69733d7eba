package referent

import "context"

// Publisher posts generated content to an external channel.
type Publisher interface {
	// Publish posts text, with an optional image, and returns the
	// identifier of the created message.
	Publish(ctx context.Context, text string, image *Image) (string, error)
}
