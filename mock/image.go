package mock

import (
	"context"

	"github.com/fwojciec/referent"
)

var _ referent.ImageClient = (*ImageClient)(nil)

// ImageClient is a mock implementation of referent.ImageClient.
type ImageClient struct {
	GenerateFn func(ctx context.Context, model, prompt string) (*referent.Image, error)
}

func (c *ImageClient) Generate(ctx context.Context, model, prompt string) (*referent.Image, error) {
	return c.GenerateFn(ctx, model, prompt)
}

var _ referent.Illustrator = (*Illustrator)(nil)

// Illustrator is a mock implementation of referent.Illustrator.
type Illustrator struct {
	IllustrateFn func(ctx context.Context, prompt string) (*referent.Image, error)
}

func (i *Illustrator) Illustrate(ctx context.Context, prompt string) (*referent.Image, error) {
	return i.IllustrateFn(ctx, prompt)
}
