package pipeline

import (
	"context"
	"net/http"
	"strings"

	"github.com/fwojciec/referent"
)

// Ensure Illustrator implements referent.Illustrator at compile time.
var _ referent.Illustrator = (*Illustrator)(nil)

// Illustrator generates an image by trying candidate models in order.
// The first model returning a valid image wins.
type Illustrator struct {
	Client referent.ImageClient
	Models []string

	// Loading is applied to a model that reports it is still loading
	// before moving on to the next model.
	Loading RetryPolicy

	Logger LogFunc
}

// NewIllustrator creates an Illustrator with the default models and
// loading retry policy.
func NewIllustrator(client referent.ImageClient) *Illustrator {
	return &Illustrator{
		Client:  client,
		Models:  referent.DefaultImageModels,
		Loading: DefaultLoadingRetry,
	}
}

// Illustrate generates an image for prompt.
//
// When every model fails, the returned error names all attempted models
// and carries the code, status and details of the last failure. An
// authentication failure stops the chain at once.
func (il *Illustrator) Illustrate(ctx context.Context, prompt string) (*referent.Image, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, referent.Errorf(referent.EINVALID, "prompt required")
	}
	if len(il.Models) == 0 {
		return nil, referent.Errorf(referent.EINVALID, "no image models configured")
	}

	var (
		attempted []string
		lastErr   error
	)
	for _, model := range il.Models {
		attempted = append(attempted, model)

		var img *referent.Image
		err := il.Loading.Do(ctx, func(ctx context.Context) error {
			var err error
			if img, err = il.Client.Generate(ctx, model, prompt); err != nil {
				return err
			}
			return img.Validate()
		}, loading, il.Logger)
		if err == nil {
			return img, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		lastErr = err
		if il.Logger != nil {
			il.Logger("model %s failed: %v", model, err)
		}
		if referent.ErrorCode(err) == referent.EUNAUTHORIZED {
			break
		}
	}

	return nil, &referent.Error{
		Code:    referent.ErrorCode(lastErr),
		Message: "all image models failed (" + strings.Join(attempted, ", ") + "): " + referent.ErrorMessage(lastErr),
		Status:  referent.ErrorStatus(lastErr),
		Details: referent.ErrorDetails(lastErr),
	}
}

// loading reports whether err means the model is warming up.
func loading(err error) bool {
	return referent.ErrorStatus(err) == http.StatusServiceUnavailable
}
