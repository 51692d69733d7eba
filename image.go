package referent

import (
	"context"
	"encoding/base64"
	"strings"
)

// DefaultImageModels are the image models tried in order until one succeeds.
var DefaultImageModels = []string{
	"runwayml/stable-diffusion-v1-5",
	"stabilityai/stable-diffusion-2-1",
	"CompVis/stable-diffusion-v1-4",
	"deepseek-ai/Janus-Pro-7B",
}

// Image is a generated illustration.
type Image struct {
	Data        []byte
	ContentType string
	Model       string
}

// Validate returns EMALFORMED unless the image has an image content type
// and a non-empty body.
func (i *Image) Validate() error {
	if !strings.HasPrefix(i.ContentType, "image/") {
		return Errorf(EMALFORMED, "model %s returned content type %q, not an image", i.Model, i.ContentType)
	}
	if len(i.Data) == 0 {
		return Errorf(EMALFORMED, "model %s returned an empty image", i.Model)
	}
	return nil
}

// DataURL encodes the image as a data: URL.
func (i *Image) DataURL() string {
	return "data:" + i.ContentType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// ParseDataURL decodes a base64 data: URL produced by DataURL.
func ParseDataURL(s string) (*Image, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, Errorf(EINVALID, "image must be a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, Errorf(EINVALID, "image data URL has no payload")
	}
	contentType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, Errorf(EINVALID, "image data URL must be base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, Errorf(EINVALID, "image data URL is not valid base64")
	}
	img := &Image{Data: data, ContentType: contentType}
	if !strings.HasPrefix(contentType, "image/") || len(data) == 0 {
		return nil, Errorf(EINVALID, "data URL does not hold an image")
	}
	return img, nil
}

// ImageClient calls a single image-generation model.
type ImageClient interface {
	// Generate renders prompt with the given model.
	// A model that is still loading is reported as EUNAVAILABLE with
	// status 503.
	Generate(ctx context.Context, model, prompt string) (*Image, error)
}

// Illustrator produces an image for a prompt, trying candidate models in order.
type Illustrator interface {
	Illustrate(ctx context.Context, prompt string) (*Image, error)
}
