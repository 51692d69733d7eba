// Package huggingface implements referent.ImageClient against the
// Hugging Face Inference API.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/referent"
)

const (
	// DefaultBaseURL is the Inference API model endpoint prefix.
	DefaultBaseURL = "https://api-inference.huggingface.co/models/"

	// DefaultTimeout bounds one generation call. Diffusion models are slow.
	DefaultTimeout = 120 * time.Second

	maxImageSize   = 20 << 20
	maxDetailsSize = 500
)

// Ensure Client implements referent.ImageClient at compile time.
var _ referent.ImageClient = (*Client)(nil)

// Client calls text-to-image models hosted on Hugging Face.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/") + "/"
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a new Client.
// Returns EUNAUTHORIZED when no API key is configured.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, referent.Errorf(referent.EUNAUTHORIZED, "Hugging Face API key is not configured")
	}
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type generateRequest struct {
	Inputs string `json:"inputs"`
}

// Generate renders prompt with model and returns the image bytes.
func (c *Client) Generate(ctx context.Context, model, prompt string) (*referent.Image, error) {
	body, err := json.Marshal(generateRequest{Inputs: prompt})
	if err != nil {
		return nil, referent.Errorf(referent.EINTERNAL, "encoding request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+model, bytes.NewReader(body))
	if err != nil {
		return nil, referent.Errorf(referent.EINVALID, "invalid model %q", model)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportError(model, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxDetailsSize))
		return nil, referent.UpstreamErrorf(resp.StatusCode, string(snippet), "model %s: %s", model, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return nil, transportError(model, err)
	}

	img := &referent.Image{
		Data:        data,
		ContentType: contentType(resp.Header.Get("Content-Type"), data),
		Model:       model,
	}
	if err := img.Validate(); err != nil {
		return nil, err
	}
	return img, nil
}

// contentType returns the declared media type, sniffing the body when
// the header is missing.
func contentType(header string, data []byte) string {
	if header != "" {
		if mt, _, err := mime.ParseMediaType(header); err == nil {
			return mt
		}
	}
	if len(data) == 0 {
		return ""
	}
	mt, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	return mt
}

func transportError(model string, err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return referent.Errorf(referent.ETIMEOUT, "model %s: request timed out", model)
	case errors.Is(err, context.Canceled):
		return err
	default:
		return referent.Errorf(referent.ENETWORK, "model %s: %v", model, err)
	}
}
