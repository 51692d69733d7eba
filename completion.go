package referent

import "context"

// CompletionRequest is a single call to a text-generation service.
type CompletionRequest struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Usage holds token accounting reported by the completion service.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Add returns the sum of u and other.
func (u Usage) Add(other Usage) Usage {
	return Usage{
		PromptTokens:     u.PromptTokens + other.PromptTokens,
		CompletionTokens: u.CompletionTokens + other.CompletionTokens,
		TotalTokens:      u.TotalTokens + other.TotalTokens,
	}
}

// Completion is the result of a completion call.
type Completion struct {
	Text  string `json:"text"`
	Model string `json:"model"`
	Usage Usage  `json:"usage"`
}

// Completer generates text with an external completion service.
type Completer interface {
	// Complete sends the request and returns the generated text.
	// Upstream failures are returned as errors carrying the upstream
	// status; a success response without text yields EMALFORMED.
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}
