package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/referent"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

// TokenizerModel is the model whose vocabulary is used for offline counts.
const TokenizerModel = "gemini-2.0-flash"

var _ referent.TokenCounter = (*TokenCounter)(nil)

// TokenCounter estimates the token size of article text offline using
// the Gemini tokenizer. No API key is needed.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a new TokenCounter for the given model.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = TokenizerModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, referent.Errorf(referent.EINVALID, "tokenizer for %q: %v", model, err)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the number of tokens in the given text.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}

	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}

	result, err := tc.tok.CountTokens(contents, nil)
	if err != nil {
		return 0, referent.Errorf(referent.EINTERNAL, "counting tokens: %v", err)
	}

	return int(result.TotalTokens), nil
}
