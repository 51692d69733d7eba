package referent

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// ActionKind identifies a transformation applied to article text.
type ActionKind string

// Supported action kinds.
const (
	ActionSummary     ActionKind = "summary"
	ActionThesis      ActionKind = "thesis"
	ActionSocialPost  ActionKind = "telegram"
	ActionTranslate   ActionKind = "translate"
	ActionImagePrompt ActionKind = "image-prompt"
)

// DefaultLanguage is the output language used when none is configured.
const DefaultLanguage = "Russian"

// ParseActionKind validates s and returns the matching ActionKind.
func ParseActionKind(s string) (ActionKind, error) {
	switch kind := ActionKind(strings.TrimSpace(s)); kind {
	case ActionSummary, ActionThesis, ActionSocialPost, ActionTranslate, ActionImagePrompt:
		return kind, nil
	}
	return "", Errorf(EINVALID, "invalid action %q. Must be one of: %s", s, strings.Join(actionNames(), ", "))
}

func actionNames() []string {
	return []string{
		string(ActionSummary),
		string(ActionThesis),
		string(ActionSocialPost),
		string(ActionTranslate),
		string(ActionImagePrompt),
	}
}

// Action describes how one action kind is executed against a completion service.
type Action struct {
	Kind ActionKind

	// SystemPrompt is the instruction sent with the article text.
	SystemPrompt string

	// ChunkNote is appended to SystemPrompt when only an excerpt of a
	// longer article is sent.
	ChunkNote string

	// MergePrompt is the system instruction for the synthesis call that
	// merges per-chunk outputs. When empty, partial outputs are joined
	// with MergeSeparator and no synthesis call is made.
	MergePrompt string

	// MergeSeparator joins per-chunk outputs.
	MergeSeparator string

	Temperature float64
	MaxTokens   int
}

// Validate returns an error if the action contains invalid fields.
func (a *Action) Validate() error {
	if _, err := ParseActionKind(string(a.Kind)); err != nil {
		return err
	}
	if a.SystemPrompt == "" {
		return Errorf(EINVALID, "action %q: system prompt required", a.Kind)
	}
	if a.MaxTokens <= 0 {
		return Errorf(EINVALID, "action %q: max tokens must be positive", a.Kind)
	}
	if a.Temperature < 0 || a.Temperature > 2 {
		return Errorf(EINVALID, "action %q: temperature must be between 0 and 2", a.Kind)
	}
	return nil
}

// ChunkRequest returns the completion request for one excerpt of a longer text.
func (a *Action) ChunkRequest(excerpt string) CompletionRequest {
	return CompletionRequest{
		System:      a.SystemPrompt + a.ChunkNote,
		User:        excerpt,
		Temperature: a.Temperature,
		MaxTokens:   a.MaxTokens,
	}
}

// Request returns the completion request for the full text.
func (a *Action) Request(text string) CompletionRequest {
	return CompletionRequest{
		System:      a.SystemPrompt,
		User:        text,
		Temperature: a.Temperature,
		MaxTokens:   a.MaxTokens,
	}
}

// Actions is the set of configured actions keyed by kind.
type Actions map[ActionKind]Action

// Get returns the action for kind.
// Returns EINVALID if the kind is unknown or not configured.
func (as Actions) Get(kind ActionKind) (Action, error) {
	a, ok := as[kind]
	if !ok {
		return Action{}, Errorf(EINVALID, "action %q is not configured", kind)
	}
	return a, nil
}

// Kinds returns the configured kinds in stable order.
func (as Actions) Kinds() []ActionKind {
	kinds := make([]ActionKind, 0, len(as))
	for k := range as {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

const (
	excerptNote   = "\n\nThis is a partial excerpt of a longer article. Focus on the key points of this excerpt."
	translateNote = "\n\nThis is one part of a longer text. Translate it completely without summarizing."
)

// DefaultActions returns the built-in actions producing output in language.
// The image prompt is always written in English since image models expect it.
func DefaultActions(language string) Actions {
	if language == "" {
		language = DefaultLanguage
	}
	return Actions{
		ActionSummary: {
			Kind:           ActionSummary,
			SystemPrompt:   fmt.Sprintf("You are an expert in article analysis. Write a short summary of the following article in %s (2-3 paragraphs). The summary should be informative and reflect the main ideas of the article.", language),
			ChunkNote:      excerptNote,
			MergePrompt:    fmt.Sprintf("You are an expert in article analysis. Below are summaries of consecutive parts of one article. Combine them into one unified, concise summary of the whole article in %s (2-3 paragraphs).", language),
			MergeSeparator: "\n\n",
			Temperature:    0.7,
			MaxTokens:      2000,
		},
		ActionThesis: {
			Kind:           ActionThesis,
			SystemPrompt:   fmt.Sprintf("You are an expert in article analysis. Extract the main theses from the following article and present them as a numbered list in %s. Each thesis should be short and meaningful.", language),
			ChunkNote:      excerptNote,
			MergePrompt:    fmt.Sprintf("You are an expert in article analysis. Below are numbered lists of theses extracted from consecutive parts of one article. Merge them into one numbered list in %s, removing duplicate points and grouping similar ones.", language),
			MergeSeparator: "\n",
			Temperature:    0.7,
			MaxTokens:      2000,
		},
		ActionSocialPost: {
			Kind:           ActionSocialPost,
			SystemPrompt:   fmt.Sprintf("You are an expert in social media content. Create a Telegram post based on the following article. The post should be interesting, well structured, 2-3 paragraphs long, written in %s. Use emoji to attract attention.", language),
			ChunkNote:      excerptNote,
			MergePrompt:    fmt.Sprintf("You are an expert in social media content. Below are draft Telegram posts written for consecutive parts of one article. Combine them into one unified, attention-grabbing post in %s, 2-3 paragraphs long, with emoji.", language),
			MergeSeparator: "\n\n",
			Temperature:    0.7,
			MaxTokens:      2000,
		},
		ActionTranslate: {
			Kind:           ActionTranslate,
			SystemPrompt:   fmt.Sprintf("You are a professional translator. Translate the following English text into %s, preserving the structure and formatting of the original.", language),
			ChunkNote:      translateNote,
			MergeSeparator: "\n\n",
			Temperature:    0.3,
			MaxTokens:      4000,
		},
		ActionImagePrompt: {
			Kind:           ActionImagePrompt,
			SystemPrompt:   "You are an expert in writing prompts for image generation. Based on the following article, write a detailed prompt in English for an illustration. The prompt should be specific and descriptive, contain visual details (style, composition, colors), reflect the main topic of the article and be 50-100 words long. Return only the prompt, without any explanations.",
			ChunkNote:      excerptNote,
			MergePrompt:    "You are an expert in writing prompts for image generation. Below are illustration prompts written for consecutive parts of one article. Combine them into a single prompt in English, 50-100 words long, describing one coherent illustration. Return only the prompt, without any explanations.",
			MergeSeparator: "\n\n",
			Temperature:    0.7,
			MaxTokens:      300,
		},
	}
}

// Processor runs an action against article text.
type Processor interface {
	// Run executes the action and returns the final completion.
	// Long texts are chunked and the partial outputs reconciled.
	Run(ctx context.Context, kind ActionKind, text string) (*Completion, error)
}
