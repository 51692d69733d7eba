// Package yaml loads per-action prompt overrides from a YAML file.
package yaml

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/fwojciec/referent"
	"gopkg.in/yaml.v3"
)

// Prompts holds overrides keyed by action name.
//
//	actions:
//	  summary:
//	    systemPrompt: "Summarize the article in three sentences."
//	    temperature: 0.5
//	  translate:
//	    maxTokens: 8000
type Prompts struct {
	Actions map[string]Override `yaml:"actions"`
}

// Override replaces the non-zero fields of an action.
type Override struct {
	SystemPrompt   string   `yaml:"systemPrompt"`
	ChunkNote      string   `yaml:"chunkNote"`
	MergePrompt    string   `yaml:"mergePrompt"`
	MergeSeparator *string  `yaml:"mergeSeparator"`
	Temperature    *float64 `yaml:"temperature"`
	MaxTokens      *int     `yaml:"maxTokens"`
}

// Load reads prompt overrides from the file at path.
func Load(path string) (*Prompts, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, referent.Errorf(referent.ENOTFOUND, "prompts file %s not found", path)
		}
		return nil, referent.Errorf(referent.EINTERNAL, "read prompts file %s: %v", path, err)
	}
	return Parse(raw)
}

// Parse decodes prompt overrides. Unknown fields are rejected so that
// typos do not silently fall back to the defaults.
func Parse(raw []byte) (*Prompts, error) {
	var p Prompts
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, referent.Errorf(referent.EINVALID, "parse prompts: %v", err)
	}
	return &p, nil
}

// Apply returns a copy of base with the overrides applied.
// Returns EINVALID for unknown actions or when an overridden action
// fails validation.
func (p *Prompts) Apply(base referent.Actions) (referent.Actions, error) {
	out := make(referent.Actions, len(base))
	for k, a := range base {
		out[k] = a
	}

	for name, o := range p.Actions {
		kind, err := referent.ParseActionKind(name)
		if err != nil {
			return nil, err
		}
		a, err := out.Get(kind)
		if err != nil {
			return nil, err
		}
		o.apply(&a)
		if err := a.Validate(); err != nil {
			return nil, err
		}
		out[kind] = a
	}
	return out, nil
}

func (o Override) apply(a *referent.Action) {
	if o.SystemPrompt != "" {
		a.SystemPrompt = o.SystemPrompt
	}
	if o.ChunkNote != "" {
		a.ChunkNote = o.ChunkNote
	}
	if o.MergePrompt != "" {
		a.MergePrompt = o.MergePrompt
	}
	if o.MergeSeparator != nil {
		a.MergeSeparator = *o.MergeSeparator
	}
	if o.Temperature != nil {
		a.Temperature = *o.Temperature
	}
	if o.MaxTokens != nil {
		a.MaxTokens = *o.MaxTokens
	}
}
