// Package session holds the state of one interactive user session: the
// parsed article, the action in flight and the cached results.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/referent"
)

// State is the phase of a session.
type State string

// Session states.
const (
	StateIdle       State = "idle"
	StateParsing    State = "parsing"
	StateReady      State = "ready"
	StateProcessing State = "processing"
	StateError      State = "error"
)

// transitions lists the legal moves between states.
var transitions = map[State][]State{
	StateIdle:       {StateParsing},
	StateParsing:    {StateReady, StateError},
	StateReady:      {StateParsing, StateProcessing, StateIdle},
	StateProcessing: {StateReady, StateError},
	StateError:      {StateParsing, StateProcessing, StateIdle},
}

// CanTransition reports whether a session may move from one state to another.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Snapshot is a consistent view of a session.
type Snapshot struct {
	State   State
	Source  string
	Article *referent.Article
	Action  referent.ActionKind
	Err     error
	Cached  int
}

// Session drives the parse -> act workflow for one user.
// Session is safe for concurrent use; at most one operation runs at a time.
type Session struct {
	Parser      referent.ArticleParser
	Processor   referent.Processor
	Illustrator referent.Illustrator

	mu      sync.Mutex
	state   State
	source  string
	article *referent.Article
	action  referent.ActionKind
	err     error
	cache   *Cache
}

// New creates an idle Session.
func New(parser referent.ArticleParser, processor referent.Processor, illustrator referent.Illustrator) *Session {
	return &Session{
		Parser:      parser,
		Processor:   processor,
		Illustrator: illustrator,
		state:       StateIdle,
		cache:       NewCache(),
	}
}

// Snapshot returns the current state of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:   s.state,
		Source:  s.source,
		Article: s.article,
		Action:  s.action,
		Err:     s.err,
		Cached:  s.cache.Len(),
	}
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// transition moves to state to or returns EINVALID. Must be called with mu held.
func (s *Session) transition(to State) error {
	if !CanTransition(s.state, to) {
		return referent.Errorf(referent.EINVALID, "cannot go from %s to %s", s.state, to)
	}
	s.state = to
	return nil
}

// Parse fetches and extracts the article at url. A new parse clears the
// result cache.
func (s *Session) Parse(ctx context.Context, url string) (*referent.Article, error) {
	s.mu.Lock()
	if err := s.transition(StateParsing); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.source, s.article, s.action, s.err = url, nil, "", nil
	s.cache.Clear()
	s.mu.Unlock()

	article, err := s.Parser.Parse(ctx, url)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err
		_ = s.transition(StateError)
		return nil, err
	}
	s.article = article
	_ = s.transition(StateReady)
	return article, nil
}

// Run executes an action on the parsed article. A cached result is
// returned at once without changing state; cached reports whether that
// happened.
func (s *Session) Run(ctx context.Context, kind referent.ActionKind) (result *referent.Completion, cached bool, err error) {
	s.mu.Lock()
	article, fp, err := s.begin(kind)
	if err != nil {
		s.mu.Unlock()
		return nil, false, err
	}
	if r, ok := s.cache.Get(fp); ok {
		s.mu.Unlock()
		return r, true, nil
	}
	if err := s.transition(StateProcessing); err != nil {
		s.mu.Unlock()
		return nil, false, err
	}
	s.action, s.err = kind, nil
	s.mu.Unlock()

	result, err = s.Processor.Run(ctx, kind, article.Body)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.finish(err)
	if err != nil {
		return nil, false, err
	}
	s.cache.Put(fp, result)
	return result, false, nil
}

// Illustrate writes an image prompt for the article, reusing a cached one,
// and renders it.
func (s *Session) Illustrate(ctx context.Context) (*referent.Image, *referent.Completion, error) {
	if s.Illustrator == nil {
		return nil, nil, referent.Errorf(referent.EINVALID, "image generation is not configured")
	}

	prompt, _, err := s.Run(ctx, referent.ActionImagePrompt)
	if err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	if err := s.transition(StateProcessing); err != nil {
		s.mu.Unlock()
		return nil, prompt, err
	}
	s.action, s.err = referent.ActionImagePrompt, nil
	s.mu.Unlock()

	img, err := s.Illustrator.Illustrate(ctx, prompt.Text)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.finish(err)
	return img, prompt, err
}

// Reset returns the session to idle and drops the article and cache.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateIdle {
		return nil
	}
	if err := s.transition(StateIdle); err != nil {
		return err
	}
	s.source, s.article, s.action, s.err = "", nil, "", nil
	s.cache.Clear()
	return nil
}

// begin checks that an action can start. Must be called with mu held.
func (s *Session) begin(kind referent.ActionKind) (*referent.Article, Fingerprint, error) {
	if s.state == StateProcessing {
		return nil, Fingerprint{}, referent.Errorf(referent.EINVALID, "action %s is still running", s.action)
	}
	if s.article == nil {
		return nil, Fingerprint{}, referent.Errorf(referent.EINVALID, "no article parsed")
	}
	if !s.article.HasBody() {
		return nil, Fingerprint{}, referent.Errorf(referent.EINVALID, "article has no content")
	}
	return s.article, NewFingerprint(s.source, s.article, kind), nil
}

// finish leaves the processing state. Must be called with mu held.
func (s *Session) finish(err error) {
	s.action = ""
	if err != nil {
		s.err = err
		_ = s.transition(StateError)
		return
	}
	_ = s.transition(StateReady)
}

// String implements fmt.Stringer for logging.
func (s Snapshot) String() string {
	if s.State == StateProcessing {
		return fmt.Sprintf("%s[%s]", s.State, s.Action)
	}
	return string(s.State)
}
