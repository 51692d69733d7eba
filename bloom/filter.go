// Package bloom provides URL deduplication for batch runs using Bloom filters.
package bloom

import (
	"net/url"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter remembers which article URLs have been seen.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a URL to the filter.
func (f *Filter) Add(rawURL string) {
	f.f.AddString(Normalize(rawURL))
}

// Test returns true if the URL might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(rawURL string) bool {
	return f.f.TestString(Normalize(rawURL))
}

// Seen reports whether the URL was probably seen before and records it.
func (f *Filter) Seen(rawURL string) bool {
	return f.f.TestAndAddString(Normalize(rawURL))
}

// Normalize reduces spelling variants of the same article URL to one form:
// scheme and host are lowercased, the fragment and a trailing slash are
// dropped. Unparseable input is returned trimmed.
func Normalize(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return s
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = ""
	return u.String()
}

// Set records article URLs exactly. The filter rules out URLs never seen;
// its positives are confirmed against the recorded URLs, so a new URL is
// never reported as seen.
type Set struct {
	filter *Filter
	urls   map[string]struct{}
}

// NewSet creates a Set sized for n URLs, with fpRate bounding how often
// the exact lookup is needed.
func NewSet(n uint, fpRate float64) *Set {
	return &Set{
		filter: NewFilter(n, fpRate),
		urls:   make(map[string]struct{}, n),
	}
}

// Seen reports whether an equivalent URL was recorded before and records it.
func (s *Set) Seen(rawURL string) bool {
	key := Normalize(rawURL)
	if !s.filter.f.TestAndAddString(key) {
		s.urls[key] = struct{}{}
		return false
	}
	if _, ok := s.urls[key]; ok {
		return true
	}
	s.urls[key] = struct{}{}
	return false
}
