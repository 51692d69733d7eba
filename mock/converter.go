package mock

import "github.com/fwojciec/referent"

var _ referent.Converter = (*Converter)(nil)

// Converter is a mock implementation of referent.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
