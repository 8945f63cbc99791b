package mock

import "github.com/fwojciec/docdig"

var _ docdig.Converter = (*Converter)(nil)

// Converter is a mock implementation of docdig.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
