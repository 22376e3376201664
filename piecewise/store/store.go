// Package store persists sampled piecewise functions by key.
package store

import (
	"fmt"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/libphysics/dec"
	"github.com/sgostarter/libphysics/piecewise"
)

type Storage interface {
	Save(key string, fn *piecewise.Function) error
	Load(key string) (*piecewise.Function, error)
	Keys() ([]string, error)
}

// SampleD is the at-rest form of one sample. Decimals travel as strings so
// the stored precision is exactly the stored function's precision.
type SampleD struct {
	X string `json:"x" yaml:"x"`
	Y string `json:"y" yaml:"y"`
}

func EncodeFunction(fn *piecewise.Function) []SampleD {
	samples := fn.Samples()

	ds := make([]SampleD, 0, len(samples))

	for _, s := range samples {
		ds = append(ds, SampleD{X: s.X.String(), Y: s.Y.String()})
	}

	return ds
}

func DecodeFunction(ds []SampleD) (*piecewise.Function, error) {
	samples := make([]piecewise.Sample, 0, len(ds))

	for _, d := range ds {
		x, err := dec.Parse(d.X)
		if err != nil {
			return nil, fmt.Errorf("%w: bad abscissa %q", commerr.ErrInvalidArgument, d.X)
		}

		y, err := dec.Parse(d.Y)
		if err != nil {
			return nil, fmt.Errorf("%w: bad value %q", commerr.ErrInvalidArgument, d.Y)
		}

		samples = append(samples, piecewise.Sample{X: x, Y: y})
	}

	return piecewise.FromSamples(samples), nil
}
