// Package piecewise provides an arbitrary-precision piecewise-linear function:
// a finite set of (abscissa, value) samples with linear interpolation between
// consecutive samples. Instances are immutable once constructed, every
// transformation returns a new instance.
package piecewise

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/cockroachdb/apd/v3"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/libphysics/dec"
)

// Sample is one measured point of a Function.
type Sample struct {
	X *apd.Decimal
	Y *apd.Decimal
}

type sample struct {
	x, y *apd.Decimal
}

// Function maps abscissas to values, both kept as normalized decimals so that
// numerically equal positions collapse to a single key regardless of how they
// were produced. Samples are held in ascending abscissa order.
type Function struct {
	lookupMu sync.Mutex
	samples  []sample
}

func New() *Function {
	return &Function{}
}

// FromSamples builds a Function from explicit samples. Inputs are normalized
// and copied; a duplicate abscissa overwrites the earlier one.
func FromSamples(samples []Sample) *Function {
	fn := &Function{samples: make([]sample, 0, len(samples))}

	for _, s := range samples {
		fn.put(dec.Normalize(s.X), dec.Normalize(s.Y))
	}

	return fn
}

// Copy deep-copies the function so no decimal is shared between instances.
func (fn *Function) Copy() *Function {
	cp := &Function{samples: make([]sample, len(fn.samples))}

	for idx, s := range fn.samples {
		cp.samples[idx] = sample{x: dec.Copy(s.x), y: dec.Copy(s.y)}
	}

	return cp
}

// put inserts an already normalized sample, taking ownership of x and y.
// Only construction paths may call it.
func (fn *Function) put(x, y *apd.Decimal) {
	idx, found := fn.search(x)
	if found {
		fn.samples[idx].y = y

		return
	}

	fn.samples = slices.Insert(fn.samples, idx, sample{x: x, y: y})
}

func (fn *Function) search(x *apd.Decimal) (int, bool) {
	return slices.BinarySearchFunc(fn.samples, x, func(s sample, target *apd.Decimal) int {
		return s.x.Cmp(target)
	})
}

func (fn *Function) IsInRange(x *apd.Decimal) bool {
	if len(fn.samples) == 0 {
		return false
	}

	return x.Cmp(fn.samples[0].x) >= 0 && x.Cmp(fn.samples[len(fn.samples)-1].x) <= 0
}

// ValueAt returns the value at x: the stored value on an exact hit, otherwise
// the linear interpolation between the two neighboring samples. Safe to call
// from any number of goroutines: the neighbor search and the two sample reads
// form one critical section.
func (fn *Function) ValueAt(x *apd.Decimal) (*apd.Decimal, error) {
	fn.lookupMu.Lock()
	defer fn.lookupMu.Unlock()

	clean := dec.Normalize(x)

	if !fn.IsInRange(clean) {
		return nil, fmt.Errorf("%w: no value for position %s", commerr.ErrOutOfRange, clean)
	}

	idx, found := fn.search(clean)
	if found {
		return dec.Copy(fn.samples[idx].y), nil
	}

	// in range and not an exact hit, so both neighbors exist
	previous := fn.samples[idx-1]
	next := fn.samples[idx]

	var slope, offset, value apd.Decimal

	ed := apd.MakeErrDecimal(dec.Ctx)
	ed.Sub(&slope, next.y, previous.y)
	ed.Sub(&value, next.x, previous.x)
	ed.Quo(&slope, &slope, &value)
	ed.Mul(&offset, &slope, previous.x)
	ed.Sub(&offset, previous.y, &offset)
	ed.Mul(&value, &slope, clean)
	ed.Add(&value, &value, &offset)

	if err := ed.Err(); err != nil {
		return nil, err
	}

	return &value, nil
}

func (fn *Function) Start() (*apd.Decimal, error) {
	if len(fn.samples) == 0 {
		return nil, fmt.Errorf("%w: function was not initialized", ErrNoPoints)
	}

	return dec.Copy(fn.samples[0].x), nil
}

func (fn *Function) End() (*apd.Decimal, error) {
	if len(fn.samples) == 0 {
		return nil, fmt.Errorf("%w: function was not initialized", ErrNoPoints)
	}

	return dec.Copy(fn.samples[len(fn.samples)-1].x), nil
}

// Maximum returns the sampled point with the greatest value. On ties the
// earliest abscissa wins.
func (fn *Function) Maximum() (Sample, error) {
	if len(fn.samples) == 0 {
		return Sample{}, fmt.Errorf("%w: function was not initialized", ErrNoPoints)
	}

	best := fn.samples[0]

	for _, s := range fn.samples[1:] {
		if s.y.Cmp(best.y) > 0 {
			best = s
		}
	}

	return Sample{X: dec.Copy(best.x), Y: dec.Copy(best.y)}, nil
}

// MeanIntervalSize is the abscissa span divided by the number of points. The
// divisor is the point count, not the interval count, to stay compatible with
// data produced by earlier versions of this library.
func (fn *Function) MeanIntervalSize() (*apd.Decimal, error) {
	if len(fn.samples) == 0 {
		return nil, fmt.Errorf("%w: function was not initialized", ErrNoPoints)
	}

	var span apd.Decimal

	ed := apd.MakeErrDecimal(dec.Ctx)
	ed.Sub(&span, fn.samples[len(fn.samples)-1].x, fn.samples[0].x)
	ed.Abs(&span, &span)
	ed.Quo(&span, &span, apd.New(int64(len(fn.samples)), 0))

	if err := ed.Err(); err != nil {
		return nil, err
	}

	return &span, nil
}

// Equal reports whether both functions hold the same abscissas with
// numerically equal values. Representation differences do not matter.
func (fn *Function) Equal(other *Function) bool {
	if other == nil || len(fn.samples) != len(other.samples) {
		return false
	}

	for idx, s := range fn.samples {
		o := other.samples[idx]

		if s.x.Cmp(o.x) != 0 || s.y.Cmp(o.y) != 0 {
			return false
		}
	}

	return true
}

func (fn *Function) Len() int {
	return len(fn.samples)
}

// Abscissa returns copies of the stored abscissas in ascending order.
func (fn *Function) Abscissa() []*apd.Decimal {
	abscissa := make([]*apd.Decimal, len(fn.samples))

	for idx, s := range fn.samples {
		abscissa[idx] = dec.Copy(s.x)
	}

	return abscissa
}

// Samples returns copies of the stored samples in ascending abscissa order.
func (fn *Function) Samples() []Sample {
	samples := make([]Sample, len(fn.samples))

	for idx, s := range fn.samples {
		samples[idx] = Sample{X: dec.Copy(s.x), Y: dec.Copy(s.y)}
	}

	return samples
}

func (fn *Function) String() string {
	var sb strings.Builder

	for _, s := range fn.samples {
		fmt.Fprintf(&sb, "%s\t=> %s\n", s.x, s.y)
	}

	return sb.String()
}
