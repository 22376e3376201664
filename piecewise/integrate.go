package piecewise

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/libphysics/dec"
)

var two = apd.New(2, 0)

// Integrate returns the area under the function over its whole range.
func (fn *Function) Integrate() (*apd.Decimal, error) {
	start, err := fn.Start()
	if err != nil {
		return nil, err
	}

	end, err := fn.End()
	if err != nil {
		return nil, err
	}

	return fn.IntegrateBetween(start, end)
}

// IntegrateBetween returns the area under the function between the two
// bounds, both of which must lie within [Start, End]. Each spanned segment,
// including the partial segments at the bounds, contributes a trapezoid area.
func (fn *Function) IntegrateBetween(lower, upper *apd.Decimal) (*apd.Decimal, error) {
	if len(fn.samples) == 0 {
		return nil, fmt.Errorf("%w: function was not initialized", ErrNoPoints)
	}

	first := fn.samples[0].x
	last := fn.samples[len(fn.samples)-1].x

	if lower.Cmp(last) >= 0 || upper.Cmp(first) <= 0 || lower.Cmp(first) < 0 || upper.Cmp(last) > 0 {
		return nil, fmt.Errorf("%w: function definition (%s, %s), bounds given: (%s, %s)",
			commerr.ErrOutOfRange, first, last, lower, upper)
	}

	if lower.Cmp(upper) > 0 {
		return nil, fmt.Errorf("%w: lower bound higher than upper bound", commerr.ErrInvalidArgument)
	}

	total := dec.Zero()

	// first stored abscissa strictly greater than the lower bound
	idx, found := fn.search(dec.Normalize(lower))
	if found {
		idx++
	}

	previous := lower

	for ; idx < len(fn.samples) && fn.samples[idx].x.Cmp(upper) <= 0; idx++ {
		area, err := fn.integrateSegment(previous, fn.samples[idx].x)
		if err != nil {
			return nil, err
		}

		if _, err = dec.Ctx.Add(total, total, area); err != nil {
			return nil, err
		}

		previous = fn.samples[idx].x
	}

	area, err := fn.integrateSegment(previous, upper)
	if err != nil {
		return nil, err
	}

	if _, err = dec.Ctx.Add(total, total, area); err != nil {
		return nil, err
	}

	return total, nil
}

// integrateSegment computes the trapezoid area between two positions inside
// one linear segment: a rectangle of the smaller endpoint value plus a right
// triangle of the endpoint difference. The decomposition over-counts when the
// interpolated value crosses zero inside the segment.
func (fn *Function) integrateSegment(lower, upper *apd.Decimal) (*apd.Decimal, error) {
	if lower.Cmp(upper) > 0 {
		return nil, fmt.Errorf("%w: lower bound higher than upper bound", commerr.ErrInvalidArgument)
	}

	lowerValue, err := fn.ValueAt(lower)
	if err != nil {
		return nil, err
	}

	upperValue, err := fn.ValueAt(upper)
	if err != nil {
		return nil, err
	}

	minValue, maxValue := lowerValue, upperValue
	if minValue.Cmp(maxValue) > 0 {
		minValue, maxValue = maxValue, minValue
	}

	var width, rectangle, triangle apd.Decimal

	ed := apd.MakeErrDecimal(dec.Ctx)
	ed.Sub(&width, upper, lower)
	ed.Mul(&rectangle, &width, minValue)
	ed.Sub(&triangle, maxValue, minValue)
	ed.Mul(&triangle, &width, &triangle)
	ed.Quo(&triangle, &triangle, two)
	ed.Add(&rectangle, &rectangle, &triangle)

	if err = ed.Err(); err != nil {
		return nil, err
	}

	return &rectangle, nil
}
