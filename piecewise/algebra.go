package piecewise

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/libphysics/dec"
)

// zeroReplacement is the smallest positive float64 denormal, the magnitude
// substituted for exact zeros by AvoidZeros.
var zeroReplacement = dec.MustParse("4.9e-324")

// combine walks this function's abscissas and merges each value with the
// other function's value at the same position. When the other function cannot
// supply a value there, the original value is kept untouched: combination
// degrades per point, never as a whole. The result's domain is always the
// left operand's.
func (fn *Function) combine(other *Function, op func(d, x, y *apd.Decimal) (apd.Condition, error)) (*Function, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: nil operand", commerr.ErrInvalidArgument)
	}

	result := &Function{samples: make([]sample, 0, len(fn.samples))}

	for _, s := range fn.samples {
		theirs, err := other.ValueAt(s.x)
		if err != nil {
			result.samples = append(result.samples, sample{x: dec.Copy(s.x), y: dec.Copy(s.y)})

			continue
		}

		var value apd.Decimal

		if _, err = op(&value, s.y, theirs); err != nil {
			return nil, err
		}

		result.samples = append(result.samples, sample{x: dec.Copy(s.x), y: dec.Normalize(&value)})
	}

	return result, nil
}

func (fn *Function) Add(other *Function) (*Function, error) {
	return fn.combine(other, dec.Ctx.Add)
}

func (fn *Function) Subtract(other *Function) (*Function, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: nil operand", commerr.ErrInvalidArgument)
	}

	return fn.Add(other.Negate())
}

func (fn *Function) Multiply(other *Function) (*Function, error) {
	return fn.combine(other, dec.Ctx.Mul)
}

func (fn *Function) Divide(other *Function) (*Function, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: nil operand", commerr.ErrInvalidArgument)
	}

	inverted, err := other.Invert()
	if err != nil {
		return nil, err
	}

	return fn.Multiply(inverted)
}

func (fn *Function) Negate() *Function {
	result := &Function{samples: make([]sample, 0, len(fn.samples))}

	for _, s := range fn.samples {
		result.samples = append(result.samples, sample{x: dec.Copy(s.x), y: new(apd.Decimal).Neg(s.y)})
	}

	return result
}

// Invert maps every value to its reciprocal. Fails if any value is exactly
// zero; call AvoidZeros first for functions that legitimately touch zero.
func (fn *Function) Invert() (*Function, error) {
	result := &Function{samples: make([]sample, 0, len(fn.samples))}

	one := dec.One()

	for _, s := range fn.samples {
		if s.y.IsZero() {
			return nil, fmt.Errorf("%w: value at %s is zero", dec.ErrDivisionByZero, s.x)
		}

		var value apd.Decimal

		if _, err := dec.Ctx.Quo(&value, one, s.y); err != nil {
			return nil, err
		}

		result.samples = append(result.samples, sample{x: dec.Copy(s.x), y: dec.Normalize(&value)})
	}

	return result, nil
}

func (fn *Function) MultiplyScalar(multiplier *apd.Decimal) (*Function, error) {
	result := &Function{samples: make([]sample, 0, len(fn.samples))}

	for _, s := range fn.samples {
		var value apd.Decimal

		if _, err := dec.Ctx.Mul(&value, s.y, multiplier); err != nil {
			return nil, err
		}

		result.samples = append(result.samples, sample{x: dec.Copy(s.x), y: dec.Normalize(&value)})
	}

	return result, nil
}

func (fn *Function) DivideScalar(divider *apd.Decimal) (*Function, error) {
	if divider.IsZero() {
		return nil, fmt.Errorf("%w: zero divider", dec.ErrDivisionByZero)
	}

	var inverted apd.Decimal

	if _, err := dec.Ctx.Quo(&inverted, dec.One(), divider); err != nil {
		return nil, err
	}

	return fn.MultiplyScalar(&inverted)
}

func signedReplacement(sign int) *apd.Decimal {
	switch {
	case sign > 0:
		return dec.Copy(zeroReplacement)
	case sign < 0:
		return new(apd.Decimal).Neg(zeroReplacement)
	default:
		return dec.Zero()
	}
}

// AvoidZeros replaces every exactly-zero value with the smallest nonzero
// magnitude, signed to follow the function's local trend: a lone point gets a
// positive replacement, boundary points take the sign of their single
// neighbor, and an interior point takes the sign of whichever neighbor is
// numerically closer to zero. The previous point is consulted after its own
// replacement, so a run of zeros carries the sign of the nearest earlier
// decision.
func (fn *Function) AvoidZeros() *Function {
	result := &Function{samples: make([]sample, len(fn.samples))}

	last := len(fn.samples) - 1

	for idx, s := range fn.samples {
		if s.y.Sign() != 0 {
			result.samples[idx] = sample{x: dec.Copy(s.x), y: dec.Copy(s.y)}

			continue
		}

		var value *apd.Decimal

		switch {
		case last == 0:
			value = dec.Copy(zeroReplacement)
		case idx == last:
			value = signedReplacement(fn.samples[idx-1].y.Sign())
		case idx == 0:
			value = signedReplacement(fn.samples[idx+1].y.Sign())
		default:
			next := fn.samples[idx+1].y
			previous := result.samples[idx-1].y

			var toNext, toPrevious apd.Decimal

			toNext.Abs(next)
			toPrevious.Abs(previous)

			if toNext.Cmp(&toPrevious) > 0 {
				value = signedReplacement(previous.Sign())
			} else {
				value = signedReplacement(next.Sign())
			}
		}

		result.samples[idx] = sample{x: dec.Copy(s.x), y: value}
	}

	return result
}
