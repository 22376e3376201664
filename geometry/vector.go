package geometry

import (
	"fmt"
	"math"

	"github.com/cockroachdb/apd/v3"
	"github.com/sgostarter/libphysics/dec"
)

type Vector struct {
	x, y *apd.Decimal
}

// NewVector copies both components. nil components become zero, so the zero
// Vector is the null vector.
func NewVector(x, y *apd.Decimal) Vector {
	return Vector{x: copyOrZero(x), y: copyOrZero(y)}
}

func (v Vector) X() *apd.Decimal {
	return copyOrZero(v.x)
}

func (v Vector) Y() *apd.Decimal {
	return copyOrZero(v.y)
}

func (v Vector) Add(other Vector) (Vector, error) {
	var nx, ny apd.Decimal

	ed := apd.MakeErrDecimal(dec.Ctx)
	ed.Add(&nx, v.X(), other.X())
	ed.Add(&ny, v.Y(), other.Y())

	if err := ed.Err(); err != nil {
		return Vector{}, err
	}

	return Vector{x: &nx, y: &ny}, nil
}

func (v Vector) Dot(other Vector) (*apd.Decimal, error) {
	var xx, yy, sum apd.Decimal

	ed := apd.MakeErrDecimal(dec.Ctx)
	ed.Mul(&xx, v.X(), other.X())
	ed.Mul(&yy, v.Y(), other.Y())
	ed.Add(&sum, &xx, &yy)

	if err := ed.Err(); err != nil {
		return nil, err
	}

	return &sum, nil
}

func (v Vector) Norm() (*apd.Decimal, error) {
	selfDot, err := v.Dot(v)
	if err != nil {
		return nil, err
	}

	if selfDot.IsZero() {
		return dec.Zero(), nil
	}

	var root apd.Decimal

	if _, err = dec.Ctx.Sqrt(&root, selfDot); err != nil {
		return nil, err
	}

	return &root, nil
}

// IsCodirectional reports whether both vectors point in the same direction,
// by comparing the ratios of their components. Fails when the other vector
// has a zero component.
func (v Vector) IsCodirectional(other Vector) (bool, error) {
	otherX := other.X()
	otherY := other.Y()

	if otherX.IsZero() || otherY.IsZero() {
		return false, fmt.Errorf("%w: zero component in the reference vector", dec.ErrDivisionByZero)
	}

	var xRatio, yRatio apd.Decimal

	ed := apd.MakeErrDecimal(dec.Ctx)
	ed.Quo(&xRatio, v.X(), otherX)
	ed.Quo(&yRatio, v.Y(), otherY)

	if err := ed.Err(); err != nil {
		return false, err
	}

	return xRatio.Cmp(&yRatio) == 0, nil
}

// Rotate turns the vector counterclockwise by the given angle in radians.
// The sine and cosine are only float64-accurate.
func (v Vector) Rotate(angle float64) (Vector, error) {
	var sin, cos apd.Decimal

	if _, err := sin.SetFloat64(math.Sin(angle)); err != nil {
		return Vector{}, err
	}

	if _, err := cos.SetFloat64(math.Cos(angle)); err != nil {
		return Vector{}, err
	}

	var xCos, xSin, yCos, ySin, nx, ny apd.Decimal

	ed := apd.MakeErrDecimal(dec.Ctx)
	ed.Mul(&xCos, v.X(), &cos)
	ed.Mul(&xSin, v.X(), &sin)
	ed.Mul(&yCos, v.Y(), &cos)
	ed.Mul(&ySin, v.Y(), &sin)
	ed.Sub(&nx, &xCos, &ySin)
	ed.Add(&ny, &xSin, &yCos)

	if err := ed.Err(); err != nil {
		return Vector{}, err
	}

	return Vector{x: &nx, y: &ny}, nil
}

func (v Vector) Scale(multiplier *apd.Decimal) (Vector, error) {
	var nx, ny apd.Decimal

	ed := apd.MakeErrDecimal(dec.Ctx)
	ed.Mul(&nx, v.X(), multiplier)
	ed.Mul(&ny, v.Y(), multiplier)

	if err := ed.Err(); err != nil {
		return Vector{}, err
	}

	return Vector{x: &nx, y: &ny}, nil
}

func (v Vector) String() string {
	return fmt.Sprintf("(%s; %s)", copyOrZero(v.x), copyOrZero(v.y))
}
