// Package geometry provides simple 2-D point and vector types with decimal
// coordinates. Values are immutable: constructors copy their inputs,
// accessors return copies, operations return new values.
package geometry

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
	"github.com/sgostarter/libphysics/dec"
	"github.com/sgostarter/libphysics/units"
)

type Point struct {
	x, y *apd.Decimal
}

// NewPoint copies both coordinates. nil coordinates become zero, so the zero
// Point is the origin.
func NewPoint(x, y *apd.Decimal) Point {
	return Point{x: copyOrZero(x), y: copyOrZero(y)}
}

func copyOrZero(d *apd.Decimal) *apd.Decimal {
	if d == nil {
		return dec.Zero()
	}

	return dec.Copy(d)
}

func (p Point) X() *apd.Decimal {
	return copyOrZero(p.x)
}

func (p Point) Y() *apd.Decimal {
	return copyOrZero(p.y)
}

func (p Point) DistanceTo(other Point) (*apd.Decimal, error) {
	var dx, dy apd.Decimal

	ed := apd.MakeErrDecimal(dec.Ctx)
	ed.Sub(&dx, p.X(), other.X())
	ed.Sub(&dy, p.Y(), other.Y())

	if err := ed.Err(); err != nil {
		return nil, err
	}

	if dx.IsZero() && dy.IsZero() {
		return dec.Zero(), nil
	}

	var sum apd.Decimal

	ed.Mul(&dx, &dx, &dx)
	ed.Mul(&dy, &dy, &dy)
	ed.Add(&sum, &dx, &dy)

	if err := ed.Err(); err != nil {
		return nil, err
	}

	var root apd.Decimal

	if _, err := dec.Ctx.Sqrt(&root, &sum); err != nil {
		return nil, err
	}

	return &root, nil
}

func (p Point) Translate(v Vector) (Point, error) {
	var nx, ny apd.Decimal

	ed := apd.MakeErrDecimal(dec.Ctx)
	ed.Add(&nx, p.X(), v.X())
	ed.Add(&ny, p.Y(), v.Y())

	if err := ed.Err(); err != nil {
		return Point{}, err
	}

	return Point{x: &nx, y: &ny}, nil
}

// ScaledString renders the point with both coordinates divided by the given
// unit multiplier, trailing zeros stripped.
func (p Point) ScaledString(prefix units.Prefix) string {
	multiplier := prefix.Multiplier()

	var sx, sy apd.Decimal

	ed := apd.MakeErrDecimal(dec.Ctx)
	ed.Quo(&sx, p.X(), multiplier)
	ed.Quo(&sy, p.Y(), multiplier)

	if ed.Err() != nil {
		return p.String()
	}

	return fmt.Sprintf("(%s; %s)", dec.Normalize(&sx), dec.Normalize(&sy))
}

func (p Point) String() string {
	return fmt.Sprintf("(%s; %s)", copyOrZero(p.x), copyOrZero(p.y))
}
