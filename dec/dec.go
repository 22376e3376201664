// Package dec holds the decimal arithmetic context and helpers shared by the
// libphysics packages. All arithmetic is performed with 34 significant digits
// and half-even rounding, mirroring IEEE 754-2008 decimal128.
package dec

import (
	"errors"

	"github.com/cockroachdb/apd/v3"
)

var ErrDivisionByZero = errors.New("division by zero")

// Ctx is the shared arithmetic context. Callers must treat it as read-only.
var Ctx = func() *apd.Context {
	ctx := apd.BaseContext.WithPrecision(34)
	ctx.Rounding = apd.RoundHalfEven

	return ctx
}()

func Parse(s string) (*apd.Decimal, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, err
	}

	return d, nil
}

func MustParse(s string) *apd.Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return d
}

func Copy(x *apd.Decimal) *apd.Decimal {
	return new(apd.Decimal).Set(x)
}

// Normalize returns a copy of x with insignificant trailing zeros removed, so
// numerically equal decimals end up with a single representation.
func Normalize(x *apd.Decimal) *apd.Decimal {
	d, _ := new(apd.Decimal).Reduce(x)

	return d
}

func Zero() *apd.Decimal {
	return new(apd.Decimal)
}

func One() *apd.Decimal {
	return apd.New(1, 0)
}
