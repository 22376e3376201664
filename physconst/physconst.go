// Package physconst provides common physical constants as exact decimals in
// SI units. Accessors return fresh copies so callers can never alias the
// package state.
package physconst

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/sgostarter/libphysics/dec"
)

var (
	pi = dec.MustParse("3.1415926535")
	kB = dec.MustParse("1.380649e-23")
	me = dec.MustParse("9.10938188e-31")
	q  = dec.MustParse("1.60217733e-19")
	eV = dec.MustParse("1.602176634e-19")
	c  = dec.MustParse("299792458")
	h  = dec.MustParse("6.62607015e-34")

	hBar = func() *apd.Decimal {
		var twoPi, d apd.Decimal

		ed := apd.MakeErrDecimal(dec.Ctx)
		ed.Mul(&twoPi, pi, apd.New(2, 0))
		ed.Quo(&d, h, &twoPi)

		if err := ed.Err(); err != nil {
			panic(err)
		}

		return &d
	}()
)

func Pi() *apd.Decimal {
	return dec.Copy(pi)
}

// KB is the Boltzmann constant in J/K.
func KB() *apd.Decimal {
	return dec.Copy(kB)
}

// Me is the electron rest mass in kg.
func Me() *apd.Decimal {
	return dec.Copy(me)
}

// Q is the elementary charge in C.
func Q() *apd.Decimal {
	return dec.Copy(q)
}

// EV is the electronvolt in J.
func EV() *apd.Decimal {
	return dec.Copy(eV)
}

// C is the speed of light in m/s.
func C() *apd.Decimal {
	return dec.Copy(c)
}

// H is the Planck constant in J·s.
func H() *apd.Decimal {
	return dec.Copy(h)
}

// HBar is the reduced Planck constant h/2π in J·s.
func HBar() *apd.Decimal {
	return dec.Copy(hBar)
}
