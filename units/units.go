// Package units enumerates the decimal unit prefixes used when ingesting
// externally specified physical quantities into SI base units.
package units

import (
	"unicode/utf8"

	"github.com/cockroachdb/apd/v3"
	"github.com/sgostarter/libphysics/dec"
)

type Prefix int

const (
	Femto Prefix = iota
	Pico
	Nano
	Micro
	Milli
	Centi
	Unity
)

type prefixInfo struct {
	name       string
	symbol     string
	multiplier string
}

var prefixes = [...]prefixInfo{
	Femto: {name: "femto", symbol: "f", multiplier: "1e-15"},
	Pico:  {name: "pico", symbol: "p", multiplier: "1e-12"},
	Nano:  {name: "nano", symbol: "n", multiplier: "1e-9"},
	Micro: {name: "micro", symbol: "μ", multiplier: "1e-6"},
	Milli: {name: "milli", symbol: "m", multiplier: "1e-3"},
	Centi: {name: "centi", symbol: "c", multiplier: "1e-2"},
	Unity: {name: "unity", symbol: "", multiplier: "1.0"},
}

func (p Prefix) valid() Prefix {
	if p < Femto || p > Unity {
		return Unity
	}

	return p
}

func (p Prefix) String() string {
	return prefixes[p.valid()].name
}

// Symbol is the textual prefix put in front of a unit symbol ("n" in "nm").
func (p Prefix) Symbol() string {
	return prefixes[p.valid()].symbol
}

// Multiplier returns the factor converting a value carrying this prefix into
// base SI units. The result is a fresh copy on every call.
func (p Prefix) Multiplier() *apd.Decimal {
	return dec.MustParse(prefixes[p.valid()].multiplier)
}

// Scale is the number of fractional decimal digits of the multiplier.
func (p Prefix) Scale() int32 {
	m := p.Multiplier()

	if m.Exponent < 0 {
		return -m.Exponent
	}

	return 0
}

// Select chooses the prefix matching the first rune of a unit symbol
// ("nm" selects Nano, "fs" selects Femto). Unknown or bare symbols select
// Unity.
func Select(unit string) Prefix {
	r, _ := utf8.DecodeRuneInString(unit)

	switch r {
	case 'f':
		return Femto
	case 'p':
		return Pico
	case 'n':
		return Nano
	case 'μ':
		return Micro
	case 'm':
		return Milli
	case 'c':
		return Centi
	default:
		return Unity
	}
}
