// Package material builds material and composite-material records from
// key-value property maps, materializing the measured time functions
// (capture, escape, recombination) either as constants or from sample files.
package material

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libphysics/dec"
	"github.com/sgostarter/libphysics/physconst"
	"github.com/sgostarter/libphysics/piecewise"
	"github.com/sgostarter/libphysics/units"
)

var (
	captureTimesPattern       = regexp.MustCompile(`^capturetimes_?.*$`)
	escapeTimesPattern        = regexp.MustCompile(`^escapetimes_?.*$`)
	recombinationTimesPattern = regexp.MustCompile(`^recombinationtimes_?.*$`)
)

// Material describes a semiconductor material: its bandgap, the carrier
// effective masses, and the carrier time functions sampled against a size
// parameter. All quantities are stored in SI units.
type Material struct {
	name string

	bandgap               *apd.Decimal
	electronEffectiveMass *apd.Decimal
	holeEffectiveMass     *apd.Decimal

	captureTimes       *piecewise.Function
	escapeTimes        *piecewise.Function
	recombinationTimes *piecewise.Function
}

// NewBasicMaterial builds a material from its scalar properties only; the
// time functions stay undefined and their accessors fail.
func NewBasicMaterial(props Properties) (*Material, error) {
	return newMaterial(props)
}

// NewMaterial builds a material including its three time functions. A
// property key shaped <kind>_file_<xunit>_<yunit> loads a sample file named
// by its value from resourceRoot/<kind>/, a key shaped <kind> or
// <kind>_<unit> defines a constant function over the unit interval.
func NewMaterial(props Properties, loader piecewise.Loader, resourceRoot string, logger l.Wrapper) (*Material, error) {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "material"))

	m, err := newMaterial(props)
	if err != nil {
		return nil, err
	}

	var captureKey, escapeKey, recombinationKey string

	for _, key := range props.Keys() {
		switch {
		case recombinationTimesPattern.MatchString(key):
			recombinationKey = key
		case captureTimesPattern.MatchString(key):
			captureKey = key
		case escapeTimesPattern.MatchString(key):
			escapeKey = key
		}
	}

	for kind, key := range map[string]string{
		"capturetimes":       captureKey,
		"escapetimes":        escapeKey,
		"recombinationtimes": recombinationKey,
	} {
		if key == "" {
			return nil, fmt.Errorf("%w: %s property missing in the definition of material %s",
				commerr.ErrInvalidArgument, kind, m.name)
		}
	}

	if m.captureTimes, err = timeFunction(captureKey, props.Get(captureKey), resourceRoot, loader, logger); err != nil {
		return nil, fmt.Errorf("capture times of %s: %w", m.name, err)
	}

	if m.escapeTimes, err = timeFunction(escapeKey, props.Get(escapeKey), resourceRoot, loader, logger); err != nil {
		return nil, fmt.Errorf("escape times of %s: %w", m.name, err)
	}

	if m.recombinationTimes, err = timeFunction(recombinationKey, props.Get(recombinationKey), resourceRoot, loader, logger); err != nil {
		return nil, fmt.Errorf("recombination times of %s: %w", m.name, err)
	}

	return m, nil
}

func newMaterial(props Properties) (*Material, error) {
	for _, key := range []string{"name", "bandgap", "effectiveMass_electron", "effectiveMass_hole"} {
		if !props.Has(key) {
			return nil, fmt.Errorf("%w: %s property missing in the material definition",
				commerr.ErrInvalidArgument, key)
		}
	}

	m := &Material{name: props.Get("name")}

	var err error

	if m.bandgap, err = scaledProperty(props.Get("bandgap"), physconst.EV()); err != nil {
		return nil, fmt.Errorf("bandgap of %s: %w", m.name, err)
	}

	if m.electronEffectiveMass, err = scaledProperty(props.Get("effectiveMass_electron"), physconst.Me()); err != nil {
		return nil, fmt.Errorf("electron effective mass of %s: %w", m.name, err)
	}

	if m.holeEffectiveMass, err = scaledProperty(props.Get("effectiveMass_hole"), physconst.Me()); err != nil {
		return nil, fmt.Errorf("hole effective mass of %s: %w", m.name, err)
	}

	return m, nil
}

func scaledProperty(value string, multiplier *apd.Decimal) (*apd.Decimal, error) {
	d, err := dec.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", commerr.ErrInvalidArgument, err.Error())
	}

	var scaled apd.Decimal

	if _, err = dec.Ctx.Mul(&scaled, d, multiplier); err != nil {
		return nil, err
	}

	return &scaled, nil
}

func timeFunction(key, value, resourceRoot string, loader piecewise.Loader,
	logger l.Wrapper) (*piecewise.Function, error) {
	parts := strings.Split(key, "_")
	kind := parts[0]

	switch {
	case len(parts) == 4 && parts[1] == "file":
		if loader == nil {
			return nil, fmt.Errorf("%w: no function loader for key %q", commerr.ErrInvalidArgument, key)
		}

		fn, err := loader.LoadFunction(filepath.Join(resourceRoot, kind, value),
			units.Select(parts[2]), units.Select(parts[3]))
		if err != nil {
			logger.WithFields(l.ErrorField(err), l.StringField("key", key)).Error("load function file failed")

			return nil, err
		}

		return fn, nil
	case len(parts) <= 2:
		constant := dec.Zero()

		if len(parts) == 2 && value != "" {
			scaled, err := scaledProperty(value, units.Select(parts[1]).Multiplier())
			if err != nil {
				return nil, err
			}

			constant = scaled
		}

		return piecewise.FromSamples([]piecewise.Sample{
			{X: dec.Zero(), Y: constant},
			{X: dec.One(), Y: constant},
		}), nil
	default:
		return nil, fmt.Errorf("%w: malformed time function key %q", commerr.ErrInvalidArgument, key)
	}
}

func (m *Material) Name() string {
	return m.name
}

func (m *Material) Bandgap() *apd.Decimal {
	return dec.Copy(m.bandgap)
}

func (m *Material) ElectronEffectiveMass() *apd.Decimal {
	return dec.Copy(m.electronEffectiveMass)
}

func (m *Material) HoleEffectiveMass() *apd.Decimal {
	return dec.Copy(m.holeEffectiveMass)
}

// CaptureTime returns the carrier capture time for the given size parameter,
// interpolating between the sampled sizes.
func (m *Material) CaptureTime(size *apd.Decimal) (*apd.Decimal, error) {
	return m.timeAt(m.captureTimes, size)
}

func (m *Material) EscapeTime(size *apd.Decimal) (*apd.Decimal, error) {
	return m.timeAt(m.escapeTimes, size)
}

func (m *Material) RecombinationTime(size *apd.Decimal) (*apd.Decimal, error) {
	return m.timeAt(m.recombinationTimes, size)
}

func (m *Material) timeAt(fn *piecewise.Function, size *apd.Decimal) (*apd.Decimal, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: no time function on material %s", commerr.ErrNotFound, m.name)
	}

	return fn.ValueAt(size)
}

func (m *Material) Copy() *Material {
	cp := &Material{
		name:                  m.name,
		bandgap:               dec.Copy(m.bandgap),
		electronEffectiveMass: dec.Copy(m.electronEffectiveMass),
		holeEffectiveMass:     dec.Copy(m.holeEffectiveMass),
	}

	if m.captureTimes != nil {
		cp.captureTimes = m.captureTimes.Copy()
	}

	if m.escapeTimes != nil {
		cp.escapeTimes = m.escapeTimes.Copy()
	}

	if m.recombinationTimes != nil {
		cp.recombinationTimes = m.recombinationTimes.Copy()
	}

	return cp
}
