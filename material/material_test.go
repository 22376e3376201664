package material

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/libphysics/dec"
	"github.com/sgostarter/libphysics/physconst"
	"github.com/sgostarter/libphysics/piecewise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utBasicProps() Properties {
	return Properties{
		"name":                   "InAs",
		"bandgap":                "0.354",
		"effectiveMass_electron": "0.023",
		"effectiveMass_hole":     "0.41",
	}
}

func utScaled(t *testing.T, value string, multiplier *apd.Decimal) *apd.Decimal {
	t.Helper()

	var scaled apd.Decimal

	_, err := dec.Ctx.Mul(&scaled, dec.MustParse(value), multiplier)
	require.Nil(t, err)

	return &scaled
}

func TestNewBasicMaterial(t *testing.T) {
	m, err := NewBasicMaterial(utBasicProps())
	assert.Nil(t, err)
	require.NotNil(t, m)

	assert.EqualValues(t, "InAs", m.Name())

	assert.True(t, m.Bandgap().Cmp(utScaled(t, "0.354", physconst.EV())) == 0)
	assert.True(t, m.ElectronEffectiveMass().Cmp(utScaled(t, "0.023", physconst.Me())) == 0)
	assert.True(t, m.HoleEffectiveMass().Cmp(utScaled(t, "0.41", physconst.Me())) == 0)

	_, err = m.CaptureTime(dec.Zero())
	assert.True(t, errors.Is(err, commerr.ErrNotFound))
}

func TestNewBasicMaterialMissingKey(t *testing.T) {
	props := utBasicProps()
	delete(props, "bandgap")

	_, err := NewBasicMaterial(props)
	assert.True(t, errors.Is(err, commerr.ErrInvalidArgument))

	props = utBasicProps()
	props["bandgap"] = "not a number"

	_, err = NewBasicMaterial(props)
	assert.True(t, errors.Is(err, commerr.ErrInvalidArgument))
}

func TestNewMaterialConstantTimes(t *testing.T) {
	props := utBasicProps()
	props["capturetimes_ps"] = "2"
	props["escapetimes_ns"] = "3"
	props["recombinationtimes"] = ""

	m, err := NewMaterial(props, nil, "", nil)
	assert.Nil(t, err)
	require.NotNil(t, m)

	// the constant holds over the whole unit interval
	for _, size := range []string{"0", "0.5", "1"} {
		v, err := m.CaptureTime(dec.MustParse(size))
		assert.Nil(t, err)
		assert.True(t, v.Cmp(dec.MustParse("2e-12")) == 0, "capture time at %s: %s", size, v)
	}

	v, err := m.EscapeTime(dec.MustParse("0.25"))
	assert.Nil(t, err)
	assert.True(t, v.Cmp(dec.MustParse("3e-9")) == 0)

	v, err = m.RecombinationTime(dec.One())
	assert.Nil(t, err)
	assert.True(t, v.IsZero())
}

func TestNewMaterialFileTimes(t *testing.T) {
	root := t.TempDir()

	require.Nil(t, os.MkdirAll(filepath.Join(root, "capturetimes"), 0o700))
	require.Nil(t, os.WriteFile(filepath.Join(root, "capturetimes", "inas.dat"),
		[]byte("1\t10\n2\t20\n"), 0o600))

	props := utBasicProps()
	props["capturetimes_file_nm_ps"] = "inas.dat"
	props["escapetimes"] = ""
	props["recombinationtimes"] = ""

	loader := piecewise.NewFileLoader("dat", "\t", 2, 0, 1)

	m, err := NewMaterial(props, loader, root, nil)
	assert.Nil(t, err)
	require.NotNil(t, m)

	v, err := m.CaptureTime(dec.MustParse("1.5e-9"))
	assert.Nil(t, err)
	assert.True(t, v.Cmp(dec.MustParse("15e-12")) == 0, "got %s", v)

	_, err = m.CaptureTime(dec.MustParse("3e-9"))
	assert.True(t, errors.Is(err, commerr.ErrOutOfRange))
}

func TestNewMaterialMissingTimeKey(t *testing.T) {
	props := utBasicProps()
	props["capturetimes_ps"] = "2"
	props["escapetimes_ns"] = "3"

	_, err := NewMaterial(props, nil, "", nil)
	assert.True(t, errors.Is(err, commerr.ErrInvalidArgument))
}

func TestNewMaterialFileLoadFailure(t *testing.T) {
	props := utBasicProps()
	props["capturetimes_file_nm_ps"] = "missing.dat"
	props["escapetimes"] = ""
	props["recombinationtimes"] = ""

	_, err := NewMaterial(props, piecewise.NewFileLoader("dat", "\t", 2, 0, 1), t.TempDir(), nil)
	assert.NotNil(t, err)
}

func TestMaterialCopy(t *testing.T) {
	props := utBasicProps()
	props["capturetimes_ps"] = "2"
	props["escapetimes"] = ""
	props["recombinationtimes"] = ""

	m, err := NewMaterial(props, nil, "", nil)
	require.Nil(t, err)

	cp := m.Copy()
	assert.EqualValues(t, m.Name(), cp.Name())
	assert.True(t, m.Bandgap().Cmp(cp.Bandgap()) == 0)

	v1, err := m.CaptureTime(dec.Zero())
	assert.Nil(t, err)

	v2, err := cp.CaptureTime(dec.Zero())
	assert.Nil(t, err)
	assert.True(t, v1.Cmp(v2) == 0)
}
