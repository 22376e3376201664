package piecewise

import (
	"errors"
	"sync"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/libphysics/dec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utFunction(t *testing.T, points map[string]string) *Function {
	t.Helper()

	samples := make([]Sample, 0, len(points))

	for x, y := range points {
		samples = append(samples, Sample{X: dec.MustParse(x), Y: dec.MustParse(y)})
	}

	return FromSamples(samples)
}

func utAssertDecimal(t *testing.T, expected string, got interface{ String() string }) {
	t.Helper()

	require.NotNil(t, got)
	assert.True(t, dec.MustParse(expected).Cmp(dec.MustParse(got.String())) == 0,
		"expected %s, got %s", expected, got)
}

func TestValueAtStoredPoint(t *testing.T) {
	fn := utFunction(t, map[string]string{"0": "1", "1": "3", "2": "7"})

	v, err := fn.ValueAt(dec.MustParse("1"))
	assert.Nil(t, err)
	utAssertDecimal(t, "3", v)

	// representation of the position must not matter
	v, err = fn.ValueAt(dec.MustParse("1.000"))
	assert.Nil(t, err)
	utAssertDecimal(t, "3", v)

	v, err = fn.ValueAt(dec.MustParse("1e0"))
	assert.Nil(t, err)
	utAssertDecimal(t, "3", v)
}

func TestValueAtInterpolates(t *testing.T) {
	fn := utFunction(t, map[string]string{"0": "0", "2": "2"})

	v, err := fn.ValueAt(dec.MustParse("1"))
	assert.Nil(t, err)
	utAssertDecimal(t, "1", v)

	v, err = fn.ValueAt(dec.MustParse("0.5"))
	assert.Nil(t, err)
	utAssertDecimal(t, "0.5", v)

	fn = utFunction(t, map[string]string{"1": "10", "3": "-10"})

	v, err = fn.ValueAt(dec.MustParse("2"))
	assert.Nil(t, err)
	utAssertDecimal(t, "0", v)

	v, err = fn.ValueAt(dec.MustParse("1.5"))
	assert.Nil(t, err)
	utAssertDecimal(t, "5", v)
}

func TestValueAtOutOfRange(t *testing.T) {
	fn := utFunction(t, map[string]string{"0": "0", "2": "2"})

	_, err := fn.ValueAt(dec.MustParse("-0.001"))
	assert.True(t, errors.Is(err, commerr.ErrOutOfRange))

	_, err = fn.ValueAt(dec.MustParse("2.001"))
	assert.True(t, errors.Is(err, commerr.ErrOutOfRange))

	v, err := fn.ValueAt(dec.MustParse("2.000"))
	assert.Nil(t, err)
	utAssertDecimal(t, "2", v)
}

func TestDuplicateAbscissaCollapses(t *testing.T) {
	fn := FromSamples([]Sample{
		{X: dec.MustParse("1.5"), Y: dec.MustParse("1")},
		{X: dec.MustParse("1.50"), Y: dec.MustParse("2")},
	})

	assert.EqualValues(t, 1, fn.Len())

	v, err := fn.ValueAt(dec.MustParse("1.5"))
	assert.Nil(t, err)
	utAssertDecimal(t, "2", v)
}

func TestStartEndMaximum(t *testing.T) {
	fn := utFunction(t, map[string]string{"-1": "5", "0": "9", "3": "2"})

	start, err := fn.Start()
	assert.Nil(t, err)
	utAssertDecimal(t, "-1", start)

	end, err := fn.End()
	assert.Nil(t, err)
	utAssertDecimal(t, "3", end)

	maximum, err := fn.Maximum()
	assert.Nil(t, err)
	utAssertDecimal(t, "0", maximum.X)
	utAssertDecimal(t, "9", maximum.Y)
}

func TestMaximumTieKeepsEarliest(t *testing.T) {
	fn := utFunction(t, map[string]string{"0": "9", "1": "9", "2": "1"})

	maximum, err := fn.Maximum()
	assert.Nil(t, err)
	utAssertDecimal(t, "0", maximum.X)
}

func TestEmptyFunction(t *testing.T) {
	fn := New()

	_, err := fn.Start()
	assert.True(t, errors.Is(err, ErrNoPoints))

	_, err = fn.End()
	assert.True(t, errors.Is(err, ErrNoPoints))

	_, err = fn.Maximum()
	assert.True(t, errors.Is(err, ErrNoPoints))

	_, err = fn.MeanIntervalSize()
	assert.True(t, errors.Is(err, ErrNoPoints))

	_, err = fn.ValueAt(dec.Zero())
	assert.True(t, errors.Is(err, commerr.ErrOutOfRange))

	assert.EqualValues(t, 0, fn.Len())
}

func TestMeanIntervalSize(t *testing.T) {
	fn := utFunction(t, map[string]string{"0": "0", "1": "0", "2": "0"})

	// span divided by the point count, not the interval count
	size, err := fn.MeanIntervalSize()
	assert.Nil(t, err)
	utAssertDecimal(t, "0.6666666666666666666666666666666667", size)

	fn = utFunction(t, map[string]string{"0": "1", "10": "1"})

	size, err = fn.MeanIntervalSize()
	assert.Nil(t, err)
	utAssertDecimal(t, "5", size)
}

func TestEqual(t *testing.T) {
	fn1 := utFunction(t, map[string]string{"0": "1", "1": "2"})
	fn2 := FromSamples([]Sample{
		{X: dec.MustParse("0.0"), Y: dec.MustParse("1.00")},
		{X: dec.MustParse("1e0"), Y: dec.MustParse("2")},
	})

	assert.True(t, fn1.Equal(fn2))
	assert.True(t, fn2.Equal(fn1))

	fn3 := utFunction(t, map[string]string{"0": "1", "1": "2.5"})
	assert.False(t, fn1.Equal(fn3))

	fn4 := utFunction(t, map[string]string{"0": "1"})
	assert.False(t, fn1.Equal(fn4))

	assert.False(t, fn1.Equal(nil))
}

func TestCopyIsIndependent(t *testing.T) {
	fn := utFunction(t, map[string]string{"0": "1", "1": "2"})
	cp := fn.Copy()

	assert.True(t, fn.Equal(cp))

	// mutating returned samples must not touch either instance
	samples := cp.Samples()
	samples[0].Y.SetInt64(42)

	assert.True(t, fn.Equal(cp))

	abscissa := fn.Abscissa()
	require.EqualValues(t, 2, len(abscissa))
	abscissa[1].SetInt64(-5)

	end, err := fn.End()
	assert.Nil(t, err)
	utAssertDecimal(t, "1", end)
}

func TestIsInRange(t *testing.T) {
	fn := utFunction(t, map[string]string{"-1": "0", "1": "0"})

	assert.True(t, fn.IsInRange(dec.MustParse("-1")))
	assert.True(t, fn.IsInRange(dec.Zero()))
	assert.True(t, fn.IsInRange(dec.One()))
	assert.False(t, fn.IsInRange(dec.MustParse("1.1")))
	assert.False(t, fn.IsInRange(dec.MustParse("-2")))
}

func TestConcurrentValueAt(t *testing.T) {
	fn := utFunction(t, map[string]string{"0": "0", "10": "10"})

	var wg sync.WaitGroup

	for idx := 0; idx < 8; idx++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for n := 0; n <= 10; n++ {
				v, err := fn.ValueAt(apd.New(int64(n), 0))
				assert.Nil(t, err)
				assert.True(t, v.Cmp(apd.New(int64(n), 0)) == 0)
			}
		}()
	}

	wg.Wait()
}
