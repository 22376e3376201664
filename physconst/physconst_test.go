package physconst

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/sgostarter/libphysics/dec"
	"github.com/stretchr/testify/assert"
)

func TestValues(t *testing.T) {
	assert.True(t, KB().Cmp(dec.MustParse("1.380649e-23")) == 0)
	assert.True(t, EV().Cmp(dec.MustParse("1.602176634e-19")) == 0)
	assert.True(t, C().Cmp(dec.MustParse("299792458")) == 0)
	assert.True(t, H().Cmp(dec.MustParse("6.62607015e-34")) == 0)
}

func TestHBar(t *testing.T) {
	var twoPi, expected apd.Decimal

	ed := apd.MakeErrDecimal(dec.Ctx)
	ed.Mul(&twoPi, Pi(), apd.New(2, 0))
	ed.Quo(&expected, H(), &twoPi)
	assert.Nil(t, ed.Err())

	assert.True(t, HBar().Cmp(&expected) == 0)
}

func TestAccessorsReturnCopies(t *testing.T) {
	q := Q()
	q.SetInt64(0)

	assert.True(t, Q().Cmp(dec.MustParse("1.60217733e-19")) == 0)
}
