package piecewise

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sgostarter/libphysics/units"
)

// NewCachedLoader decorates a Loader so repeated loads of the same file with
// the same units reuse the parsed function. Sharing is safe because functions
// are immutable. ttl <= 0 keeps entries forever.
func NewCachedLoader(inner Loader, ttl time.Duration) Loader {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}

	return &cachedLoader{
		inner:     inner,
		functions: cache.New(ttl, ttl),
	}
}

type cachedLoader struct {
	inner     Loader
	functions *cache.Cache
}

func (impl *cachedLoader) genCachedKey(path string, abscissaUnit, valueUnit units.Prefix) string {
	return fmt.Sprintf("%s:%s:%s", abscissaUnit, valueUnit, path)
}

func (impl *cachedLoader) LoadFunction(path string, abscissaUnit, valueUnit units.Prefix) (*Function, error) {
	key := impl.genCachedKey(path, abscissaUnit, valueUnit)

	if i, ok := impl.functions.Get(key); ok {
		if fn, ok := i.(*Function); ok {
			return fn, nil
		}
	}

	fn, err := impl.inner.LoadFunction(path, abscissaUnit, valueUnit)
	if err != nil {
		return nil, err
	}

	impl.functions.Set(key, fn, cache.DefaultExpiration)

	return fn, nil
}
