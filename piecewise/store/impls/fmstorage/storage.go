package fmstorage

import (
	"path/filepath"
	"sort"
	"sync"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/stg"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"
	"github.com/sgostarter/libeasygo/stg/mwf"
	"github.com/sgostarter/libphysics/piecewise"
	"github.com/sgostarter/libphysics/piecewise/store"
)

func NewFMStorage(root string, storage stg.FileStorage) store.Storage {
	return NewFMStorageEx(root, storage, "functions.json", false)
}

func NewFMStorageEx(root string, storage stg.FileStorage, fileName string, prettySerial bool) store.Storage {
	if storage == nil {
		storage = rawfs.NewFSStorage("")
	}

	return &fmStorageImpl{
		functionStorage: mwf.NewMemWithFile[map[string][]store.SampleD, mwf.Serial, mwf.Lock](
			make(map[string][]store.SampleD), &mwf.JSONSerial{
				MarshalIndent: prettySerial,
			}, &sync.RWMutex{}, filepath.Join(root, fileName), storage),
	}
}

type fmStorageImpl struct {
	functionStorage *mwf.MemWithFile[map[string][]store.SampleD, mwf.Serial, mwf.Lock]
}

func (impl *fmStorageImpl) Save(key string, fn *piecewise.Function) error {
	if fn == nil {
		return commerr.ErrInvalidArgument
	}

	ds := store.EncodeFunction(fn)

	return impl.functionStorage.Change(func(oldD map[string][]store.SampleD) (map[string][]store.SampleD, error) {
		if oldD == nil {
			oldD = make(map[string][]store.SampleD)
		}

		oldD[key] = ds

		return oldD, nil
	})
}

func (impl *fmStorageImpl) Load(key string) (fn *piecewise.Function, err error) {
	impl.functionStorage.Read(func(d map[string][]store.SampleD) {
		ds, ok := d[key]
		if !ok {
			err = commerr.ErrNotFound

			return
		}

		fn, err = store.DecodeFunction(ds)
	})

	return
}

func (impl *fmStorageImpl) Keys() (keys []string, err error) {
	impl.functionStorage.Read(func(d map[string][]store.SampleD) {
		for key := range d {
			keys = append(keys, key)
		}
	})

	sort.Strings(keys)

	return
}
