package fmstorage

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/godruoyi/go-snowflake"
	"github.com/sgostarter/histfit/histogram"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/stg"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"
	"github.com/sgostarter/libeasygo/stg/mwf"
)

func NewFMStorage(root string, storage stg.FileStorage) histogram.Storage {
	return NewFMStorageEx(root, storage, "histograms.json")
}

func NewFMStorageEx(root string, storage stg.FileStorage, fileName string) histogram.Storage {
	if storage == nil {
		storage = rawfs.NewFSStorage("")
	}

	return &fmStorageImpl{
		histogramStorage: mwf.NewMemWithFile[map[uint64]*histogram.Info, mwf.Serial, mwf.Lock](
			make(map[uint64]*histogram.Info), &mwf.JSONSerial{}, &sync.RWMutex{}, filepath.Join(root, fileName), storage),
	}
}

type fmStorageImpl struct {
	histogramStorage *mwf.MemWithFile[map[uint64]*histogram.Info, mwf.Serial, mwf.Lock]
}

func (impl *fmStorageImpl) Add(_ context.Context, name string, h *histogram.Histogram) (id uint64, err error) {
	if h == nil {
		err = commerr.ErrInvalidArgument

		return
	}

	id = snowflake.ID()

	err = impl.histogramStorage.Change(func(oldD map[uint64]*histogram.Info) (map[uint64]*histogram.Info, error) {
		if len(oldD) == 0 {
			oldD = make(map[uint64]*histogram.Info)
		}

		if _, ok := oldD[id]; ok {
			return nil, commerr.ErrAlreadyExists
		}

		oldD[id] = &histogram.Info{
			ID:        id,
			Name:      name,
			CreateAt:  time.Now().Unix(),
			Histogram: h.Clone(),
		}

		return oldD, nil
	})

	return
}

func (impl *fmStorageImpl) Get(_ context.Context, id uint64) (info *histogram.Info, err error) {
	impl.histogramStorage.Read(func(d map[uint64]*histogram.Info) {
		i, ok := d[id]
		if !ok {
			err = commerr.ErrNotFound

			return
		}

		info = cloneInfo(i)
	})

	return
}

func (impl *fmStorageImpl) List(_ context.Context) (infos []*histogram.Info, err error) {
	impl.histogramStorage.Read(func(d map[uint64]*histogram.Info) {
		for _, i := range d {
			infos = append(infos, cloneInfo(i))
		}
	})

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})

	return
}

func (impl *fmStorageImpl) Del(_ context.Context, id uint64) error {
	return impl.histogramStorage.Change(func(oldD map[uint64]*histogram.Info) (map[uint64]*histogram.Info, error) {
		if _, ok := oldD[id]; !ok {
			return nil, commerr.ErrNotFound
		}

		delete(oldD, id)

		return oldD, nil
	})
}

func cloneInfo(i *histogram.Info) *histogram.Info {
	info := *i
	if i.Histogram != nil {
		info.Histogram = i.Histogram.Clone()
	}

	return &info
}
