// Package yamlfs keeps every histogram in its own yaml file under a root
// directory, named by id, so the files stay readable and diffable by hand.
package yamlfs

import (
	"context"
	"errors"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/godruoyi/go-snowflake"
	"github.com/sgostarter/histfit/histogram"
	"github.com/sgostarter/i/commerr"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

const fileExt = ".yaml"

func NewYAMLStorage(root string) histogram.Storage {
	return &yamlStorage{
		root: root,
	}
}

type yamlStorage struct {
	root string
}

func (stg *yamlStorage) fileNameByID(id uint64) string {
	return path.Join(stg.root, cast.ToString(id)+fileExt)
}

func (stg *yamlStorage) Add(_ context.Context, name string, h *histogram.Histogram) (id uint64, err error) {
	if h == nil {
		err = commerr.ErrInvalidArgument

		return
	}

	_ = os.MkdirAll(stg.root, 0700)

	id = snowflake.ID()

	d, err := yaml.Marshal(&histogram.Info{
		ID:        id,
		Name:      name,
		CreateAt:  time.Now().Unix(),
		Histogram: h,
	})
	if err != nil {
		return
	}

	err = os.WriteFile(stg.fileNameByID(id), d, 0600)

	return
}

func (stg *yamlStorage) Get(_ context.Context, id uint64) (*histogram.Info, error) {
	return stg.load(stg.fileNameByID(id))
}

func (stg *yamlStorage) List(_ context.Context) (infos []*histogram.Info, err error) {
	entries, err := os.ReadDir(stg.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = nil
		}

		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}

		info, e := stg.load(path.Join(stg.root, entry.Name()))
		if e != nil {
			err = e

			return
		}

		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})

	return
}

func (stg *yamlStorage) Del(_ context.Context, id uint64) error {
	err := os.Remove(stg.fileNameByID(id))
	if errors.Is(err, os.ErrNotExist) {
		return commerr.ErrNotFound
	}

	return err
}

func (stg *yamlStorage) load(file string) (*histogram.Info, error) {
	d, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = commerr.ErrNotFound
		}

		return nil, err
	}

	var info histogram.Info

	if err = yaml.Unmarshal(d, &info); err != nil {
		return nil, err
	}

	if info.Histogram == nil {
		return nil, histogram.ErrInvalidHistogram
	}

	return &info, nil
}
