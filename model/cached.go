package model

import (
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/spf13/cast"
)

// NewCachedModel memoizes CDF evaluations of m. Fitting evaluates the CDF at
// the same edges for every candidate, and the final expectation is computed
// at a point the minimizer has already visited.
func NewCachedModel(m Model, expiration time.Duration) *CachedModel {
	if expiration <= 0 {
		expiration = time.Minute
	}

	return &CachedModel{
		Model: m,
		cdfs:  cache.New(expiration, expiration*2),
	}
}

type CachedModel struct {
	Model

	cdfs *cache.Cache
}

func (c *CachedModel) CDF(params []float64, x float64) float64 {
	key := c.key(params, x)

	if v, ok := c.cdfs.Get(key); ok {
		return cast.ToFloat64(v)
	}

	v := c.Model.CDF(params, x)

	c.cdfs.SetDefault(key, v)

	return v
}

func (c *CachedModel) Entries() int {
	return c.cdfs.ItemCount()
}

func (c *CachedModel) Flush() {
	c.cdfs.Flush()
}

func (c *CachedModel) key(params []float64, x float64) string {
	var sb strings.Builder

	for _, p := range params {
		sb.WriteString(cast.ToString(p))
		sb.WriteByte(',')
	}

	sb.WriteByte('@')
	sb.WriteString(cast.ToString(x))

	return sb.String()
}

func (c *CachedModel) Unwrap() Model {
	return c.Model
}
