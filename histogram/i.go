package histogram

import "context"

type Info struct {
	ID        uint64     `json:"id" yaml:"id"`
	Name      string     `json:"name,omitempty" yaml:"name,omitempty"`
	CreateAt  int64      `json:"create_at,omitempty" yaml:"create_at,omitempty"`
	Histogram *Histogram `json:"histogram" yaml:"histogram"`
}

type Storage interface {
	Add(ctx context.Context, name string, h *Histogram) (id uint64, err error)
	Get(ctx context.Context, id uint64) (*Info, error)
	List(ctx context.Context) ([]*Info, error)
	Del(ctx context.Context, id uint64) error
}
