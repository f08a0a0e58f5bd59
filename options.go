package fairpay

import (
	"fmt"

	"github.com/hoopstats/go-fairpay/models"
)

type Options struct {
	// Neighbors is the k used by every leave-one-out fit. It is supplied by
	// the caller and never tuned internally since tuning against the target
	// defeats the method.
	Neighbors int

	// TopN bounds the overpaid and underpaid rankings in reports.
	TopN int
}

func NewDefaultOptions() *Options {
	return &Options{
		Neighbors: 10,
		TopN:      10,
	}
}

func (opt *Options) Validate() (*Options, error) {
	if opt == nil {
		return NewDefaultOptions(), nil
	}
	if opt.Neighbors < 1 {
		return nil, fmt.Errorf("got neighbor count of %d, %w", opt.Neighbors, models.ErrInvalidNeighborCount)
	}
	if opt.TopN < 1 {
		return nil, fmt.Errorf("got ranking size of %d, %w", opt.TopN, ErrInvalidTopN)
	}
	return opt, nil
}
