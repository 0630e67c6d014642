package config

import (
	"gitlab.com/distributed_lab/figure/v3"
	"gitlab.com/distributed_lab/kit/kv"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"

	"github.com/ethereum/go-ethereum/common"
)

// Watchlist is the set of viewer addresses the service categorizes swaps for.
// It stands in for the wallet layer's "connected account", which is outside
// this service.
type Watchlist struct {
	Viewers []common.Address
}

func (c *config) Watchlist() Watchlist {
	return c.watchlistOnce.Do(func() interface{} {
		var cfg struct {
			Viewers []string `fig:"viewers,required"`
		}

		err := figure.Out(&cfg).
			From(kv.MustGetStringMap(c.getter, "watchlist")).
			Please()
		if err != nil {
			panic(errors.Wrap(err, "failed to figure out watchlist"))
		}

		viewers := make([]common.Address, 0, len(cfg.Viewers))
		for _, v := range cfg.Viewers {
			if !common.IsHexAddress(v) {
				panic(errors.From(errors.New("invalid viewer address"), logan.F{"address": v}))
			}
			viewers = append(viewers, common.HexToAddress(v))
		}

		return Watchlist{Viewers: viewers}
	}).(Watchlist)
}
