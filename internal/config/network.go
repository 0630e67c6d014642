package config

import (
	"math"
	"time"

	"github.com/TokenSwapper/swap-status-svc/internal/gobind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"gitlab.com/distributed_lab/figure/v3"
	"gitlab.com/distributed_lab/kit/kv"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

type Network struct {
	Swapper   *gobind.Swapper
	EthClient *ethclient.Client

	ContractAddress common.Address
	ChainID         int64
	ChainName       string
	IndexPeriod     time.Duration
	PollPeriod      time.Duration
	BlockRange      uint64
	RequestTimeout  time.Duration
}

const defaultRequestTimeout = 10 * time.Second
const defaultPollPeriod = 5 * time.Second
const maxChainID int64 = math.MaxUint64/2 - 36

func (c *config) Network() Network {
	return c.networkOnce.Do(func() interface{} {
		var cfg struct {
			RPC            string         `fig:"rpc,required"`
			Contract       common.Address `fig:"contract,required"`
			ChainID        int64          `fig:"chain_id,required"`
			ChainName      string         `fig:"chain_name,required"`
			IndexPeriod    time.Duration  `fig:"index_period,required"`
			PollPeriod     time.Duration  `fig:"poll_period"`
			BlockRange     uint64         `fig:"block_range"`
			RequestTimeout time.Duration  `fig:"request_timeout"`
		}

		err := figure.Out(&cfg).
			With(figure.EthereumHooks).
			From(kv.MustGetStringMap(c.getter, "network")).
			Please()
		if err != nil {
			panic(errors.Wrap(err, "failed to figure out network"))
		}

		if cfg.ChainID > maxChainID || cfg.ChainID <= 0 {
			panic("chain_id value out of range due to EIP 2294")
		}
		cli, err := ethclient.Dial(cfg.RPC)
		if err != nil {
			panic(errors.Wrap(err, "failed to connect to RPC provider"))
		}
		s, err := gobind.NewSwapper(cfg.Contract, cli)
		if err != nil {
			panic(errors.Wrap(err, "failed to create contract caller"))
		}

		if cfg.RequestTimeout == 0 {
			cfg.RequestTimeout = defaultRequestTimeout
		}
		if cfg.PollPeriod == 0 {
			cfg.PollPeriod = defaultPollPeriod
		}

		return Network{
			Swapper:         s,
			EthClient:       cli,
			ContractAddress: cfg.Contract,
			ChainID:         cfg.ChainID,
			ChainName:       cfg.ChainName,
			IndexPeriod:     cfg.IndexPeriod,
			PollPeriod:      cfg.PollPeriod,
			BlockRange:      cfg.BlockRange,
			RequestTimeout:  cfg.RequestTimeout,
		}
	}).(Network)
}
