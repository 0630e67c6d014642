package config

import (
	"net/http"
	"net/url"
	"time"

	"gitlab.com/distributed_lab/figure/v3"
	jsonapi "gitlab.com/distributed_lab/json-api-connector"
	"gitlab.com/distributed_lab/kit/kv"
	"gitlab.com/distributed_lab/logan/v3/errors"
	"gitlab.com/tokend/connectors/signed"
)

// Collector is the frontend-facing aggregator that receives bucket snapshots.
// Disabled when no endpoint is configured, so the service can run as a pure
// indexer in development.
type Collector struct {
	Connector *jsonapi.Connector
	Disabled  bool
}

func (c *config) Collector() Collector {
	return c.collectorOnce.Do(func() interface{} {
		var cfg struct {
			Endpoint       *url.URL      `fig:"endpoint"`
			RequestTimeout time.Duration `fig:"request_timeout"`
		}
		err := figure.Out(&cfg).
			From(kv.MustGetStringMap(c.getter, "collector")).
			Please()
		if err != nil {
			panic(errors.Wrap(err, "failed to figure out collector"))
		}

		if cfg.Endpoint == nil {
			return Collector{Disabled: true}
		}

		if cfg.RequestTimeout == 0 {
			cfg.RequestTimeout = defaultRequestTimeout
		}

		return Collector{
			Connector: jsonapi.NewConnector(signed.NewClient(&http.Client{Timeout: cfg.RequestTimeout}, cfg.Endpoint)),
		}
	}).(Collector)
}
