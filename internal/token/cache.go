package token

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gitlab.com/distributed_lab/logan/v3"
)

// NameETH is the canonical label for the zero address. It is returned
// synchronously, no lookup is ever issued for it.
const NameETH = "ETH"

// NameUnknown is the stable sentinel for addresses whose name lookup failed.
// Once cached it is never retried within the session.
const NameUnknown = "Name Unknown"

const defaultLookupTimeout = 3 * time.Second

// MetadataSource performs the actual on-chain name()/decimals() calls.
type MetadataSource interface {
	TokenName(ctx context.Context, token common.Address) (string, error)
	TokenDecimals(ctx context.Context, token common.Address) (uint8, error)
}

type decimalsEntry struct {
	value    uint8
	resolved bool
}

// Cache memoizes token metadata for the lifetime of the process. Negative
// results are cached too, so a contract without a metadata surface costs one
// timed-out call per field, not one per render. Racing lookups for the same
// address may duplicate work; both converge to the same stable value.
type Cache struct {
	source  MetadataSource
	timeout time.Duration
	log     *logan.Entry

	mu       sync.Mutex
	names    map[common.Address]string
	decimals map[common.Address]decimalsEntry
}

func NewCache(source MetadataSource, timeout time.Duration, log *logan.Entry) *Cache {
	if timeout == 0 {
		timeout = defaultLookupTimeout
	}
	return &Cache{
		source:   source,
		timeout:  timeout,
		log:      log,
		names:    make(map[common.Address]string),
		decimals: make(map[common.Address]decimalsEntry),
	}
}

// Name resolves a display label for a token contract. The zero address is
// always "ETH"; an unresolvable contract is permanently "Name Unknown".
// Never fails.
func (c *Cache) Name(ctx context.Context, token common.Address) string {
	if token == (common.Address{}) {
		return NameETH
	}

	c.mu.Lock()
	if name, ok := c.names[token]; ok {
		c.mu.Unlock()
		return name
	}
	c.mu.Unlock()

	child, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	name, err := c.source.TokenName(child, token)
	if err != nil {
		c.log.WithError(err).WithField("token", token.Hex()).
			Warn("failed to resolve token name, caching sentinel")
		name = NameUnknown
	}

	c.mu.Lock()
	c.names[token] = name
	c.mu.Unlock()
	return name
}

// Decimals resolves a token's decimals. The second return reports whether the
// value actually came from the contract; on failure it is false and the
// failure is cached so the address is not queried again.
func (c *Cache) Decimals(ctx context.Context, token common.Address) (uint8, bool) {
	if token == (common.Address{}) {
		return 18, true
	}

	c.mu.Lock()
	if e, ok := c.decimals[token]; ok {
		c.mu.Unlock()
		return e.value, e.resolved
	}
	c.mu.Unlock()

	child, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	entry := decimalsEntry{}
	d, err := c.source.TokenDecimals(child, token)
	if err != nil {
		c.log.WithError(err).WithField("token", token.Hex()).
			Warn("failed to resolve token decimals, falling back to raw values")
	} else {
		entry = decimalsEntry{value: d, resolved: true}
	}

	c.mu.Lock()
	c.decimals[token] = entry
	c.mu.Unlock()
	return entry.value, entry.resolved
}

// Clear drops all memoized values, positive and negative.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.names = make(map[common.Address]string)
	c.decimals = make(map[common.Address]decimalsEntry)
	c.mu.Unlock()
}
