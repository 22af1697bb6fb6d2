package catalog

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	catalogDomain "assetfin-backend/internal/domain/catalog"

	"github.com/redis/go-redis/v9"
)

const (
	equityKeyPrefix = "catalog:equity:"
	ratesKey        = "catalog:rates"
)

// CachedReader is a read-through Redis cache in front of another catalog
// reader (normally the MySQL one). Catalog rows change rarely but the
// pricing screen hits them on every keystroke.
type CachedReader struct {
	inner catalogDomain.Reader
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedReader(inner catalogDomain.Reader, rdb *redis.Client, ttl time.Duration) *CachedReader {
	return &CachedReader{inner: inner, rdb: rdb, ttl: ttl}
}

func (c *CachedReader) LoanTypeEquityPercent(ctx context.Context, code string) (float64, error) {
	key := equityKeyPrefix + code
	if v, err := c.rdb.Get(ctx, key).Result(); err == nil {
		if pct, perr := strconv.ParseFloat(v, 64); perr == nil {
			return pct, nil
		}
		// unparsable cache entry: fall through and overwrite
	}

	pct, err := c.inner.LoanTypeEquityPercent(ctx, code)
	if err != nil {
		return 0, err
	}
	// cache failures are not pricing failures
	_ = c.rdb.Set(ctx, key, strconv.FormatFloat(pct, 'f', -1, 64), c.ttl).Err()
	return pct, nil
}

func (c *CachedReader) CurrentRates(ctx context.Context) (catalogDomain.Rates, error) {
	if b, err := c.rdb.Get(ctx, ratesKey).Bytes(); err == nil {
		var rates catalogDomain.Rates
		if uerr := json.Unmarshal(b, &rates); uerr == nil {
			return rates, nil
		}
	}

	rates, err := c.inner.CurrentRates(ctx)
	if err != nil {
		return catalogDomain.Rates{}, err
	}
	if b, merr := json.Marshal(rates); merr == nil {
		_ = c.rdb.Set(ctx, ratesKey, b, c.ttl).Err()
	}
	return rates, nil
}
