package rest

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/kasuganosora/smitebuilder/server/cache"
	"github.com/kasuganosora/smitebuilder/server/game/item"
	"github.com/kasuganosora/smitebuilder/server/metrics"
	"github.com/kasuganosora/smitebuilder/server/resource"
	"go.uber.org/zap"
)

const eligibleKeyPrefix = "eligible:"

// Eligibility runs the item pipelines over the catalog and caches eligible
// results by query. A nil cache or zero TTL disables caching.
type Eligibility struct {
	catalog *resource.Catalog
	cache   cache.Cache
	ttl     time.Duration
	metrics *metrics.EligibilityMetrics
	logger  *zap.Logger
}

// NewEligibility creates an Eligibility. m may be nil.
func NewEligibility(catalog *resource.Catalog, c cache.Cache, ttl time.Duration, m *metrics.EligibilityMetrics, logger *zap.Logger) *Eligibility {
	return &Eligibility{catalog: catalog, cache: c, ttl: ttl, metrics: m, logger: logger}
}

// List runs a listing pipeline. Listing results are not cached.
func (e *Eligibility) List(p *item.Pipeline) []resource.Item {
	return p.FilterObserved(e.catalog.Items(), item.Query{}, e.metrics)
}

// Eligible returns the items q may equip, in catalog order.
func (e *Eligibility) Eligible(ctx context.Context, q item.Query) []resource.Item {
	if e.cache == nil || e.ttl <= 0 {
		return item.DefaultPipeline.FilterObserved(e.catalog.Items(), q, e.metrics)
	}

	// The fingerprint scopes entries to one catalog, so a shared Redis never
	// serves ids computed from other data.
	key := eligibleKeyPrefix + e.catalog.Fingerprint() + ":" + q.CacheKey()

	var ids []int
	found, err := cache.GetJSON(ctx, e.cache, key, &ids)
	switch {
	case err != nil:
		e.metrics.RecordCacheLookup(metrics.CacheError)
		e.logger.Warn("eligibility cache read failed", zap.String("key", key), zap.Error(err))
	case found:
		if items, ok := e.resolve(ids); ok {
			e.metrics.RecordCacheLookup(metrics.CacheHit)
			return items
		}
		e.metrics.RecordCacheLookup(metrics.CacheError)
		e.logger.Warn("eligibility cache entry references unknown items", zap.String("key", key))
	default:
		e.metrics.RecordCacheLookup(metrics.CacheMiss)
	}

	items := item.DefaultPipeline.FilterObserved(e.catalog.Items(), q, e.metrics)
	ids = make([]int, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	if err := cache.SetJSON(ctx, e.cache, key, ids, e.ttl); err != nil {
		e.logger.Warn("eligibility cache write failed", zap.String("key", key), zap.Error(err))
	}
	return items
}

func (e *Eligibility) resolve(ids []int) ([]resource.Item, bool) {
	items := make([]resource.Item, 0, len(ids))
	for _, id := range ids {
		it, ok := e.catalog.ItemByID(id)
		if !ok {
			return nil, false
		}
		items = append(items, *it)
	}
	return items, true
}

// parseItemSet parses a comma separated id list such as "1,2,3". Blank
// entries are skipped. An empty string yields nil (no loadout supplied).
func parseItemSet(s string) (item.ItemSet, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	set := item.NewItemSet()
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		set[id] = struct{}{}
	}
	return set, nil
}
