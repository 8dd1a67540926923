package dashboard

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"sync"
	"time"
)

// ChartKind identifies which chart of the page a cache entry belongs to.
type ChartKind string

const (
	ChartTrend     ChartKind = "trend"
	ChartPieCost   ChartKind = "pie-cost"
	ChartPieClicks ChartKind = "pie-clicks"
)

// ChartKey addresses one rendered chart: the chart, the theme it was drawn with and
// a digest of the data behind it.
type ChartKey struct {
	Kind   ChartKind
	Theme  string
	Series uint64
}

// RenderCache memoizes rendered chart markup.
type RenderCache interface {
	GetOrRender(key ChartKey, render func() (string, error)) (string, error)
}

// ChartCache keeps rendered charts for a fixed TTL. Campaign edits change the data
// digest, so stale entries are never served; they only age out.
type ChartCache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.Mutex
	entries map[ChartKey]chartEntry
}

type chartEntry struct {
	markup  string
	expires time.Time
}

// NewChartCache builds a cache. A non-positive TTL disables caching.
func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[ChartKey]chartEntry),
	}
}

// GetOrRender returns the live entry for key or renders and stores a new one.
// Render errors are not cached.
func (c *ChartCache) GetOrRender(key ChartKey, render func() (string, error)) (string, error) {
	if c == nil || c.ttl <= 0 {
		return render()
	}
	now := c.now()
	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()
	if ok && now.Before(entry.expires) {
		return entry.markup, nil
	}

	markup, err := render()
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	c.pruneLocked(now)
	c.entries[key] = chartEntry{markup: markup, expires: now.Add(c.ttl)}
	c.mu.Unlock()
	return markup, nil
}

// Len reports the number of stored entries, expired ones included until the next write.
func (c *ChartCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *ChartCache) pruneLocked(now time.Time) {
	for key, entry := range c.entries {
		if !now.Before(entry.expires) {
			delete(c.entries, key)
		}
	}
}

// trendDigest fingerprints the weekly series in order.
func trendDigest(series []TrendSeries) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, s := range series {
		binary.LittleEndian.PutUint64(buf[:], uint64(s.CampaignID))
		h.Write(buf[:])
		h.Write([]byte(s.Name))
		h.Write([]byte{0})
		h.Write([]byte(s.Color))
		h.Write([]byte{0})
		for _, p := range s.Points {
			binary.LittleEndian.PutUint64(buf[:], uint64(p))
			h.Write(buf[:])
		}
	}
	return h.Sum64()
}

// sliceDigest fingerprints pie slices in order.
func sliceDigest(slices []DistributionSlice) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, s := range slices {
		h.Write([]byte(s.Name))
		h.Write([]byte{0})
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(s.Value))
		h.Write(buf[:])
		h.Write([]byte(s.Color))
		h.Write([]byte{0})
	}
	return h.Sum64()
}
