// Package cache memoizes constructed splines by knot table.
//
// Building a spline costs a tridiagonal solve over all knots. Callers that
// interpolate against the same (x, y) table many times can go through a
// Cache, which hashes the table and reuses the spline built on the first call.
package cache

import (
	"encoding/binary"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/erikcs/mnspline/spline"
)

// Cache maps knot tables to splines. It is safe for concurrent use.
type Cache struct {
	items  *gocache.Cache
	opts   []spline.Option
	logger *zap.Logger
}

// New returns a cache whose entries expire after ttl and are swept every
// cleanup interval. A ttl of gocache.NoExpiration keeps entries until Flush.
// opts are applied to every spline the cache builds.
func New(ttl, cleanup time.Duration, opts ...spline.Option) *Cache {
	return &Cache{
		items:  gocache.New(ttl, cleanup),
		opts:   opts,
		logger: spline.ApplyOptions(opts...).Logger,
	}
}

// Get returns the spline through (x, y), building and storing it on a miss.
func (c *Cache) Get(x, y []float64) (*spline.Spline, error) {
	key := tableKey(x, y)

	if v, ok := c.items.Get(key); ok {
		s := v.(*spline.Spline)
		if sameTable(s, x, y) {
			c.logger.Debug("spline cache hit", zap.String("key", key))
			return s, nil
		}
		c.logger.Debug("spline cache collision", zap.String("key", key))
	}

	s, err := spline.New(x, y, c.opts...)
	if err != nil {
		return nil, err
	}
	c.items.Set(key, s, gocache.DefaultExpiration)
	c.logger.Debug("spline cache miss", zap.String("key", key), zap.Int("knots", len(x)))

	return s, nil
}

// Interpolate evaluates the cached spline through (x, y) at xs.
func (c *Cache) Interpolate(x, y, xs []float64, parallel bool) ([]float64, error) {
	s, err := c.Get(x, y)
	if err != nil {
		return nil, err
	}
	return s.Evaluate(xs, parallel), nil
}

// Len returns the number of cached splines, including expired ones not yet
// swept.
func (c *Cache) Len() int {
	return c.items.ItemCount()
}

// Flush drops every cached spline.
func (c *Cache) Flush() {
	c.items.Flush()
}

// tableKey hashes the bit patterns of x and y. The lengths are part of the
// key so that tables splitting the same bits differently do not collide.
func tableKey(x, y []float64) string {
	d := xxhash.New()
	var buf [8]byte

	for _, v := range x {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = d.Write(buf[:])
	}
	for _, v := range y {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = d.Write(buf[:])
	}

	return strconv.Itoa(len(x)) + ":" + strconv.Itoa(len(y)) + ":" + strconv.FormatUint(d.Sum64(), 16)
}

func sameTable(s *spline.Spline, x, y []float64) bool {
	return slices.Equal(s.Knots(), x) && slices.Equal(s.Values(), y)
}
