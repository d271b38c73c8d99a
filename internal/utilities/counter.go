package utilities

import (
	"sync"

	"github.com/tablestaff/tablestaff/internal/data"
)

type Counter interface {
	Read(key string) (hitCount, missCount int)
	ReadAll() *data.CacheCounters
	IncrementHit(key string) (hitCount int)
	IncrementMiss(key string) (missCount int)
	Reset()
}

type counts struct {
	hit  int
	miss int
}

type cacheCounter struct {
	sync.RWMutex
	counters map[string]*counts
}

func NewCounter(parameters ...any) Counter {
	return &cacheCounter{
		counters: make(map[string]*counts),
	}
}

func (c *cacheCounter) counter(key string) *counts {
	cntr, found := c.counters[key]
	if !found {
		cntr = &counts{}
		c.counters[key] = cntr
	}
	return cntr
}

func (c *cacheCounter) Read(key string) (int, int) {
	c.RLock()
	defer c.RUnlock()

	if cntr, found := c.counters[key]; found {
		return cntr.hit, cntr.miss
	}
	return -1, -1
}

func (c *cacheCounter) ReadAll() *data.CacheCounters {
	c.RLock()
	defer c.RUnlock()

	counterHits := make(map[string]int)
	counterMisses := make(map[string]int)
	for key, cntr := range c.counters {
		counterHits[key] = cntr.hit
		counterMisses[key] = cntr.miss
	}
	return &data.CacheCounters{
		CounterHits:   counterHits,
		CounterMisses: counterMisses,
	}
}

func (c *cacheCounter) IncrementHit(key string) int {
	c.Lock()
	defer c.Unlock()

	cntr := c.counter(key)
	cntr.hit++
	return cntr.hit
}

func (c *cacheCounter) IncrementMiss(key string) int {
	c.Lock()
	defer c.Unlock()

	cntr := c.counter(key)
	cntr.miss++
	return cntr.miss
}

func (c *cacheCounter) Reset() {
	c.Lock()
	defer c.Unlock()

	c.counters = make(map[string]*counts)
}
