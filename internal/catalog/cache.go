package catalog

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/stardust-engine/internal/domain"
)

// templateCache keeps recently read templates. Templates never change once
// created, so entries only leave by size or TTL.
type templateCache struct {
	lru *expirable.LRU[uint64, domain.MissionTemplate]
}

func newTemplateCache(size int, ttl time.Duration) *templateCache {
	return &templateCache{
		lru: expirable.NewLRU[uint64, domain.MissionTemplate](size, nil, ttl),
	}
}

func (c *templateCache) Get(id uint64) (domain.MissionTemplate, bool) {
	return c.lru.Get(id)
}

func (c *templateCache) Set(t domain.MissionTemplate) {
	c.lru.Add(t.ID, t)
}

func (c *templateCache) Len() int {
	return c.lru.Len()
}
