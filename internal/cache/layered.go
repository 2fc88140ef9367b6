package cache

import (
	"errors"
	"time"

	"github.com/ppiankov/adscout/internal/model"
)

// Layered checks memory first, then disk, promoting disk hits
type Layered struct {
	memory Cache
	disk   Cache
}

// NewLayered creates a layered cache over the given layers
func NewLayered(memory, disk Cache) *Layered {
	return &Layered{memory: memory, disk: disk}
}

// FromConfig builds the memory and disk layers described by cfg
func FromConfig(cfg model.CacheConfig) *Layered {
	return NewLayered(
		NewMemory(cfg.MemoryTTL, 10*time.Minute),
		NewDisk(cfg.Dir, cfg.DiskTTL),
	)
}

func (c *Layered) Get(key string) ([]byte, bool) {
	if val, ok := c.memory.Get(key); ok {
		return val, true
	}

	if val, ok := c.disk.Get(key); ok {
		_ = c.memory.Set(key, val, 0)
		return val, true
	}

	return nil, false
}

func (c *Layered) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, value, ttl)
}

func (c *Layered) Delete(key string) error {
	return errors.Join(c.memory.Delete(key), c.disk.Delete(key))
}

func (c *Layered) Clear() error {
	return errors.Join(c.memory.Clear(), c.disk.Clear())
}
