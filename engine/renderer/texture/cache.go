package texture

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer/bind_group_provider"
)

// entry is one cached provider and the number of holders still using it.
type entry struct {
	provider bind_group_provider.BindGroupProvider
	refs     int
}

// cache is the implementation of the Cache interface.
type cache struct {
	mu      *sync.Mutex
	entries map[Key]*entry
}

// Cache holds texture bind groups keyed by slot and pixel content. Entries are reference counted so several states
// can share one cache; a provider is released when its last holder lets go of it.
type Cache interface {
	// Acquire returns the provider stored under key and takes a reference to it.
	//
	// Parameters:
	//   - key: the texture key to read
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the stored provider, or nil
	//   - bool: true if the key is present
	Acquire(key Key) (bind_group_provider.BindGroupProvider, bool)

	// Store places provider under key with a single reference held by the caller.
	//
	// Parameters:
	//   - key: the texture key to write
	//   - provider: the texture bind group provider
	//
	// Returns:
	//   - error: an error if the slot is outside the cache or the key is already stored
	Store(key Key, provider bind_group_provider.BindGroupProvider) error

	// Drop gives up one reference to key, releasing the provider when none remain.
	//
	// Parameters:
	//   - key: the texture key to drop
	Drop(key Key)

	// Len returns the number of stored textures.
	Len() int

	// Release releases every stored provider regardless of references and empties the cache.
	Release()
}

var _ Cache = &cache{}

// NewCache creates an empty texture cache.
//
// Returns:
//   - Cache: the empty cache
func NewCache() Cache {
	return &cache{
		mu:      &sync.Mutex{},
		entries: make(map[Key]*entry),
	}
}

func inRange(slot Slot) bool {
	return slot.Column >= 0 && slot.Column < SlotsPerAxis && slot.Row >= 0 && slot.Row < SlotsPerAxis
}

func (c *cache) Acquire(key Key) (bind_group_provider.BindGroupProvider, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	e.refs++
	return e.provider, true
}

func (c *cache) Store(key Key, provider bind_group_provider.BindGroupProvider) error {
	if !inRange(key.Slot) {
		return fmt.Errorf("texture slot %+v out of range", key.Slot)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; exists {
		return fmt.Errorf("texture %+v already cached", key)
	}
	c.entries[key] = &entry{provider: provider, refs: 1}
	return nil
}

func (c *cache) Drop(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return
	}
	e.refs--
	if e.refs <= 0 {
		e.provider.Release()
		delete(c.entries, key)
	}
}

func (c *cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *cache) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		e.provider.Release()
		delete(c.entries, key)
	}
}
