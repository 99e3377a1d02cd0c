// Package users provides a process-wide cache of uid/gid name lookups.
//
// No third-party library in the retrieved pack wraps os/user with caching; the
// stdlib os/user package already does the syscalls, so this is a thin memoizing
// layer rather than a hand-rolled passwd parser.
package users

import (
	"os/user"
	"strconv"
	"sync"
)

// Cache resolves numeric uid/gid to display names, memoizing lookups.
type Cache struct {
	mu     sync.RWMutex
	users  map[uint32]string
	groups map[uint32]string
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		users:  make(map[uint32]string),
		groups: make(map[uint32]string),
	}
}

// Username returns the display name for uid, falling back to the numeric id.
func (c *Cache) Username(uid uint32) string {
	c.mu.RLock()
	if name, ok := c.users[uid]; ok {
		c.mu.RUnlock()
		return name
	}
	c.mu.RUnlock()

	name := strconv.FormatUint(uint64(uid), 10)
	if u, err := user.LookupId(name); err == nil {
		name = u.Username
	}

	c.mu.Lock()
	c.users[uid] = name
	c.mu.Unlock()
	return name
}

// Groupname returns the display name for gid, falling back to the numeric id.
func (c *Cache) Groupname(gid uint32) string {
	c.mu.RLock()
	if name, ok := c.groups[gid]; ok {
		c.mu.RUnlock()
		return name
	}
	c.mu.RUnlock()

	name := strconv.FormatUint(uint64(gid), 10)
	if g, err := user.LookupGroupId(name); err == nil {
		name = g.Name
	}

	c.mu.Lock()
	c.groups[gid] = name
	c.mu.Unlock()
	return name
}

// process-wide one-time-initialized singleton, set before the event loop starts.
var shared *Cache
var sharedOnce sync.Once

// Shared returns the process-wide users cache, creating it on first use.
func Shared() *Cache {
	sharedOnce.Do(func() {
		shared = New()
	})
	return shared
}
