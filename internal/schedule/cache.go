package schedule

// maxCacheEntries bounds the validation cache. Exceeding it clears the whole
// cache: slot validity is cheap to recompute, and staleness has to be
// eliminated rather than merely bounded, so a clear beats an LRU here.
const maxCacheEntries = 1000

// ValidationCache memoizes slot validity results keyed by
// (day, hour, minute, appointmentID). It is advisory: callers must treat it
// as a performance optimization, never a correctness guarantee.
type ValidationCache struct {
	entries map[string]bool
}

// NewValidationCache creates an empty cache.
func NewValidationCache() *ValidationCache {
	return &ValidationCache{entries: make(map[string]bool)}
}

func cacheKey(slot Slot, appointmentID string) string {
	return slot.Key() + "|" + appointmentID
}

// Get returns the cached validity for the slot/appointment pair.
func (c *ValidationCache) Get(slot Slot, appointmentID string) (valid, ok bool) {
	valid, ok = c.entries[cacheKey(slot, appointmentID)]
	return valid, ok
}

// Put stores a validity result. If the cache would grow past its bound it is
// cleared first.
func (c *ValidationCache) Put(slot Slot, appointmentID string, valid bool) {
	key := cacheKey(slot, appointmentID)
	if _, exists := c.entries[key]; !exists && len(c.entries) >= maxCacheEntries {
		c.Clear()
	}
	c.entries[key] = valid
}

// Len returns the current entry count.
func (c *ValidationCache) Len() int {
	return len(c.entries)
}

// Clear drops every entry.
func (c *ValidationCache) Clear() {
	c.entries = make(map[string]bool)
}
