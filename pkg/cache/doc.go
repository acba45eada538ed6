// Package cache provides a generic thread-safe LRU cache with optional TTL,
// used by the catalog client as a read-through cache for product and
// category lookups.
package cache
