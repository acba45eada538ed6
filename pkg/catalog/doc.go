// Package catalog is the client for product browsing (listings with search,
// category and pagination filters), category lookups, and seller product
// management. Reads of individual products and the category list go through
// a small TTL'd LRU cache.
package catalog
