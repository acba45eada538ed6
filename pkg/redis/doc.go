// Package redis dials the Redis instance that backs shared credential
// storage in server-rendered storefront deployments, where many instances
// must observe the same session. The in-memory and file stores need no such
// setup; this package only matters when tokenstore.RedisStore is selected.
package redis
