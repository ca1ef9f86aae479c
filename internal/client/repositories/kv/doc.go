// Package kv implements the persisted string key-value substrate that the
// metadata index is stored in.
//
// Backends:
//   - SQLiteRepository: local file (schema managed by goose migrations)
//   - RedisRepository:  shared Redis instance, keys optionally prefixed
//   - MemoryRepository: process-local map, with failure injection for tests
//
// Every backend offers atomic single-key writes: a Set either replaces the
// whole value or leaves the old one in place.
package kv
