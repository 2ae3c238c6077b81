// Package store persists named output configs and the retained custom
// catalog fields.
//
// Three backends implement Store:
//   - FileStore: one JSON file per config under a directory
//   - RedisStore: JSON values in Redis, with a set indexing config names
//   - SQLiteStore: a SQLite database (modernc.org/sqlite, no cgo)
//
// Saving a config under an existing name replaces it and increments its
// version. Every document read back is checked by ValidateDocument.
package store
