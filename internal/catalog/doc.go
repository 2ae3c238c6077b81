// Package catalog holds the registry of logical fields that input columns can
// be mapped onto.
//
// Core fields are seeded by New and cannot be edited or removed. Custom fields
// are created by the user; those marked Retained are handed to a catalog store
// for persistence, the others only live for the current session.
package catalog
