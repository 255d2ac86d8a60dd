// Package domain defines the typed scene records exchanged between the level editor's
// object manager and the persistence layer, together with the error kinds reported by
// save and load operations.
package domain
