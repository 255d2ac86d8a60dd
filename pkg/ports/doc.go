// Package ports declares the boundaries of the persistence layer: the editor's object
// manager it consumes, and the scene stores and lockers it can be backed by.
package ports
