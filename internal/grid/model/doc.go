// Package model stores one entity per grid cell.
//
// Two implementations share the Writable contract and behave identically:
//
//   - ArrayModel keeps a dense two-dimensional slice sized to the
//     structure. Use it when most cells hold non-default entities.
//   - SparseModel keeps only non-default entities in a map. Setting a cell
//     back to the default removes its entry.
//
// Entities are any comparable type. Each model has exactly one default
// entity; everything else is "non-default" and is what sparse storage and
// the non-default queries track.
//
// Derived queries (Lookup, Count, FilterSorted, NonDefaultCoordinates, ...)
// are package functions over Readable so both implementations share them.
// Filtering iterates only non-default cells when the default entity does
// not match the predicate.
//
// A single model must not be mutated by more than one goroutine at a time.
package model
