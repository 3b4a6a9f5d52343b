// Package network implements a small semantic network: objects joined by
// typed, named relations, loaded from a three-section text description.
//
// Loading parses the description, materializes the asserted facts into a
// dense relation matrix and expands that matrix into its closure. A
// relation with a positive type is transitionable: closure follows it to
// reach further objects. A relation of type 1 also passes on properties:
// a source inherits every relation of the objects it reaches through it,
// wherever the source has no relation of its own yet.
//
// After loading, a Network is read-only and answers A:B:C pattern queries
// against the closed matrix.
package network
