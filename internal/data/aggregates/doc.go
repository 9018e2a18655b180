// Package aggregates contains infrastructure implementations of domain aggregate contracts.
//
// Implementations compose table-level repos from internal/data/repos and own the unit of
// work, course locking and timeout for every invariant-critical enrollment write.
package aggregates
