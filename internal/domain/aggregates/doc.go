// Package aggregates defines domain-facing aggregate contracts.
//
// These contracts avoid persistence/transport implementation details and describe the
// write boundaries where enrollment invariants must hold atomically.
package aggregates
