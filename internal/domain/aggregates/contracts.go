package aggregates

import "strings"

// LockScope names the key a write serializes on before its transaction begins.
type LockScope string

const (
	LockScopeCourse LockScope = "course"
	LockScopeNone   LockScope = "none"
)

// Contract describes the write boundary an aggregate owns.
type Contract struct {
	Name string
	// Writes lists the operation names reported to hooks and spans.
	Writes []string
	Lock   LockScope
	Notes  string
}

// Aggregate is implemented by every aggregate so wiring can log what it owns.
type Aggregate interface {
	Contract() Contract
}

// Owns reports whether op is one of the contract's write operations.
func (c Contract) Owns(op string) bool {
	op = strings.TrimSpace(op)
	for _, w := range c.Writes {
		if w == op {
			return true
		}
	}
	return false
}
