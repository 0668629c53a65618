package ioreg

import "fmt"

// IOType identifies the bus a role resolves to (§4.7).
type IOType int

const (
	TypeDI IOType = iota
	TypeDO
	TypeAI
	TypeAO
)

// Binding is the registry's resolved value for one role: which bus, which
// pin index on that bus, and (for analog pins) the scaling curve.
type Binding struct {
	Type    IOType
	Pin     int
	Scaling Scaling
}

// Registry resolves named roles ("EStop", "LimitMin(3)", "Enable(2)") to
// pin bindings (§4.7). It is built once from io.toml at config load and
// read-only thereafter, so lookups need no locking in the hot path.
type Registry struct {
	roles map[string]Binding
}

// NewRegistry builds an empty registry; use Bind to populate it.
func NewRegistry() *Registry {
	return &Registry{roles: make(map[string]Binding)}
}

// Bind associates a role name with a pin binding. A duplicate role name
// overwrites the previous binding; duplicates are not rejected here or at
// config load.
func (r *Registry) Bind(role string, b Binding) {
	r.roles[role] = b
}

// Resolve looks up a role's binding.
func (r *Registry) Resolve(role string) (Binding, bool) {
	b, ok := r.roles[role]
	return b, ok
}

// ReadDI resolves a digital-input role and reads its bit from bank. It
// returns an error if the role is unbound or not a DI role.
func (r *Registry) ReadDI(bank *Bank, role string) (bool, error) {
	b, ok := r.roles[role]
	if !ok {
		return false, fmt.Errorf("ioreg: unbound role %q", role)
	}
	if b.Type != TypeDI {
		return false, fmt.Errorf("ioreg: role %q is not a DI", role)
	}
	return bank.Get(b.Pin), nil
}

// WriteDO resolves a digital-output role and sets its bit in bank.
func (r *Registry) WriteDO(bank *Bank, role string, v bool) error {
	b, ok := r.roles[role]
	if !ok {
		return fmt.Errorf("ioreg: unbound role %q", role)
	}
	if b.Type != TypeDO {
		return fmt.Errorf("ioreg: role %q is not a DO", role)
	}
	bank.Set(b.Pin, v)
	return nil
}

// ReadAI resolves an analog-input role, reads its normalized raw value out
// of raws (indexed by pin, each entry ∈ [0,1]), and applies its scaling.
func (r *Registry) ReadAI(raws []float64, role string) (float64, error) {
	b, ok := r.roles[role]
	if !ok {
		return 0, fmt.Errorf("ioreg: unbound role %q", role)
	}
	if b.Type != TypeAI {
		return 0, fmt.Errorf("ioreg: role %q is not an AI", role)
	}
	if b.Pin < 0 || b.Pin >= len(raws) {
		return 0, fmt.Errorf("ioreg: role %q pin %d out of range", role, b.Pin)
	}
	return b.Scaling.Apply(raws[b.Pin]), nil
}

// RoleCount returns the number of bound roles, mainly for diagnostics.
func (r *Registry) RoleCount() int { return len(r.roles) }
