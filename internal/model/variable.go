package model

import "fmt"

// Variable is a free or bound term introduced by the Characterization and
// Kernel engines. Free variables bind the unit being explained and carry
// its entities as Origin; bound variables name a recurrent predicate set
// discovered by anti-unification and never occur as an atom's source.
type Variable struct {
	IsFree  bool
	Nominal int
	Origin  []EntityId
}

func (*Variable) isTerm() {}

// NewFreeVariable returns the single free variable binding unit, "X_0".
func NewFreeVariable(unit []EntityId) *Variable {
	origin := make([]EntityId, len(unit))
	copy(origin, unit)
	return &Variable{IsFree: true, Nominal: 0, Origin: origin}
}

// NewBoundVariable returns a fresh bound variable "Y_nominal" for one
// anti-unified predicate set. origin is carried through for provenance but
// does not participate in equality (printed form does).
func NewBoundVariable(nominal int, origin []EntityId) *Variable {
	o := make([]EntityId, len(origin))
	copy(o, origin)
	return &Variable{IsFree: false, Nominal: nominal, Origin: o}
}

// String implements Term. Free variables print as X_n, bound ones as Y_n.
func (v *Variable) String() string {
	if v.IsFree {
		return fmt.Sprintf("X_%d", v.Nominal)
	}
	return fmt.Sprintf("Y_%d", v.Nominal)
}

// Equal reports whether two terms have the same printed form, the
// canonical notion of term equality used throughout this package (§9: two
// variables are equal iff their printed forms are equal).
func Equal(a, b Term) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
}
