// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package schema

import "fmt"

// Phase orders heterogeneous rules within a rule set. Rules of an earlier
// phase always run before rules of a later phase; within a phase, rules
// run in insertion order.
type Phase int

const (
	PresencePhase Phase = iota
	TypePhase
	CoercePhase
	ConstraintPhase
	RefinePhase
)

func (p Phase) String() string {
	switch p {
	case PresencePhase:
		return "Presence"
	case TypePhase:
		return "Type"
	case CoercePhase:
		return "Coerce"
	case ConstraintPhase:
		return "Constraint"
	case RefinePhase:
		return "Refine"
	default:
		panic(fmt.Sprintf("Unknown phase %d", int(p)))
	}
}
