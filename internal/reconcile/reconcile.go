// Package reconcile decides which operations converge the live set of
// applications towards the desired set.
package reconcile

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/marathon-release/marathon-release/api/types/app"
)

// Action is the operation required for a single application.
type Action int

const (
	NoOp Action = iota
	Create
	Update
)

func (a Action) String() string {
	switch a {
	case NoOp:
		return "no-op"
	case Create:
		return "create"
	case Update:
		return "update"
	default:
		return "unknown"
	}
}

// Decision is the outcome of reconciling one desired definition.
type Decision struct {
	Action Action
	// Payload is the definition to send for Create and Update. It is the
	// desired definition as rendered, not its normalized form.
	Payload app.Definition
	// Diff holds the differences between the normalized live and desired
	// definitions. It is only set for Update.
	Diff []Operation
}

// Decide compares desired with the live definition of the same application.
// A nil live definition means the application is not deployed. Neither
// argument is modified.
func Decide(desired, live app.Definition) Decision {
	if live == nil {
		return Decision{Action: Create, Payload: desired}
	}

	ops := Diff(app.Normalize(live.Clone()), app.Normalize(desired.Clone()))
	if len(ops) == 0 {
		return Decision{Action: NoOp}
	}
	return Decision{Action: Update, Payload: desired, Diff: ops}
}

// Deletions returns the ids that are live but not desired, in lexical
// order.
func Deletions(desiredIDs, liveIDs []string) []string {
	undefined := mapset.NewSet(liveIDs...).Difference(mapset.NewSet(desiredIDs...)).ToSlice()
	slices.Sort(undefined)
	return undefined
}
