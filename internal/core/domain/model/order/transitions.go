package order

import (
	"orderlifecycle/internal/core/domain/model/kernel"
	"orderlifecycle/internal/pkg/errs"
)

// Edge describes who may move an order between two statuses.
type Edge struct {
	From  Status
	To    Status
	Roles []kernel.Role
	// AssigneeOnly restricts the edge to the worker the order is assigned to.
	AssigneeOnly bool
}

// Allows reports whether role may take the edge. It does not check the
// assignee; callers handle AssigneeOnly separately.
func (e Edge) Allows(role kernel.Role) bool {
	for _, r := range e.Roles {
		if r == role {
			return true
		}
	}
	return false
}

var transitionTable = buildTransitionTable()

func buildTransitionTable() map[Status]map[Status]Edge {
	edges := []Edge{
		{From: Pending, To: Confirmed, Roles: []kernel.Role{kernel.RoleAdmin, kernel.RoleSystem}},
		{From: Confirmed, To: Processing, Roles: []kernel.Role{kernel.RoleAdmin}},
		{From: Processing, To: Ready, Roles: []kernel.Role{kernel.RoleAdmin}},
		{From: Ready, To: InTransit, Roles: []kernel.Role{kernel.RoleDeliveryMan}, AssigneeOnly: true},
		{From: InTransit, To: Delivered, Roles: []kernel.Role{kernel.RoleDeliveryMan}, AssigneeOnly: true},
	}
	for _, s := range AllStatuses() {
		if !s.IsTerminal() {
			edges = append(edges, Edge{From: s, To: Cancelled, Roles: []kernel.Role{kernel.RoleAdmin}})
		}
	}

	table := make(map[Status]map[Status]Edge)
	for _, e := range edges {
		if table[e.From] == nil {
			table[e.From] = make(map[Status]Edge)
		}
		table[e.From][e.To] = e
	}
	return table
}

// EdgeTo returns the edge from s to target.
//
// Returns:
//   - Edge: The edge with its allowed roles
//   - errs.ErrValueIsInvalid if target is not a valid status
//   - *errs.InvalidTransitionError if the table has no such edge, including
//     every edge out of a terminal status
//
// Example:
//
//	edge, err := order.Ready.EdgeTo(order.InTransit)
//	// edge.Roles == [DELIVERY_MAN], edge.AssigneeOnly == true
func (s Status) EdgeTo(target Status) (Edge, error) {
	if err := target.Validate(); err != nil {
		return Edge{}, err
	}
	edge, ok := transitionTable[s][target]
	if !ok {
		return Edge{}, errs.NewInvalidTransitionError(s, target)
	}
	return edge, nil
}

// CanTransitionTo reports whether an edge from s to target exists, for any role.
func (s Status) CanTransitionTo(target Status) bool {
	_, ok := transitionTable[s][target]
	return ok
}

// Edges lists every defined transition.
func Edges() []Edge {
	var out []Edge
	for _, from := range AllStatuses() {
		for _, to := range AllStatuses() {
			if e, ok := transitionTable[from][to]; ok {
				out = append(out, e)
			}
		}
	}
	return out
}
