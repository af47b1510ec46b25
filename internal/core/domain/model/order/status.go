package order

import (
	"fmt"
	"strings"

	"orderlifecycle/internal/pkg/errs"
)

// Status is the lifecycle state of an order. Transitions between statuses are
// defined by the transition table in transitions.go; Status itself only knows
// its name and which group it belongs to.
//
//	PENDING ─> CONFIRMED ─> PROCESSING ─> READY ─> IN_TRANSIT ─> DELIVERED
//	   └───────────┴────────────┴──────────┴──────────┴────────> CANCELLED
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota

	// Pending is the initial status of an order waiting for confirmation.
	Pending

	// Confirmed orders are accepted and enter the claim candidate set.
	Confirmed

	// Processing and Ready are the preparation steps run by administrators.
	Processing
	Ready

	// InTransit means the assigned worker has picked the order up.
	InTransit

	// Delivered and Cancelled are terminal.
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	Pending:    "PENDING",
	Confirmed:  "CONFIRMED",
	Processing: "PROCESSING",
	Ready:      "READY",
	InTransit:  "IN_TRANSIT",
	Delivered:  "DELIVERED",
	Cancelled:  "CANCELLED",
}

// ClaimableStatuses are the statuses in which an unassigned order may be claimed.
var ClaimableStatuses = []Status{Confirmed, Processing, Ready}

// ActiveDeliveryStatuses are the statuses listed as a worker's current assignments.
var ActiveDeliveryStatuses = []Status{Ready, InTransit}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Confirmed, Processing, Ready, InTransit, Delivered, Cancelled}
}

// ParseStatus accepts the upper-case wire names, case-insensitively.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for st, n := range statusNames {
		if n == name {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// String returns the wire name, or "UNKNOWN" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Validate rejects Unknown and out-of-range values with errs.ErrValueIsInvalid.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsClaimable reports whether an unassigned order in s may be claimed.
// See ClaimableStatuses.
func (s Status) IsClaimable() bool {
	return s.in(ClaimableStatuses)
}

func (s Status) in(set []Status) bool {
	for _, candidate := range set {
		if s == candidate {
			return true
		}
	}
	return false
}
