// Package services provides domain services that apply caller-dependent rules
// to the Order aggregate.
//
// The package includes:
//   - LifecyclePolicy: role and assignee checks for transitions, claims,
//     unassignment, order visibility and the delivery listings
package services
