// Package order contains the Order aggregate and its status lifecycle.
//
// The transition table is the single source of truth for which status changes
// exist and which roles may perform them. The aggregate enforces the edges and
// keeps an append-only status history whose last entry always matches the
// current status. Role and assignee checks are applied by the domain services.
package order
