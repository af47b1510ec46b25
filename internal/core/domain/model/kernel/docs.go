// Package kernel holds the value objects shared across aggregates:
// identifiers, caller roles, the acting principal and order contact details.
//
// Values are immutable and must be created through their constructors;
// zero values fail Validate.
package kernel
