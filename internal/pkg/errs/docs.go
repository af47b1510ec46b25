// Package errs provides the typed errors shared by the order lifecycle service.
//
// Every error type pairs a sentinel (matched with errors.Is) with a struct that
// carries details for logs and transport mapping:
//   - ObjectNotFoundError, ValueIsInvalidError, ValueIsRequiredError for
//     lookup and input validation
//   - ForbiddenError, InvalidTransitionError, ConflictError for lifecycle rules
//   - StoreUnavailableError for retryable persistence failures
//
// Adapters translate these into HTTP problem details and gRPC status codes.
package errs
