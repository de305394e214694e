// Package authorization implements the role-based event authorization engine
// inside AgriTrace.
//
// Layering:
// - domain: roles, event-type catalog, policy evaluation, errors
// - application: queries using explicit ports
// - ports: stable boundaries for time and future persistence
// - adapters: concrete HTTP handler implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under identity-access context.
// - Do not import other context adapters into domain/application.
// - The catalog is static process configuration; it is loaded and validated
//   once at construction and never mutated at runtime.
package authorization
