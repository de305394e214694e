// Package recordledger implements the append-only traceability record ledger
// inside AgriTrace, including the verification counter.
//
// Layering:
// - domain: record entity, content fingerprints, event envelopes, errors
// - application: commands/queries/workers using explicit ports
// - ports: stable boundaries for persistence, time, ids, and events
// - adapters: concrete HTTP, memory, postgres, and event publisher implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under traceability context.
// - Records are append-only: after creation only the verification fields
//   mutate, and only through the verify command.
// - Sequence ids are allocated after validation and never reused.
package recordledger
