// Package productinsights aggregates the record ledger into
// consumer-facing product views and per-category statistics. It owns no
// state of its own: every query reads through the RecordSource port, so
// insights always reflect the ledger as currently appended.
package productinsights
