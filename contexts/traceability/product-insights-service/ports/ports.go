package ports

import (
	"context"
	"time"
)

// TraceRecord is the read-model projection of one ledger record. The
// adapter that feeds it owns the mapping from ledger entities.
type TraceRecord struct {
	ID             string
	ProductName    string
	Category       string
	Farmer         string
	Location       string
	HarvestDate    string
	Certifications []string
	BlockHash      string
	Timestamp      time.Time
	Status         string
	Verified       bool
	Verifications  int
}

// RecordSource is the insights module's only dependency: a readable view
// of the ledger plus the catalog of categories stats are keyed on.
type RecordSource interface {
	ListRecords(ctx context.Context) ([]TraceRecord, error)
	ListCategories(ctx context.Context) ([]string, error)
}
