package entities

import "time"

// Record statuses observed on the supply chain. The set is source-defined
// and not exhaustive; unrecognized statuses pass through untouched.
const (
	StatusCertified = "Certified"
	StatusInTransit = "In Transit"
	StatusDelivered = "Delivered"
)

// TraceabilityRecord is one append-only ledger entry. The id is "BLK" plus a
// zero-padded, monotonically assigned sequence number. After creation only
// Verifications, LastVerified, VerifiedBy, and Verified mutate, exclusively
// through the verification counter.
type TraceabilityRecord struct {
	ID             string
	ProductName    string
	Category       string
	Farmer         string
	FarmerAddress  string
	Location       string
	HarvestDate    string
	Certifications []string
	BlockHash      string
	TxHash         string
	Timestamp      time.Time
	Status         string
	Verified       bool
	TransactionFee float64
	Verifications  int
	LastVerified   *time.Time
	VerifiedBy     string
}
