package httptransport

import "time"

// CreateRecordRequest is the request body for ledger appends.
type CreateRecordRequest struct {
	ProductName    string   `json:"product_name"`
	Category       string   `json:"category"`
	Farmer         string   `json:"farmer"`
	FarmerAddress  string   `json:"farmer_address,omitempty"`
	Location       string   `json:"location,omitempty"`
	HarvestDate    string   `json:"harvest_date,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	TransactionFee float64  `json:"transaction_fee,omitempty"`
	Status         string   `json:"status,omitempty"`
}

// RecordDTO describes one traceability record.
type RecordDTO struct {
	ID             string     `json:"id"`
	ProductName    string     `json:"product_name"`
	Category       string     `json:"category"`
	Farmer         string     `json:"farmer"`
	FarmerAddress  string     `json:"farmer_address,omitempty"`
	Location       string     `json:"location,omitempty"`
	HarvestDate    string     `json:"harvest_date,omitempty"`
	Certifications []string   `json:"certifications,omitempty"`
	BlockHash      string     `json:"block_hash"`
	TxHash         string     `json:"tx_hash"`
	Timestamp      time.Time  `json:"timestamp"`
	Status         string     `json:"status"`
	Verified       bool       `json:"verified"`
	TransactionFee float64    `json:"transaction_fee"`
	Verifications  int        `json:"verifications"`
	LastVerified   *time.Time `json:"last_verified,omitempty"`
	VerifiedBy     string     `json:"verified_by,omitempty"`
}

type CreateRecordResponse struct {
	Record   RecordDTO `json:"record"`
	Replayed bool      `json:"replayed"`
}

type VerifyRecordResponse struct {
	Record RecordDTO `json:"record"`
}

type ListRecordsResponse struct {
	Records []RecordDTO `json:"records"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
