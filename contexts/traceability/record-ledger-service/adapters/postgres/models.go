package postgresadapter

import (
	"encoding/json"
	"time"

	"agritrace/contexts/traceability/record-ledger-service/domain/entities"
)

type recordModel struct {
	RecordID string `gorm:"column:record_id;primaryKey"`
	// Seq is the allocated sequence value. Snapshots order by it because
	// record ids sort lexicographically past BLK999.
	Seq            uint64 `gorm:"column:seq;uniqueIndex"`
	ProductName    string `gorm:"column:product_name"`
	Category       string `gorm:"column:category;index"`
	Farmer         string `gorm:"column:farmer"`
	FarmerAddress  string `gorm:"column:farmer_address"`
	Location       string `gorm:"column:location"`
	HarvestDate    string `gorm:"column:harvest_date"`
	Certifications string `gorm:"column:certifications"`
	BlockHash      string `gorm:"column:block_hash"`
	TxHash         string `gorm:"column:tx_hash"`
	RecordedAt     time.Time
	Status         string
	Verified       bool
	TransactionFee float64
	Verifications  int
	LastVerified   *time.Time
	VerifiedBy     string
}

func (recordModel) TableName() string { return "trace_records" }

type sequenceModel struct {
	Name  string `gorm:"primaryKey"`
	Value uint64
}

func (sequenceModel) TableName() string { return "trace_sequences" }

type outboxModel struct {
	OutboxID    string `gorm:"column:outbox_id;primaryKey"`
	EventType   string
	Payload     []byte
	Status      string `gorm:"index"`
	RetryCount  int
	CreatedAt   time.Time
	PublishedAt *time.Time
}

func (outboxModel) TableName() string { return "trace_outbox" }

type idempotencyModel struct {
	Key         string `gorm:"column:idempotency_key;primaryKey"`
	RequestHash string
	Payload     []byte
	ExpiresAt   time.Time
}

func (idempotencyModel) TableName() string { return "trace_idempotency_keys" }

func (m recordModel) toEntity() entities.TraceabilityRecord {
	var certifications []string
	if m.Certifications != "" {
		_ = json.Unmarshal([]byte(m.Certifications), &certifications)
	}
	return entities.TraceabilityRecord{
		ID:             m.RecordID,
		ProductName:    m.ProductName,
		Category:       m.Category,
		Farmer:         m.Farmer,
		FarmerAddress:  m.FarmerAddress,
		Location:       m.Location,
		HarvestDate:    m.HarvestDate,
		Certifications: certifications,
		BlockHash:      m.BlockHash,
		TxHash:         m.TxHash,
		Timestamp:      m.RecordedAt,
		Status:         m.Status,
		Verified:       m.Verified,
		TransactionFee: m.TransactionFee,
		Verifications:  m.Verifications,
		LastVerified:   m.LastVerified,
		VerifiedBy:     m.VerifiedBy,
	}
}

func fromEntity(record entities.TraceabilityRecord) recordModel {
	certifications := ""
	if len(record.Certifications) > 0 {
		raw, err := json.Marshal(record.Certifications)
		if err == nil {
			certifications = string(raw)
		}
	}
	return recordModel{
		RecordID:       record.ID,
		ProductName:    record.ProductName,
		Category:       record.Category,
		Farmer:         record.Farmer,
		FarmerAddress:  record.FarmerAddress,
		Location:       record.Location,
		HarvestDate:    record.HarvestDate,
		Certifications: certifications,
		BlockHash:      record.BlockHash,
		TxHash:         record.TxHash,
		RecordedAt:     record.Timestamp,
		Status:         record.Status,
		Verified:       record.Verified,
		TransactionFee: record.TransactionFee,
		Verifications:  record.Verifications,
		LastVerified:   record.LastVerified,
		VerifiedBy:     record.VerifiedBy,
	}
}
