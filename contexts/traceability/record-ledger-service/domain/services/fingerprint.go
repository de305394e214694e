package services

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"agritrace/contexts/traceability/record-ledger-service/domain/entities"
)

// Content fingerprints over the canonicalized record fields. Two records
// with identical content carry identical hashes, so the fingerprint doubles
// as a tamper check for exported data.

// BlockHash fingerprints the full record content.
func BlockHash(record entities.TraceabilityRecord) string {
	return contentHash("block", record)
}

// TxHash fingerprints the same content under a distinct domain prefix so the
// two identifiers never collide.
func TxHash(record entities.TraceabilityRecord) string {
	return contentHash("tx", record)
}

func contentHash(prefix string, record entities.TraceabilityRecord) string {
	parts := []string{
		prefix,
		record.ID,
		record.ProductName,
		record.Category,
		record.Farmer,
		record.FarmerAddress,
		record.Location,
		record.HarvestDate,
		strings.Join(record.Certifications, ","),
		strconv.FormatFloat(record.TransactionFee, 'f', -1, 64),
		record.Timestamp.UTC().Format(time.RFC3339Nano),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return "0x" + hex.EncodeToString(sum[:])
}
