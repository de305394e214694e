package errors

import "errors"

var (
	ErrRecordNotFound         = errors.New("record not found")
	ErrInvalidRecordInput     = errors.New("invalid record input")
	ErrUnknownCategory        = errors.New("unknown product category")
	ErrIdempotencyKeyRequired = errors.New("idempotency key is required")
	ErrIdempotencyConflict    = errors.New("idempotency key conflict")
	ErrLedgerCorrupted        = errors.New("ledger sequence corrupted")
)
