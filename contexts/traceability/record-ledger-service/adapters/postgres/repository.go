package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agritrace/contexts/traceability/record-ledger-service/domain/entities"
	domainerrors "agritrace/contexts/traceability/record-ledger-service/domain/errors"
	"agritrace/contexts/traceability/record-ledger-service/domain/services"
	"agritrace/contexts/traceability/record-ledger-service/ports"
)

const (
	ledgerSequenceName = "trace_records"

	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"

	uniqueViolationCode = "23505"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Migrate creates the ledger tables and seeds the sequence row.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&recordModel{}, &sequenceModel{}, &outboxModel{}, &idempotencyModel{}); err != nil {
		return fmt.Errorf("migrate ledger tables: %w", err)
	}
	seed := sequenceModel{Name: ledgerSequenceName, Value: 0}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error
}

func (r *Repository) CreateRecord(ctx context.Context, input ports.CreateRecordInput, now time.Time) (entities.TraceabilityRecord, error) {
	var created entities.TraceabilityRecord

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Sequence allocation is serialized by the row lock so ids are
		// strictly increasing and never reused.
		var seq sequenceModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", ledgerSequenceName).
			First(&seq).Error; err != nil {
			return fmt.Errorf("lock ledger sequence: %w", err)
		}
		seq.Value++
		if err := tx.Save(&seq).Error; err != nil {
			return err
		}

		record := entities.TraceabilityRecord{
			ID:             fmt.Sprintf("BLK%03d", seq.Value),
			ProductName:    input.ProductName,
			Category:       input.Category,
			Farmer:         input.Farmer,
			FarmerAddress:  input.FarmerAddress,
			Location:       input.Location,
			HarvestDate:    input.HarvestDate,
			Certifications: input.Certifications,
			Timestamp:      now,
			Status:         input.Status,
			Verified:       true,
			TransactionFee: input.TransactionFee,
			Verifications:  1,
		}
		record.BlockHash = services.BlockHash(record)
		record.TxHash = services.TxHash(record)

		row := fromEntity(record)
		row.Seq = seq.Value
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrLedgerCorrupted
			}
			return err
		}

		if err := r.insertOutbox(tx, input.OutboxID, record, now, services.RecordCreatedEnvelope); err != nil {
			return err
		}

		// The idempotency row commits or rolls back with the record, so a
		// same-key retry after a failed Create can never duplicate.
		if input.IdempotencyKey != "" {
			payload, err := json.Marshal(record)
			if err != nil {
				return err
			}
			idem := idempotencyModel{
				Key:         input.IdempotencyKey,
				RequestHash: input.RequestHash,
				Payload:     payload,
				ExpiresAt:   input.IdempotencyExpiresAt,
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&idem).Error; err != nil {
				return err
			}
		}

		created = record
		return nil
	})
	if err != nil {
		return entities.TraceabilityRecord{}, err
	}
	return created, nil
}

func (r *Repository) GetRecord(ctx context.Context, recordID string) (entities.TraceabilityRecord, error) {
	var row recordModel
	err := r.db.WithContext(ctx).
		Where("record_id = ?", recordID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.TraceabilityRecord{}, domainerrors.ErrRecordNotFound
		}
		return entities.TraceabilityRecord{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListRecords(ctx context.Context) ([]entities.TraceabilityRecord, error) {
	var rows []recordModel
	if err := r.db.WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.TraceabilityRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) IncrementVerifications(ctx context.Context, input ports.VerifyRecordInput, now time.Time) (entities.TraceabilityRecord, error) {
	var updated entities.TraceabilityRecord

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row recordModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("record_id = ?", input.RecordID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrRecordNotFound
			}
			return err
		}

		verifiedAt := now
		row.Verifications++
		row.Verified = true
		row.LastVerified = &verifiedAt
		row.VerifiedBy = input.VerifierRole

		if err := tx.Save(&row).Error; err != nil {
			return err
		}

		updated = row.toEntity()
		return r.insertOutbox(tx, input.OutboxID, updated, now, services.RecordVerifiedEnvelope)
	})
	if err != nil {
		return entities.TraceabilityRecord{}, err
	}
	return updated, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:  row.OutboxID,
			EventType: row.EventType,
			Payload:   row.Payload,
			CreatedAt: row.CreatedAt,
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt,
		}).
		Error
}

func (r *Repository) Get(ctx context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	var row idempotencyModel
	err := r.db.WithContext(ctx).
		Where("idempotency_key = ? AND expires_at > ?", key, now).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.IdempotencyRecord{}, false, nil
		}
		return ports.IdempotencyRecord{}, false, err
	}
	return ports.IdempotencyRecord{
		Key:         row.Key,
		RequestHash: row.RequestHash,
		Payload:     row.Payload,
		ExpiresAt:   row.ExpiresAt,
	}, true, nil
}

func (r *Repository) insertOutbox(
	tx *gorm.DB,
	outboxID string,
	record entities.TraceabilityRecord,
	now time.Time,
	build func(string, entities.TraceabilityRecord, time.Time) (ports.RecordEvent, error),
) error {
	if outboxID == "" {
		return nil
	}
	envelope, err := build(outboxID, record, now)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:  outboxID,
		EventType: envelope.EventType,
		Payload:   payload,
		Status:    outboxStatusPending,
		CreatedAt: now,
	}
	return tx.Create(&row).Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
