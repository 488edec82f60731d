package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bilagsky/internal/domain"
	"bilagsky/internal/port"
)

type scanRepo struct {
	db *sqlx.DB
}

// NewScanRepo creates a new PostgreSQL-backed ScanRepository.
func NewScanRepo(db *sqlx.DB) port.ScanRepository {
	return &scanRepo{db: db}
}

func (r *scanRepo) Create(ctx context.Context, scan *domain.Scan) error {
	now := time.Now().UTC()
	scan.CreatedAt = now
	scan.UpdatedAt = now

	query := `INSERT INTO scans
		(id, user_id, file_name, original_name, file_type, file_size,
		 s3_bucket, s3_key, content_type, kind, suggestion, status, scan_error,
		 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.ExecContext(ctx, query,
		scan.ID, scan.UserID, scan.FileName, scan.OriginalName,
		scan.FileType, scan.FileSize, scan.S3Bucket, scan.S3Key, scan.ContentType,
		scan.Kind, scan.Suggestion, scan.Status, scan.ScanError,
		scan.CreatedAt, scan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("scanRepo.Create: %w", err)
	}
	return nil
}

func (r *scanRepo) GetByID(ctx context.Context, userID, scanID uuid.UUID) (*domain.Scan, error) {
	var scan domain.Scan
	err := r.db.GetContext(ctx, &scan,
		"SELECT * FROM scans WHERE id = $1 AND user_id = $2", scanID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanRepo.GetByID: %w", err)
	}
	return &scan, nil
}

func (r *scanRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Scan, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM scans WHERE user_id = $1", userID)
	if err != nil {
		return nil, 0, fmt.Errorf("scanRepo.ListByUser count: %w", err)
	}

	var scans []domain.Scan
	err = r.db.SelectContext(ctx, &scans,
		`SELECT * FROM scans
		 WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("scanRepo.ListByUser: %w", err)
	}
	return scans, total, nil
}

func (r *scanRepo) Delete(ctx context.Context, userID, scanID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM scans WHERE id = $1 AND user_id = $2", scanID, userID)
	if err != nil {
		return fmt.Errorf("scanRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
