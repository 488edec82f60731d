package port

import (
	"context"

	"github.com/google/uuid"

	"bilagsky/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateFikenCredentials(ctx context.Context, userID uuid.UUID, login, password string) error
	SetCompanySlug(ctx context.Context, userID uuid.UUID, slug string) error
	SetPasswordResetToken(ctx context.Context, userID uuid.UUID, tokenID string) error
	ResetPassword(ctx context.Context, userID uuid.UUID, passwordHash, expectedTokenID string) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// ScanRepository defines the contract for scan persistence.
type ScanRepository interface {
	Create(ctx context.Context, scan *domain.Scan) error
	GetByID(ctx context.Context, userID, scanID uuid.UUID) (*domain.Scan, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Scan, int, error)
	Delete(ctx context.Context, userID, scanID uuid.UUID) error
}
