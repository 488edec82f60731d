package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bilagsky/internal/domain"
	"bilagsky/internal/port"
)

// UpdateProfileInput is the DTO for profile updates.
type UpdateProfileInput struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
}

// ChangePasswordInput is the DTO for password changes.
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// FikenCredentialsInput is the DTO for linking a Fiken account.
type FikenCredentialsInput struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserService defines the account management contract.
type UserService interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, input ChangePasswordInput) error
	SetFikenCredentials(ctx context.Context, userID uuid.UUID, input FikenCredentialsInput) error
	Companies(ctx context.Context, userID uuid.UUID) ([]domain.Company, error)
	SetActiveCompany(ctx context.Context, userID uuid.UUID, slug string) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	repo       port.UserRepository
	accounting port.Accounting
}

// NewUserService creates a new UserService implementation.
func NewUserService(repo port.UserRepository, accounting port.Accounting) UserService {
	return &userService{repo: repo, accounting: accounting}
}

func (s *userService) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID uuid.UUID, input ChangePasswordInput) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), 12)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	user.PasswordHash = string(hash)

	return s.repo.Update(ctx, user)
}

// SetFikenCredentials verifies the pair against the Fiken API before
// storing it; a pair Fiken rejects never reaches the database.
func (s *userService) SetFikenCredentials(ctx context.Context, userID uuid.UUID, input FikenCredentialsInput) error {
	auth := domain.FikenAuth{Login: input.Login, Password: input.Password}
	if err := s.accounting.CheckCredentials(ctx, auth); err != nil {
		return err
	}
	return s.repo.UpdateFikenCredentials(ctx, userID, input.Login, input.Password)
}

func (s *userService) Companies(ctx context.Context, userID uuid.UUID) ([]domain.Company, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasFikenCredentials() {
		return nil, domain.ErrFikenCredentialsMissing
	}
	return s.accounting.Companies(ctx, user.FikenCredentials())
}

// SetActiveCompany only accepts a slug the user's Fiken account actually
// has access to.
func (s *userService) SetActiveCompany(ctx context.Context, userID uuid.UUID, slug string) error {
	companies, err := s.Companies(ctx, userID)
	if err != nil {
		return err
	}
	for _, company := range companies {
		if company.Slug == slug {
			return s.repo.SetCompanySlug(ctx, userID, slug)
		}
	}
	return domain.ErrUnknownCompany
}

func (s *userService) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.repo.Delete(ctx, userID)
}
