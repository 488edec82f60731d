package handler_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/xuri/excelize/v2"

	"bilagsky/internal/domain"
	"bilagsky/internal/service"
)

// testify mocks for the service interfaces the handlers depend on.

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, input service.SignupInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, input service.LoginInput) (*service.TokenPair, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenPair), args.Error(1)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*service.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenPair), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

type MockPasswordResetService struct {
	mock.Mock
}

func (m *MockPasswordResetService) ForgotPassword(ctx context.Context, input service.ForgotPasswordInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *MockPasswordResetService) ResetPassword(ctx context.Context, input service.ResetPasswordInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

type MockScanService struct {
	mock.Mock
}

func (m *MockScanService) Scan(ctx context.Context, input service.ScanInput) (*domain.Scan, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scan), args.Error(1)
}

func (m *MockScanService) GetByID(ctx context.Context, userID, scanID uuid.UUID) (*domain.Scan, error) {
	args := m.Called(ctx, userID, scanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scan), args.Error(1)
}

func (m *MockScanService) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Scan, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Scan), args.Int(1), args.Error(2)
}

func (m *MockScanService) GetDownloadURL(ctx context.Context, userID, scanID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID, scanID)
	return args.String(0), args.Error(1)
}

func (m *MockScanService) Delete(ctx context.Context, userID, scanID uuid.UUID) error {
	args := m.Called(ctx, userID, scanID)
	return args.Error(0)
}

type MockBookkeepingService struct {
	mock.Mock
}

func (m *MockBookkeepingService) SubmitPurchase(ctx context.Context, userID uuid.UUID, input service.SubmitPurchaseInput) (string, error) {
	args := m.Called(ctx, userID, input)
	return args.String(0), args.Error(1)
}

func (m *MockBookkeepingService) SubmitSale(ctx context.Context, userID uuid.UUID, input service.SubmitSaleInput) (string, error) {
	args := m.Called(ctx, userID, input)
	return args.String(0), args.Error(1)
}

func (m *MockBookkeepingService) CreateContact(ctx context.Context, userID uuid.UUID, draft domain.ContactDraft) (string, error) {
	args := m.Called(ctx, userID, draft)
	return args.String(0), args.Error(1)
}

func (m *MockBookkeepingService) Suppliers(ctx context.Context, userID uuid.UUID) ([]map[string]any, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]any), args.Error(1)
}

func (m *MockBookkeepingService) ExpenseAccounts(ctx context.Context, userID uuid.UUID) ([]map[string]any, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]any), args.Error(1)
}

func (m *MockBookkeepingService) PaymentAccounts(ctx context.Context, userID uuid.UUID) ([]map[string]any, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]any), args.Error(1)
}

func (m *MockBookkeepingService) History(ctx context.Context, userID uuid.UUID) ([]domain.HistoryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryEntry), args.Error(1)
}

func (m *MockBookkeepingService) ExportHistory(ctx context.Context, userID uuid.UUID) (*excelize.File, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*excelize.File), args.Error(1)
}
