package service

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"bilagsky/internal/domain"
	"bilagsky/internal/port"
)

// In-memory fakes shared by the service tests.

type fakeUserRepo struct {
	users  map[uuid.UUID]*domain.User
	emails map[string]uuid.UUID
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{
		users:  map[uuid.UUID]*domain.User{},
		emails: map[string]uuid.UUID{},
	}
	for _, u := range users {
		r.users[u.ID] = u
		r.emails[u.Email] = u.ID
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := r.emails[user.Email]; exists {
		return domain.ErrDuplicateEmail
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	r.emails[user.Email] = user.ID
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID uuid.UUID) (*domain.User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	id, ok := r.emails[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(context.Background(), id)
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdateFikenCredentials(_ context.Context, userID uuid.UUID, login, password string) error {
	user, ok := r.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	user.FikenLogin = login
	user.FikenPassword = password
	user.CompanySlug = ""
	return nil
}

func (r *fakeUserRepo) SetCompanySlug(_ context.Context, userID uuid.UUID, slug string) error {
	user, ok := r.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	user.CompanySlug = slug
	return nil
}

func (r *fakeUserRepo) SetPasswordResetToken(_ context.Context, userID uuid.UUID, tokenID string) error {
	user, ok := r.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	user.PasswordResetTokenID = &tokenID
	return nil
}

func (r *fakeUserRepo) ResetPassword(_ context.Context, userID uuid.UUID, passwordHash, expectedTokenID string) error {
	user, ok := r.users[userID]
	if !ok || user.PasswordResetTokenID == nil || *user.PasswordResetTokenID != expectedTokenID {
		return domain.ErrPasswordResetTokenInvalid
	}
	user.PasswordHash = passwordHash
	user.PasswordResetTokenID = nil
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, userID uuid.UUID) error {
	user, ok := r.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	delete(r.emails, user.Email)
	delete(r.users, userID)
	return nil
}

type fakeScanRepo struct {
	scans map[uuid.UUID]*domain.Scan
}

func newFakeScanRepo() *fakeScanRepo {
	return &fakeScanRepo{scans: map[uuid.UUID]*domain.Scan{}}
}

func (r *fakeScanRepo) Create(_ context.Context, scan *domain.Scan) error {
	copied := *scan
	r.scans[scan.ID] = &copied
	return nil
}

func (r *fakeScanRepo) GetByID(_ context.Context, userID, scanID uuid.UUID) (*domain.Scan, error) {
	scan, ok := r.scans[scanID]
	if !ok || scan.UserID != userID {
		return nil, domain.ErrNotFound
	}
	copied := *scan
	return &copied, nil
}

func (r *fakeScanRepo) ListByUser(_ context.Context, userID uuid.UUID, _, _ int) ([]domain.Scan, int, error) {
	var out []domain.Scan
	for _, scan := range r.scans {
		if scan.UserID == userID {
			out = append(out, *scan)
		}
	}
	return out, len(out), nil
}

func (r *fakeScanRepo) Delete(_ context.Context, userID, scanID uuid.UUID) error {
	scan, ok := r.scans[scanID]
	if !ok || scan.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.scans, scanID)
	return nil
}

type fakeStorage struct {
	objects   map[string][]byte
	uploadErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) key(bucket, key string) string { return bucket + "/" + key }

func (s *fakeStorage) Upload(_ context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	s.objects[s.key(input.Bucket, input.Key)] = data
	return &port.UploadOutput{Location: "https://storage.local/" + input.Key}, nil
}

func (s *fakeStorage) Download(_ context.Context, bucket, key string) (io.ReadCloser, error) {
	data, ok := s.objects[s.key(bucket, key)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStorage) Delete(_ context.Context, bucket, key string) error {
	delete(s.objects, s.key(bucket, key))
	return nil
}

func (s *fakeStorage) GetPresignedURL(_ context.Context, bucket, key string, _ int64) (string, error) {
	return "https://storage.local/presigned/" + key, nil
}

type fakeAcquirer struct {
	text string
	err  error
}

func (a *fakeAcquirer) DetectText(_ context.Context, _ []byte) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	return a.text, nil
}

type attachedFile struct {
	resourceURL string
	filename    string
	content     []byte
}

type fakeAccounting struct {
	checkErr      error
	companies     []domain.Company
	fetchResults  map[string][]map[string]any
	fetchURLs     map[string]map[string]any
	createdURL    string
	lastPurchase  *domain.PurchaseDraft
	lastSale      *domain.SaleDraft
	lastContact   *domain.ContactDraft
	createErr     error
	attachErr     error
	attachedFiles []attachedFile
}

func (a *fakeAccounting) CheckCredentials(_ context.Context, _ domain.FikenAuth) error {
	return a.checkErr
}

func (a *fakeAccounting) Companies(_ context.Context, _ domain.FikenAuth) ([]domain.Company, error) {
	return a.companies, nil
}

func (a *fakeAccounting) Fetch(_ context.Context, _ domain.FikenAuth, _, dataType string) ([]map[string]any, error) {
	if a.fetchResults == nil {
		return nil, nil
	}
	items, ok := a.fetchResults[dataType]
	if !ok {
		return nil, fmt.Errorf("unexpected fetch of %q", dataType)
	}
	return items, nil
}

func (a *fakeAccounting) FetchURL(_ context.Context, _ domain.FikenAuth, url string) (map[string]any, error) {
	item, ok := a.fetchURLs[url]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (a *fakeAccounting) CreatePurchase(_ context.Context, _ domain.FikenAuth, _ string, draft *domain.PurchaseDraft) (string, error) {
	if a.createErr != nil {
		return "", a.createErr
	}
	a.lastPurchase = draft
	return a.createdURL, nil
}

func (a *fakeAccounting) CreateSale(_ context.Context, _ domain.FikenAuth, _ string, draft *domain.SaleDraft) (string, error) {
	if a.createErr != nil {
		return "", a.createErr
	}
	a.lastSale = draft
	return a.createdURL, nil
}

func (a *fakeAccounting) CreateContact(_ context.Context, _ domain.FikenAuth, _ string, draft *domain.ContactDraft) (string, error) {
	if a.createErr != nil {
		return "", a.createErr
	}
	a.lastContact = draft
	return a.createdURL, nil
}

func (a *fakeAccounting) AttachFile(_ context.Context, _ domain.FikenAuth, resourceURL, filename string, content []byte) error {
	if a.attachErr != nil {
		return a.attachErr
	}
	a.attachedFiles = append(a.attachedFiles, attachedFile{resourceURL, filename, content})
	return nil
}
