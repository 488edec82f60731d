package port

import (
	"context"

	"bilagsky/internal/domain"
)

// Accounting abstracts the Fiken API. Auth is passed per call because each
// request acts with the calling user's own stored credentials, never a
// shared service account.
type Accounting interface {
	// CheckCredentials verifies a login/password pair against the API
	// without touching any company data.
	CheckCredentials(ctx context.Context, auth domain.FikenAuth) error

	// Companies lists the companies the credentials grant access to.
	Companies(ctx context.Context, auth domain.FikenAuth) ([]domain.Company, error)

	// Fetch retrieves a company-scoped collection (purchases, sales,
	// contacts, accounts...) as flattened JSON objects.
	Fetch(ctx context.Context, auth domain.FikenAuth, slug, dataType string) ([]map[string]any, error)

	// FetchURL follows an absolute resource URL returned in a previous
	// response, such as a supplier link on a purchase.
	FetchURL(ctx context.Context, auth domain.FikenAuth, url string) (map[string]any, error)

	// CreatePurchase books a purchase and returns the created resource URL.
	CreatePurchase(ctx context.Context, auth domain.FikenAuth, slug string, draft *domain.PurchaseDraft) (string, error)

	// CreateSale books a cash sale and returns the created resource URL.
	CreateSale(ctx context.Context, auth domain.FikenAuth, slug string, draft *domain.SaleDraft) (string, error)

	// CreateContact registers a new supplier or customer contact and
	// returns the created resource URL.
	CreateContact(ctx context.Context, auth domain.FikenAuth, slug string, draft *domain.ContactDraft) (string, error)

	// AttachFile uploads a document image as an attachment on a previously
	// created purchase or sale.
	AttachFile(ctx context.Context, auth domain.FikenAuth, resourceURL, filename string, content []byte) error
}
