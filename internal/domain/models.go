package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents an account holder. Fiken credentials are stored so the
// backend can act against the Fiken API on the user's behalf; CompanySlug
// is the Fiken company the user currently books against.
type User struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Email         string    `db:"email" json:"email"`
	PasswordHash  string    `db:"password_hash" json:"-"`
	FullName      string    `db:"full_name" json:"full_name"`
	FikenLogin    string    `db:"fiken_login" json:"fiken_login"`
	FikenPassword string    `db:"fiken_password" json:"-"`
	CompanySlug   string    `db:"company_slug" json:"company_slug"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`

	PasswordResetTokenID *string `db:"password_reset_token_id" json:"-"`
}

// HasFikenCredentials reports whether the user has linked a Fiken account.
func (u *User) HasFikenCredentials() bool {
	return u.FikenLogin != "" && u.FikenPassword != ""
}

// FikenCredentials returns the user's stored Fiken API credentials.
func (u *User) FikenCredentials() FikenAuth {
	return FikenAuth{Login: u.FikenLogin, Password: u.FikenPassword}
}

// FikenAuth carries the HTTP basic-auth pair for the Fiken API.
type FikenAuth struct {
	Login    string
	Password string
}

// Company is a Fiken company the authenticated user has access to.
type Company struct {
	Name      string `json:"name"`
	OrgNumber string `json:"organization_number"`
	Slug      string `json:"slug"`
}

// Scan stores one processed document photo: where the original image went,
// how the text detection fared, and the field suggestion produced from it.
// Suggestion is the serialized extraction result; it stays NULL when text
// acquisition failed.
type Scan struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	UserID       uuid.UUID       `db:"user_id" json:"user_id"`
	FileName     string          `db:"file_name" json:"file_name"`
	OriginalName string          `db:"original_name" json:"original_name"`
	FileType     FileType        `db:"file_type" json:"file_type"`
	FileSize     int64           `db:"file_size" json:"file_size"`
	S3Bucket     string          `db:"s3_bucket" json:"-"`
	S3Key        string          `db:"s3_key" json:"-"`
	ContentType  string          `db:"content_type" json:"content_type"`
	Kind         DocumentKind    `db:"kind" json:"kind"`
	Suggestion   json.RawMessage `db:"suggestion" json:"suggestion,omitempty"`
	Status       ScanStatus      `db:"status" json:"status"`
	ScanError    string          `db:"scan_error" json:"scan_error,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// OrderLine is one bookkeeping line as the user submits it: a gross amount
// and a Norwegian SAF-T VAT code. Net and VAT portions are derived from
// the code's rate before anything is sent to Fiken.
type OrderLine struct {
	Description string  `json:"description" binding:"required"`
	GrossAmount float64 `json:"gross_amount" binding:"required"`
	VATCode     int     `json:"vat_code"`
	Account     string  `json:"account"`
}

// PurchaseDraft is a purchase ready for submission to Fiken.
type PurchaseDraft struct {
	Date           time.Time    `json:"date"`
	DueDate        *time.Time   `json:"due_date,omitempty"`
	Kind           PurchaseKind `json:"kind"`
	Identifier     string       `json:"identifier,omitempty"`
	Paid           bool         `json:"paid"`
	SupplierURL    string       `json:"supplier_url,omitempty"`
	PaymentAccount string       `json:"payment_account,omitempty"`
	Lines          []OrderLine  `json:"lines"`
}

// SaleDraft is a cash sale ready for submission to Fiken.
type SaleDraft struct {
	Date           time.Time   `json:"date"`
	Kind           SaleKind    `json:"kind"`
	Identifier     string      `json:"identifier,omitempty"`
	Paid           bool        `json:"paid"`
	CustomerURL    string      `json:"customer_url,omitempty"`
	PaymentAccount string      `json:"payment_account,omitempty"`
	Lines          []OrderLine `json:"lines"`
}

// ContactDraft is a new Fiken contact. A supplier number marks the
// contact as a supplier, a customer number as a customer; Fiken accepts
// both on the same contact.
type ContactDraft struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email,omitempty"`
	OrgNumber      string `json:"org_number,omitempty"`
	SupplierNumber int    `json:"supplier_number,omitempty"`
	CustomerNumber int    `json:"customer_number,omitempty"`
}

// EntryLine is one history line with amounts already converted from
// Fiken's minor units to display strings with two decimals.
type EntryLine struct {
	Description string `json:"description"`
	NetPrice    string `json:"net_price"`
	VAT         string `json:"vat"`
	GrossPrice  string `json:"gross_price"`
}

// HistoryEntry is one booked purchase or sale fetched back from Fiken,
// flattened for display.
type HistoryEntry struct {
	Type          string      `json:"type"`
	Kind          string      `json:"kind"`
	Date          string      `json:"date"`
	Identifier    string      `json:"identifier,omitempty"`
	Paid          string      `json:"paid"`
	Counterparty  string      `json:"counterparty,omitempty"`
	Lines         []EntryLine `json:"lines"`
	AttachmentURL string      `json:"attachment_url,omitempty"`
}
