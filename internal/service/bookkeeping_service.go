package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"bilagsky/internal/domain"
	"bilagsky/internal/fiken"
	"bilagsky/internal/port"
)

const dateLayout = "2006-01-02"

var purchaseKindLabels = map[string]string{
	"SUPPLIER":      "Kjøp fra leverandør",
	"CASH_PURCHASE": "Kontantkjøp",
}

var saleKindLabels = map[string]string{
	"INVOICE":   "Faktura",
	"CASH_SALE": "Kontantsalg",
}

// SubmitPurchaseInput is the DTO for booking a purchase.
type SubmitPurchaseInput struct {
	Date           string             `json:"date" binding:"required"`
	MaturityDate   string             `json:"maturity_date"`
	CashPurchase   bool               `json:"cash_purchase"`
	InvoiceNumber  string             `json:"invoice_number"`
	Paid           bool               `json:"paid"`
	SupplierURL    string             `json:"supplier_url"`
	PaymentAccount string             `json:"payment_account"`
	Lines          []domain.OrderLine `json:"lines" binding:"required"`
	ScanID         *uuid.UUID         `json:"scan_id"`
}

// SubmitSaleInput is the DTO for booking a cash sale.
type SubmitSaleInput struct {
	Date           string             `json:"date" binding:"required"`
	Identifier     string             `json:"identifier"`
	Paid           bool               `json:"paid"`
	CustomerURL    string             `json:"customer_url"`
	PaymentAccount string             `json:"payment_account"`
	Lines          []domain.OrderLine `json:"lines" binding:"required"`
	ScanID         *uuid.UUID         `json:"scan_id"`
}

// BookkeepingService submits purchases and sales to Fiken on the user's
// behalf and reads the booked history back.
type BookkeepingService interface {
	SubmitPurchase(ctx context.Context, userID uuid.UUID, input SubmitPurchaseInput) (string, error)
	SubmitSale(ctx context.Context, userID uuid.UUID, input SubmitSaleInput) (string, error)
	CreateContact(ctx context.Context, userID uuid.UUID, draft domain.ContactDraft) (string, error)
	Suppliers(ctx context.Context, userID uuid.UUID) ([]map[string]any, error)
	ExpenseAccounts(ctx context.Context, userID uuid.UUID) ([]map[string]any, error)
	PaymentAccounts(ctx context.Context, userID uuid.UUID) ([]map[string]any, error)
	History(ctx context.Context, userID uuid.UUID) ([]domain.HistoryEntry, error)
	ExportHistory(ctx context.Context, userID uuid.UUID) (*excelize.File, error)
}

type bookkeepingService struct {
	userRepo   port.UserRepository
	scanRepo   port.ScanRepository
	storage    port.ObjectStorage
	accounting port.Accounting
}

// NewBookkeepingService creates a new BookkeepingService implementation.
func NewBookkeepingService(
	userRepo port.UserRepository,
	scanRepo port.ScanRepository,
	storage port.ObjectStorage,
	accounting port.Accounting,
) BookkeepingService {
	return &bookkeepingService{
		userRepo:   userRepo,
		scanRepo:   scanRepo,
		storage:    storage,
		accounting: accounting,
	}
}

// fikenContext loads the user and checks that booking against Fiken is
// possible at all: linked credentials and a selected company.
func (s *bookkeepingService) fikenContext(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasFikenCredentials() {
		return nil, domain.ErrFikenCredentialsMissing
	}
	if user.CompanySlug == "" {
		return nil, domain.ErrCompanyNotSet
	}
	return user, nil
}

func (s *bookkeepingService) SubmitPurchase(ctx context.Context, userID uuid.UUID, input SubmitPurchaseInput) (string, error) {
	user, err := s.fikenContext(ctx, userID)
	if err != nil {
		return "", err
	}

	date, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		return "", fmt.Errorf("parsing purchase date: %w", err)
	}

	draft := &domain.PurchaseDraft{
		Date:           date,
		Kind:           domain.PurchaseKindSupplier,
		Identifier:     input.InvoiceNumber,
		Paid:           input.Paid,
		SupplierURL:    input.SupplierURL,
		PaymentAccount: input.PaymentAccount,
		Lines:          input.Lines,
	}
	if input.CashPurchase {
		draft.Kind = domain.PurchaseKindCash
	}
	if input.MaturityDate != "" {
		due, err := time.Parse(dateLayout, input.MaturityDate)
		if err != nil {
			return "", fmt.Errorf("parsing maturity date: %w", err)
		}
		draft.DueDate = &due
	}

	location, err := s.accounting.CreatePurchase(ctx, user.FikenCredentials(), user.CompanySlug, draft)
	if err != nil {
		return "", err
	}

	s.attachScan(ctx, user, location, input.ScanID)
	return location, nil
}

func (s *bookkeepingService) SubmitSale(ctx context.Context, userID uuid.UUID, input SubmitSaleInput) (string, error) {
	user, err := s.fikenContext(ctx, userID)
	if err != nil {
		return "", err
	}

	date, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		return "", fmt.Errorf("parsing sale date: %w", err)
	}

	draft := &domain.SaleDraft{
		Date:           date,
		Kind:           domain.SaleKindCash,
		Identifier:     input.Identifier,
		Paid:           input.Paid,
		CustomerURL:    input.CustomerURL,
		PaymentAccount: input.PaymentAccount,
		Lines:          input.Lines,
	}

	location, err := s.accounting.CreateSale(ctx, user.FikenCredentials(), user.CompanySlug, draft)
	if err != nil {
		return "", err
	}

	s.attachScan(ctx, user, location, input.ScanID)
	return location, nil
}

// attachScan uploads the stored scan image onto the booked entry. The
// entry is already created at this point, so attachment failures are
// logged rather than returned.
func (s *bookkeepingService) attachScan(ctx context.Context, user *domain.User, resourceURL string, scanID *uuid.UUID) {
	if scanID == nil || resourceURL == "" {
		return
	}

	scan, err := s.scanRepo.GetByID(ctx, user.ID, *scanID)
	if err != nil {
		log.Printf("bookkeepingService.attachScan: scan %s lookup failed: %v", scanID, err)
		return
	}

	body, err := s.storage.Download(ctx, scan.S3Bucket, scan.S3Key)
	if err != nil {
		log.Printf("bookkeepingService.attachScan: download failed for scan %s: %v", scan.ID, err)
		return
	}
	defer func() { _ = body.Close() }()

	content, err := io.ReadAll(body)
	if err != nil {
		log.Printf("bookkeepingService.attachScan: reading scan %s: %v", scan.ID, err)
		return
	}

	if err := s.accounting.AttachFile(ctx, user.FikenCredentials(), resourceURL, scan.OriginalName, content); err != nil {
		log.Printf("bookkeepingService.attachScan: attaching scan %s to %s: %v", scan.ID, resourceURL, err)
	}
}

func (s *bookkeepingService) CreateContact(ctx context.Context, userID uuid.UUID, draft domain.ContactDraft) (string, error) {
	user, err := s.fikenContext(ctx, userID)
	if err != nil {
		return "", err
	}
	return s.accounting.CreateContact(ctx, user.FikenCredentials(), user.CompanySlug, &draft)
}

func (s *bookkeepingService) Suppliers(ctx context.Context, userID uuid.UUID) ([]map[string]any, error) {
	user, err := s.fikenContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	contacts, err := s.accounting.Fetch(ctx, user.FikenCredentials(), user.CompanySlug, "contacts")
	if err != nil {
		return nil, err
	}

	// Contacts with a supplier number are suppliers.
	var suppliers []map[string]any
	for _, contact := range contacts {
		if _, ok := contact["supplierNumber"]; ok {
			suppliers = append(suppliers, contact)
		}
	}
	return suppliers, nil
}

func (s *bookkeepingService) ExpenseAccounts(ctx context.Context, userID uuid.UUID) ([]map[string]any, error) {
	user, err := s.fikenContext(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.accounting.Fetch(ctx, user.FikenCredentials(), user.CompanySlug, "expense_accounts")
}

func (s *bookkeepingService) PaymentAccounts(ctx context.Context, userID uuid.UUID) ([]map[string]any, error) {
	user, err := s.fikenContext(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.accounting.Fetch(ctx, user.FikenCredentials(), user.CompanySlug, "payment_accounts")
}

func (s *bookkeepingService) History(ctx context.Context, userID uuid.UUID) ([]domain.HistoryEntry, error) {
	user, err := s.fikenContext(ctx, userID)
	if err != nil {
		return nil, err
	}
	auth := user.FikenCredentials()

	purchases, err := s.accounting.Fetch(ctx, auth, user.CompanySlug, "purchases")
	if err != nil {
		return nil, err
	}
	sales, err := s.accounting.Fetch(ctx, auth, user.CompanySlug, "sales")
	if err != nil {
		return nil, err
	}

	entries := make([]domain.HistoryEntry, 0, len(purchases)+len(sales))
	for _, purchase := range purchases {
		entries = append(entries, s.formatEntry(ctx, auth, purchase, "Kjøp", purchaseKindLabels, "supplier"))
	}
	for _, sale := range sales {
		entries = append(entries, s.formatEntry(ctx, auth, sale, "Salg", saleKindLabels, "customer"))
	}
	return entries, nil
}

// formatEntry turns one flattened purchase or sale into a display entry:
// Norwegian labels, amounts converted from øre, counterparty name resolved
// through its link.
func (s *bookkeepingService) formatEntry(
	ctx context.Context,
	auth domain.FikenAuth,
	item map[string]any,
	entryType string,
	kindLabels map[string]string,
	contactKey string,
) domain.HistoryEntry {
	entry := domain.HistoryEntry{Type: entryType, Paid: "Nei"}

	if v, ok := item["date"].(string); ok {
		entry.Date = v
	}
	if v, ok := item["identifier"].(string); ok {
		entry.Identifier = v
	}
	if v, ok := item["kind"].(string); ok {
		if label, known := kindLabels[v]; known {
			entry.Kind = label
		} else {
			entry.Kind = v
		}
	}
	if paid, ok := item["paid"].(bool); ok && paid {
		entry.Paid = "Ja"
	}

	if url, ok := item[contactKey].(string); ok && url != "" {
		contact, err := s.accounting.FetchURL(ctx, auth, url)
		if err != nil {
			log.Printf("bookkeepingService.formatEntry: contact lookup failed: %v", err)
		} else if name, ok := contact["name"].(string); ok {
			entry.Counterparty = name
		}
	}

	if rawLines, ok := item["lines"].([]any); ok {
		for _, rawLine := range rawLines {
			line, ok := rawLine.(map[string]any)
			if !ok {
				continue
			}
			el := domain.EntryLine{}
			if v, ok := line["description"].(string); ok {
				el.Description = v
			}
			net, netOK := fiken.MinorUnitsOf(line["netPrice"])
			vat, vatOK := fiken.MinorUnitsOf(line["vat"])
			if netOK {
				el.NetPrice = fiken.FormatMinorUnits(net)
			}
			if vatOK {
				el.VAT = fiken.FormatMinorUnits(vat)
			}
			if netOK && vatOK {
				el.GrossPrice = fiken.FormatMinorUnits(net + vat)
			}
			entry.Lines = append(entry.Lines, el)
		}
	}

	if attachments, ok := item[fiken.AttachmentsRel].([]any); ok && len(attachments) > 0 {
		if first, ok := attachments[0].(map[string]any); ok {
			if url, ok := first["downloadUrl"].(string); ok {
				entry.AttachmentURL = url
			}
		}
	}

	return entry
}

// ExportHistory renders the booked history as a spreadsheet, one row per
// entry line.
func (s *bookkeepingService) ExportHistory(ctx context.Context, userID uuid.UUID) (*excelize.File, error) {
	entries, err := s.History(ctx, userID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Historikk"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Type", "Art", "Dato", "Referanse", "Motpart", "Betalt", "Beskrivelse", "Netto", "MVA", "Brutto"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	row := 2
	for _, entry := range entries {
		lines := entry.Lines
		if len(lines) == 0 {
			lines = []domain.EntryLine{{}}
		}
		for _, line := range lines {
			values := []any{
				entry.Type, entry.Kind, entry.Date, entry.Identifier, entry.Counterparty,
				entry.Paid, line.Description, line.NetPrice, line.VAT, line.GrossPrice,
			}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return nil, fmt.Errorf("writing row %d: %w", row, err)
				}
			}
			row++
		}
	}

	return f, nil
}
