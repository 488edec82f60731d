// Package fiken is an HTTP client for the Fiken accounting API (HAL+JSON,
// basic auth, amounts in øre).
package fiken

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"bilagsky/internal/config"
	"bilagsky/internal/domain"
	"bilagsky/internal/port"
)

const defaultBaseURL = "https://fiken.no/api/v1"

// Client implements port.Accounting against the Fiken REST API.
type Client struct {
	baseURL string
	client  *http.Client
}

var _ port.Accounting = (*Client)(nil)

// NewClient creates a Fiken API client.
func NewClient(cfg config.FikenConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// dataPath resolves a caller-facing data type to its API path and the rel
// name its embedded collection is published under. Expense accounts are
// year-scoped in the API.
func dataPath(dataType string) (path, rel string, ok bool) {
	switch dataType {
	case "purchases", "sales", "contacts", "products":
		return dataType, dataType, true
	case "expense_accounts":
		return "accounts/" + strconv.Itoa(time.Now().Year()), "accounts", true
	case "payment_accounts":
		return "bank-accounts", "bank-accounts", true
	default:
		return "", "", false
	}
}

func (c *Client) CheckCredentials(ctx context.Context, auth domain.FikenAuth) error {
	resp, err := c.send(ctx, auth, http.MethodGet, c.baseURL+"/whoAmI", nil, "")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.ErrFikenAuthFailed
	default:
		return statusError(resp)
	}
}

func (c *Client) Companies(ctx context.Context, auth domain.FikenAuth) ([]domain.Company, error) {
	body, err := c.getJSON(ctx, auth, c.baseURL+"/companies")
	if err != nil {
		return nil, fmt.Errorf("fiken.Companies: %w", err)
	}

	var companies []domain.Company
	for _, entry := range embedded(body, "companies") {
		flat := flatten(entry)
		company := domain.Company{}
		if v, ok := flat["name"].(string); ok {
			company.Name = v
		}
		if v, ok := flat["organizationNumber"].(string); ok {
			company.OrgNumber = v
		}
		if v, ok := flat["slug"].(string); ok {
			company.Slug = v
		}
		companies = append(companies, company)
	}
	return companies, nil
}

func (c *Client) Fetch(ctx context.Context, auth domain.FikenAuth, slug, dataType string) ([]map[string]any, error) {
	path, rel, ok := dataPath(dataType)
	if !ok {
		return nil, fmt.Errorf("fiken.Fetch: unknown data type %q", dataType)
	}

	body, err := c.getJSON(ctx, auth, fmt.Sprintf("%s/companies/%s/%s", c.baseURL, slug, path))
	if err != nil {
		return nil, fmt.Errorf("fiken.Fetch %s: %w", dataType, err)
	}

	items := embedded(body, rel)
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, flatten(item))
	}
	return out, nil
}

func (c *Client) FetchURL(ctx context.Context, auth domain.FikenAuth, url string) (map[string]any, error) {
	body, err := c.getJSON(ctx, auth, url)
	if err != nil {
		return nil, fmt.Errorf("fiken.FetchURL: %w", err)
	}
	return flatten(body), nil
}

func (c *Client) CreatePurchase(ctx context.Context, auth domain.FikenAuth, slug string, draft *domain.PurchaseDraft) (string, error) {
	if len(draft.Lines) == 0 {
		return "", domain.ErrEmptyDraft
	}

	lines := make([]map[string]any, 0, len(draft.Lines))
	for _, line := range draft.Lines {
		vatType, rate, err := PurchaseVAT(line.VATCode)
		if err != nil {
			return "", fmt.Errorf("fiken.CreatePurchase: code %d: %w", line.VATCode, err)
		}
		net, vat := SplitGross(line.GrossAmount, rate)
		lines = append(lines, map[string]any{
			"description": line.Description,
			"netPrice":    ToMinorUnits(net),
			"vat":         ToMinorUnits(vat),
			"account":     line.Account,
			"vatType":     vatType,
		})
	}

	payload := map[string]any{
		"date":  draft.Date.Format("2006-01-02"),
		"kind":  string(draft.Kind),
		"paid":  draft.Paid,
		"lines": lines,
	}
	if draft.DueDate != nil {
		payload["dueDate"] = draft.DueDate.Format("2006-01-02")
	}
	if draft.Identifier != "" {
		payload["identifier"] = draft.Identifier
	}
	if draft.SupplierURL != "" {
		payload["supplier"] = draft.SupplierURL
	}
	if draft.PaymentAccount != "" {
		payload["paymentAccount"] = draft.PaymentAccount
	}

	return c.postJSON(ctx, auth, fmt.Sprintf("%s/companies/%s/purchases", c.baseURL, slug), payload)
}

func (c *Client) CreateSale(ctx context.Context, auth domain.FikenAuth, slug string, draft *domain.SaleDraft) (string, error) {
	if len(draft.Lines) == 0 {
		return "", domain.ErrEmptyDraft
	}

	lines := make([]map[string]any, 0, len(draft.Lines))
	for _, line := range draft.Lines {
		vatType, rate, err := SaleVAT(line.VATCode)
		if err != nil {
			return "", fmt.Errorf("fiken.CreateSale: code %d: %w", line.VATCode, err)
		}
		net, vat := SplitGross(line.GrossAmount, rate)
		lines = append(lines, map[string]any{
			"description": line.Description,
			"netPrice":    ToMinorUnits(net),
			"vat":         ToMinorUnits(vat),
			"account":     line.Account,
			"vatType":     vatType,
		})
	}

	payload := map[string]any{
		"date":  draft.Date.Format("2006-01-02"),
		"kind":  string(draft.Kind),
		"paid":  draft.Paid,
		"lines": lines,
	}
	if draft.Identifier != "" {
		payload["identifier"] = draft.Identifier
	}
	if draft.CustomerURL != "" {
		payload["customer"] = draft.CustomerURL
	}
	if draft.PaymentAccount != "" {
		payload["paymentAccount"] = draft.PaymentAccount
	}

	return c.postJSON(ctx, auth, fmt.Sprintf("%s/companies/%s/sales", c.baseURL, slug), payload)
}

func (c *Client) CreateContact(ctx context.Context, auth domain.FikenAuth, slug string, draft *domain.ContactDraft) (string, error) {
	payload := map[string]any{
		"name": draft.Name,
	}
	if draft.Email != "" {
		payload["email"] = draft.Email
	}
	if draft.OrgNumber != "" {
		payload["organizationIdentifier"] = draft.OrgNumber
	}
	if draft.SupplierNumber != 0 {
		payload["supplierNumber"] = draft.SupplierNumber
	}
	if draft.CustomerNumber != 0 {
		payload["customerNumber"] = draft.CustomerNumber
	}

	return c.postJSON(ctx, auth, fmt.Sprintf("%s/companies/%s/contacts", c.baseURL, slug), payload)
}

func (c *Client) AttachFile(ctx context.Context, auth domain.FikenAuth, resourceURL, filename string, content []byte) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("AttachmentFile", filename)
	if err != nil {
		return fmt.Errorf("fiken.AttachFile: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return fmt.Errorf("fiken.AttachFile: %w", err)
	}
	if err := writer.WriteField("filename", filename); err != nil {
		return fmt.Errorf("fiken.AttachFile: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("fiken.AttachFile: %w", err)
	}

	resp, err := c.send(ctx, auth, http.MethodPost, resourceURL+"/attachments", &buf, writer.FormDataContentType())
	if err != nil {
		return fmt.Errorf("fiken.AttachFile: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("fiken.AttachFile: %w", statusError(resp))
	}
	return nil
}

// getJSON performs an authenticated GET and decodes the JSON body.
func (c *Client) getJSON(ctx context.Context, auth domain.FikenAuth, url string) (map[string]any, error) {
	resp, err := c.send(ctx, auth, http.MethodGet, url, nil, "")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrFikenAuthFailed
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return body, nil
}

// postJSON performs an authenticated POST and returns the Location header
// of the created resource.
func (c *Client) postJSON(ctx context.Context, auth domain.FikenAuth, url string, payload any) (string, error) {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	resp, err := c.send(ctx, auth, http.MethodPost, url, bytes.NewReader(bodyBytes), "application/json")
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", domain.ErrFikenAuthFailed
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", statusError(resp)
	}
	return resp.Header.Get("Location"), nil
}

func (c *Client) send(ctx context.Context, auth domain.FikenAuth, method, url string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.SetBasicAuth(auth.Login, auth.Password)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling fiken API: %w", err)
	}
	return resp, nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("fiken API error (status %d): %s", resp.StatusCode, string(body))
}
