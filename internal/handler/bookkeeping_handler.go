package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bilagsky/internal/csvexport"
	"bilagsky/internal/domain"
	"bilagsky/internal/service"
)

// BookkeepingHandler handles purchase and sale submission plus the booked
// history views.
type BookkeepingHandler struct {
	bookkeepingService service.BookkeepingService
}

// NewBookkeepingHandler creates a new BookkeepingHandler.
func NewBookkeepingHandler(bookkeepingService service.BookkeepingService) *BookkeepingHandler {
	return &BookkeepingHandler{bookkeepingService: bookkeepingService}
}

// SubmitPurchase handles POST /api/v1/purchases
func (h *BookkeepingHandler) SubmitPurchase(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input service.SubmitPurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	location, err := h.bookkeepingService.SubmitPurchase(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, gin.H{"location": location})
}

// SubmitSale handles POST /api/v1/sales
func (h *BookkeepingHandler) SubmitSale(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input service.SubmitSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	location, err := h.bookkeepingService.SubmitSale(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, gin.H{"location": location})
}

// CreateContact handles POST /api/v1/contacts
func (h *BookkeepingHandler) CreateContact(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var draft domain.ContactDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	location, err := h.bookkeepingService.CreateContact(c.Request.Context(), userID, draft)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, gin.H{"location": location})
}

// Suppliers handles GET /api/v1/suppliers
func (h *BookkeepingHandler) Suppliers(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	suppliers, err := h.bookkeepingService.Suppliers(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, suppliers)
}

// ExpenseAccounts handles GET /api/v1/accounts/expense
func (h *BookkeepingHandler) ExpenseAccounts(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	accounts, err := h.bookkeepingService.ExpenseAccounts(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, accounts)
}

// PaymentAccounts handles GET /api/v1/accounts/payment
func (h *BookkeepingHandler) PaymentAccounts(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	accounts, err := h.bookkeepingService.PaymentAccounts(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, accounts)
}

// History handles GET /api/v1/history
func (h *BookkeepingHandler) History(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	entries, err := h.bookkeepingService.History(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entries)
}

// ExportHistory handles GET /api/v1/history/export
//
// Streams the booked history as an xlsx attachment, or as CSV when
// format=csv is given.
func (h *BookkeepingHandler) ExportHistory(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	if c.Query("format") == "csv" {
		h.exportHistoryCSV(c, userID)
		return
	}

	f, err := h.bookkeepingService.ExportHistory(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	defer func() { _ = f.Close() }()

	filename := fmt.Sprintf("historikk-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := f.Write(c.Writer); err != nil {
		// Headers are already out; nothing left to do but log.
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] writing history export: %v", requestID, err)
	}
}

func (h *BookkeepingHandler) exportHistoryCSV(c *gin.Context, userID uuid.UUID) {
	entries, err := h.bookkeepingService.History(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+csvexport.BuildFilename("historikk")+`"`)

	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		return
	}

	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteEntries(entries); err != nil {
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] writing history CSV: %v", requestID, err)
	}
}
