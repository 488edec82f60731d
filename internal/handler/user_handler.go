package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bilagsky/internal/service"
)

// UserHandler handles account management endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me handles GET /api/v1/me
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, user)
}

// UpdateProfile handles PUT /api/v1/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input service.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, user)
}

// ChangePassword handles PUT /api/v1/me/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input service.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID, input); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "password changed"})
}

// SetFikenCredentials handles PUT /api/v1/me/fiken
func (h *UserHandler) SetFikenCredentials(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input service.FikenCredentialsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.userService.SetFikenCredentials(c.Request.Context(), userID, input); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "Fiken account linked"})
}

// Companies handles GET /api/v1/me/companies
func (h *UserHandler) Companies(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	companies, err := h.userService.Companies(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, companies)
}

// SetActiveCompany handles PUT /api/v1/me/company
func (h *UserHandler) SetActiveCompany(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input struct {
		Slug string `json:"slug" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.userService.SetActiveCompany(c.Request.Context(), userID, input.Slug); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "active company set", "slug": input.Slug})
}

// Delete handles DELETE /api/v1/me
func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), userID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "account deleted"})
}
