package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kosthub/backend/internal/application/identity"
	"github.com/kosthub/backend/internal/interfaces/http/dto"
)

// AccountHandler handles back-office account administration endpoints
type AccountHandler struct {
	BaseHandler
	accountService *identity.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *identity.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// List godoc
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Param        search query string false "Search by email, name or phone"
// @Param        status query string false "Filter by status" Enums(pending, active, locked, deactivated)
// @Param        role_claim query string false "Filter by profile role claim"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=identity.AccountListResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /backoffice/accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	var query AccountListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.accountService.List(c.Request.Context(), query.toFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Get godoc
// @Summary      Get an account
// @Tags         accounts
// @Produce      json
// @Param        id path string true "Account ID" format(uuid)
// @Success      200 {object} dto.Response{data=identity.AccountDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /backoffice/accounts/{id} [get]
func (h *AccountHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	account, err := h.accountService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// Deactivate godoc
// @Summary      Deactivate an account
// @Description  The account can no longer log in. An existing session resolves to unauthenticated on its next navigation.
// @Tags         accounts
// @Produce      json
// @Param        id path string true "Account ID" format(uuid)
// @Success      200 {object} dto.Response{data=identity.AccountDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /backoffice/accounts/{id}/deactivate [post]
func (h *AccountHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	account, err := h.accountService.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// Reactivate godoc
// @Summary      Reactivate an account
// @Tags         accounts
// @Produce      json
// @Param        id path string true "Account ID" format(uuid)
// @Success      200 {object} dto.Response{data=identity.AccountDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /backoffice/accounts/{id}/reactivate [post]
func (h *AccountHandler) Reactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	account, err := h.accountService.Reactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// Unlock godoc
// @Summary      Unlock an account
// @Description  Clear a login-failure lock before its window expires
// @Tags         accounts
// @Produce      json
// @Param        id path string true "Account ID" format(uuid)
// @Success      200 {object} dto.Response{data=identity.AccountDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /backoffice/accounts/{id}/unlock [post]
func (h *AccountHandler) Unlock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	account, err := h.accountService.Unlock(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// Count godoc
// @Summary      Get account count
// @Tags         accounts
// @Produce      json
// @Success      200 {object} dto.Response{data=object}
// @Security     BearerAuth
// @Router       /backoffice/accounts/stats/count [get]
func (h *AccountHandler) Count(c *gin.Context) {
	count, err := h.accountService.Count(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"count": count})
}

var _ = dto.Response{}
