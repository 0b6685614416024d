package handlers

import (
	"net/http"

	"github.com/SscSPs/recharge_backend/internal/core/domain"
	portssvc "github.com/SscSPs/recharge_backend/internal/core/ports/services"
	"github.com/SscSPs/recharge_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to seller accounts and their ledger.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	ledgerService  portssvc.LedgerSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, ls portssvc.LedgerSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
		ledgerService:  ls,
	}
}

// RegisterAccountRoutes registers account and ledger routes. All of them are reads.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := newAccountHandler(accountService, ledgerService)

	accounts := rg.Group("/accounts/:accountID")
	{
		accounts.GET("", h.getAccount)
		accounts.GET("/ledger", h.listLedgerEntries)
		accounts.GET("/ledger/sum", h.sumLedger)
		accounts.GET("/ledger/replay", h.replayLedger)
		accounts.GET("/reconciliation", h.reconcile)
	}
}

// RegisterTargetRoutes registers target lookup routes.
func RegisterTargetRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService, nil)

	targets := rg.Group("/targets")
	{
		targets.GET("", h.findTarget)
		targets.GET("/:targetID", h.getTarget)
	}
}

// getAccount godoc
// @Summary Get a seller account
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), caller, c.Param("accountID"))
	if err != nil {
		respondError(c, err, "Failed to get account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listLedgerEntries godoc
// @Summary List ledger entries of an account
// @Description Newest first, optionally filtered by kind and status.
// @Tags ledger
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   kind query string false "Entry kind" Enums(credit_increase, charge_sale)
// @Param   status query string false "Entry status" Enums(successful, failed)
// @Param   limit query int false "Page size" minimum(1) maximum(100)
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListLedgerEntriesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/ledger [get]
func (h *accountHandler) listLedgerEntries(c *gin.Context) {
	var query dto.ListLedgerEntriesParams
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	filter, err := toLedgerFilter(query.Kind, query.Status)
	if err != nil {
		respondError(c, err, "Invalid ledger filter")
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	params := domain.ListLedgerParams{
		ListParams: toDomainListParams(dto.ListParams{
			AccountID: c.Param("accountID"),
			Limit:     query.Limit,
			NextToken: query.NextToken,
		}),
		Filter: filter,
	}

	entries, next, err := h.ledgerService.ListEntries(c.Request.Context(), caller, params)
	if err != nil {
		respondError(c, err, "Failed to list ledger entries")
		return
	}

	c.JSON(http.StatusOK, dto.ToListLedgerEntriesResponse(entries, next))
}

// sumLedger godoc
// @Summary Sum ledger amounts of an account
// @Description Sums entry amounts, optionally filtered by kind and status. Unfiltered, it equals the account balance.
// @Tags ledger
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   kind query string false "Entry kind" Enums(credit_increase, charge_sale)
// @Param   status query string false "Entry status" Enums(successful, failed)
// @Success 200 {object} dto.LedgerSumResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/ledger/sum [get]
func (h *accountHandler) sumLedger(c *gin.Context) {
	var query dto.LedgerSumParams
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	filter, err := toLedgerFilter(query.Kind, query.Status)
	if err != nil {
		respondError(c, err, "Invalid ledger filter")
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	accountID := c.Param("accountID")
	sum, err := h.ledgerService.SumByAccount(c.Request.Context(), caller, accountID, filter)
	if err != nil {
		respondError(c, err, "Failed to sum ledger")
		return
	}

	c.JSON(http.StatusOK, dto.LedgerSumResponse{
		AccountID: accountID,
		Kind:      query.Kind,
		Status:    query.Status,
		Sum:       sum,
	})
}

// replayLedger godoc
// @Summary Replay ledger entries of an account
// @Description Returns entries with a sequence greater than after, oldest first.
// @Tags ledger
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   after query int false "Sequence to start after" minimum(0)
// @Param   limit query int false "Page size" minimum(1) maximum(1000)
// @Success 200 {object} dto.ReplayLedgerResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/ledger/replay [get]
func (h *accountHandler) replayLedger(c *gin.Context) {
	var query dto.ReplayLedgerParams
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	entries, err := h.ledgerService.Replay(c.Request.Context(), caller, c.Param("accountID"), query.After, query.Limit)
	if err != nil {
		respondError(c, err, "Failed to replay ledger")
		return
	}

	c.JSON(http.StatusOK, dto.ToReplayLedgerResponse(entries, query.After))
}

// reconcile godoc
// @Summary Reconcile an account
// @Description Replays the ledger from zero and compares the result with the stored balance, read from one snapshot.
// @Tags ledger
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/reconciliation [get]
func (h *accountHandler) reconcile(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	rec, err := h.ledgerService.Reconcile(c.Request.Context(), caller, c.Param("accountID"))
	if err != nil {
		respondError(c, err, "Failed to reconcile account")
		return
	}

	c.JSON(http.StatusOK, dto.ToReconciliationResponse(rec))
}

// getTarget godoc
// @Summary Get a target
// @Tags targets
// @Produce  json
// @Param   targetID path string true "Target ID"
// @Success 200 {object} dto.TargetResponse
// @Failure 404 {object} dto.ErrorResponse "Target not found"
// @Security BearerAuth
// @Router /targets/{targetID} [get]
func (h *accountHandler) getTarget(c *gin.Context) {
	target, err := h.accountService.GetTarget(c.Request.Context(), c.Param("targetID"))
	if err != nil {
		respondError(c, err, "Failed to get target")
		return
	}

	c.JSON(http.StatusOK, dto.ToTargetResponse(target))
}

// findTarget godoc
// @Summary Find a target by phone number
// @Tags targets
// @Produce  json
// @Param   externalID query string true "Phone number, digits only"
// @Success 200 {object} dto.TargetResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid phone number"
// @Failure 404 {object} dto.ErrorResponse "Target not found"
// @Security BearerAuth
// @Router /targets [get]
func (h *accountHandler) findTarget(c *gin.Context) {
	var query dto.TargetLookupParams
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	target, err := h.accountService.GetTargetByExternalID(c.Request.Context(), query.ExternalID)
	if err != nil {
		respondError(c, err, "Failed to find target")
		return
	}

	c.JSON(http.StatusOK, dto.ToTargetResponse(target))
}

// toLedgerFilter parses optional kind and status query values.
func toLedgerFilter(kind, status string) (domain.LedgerFilter, error) {
	var filter domain.LedgerFilter
	if kind != "" {
		k, err := domain.ParseEntryKind(kind)
		if err != nil {
			return filter, err
		}
		filter.Kind = &k
	}
	if status != "" {
		st, err := domain.ParseEntryStatus(status)
		if err != nil {
			return filter, err
		}
		filter.Status = &st
	}
	return filter, nil
}
