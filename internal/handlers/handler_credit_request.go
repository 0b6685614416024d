package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/recharge_backend/internal/core/domain"
	portssvc "github.com/SscSPs/recharge_backend/internal/core/ports/services"
	"github.com/SscSPs/recharge_backend/internal/dto"
	"github.com/SscSPs/recharge_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// creditRequestHandler handles HTTP requests related to credit requests.
type creditRequestHandler struct {
	creditRequestService portssvc.CreditRequestSvcFacade
}

func newCreditRequestHandler(svc portssvc.CreditRequestSvcFacade) *creditRequestHandler {
	return &creditRequestHandler{creditRequestService: svc}
}

// RegisterCreditRequestRoutes registers routes related to credit requests.
func RegisterCreditRequestRoutes(rg *gin.RouterGroup, svc portssvc.CreditRequestSvcFacade, writeGuards ...gin.HandlerFunc) {
	h := newCreditRequestHandler(svc)

	requests := rg.Group("/credit-requests")
	{
		requests.POST("", withGuards(writeGuards, h.submitCreditRequest)...)
		requests.GET("", h.listCreditRequests)
		requests.GET("/:requestID", h.getCreditRequest)
		requests.POST("/:requestID/process", withGuards(writeGuards, h.processCreditRequest)...)
	}
}

// submitCreditRequest godoc
// @Summary Request a credit increase
// @Description Records a pending credit request. The balance only changes once an administrator approves it.
// @Tags credit-requests
// @Accept  json
// @Produce  json
// @Param   request body dto.SubmitCreditRequestRequest true "Credit request"
// @Success 201 {object} dto.CreditRequestResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Caller does not own the account"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 409 {object} dto.ErrorResponse "Reference id already used"
// @Failure 503 {object} dto.ErrorResponse "Lock contention, retry"
// @Security BearerAuth
// @Router /credit-requests [post]
func (h *creditRequestHandler) submitCreditRequest(c *gin.Context) {
	var req dto.SubmitCreditRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Received credit request",
		slog.String("reference_id", req.ReferenceID),
		slog.Int64("amount", req.Amount))

	created, err := h.creditRequestService.SubmitCreditRequest(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Credit request rejected")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCreditRequestResponse(created))
}

// processCreditRequest godoc
// @Summary Approve or reject a credit request
// @Description Approval credits the account and appends a ledger entry. A request can be processed once.
// @Tags credit-requests
// @Accept  json
// @Produce  json
// @Param   requestID path string true "Request ID"
// @Param   decision body dto.ProcessCreditRequestRequest true "Decision"
// @Success 200 {object} dto.CreditRequestResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid decision"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an administrator"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Already processed"
// @Failure 503 {object} dto.ErrorResponse "Lock contention, retry"
// @Security BearerAuth
// @Router /credit-requests/{requestID}/process [post]
func (h *creditRequestHandler) processCreditRequest(c *gin.Context) {
	var req dto.ProcessCreditRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	decision, err := domain.ParseDecision(req.Action)
	if err != nil {
		respondError(c, err, "Invalid decision")
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	requestID := c.Param("requestID")
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Processing credit request",
		slog.String("request_id", requestID),
		slog.String("decision", string(decision)))

	processed, err := h.creditRequestService.ProcessCreditRequest(c.Request.Context(), caller, requestID, decision)
	if err != nil {
		respondError(c, err, "Credit request processing failed")
		return
	}

	c.JSON(http.StatusOK, dto.ToCreditRequestResponse(processed))
}

// getCreditRequest godoc
// @Summary Get a credit request
// @Tags credit-requests
// @Produce  json
// @Param   requestID path string true "Request ID"
// @Success 200 {object} dto.CreditRequestResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Security BearerAuth
// @Router /credit-requests/{requestID} [get]
func (h *creditRequestHandler) getCreditRequest(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	found, err := h.creditRequestService.GetCreditRequest(c.Request.Context(), caller, c.Param("requestID"))
	if err != nil {
		respondError(c, err, "Failed to get credit request")
		return
	}

	c.JSON(http.StatusOK, dto.ToCreditRequestResponse(found))
}

// listCreditRequests godoc
// @Summary List credit requests
// @Description Lists credit requests newest first. Sellers only see their own account.
// @Tags credit-requests
// @Produce  json
// @Param   accountID query string false "Account ID (administrators)"
// @Param   limit query int false "Page size" minimum(1) maximum(100)
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListCreditRequestsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /credit-requests [get]
func (h *creditRequestHandler) listCreditRequests(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	reqs, next, err := h.creditRequestService.ListCreditRequests(c.Request.Context(), caller, toDomainListParams(params))
	if err != nil {
		respondError(c, err, "Failed to list credit requests")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCreditRequestsResponse(reqs, next))
}
