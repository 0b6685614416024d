package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/recharge_backend/internal/core/ports/services"
	"github.com/SscSPs/recharge_backend/internal/dto"
	"github.com/SscSPs/recharge_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// chargeSaleHandler handles HTTP requests related to charge sales.
type chargeSaleHandler struct {
	chargeSaleService portssvc.ChargeSaleSvcFacade
}

func newChargeSaleHandler(svc portssvc.ChargeSaleSvcFacade) *chargeSaleHandler {
	return &chargeSaleHandler{chargeSaleService: svc}
}

// RegisterChargeSaleRoutes registers routes related to charge sales. The
// optional writeGuards run before mutating routes only.
func RegisterChargeSaleRoutes(rg *gin.RouterGroup, svc portssvc.ChargeSaleSvcFacade, writeGuards ...gin.HandlerFunc) {
	h := newChargeSaleHandler(svc)

	sales := rg.Group("/charge-sales")
	{
		sales.POST("", withGuards(writeGuards, h.submitChargeSale)...)
		sales.GET("", h.listChargeSales)
		sales.GET("/:transactionID", h.getChargeSale)
	}
}

// submitChargeSale godoc
// @Summary Sell a recharge
// @Description Debits the seller account and credits the target by the same amount. A transaction id is applied at most once.
// @Tags charge-sales
// @Accept  json
// @Produce  json
// @Param   sale body dto.SubmitChargeSaleRequest true "Charge sale"
// @Success 201 {object} dto.ChargeSaleResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller does not own the account"
// @Failure 404 {object} dto.ErrorResponse "Account or target not found"
// @Failure 409 {object} dto.ErrorResponse "Transaction id already used"
// @Failure 422 {object} dto.ErrorResponse "Insufficient credit"
// @Failure 503 {object} dto.ErrorResponse "Lock contention, retry"
// @Security BearerAuth
// @Router /charge-sales [post]
func (h *chargeSaleHandler) submitChargeSale(c *gin.Context) {
	var req dto.SubmitChargeSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Received charge sale",
		slog.String("transaction_id", req.TransactionID),
		slog.String("target_id", req.TargetID),
		slog.Int64("amount", req.Amount))

	sale, err := h.chargeSaleService.SubmitChargeSale(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Charge sale rejected")
		return
	}

	c.JSON(http.StatusCreated, dto.ToChargeSaleResponse(sale))
}

// getChargeSale godoc
// @Summary Get a charge sale
// @Description Looks up a charge sale by its transaction id, e.g. after a duplicate submission
// @Tags charge-sales
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.ChargeSaleResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Security BearerAuth
// @Router /charge-sales/{transactionID} [get]
func (h *chargeSaleHandler) getChargeSale(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	sale, err := h.chargeSaleService.GetChargeSale(c.Request.Context(), caller, c.Param("transactionID"))
	if err != nil {
		respondError(c, err, "Failed to get charge sale")
		return
	}

	c.JSON(http.StatusOK, dto.ToChargeSaleResponse(sale))
}

// listChargeSales godoc
// @Summary List charge sales
// @Description Lists charge sales newest first. Sellers only see their own account.
// @Tags charge-sales
// @Produce  json
// @Param   accountID query string false "Account ID (administrators)"
// @Param   limit query int false "Page size" minimum(1) maximum(100)
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListChargeSalesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /charge-sales [get]
func (h *chargeSaleHandler) listChargeSales(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	sales, next, err := h.chargeSaleService.ListChargeSales(c.Request.Context(), caller, toDomainListParams(params))
	if err != nil {
		respondError(c, err, "Failed to list charge sales")
		return
	}

	c.JSON(http.StatusOK, dto.ToListChargeSalesResponse(sales, next))
}
