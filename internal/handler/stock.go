package handler

import (
	"errors"
	"net/http"
	"strconv"

	"stockledger/internal/apierror"
	"stockledger/internal/dto"
	"stockledger/internal/repository"
	"stockledger/internal/service"

	"github.com/gin-gonic/gin"
)

type StockHandler struct{ svc service.StockService }

func NewStockHandler(svc service.StockService) *StockHandler {
	return &StockHandler{svc: svc}
}

// GetStock godoc
// @Summary Current stock level for a product
// @Tags stock
// @Produce json
// @Param product_id path int true "Product ID"
// @Success 200 {object} dto.StockLevelResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/stock/{product_id} [get]
func (h *StockHandler) GetStock(c *gin.Context) {
	id, ok := pathID(c, "product_id")
	if !ok {
		return
	}
	resp, err := h.svc.GetStock(c.Request.Context(), id)
	if err != nil {
		writeStockError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Receive godoc
// @Summary Receive stock (purchase / stock in)
// @Tags stock
// @Accept json
// @Produce json
// @Param product_id path int true "Product ID"
// @Param request body dto.MoveStockRequest true "Quantity"
// @Success 200 {object} dto.StockLevelResponse
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/stock/{product_id}/receive [post]
func (h *StockHandler) Receive(c *gin.Context) {
	id, ok := pathID(c, "product_id")
	if !ok {
		return
	}
	var req dto.MoveStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Receive(c.Request.Context(), id, req.Quantity)
	if err != nil {
		writeStockError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Issue godoc
// @Summary Issue stock (sale / stock out)
// @Tags stock
// @Accept json
// @Produce json
// @Param product_id path int true "Product ID"
// @Param request body dto.MoveStockRequest true "Quantity"
// @Success 200 {object} dto.StockLevelResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/stock/{product_id}/issue [post]
func (h *StockHandler) Issue(c *gin.Context) {
	id, ok := pathID(c, "product_id")
	if !ok {
		return
	}
	var req dto.MoveStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Issue(c.Request.Context(), id, req.Quantity)
	if err != nil {
		writeStockError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StockHandler) ListMovements(c *gin.Context) {
	filter := repository.StockTransactionFilter{
		Type:  c.Query("type"),
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 100),
	}
	if pid := c.Query("product_id"); pid != "" {
		id, err := strconv.ParseInt(pid, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid product_id filter"))
			return
		}
		filter.ProductID = &id
	}

	resp, err := h.svc.ListMovements(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list stock movements"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// writeStockError maps the typed domain failures onto HTTP statuses.
func writeStockError(c *gin.Context, err error) {
	var invalidQty *service.InvalidQuantityError
	var insufficient *service.InsufficientStockError
	var negative *service.NegativeStockError

	switch {
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, apierror.New("Product not found"))
	case errors.As(err, &invalidQty):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	case errors.As(err, &insufficient):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.As(err, &negative):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Internal server error"))
	}
}

func queryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	return v
}
