package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wondergroup-de/wonder-events-backend/internal/discount"
	"github.com/wondergroup-de/wonder-events-backend/internal/pkg/request"
	"github.com/wondergroup-de/wonder-events-backend/internal/pkg/response"
	"github.com/wondergroup-de/wonder-events-backend/internal/pricing"
)

type Handler struct {
	service discount.Service
}

func NewHandler(service discount.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateDiscountRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	d, err := h.service.Create(c.Request.Context(), discount.CreateRequest{
		Code:  body.Code,
		Kind:  pricing.DiscountKind(body.Kind),
		Value: body.Value,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewDiscountResponse(d))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewDiscountResponse(d))
}

func (h *Handler) List(c *gin.Context) {
	var req ListDiscountsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	discounts, total, err := h.service.List(c.Request.Context(), discount.Filter{
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list discounts"})
		return
	}

	res := make([]DiscountResponse, len(discounts))
	for i, d := range discounts {
		res[i] = NewDiscountResponse(d)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(res, req.Page, req.PageSize, total))
}

func (h *Handler) Update(c *gin.Context) {
	var uriReq request.ByIDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateDiscountRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	var kind *pricing.DiscountKind
	if body.Kind != nil {
		k := pricing.DiscountKind(*body.Kind)
		kind = &k
	}

	d, err := h.service.Update(c.Request.Context(), uriReq.ID, discount.UpdateRequest{
		Code:  body.Code,
		Kind:  kind,
		Value: body.Value,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewDiscountResponse(d))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
