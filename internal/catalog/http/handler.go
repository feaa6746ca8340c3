package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wondergroup-de/wonder-events-backend/internal/catalog"
	"github.com/wondergroup-de/wonder-events-backend/internal/pkg/request"
	"github.com/wondergroup-de/wonder-events-backend/internal/pkg/response"
)

type Handler struct {
	service catalog.Service
}

func NewHandler(service catalog.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateItem(c *gin.Context) {
	var body CreateItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	it, err := h.service.CreateItem(c.Request.Context(), catalog.CreateItemRequest{
		Name:        body.Name,
		Category:    catalog.Category(body.Category),
		HourlyPrice: body.HourlyPrice,
		DailyPrice:  body.DailyPrice,
		Stock:       body.Stock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewItemResponse(it))
}

func (h *Handler) GetItem(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	it, err := h.service.GetItem(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewItemResponse(it))
}

func (h *Handler) ListItems(c *gin.Context) {
	var req ListItemsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	items, total, err := h.service.ListItems(c.Request.Context(), catalog.ItemFilter{
		Name:      req.Name,
		Category:  req.Category,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list items"})
		return
	}

	res := make([]ItemResponse, len(items))
	for i, it := range items {
		res[i] = NewItemResponse(it)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(res, req.Page, req.PageSize, total))
}

func (h *Handler) UpdateItem(c *gin.Context) {
	var uriReq request.ByIDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	var category *catalog.Category
	if body.Category != nil {
		cat := catalog.Category(*body.Category)
		category = &cat
	}

	it, err := h.service.UpdateItem(c.Request.Context(), uriReq.ID, catalog.UpdateItemRequest{
		Name:        body.Name,
		Category:    category,
		HourlyPrice: body.HourlyPrice,
		DailyPrice:  body.DailyPrice,
		Stock:       body.Stock,
		ClearStock:  body.ClearStock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewItemResponse(it))
}

func (h *Handler) DeleteItem(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) CreateService(c *gin.Context) {
	var body CreateServiceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	svc, err := h.service.CreateService(c.Request.Context(), catalog.CreateServiceRequest{
		Name:        body.Name,
		HourlyPrice: body.HourlyPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewServiceResponse(svc))
}

func (h *Handler) GetService(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	svc, err := h.service.GetService(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewServiceResponse(svc))
}

func (h *Handler) ListServices(c *gin.Context) {
	var req ListServicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	services, total, err := h.service.ListServices(c.Request.Context(), catalog.ServiceFilter{
		Name:      req.Name,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list services"})
		return
	}

	res := make([]ServiceResponse, len(services))
	for i, svc := range services {
		res[i] = NewServiceResponse(svc)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(res, req.Page, req.PageSize, total))
}

func (h *Handler) UpdateService(c *gin.Context) {
	var uriReq request.ByIDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateServiceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	svc, err := h.service.UpdateService(c.Request.Context(), uriReq.ID, catalog.UpdateServiceRequest{
		Name:        body.Name,
		HourlyPrice: body.HourlyPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewServiceResponse(svc))
}

func (h *Handler) DeleteService(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.DeleteService(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
