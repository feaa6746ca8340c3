package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wondergroup-de/wonder-events-backend/internal/booking"
	"github.com/wondergroup-de/wonder-events-backend/internal/pkg/pdfgen"
	"github.com/wondergroup-de/wonder-events-backend/internal/pkg/request"
	"github.com/wondergroup-de/wonder-events-backend/internal/pkg/response"
	"github.com/wondergroup-de/wonder-events-backend/internal/pricing"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// Quote prices a cart over a window without creating a booking. The caller
// owns the cart; nothing is persisted here.
func (h *Handler) Quote(c *gin.Context) {
	var body QuoteBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := body.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	req := toQuoteRequest(body)
	inv, err := h.service.Quote(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Re-derive the classification for the response; Classify is pure and
	// the window was already validated.
	cls, _ := pricing.Classify(body.StartTime, body.EndTime)
	c.JSON(http.StatusOK, NewQuoteResponse(inv, body.Lines, string(cls.Mode), cls.Units))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := body.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		QuoteRequest:  toQuoteRequest(body.QuoteBookingRequest),
		CustomerName:  body.CustomerName,
		CustomerEmail: body.CustomerEmail,
		Notes:         body.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	filter := booking.Filter{
		Status:        req.Status,
		Customer:      req.Customer,
		StartTimeFrom: req.StartTimeFrom,
		StartTimeTo:   req.StartTimeTo,
		Page:          req.Page,
		PageSize:      req.PageSize,
		SortBy:        req.SortBy,
		SortOrder:     req.SortOrder,
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) GetByReference(c *gin.Context) {
	reference := c.Param("reference")
	if reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing reference"})
		return
	}

	b, err := h.service.GetByReference(c.Request.Context(), reference)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Update(c *gin.Context) {
	var uriReq request.ByIDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Update(c.Request.Context(), uriReq.ID, booking.UpdateRequest{
		Status: body.Status,
		Notes:  body.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Invoice renders the booking's frozen invoice as a PDF. Rendering failures
// are collaborator failures: the booking itself is already committed and
// unaffected.
func (h *Handler) Invoice(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := pdfgen.RenderInvoice(b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render invoice"})
		return
	}

	filename := fmt.Sprintf("invoice_%s.pdf", b.Reference)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// ItemAvailability is the advisory stock check for one inventory item over a
// window. The authoritative check runs inside booking creation.
func (h *Handler) ItemAvailability(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	res, err := h.service.CheckItemAvailability(c.Request.Context(), id, req.Quantity, req.StartTime, req.EndTime)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, AvailabilityResponse{
		Available: res.Available,
		Remaining: res.Remaining,
		Unbounded: res.Remaining < 0,
	})
}

func toQuoteRequest(body QuoteBookingRequest) booking.QuoteRequest {
	lines := make([]booking.CartLine, 0, len(body.Lines))
	for _, l := range body.Lines {
		lines = append(lines, booking.CartLine{
			Kind:     booking.LineKind(l.Kind),
			RefID:    l.RefID,
			Quantity: l.Quantity,
		})
	}
	return booking.QuoteRequest{
		Lines:        lines,
		StartTime:    body.StartTime,
		EndTime:      body.EndTime,
		DiscountCode: body.DiscountCode,
	}
}
