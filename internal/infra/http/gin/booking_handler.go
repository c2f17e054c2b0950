package ginserver

import (
	"context"
	"net/http"
	"strconv"
	"time"

	gin "github.com/gin-gonic/gin"

	"github.com/e1zenberg/java-shareit/internal/apperr"
	bookingapp "github.com/e1zenberg/java-shareit/internal/app/services/booking"
	domainbooking "github.com/e1zenberg/java-shareit/internal/domain/booking"
	domainitem "github.com/e1zenberg/java-shareit/internal/domain/item"
	domainuser "github.com/e1zenberg/java-shareit/internal/domain/user"
)

type BookingHandler struct {
	Bookings *bookingapp.Service
}

type createBookingRequest struct {
	ItemID string    `json:"itemId"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

type bookingResponse struct {
	ID       string    `json:"id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Status   string    `json:"status"`
	ItemID   string    `json:"itemId"`
	BookerID string    `json:"bookerId"`
}

func toBookingResponse(b *domainbooking.Booking) bookingResponse {
	return bookingResponse{
		ID:       string(b.ID),
		Start:    b.Start,
		End:      b.End,
		Status:   string(b.Status),
		ItemID:   string(b.ItemID),
		BookerID: string(b.BookerID),
	}
}

func (h BookingHandler) Create(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := h.Bookings.Create(c.Request.Context(), bookingapp.CreateParams{
		BookerID: caller,
		ItemID:   domainitem.ID(req.ItemID),
		Start:    req.Start,
		End:      req.End,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(b))
}

func (h BookingHandler) Approve(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'approved' must be a boolean"})
		return
	}
	b, err := h.Bookings.Approve(c.Request.Context(), caller, domainbooking.ID(c.Param("id")), approved)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h BookingHandler) Get(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	b, err := h.Bookings.Get(c.Request.Context(), caller, domainbooking.ID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h BookingHandler) ListForUser(c *gin.Context) {
	h.list(c, h.Bookings.ListForUser)
}

func (h BookingHandler) ListForOwner(c *gin.Context) {
	h.list(c, h.Bookings.ListForOwner)
}

type bookingListFunc func(ctx context.Context, id domainuser.ID, filter domainbooking.Filter, from, size int) ([]*domainbooking.Booking, error)

func (h BookingHandler) list(c *gin.Context, query bookingListFunc) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	filter, err := domainbooking.ParseFilter(c.DefaultQuery("state", "ALL"))
	if err != nil {
		writeError(c, apperr.InvalidInput("%s", err))
		return
	}
	from, size, ok := pageParams(c)
	if !ok {
		return
	}
	bookings, err := query(c.Request.Context(), caller, filter, from, size)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	c.JSON(http.StatusOK, out)
}
