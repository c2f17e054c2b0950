package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	itemapp "github.com/e1zenberg/java-shareit/internal/app/services/item"
	domainbooking "github.com/e1zenberg/java-shareit/internal/domain/booking"
	domainitem "github.com/e1zenberg/java-shareit/internal/domain/item"
	domainrequest "github.com/e1zenberg/java-shareit/internal/domain/request"
)

type ItemHandler struct {
	Items *itemapp.Service
}

type itemPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   string `json:"requestId"`
}

type itemResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     string `json:"ownerId"`
	RequestID   string `json:"requestId,omitempty"`
}

type commentResponse struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type itemDetailsResponse struct {
	itemResponse
	Comments    []commentResponse    `json:"comments"`
	LastBooking *domainbooking.Short `json:"lastBooking,omitempty"`
	NextBooking *domainbooking.Short `json:"nextBooking,omitempty"`
}

func toItemResponse(it *domainitem.Item) itemResponse {
	return itemResponse{
		ID:          string(it.ID),
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		OwnerID:     string(it.OwnerID),
		RequestID:   string(it.RequestID),
	}
}

func toCommentResponses(comments []*domainitem.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, commentResponse{
			ID:         string(c.ID),
			Text:       c.Text,
			AuthorName: c.AuthorName,
			Created:    c.Created,
		})
	}
	return out
}

func (h ItemHandler) Create(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	var req itemPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	it, err := h.Items.Create(c.Request.Context(), caller, domainitem.CreateParams{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		RequestID:   domainrequest.ID(req.RequestID),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toItemResponse(it))
}

func (h ItemHandler) Update(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	var req itemPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	it, err := h.Items.Update(c.Request.Context(), caller, domainitem.ID(c.Param("id")), domainitem.Patch{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toItemResponse(it))
}

func (h ItemHandler) Get(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	details, err := h.Items.Get(c.Request.Context(), caller, domainitem.ID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemDetailsResponse{
		itemResponse: toItemResponse(details.Item),
		Comments:     toCommentResponses(details.Comments),
		LastBooking:  details.Last,
		NextBooking:  details.Next,
	})
}

func (h ItemHandler) ListByOwner(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	from, size, ok := pageParams(c)
	if !ok {
		return
	}
	rows, err := h.Items.ListByOwner(c.Request.Context(), caller, from, size)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]itemDetailsResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, itemDetailsResponse{
			itemResponse: toItemResponse(row.Item),
			Comments:     toCommentResponses(row.Comments),
			LastBooking:  row.Last,
			NextBooking:  row.Next,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h ItemHandler) Search(c *gin.Context) {
	items, err := h.Items.Search(c.Request.Context(), c.Query("text"))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]itemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	c.JSON(http.StatusOK, out)
}

type commentPayload struct {
	Text string `json:"text"`
}

func (h ItemHandler) AddComment(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	var req commentPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	comment, err := h.Items.AddComment(c.Request.Context(), caller, domainitem.ID(c.Param("id")), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, commentResponse{
		ID:         string(comment.ID),
		Text:       comment.Text,
		AuthorName: comment.AuthorName,
		Created:    comment.Created,
	})
}
