package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	requestapp "github.com/e1zenberg/java-shareit/internal/app/services/request"
	domainrequest "github.com/e1zenberg/java-shareit/internal/domain/request"
)

type RequestHandler struct {
	Requests *requestapp.Service
}

type requestPayload struct {
	Description string `json:"description"`
}

type requestResponse struct {
	ID          string         `json:"id"`
	Description string         `json:"description"`
	Created     time.Time      `json:"created"`
	Items       []itemResponse `json:"items"`
}

func toRequestResponse(row *requestapp.WithItems) requestResponse {
	items := make([]itemResponse, 0, len(row.Items))
	for _, it := range row.Items {
		items = append(items, toItemResponse(it))
	}
	return requestResponse{
		ID:          string(row.Request.ID),
		Description: row.Request.Description,
		Created:     row.Request.Created,
		Items:       items,
	}
}

func (h RequestHandler) Create(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	var req requestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.Requests.Create(c.Request.Context(), caller, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, requestResponse{
		ID:          string(created.ID),
		Description: created.Description,
		Created:     created.Created,
		Items:       []itemResponse{},
	})
}

func (h RequestHandler) Own(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	rows, err := h.Requests.Own(c.Request.Context(), caller)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRequestResponses(rows))
}

func (h RequestHandler) Others(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	from, size, ok := pageParams(c)
	if !ok {
		return
	}
	rows, err := h.Requests.Others(c.Request.Context(), caller, from, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRequestResponses(rows))
}

func (h RequestHandler) Get(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	row, err := h.Requests.Get(c.Request.Context(), caller, domainrequest.ID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRequestResponse(row))
}

func toRequestResponses(rows []*requestapp.WithItems) []requestResponse {
	out := make([]requestResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toRequestResponse(row))
	}
	return out
}
