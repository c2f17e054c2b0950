package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	userapp "github.com/e1zenberg/java-shareit/internal/app/services/user"
	domainuser "github.com/e1zenberg/java-shareit/internal/domain/user"
)

type UserHandler struct {
	Users *userapp.Service
}

type userPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserResponse(u *domainuser.User) userResponse {
	return userResponse{ID: string(u.ID), Name: u.Name, Email: u.Email}
}

func (h UserHandler) Create(c *gin.Context) {
	var req userPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.Users.Create(c.Request.Context(), domainuser.CreateParams{Name: req.Name, Email: req.Email})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(u))
}

func (h UserHandler) Update(c *gin.Context) {
	var req userPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.Users.Update(c.Request.Context(), domainuser.ID(c.Param("id")), userapp.Patch{Name: req.Name, Email: req.Email})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

func (h UserHandler) Get(c *gin.Context) {
	u, err := h.Users.Get(c.Request.Context(), domainuser.ID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

func (h UserHandler) List(c *gin.Context) {
	users, err := h.Users.All(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	c.JSON(http.StatusOK, out)
}

func (h UserHandler) Delete(c *gin.Context) {
	if err := h.Users.Delete(c.Request.Context(), domainuser.ID(c.Param("id"))); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
