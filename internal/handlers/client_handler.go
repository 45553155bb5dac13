package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"clientsapi/internal/models"
	"clientsapi/internal/services"
)

type ClientHandler struct {
	service services.ClientService
}

type createClientRequest struct {
	Name   string        `json:"name" binding:"required"`
	Email  string        `json:"email" binding:"required,email"`
	Gender models.Gender `json:"gender" binding:"required,gender"`
	Phone  string        `json:"phone" binding:"required"`
}

type updateClientRequest struct {
	ID     int           `json:"id" binding:"required"`
	Name   string        `json:"name" binding:"required"`
	Email  string        `json:"email" binding:"required,email"`
	Gender models.Gender `json:"gender" binding:"required,gender"`
	Phone  string        `json:"phone" binding:"required"`
}

type searchQuery struct {
	Name   string `form:"name"`
	Gender string `form:"gender" binding:"omitempty,gender"`
}

func NewClientHandler(service services.ClientService) *ClientHandler {
	RegisterValidators()
	return &ClientHandler{service: service}
}

// GetByID godoc
//
//	@Summary	Get a client by id
//	@Tags		Clients
//	@Produce	json
//	@Param		id	path		int	true	"Client id"
//	@Success	200	{object}	models.ClientResponse
//	@Failure	400	{object}	errorResponse
//	@Failure	404	{object}	errorResponse
//	@Router		/api/v1/clients/{id} [get]
func (h *ClientHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	client, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "getByID", err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// Search godoc
//
//	@Summary		Search clients
//	@Description	Filters by case-sensitive name substring, by gender, or both. At least one is required.
//	@Tags			Clients
//	@Produce		json
//	@Param			name	query		string	false	"Name substring"
//	@Param			gender	query		string	false	"Male or Female"
//	@Success		200		{array}		models.ClientResponse
//	@Failure		400		{object}	errorResponse
//	@Router			/api/v1/clients/search [get]
func (h *ClientHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	var filter models.ClientFilter
	if q.Name != "" {
		filter.Name = &q.Name
	}
	if q.Gender != "" {
		g, err := models.ParseGender(q.Gender)
		if err != nil {
			badRequest(c, err)
			return
		}
		filter.Gender = &g
	}

	clients, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "search", err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// List godoc
//
//	@Summary	List all clients
//	@Tags		Clients
//	@Produce	json
//	@Success	200	{array}	models.ClientResponse
//	@Success	204	"Store is empty"
//	@Failure	500	{object}	errorResponse
//	@Router		/api/v1/clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, "list", err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// Create godoc
//
//	@Summary	Create a client
//	@Tags		Clients
//	@Accept		json
//	@Produce	json
//	@Param		request	body		createClientRequest	true	"Client"
//	@Success	201		{object}	idResponse
//	@Header		201		{string}	Location	"/api/v1/clients/{id}"
//	@Failure	400		{object}	errorResponse
//	@Router		/api/v1/clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[client][create][bind][err] %v", err)
		badRequest(c, err)
		return
	}

	client := &models.Client{
		Name:   req.Name,
		Email:  req.Email,
		Gender: req.Gender,
		Phone:  req.Phone,
	}
	id, err := h.service.Create(c.Request.Context(), client)
	if err != nil {
		respondError(c, "create", err)
		return
	}
	log.Printf("[client][create][ok] id=%d", id)
	c.Header("Location", fmt.Sprintf("%s/%d", clientsPath(c), id))
	c.JSON(http.StatusCreated, idResponse{ID: id})
}

// Update godoc
//
//	@Summary	Replace a client
//	@Tags		Clients
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"Client id"
//	@Param		request	body		updateClientRequest	true	"Client"
//	@Success	200		{object}	idResponse
//	@Failure	400		{object}	errorResponse
//	@Failure	404		{object}	errorResponse
//	@Router		/api/v1/clients/{id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[client][update][bind][err] id=%d: %v", id, err)
		badRequest(c, err)
		return
	}

	client := &models.Client{
		ID:     req.ID,
		Name:   req.Name,
		Email:  req.Email,
		Gender: req.Gender,
		Phone:  req.Phone,
	}
	updated, err := h.service.Update(c.Request.Context(), id, client)
	if err != nil {
		respondError(c, "update", err)
		return
	}
	log.Printf("[client][update][ok] id=%d", updated)
	c.JSON(http.StatusOK, idResponse{ID: updated})
}

// SetEnabled godoc
//
//	@Summary	Enable or disable a client
//	@Tags		Clients
//	@Produce	json
//	@Param		id		path		int		true	"Client id"
//	@Param		enabled	query		bool	true	"New enabled state"
//	@Success	200		{object}	idResponse
//	@Failure	400		{object}	errorResponse
//	@Failure	404		{object}	errorResponse
//	@Router		/api/v1/clients/{id} [patch]
func (h *ClientHandler) SetEnabled(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	enabled, err := parseEnabled(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	updated, err := h.service.SetEnabled(c.Request.Context(), id, enabled)
	if err != nil {
		respondError(c, "patch", err)
		return
	}
	log.Printf("[client][patch][ok] id=%d enabled=%t", updated, enabled)
	c.JSON(http.StatusOK, idResponse{ID: updated})
}

// Delete godoc
//
//	@Summary	Delete a client
//	@Tags		Clients
//	@Param		id	path	int	true	"Client id"
//	@Success	204
//	@Failure	400	{object}	errorResponse
//	@Failure	404	{object}	errorResponse
//	@Router		/api/v1/clients/{id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "delete", err)
		return
	}
	log.Printf("[client][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}

// parseEnabled requires a non-empty boolean "enabled" query value.
func parseEnabled(c *gin.Context) (bool, error) {
	raw, ok := c.GetQuery("enabled")
	if !ok || raw == "" {
		return false, errors.New("enabled query parameter is required")
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("enabled must be a boolean, got %q", raw)
	}
	return v, nil
}

// clientsPath is the collection path the request was routed under.
func clientsPath(c *gin.Context) string {
	p := c.FullPath()
	if p == "" {
		return c.Request.URL.Path
	}
	return p
}
