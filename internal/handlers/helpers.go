package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"clientsapi/internal/models"
	"clientsapi/internal/services"
)

type errorResponse struct {
	Error string `json:"error"`
}

type idResponse struct {
	ID int `json:"id"`
}

var registerOnce sync.Once

// RegisterValidators adds the custom binding rules used by request structs.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			log.Printf("[binding] unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		if err := v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
			_, err := models.ParseGender(fl.Field().String())
			return err == nil
		}); err != nil {
			log.Printf("[binding] register gender: %v", err)
		}
	})
}

// parseID reads a positive integer route parameter.
func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

// respondError maps service errors to status codes.
func respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, services.ErrNoContent):
		c.Status(http.StatusNoContent)
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "client not found"})
	case errors.Is(err, services.ErrInvalidID),
		errors.Is(err, services.ErrInvalidFilter),
		errors.Is(err, services.ErrIDMismatch),
		errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		log.Printf("[client][%s][err] %v", op, err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
