package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mutual/loanlifecycle/internal/pkg/consts"
	"mutual/loanlifecycle/internal/pkg/models"
	"mutual/loanlifecycle/internal/service/collectionmethod"
)

type CollectionMethodHandler struct {
	service *collectionmethod.CollectionMethodService
}

func NewCollectionMethodHandler(service *collectionmethod.CollectionMethodService) *CollectionMethodHandler {
	return &CollectionMethodHandler{service: service}
}

// RegisterBatch persists a batch of methods atomically.
func (h *CollectionMethodHandler) RegisterBatch(c *gin.Context) {
	var body models.CollectionMethodBatchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, models.NewValidationError(err.Error()))
		return
	}

	methods, err := h.service.RegisterBatch(c.Request.Context(), body.Entries)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, methods)
}

func (h *CollectionMethodHandler) List(c *gin.Context) {
	methods, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, methods)
}

func (h *CollectionMethodHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError(consts.MsgMethodNotFound))
		return
	}

	var body models.CollectionMethodUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, models.NewValidationError(err.Error()))
		return
	}

	method, err := h.service.Update(c.Request.Context(), id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, method)
}

func (h *CollectionMethodHandler) Toggle(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError(consts.MsgMethodNotFound))
		return
	}

	var body struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, models.NewValidationError(err.Error()))
		return
	}

	method, err := h.service.Toggle(c.Request.Context(), id, *body.Active)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, method)
}
