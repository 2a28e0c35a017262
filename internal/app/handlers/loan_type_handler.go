package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mutual/loanlifecycle/internal/pkg/consts"
	"mutual/loanlifecycle/internal/pkg/models"
	"mutual/loanlifecycle/internal/service/loantype"
)

type LoanTypeHandler struct {
	service *loantype.LoanTypeService
}

func NewLoanTypeHandler(service *loantype.LoanTypeService) *LoanTypeHandler {
	return &LoanTypeHandler{service: service}
}

func (h *LoanTypeHandler) Create(c *gin.Context) {
	var body models.LoanTypeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, models.NewValidationError(err.Error()))
		return
	}

	loanType, err := h.service.Create(c.Request.Context(), body.Code, body.Name, body.InterestRate, body.MaxAmount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, loanType)
}

func (h *LoanTypeHandler) Deactivate(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError(consts.MsgLoanTypeNotFound))
		return
	}

	loanType, err := h.service.Deactivate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loanType)
}

func (h *LoanTypeHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	loanTypes, err := h.service.List(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loanTypes)
}

func (h *LoanTypeHandler) GetByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError(consts.MsgLoanTypeNotFound))
		return
	}

	loanType, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loanType)
}
