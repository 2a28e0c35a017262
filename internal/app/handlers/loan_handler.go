package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mutual/loanlifecycle/internal/app/middleware"
	"mutual/loanlifecycle/internal/pkg/consts"
	"mutual/loanlifecycle/internal/pkg/models"
	"mutual/loanlifecycle/internal/service/lifecycle"
)

type LoanHandler struct {
	service  *lifecycle.LifecycleService
	workflow *lifecycle.ApprovalWorkflow
}

func NewLoanHandler(service *lifecycle.LifecycleService, workflow *lifecycle.ApprovalWorkflow) *LoanHandler {
	return &LoanHandler{service: service, workflow: workflow}
}

func (h *LoanHandler) ListLoans(c *gin.Context) {
	status := consts.LoanStatus(c.Query("status"))

	loans, err := h.service.ListLoans(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loans)
}

func (h *LoanHandler) GetLoan(c *gin.Context) {
	loanID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError(consts.MsgLoanNotFound))
		return
	}

	loan, err := h.service.GetLoan(c.Request.Context(), loanID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

func (h *LoanHandler) RequestLoan(c *gin.Context) {
	var body models.LoanRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, models.NewValidationError(err.Error()))
		return
	}

	loanTypeID, err := primitive.ObjectIDFromHex(body.LoanTypeID)
	if err != nil {
		respondError(c, models.NewValidationError(consts.MsgLoanTypeNotFound))
		return
	}

	loanDate, err := time.Parse("2006-01-02", body.LoanDate)
	if err != nil {
		respondError(c, models.NewValidationError(err.Error()))
		return
	}

	loan, err := h.service.RequestLoan(
		c.Request.Context(),
		body.AssociateID,
		loanTypeID,
		body.Amount,
		body.Term,
		loanDate,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, loan)
}

// UpdateStatus applies an approve, reject or activate transition.
func (h *LoanHandler) UpdateStatus(c *gin.Context) {
	loanID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError(consts.MsgLoanNotFound))
		return
	}

	var body models.LoanStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, models.NewValidationError(err.Error()))
		return
	}

	loan, err := h.workflow.Decide(
		c.Request.Context(),
		loanID,
		consts.LoanStatus(body.Status),
		body.Reason,
		middleware.ActorRole(c),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

func (h *LoanHandler) ListDecisions(c *gin.Context) {
	loanID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError(consts.MsgLoanNotFound))
		return
	}

	decisions, err := h.service.ListDecisions(c.Request.Context(), loanID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, decisions)
}
