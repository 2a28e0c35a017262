package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mutual/loanlifecycle/internal/pkg/consts"
	"mutual/loanlifecycle/internal/pkg/models"
	"mutual/loanlifecycle/internal/service/overdue"
)

type OverdueHandler struct {
	service *overdue.OverdueService
	reports *overdue.ReportService
}

func NewOverdueHandler(service *overdue.OverdueService, reports *overdue.ReportService) *OverdueHandler {
	return &OverdueHandler{service: service, reports: reports}
}

func (h *OverdueHandler) ListOverdue(c *gin.Context) {
	filters, err := parseOverdueFilters(c)
	if err != nil {
		respondError(c, err)
		return
	}

	rows, err := h.service.ListOverdue(c.Request.Context(), *filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *OverdueHandler) Summary(c *gin.Context) {
	filters, err := parseOverdueFilters(c)
	if err != nil {
		respondError(c, err)
		return
	}

	summary, err := h.service.Summarize(c.Request.Context(), *filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ExportReport materializes the filtered overdue rows as a CSV object in
// the report bucket and returns its name.
func (h *OverdueHandler) ExportReport(c *gin.Context) {
	filters, err := parseOverdueFilters(c)
	if err != nil {
		respondError(c, err)
		return
	}

	objectName, err := h.reports.Export(c.Request.Context(), *filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.OverdueReportResponse{ObjectName: objectName})
}

func parseOverdueFilters(c *gin.Context) (*overdue.Filters, error) {
	filters := overdue.Filters{
		AssociateID: c.Query("associate"),
	}

	if raw := c.Query("loanType"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, models.NewValidationError(consts.MsgLoanTypeNotFound)
		}
		filters.LoanTypeID = &id
	}

	var err error
	if filters.AmountMin, err = parseFloatQuery(c.Query("amountMin")); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if filters.AmountMax, err = parseFloatQuery(c.Query("amountMax")); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if filters.DaysMin, err = parseIntQuery(c.Query("daysMin")); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if filters.DaysMax, err = parseIntQuery(c.Query("daysMax")); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	return &filters, nil
}

func parseFloatQuery(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseIntQuery(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
