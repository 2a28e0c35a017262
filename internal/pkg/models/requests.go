package models

// API request payloads bound by the gin handlers.

type LoanRequest struct {
	AssociateID string  `json:"associateId" binding:"required"`
	LoanTypeID  string  `json:"loanTypeId" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Term        int     `json:"term" binding:"required"`
	LoanDate    string  `json:"loanDate" binding:"required"` // YYYY-MM-DD
}

type LoanStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

type LoanTypeRequest struct {
	Code         string  `json:"code" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	InterestRate float64 `json:"interestRate"`
	MaxAmount    float64 `json:"maxAmount"`
}

type CollectionMethodEntry struct {
	Code   string `json:"code" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Edited bool   `json:"edited"`
}

type CollectionMethodBatchRequest struct {
	Entries []CollectionMethodEntry `json:"entries" binding:"required,min=1"`
}

type CollectionMethodUpdateRequest struct {
	Name *string `json:"name"`
	Code *string `json:"code"`
}

type RecordCollectionRequest struct {
	CollectionMethodID string `json:"collectionMethodId" binding:"required"`
}

type OverdueReportResponse struct {
	ObjectName string `json:"objectName"`
}
