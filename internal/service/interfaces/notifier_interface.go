package interfaces

import (
	"context"

	"mutual/loanlifecycle/internal/pkg/consts"
)

// NotifierInterface is the hosting platform's notification collaborator.
// Delivery transport is its concern, not ours.
type NotifierInterface interface {
	NotifyDecision(ctx context.Context, associateID, loanID string, status consts.LoanStatus, motive string) error
}

// AssociateCheckerInterface is the member service collaborator consulted
// before a loan is requested.
type AssociateCheckerInterface interface {
	CheckAssociate(ctx context.Context, associateID string) error
}

// ReportUploaderInterface uploads an exported report object.
type ReportUploaderInterface interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) error
}
