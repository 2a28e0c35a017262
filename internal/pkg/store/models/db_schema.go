package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mutual/loanlifecycle/internal/pkg/consts"
)

// InstallmentsSummary is the denormalized collected/total counter shown on
// loan listings.
type InstallmentsSummary struct {
	Current int `bson:"current" json:"current"`
	Total   int `bson:"total" json:"total"`
}

type Loan struct {
	ID                  primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	AssociateID         string              `bson:"associateId" json:"associateId"`
	LoanTypeID          primitive.ObjectID  `bson:"loanTypeId" json:"loanTypeId"`
	Amount              float64             `bson:"amount" json:"amount"`
	InterestRate        float64             `bson:"interestRate" json:"interestRate"`
	Term                int                 `bson:"term" json:"term"`
	LoanDate            time.Time           `bson:"loanDate" json:"loanDate"`
	DueDate             time.Time           `bson:"dueDate" json:"dueDate"`
	Status              consts.LoanStatus   `bson:"status" json:"status"`
	InstallmentsSummary InstallmentsSummary `bson:"installmentsSummary" json:"installmentsSummary"`
	CreatedAt           time.Time           `bson:"createdAt" json:"createdAt"`
}

type Installment struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LoanID             primitive.ObjectID `bson:"loanId" json:"loanId"`
	InstallmentNumber  int                `bson:"installmentNumber" json:"installmentNumber"`
	DueDate            time.Time          `bson:"dueDate" json:"dueDate"`
	Amount             float64            `bson:"amount" json:"amount"`
	Collected          bool               `bson:"collected" json:"collected"`
	CollectionMethodID primitive.ObjectID `bson:"collectionMethodId,omitempty" json:"collectionMethodId,omitempty"`
	CollectedAt        time.Time          `bson:"collectedAt,omitempty" json:"collectedAt,omitempty"`
	CollectionReceipt  string             `bson:"collectionReceipt,omitempty" json:"collectionReceipt,omitempty"`
}

type LoanType struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code         string             `bson:"code" json:"code"`
	Name         string             `bson:"name" json:"name"`
	InterestRate float64            `bson:"interestRate" json:"interestRate"`
	MaxAmount    float64            `bson:"maxAmount" json:"maxAmount"`
	Active       bool               `bson:"active" json:"active"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

type CollectionMethod struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code      string             `bson:"code" json:"code"`
	CodeLower string             `bson:"codeLower" json:"-"`
	Name      string             `bson:"name" json:"name"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// ApprovalDecision is the append-only audit record of a lifecycle decision.
// A loan's status field is a projection of its latest decision.
type ApprovalDecision struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LoanID    primitive.ObjectID `bson:"loanId" json:"loanId"`
	NewStatus consts.LoanStatus  `bson:"newStatus" json:"newStatus"`
	Motive    string             `bson:"motive" json:"motive"`
	ActorRole string             `bson:"actorRole" json:"actorRole"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// OverdueInstallment is the reporting row joining an overdue installment
// with the loan fields the filters act on.
type OverdueInstallment struct {
	Installment
	AssociateID string             `json:"associateId"`
	LoanTypeID  primitive.ObjectID `json:"loanTypeId"`
	LoanAmount  float64            `json:"loanAmount"`
	DaysOverdue int                `json:"daysOverdue"`
}
