package dto

import (
	"time"

	"github.com/praxisledger/trustd/internal/core/domain"
)

// CreateReconciliationRequest defines the data needed to reconcile a trust
// account against a bank statement.
type CreateReconciliationRequest struct {
	ReconciliationDate    time.Time `json:"reconciliationDate" binding:"required"`
	StatementBalanceCents int64     `json:"statementBalanceCents"`
	Notes                 string    `json:"notes"`
}

// ReconciliationResponse defines the data returned for a reconciliation snapshot.
type ReconciliationResponse struct {
	ReconciliationID      string    `json:"reconciliationID"`
	AccountID             string    `json:"accountID"`
	ReconciliationDate    time.Time `json:"reconciliationDate"`
	StatementBalanceCents int64     `json:"statementBalanceCents"`
	LedgerBalanceCents    int64     `json:"ledgerBalanceCents"`
	IsBalanced            bool      `json:"isBalanced"`
	DiscrepancyCents      int64     `json:"discrepancyCents"` // statement - ledger
	Notes                 string    `json:"notes"`
	PerformedBy           string    `json:"performedBy"`
	CreatedAt             time.Time `json:"createdAt"`
}

// ToReconciliationResponse converts a domain.Reconciliation to DTO.
func ToReconciliationResponse(r *domain.Reconciliation) ReconciliationResponse {
	return ReconciliationResponse{
		ReconciliationID:      r.ReconciliationID,
		AccountID:             r.AccountID,
		ReconciliationDate:    r.ReconciliationDate,
		StatementBalanceCents: r.StatementBalanceCents,
		LedgerBalanceCents:    r.LedgerBalanceCents,
		IsBalanced:            r.IsBalanced,
		DiscrepancyCents:      r.StatementBalanceCents - r.LedgerBalanceCents,
		Notes:                 r.Notes,
		PerformedBy:           r.PerformedBy,
		CreatedAt:             r.CreatedAt,
	}
}

// ListReconciliationsResponse wraps the reconciliation history of an account.
type ListReconciliationsResponse struct {
	Reconciliations []ReconciliationResponse `json:"reconciliations"`
}

// ToListReconciliationsResponse converts a slice of domain.Reconciliation to DTO.
func ToListReconciliationsResponse(rs []domain.Reconciliation) ListReconciliationsResponse {
	res := make([]ReconciliationResponse, len(rs))
	for i, r := range rs {
		res[i] = ToReconciliationResponse(&r)
	}
	return ListReconciliationsResponse{Reconciliations: res}
}
