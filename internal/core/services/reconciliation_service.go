package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/praxisledger/trustd/internal/core/domain"
	"github.com/praxisledger/trustd/internal/core/ports/events"
	portsrepo "github.com/praxisledger/trustd/internal/core/ports/repositories"
	portssvc "github.com/praxisledger/trustd/internal/core/ports/services"
	"github.com/praxisledger/trustd/internal/dto"
	"github.com/praxisledger/trustd/internal/middleware"
)

// reconciliationService compares ledger-derived balances against bank
// statement balances and records immutable snapshots of the comparison.
// Mismatches are reported, never auto-corrected: no compensating ledger
// entries are written here.
type reconciliationService struct {
	reconciliationRepo portsrepo.ReconciliationRepositoryFacade
	ledgerSvc          portssvc.LedgerSvcFacade
	accountSvc         portssvc.TrustAccountReaderSvc
	firmSvc            portssvc.FirmAuthorizerSvc
	publisher          events.Publisher
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(
	reconciliationRepo portsrepo.ReconciliationRepositoryFacade,
	ledgerSvc portssvc.LedgerSvcFacade,
	accountSvc portssvc.TrustAccountReaderSvc,
	firmSvc portssvc.FirmAuthorizerSvc,
	publisher events.Publisher,
) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		reconciliationRepo: reconciliationRepo,
		ledgerSvc:          ledgerSvc,
		accountSvc:         accountSvc,
		firmSvc:            firmSvc,
		publisher:          publisher,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// ReconcileAccount derives the ledger balance as of the statement date and
// snapshots the comparison against the reported statement balance.
// Repeating a reconciliation for the same date creates a new snapshot;
// history is never collapsed or deduplicated.
func (s *reconciliationService) ReconcileAccount(ctx context.Context, firmID string, accountID string, req dto.CreateReconciliationRequest, userID string) (*domain.Reconciliation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.firmSvc.AuthorizeUserAction(ctx, userID, firmID, domain.RoleMember); err != nil {
		return nil, err
	}

	// GetBalanceAsOf also validates account existence and firm scope.
	ledgerBalance, err := s.ledgerSvc.GetBalanceAsOf(ctx, firmID, accountID, userID, req.ReconciliationDate)
	if err != nil {
		return nil, err
	}

	rec := domain.Reconciliation{
		ReconciliationID:      uuid.NewString(),
		AccountID:             accountID,
		ReconciliationDate:    req.ReconciliationDate,
		StatementBalanceCents: req.StatementBalanceCents,
		LedgerBalanceCents:    ledgerBalance,
		IsBalanced:            ledgerBalance == req.StatementBalanceCents,
		Notes:                 req.Notes,
		PerformedBy:           userID,
		CreatedAt:             time.Now().UTC(),
	}

	if err := s.reconciliationRepo.SaveReconciliation(ctx, rec); err != nil {
		logger.Error("Failed to save reconciliation", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to save reconciliation: %w", err)
	}

	if rec.IsBalanced {
		logger.Info("Account reconciled", slog.String("account_id", accountID), slog.String("reconciliation_id", rec.ReconciliationID))
	} else {
		logger.Warn("Reconciliation discrepancy recorded",
			slog.String("account_id", accountID),
			slog.String("reconciliation_id", rec.ReconciliationID),
			slog.Int64("statement_balance_cents", rec.StatementBalanceCents),
			slog.Int64("ledger_balance_cents", rec.LedgerBalanceCents),
		)
	}

	if s.publisher != nil {
		event := events.AuditEvent{
			EventID:    uuid.NewString(),
			EventType:  events.EventReconciliationRecorded,
			FirmID:     firmID,
			EntityID:   rec.ReconciliationID,
			ActorID:    userID,
			OccurredAt: rec.CreatedAt,
			Detail:     fmt.Sprintf("account %s balanced=%t discrepancy=%d cents", accountID, rec.IsBalanced, rec.StatementBalanceCents-rec.LedgerBalanceCents),
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			logger.Error("Failed to publish reconciliation audit event", slog.String("error", err.Error()), slog.String("reconciliation_id", rec.ReconciliationID))
		}
	}

	return &rec, nil
}

// ListReconciliations retrieves the reconciliation history of an account.
func (s *reconciliationService) ListReconciliations(ctx context.Context, firmID string, accountID string, userID string) ([]domain.Reconciliation, error) {
	// Account lookup also authorizes the user and confirms firm scope.
	if _, err := s.accountSvc.GetAccountByID(ctx, firmID, accountID, userID); err != nil {
		return nil, err
	}

	recs, err := s.reconciliationRepo.ListReconciliationsByAccount(ctx, accountID, 100, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list reconciliations: %w", err)
	}
	return recs, nil
}
