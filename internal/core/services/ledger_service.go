package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/praxisledger/trustd/internal/apperrors"
	"github.com/praxisledger/trustd/internal/core/domain"
	"github.com/praxisledger/trustd/internal/core/ports/events"
	portsrepo "github.com/praxisledger/trustd/internal/core/ports/repositories"
	portssvc "github.com/praxisledger/trustd/internal/core/ports/services"
	"github.com/praxisledger/trustd/internal/dto"
	"github.com/praxisledger/trustd/internal/middleware"
)

var (
	ErrAmountNotPositive  = errors.New("entry amount must be a positive number of cents")
	ErrInvalidEntryType   = errors.New("entry type must be one of DEPOSIT, DISBURSEMENT, TRANSFER_IN, TRANSFER_OUT")
	ErrEntryDateInFuture  = errors.New("entry date cannot be in the future")
	ErrDescriptionMissing = errors.New("entry description is required")
)

// ledgerService provides append and read operations over trust account
// ledgers. Appends to the same account are serialized by a row lock taken
// in the repository; the service retries a bounded number of times when two
// appends race, then surfaces the conflict to the caller.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	accountSvc portssvc.TrustAccountSvcFacade
	clientSvc  portssvc.ClientSvcFacade
	firmSvc    portssvc.FirmAuthorizerSvc
	publisher  events.Publisher
	maxRetries int
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	accountSvc portssvc.TrustAccountSvcFacade,
	clientSvc portssvc.ClientSvcFacade,
	firmSvc portssvc.FirmAuthorizerSvc,
	publisher events.Publisher,
	maxRetries int,
) portssvc.LedgerSvcFacade {
	if maxRetries < 1 {
		maxRetries = 3
	}
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		accountSvc: accountSvc,
		clientSvc:  clientSvc,
		firmSvc:    firmSvc,
		publisher:  publisher,
		maxRetries: maxRetries,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// validateAppendRequest applies the stateless entry checks. Balance and
// account-state checks happen under the row lock in the repository.
func (s *ledgerService) validateAppendRequest(req dto.CreateLedgerEntryRequest) error {
	if req.AmountCents <= 0 {
		return fmt.Errorf("%w: got %d", ErrAmountNotPositive, req.AmountCents)
	}
	if !domain.EntryType(req.EntryType).Valid() {
		return fmt.Errorf("%w: got %q", ErrInvalidEntryType, req.EntryType)
	}
	if req.Description == "" {
		return ErrDescriptionMissing
	}
	if req.EntryDate.After(time.Now().UTC().Add(24 * time.Hour)) {
		return ErrEntryDateInFuture
	}
	return nil
}

// AppendEntry validates and appends one ledger entry.
func (s *ledgerService) AppendEntry(ctx context.Context, firmID string, accountID string, req dto.CreateLedgerEntryRequest, creatorUserID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.firmSvc.AuthorizeUserAction(ctx, creatorUserID, firmID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for AppendEntry", slog.String("user_id", creatorUserID), slog.String("firm_id", firmID), slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.validateAppendRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	// The account must belong to the firm. Its active flag is re-checked
	// under the lock, but rejecting obvious misuse early keeps lock churn down.
	account, err := s.accountSvc.GetAccountByID(ctx, firmID, accountID, creatorUserID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrAccountInactive, accountID)
	}

	// The client must exist, belong to the firm, and be active.
	client, err := s.clientSvc.GetClientByID(ctx, firmID, req.ClientID, creatorUserID)
	if err != nil {
		return nil, err
	}
	if !client.IsActive {
		return nil, fmt.Errorf("%w: client %s is inactive", apperrors.ErrValidation, req.ClientID)
	}
	if req.MatterID != nil {
		matter, err := s.clientSvc.GetMatterByID(ctx, firmID, *req.MatterID, creatorUserID)
		if err != nil {
			return nil, err
		}
		if matter.ClientID != req.ClientID {
			return nil, fmt.Errorf("%w: matter %s does not belong to client %s", apperrors.ErrValidation, *req.MatterID, req.ClientID)
		}
	}

	now := time.Now().UTC()
	entry := domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		AccountID:       accountID,
		ClientID:        req.ClientID,
		MatterID:        req.MatterID,
		EntryType:       domain.EntryType(req.EntryType),
		AmountCents:     req.AmountCents,
		Description:     req.Description,
		ReferenceNumber: req.ReferenceNumber,
		EntryDate:       req.EntryDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
		// RunningBalanceCents is derived under the account lock in the repository.
	}

	var saved *domain.LedgerEntry
	for attempt := 1; ; attempt++ {
		saved, err = s.ledgerRepo.AppendEntry(ctx, entry)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrConcurrentModification) || attempt >= s.maxRetries {
			if errors.Is(err, apperrors.ErrConcurrentModification) {
				logger.Warn("Ledger append retries exhausted", slog.String("account_id", accountID), slog.Int("attempts", attempt))
			}
			return nil, err
		}
		logger.Info("Retrying ledger append after serialization conflict", slog.String("account_id", accountID), slog.Int("attempt", attempt))
	}

	logger.Info("Ledger entry appended",
		slog.String("entry_id", saved.EntryID),
		slog.String("account_id", accountID),
		slog.String("entry_type", string(saved.EntryType)),
		slog.Int64("running_balance_cents", saved.RunningBalanceCents),
	)

	if s.publisher != nil {
		event := events.AuditEvent{
			EventID:    uuid.NewString(),
			EventType:  events.EventLedgerEntryAppended,
			FirmID:     firmID,
			EntityID:   saved.EntryID,
			ActorID:    creatorUserID,
			OccurredAt: now,
			Detail:     fmt.Sprintf("%s of %d cents on account %s", saved.EntryType, saved.AmountCents, accountID),
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			// The write already committed; event loss is logged, not surfaced.
			logger.Error("Failed to publish ledger audit event", slog.String("error", err.Error()), slog.String("entry_id", saved.EntryID))
		}
	}

	return saved, nil
}

// GetEntryByID retrieves a specific ledger entry.
func (s *ledgerService) GetEntryByID(ctx context.Context, firmID string, accountID string, entryID string, userID string) (*domain.LedgerEntry, error) {
	// Account lookup also authorizes the user and confirms firm scope.
	if _, err := s.accountSvc.GetAccountByID(ctx, firmID, accountID, userID); err != nil {
		return nil, err
	}

	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find ledger entry %s: %w", entryID, err)
	}
	if entry.AccountID != accountID {
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

// ListEntries retrieves a paginated list of ledger entries, newest first.
func (s *ledgerService) ListEntries(ctx context.Context, firmID string, accountID string, userID string, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, firmID, accountID, userID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}

	entries, nextToken, err := s.ledgerRepo.ListEntriesByAccount(ctx, accountID, limit, token)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	next := ""
	if nextToken != nil {
		next = *nextToken
	}
	resp := dto.ToListLedgerEntriesResponse(entries, next)
	return &resp, nil
}

// GetBalanceAsOf derives the account balance from the ledger as of the end
// of the given date.
func (s *ledgerService) GetBalanceAsOf(ctx context.Context, firmID string, accountID string, userID string, asOf time.Time) (int64, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, firmID, accountID, userID); err != nil {
		return 0, err
	}

	balance, err := s.ledgerRepo.LedgerBalanceAsOf(ctx, accountID, asOf)
	if err != nil {
		return 0, fmt.Errorf("failed to derive ledger balance: %w", err)
	}
	return balance, nil
}
