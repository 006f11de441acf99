package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/praxisledger/trustd/internal/core/ports/repositories"
)

// NewRepositoryProvider constructs all pgsql-backed repositories sharing one
// connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	trustAccountRepo := newPgxTrustAccountRepository(pool)

	return &portsrepo.RepositoryProvider{
		TrustAccountRepo:   trustAccountRepo,
		LedgerRepo:         newPgxLedgerRepository(pool, trustAccountRepo),
		ReconciliationRepo: newPgxReconciliationRepository(pool),
		GuidelineRepo:      newPgxGuidelineRepository(pool),
		TimeEntryRepo:      newPgxTimeEntryRepository(pool),
		InvoiceRepo:        newPgxInvoiceRepository(pool),
		UserRepo:           newPgxUserRepository(pool),
		FirmRepo:           newPgxFirmRepository(pool),
		ClientRepo:         newPgxClientRepository(pool),
	}
}
