package pgsql

import (
	"github.com/SscSPs/recharge_backend/internal/models"
	"github.com/jackc/pgx/v5"
)

const (
	accountColumns       = `account_id, balance, created_at, last_updated_at`
	targetColumns        = `target_id, external_id, balance, last_charged_at, created_at, last_updated_at`
	creditRequestColumns = `request_id, reference_id, account_id, amount, status, created_at, processed_at`
	chargeSaleColumns    = `transaction_id, account_id, target_id, amount, target_balance_before, target_balance_after,
		status, status_message, created_at, last_updated_at`
	ledgerEntryColumns = `sequence, idempotency_key, account_id, amount, kind, balance_before, balance_after,
		description, status, ref_kind, ref_id, created_at, completed_at`
)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(&m.AccountID, &m.Balance, &m.CreatedAt, &m.LastUpdatedAt)
	return m, err
}

func scanTarget(row pgx.Row) (models.Target, error) {
	var m models.Target
	err := row.Scan(&m.TargetID, &m.ExternalID, &m.Balance, &m.LastChargedAt, &m.CreatedAt, &m.LastUpdatedAt)
	return m, err
}

func scanCreditRequest(row pgx.Row) (models.CreditRequest, error) {
	var m models.CreditRequest
	err := row.Scan(&m.RequestID, &m.ReferenceID, &m.AccountID, &m.Amount, &m.Status, &m.CreatedAt, &m.ProcessedAt)
	return m, err
}

func scanChargeSale(row pgx.Row) (models.ChargeSale, error) {
	var m models.ChargeSale
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.TargetID,
		&m.Amount,
		&m.TargetBalanceBefore,
		&m.TargetBalanceAfter,
		&m.Status,
		&m.StatusMessage,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func scanLedgerEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.Sequence,
		&m.IdempotencyKey,
		&m.AccountID,
		&m.Amount,
		&m.Kind,
		&m.BalanceBefore,
		&m.BalanceAfter,
		&m.Description,
		&m.Status,
		&m.RefKind,
		&m.RefID,
		&m.CreatedAt,
		&m.CompletedAt,
	)
	return m, err
}

// collect scans every row with scan and closes rows.
func collect[T any](rows pgx.Rows, scan func(pgx.Row) (T, error)) ([]T, error) {
	defer rows.Close()
	out := make([]T, 0)
	for rows.Next() {
		m, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
