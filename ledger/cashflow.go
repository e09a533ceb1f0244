// ledger/cashflow.go
package ledger

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// AddCashflow records a deposit or withdrawal against one of the user's
// accounts. The caller supplies the magnitude; the store signs it
// (deposits positive, withdrawals negative) before persisting.
func (s *Store) AddCashflow(userID, accountID int64, flowDate time.Time, flowType FlowType, amount float64, note string) (int64, error) {
	if flowType != Deposit && flowType != Withdrawal {
		return 0, fmt.Errorf("%w: flow type must be Deposit or Withdrawal", ErrInvalidInput)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	owned, err := accountOwnedBy(s.db, userID, accountID)
	if err != nil {
		return 0, fmt.Errorf("add cashflow: %w", err)
	}
	if !owned {
		return 0, fmt.Errorf("%w: unknown account", ErrInvalidInput)
	}

	signed := amount
	if flowType == Withdrawal {
		signed = -amount
	}

	res, err := s.db.Exec(`
		INSERT INTO account_cashflows (user_id, account_id, flow_date, flow_type, amount, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, accountID, flowDate, string(flowType), signed, strings.TrimSpace(note), time.Now(),
	)
	if err != nil {
		return 0, fmt.Errorf("add cashflow: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add cashflow: %w", err)
	}
	return id, nil
}

// ListCashflows returns the user's cashflows, newest first, with the owning
// account name joined in.
func (s *Store) ListCashflows(userID int64) ([]Cashflow, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.user_id, c.account_id, a.name, c.flow_date, c.flow_type, c.amount, c.note, c.created_at
		FROM account_cashflows c
		JOIN accounts a ON a.id = c.account_id
		WHERE c.user_id = ?
		ORDER BY c.flow_date DESC, c.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list cashflows: %w", err)
	}
	defer rows.Close()

	var out []Cashflow
	for rows.Next() {
		var (
			c    Cashflow
			note sql.NullString
		)
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.AccountID, &c.AccountName, &c.FlowDate,
			&c.FlowType, &c.Amount, &note, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("list cashflows: %w", err)
		}
		c.Note = note.String
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cashflows: %w", err)
	}
	return out, nil
}
