// ledger/account.go
package ledger

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// AddAccount creates an account for the user and returns its id. Account
// names are unique within the user's scope; a duplicate name surfaces as
// ErrIntegrity, never as raw engine text.
func (s *Store) AddAccount(userID int64, name, broker, accountType, description string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: account name is required", ErrInvalidInput)
	}

	res, err := s.db.Exec(`
		INSERT INTO accounts (user_id, name, broker, account_type, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		userID, name, strings.TrimSpace(broker), strings.TrimSpace(accountType),
		strings.TrimSpace(description), time.Now(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: account name already in use", ErrIntegrity)
		}
		return 0, fmt.Errorf("add account: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add account: %w", err)
	}
	return id, nil
}

// DeleteAccount removes an account together with all of its trades and
// cashflows in one transaction. Returns false when the account does not
// exist for this user. The store permits deleting a user's last account;
// keeping at least one is the caller's policy.
func (s *Store) DeleteAccount(userID, accountID int64) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("delete account: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM trades WHERE user_id = ? AND account_id = ?`, userID, accountID); err != nil {
		return false, fmt.Errorf("delete account trades: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM account_cashflows WHERE user_id = ? AND account_id = ?`, userID, accountID); err != nil {
		return false, fmt.Errorf("delete account cashflows: %w", err)
	}
	res, err := tx.Exec(`DELETE FROM accounts WHERE user_id = ? AND id = ?`, userID, accountID)
	if err != nil {
		return false, fmt.Errorf("delete account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("delete account: %w", err)
	}
	return n > 0, nil
}

// ListAccounts returns the user's accounts ordered by name.
func (s *Store) ListAccounts(userID int64) ([]Account, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, name, broker, account_type, description, created_at
		FROM accounts
		WHERE user_id = ?
		ORDER BY name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []Account
	for rows.Next() {
		var (
			a                  Account
			broker, typ, descr sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &broker, &typ, &descr, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("list accounts: %w", err)
		}
		a.Broker, a.AccountType, a.Description = broker.String, typ.String, descr.String
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return out, nil
}
