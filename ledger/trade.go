// ledger/trade.go
package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// nextTradeID returns the smallest positive id not present in the trades
// table: the first gap in ascending order, or max+1 when there is none.
// Deleted ids are reused so trades keep small, human-referenced numbers.
// Must run inside the same transaction as the insert that consumes the id.
func nextTradeID(tx *sql.Tx) (int64, error) {
	rows, err := tx.Query(`SELECT id FROM trades ORDER BY id`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	next := int64(1)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, err
		}
		if id == next {
			next++
		} else if id > next {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	return next, nil
}

// rowQuerier is satisfied by both *sql.DB and *sql.Tx.
type rowQuerier interface {
	QueryRow(query string, args ...any) *sql.Row
}

// accountOwnedBy verifies that accountID belongs to userID. Every trade and
// cashflow write goes through this check so a mismatched (user, account)
// pair can never cross ownership boundaries.
func accountOwnedBy(q rowQuerier, userID, accountID int64) (bool, error) {
	var one int
	err := q.QueryRow(`SELECT 1 FROM accounts WHERE id = ? AND user_id = ?`, accountID, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (in TradeInput) validate() error {
	if in.Side != Long && in.Side != Short {
		return fmt.Errorf("%w: side must be Long or Short", ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	if in.Fees < 0 {
		return fmt.Errorf("%w: fees cannot be negative", ErrInvalidInput)
	}
	return nil
}

// SaveTrade records a new trade for the user and returns its id. The id
// scan and the insert run in one transaction so two concurrent saves cannot
// claim the same gap. Not idempotent: every call creates a new trade.
func (s *Store) SaveTrade(userID int64, in TradeInput) (int64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}

	var gross, net float64
	entry, exit := in.EntryPrice, in.ExitPrice
	if in.ManualNetPnL != nil {
		gross, net = ManualPnL(*in.ManualNetPnL, in.Fees)
		entry, exit = 0, 0
	} else {
		gross, net = ComputePnL(in.Side, in.Quantity, entry, exit, in.Fees)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("save trade: %w", err)
	}
	defer tx.Rollback()

	owned, err := accountOwnedBy(tx, userID, in.AccountID)
	if err != nil {
		return 0, fmt.Errorf("save trade: %w", err)
	}
	if !owned {
		return 0, fmt.Errorf("%w: unknown account", ErrInvalidInput)
	}

	tradeID, err := nextTradeID(tx)
	if err != nil {
		return 0, fmt.Errorf("allocate trade id: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO trades (
			id, user_id, trade_date, account_id, symbol, side, quantity, entry_price, exit_price,
			fees, gross_pnl, net_pnl, tags, notes, image_path, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tradeID, userID, in.TradeDate, in.AccountID,
		strings.ToUpper(strings.TrimSpace(in.Symbol)), string(in.Side),
		in.Quantity, entry, exit, in.Fees, gross, net,
		strings.TrimSpace(in.Tags), strings.TrimSpace(in.Notes),
		strings.TrimSpace(in.ImagePath), time.Now(),
	)
	if err != nil {
		return 0, fmt.Errorf("save trade: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("save trade: %w", err)
	}
	return tradeID, nil
}

// UpdateTrade rewrites a trade's fields and re-derives P&L from the new
// inputs. Returns false when the trade does not exist for this user; the
// caller cannot tell that apart from a trade owned by someone else.
//
// newImagePath replaces the stored artifact (the old file is removed best
// effort); clearImage drops it. Both empty leaves the artifact untouched.
func (s *Store) UpdateTrade(userID, tradeID int64, in TradeInput, newImagePath string, clearImage bool) (bool, error) {
	if err := in.validate(); err != nil {
		return false, err
	}

	var oldImage sql.NullString
	err := s.db.QueryRow(`
		SELECT image_path FROM trades WHERE id = ? AND user_id = ?`,
		tradeID, userID,
	).Scan(&oldImage)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("update trade: %w", err)
	}

	owned, err := accountOwnedBy(s.db, userID, in.AccountID)
	if err != nil {
		return false, fmt.Errorf("update trade: %w", err)
	}
	if !owned {
		return false, fmt.Errorf("%w: unknown account", ErrInvalidInput)
	}

	gross, net := ComputePnL(in.Side, in.Quantity, in.EntryPrice, in.ExitPrice, in.Fees)

	finalImage := oldImage.String
	newImagePath = strings.TrimSpace(newImagePath)
	switch {
	case newImagePath != "":
		finalImage = newImagePath
		if oldImage.String != "" && oldImage.String != finalImage {
			removeArtifact(oldImage.String)
		}
	case clearImage:
		finalImage = ""
		if oldImage.String != "" {
			removeArtifact(oldImage.String)
		}
	}

	res, err := s.db.Exec(`
		UPDATE trades
		SET trade_date = ?, account_id = ?, symbol = ?, side = ?, quantity = ?,
			entry_price = ?, exit_price = ?, fees = ?, gross_pnl = ?, net_pnl = ?,
			tags = ?, notes = ?, image_path = ?
		WHERE id = ? AND user_id = ?`,
		in.TradeDate, in.AccountID,
		strings.ToUpper(strings.TrimSpace(in.Symbol)), string(in.Side),
		in.Quantity, in.EntryPrice, in.ExitPrice, in.Fees, gross, net,
		strings.TrimSpace(in.Tags), strings.TrimSpace(in.Notes), finalImage,
		tradeID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("update trade: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update trade: %w", err)
	}
	return n > 0, nil
}

// DeleteTrade removes a trade and, afterward, its image artifact. The row
// delete is authoritative: a missing or undeletable artifact file never
// fails the call.
func (s *Store) DeleteTrade(userID, tradeID int64) (bool, error) {
	var image sql.NullString
	err := s.db.QueryRow(`
		SELECT image_path FROM trades WHERE id = ? AND user_id = ?`,
		tradeID, userID,
	).Scan(&image)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete trade: %w", err)
	}

	res, err := s.db.Exec(`DELETE FROM trades WHERE id = ? AND user_id = ?`, tradeID, userID)
	if err != nil {
		return false, fmt.Errorf("delete trade: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete trade: %w", err)
	}

	if n > 0 && image.String != "" {
		removeArtifact(image.String)
	}
	return n > 0, nil
}

// removeArtifact deletes an image file, ignoring all failures. An orphaned
// file is an accepted trade-off; the ledger row is the record of truth.
func removeArtifact(path string) {
	_ = os.Remove(path)
}

const tradeColumns = `
	t.id, t.user_id, t.account_id, a.name, t.trade_date, t.symbol, t.side,
	t.quantity, t.entry_price, t.exit_price, t.fees, t.gross_pnl, t.net_pnl,
	t.tags, t.notes, t.image_path, t.created_at`

func scanTrade(row interface{ Scan(...any) error }) (Trade, error) {
	var (
		t                 Trade
		tags, notes, path sql.NullString
	)
	err := row.Scan(
		&t.ID, &t.UserID, &t.AccountID, &t.AccountName, &t.TradeDate,
		&t.Symbol, &t.Side, &t.Quantity, &t.EntryPrice, &t.ExitPrice,
		&t.Fees, &t.GrossPnL, &t.NetPnL, &tags, &notes, &path, &t.CreatedAt,
	)
	if err != nil {
		return Trade{}, err
	}
	t.Tags, t.Notes, t.ImagePath = tags.String, notes.String, path.String
	return t, nil
}

// GetTrade returns a single trade owned by the user. The bool is false when
// no such trade exists for this user.
func (s *Store) GetTrade(userID, tradeID int64) (Trade, bool, error) {
	row := s.db.QueryRow(`
		SELECT`+tradeColumns+`
		FROM trades t
		JOIN accounts a ON a.id = t.account_id
		WHERE t.id = ? AND t.user_id = ?`,
		tradeID, userID,
	)
	t, err := scanTrade(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Trade{}, false, nil
	}
	if err != nil {
		return Trade{}, false, fmt.Errorf("get trade: %w", err)
	}
	return t, true, nil
}

// ListTrades returns all of the user's trades, newest first (date, then id
// descending), with the owning account name joined in.
func (s *Store) ListTrades(userID int64) ([]Trade, error) {
	rows, err := s.db.Query(`
		SELECT`+tradeColumns+`
		FROM trades t
		JOIN accounts a ON a.id = t.account_id
		WHERE t.user_id = ?
		ORDER BY t.trade_date DESC, t.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	defer rows.Close()

	var out []Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("list trades: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	return out, nil
}
