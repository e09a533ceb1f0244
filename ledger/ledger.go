// ledger/ledger.go
package ledger

import (
	"time"
)

// Side is the direction of a trade.
type Side string

const (
	Long  Side = "Long"
	Short Side = "Short"
)

// FlowType classifies an account cashflow.
type FlowType string

const (
	Deposit    FlowType = "Deposit"
	Withdrawal FlowType = "Withdrawal"
)

// User is an owner of accounts, trades and cashflows. The password hash and
// salt never leave the store.
type User struct {
	ID        int64
	Username  string
	Email     string
	CreatedAt time.Time
}

// Account groups trades and cashflows under a user. Names are unique per
// user, not globally.
type Account struct {
	ID          int64
	UserID      int64
	Name        string
	Broker      string
	AccountType string
	Description string
	CreatedAt   time.Time
}

// Trade is a completed round-trip trade as recorded by the user.
// GrossPnL and NetPnL are derived at write time and stored.
type Trade struct {
	ID          int64
	UserID      int64
	AccountID   int64
	AccountName string
	TradeDate   time.Time
	Symbol      string
	Side        Side
	Quantity    float64
	EntryPrice  float64
	ExitPrice   float64
	Fees        float64
	GrossPnL    float64
	NetPnL      float64
	Tags        string
	Notes       string
	ImagePath   string
	CreatedAt   time.Time
}

// Cashflow is a deposit into or withdrawal from an account. Amount is
// signed: deposits positive, withdrawals negative.
type Cashflow struct {
	ID          int64
	UserID      int64
	AccountID   int64
	AccountName string
	FlowDate    time.Time
	FlowType    FlowType
	Amount      float64
	Note        string
	CreatedAt   time.Time
}

// TradeInput carries the caller-supplied fields for saving or updating a
// trade. When ManualNetPnL is set the trade is recorded in manual P&L mode:
// entry and exit prices are persisted as zero and gross is back-derived.
type TradeInput struct {
	TradeDate    time.Time
	AccountID    int64
	Symbol       string
	Side         Side
	Quantity     float64
	EntryPrice   float64
	ExitPrice    float64
	Fees         float64
	Tags         string
	Notes        string
	ImagePath    string
	ManualNetPnL *float64
}
