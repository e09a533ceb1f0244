// ledger/schema.go
package ledger

// Migrations are applied in order at open time, tracked by PRAGMA
// user_version. Each entry must be safe to run exactly once against the
// schema shape left by its predecessor; the version check makes the whole
// list idempotent across restarts.
type migration struct {
	version int
	name    string
	stmts   []string
}

var migrations = []migration{
	{
		version: 1,
		name:    "base schema",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT NOT NULL UNIQUE,
				email TEXT,
				password_hash TEXT NOT NULL,
				password_salt TEXT NOT NULL,
				created_at DATETIME NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS accounts (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id INTEGER NOT NULL,
				name TEXT NOT NULL,
				broker TEXT,
				account_type TEXT,
				description TEXT,
				created_at DATETIME NOT NULL,
				FOREIGN KEY (user_id) REFERENCES users(id),
				UNIQUE (user_id, name)
			)`,
			`CREATE TABLE IF NOT EXISTS trades (
				id INTEGER PRIMARY KEY,
				user_id INTEGER NOT NULL,
				trade_date DATETIME NOT NULL,
				account_id INTEGER NOT NULL,
				symbol TEXT NOT NULL,
				side TEXT NOT NULL,
				quantity REAL NOT NULL,
				entry_price REAL NOT NULL,
				exit_price REAL NOT NULL,
				fees REAL NOT NULL DEFAULT 0,
				gross_pnl REAL NOT NULL,
				net_pnl REAL NOT NULL,
				tags TEXT,
				notes TEXT,
				image_path TEXT,
				created_at DATETIME NOT NULL,
				FOREIGN KEY (user_id) REFERENCES users(id),
				FOREIGN KEY (account_id) REFERENCES accounts(id)
			)`,
			`CREATE TABLE IF NOT EXISTS account_cashflows (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id INTEGER NOT NULL,
				account_id INTEGER NOT NULL,
				flow_date DATETIME NOT NULL,
				flow_type TEXT NOT NULL,
				amount REAL NOT NULL,
				note TEXT,
				created_at DATETIME NOT NULL,
				FOREIGN KEY (user_id) REFERENCES users(id),
				FOREIGN KEY (account_id) REFERENCES accounts(id)
			)`,
			`CREATE TABLE IF NOT EXISTS remember_tokens (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id INTEGER NOT NULL,
				token_hash TEXT NOT NULL UNIQUE,
				expires_at DATETIME NOT NULL,
				created_at DATETIME NOT NULL,
				FOREIGN KEY (user_id) REFERENCES users(id)
			)`,
		},
	},
	{
		version: 2,
		name:    "indexes for user-scoped reads",
		stmts: []string{
			`CREATE INDEX IF NOT EXISTS idx_trades_user ON trades(user_id, trade_date)`,
			`CREATE INDEX IF NOT EXISTS idx_cashflows_user ON account_cashflows(user_id, flow_date)`,
		},
	},
}
