// ledger/auth.go
package ledger

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/pbkdf2"
)

const (
	kdfIterations = 120000
	saltBytes     = 16
	keyBytes      = 32
	tokenBytes    = 32
)

// hashPassword derives a hex-encoded PBKDF2-HMAC-SHA256 key from the
// password and salt. The iteration count is fixed; changing it invalidates
// every stored hash.
func hashPassword(password string, salt []byte) string {
	key := pbkdf2.Key([]byte(password), salt, kdfIterations, keyBytes, sha256.New)
	return hex.EncodeToString(key)
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Register creates a user plus their default "Main" account in one
// transaction. Username and email are trimmed before validation.
func (s *Store) Register(username, email, password string) (int64, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if len(username) < 3 {
		return 0, fmt.Errorf("%w: username must be at least 3 characters", ErrInvalidInput)
	}
	if len(password) < 6 {
		return 0, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}

	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return 0, fmt.Errorf("generate salt: %w", err)
	}
	hash := hashPassword(password, salt)
	now := time.Now()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("register: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO users (username, email, password_hash, password_salt, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		username, email, hash, hex.EncodeToString(salt), now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateUsername
		}
		return 0, fmt.Errorf("register: %w", err)
	}
	userID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("register: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO accounts (user_id, name, broker, account_type, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		userID, "Main", "Unknown", "Cash", "Default account", now,
	)
	if err != nil {
		return 0, fmt.Errorf("create default account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("register: %w", err)
	}
	return userID, nil
}

// Authenticate verifies a username/password pair. Unknown usernames and
// wrong passwords both return ErrInvalidCredentials.
func (s *Store) Authenticate(username, password string) (int64, error) {
	var (
		userID  int64
		hash    string
		saltHex string
	)
	err := s.db.QueryRow(`
		SELECT id, password_hash, password_salt FROM users WHERE username = ?`,
		strings.TrimSpace(username),
	).Scan(&userID, &hash, &saltHex)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrInvalidCredentials
	}
	if err != nil {
		return 0, fmt.Errorf("authenticate: %w", err)
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return 0, fmt.Errorf("authenticate: %w", err)
	}
	candidate := hashPassword(password, salt)
	if subtle.ConstantTimeCompare([]byte(candidate), []byte(hash)) != 1 {
		return 0, ErrInvalidCredentials
	}
	return userID, nil
}

// IssueRememberToken generates a high-entropy secret, persists only its
// hash with an absolute expiry, and returns the raw secret. The secret is
// not recoverable afterward.
func (s *Store) IssueRememberToken(userID int64, validityDays int) (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	raw := hex.EncodeToString(buf)

	now := time.Now()
	_, err := s.db.Exec(`
		INSERT INTO remember_tokens (user_id, token_hash, expires_at, created_at)
		VALUES (?, ?, ?, ?)`,
		userID, hashToken(raw), now.AddDate(0, 0, validityDays), now,
	)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return raw, nil
}

// AuthenticateByToken resolves a raw remember token to its user. An expired
// token is deleted on first use and reported as ErrTokenExpired, so a
// second attempt sees ErrTokenInvalid.
func (s *Store) AuthenticateByToken(raw string) (int64, string, error) {
	tokenHash := hashToken(raw)

	var (
		userID    int64
		expiresAt time.Time
		username  string
	)
	err := s.db.QueryRow(`
		SELECT rt.user_id, rt.expires_at, u.username
		FROM remember_tokens rt
		JOIN users u ON u.id = rt.user_id
		WHERE rt.token_hash = ?`,
		tokenHash,
	).Scan(&userID, &expiresAt, &username)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", ErrTokenInvalid
	}
	if err != nil {
		return 0, "", fmt.Errorf("token lookup: %w", err)
	}

	if time.Now().After(expiresAt) {
		if _, err := s.db.Exec(`DELETE FROM remember_tokens WHERE token_hash = ?`, tokenHash); err != nil {
			return 0, "", fmt.Errorf("expire token: %w", err)
		}
		return 0, "", ErrTokenExpired
	}
	return userID, username, nil
}

// RevokeToken deletes the token record for a raw secret. Unknown or empty
// tokens are a silent no-op.
func (s *Store) RevokeToken(raw string) error {
	if raw == "" {
		return nil
	}
	if _, err := s.db.Exec(`DELETE FROM remember_tokens WHERE token_hash = ?`, hashToken(raw)); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure. Used to translate engine errors into the store's taxonomy.
func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
			se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
