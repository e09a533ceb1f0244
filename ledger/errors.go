// ledger/errors.go
package ledger

import "errors"

// Failure taxonomy returned by the store. Callers match with errors.Is;
// the raw storage-engine error text is never propagated for constraint
// violations, only wrapped detail on these sentinels.
var (
	// ErrInvalidInput: caller-supplied values fail basic domain
	// constraints (short username/password, non-positive quantity).
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateUsername: registration with a username that exists.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredentials covers both unknown user and wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrTokenInvalid: remember token not recognized.
	ErrTokenInvalid = errors.New("token not recognized")

	// ErrTokenExpired: remember token past its expiry. The token record
	// is deleted on first expired use.
	ErrTokenExpired = errors.New("token expired")

	// ErrIntegrity: a uniqueness constraint was violated in the store,
	// e.g. a duplicate account name within one user.
	ErrIntegrity = errors.New("constraint violation")
)
