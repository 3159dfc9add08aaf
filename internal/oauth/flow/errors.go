package flow

import "errors"

// Error kinds surfaced by the flow engine. Callers branch with errors.Is:
// re-prompt login on ErrInvalidState, refresh UI state on ErrToken, and so
// on. Transport failures never escape raw; they are rewrapped as the kind
// matching the operation that made the call.
var (
	// ErrConfiguration indicates missing or invalid required setup, such
	// as an absent client id or a missing client secret with PKCE
	// disabled.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrInvalidState indicates a missing or mismatched CSRF state
	// parameter, a possible CSRF attack.
	ErrInvalidState = errors.New("invalid state")

	// ErrAuthorization indicates a failed code exchange, including a
	// missing PKCE verifier and an empty provider response.
	ErrAuthorization = errors.New("authorization failed")

	// ErrToken indicates a failed refresh or revocation.
	ErrToken = errors.New("token operation failed")

	// ErrUserInfo indicates a failed identity fetch.
	ErrUserInfo = errors.New("user info fetch failed")

	// ErrUnsupportedOperation indicates the provider descriptor lacks the
	// endpoint required by the requested operation.
	ErrUnsupportedOperation = errors.New("unsupported operation")
)
