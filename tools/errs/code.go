package errs

// Relay error codes. 1xx binding, 2xx routing, 3xx registry, 9xx auth/token.
var (
	// ErrBinding : announced credentials are missing or malformed; the
	// connection stays unbound.
	ErrBinding = NewCodeError(100, "binding failed")

	// ErrUnknownSender : routing attempted from a connection that never bound.
	ErrUnknownSender = NewCodeError(200, "unknown sender")

	// ErrUnauthorizedSender : sender does not hold the admin slot.
	ErrUnauthorizedSender = NewCodeError(201, "unauthorized sender")

	// ErrRecipientOffline : target identity has no live connection. Reported
	// to the sender, never queued.
	ErrRecipientOffline = NewCodeError(202, "recipient offline")

	// ErrRegistryInconsistency : an internal registry invariant broke; fatal
	// to the single operation only.
	ErrRegistryInconsistency = NewCodeError(300, "registry inconsistency")

	ErrTokenExpired = NewCodeError(900, "token missing or expired")
)
