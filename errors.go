package hxfrp

import "errors"

// Sentinel errors. The combinators themselves define no errors: they forward
// whatever a stream fails with. These cover misuse of the API and the
// session registry.
var (
	ErrSessionNotFound  = errors.New("hxfrp: session not found")
	ErrHandlerNotFound  = errors.New("hxfrp: event handler not found")
	ErrDecryptFailed    = errors.New("hxfrp: token decryption failed")
	ErrSignatureInvalid = errors.New("hxfrp: token signature verification failed")
	ErrInvalidFormat    = errors.New("hxfrp: invalid token format")
	ErrUnknownNode      = errors.New("hxfrp: node not renderable as HTML")
	ErrBinderClosed     = errors.New("hxfrp: binder used outside its Mdo block")
	ErrFieldType        = errors.New("hxfrp: scope field used with a different type")
)

// IsNotFound checks if err is a missing session or handler error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrHandlerNotFound)
}

// IsDecryptionError checks if err is a token decryption or signature error.
func IsDecryptionError(err error) bool {
	return errors.Is(err, ErrDecryptFailed) || errors.Is(err, ErrSignatureInvalid) || errors.Is(err, ErrInvalidFormat)
}
