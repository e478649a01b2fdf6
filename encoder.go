package hxfrp

import (
	"errors"

	"github.com/pthm/hxfrp/lib/encoding"
)

// Encoder is an alias for encoding.Encoder for convenience.
type Encoder = encoding.Encoder

// NewEncoder creates a new encoder with the given key.
func NewEncoder(key []byte) (*Encoder, error) {
	return encoding.NewEncoder(key)
}

// eventToken identifies one registered handler of one session. It travels
// in the URL of every wired element.
type eventToken struct {
	Session string `msgpack:"s"`
	Handler uint64 `msgpack:"h"`
}

// wrapEncodingError wraps encoding package errors with hxfrp sentinel errors.
func wrapEncodingError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, encoding.ErrInvalidFormat) {
		return ErrInvalidFormat
	}
	if errors.Is(err, encoding.ErrSignatureInvalid) {
		return ErrSignatureInvalid
	}
	if errors.Is(err, encoding.ErrDecryptFailed) {
		return ErrDecryptFailed
	}
	return err
}
