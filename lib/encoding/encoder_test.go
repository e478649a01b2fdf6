package encoding

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type testToken struct {
	Session string `msgpack:"s"`
	Handler uint64 `msgpack:"h"`
}

func TestNewEncoder(t *testing.T) {
	// Should work with any key length (derives 32-byte key)
	if _, err := NewEncoder([]byte("short")); err != nil {
		t.Fatalf("NewEncoder with short key failed: %v", err)
	}
	if _, err := NewEncoder([]byte("this-is-a-32-byte-key-for-aes!!!")); err != nil {
		t.Fatalf("NewEncoder with 32-byte key failed: %v", err)
	}
	if _, err := NewEncoder(make([]byte, 48)); err != nil {
		t.Fatalf("NewEncoder with 48-byte key failed: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		sensitive bool
	}{
		{name: "signed", sensitive: false},
		{name: "encrypted", sensitive: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := NewEncoder([]byte("test-key"))
			if err != nil {
				t.Fatalf("NewEncoder failed: %v", err)
			}

			original := testToken{Session: "7f9c2b", Handler: 42}
			encoded, err := enc.Encode(original, tt.sensitive)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if encoded == "" {
				t.Fatal("Encoded string is empty")
			}

			var decoded testToken
			if err := enc.Decode(encoded, tt.sensitive, &decoded); err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if diff := cmp.Diff(original, decoded); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSignatureVerificationFailure(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	encoded, err := enc.Encode(testToken{Session: "abc", Handler: 1}, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// Tamper with the signature
	tampered := encoded[:len(encoded)-2] + "XX"

	var decoded testToken
	err = enc.Decode(tampered, false, &decoded)
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("Decode(tampered) error = %v, want %v", err, ErrSignatureInvalid)
	}
}

func TestDecryptionFailure(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	encoded, err := enc.Encode(testToken{Session: "abc", Handler: 1}, true)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	tampered := encoded[:len(encoded)-2] + "XX"

	var decoded testToken
	err = enc.Decode(tampered, true, &decoded)
	if err == nil {
		t.Error("Expected error for tampered ciphertext, got nil")
	}
}

func TestInvalidFormat(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	// Missing signature separator
	var decoded testToken
	err := enc.Decode("invalidbase64withoutseparator", false, &decoded)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Decode() error = %v, want %v", err, ErrInvalidFormat)
	}
}

func TestDifferentKeysCannotDecode(t *testing.T) {
	enc1, _ := NewEncoder([]byte("key-one"))
	enc2, _ := NewEncoder([]byte("key-two"))

	encoded, err := enc1.Encode(testToken{Session: "abc", Handler: 7}, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var decoded testToken
	if err := enc2.Decode(encoded, false, &decoded); err == nil {
		t.Error("Expected error when decoding with different key")
	}
}

func TestSignedTokenIsURLSafe(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	encoded, err := enc.Encode(testToken{Session: "session/with?odd&chars", Handler: 1 << 40}, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	for _, r := range encoded {
		ok := r == '.' || r == '-' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			t.Fatalf("encoded token %q contains %q", encoded, r)
		}
	}
}
