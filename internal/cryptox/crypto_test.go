package cryptox

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}
	if len(key1) != KeySize {
		t.Errorf("expected %d-byte key, got %d", KeySize, len(key1))
	}
}

func TestDeriveKey_DifferentInputs(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveKey(password, []byte("salt-1"))
	key2 := DeriveKey(password, []byte("salt-2"))
	key3 := DeriveKey([]byte("other"), []byte("salt-1"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
	if bytes.Equal(key1, key3) {
		t.Errorf("expected different results for different passwords, got same")
	}
}

func TestNewSalt(t *testing.T) {
	a, b := NewSalt(), NewSalt()
	require.Len(t, a, SaltSize)
	require.NotEqual(t, a, b)
}

func TestSealOpenText_RoundTrip(t *testing.T) {
	key := DeriveKey([]byte("pw"), NewSalt())

	sealed, err := SealText("dear diary", key)
	require.NoError(t, err)
	require.NotContains(t, sealed, "dear diary")

	plain, err := OpenText(sealed, key)
	require.NoError(t, err)
	require.Equal(t, "dear diary", plain)
}

func TestSealText_FreshNonceEachCall(t *testing.T) {
	key := DeriveKey([]byte("pw"), NewSalt())

	a, err := SealText("same", key)
	require.NoError(t, err)
	b, err := SealText("same", key)
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}

func TestOpenText_WrongKey(t *testing.T) {
	salt := NewSalt()
	sealed, err := SealText("secret", DeriveKey([]byte("right"), salt))
	require.NoError(t, err)

	_, err = OpenText(sealed, DeriveKey([]byte("wrong"), salt))
	require.Error(t, err)
}

func TestOpenText_Malformed(t *testing.T) {
	key := DeriveKey([]byte("pw"), NewSalt())

	_, err := OpenText("%%% not base64", key)
	require.ErrorIs(t, err, ErrMalformedCiphertext)

	_, err = OpenText(base64.StdEncoding.EncodeToString([]byte("short")), key)
	require.ErrorIs(t, err, ErrMalformedCiphertext)
}

func TestSealText_BadKeyLength(t *testing.T) {
	_, err := SealText("x", []byte("short-key"))
	require.Error(t, err)
}
