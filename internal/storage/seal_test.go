package storage

import (
	"bytes"
	"errors"
	"testing"
)

func TestSealRoundTrip(t *testing.T) {
	passphrase := []byte("correct horse battery")
	plaintext := []byte(`{"snip-a":{}}`)

	blob, err := seal(plaintext, passphrase)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if !isSealed(blob) {
		t.Fatal("sealed blob missing magic header")
	}
	if bytes.Contains(blob, plaintext) {
		t.Fatal("sealed blob contains plaintext")
	}

	got, err := unseal(blob, passphrase)
	if err != nil {
		t.Fatalf("unseal: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("unseal = %q, want %q", got, plaintext)
	}
}

func TestSealWrongPassphrase(t *testing.T) {
	blob, err := seal([]byte("secret"), []byte("passphrase-one"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	if _, err := unseal(blob, []byte("passphrase-two")); !errors.Is(err, ErrUnsealFailed) {
		t.Fatalf("err = %v, want %v", err, ErrUnsealFailed)
	}
}

func TestSealCorruptedBlob(t *testing.T) {
	passphrase := []byte("correct horse battery")
	blob, err := seal([]byte("secret"), passphrase)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	blob[len(blob)-1] ^= 0xff
	if _, err := unseal(blob, passphrase); !errors.Is(err, ErrUnsealFailed) {
		t.Fatalf("err = %v, want %v", err, ErrUnsealFailed)
	}
}

func TestSealRejectsWeakPassphrase(t *testing.T) {
	if _, err := seal([]byte("x"), []byte("short")); !errors.Is(err, ErrPassphraseTooWeak) {
		t.Fatalf("err = %v, want %v", err, ErrPassphraseTooWeak)
	}
}

func TestUnsealRejectsPlainPayload(t *testing.T) {
	if _, err := unseal([]byte(`{"plain":"json"}`), []byte("correct horse")); !errors.Is(err, ErrNotSealed) {
		t.Fatalf("err = %v, want %v", err, ErrNotSealed)
	}
}

func TestSealSaltVaries(t *testing.T) {
	passphrase := []byte("correct horse battery")
	a, err := seal([]byte("same"), passphrase)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	b, err := seal([]byte("same"), passphrase)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatal("two seals of the same payload produced identical blobs")
	}
}
