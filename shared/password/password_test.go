package password_test

import (
	"errors"
	"testing"
	"villa/shared/password"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("s3cret-stay")
	if err != nil {
		t.Fatalf("unexpected error hashing password: %v", err)
	}

	if hash == "s3cret-stay" {
		t.Error("expected hash to differ from plaintext")
	}

	if err := password.Verify("s3cret-stay", hash); err != nil {
		t.Errorf("expected password to verify, got %v", err)
	}

	if err := password.Verify("wrong", hash); !errors.Is(err, password.ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestHash_Empty(t *testing.T) {
	if _, err := password.Hash(""); err == nil {
		t.Error("expected error hashing empty password")
	}
}

func TestVerify_EmptyInputs(t *testing.T) {
	if err := password.Verify("", "hash"); !errors.Is(err, password.ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword, got %v", err)
	}

	if err := password.Verify("pass", ""); !errors.Is(err, password.ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword, got %v", err)
	}
}
