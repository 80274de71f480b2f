package pkg

import "testing"

func TestHashPasswordRoundTrip(t *testing.T) {
	t.Parallel()

	hashed, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hashed == "correct horse battery" {
		t.Fatal("password stored in the clear")
	}

	match, err := CheckHashPassword("correct horse battery", hashed)
	if err != nil || !match {
		t.Errorf("expected match, got match=%v err=%v", match, err)
	}

	match, err = CheckHashPassword("wrong password", hashed)
	if err != nil {
		t.Errorf("a plain mismatch is not an error, got %v", err)
	}
	if match {
		t.Error("expected mismatch")
	}
}

func TestCheckHashPasswordMalformedHash(t *testing.T) {
	t.Parallel()

	match, err := CheckHashPassword("anything", "not-a-bcrypt-hash")
	if err == nil {
		t.Error("expected an error for a hash that cannot be compared")
	}
	if match {
		t.Error("expected no match")
	}
}
