package security

import (
	"testing"
)

func TestHasher_HashAndCompare(t *testing.T) {
	h := NewHasher(4)
	password := []byte("secret123")
	hash, err := h.Hash(password)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if err := h.Compare(hash, password); err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if err := h.Compare(hash, []byte("wrong")); err == nil {
		t.Fatal("Compare with wrong password should fail")
	}
}

func TestHasher_Cost(t *testing.T) {
	if h := NewHasher(12); h.Cost != 12 {
		t.Errorf("Cost = %d, want 12", h.Cost)
	}
	if h := NewHasher(0); h.Cost < 4 {
		t.Errorf("zero cost should be clamped to at least MinCost, got %d", h.Cost)
	}
	if h := NewHasher(99); h.Cost != 31 {
		t.Errorf("Cost = %d, want 31", h.Cost)
	}
}

func TestSecretChecker_Matches(t *testing.T) {
	c, err := NewSecretChecker(NewHasher(4), "admin")
	if err != nil {
		t.Fatalf("NewSecretChecker: %v", err)
	}
	tests := []struct {
		password string
		want     bool
	}{
		{"admin", true},
		{"Admin", false},
		{"admin ", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := c.Matches(tt.password); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}
