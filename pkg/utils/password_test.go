package utils

import "testing"

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasherWithCost(4)

	first, err := h.Hash("correct horse")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	second, err := h.Hash("correct horse")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password should differ (random salt)")
	}
	if !h.Verify("correct horse", first) || !h.Verify("correct horse", second) {
		t.Error("Verify should accept the original password")
	}
	if h.Verify("wrong horse", first) {
		t.Error("Verify should reject a wrong password")
	}
}

func TestPasswordHasherMalformedDigest(t *testing.T) {
	h := NewPasswordHasherWithCost(4)

	for _, digest := range []string{"", "not-a-hash", "$2a$04$short"} {
		if h.Verify("anything", digest) {
			t.Errorf("Verify with digest %q should be false", digest)
		}
	}
}
