package phcipher

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestVerifySymmetry(t *testing.T) {
	pk1 := uint256.NewInt(123456789)
	pk2 := uint256.NewInt(987654321)

	for cardIdx := uint8(0); cardIdx < 52; cardIdx++ {
		c1, err := EncryptPlain(cardIdx, pk1)
		if err != nil {
			t.Fatalf("EncryptPlain: %v", err)
		}
		c2, err := Reencrypt(c1, pk2)
		if err != nil {
			t.Fatalf("Reencrypt: %v", err)
		}
		if !Verify(cardIdx, c2, pk1, pk2) {
			t.Fatalf("Verify failed for card %d", cardIdx)
		}
	}
}

func TestVerifyCommutesInKeyOrder(t *testing.T) {
	pk1 := uint256.NewInt(111)
	pk2 := uint256.NewInt(222)

	c1, _ := EncryptPlain(7, pk1)
	viaAB, _ := Reencrypt(c1, pk2)

	c2, _ := EncryptPlain(7, pk2)
	viaBA, _ := Reencrypt(c2, pk1)

	if !viaAB.Eq(viaBA) {
		t.Fatalf("(m^pk1)^pk2 != (m^pk2)^pk1, commutativity broken")
	}
}

func TestVerifyRejectsWrongPlaintext(t *testing.T) {
	pk1 := uint256.NewInt(55)
	pk2 := uint256.NewInt(66)
	c1, _ := EncryptPlain(10, pk1)
	c2, _ := Reencrypt(c1, pk2)

	if Verify(11, c2, pk1, pk2) {
		t.Fatalf("Verify should reject a mismatched plaintext")
	}
}

func TestVerifyRejectsOutOfRangeKeys(t *testing.T) {
	zero := uint256.NewInt(0)
	pk := uint256.NewInt(5)
	if ValidKey(zero) {
		t.Fatalf("0 should not be a valid key")
	}
	if Verify(1, uint256.NewInt(1), zero, pk) {
		t.Fatalf("Verify must fail, not panic, on an out-of-range key")
	}
}

func TestDecryptRoundTrip(t *testing.T) {
	sk := uint256.NewInt(65537)
	c, err := EncryptPlain(30, sk)
	if err != nil {
		t.Fatalf("EncryptPlain: %v", err)
	}
	m, err := Decrypt(c, sk)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	card, err := DecodeCard(m)
	if err != nil {
		t.Fatalf("DecodeCard: %v", err)
	}
	if card != 30 {
		t.Fatalf("Decrypt round trip = %d, want 30", card)
	}
}
