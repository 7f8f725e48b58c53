// Package phcipher implements the commutative Pohlig-Hellman cipher used by
// the mental-poker card protocol: E_k(m) = m^k mod p over a fixed 256-bit
// safe prime. Commutativity, (m^a)^b = (m^b)^a, lets two players jointly
// encrypt a deck without either one learning the other's key.
//
// Grounded in spec.md §4.3. The teacher's own zk_deck.go reaches for
// curve25519 ECDH + XOR for its card encryption (explicitly marked "for demo
// — use AES-GCM in production"), so this package does not reuse that code;
// instead it is grounded in the teacher's arithmetic idiom of fixed-width
// integers via `github.com/holiman/uint256`, an indirect teacher dependency
// (through go-ethereum) and a direct dependency of pflow-xyz-go-pflow
// elsewhere in the pack.
package phcipher

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// Prime is p = 2^256 - 189, the fixed field modulus for every operation in
// this package. Bit-exact per spec.md §6:
// FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF43.
var Prime = uint256.MustFromHex("0xFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF43")

// primeBig is the math/big mirror of Prime, used only by Decrypt's modular
// inverse computation, which is explicitly an off-chain-only, non-secret-path
// operation (spec.md §4.3, §9) where variable-time big.Int arithmetic is
// acceptable.
var primeBig = Prime.ToBig()

// Plaintext is a card index encoded into the field by m = card + 2, injecting
// 0..51 into [2, p-1] so it never collides with the identity or zero.
type Plaintext = uint8

// FieldElement is an element of Z_p, used for both ciphertexts and encoded
// plaintexts.
type FieldElement = uint256.Int

// ValidKey reports whether pk is in the required exponent range [2, p-1].
// Out-of-range keys must fail verification, not panic.
func ValidKey(pk *uint256.Int) bool {
	if pk.LtUint64(2) {
		return false
	}
	return pk.Lt(Prime)
}

// EncodeCard injects a card index 0..51 into the field as card+2.
func EncodeCard(cardIdx uint8) *uint256.Int {
	return new(uint256.Int).AddUint64(uint256.NewInt(uint64(cardIdx)), 2)
}

// modpow computes base^exp mod Prime via square-and-multiply, scanning the
// exponent LSB to MSB, each multiply reduced through uint256's wide MulMod.
func modpow(base, exp *uint256.Int) *uint256.Int {
	result := uint256.NewInt(1)
	b := new(uint256.Int).Mod(base, Prime)
	e := new(uint256.Int).Set(exp)

	one := uint256.NewInt(1)
	zero := uint256.NewInt(0)
	bit := new(uint256.Int)
	for e.Cmp(zero) != 0 {
		if bit.And(e, one).Eq(one) {
			result = new(uint256.Int).MulMod(result, b, Prime)
		}
		b = new(uint256.Int).MulMod(b, b, Prime)
		e.Rsh(e, 1)
	}
	return result
}

// EncryptPlain computes m^pk mod p for an encoded card, the first layer of
// encryption a player applies to a freshly shuffled deck.
func EncryptPlain(cardIdx uint8, pk *uint256.Int) (*uint256.Int, error) {
	if !ValidKey(pk) {
		return nil, fmt.Errorf("phcipher: key out of range [2, p-1]")
	}
	m := EncodeCard(cardIdx)
	return modpow(m, pk), nil
}

// Reencrypt computes c^pk mod p, applying a second player's key on top of an
// already-encrypted ciphertext.
func Reencrypt(c *uint256.Int, pk *uint256.Int) (*uint256.Int, error) {
	if !ValidKey(pk) {
		return nil, fmt.Errorf("phcipher: key out of range [2, p-1]")
	}
	return modpow(c, pk), nil
}

// Verify recomputes ((plaintext+2)^pk1)^pk2 mod p and compares it bit-exactly
// to ciphertext. This is the sole check a reveal step performs against a
// claimed plaintext card, relying on Pohlig-Hellman's commutativity.
func Verify(cardIdx uint8, ciphertext, pk1, pk2 *uint256.Int) bool {
	if !ValidKey(pk1) || !ValidKey(pk2) {
		return false
	}
	m := EncodeCard(cardIdx)
	step1 := modpow(m, pk1)
	step2 := modpow(step1, pk2)
	return step2.Eq(ciphertext)
}

// Decrypt recovers the field element m = c^(sk^-1 mod p-1), used off-chain
// only by the key-holding player; not exercised by arbiter state transitions.
// Uses math/big for the modular inverse since uint256 has no inverse helper
// and constant-time execution is not required here (spec.md §4.3, §9).
func Decrypt(c *uint256.Int, sk *uint256.Int) (*uint256.Int, error) {
	if !ValidKey(sk) {
		return nil, fmt.Errorf("phcipher: key out of range [2, p-1]")
	}
	pMinus1 := new(big.Int).Sub(primeBig, big.NewInt(1))
	skBig := sk.ToBig()
	inv := new(big.Int).ModInverse(skBig, pMinus1)
	if inv == nil {
		return nil, fmt.Errorf("phcipher: secret key has no inverse mod p-1")
	}
	invExp, overflow := uint256.FromBig(inv)
	if overflow {
		return nil, fmt.Errorf("phcipher: inverse exponent overflowed u256")
	}
	return modpow(c, invExp), nil
}

// DecodeCard recovers the card index 0..51 from a decrypted field element,
// inverting EncodeCard's m = card + 2.
func DecodeCard(m *uint256.Int) (uint8, error) {
	two := uint256.NewInt(2)
	if m.Lt(two) {
		return 0, fmt.Errorf("phcipher: decoded value below injection floor")
	}
	idx := new(uint256.Int).Sub(m, two)
	if !idx.IsUint64() || idx.Uint64() > 51 {
		return 0, fmt.Errorf("phcipher: decoded value out of card range")
	}
	return uint8(idx.Uint64()), nil
}
