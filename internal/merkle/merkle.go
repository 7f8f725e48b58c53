// Package merkle implements the keccak-256 binary Merkle commitment over the
// 52-leaf shuffled-and-encrypted deck (spec.md §4.4).
//
// Grounded in the teacher's Merkle builder in x/poker/types/zk_deck.go
// (computeCommitmentRoot, GetMerkleProof, VerifyMerkleProof), but using
// keccak-256 rather than that file's SHA-256, matching the hash function the
// teacher itself reaches for elsewhere (msg_server_create_game.go uses
// sha3.NewLegacyKeccak256 for its own commitment hashing).
package merkle

import (
	"golang.org/x/crypto/sha3"
)

// NumLeaves is the fixed deck size committed to by every hand.
const NumLeaves = 52

// ProofLen is ceil(log2(52)) = 6 sibling hashes per card, per spec.md §4.4.
const ProofLen = 6

// Hash is a 32-byte keccak-256 digest.
type Hash [32]byte

func keccak(parts ...[]byte) Hash {
	h := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		h.Write(p)
	}
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// LeafHash hashes a single encrypted-card leaf's byte representation.
func LeafHash(cardData []byte) Hash {
	return keccak(cardData)
}

// Proof is a sibling path of fixed length ProofLen from a leaf to the root.
type Proof struct {
	Siblings [ProofLen]Hash
	Index    int
}

// Tree is a binary Merkle tree built bottom-up from 52 leaves, padded with
// zero-hashes to the next power of two (64) so every leaf has a full-depth
// sibling path.
type Tree struct {
	levels [][]Hash // levels[0] = leaves (padded), levels[last] = [root]
}

// paddedSize is the smallest power of two >= NumLeaves that gives every leaf
// a ProofLen-deep path (2^6 = 64).
const paddedSize = 1 << ProofLen

// BuildTree constructs the commitment tree over 52 encrypted-card byte
// representations. Leaves beyond NumLeaves up to paddedSize are the
// zero-hash, so proof length is always exactly ProofLen.
func BuildTree(leafData [NumLeaves][]byte) *Tree {
	leaves := make([]Hash, paddedSize)
	for i := 0; i < NumLeaves; i++ {
		leaves[i] = LeafHash(leafData[i])
	}
	// leaves[NumLeaves:] stay zero-valued Hash{}, the fixed padding leaf.

	levels := [][]Hash{leaves}
	cur := leaves
	for len(cur) > 1 {
		next := make([]Hash, len(cur)/2)
		for i := 0; i < len(next); i++ {
			next[i] = keccak(cur[2*i][:], cur[2*i+1][:])
		}
		levels = append(levels, next)
		cur = next
	}
	return &Tree{levels: levels}
}

// Root returns the tree's 32-byte commitment.
func (t *Tree) Root() Hash {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// Proof returns the sibling path for the leaf at index (0..51).
func (t *Tree) Proof(index int) Proof {
	var p Proof
	p.Index = index
	idx := index
	for depth := 0; depth < ProofLen; depth++ {
		level := t.levels[depth]
		siblingIdx := idx ^ 1
		p.Siblings[depth] = level[siblingIdx]
		idx >>= 1
	}
	return p
}

// Verify recomputes the root from leafData and proof and compares it to
// root, following spec.md §4.4's exact algorithm: the path bit is the LSB of
// index at each level, and concatenation order is left‖right.
func Verify(leafData []byte, proof Proof, root Hash) bool {
	h := LeafHash(leafData)
	index := proof.Index
	for _, s := range proof.Siblings {
		if index&1 == 0 {
			h = keccak(h[:], s[:])
		} else {
			h = keccak(s[:], h[:])
		}
		index >>= 1
	}
	return h == root
}
