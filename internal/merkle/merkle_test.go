package merkle

import "testing"

func sampleLeaves() [NumLeaves][]byte {
	var leaves [NumLeaves][]byte
	for i := 0; i < NumLeaves; i++ {
		leaves[i] = []byte{byte(i), byte(i * 7), byte(i + 3)}
	}
	return leaves
}

func TestRoundTripAllIndices(t *testing.T) {
	leaves := sampleLeaves()
	tree := BuildTree(leaves)
	root := tree.Root()

	for i := 0; i < NumLeaves; i++ {
		proof := tree.Proof(i)
		if !Verify(leaves[i], proof, root) {
			t.Fatalf("honest proof for index %d failed to verify", i)
		}
	}
}

func TestProofLength(t *testing.T) {
	tree := BuildTree(sampleLeaves())
	proof := tree.Proof(5)
	if len(proof.Siblings) != ProofLen {
		t.Fatalf("proof length = %d, want %d", len(proof.Siblings), ProofLen)
	}
}

func TestBitFlipInProofRejected(t *testing.T) {
	leaves := sampleLeaves()
	tree := BuildTree(leaves)
	root := tree.Root()
	proof := tree.Proof(3)
	proof.Siblings[0][0] ^= 0xFF
	if Verify(leaves[3], proof, root) {
		t.Fatalf("flipped sibling byte should break verification")
	}
}

func TestBitFlipInRootRejected(t *testing.T) {
	leaves := sampleLeaves()
	tree := BuildTree(leaves)
	root := tree.Root()
	root[0] ^= 0xFF
	proof := tree.Proof(10)
	if Verify(leaves[10], proof, root) {
		t.Fatalf("flipped root byte should break verification")
	}
}

func TestWrongLeafRejected(t *testing.T) {
	leaves := sampleLeaves()
	tree := BuildTree(leaves)
	root := tree.Root()
	proof := tree.Proof(0)
	if Verify(leaves[1], proof, root) {
		t.Fatalf("proof for index 0 should not verify against leaf 1's data")
	}
}
