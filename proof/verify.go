// Copyright 2026 Google LLC. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package proof

import (
	"bytes"
	"fmt"

	"github.com/google/logtree"
	"github.com/google/logtree/treemath"
	"github.com/google/logtree/types"
)

// RootMismatchError occurs when an alleged root does not match the root
// recomputed from a proof.
type RootMismatchError struct {
	ExpectedRoot   []byte
	CalculatedRoot []byte
}

func (e RootMismatchError) Error() string {
	return fmt.Sprintf("calculated root:\n%v\n does not match expected root:\n%v", e.CalculatedRoot, e.ExpectedRoot)
}

// Verifier checks proofs against root hashes using a fixed hasher. It is
// stateless and safe for concurrent use.
type Verifier struct {
	hasher logtree.LogHasher
}

// NewVerifier returns a verifier for proofs produced by trees hashed with
// the given hasher.
func NewVerifier(hasher logtree.LogHasher) Verifier {
	return Verifier{hasher: hasher}
}

// VerifyConsistency checks that the proof, in wire form, shows the tree
// snapshot newRoot to be a pure append extension of the snapshot oldRoot.
//
// The proof is replayed into two accumulators at once: one rebuilding the
// old root from its anchor inside the new tree, the other rebuilding the
// new root along the same copath. While the old accumulator has not reached
// the old root, a copath hash feeds it exactly when the hash sits on the
// old cursor's copath under the old size. Verification succeeds only if
// both accumulators reproduce the supplied digests.
func (v Verifier) VerifyConsistency(oldRoot, newRoot types.RootHash, proof []byte) error {
	oldSize, newSize := oldRoot.TreeSize, newRoot.TreeSize
	if oldSize == 0 {
		return fmt.Errorf("consistency proofs are undefined for the empty tree")
	}
	if oldSize > newSize {
		return fmt.Errorf("old size %d is beyond the new size %d", oldSize, newSize)
	}
	if newSize >= maxSize {
		return fmt.Errorf("tree size %d exceeds the supported maximum %d", newSize, maxSize)
	}

	// Equal digests with an empty proof verify as the same snapshot. The
	// claimed sizes are not compared on this path.
	if len(proof) == 0 && bytes.Equal(oldRoot.Hash, newRoot.Hash) {
		return nil
	}

	chunks, err := Unmarshal(proof, v.hasher.Size())
	if err != nil {
		return err
	}

	if oldSize == newSize {
		// Identical sizes need identical roots and an empty proof; the
		// matching case was accepted above.
		if len(chunks) > 0 {
			return fmt.Errorf("wrong proof size %d, want 0 for equal tree sizes", len(chunks))
		}
		return RootMismatchError{ExpectedRoot: newRoot.Hash, CalculatedRoot: oldRoot.Hash}
	}

	oldRootIdx := treemath.RootIdx(oldSize)
	newRootIdx := treemath.RootIdx(newSize)

	// Seed both accumulators. A perfect old tree keeps its root as a node
	// of the new tree, so the old root digest itself is the seed and the
	// old accumulator is already complete. Otherwise the seed is the anchor
	// hash carried as the first element of the proof, sitting at the
	// divergence point of the two trees.
	oldCursor, newCursor := oldRootIdx, oldRootIdx
	oldHash, newHash := oldRoot.Hash, oldRoot.Hash
	if !isPerfect(oldSize) {
		if len(chunks) == 0 {
			return fmt.Errorf("wrong proof size 0, want at least the anchor hash")
		}
		d := treemath.DivergencePoint(oldSize, newSize)
		oldCursor, newCursor = d, d
		oldHash, newHash = chunks[0], chunks[0]
		chunks = chunks[1:]
	}

	for _, chunk := range chunks {
		if newCursor == newRootIdx {
			return fmt.Errorf("wrong proof size: hashes remain after the new root was reached")
		}
		sib := newCursor.Sibling(newSize)
		if newCursor.IsLeftChild(newSize) {
			newHash = v.hasher.HashChildren(newHash, chunk)
		} else {
			newHash = v.hasher.HashChildren(chunk, newHash)
		}
		newCursor = newCursor.Parent(newSize)

		if oldCursor != oldRootIdx && sib == oldCursor.Sibling(oldSize) {
			if oldCursor.IsLeftChild(oldSize) {
				oldHash = v.hasher.HashChildren(oldHash, chunk)
			} else {
				oldHash = v.hasher.HashChildren(chunk, oldHash)
			}
			oldCursor = oldCursor.Parent(oldSize)
		}
	}
	if newCursor != newRootIdx {
		return fmt.Errorf("wrong proof size: the new root was not reached")
	}

	if !bytes.Equal(oldHash, oldRoot.Hash) {
		return RootMismatchError{ExpectedRoot: oldRoot.Hash, CalculatedRoot: oldHash}
	}
	if !bytes.Equal(newHash, newRoot.Hash) {
		return RootMismatchError{ExpectedRoot: newRoot.Hash, CalculatedRoot: newHash}
	}
	return nil
}

// VerifyInclusion checks that the proof, in wire form, shows the given leaf
// content to be the leaf at position index of the tree snapshot root.
func (v Verifier) VerifyInclusion(leaf []byte, index uint64, root types.RootHash, proof []byte) error {
	size := root.TreeSize
	if index >= size {
		return fmt.Errorf("leaf index %d is beyond the tree size %d", index, size)
	}
	if size >= maxSize {
		return fmt.Errorf("tree size %d exceeds the supported maximum %d", size, maxSize)
	}

	chunks, err := Unmarshal(proof, v.hasher.Size())
	if err != nil {
		return err
	}

	hash := v.hasher.HashLeaf(leaf)
	rootIdx := treemath.RootIdx(size)
	cursor := treemath.LeafIdx(index).Internal()
	for _, chunk := range chunks {
		if cursor == rootIdx {
			return fmt.Errorf("wrong proof size: hashes remain after the root was reached")
		}
		if cursor.IsLeftChild(size) {
			hash = v.hasher.HashChildren(hash, chunk)
		} else {
			hash = v.hasher.HashChildren(chunk, hash)
		}
		cursor = cursor.Parent(size)
	}
	if cursor != rootIdx {
		return fmt.Errorf("wrong proof size: the root was not reached")
	}

	if !bytes.Equal(hash, root.Hash) {
		return RootMismatchError{ExpectedRoot: root.Hash, CalculatedRoot: hash}
	}
	return nil
}
