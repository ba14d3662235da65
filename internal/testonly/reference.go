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

package testonly

import "math/bits"

// LogHasher is the subset of the tree hashing contract that the reference
// implementations below need.
type LogHasher interface {
	EmptyRoot() []byte
	HashLeaf(leaf []byte) []byte
	HashChildren(l, r []byte) []byte
}

// RefRootHash returns the root hash of a Merkle tree with the given entries,
// computed by the recursive splitting definition from RFC 6962. This is a
// reference implementation for cross-checking.
func RefRootHash(entries [][]byte, hasher LogHasher) []byte {
	if len(entries) == 0 {
		return hasher.EmptyRoot()
	}
	if len(entries) == 1 {
		return hasher.HashLeaf(entries[0])
	}
	split := downToPowerOfTwo(uint64(len(entries)))
	return hasher.HashChildren(
		RefRootHash(entries[:split], hasher),
		RefRootHash(entries[split:], hasher))
}

// RefInclusionProof returns the inclusion proof for the given leaf index in
// a Merkle tree with the given entries. This is a reference implementation
// for cross-checking.
func RefInclusionProof(entries [][]byte, index uint64, hasher LogHasher) [][]byte {
	size := uint64(len(entries))
	if size == 1 || index >= size {
		return nil
	}
	split := downToPowerOfTwo(size)
	if index < split {
		return append(
			RefInclusionProof(entries[:split], index, hasher),
			RefRootHash(entries[split:], hasher))
	}
	return append(
		RefInclusionProof(entries[split:], index-split, hasher),
		RefRootHash(entries[:split], hasher))
}

// RefConsistencyProof returns the consistency proof for the two tree sizes,
// in a Merkle tree with the given entries. This is a reference
// implementation for cross-checking. External callers pass haveRoot1=true;
// the recursion clears it once the old root stops being a subtree root on
// the path, which is when the anchor hash gets recorded.
func RefConsistencyProof(entries [][]byte, size2, size1 uint64, hasher LogHasher, haveRoot1 bool) [][]byte {
	if size1 == 0 || size1 > size2 {
		return nil
	}
	// Consistency proof for two equal sizes is empty.
	if size1 == size2 {
		// Record the hash of this subtree unless it is the root for which
		// the proof was originally requested (which happens when size1 is a
		// power of two).
		if !haveRoot1 {
			return [][]byte{RefRootHash(entries[:size1], hasher)}
		}
		return nil
	}

	// At this point: 0 < size1 < size2.
	split := downToPowerOfTwo(size2)
	if size1 <= split {
		// Root of size1 is in the left subtree of size2. Prove that the left
		// subtrees are consistent, and record the hash of the right subtree
		// (only present in size2).
		return append(
			RefConsistencyProof(entries[:split], split, size1, hasher, haveRoot1),
			RefRootHash(entries[split:], hasher))
	}

	// Root of size1 is at the same level as the size2 root. Prove that the
	// right subtrees are consistent. The right subtree does not contain the
	// root of size1, so set haveRoot1 = false. Record the hash of the left
	// subtree (equal in both trees).
	return append(
		RefConsistencyProof(entries[split:], size2-split, size1-split, hasher, false),
		RefRootHash(entries[:split], hasher))
}

// downToPowerOfTwo returns the largest power of two smaller than x.
func downToPowerOfTwo(x uint64) uint64 {
	if x < 2 {
		panic("downToPowerOfTwo requires value >= 2")
	}
	return uint64(1) << (bits.Len64(x-1) - 1)
}
