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

package logtree

import (
	"bytes"
	"fmt"
	"math/bits"

	"github.com/google/logtree/treemath"
	"github.com/google/logtree/types"
)

// VisitFn is called for every node whose hash is stored or recomputed during
// an append, including the new leaf itself.
type VisitFn func(id treemath.InternalIdx, hash []byte)

// Tree implements an append-only Merkle tree. All node hashes, leaves and
// internal nodes alike, are kept in a single flat array in the in-order
// layout described by the treemath package.
//
// A Tree is not safe for concurrent use. Readers and the single writer must
// be serialized externally.
type Tree struct {
	hasher LogHasher
	size   uint64
	nodes  [][]byte // Node hashes, indexed by treemath.InternalIdx.
}

// New returns a new empty Merkle tree.
func New(hasher LogHasher) *Tree {
	return &Tree{hasher: hasher}
}

// AppendData adds the leaf hashes of the given entries to the end of the
// tree.
func (t *Tree) AppendData(entries ...[]byte) {
	for _, data := range entries {
		t.AppendHash(t.hasher.HashLeaf(data), nil)
	}
}

// Append adds the given leaf hashes to the end of the tree. The tree takes
// ownership of the slices.
func (t *Tree) Append(hashes ...[]byte) {
	for _, hash := range hashes {
		t.AppendHash(hash, nil)
	}
}

// AppendHash adds one leaf hash to the end of the tree and returns the leaf
// position assigned to it. Appending invalidates exactly the ancestors of
// the new leaf, so those are the nodes recomputed. If visit is not nil it is
// called for the new leaf and for every recomputed ancestor.
func (t *Tree) AppendHash(hash []byte, visit VisitFn) uint64 {
	leaf := treemath.LeafIdx(t.size)
	if t.size == 0 {
		t.nodes = append(t.nodes, hash)
	} else {
		// One slot for the internal node joining the new leaf in, and
		// one for the leaf. The internal slot is filled by the climb
		// below, since it is always the new leaf's parent.
		t.nodes = append(t.nodes, nil, hash)
	}
	t.size++
	if visit != nil {
		visit(leaf.Internal(), hash)
	}

	root := treemath.RootIdx(t.size)
	for id := leaf.Internal(); id != root; {
		id = id.Parent(t.size)
		h := t.hasher.HashChildren(t.nodes[id.LeftChild()], t.nodes[id.RightChild(t.size)])
		t.nodes[id] = h
		if visit != nil {
			visit(id, h)
		}
	}
	return uint64(leaf)
}

// Size returns the current number of leaves in the tree.
func (t *Tree) Size() uint64 {
	return t.size
}

// LeafHash returns the leaf hash at the given index.
// Requires 0 <= index < Size(), otherwise panics.
func (t *Tree) LeafHash(index uint64) []byte {
	return t.nodes[treemath.LeafIdx(index).Internal()]
}

// NodeHash returns the stored hash of the node at the given index, or an
// error if the index lies outside the current tree.
func (t *Tree) NodeHash(id treemath.InternalIdx) ([]byte, error) {
	if uint64(id) >= treemath.NumNodes(t.size) {
		return nil, fmt.Errorf("node index %d out of range for tree of size %d", id, t.size)
	}
	return t.nodes[id], nil
}

// Hash returns the current root hash of the tree.
func (t *Tree) Hash() []byte {
	if t.size == 0 {
		return t.hasher.EmptyRoot()
	}
	return t.nodes[treemath.RootIdx(t.size)]
}

// HashAt returns the root hash the tree had when it covered only the first
// size leaves. Requires size <= Size(), otherwise panics.
//
// The result is assembled from the roots of the maximal perfect subtrees
// covering the prefix. Those hashes never change once the subtree is
// complete, so they can be read back directly from the node array.
func (t *Tree) HashAt(size uint64) []byte {
	if size > t.size {
		panic(fmt.Sprintf("logtree: size %d beyond current tree size %d", size, t.size))
	}
	if size == 0 {
		return t.hasher.EmptyRoot()
	}
	peaks := t.peakHashes(size)
	hash := peaks[len(peaks)-1]
	for i := len(peaks) - 2; i >= 0; i-- {
		hash = t.hasher.HashChildren(peaks[i], hash)
	}
	return hash
}

// peakHashes returns the stored hashes of the maximal perfect subtrees
// covering the first size leaves, leftmost first. A perfect subtree over
// leaves [first, first+2^b) has its root at array position 2*first + 2^b - 1.
func (t *Tree) peakHashes(size uint64) [][]byte {
	peaks := make([][]byte, 0, bits.OnesCount64(size))
	var first uint64
	for size > 0 {
		span := uint64(1) << (bits.Len64(size) - 1)
		peaks = append(peaks, t.nodes[treemath.InternalIdx(2*first+span-1)])
		first += span
		size -= span
	}
	return peaks
}

// Root returns the snapshot identifying the current tree.
func (t *Tree) Root() types.RootHash {
	return types.RootHash{TreeSize: t.size, Hash: t.Hash()}
}

// RootAt returns the snapshot the tree produced when it covered only the
// first size leaves. Requires size <= Size(), otherwise panics.
func (t *Tree) RootAt(size uint64) types.RootHash {
	return types.RootHash{TreeSize: size, Hash: t.HashAt(size)}
}

// SelfCheck recomputes every internal node from its children and reports the
// first mismatch found. Intended for tests and debugging tools.
func (t *Tree) SelfCheck() error {
	for i := uint64(1); i < treemath.NumNodes(t.size); i += 2 {
		id := treemath.InternalIdx(i)
		want := t.hasher.HashChildren(t.nodes[id.LeftChild()], t.nodes[id.RightChild(t.size)])
		if !bytes.Equal(t.nodes[id], want) {
			return fmt.Errorf("node %d does not match the hash of its children", id)
		}
	}
	return nil
}
