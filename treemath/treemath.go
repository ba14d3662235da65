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

// Package treemath provides the node addressing arithmetic for Merkle trees
// laid out as a flat in-order array.
//
// A tree over n leaves occupies exactly 2n-1 array slots. Leaves live at the
// even indices, in append order, and internal nodes at the odd indices, so
// every node sits between its left and right subtrees. For example, a tree
// over 7 leaves uses indices 0 through 12:
//
//	           7
//	        __/ \__
//	       /       \
//	      3         11
//	     / \       /  \
//	    1   5     9    \
//	   / \ / \   / \    \
//	   0 2 4 6   8 10   12
//
// The level of a node is the number of consecutive one bits at the bottom of
// its index, so leaves are at level 0. Unlike in a perfect tree, the parent,
// sibling and right child of a node depend on the current leaf count: links
// that would lead beyond the last node of the tree are contracted onto the
// nearest node that exists, as with node 11 above whose right child is the
// leaf 12. Appending a leaf can therefore change the relatives of existing
// nodes, which is exactly what consistency proofs have to account for.
package treemath

import (
	"fmt"
	"math/bits"
)

// LeafIdx is the zero-based position of a leaf in append order.
type LeafIdx uint64

// InternalIdx is the position of a node, leaf or internal, in the in-order
// array layout of the tree.
type InternalIdx uint64

// Internal returns the array position of the leaf, which is twice its append
// position.
func (l LeafIdx) Internal() InternalIdx {
	return InternalIdx(2 * uint64(l))
}

// LeafIndex returns the append position of the leaf at this array position,
// inverting Internal. The node must be a leaf, that is Level() == 0.
func (i InternalIdx) LeafIndex() LeafIdx {
	return LeafIdx(uint64(i) / 2)
}

// NumNodes returns the number of array slots occupied by a tree over
// numLeaves leaves.
func NumNodes(numLeaves uint64) uint64 {
	if numLeaves == 0 {
		return 0
	}
	return 2*numLeaves - 1
}

// RootIdx returns the index of the root of a tree over numLeaves leaves,
// which is the node with the highest level. numLeaves must be at least 1.
func RootIdx(numLeaves uint64) InternalIdx {
	if numLeaves == 0 {
		panic("treemath: empty tree has no root")
	}
	return InternalIdx(uint64(1)<<(bits.Len64(NumNodes(numLeaves))-1) - 1)
}

// Level returns the height of the node above the leaf layer, which is the
// number of consecutive low-order one bits in its index.
func (i InternalIdx) Level() uint {
	return uint(bits.TrailingZeros64(^uint64(i)))
}

// parentStep returns the parent of i in the infinite perfect tree, ignoring
// the bounds of any actual tree.
func (i InternalIdx) parentStep() InternalIdx {
	k := i.Level()
	b := (uint64(i) >> (k + 1)) & 1
	return InternalIdx((uint64(i) | (1 << k)) ^ (b << (k + 1)))
}

// Parent returns the parent of i in a tree over numLeaves leaves. Virtual
// parents beyond the last node are skipped until a node of the actual tree
// is reached. Calling Parent on the root is an invariant violation and
// panics.
func (i InternalIdx) Parent(numLeaves uint64) InternalIdx {
	if i == RootIdx(numLeaves) {
		panic(fmt.Sprintf("treemath: node %d is the root of a tree over %d leaves", i, numLeaves))
	}
	p := i.parentStep()
	for uint64(p) >= NumNodes(numLeaves) {
		p = p.parentStep()
	}
	return p
}

// LeftChild returns the left child of i, which does not depend on the tree
// size. The node must be internal, that is Level() >= 1.
func (i InternalIdx) LeftChild() InternalIdx {
	return InternalIdx(uint64(i) ^ (0b01 << (i.Level() - 1)))
}

// RightChild returns the right child of i in a tree over numLeaves leaves.
// Virtual children beyond the last node are contracted onto the root of the
// tallest subtree that does exist below them. The node must be internal.
func (i InternalIdx) RightChild(numLeaves uint64) InternalIdx {
	r := InternalIdx(uint64(i) ^ (0b11 << (i.Level() - 1)))
	for uint64(r) >= NumNodes(numLeaves) {
		r = r.LeftChild()
	}
	return r
}

// Sibling returns the other child of i's parent in a tree over numLeaves
// leaves.
func (i InternalIdx) Sibling(numLeaves uint64) InternalIdx {
	p := i.Parent(numLeaves)
	if i < p {
		return p.RightChild(numLeaves)
	}
	return p.LeftChild()
}

// IsLeftChild reports whether i hangs off the left side of its parent in a
// tree over numLeaves leaves. In the in-order layout a node precedes its
// parent exactly when it lies in the parent's left subtree.
func (i InternalIdx) IsLeftChild(numLeaves uint64) bool {
	return i < i.Parent(numLeaves)
}

// DivergencePoint returns the last node on the ancestor chain of the old
// tree's final leaf that occupies the same position in a tree over oldSize
// leaves and in a tree over newSize leaves. Above the returned node the two
// chains differ, because the larger tree hangs further leaves off the right
// edge.
//
// oldSize must be in [1, newSize) and must not be a power of two. When it is
// a power of two the old root is itself a node of the new tree and there is
// no divergence to locate.
func DivergencePoint(oldSize, newSize uint64) InternalIdx {
	cur := LeafIdx(oldSize - 1).Internal()
	for {
		oldParent := cur.Parent(oldSize)
		newParent := cur.Parent(newSize)
		if oldParent != newParent {
			return cur
		}
		cur = oldParent
	}
}
