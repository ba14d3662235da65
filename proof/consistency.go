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
	"fmt"

	"k8s.io/klog/v2"

	"github.com/google/logtree/treemath"
)

// Consistency returns the proof that the first oldSize leaves of the given
// tree reproduce the root the tree had at that size, so the current tree is
// a pure append extension of the old one.
//
// When the old size is a power of two its root is still a node of the
// current tree, and the proof is simply that node's copath up to the current
// root. Otherwise the proof starts with one anchor hash: the last ancestor
// of the old tree's final leaf that both trees share, which fixes where the
// old root sits inside the current tree; the copath walk starts there.
//
// oldSize must be in [1, tree.Size()].
func Consistency(tree NodeReader, oldSize uint64) (Proof, error) {
	newSize := tree.Size()
	if oldSize == 0 {
		return nil, fmt.Errorf("consistency proofs are undefined for the empty tree")
	}
	if oldSize > newSize {
		return nil, fmt.Errorf("old size %d is beyond the current tree size %d", oldSize, newSize)
	}
	if newSize >= maxSize {
		return nil, fmt.Errorf("tree size %d exceeds the supported maximum %d", newSize, maxSize)
	}
	if oldSize == newSize {
		// A tree is trivially consistent with itself.
		return Proof{}, nil
	}

	p := Proof{}
	cursor := treemath.RootIdx(oldSize)
	if !isPerfect(oldSize) {
		cursor = treemath.DivergencePoint(oldSize, newSize)
		anchor, err := tree.NodeHash(cursor)
		if err != nil {
			return nil, err
		}
		klog.V(2).Infof("consistency %d->%d: anchor node %d", oldSize, newSize, cursor)
		p = append(p, anchor)
	}

	root := treemath.RootIdx(newSize)
	for cursor != root {
		sib := cursor.Sibling(newSize)
		h, err := tree.NodeHash(sib)
		if err != nil {
			return nil, err
		}
		klog.V(2).Infof("consistency %d->%d: sibling node %d", oldSize, newSize, sib)
		p = append(p, h)
		cursor = cursor.Parent(newSize)
	}
	return p, nil
}
