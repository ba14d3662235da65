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

// Inclusion returns the proof that the leaf at the given index is contained
// in the current tree: the copath hashes from the leaf up to the root.
//
// index must be less than tree.Size().
func Inclusion(tree NodeReader, index uint64) (Proof, error) {
	size := tree.Size()
	if index >= size {
		return nil, fmt.Errorf("leaf index %d is beyond the current tree size %d", index, size)
	}
	if size >= maxSize {
		return nil, fmt.Errorf("tree size %d exceeds the supported maximum %d", size, maxSize)
	}

	p := Proof{}
	root := treemath.RootIdx(size)
	for cursor := treemath.LeafIdx(index).Internal(); cursor != root; cursor = cursor.Parent(size) {
		sib := cursor.Sibling(size)
		h, err := tree.NodeHash(sib)
		if err != nil {
			return nil, err
		}
		klog.V(2).Infof("inclusion %d@%d: sibling node %d", index, size, sib)
		p = append(p, h)
	}
	return p, nil
}
