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

package treemath

import (
	"fmt"
	"testing"
)

func TestInternal(t *testing.T) {
	for _, tc := range []struct {
		leaf LeafIdx
		want InternalIdx
	}{
		{leaf: 0, want: 0},
		{leaf: 1, want: 2},
		{leaf: 5, want: 10},
		{leaf: 1000, want: 2000},
	} {
		if got := tc.leaf.Internal(); got != tc.want {
			t.Errorf("Internal(%d): %d, want %d", tc.leaf, got, tc.want)
		}
		if got := tc.want.LeafIndex(); got != tc.leaf {
			t.Errorf("LeafIndex(%d): %d, want %d", tc.want, got, tc.leaf)
		}
	}
}

func TestNumNodes(t *testing.T) {
	for _, tc := range []struct {
		size uint64
		want uint64
	}{
		{size: 0, want: 0},
		{size: 1, want: 1},
		{size: 2, want: 3},
		{size: 3, want: 5},
		{size: 7, want: 13},
		{size: 8, want: 15},
		{size: 100, want: 199},
	} {
		if got := NumNodes(tc.size); got != tc.want {
			t.Errorf("NumNodes(%d): %d, want %d", tc.size, got, tc.want)
		}
	}
}

func TestRootIdx(t *testing.T) {
	for _, tc := range []struct {
		size uint64
		want InternalIdx
	}{
		{size: 1, want: 0},
		{size: 2, want: 1},
		{size: 3, want: 3},
		{size: 4, want: 3},
		{size: 5, want: 7},
		{size: 6, want: 7},
		{size: 7, want: 7},
		{size: 8, want: 7},
		{size: 9, want: 15},
		{size: 16, want: 15},
		{size: 17, want: 31},
		{size: 21, want: 31},
	} {
		if got := RootIdx(tc.size); got != tc.want {
			t.Errorf("RootIdx(%d): %d, want %d", tc.size, got, tc.want)
		}
	}
}

func TestLevel(t *testing.T) {
	for _, tc := range []struct {
		idx  InternalIdx
		want uint
	}{
		{idx: 0, want: 0},
		{idx: 1, want: 1},
		{idx: 2, want: 0},
		{idx: 3, want: 2},
		{idx: 4, want: 0},
		{idx: 5, want: 1},
		{idx: 7, want: 3},
		{idx: 11, want: 2},
		{idx: 12, want: 0},
		{idx: 13, want: 1},
		{idx: 15, want: 4},
	} {
		if got := tc.idx.Level(); got != tc.want {
			t.Errorf("Level(%d): %d, want %d", tc.idx, got, tc.want)
		}
	}
}

// parentTable lists the parent of every non-root node, keyed by tree size.
// The values are straightforward to read off a drawing of each tree.
var parentTable = map[uint64]map[InternalIdx]InternalIdx{
	5: {0: 1, 2: 1, 4: 5, 6: 5, 1: 3, 5: 3, 3: 7, 8: 7},
	7: {0: 1, 2: 1, 4: 5, 6: 5, 8: 9, 10: 9, 12: 11, 1: 3, 5: 3, 9: 11, 3: 7, 11: 7},
	8: {0: 1, 2: 1, 4: 5, 6: 5, 8: 9, 10: 9, 12: 13, 14: 13, 1: 3, 5: 3, 9: 11, 13: 11, 3: 7, 11: 7},
}

func TestParent(t *testing.T) {
	for size, parents := range parentTable {
		t.Run(fmt.Sprintf("size:%d", size), func(t *testing.T) {
			for idx, want := range parents {
				if got := idx.Parent(size); got != want {
					t.Errorf("Parent(%d, %d): %d, want %d", idx, size, got, want)
				}
			}
		})
	}
}

func TestParentOfRootPanics(t *testing.T) {
	for _, size := range []uint64{1, 2, 5, 8} {
		t.Run(fmt.Sprintf("size:%d", size), func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Parent(RootIdx(%d), %d) did not panic", size, size)
				}
			}()
			RootIdx(size).Parent(size)
		})
	}
}

func TestChildren(t *testing.T) {
	for _, tc := range []struct {
		idx       InternalIdx
		size      uint64
		wantLeft  InternalIdx
		wantRight InternalIdx
	}{
		{idx: 1, size: 2, wantLeft: 0, wantRight: 2},
		{idx: 3, size: 3, wantLeft: 1, wantRight: 4},
		{idx: 3, size: 4, wantLeft: 1, wantRight: 5},
		{idx: 3, size: 8, wantLeft: 1, wantRight: 5},
		{idx: 7, size: 5, wantLeft: 3, wantRight: 8},
		{idx: 7, size: 6, wantLeft: 3, wantRight: 9},
		{idx: 7, size: 7, wantLeft: 3, wantRight: 11},
		{idx: 7, size: 8, wantLeft: 3, wantRight: 11},
		{idx: 9, size: 6, wantLeft: 8, wantRight: 10},
		{idx: 11, size: 7, wantLeft: 9, wantRight: 12},
		{idx: 11, size: 8, wantLeft: 9, wantRight: 13},
	} {
		if got := tc.idx.LeftChild(); got != tc.wantLeft {
			t.Errorf("LeftChild(%d): %d, want %d", tc.idx, got, tc.wantLeft)
		}
		if got := tc.idx.RightChild(tc.size); got != tc.wantRight {
			t.Errorf("RightChild(%d, %d): %d, want %d", tc.idx, tc.size, got, tc.wantRight)
		}
	}
}

func TestSibling(t *testing.T) {
	siblings := map[uint64]map[InternalIdx]InternalIdx{
		5: {0: 2, 2: 0, 4: 6, 6: 4, 1: 5, 5: 1, 3: 8, 8: 3},
		7: {0: 2, 2: 0, 4: 6, 6: 4, 8: 10, 10: 8, 12: 9, 9: 12, 1: 5, 5: 1, 3: 11, 11: 3},
		8: {12: 14, 14: 12, 13: 9, 9: 13, 3: 11, 11: 3},
	}
	for size, table := range siblings {
		t.Run(fmt.Sprintf("size:%d", size), func(t *testing.T) {
			for idx, want := range table {
				if got := idx.Sibling(size); got != want {
					t.Errorf("Sibling(%d, %d): %d, want %d", idx, size, got, want)
				}
			}
		})
	}
}

func TestIsLeftChild(t *testing.T) {
	left := map[uint64]map[InternalIdx]bool{
		5: {0: true, 2: false, 4: true, 6: false, 1: true, 5: false, 3: true, 8: false},
		7: {0: true, 2: false, 8: true, 10: false, 12: false, 1: true, 5: false, 9: true, 3: true, 11: false},
	}
	for size, table := range left {
		t.Run(fmt.Sprintf("size:%d", size), func(t *testing.T) {
			for idx, want := range table {
				if got := idx.IsLeftChild(size); got != want {
					t.Errorf("IsLeftChild(%d, %d): %v, want %v", idx, size, got, want)
				}
			}
		})
	}
}

// TestParentSiblingAgree cross-checks the relation functions against each
// other over a range of sizes: every non-root node must be a child of its
// parent, on the side that IsLeftChild claims, with Sibling on the other.
func TestParentSiblingAgree(t *testing.T) {
	for size := uint64(1); size <= 64; size++ {
		root := RootIdx(size)
		for i := InternalIdx(0); uint64(i) < NumNodes(size); i++ {
			if i == root {
				continue
			}
			p := i.Parent(size)
			left, right := p.LeftChild(), p.RightChild(size)
			if i != left && i != right {
				t.Fatalf("size %d: node %d not a child of its parent %d (children %d, %d)", size, i, p, left, right)
			}
			if got, want := i.IsLeftChild(size), i == left; got != want {
				t.Errorf("size %d: IsLeftChild(%d): %v, want %v", size, i, got, want)
			}
			wantSib := left
			if i == left {
				wantSib = right
			}
			if got := i.Sibling(size); got != wantSib {
				t.Errorf("size %d: Sibling(%d): %d, want %d", size, i, got, wantSib)
			}
		}
	}
}

func TestDivergencePoint(t *testing.T) {
	for _, tc := range []struct {
		oldSize, newSize uint64
		want             InternalIdx
	}{
		{oldSize: 3, newSize: 4, want: 4},
		{oldSize: 3, newSize: 7, want: 4},
		{oldSize: 5, newSize: 6, want: 8},
		{oldSize: 5, newSize: 8, want: 8},
		{oldSize: 6, newSize: 7, want: 9},
		{oldSize: 6, newSize: 8, want: 9},
		{oldSize: 11, newSize: 13, want: 20},
		{oldSize: 12, newSize: 13, want: 19},
	} {
		if got := DivergencePoint(tc.oldSize, tc.newSize); got != tc.want {
			t.Errorf("DivergencePoint(%d, %d): %d, want %d", tc.oldSize, tc.newSize, got, tc.want)
		}
	}
}

// TestDivergencePointIsSharedAncestor checks that the divergence node lies
// on the ancestor chain of the old tree's last leaf under both sizes.
func TestDivergencePointIsSharedAncestor(t *testing.T) {
	for oldSize := uint64(3); oldSize <= 40; oldSize++ {
		if oldSize&(oldSize-1) == 0 {
			continue
		}
		for newSize := oldSize + 1; newSize <= 40; newSize++ {
			d := DivergencePoint(oldSize, newSize)
			// Climb from the anchor leaf under both sizes and check
			// that d appears on both chains.
			for _, size := range []uint64{oldSize, newSize} {
				cur := LeafIdx(oldSize - 1).Internal()
				for cur != d && cur != RootIdx(size) {
					cur = cur.Parent(size)
				}
				if cur != d {
					t.Fatalf("DivergencePoint(%d, %d) = %d is not an ancestor of leaf %d under size %d", oldSize, newSize, d, oldSize-1, size)
				}
			}
		}
	}
}
