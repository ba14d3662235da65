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

// LogHasher provides the hash functions needed to compute leaf hashes and
// internal nodes of a log. Implementations must separate the leaf and node
// domains so that no leaf hash can collide with an internal node hash.
type LogHasher interface {
	// EmptyRoot returns the root hash of an empty tree.
	EmptyRoot() []byte
	// HashLeaf computes the hash of a leaf from its content.
	HashLeaf(leaf []byte) []byte
	// HashChildren computes an internal node hash from its two children.
	HashChildren(l, r []byte) []byte
	// Size returns the number of bytes in digests produced by this hasher.
	Size() int
}
