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

// Package proof generates and verifies consistency and inclusion proofs for
// append-only Merkle trees.
//
// A proof is an ordered sequence of node hashes. On the wire it is the raw
// concatenation of those hashes with no framing; the tree sizes that fix
// the number of hashes travel out of band, typically inside signed
// types.RootHash snapshots.
package proof

import (
	"errors"
	"fmt"

	"github.com/google/logtree/treemath"
)

// maxSize bounds the tree sizes accepted by generation and verification so
// that node index arithmetic cannot overflow. Sizes at or beyond the bound
// only occur in corrupt or hostile inputs.
const maxSize = uint64(1) << 62

// ErrMalformedProof is returned when the wire form of a proof cannot be
// split into whole hashes.
var ErrMalformedProof = errors.New("malformed proof")

// NodeReader provides read access to the node hashes of a Merkle tree. The
// proof generators only read through it and never modify the tree. The tree
// must not change for the duration of a call: generating proofs concurrently
// with appends is not supported.
type NodeReader interface {
	// Size returns the current number of leaves.
	Size() uint64
	// NodeHash returns the hash of the node at the given index. The index
	// is always valid at the current size.
	NodeHash(id treemath.InternalIdx) ([]byte, error)
}

// Proof is a decoded proof: node hashes in walk order. Consistency and
// inclusion proofs share this form and its wire encoding.
type Proof [][]byte

// Marshal returns the wire form of the proof, the concatenation of its
// hashes.
func (p Proof) Marshal() []byte {
	var n int
	for _, h := range p {
		n += len(h)
	}
	raw := make([]byte, 0, n)
	for _, h := range p {
		raw = append(raw, h...)
	}
	return raw
}

// Unmarshal splits the wire form of a proof into hashes of the given size.
// It returns ErrMalformedProof if the length of raw is not a multiple of
// size.
func Unmarshal(raw []byte, size int) (Proof, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid hash size %d", size)
	}
	if len(raw)%size != 0 {
		return nil, fmt.Errorf("%w: %d bytes cannot hold whole %d byte hashes", ErrMalformedProof, len(raw), size)
	}
	p := make(Proof, 0, len(raw)/size)
	for off := 0; off < len(raw); off += size {
		p = append(p, raw[off:off+size])
	}
	return p, nil
}

// isPerfect reports whether a tree over size leaves is perfect, that is,
// size is a power of two. The root of a perfect tree remains a node of
// every larger tree.
func isPerfect(size uint64) bool {
	return size != 0 && size&(size-1) == 0
}
