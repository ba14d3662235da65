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

// Package types defines the value types exchanged between a log and its
// verifiers, and their canonical serializations.
package types

import (
	"encoding/binary"
	"fmt"

	"github.com/google/certificate-transparency-go/tls"
)

// rootHashFormatV1 tags the only currently defined serialization.
const rootHashFormatV1 = 1

// RootHash identifies one snapshot of an append-only log tree: the number of
// leaves it covers and the root digest over them.
//
// Its canonical binary form is the TLS serialization (RFC 5246 section 4
// notation) of:
//
//	enum { v1(1), (65535) } Version;
//	struct {
//	  Version version;
//	  select(version) {
//	    case v1:
//	      uint64 tree_size;
//	      opaque root_hash<0..128>;
//	  }
//	} RootHash;
type RootHash struct {
	TreeSize uint64
	Hash     []byte `tls:"minlen:0,maxlen:128"`
}

// rootHash is the versioned wire container for RootHash.
type rootHash struct {
	Version tls.Enum  `tls:"size:2"`
	V1      *RootHash `tls:"selector:Version,val:1"`
}

// MarshalBinary returns the canonical TLS serialization of the root hash.
func (r *RootHash) MarshalBinary() ([]byte, error) {
	return tls.Marshal(rootHash{
		Version: rootHashFormatV1,
		V1:      r,
	})
}

// UnmarshalBinary verifies that b is a TLS serialized RootHash with the v1
// tag and populates the caller with the deserialized fields.
func (r *RootHash) UnmarshalBinary(b []byte) error {
	if r == nil {
		return fmt.Errorf("nil root hash")
	}
	if len(b) < 3 {
		return fmt.Errorf("root hash bytes too short")
	}
	if version := binary.BigEndian.Uint16(b); version != rootHashFormatV1 {
		return fmt.Errorf("invalid RootHash.Version: %v, want %v", version, rootHashFormatV1)
	}

	var container rootHash
	rest, err := tls.Unmarshal(b, &container)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("%d trailing bytes after RootHash", len(rest))
	}

	*r = *container.V1
	return nil
}

// MustMarshalRootHash returns the canonical TLS serialization of the root
// hash, and panics if serialization fails.
func MustMarshalRootHash(r *RootHash) []byte {
	b, err := r.MarshalBinary()
	if err != nil {
		panic(err)
	}
	return b
}
