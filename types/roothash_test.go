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

package types

import (
	"reflect"
	"testing"
)

func TestRootHashRoundTrip(t *testing.T) {
	for _, root := range []*RootHash{
		{Hash: []byte{}},
		{TreeSize: 1, Hash: []byte("foo")},
		{TreeSize: 365, Hash: make([]byte, 32)},
	} {
		b, err := root.MarshalBinary()
		if err != nil {
			t.Errorf("%v MarshalBinary(): %v", root, err)
			continue
		}
		var got RootHash
		if err := got.UnmarshalBinary(b); err != nil {
			t.Errorf("UnmarshalBinary(): %v", err)
			continue
		}
		if !reflect.DeepEqual(&got, root) {
			t.Errorf("serialize/parse round trip failed. got %#v, want %#v", got, root)
		}
	}
}

func TestUnmarshalRootHash(t *testing.T) {
	for _, tc := range []struct {
		rootBytes []byte
		wantErr   bool
	}{
		{rootBytes: MustMarshalRootHash(&RootHash{Hash: []byte{}})},
		{
			rootBytes: func() []byte {
				b := MustMarshalRootHash(&RootHash{Hash: []byte{}})
				b[0] = 1 // Corrupt the version tag.
				return b
			}(),
			wantErr: true,
		},
		{
			rootBytes: func() []byte {
				// Correct prefix, but trailing junk.
				b := MustMarshalRootHash(&RootHash{Hash: []byte{}})
				return append(b, 5, 5, 5, 5)
			}(),
			wantErr: true,
		},
		// Incorrect type.
		{rootBytes: []byte{0}, wantErr: true},
		{rootBytes: []byte("foo"), wantErr: true},
		{rootBytes: nil, wantErr: true},
	} {
		var got RootHash
		err := got.UnmarshalBinary(tc.rootBytes)
		if gotErr, want := err != nil, tc.wantErr; gotErr != want {
			t.Errorf("UnmarshalBinary(%x): %v, wantErr %v", tc.rootBytes, err, want)
		}
	}

	// Unmarshaling to a nil receiver must throw an error.
	var nilPtr *RootHash
	if err := nilPtr.UnmarshalBinary(MustMarshalRootHash(&RootHash{Hash: []byte{}})); err == nil {
		t.Errorf("nil.UnmarshalBinary(): %v, want err", err)
	}
}
