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

// Package logtree implements an RFC 6962 style append-only Merkle tree over
// an in-order array layout, and defines the hashing contract shared by the
// tree and the provers and verifiers built on top of it.
//
// The proof subpackage generates and checks consistency and inclusion
// proofs against trees held in this package, the treemath subpackage
// provides the node addressing arithmetic, and the client subpackage tracks
// a verified view of a remote log.
package logtree
