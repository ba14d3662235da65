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

// Package client tracks the verified view of an append-only log. A Client
// holds the most recent root it has verified and only advances that root
// when a consistency proof connects it to the candidate root.
package client

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/btree"
	"github.com/google/logtree"
	"github.com/google/logtree/monitoring"
	"github.com/google/logtree/proof"
	"github.com/google/logtree/types"
	"github.com/google/logtree/util/clock"
	"k8s.io/klog/v2"
)

// degree is the number of children per btree node in the snapshot history.
const degree = 8

const (
	statusLabel    = "status"
	statusVerified = "verified"
	statusRejected = "rejected"
)

var (
	once            sync.Once
	rootUpdates     monitoring.Counter
	inclusionChecks monitoring.Counter
	trustedSize     monitoring.Gauge
	proofHashes     monitoring.Histogram
	updateLatency   monitoring.Histogram
)

func createMetrics(mf monitoring.MetricFactory) {
	if mf == nil {
		mf = monitoring.InertMetricFactory{}
	}
	rootUpdates = mf.NewCounter("root_updates", "Number of attempted root updates by outcome", statusLabel)
	inclusionChecks = mf.NewCounter("inclusion_checks", "Number of leaf inclusion checks by outcome", statusLabel)
	trustedSize = mf.NewGauge("trusted_tree_size", "Size of the current trusted tree snapshot")
	proofHashes = mf.NewHistogramWithBuckets("consistency_proof_hashes", "Number of hashes in verified consistency proofs", monitoring.ExpBuckets(1, 2, 8))
	updateLatency = mf.NewHistogram("root_update_latency", "Latency of root updates in seconds")
}

// kv is a simple key->value type for btree.
type kv struct {
	k string
	v interface{}
}

// Less than by k's string key.
func (a kv) Less(b btree.Item) bool {
	return strings.Compare(a.k, b.(*kv).k) < 0
}

func rootKey(size uint64) string {
	return fmt.Sprintf("/verified/%020d", size)
}

// verifiedRoot pairs a root with the time the client verified it.
type verifiedRoot struct {
	root   types.RootHash
	seenAt time.Time
}

// Client tracks the verified root history of a single append-only log. The
// zero trusted root means no root has been verified yet. All methods are
// safe for concurrent use.
type Client struct {
	hasher logtree.LogHasher
	v      proof.Verifier
	ts     clock.TimeSource

	mu      sync.Mutex
	trusted types.RootHash
	history *btree.BTree
}

// New returns a client with no trusted root. Metrics are registered on the
// first call using the given factory; a nil factory discards all metrics.
func New(hasher logtree.LogHasher, mf monitoring.MetricFactory) *Client {
	once.Do(func() { createMetrics(mf) })
	return &Client{
		hasher:  hasher,
		v:       proof.NewVerifier(hasher),
		ts:      clock.System,
		history: btree.New(degree),
	}
}

// TrustedRoot returns the most recently verified root. The returned root has
// TreeSize zero until the first successful VerifyRoot call.
func (c *Client) TrustedRoot() types.RootHash {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trusted
}

// VerifyRoot checks that newRoot is consistent with the current trusted root
// and advances the trusted root on success. The consistency argument is the
// marshaled proof from the log; it is ignored for the first root, which is
// trusted implicitly.
func (c *Client) VerifyRoot(newRoot types.RootHash, consistency []byte) error {
	start := c.ts.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	// Implicitly trust the first root we get.
	if c.trusted.TreeSize != 0 {
		if err := c.v.VerifyConsistency(c.trusted, newRoot, consistency); err != nil {
			rootUpdates.Inc(statusRejected)
			return fmt.Errorf("client: failed to verify root at size %d against trusted root at size %d: %w", newRoot.TreeSize, c.trusted.TreeSize, err)
		}
	}

	klog.V(2).Infof("client: advancing trusted root %d -> %d (%d proof bytes)", c.trusted.TreeSize, newRoot.TreeSize, len(consistency))
	c.trusted = newRoot
	c.history.ReplaceOrInsert(&kv{k: rootKey(newRoot.TreeSize), v: verifiedRoot{root: newRoot, seenAt: start}})

	rootUpdates.Inc(statusVerified)
	trustedSize.Set(float64(newRoot.TreeSize))
	proofHashes.Observe(float64(len(consistency) / c.hasher.Size()))
	updateLatency.Observe(clock.SecondsSince(c.ts, start))
	return nil
}

// VerifyInclusion checks that the given leaf content is included at index
// under the current trusted root.
func (c *Client) VerifyInclusion(leaf []byte, index uint64, inclusion []byte) error {
	c.mu.Lock()
	trusted := c.trusted
	c.mu.Unlock()

	if trusted.TreeSize == 0 {
		inclusionChecks.Inc(statusRejected)
		return fmt.Errorf("client: no trusted root to verify inclusion against")
	}
	if err := c.v.VerifyInclusion(leaf, index, trusted, inclusion); err != nil {
		inclusionChecks.Inc(statusRejected)
		return fmt.Errorf("client: failed to verify inclusion of leaf %d in root at size %d: %w", index, trusted.TreeSize, err)
	}
	inclusionChecks.Inc(statusVerified)
	return nil
}

// VerifiedRootAt returns the largest verified root whose tree size does not
// exceed size, along with the time it was verified, and reports whether one
// exists.
func (c *Client) VerifiedRootAt(size uint64) (types.RootHash, time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var found verifiedRoot
	ok := false
	c.history.DescendLessOrEqual(&kv{k: rootKey(size)}, func(i btree.Item) bool {
		found = i.(*kv).v.(verifiedRoot)
		ok = true
		return false
	})
	return found.root, found.seenAt, ok
}
