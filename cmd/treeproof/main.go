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

// treeproof builds an in-memory Merkle tree from a file of leaf entries and
// prints the root or a proof for it. Generated proofs are verified before
// being printed.
package main

import (
	"bufio"
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/google/logtree"
	"github.com/google/logtree/cmd"
	"github.com/google/logtree/proof"
	"github.com/google/logtree/rfc6962"
	"github.com/google/logtree/types"
	"k8s.io/klog/v2"
)

var (
	leaves     = flag.String("leaves", "", "File with one leaf entry per line, or '-' for stdin")
	hexLeaves  = flag.Bool("hex", false, "Treat each leaf line as hex encoded bytes")
	op         = flag.String("op", "root", "Operation to run: root, inclusion, consistency or selfcheck")
	leafIndex  = flag.Uint64("leaf_index", 0, "Leaf index, for inclusion proofs")
	oldSize    = flag.Uint64("old_size", 0, "Old tree size, for consistency proofs")
	treeSize   = flag.Uint64("tree_size", 0, "Number of leaves to use; 0 means all of them")
	configFile = flag.String("config", "", "Config file containing flags, file contents can be overridden by command line flags")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	if *configFile != "" {
		if err := cmd.ParseFlagFile(*configFile); err != nil {
			klog.Exitf("Failed to load flags from config file %q: %s", *configFile, err)
		}
	}

	tree, entries, err := buildTree(*leaves, *treeSize, *hexLeaves)
	if err != nil {
		klog.Exitf("Failed to build tree: %v", err)
	}
	root := tree.Root()
	fmt.Printf("tree size %d\nroot hash %x\n", root.TreeSize, root.Hash)

	verifier := proof.NewVerifier(rfc6962.DefaultHasher)
	switch *op {
	case "root":
		fmt.Printf("marshaled root %x\n", types.MustMarshalRootHash(&root))
	case "inclusion":
		p, err := proof.Inclusion(tree, *leafIndex)
		if err != nil {
			klog.Exitf("Failed to generate inclusion proof: %v", err)
		}
		if err := verifier.VerifyInclusion(entries[*leafIndex], *leafIndex, root, p.Marshal()); err != nil {
			klog.Exitf("Generated inclusion proof failed verification: %v", err)
		}
		fmt.Printf("inclusion proof for leaf %d at tree size %d\n", *leafIndex, root.TreeSize)
		printProof(p)
	case "consistency":
		p, err := proof.Consistency(tree, *oldSize)
		if err != nil {
			klog.Exitf("Failed to generate consistency proof: %v", err)
		}
		if err := verifier.VerifyConsistency(tree.RootAt(*oldSize), root, p.Marshal()); err != nil {
			klog.Exitf("Generated consistency proof failed verification: %v", err)
		}
		fmt.Printf("consistency proof for tree size %d -> %d\n", *oldSize, root.TreeSize)
		printProof(p)
	case "selfcheck":
		if err := tree.SelfCheck(); err != nil {
			klog.Exitf("Tree failed self check: %v", err)
		}
		fmt.Println("self check OK")
	default:
		klog.Exitf("Unknown operation %q", *op)
	}
}

// buildTree reads leaf entries and appends up to limit of them to a new
// tree. The raw entries are returned alongside the tree so proofs over leaf
// content can be verified.
func buildTree(path string, limit uint64, hexEncoded bool) (*logtree.Tree, [][]byte, error) {
	if path == "" {
		return nil, nil, fmt.Errorf("missing required -leaves flag")
	}
	f := os.Stdin
	if path != "-" {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		defer func() {
			if err := f.Close(); err != nil {
				klog.Errorf("Close(): %v", err)
			}
		}()
	}

	tree := logtree.New(rfc6962.DefaultHasher)
	var entries [][]byte
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if limit > 0 && tree.Size() >= limit {
			break
		}
		entry := append([]byte{}, scanner.Bytes()...)
		if hexEncoded {
			var err error
			if entry, err = hex.DecodeString(string(entry)); err != nil {
				return nil, nil, fmt.Errorf("leaf %d: %v", tree.Size(), err)
			}
		}
		entries = append(entries, entry)
		tree.AppendData(entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return tree, entries, nil
}

func printProof(p proof.Proof) {
	fmt.Printf("proof hashes: %d\n", len(p))
	for i, h := range p {
		fmt.Printf("%3d: %x\n", i, h)
	}
	fmt.Printf("marshaled proof %x\n", p.Marshal())
}
