// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package block

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/chainprim/chainprim/pkg/scale"
)

// StorageProof is an ordered collection of encoded trie nodes, proving the
// values of some storage keys against a state root.
type StorageProof struct {
	nodes [][]byte
}

// NewStorageProof creates a StorageProof of the given nodes, copying them.
func NewStorageProof(nodes [][]byte) StorageProof {
	return StorageProof{nodes: cloneNodes(nodes)}
}

// EmptyStorageProof returns a StorageProof without any nodes.
func EmptyStorageProof() StorageProof {
	return StorageProof{}
}

func cloneNodes(nodes [][]byte) [][]byte {
	if len(nodes) == 0 {
		return nil
	}

	clone := make([][]byte, len(nodes))
	for i, node := range nodes {
		clone[i] = cloneBytes(node)
	}
	return clone
}

// IsEmpty checks if this StorageProof has no nodes.
func (sp StorageProof) IsEmpty() bool {
	return len(sp.nodes) == 0
}

// Len returns the number of nodes.
func (sp StorageProof) Len() int {
	return len(sp.nodes)
}

// Nodes returns a copy of all nodes, in order.
func (sp StorageProof) Nodes() [][]byte {
	return cloneNodes(sp.nodes)
}

// MergeStorageProofs unites several proofs. The result's nodes are sorted and
// free of duplicates, so it does not depend on the order of its arguments.
func MergeStorageProofs(proofs ...StorageProof) StorageProof {
	var nodes [][]byte
	for _, proof := range proofs {
		nodes = append(nodes, proof.nodes...)
	}
	if len(nodes) == 0 {
		return StorageProof{}
	}

	sort.Slice(nodes, func(i, j int) bool {
		return bytes.Compare(nodes[i], nodes[j]) < 0
	})

	merged := [][]byte{nodes[0]}
	for _, node := range nodes[1:] {
		if !bytes.Equal(node, merged[len(merged)-1]) {
			merged = append(merged, node)
		}
	}
	return NewStorageProof(merged)
}

// Merge unites this StorageProof with others, see MergeStorageProofs.
func (sp StorageProof) Merge(others ...StorageProof) StorageProof {
	return MergeStorageProofs(append([]StorageProof{sp}, others...)...)
}

// Equal checks if both proofs hold equal nodes in the same order.
func (sp StorageProof) Equal(other StorageProof) bool {
	if len(sp.nodes) != len(other.nodes) {
		return false
	}
	for i := range sp.nodes {
		if !bytes.Equal(sp.nodes[i], other.nodes[i]) {
			return false
		}
	}
	return true
}

// MarshalScale writes the compact node count followed by each length
// prefixed node.
func (sp *StorageProof) MarshalScale(w io.Writer) error {
	if err := scale.WriteSequenceLength(len(sp.nodes), w); err != nil {
		return err
	}
	for i, node := range sp.nodes {
		if err := scale.WriteByteSequence(node, w); err != nil {
			return fmt.Errorf("marshalling node %d failed: %w", i, err)
		}
	}
	return nil
}

// UnmarshalScale reads a StorageProof written by MarshalScale.
func (sp *StorageProof) UnmarshalScale(r io.Reader) error {
	n, err := scale.ReadSequenceLength(r, 1)
	if err != nil {
		return err
	}

	sp.nodes = nil
	if n > 0 {
		sp.nodes = make([][]byte, 0, scale.SequenceCapacity(n))
	}
	for i := 0; i < n; i++ {
		node, err := scale.ReadByteSequence(r)
		if err != nil {
			return fmt.Errorf("unmarshalling node %d failed: %w", i, err)
		}
		sp.nodes = append(sp.nodes, node)
	}
	return nil
}

// MarshalJSON writes the list of hexadecimal nodes.
func (sp StorageProof) MarshalJSON() ([]byte, error) {
	nodes := make([]string, len(sp.nodes))
	for i, node := range sp.nodes {
		nodes[i] = "0x" + hex.EncodeToString(node)
	}
	return json.Marshal(nodes)
}
