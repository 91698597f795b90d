// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package block

import (
	"bytes"
	"encoding/hex"
	"reflect"
	"testing"

	"github.com/chainprim/chainprim/pkg/scale"
)

func TestStorageProofRoundTrip(t *testing.T) {
	tests := []StorageProof{
		EmptyStorageProof(),
		NewStorageProof([][]byte{{0x01}, {}, {0x02, 0x03}}),
	}

	for _, sp1 := range tests {
		data := scale.Encode(&sp1)

		var sp2 StorageProof
		if err := scale.Decode(data, &sp2); err != nil {
			t.Fatal(err)
		}
		if !sp1.Equal(sp2) {
			t.Fatalf("proofs differ after decoding %x", data)
		}
	}

	sp := NewStorageProof([][]byte{{0x01}, {0x02, 0x03}})
	if h := hex.EncodeToString(scale.Encode(&sp)); h != "080401080203" {
		t.Fatalf("proof encodes to %s", h)
	}
}

func TestStorageProofCopies(t *testing.T) {
	node := []byte{0x01, 0x02}
	sp := NewStorageProof([][]byte{node})

	node[0] = 0xff
	if sp.Nodes()[0][0] != 0x01 {
		t.Fatal("NewStorageProof does not copy")
	}

	sp.Nodes()[0][0] = 0xff
	if sp.Nodes()[0][0] != 0x01 {
		t.Fatal("Nodes does not copy")
	}
}

func TestStorageProofMerge(t *testing.T) {
	a := NewStorageProof([][]byte{{0x03}, {0x01}})
	b := NewStorageProof([][]byte{{0x02}, {0x01}})
	c := EmptyStorageProof()

	expected := [][]byte{{0x01}, {0x02}, {0x03}}

	for _, merged := range []StorageProof{
		MergeStorageProofs(a, b, c),
		MergeStorageProofs(c, b, a),
		b.Merge(a),
	} {
		if !reflect.DeepEqual(merged.Nodes(), expected) {
			t.Fatalf("merged nodes are %x", merged.Nodes())
		}
	}

	if !MergeStorageProofs().IsEmpty() || !c.Merge(c).IsEmpty() {
		t.Fatal("merging empty proofs is not empty")
	}
	if a.Len() != 2 || !bytes.Equal(a.Nodes()[0], []byte{0x03}) {
		t.Fatal("merging modified an argument")
	}
}
