// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package block

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/chainprim/chainprim/pkg/scale"
)

func TestBlockRoundTrip(t *testing.T) {
	b1 := NewBlock(Header{}, []Extrinsic{{0x01, 0x02, 0x03}})

	data := scale.Encode(&b1)
	expected := append(make([]byte, 98), 0x04, 0x0c, 0x01, 0x02, 0x03)
	if !bytes.Equal(data, expected) {
		t.Fatalf("block encodes to %x", data)
	}

	var b2 Block
	if err := scale.Decode(data, &b2); err != nil {
		t.Fatal(err)
	}
	if !b1.Equal(b2) {
		t.Fatalf("blocks differ: %v, %v", b1, b2)
	}
	if b1.Hash() != b2.Header.Hash() {
		t.Fatal("block hash differs from header hash")
	}
}

func TestBlockHashIgnoresExtrinsics(t *testing.T) {
	header := sampleHeader()
	b1 := NewBlock(header, nil)
	b2 := NewBlock(header, []Extrinsic{{0xff}, {}})

	if b1.Hash() != b2.Hash() {
		t.Fatal("extrinsics influence the block hash")
	}
	if b1.Equal(b2) {
		t.Fatal("blocks with different extrinsics are equal")
	}
}

func TestBlockStream(t *testing.T) {
	blocks := []Block{
		NewBlock(Header{}, nil),
		NewBlock(sampleHeader(), []Extrinsic{{}, {0x23}, bytes.Repeat([]byte{0x42}, 1<<16)}),
	}

	buff := new(bytes.Buffer)
	for i := range blocks {
		if err := scale.Marshal(&blocks[i], buff); err != nil {
			t.Fatal(err)
		}
	}

	for i := range blocks {
		var b Block
		if err := scale.Unmarshal(&b, buff); err != nil {
			t.Fatal(err)
		}
		if !b.Equal(blocks[i]) {
			t.Fatalf("block %d differs", i)
		}
	}

	if buff.Len() != 0 {
		t.Fatalf("%d bytes left", buff.Len())
	}
}

func TestBlockDecodeErrors(t *testing.T) {
	header := make([]byte, 98)

	tests := []struct {
		name string
		data []byte
		err  error
	}{
		{"no extrinsics count", header, scale.ErrTruncated},
		{"too many extrinsics", append(append([]byte{}, header...), 0x08, 0x00), scale.ErrInvalidLength},
		{"short extrinsic", append(append([]byte{}, header...), 0x04, 0x0c, 0x01), scale.ErrInvalidLength},
	}

	for _, test := range tests {
		var b Block
		if err := scale.Decode(test.data, &b); !errors.Is(err, test.err) {
			t.Fatalf("%s: expected %v, got %v", test.name, test.err, err)
		}
	}
}

func TestBlockJSON(t *testing.T) {
	b := NewBlock(sampleHeader(), []Extrinsic{{0xbe, 0xef}})

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}

	var fields struct {
		Header struct {
			ParentHash string `json:"parentHash"`
			Number     uint32 `json:"number"`
			Digest     struct {
				Logs []map[string]interface{} `json:"logs"`
			} `json:"digest"`
		} `json:"header"`
		Extrinsics []string `json:"extrinsics"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatal(err)
	}

	if fields.Header.ParentHash != "0x"+hashOf(1).String() || fields.Header.Number != 42 {
		t.Fatalf("unexpected header JSON: %s", data)
	}
	if len(fields.Header.Digest.Logs) != 3 || fields.Header.Digest.Logs[0]["type"] != "PreRuntime" {
		t.Fatalf("unexpected digest JSON: %s", data)
	}
	if len(fields.Extrinsics) != 1 || fields.Extrinsics[0] != "0xbeef" {
		t.Fatalf("unexpected extrinsics JSON: %s", data)
	}
}
