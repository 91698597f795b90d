// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package scale

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"testing"
)

// pair is a minimal composite value: a compact number followed by a byte sequence.
type pair struct {
	Number uint32
	Data   []byte
}

func (p *pair) MarshalScale(w io.Writer) error {
	if err := WriteCompact(uint64(p.Number), w); err != nil {
		return err
	}
	return WriteByteSequence(p.Data, w)
}

func (p *pair) UnmarshalScale(r io.Reader) (err error) {
	if p.Number, err = ReadCompactUint32(r); err != nil {
		return
	}
	p.Data, err = ReadByteSequence(r)
	return
}

func TestEncodeDecode(t *testing.T) {
	p1 := &pair{Number: 300, Data: []byte("foo")}

	data := Encode(p1)
	if !bytes.Equal(data, []byte{0xb1, 0x04, 0x0c, 'f', 'o', 'o'}) {
		t.Fatalf("unexpected encoding %x", data)
	}
	if l := EncodedLen(p1); l != len(data) {
		t.Fatalf("EncodedLen is %d, encoding has %d bytes", l, len(data))
	}

	p2 := new(pair)
	if err := Decode(data, p2); err != nil {
		t.Fatal(err)
	} else if !reflect.DeepEqual(p1, p2) {
		t.Fatalf("value changed: %v != %v", p1, p2)
	}

	if !bytes.Equal(data, Encode(p2)) {
		t.Fatal("encoding is not deterministic")
	}
}

func TestDecodeTrailingBytes(t *testing.T) {
	data := append(Encode(&pair{Number: 1}), 0x00)

	if err := Decode(data, new(pair)); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestMarshalStream(t *testing.T) {
	buff := new(bytes.Buffer)
	values := []*pair{{1, []byte{1}}, {2, nil}, {70000, []byte("bar")}}

	for _, v := range values {
		if err := Marshal(v, buff); err != nil {
			t.Fatal(err)
		}
	}

	for _, v := range values {
		p := new(pair)
		if err := Unmarshal(p, buff); err != nil {
			t.Fatal(err)
		} else if p.Number != v.Number || !bytes.Equal(p.Data, v.Data) {
			t.Fatalf("value changed: %v != %v", v, p)
		}
	}

	if err := Unmarshal(new(pair), buff); !IsDecodeError(err) {
		t.Fatalf("expected a decode error, got %v", err)
	}
}
