// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package scale

import (
	"bytes"
	"errors"
	"testing"
	"testing/iotest"
)

func TestByteSequence(t *testing.T) {
	tests := [][]byte{
		{},
		{0x23},
		[]byte("hello world"),
		bytes.Repeat([]byte{0xAA}, 70),
		bytes.Repeat([]byte{0x42}, 3*readChunkSize+17),
	}

	for _, test := range tests {
		buff := new(bytes.Buffer)
		if err := WriteByteSequence(test, buff); err != nil {
			t.Fatal(err)
		}

		if l := buff.Len(); l != CompactLen(uint64(len(test)))+len(test) {
			t.Fatalf("encoding of %d bytes has length %d", len(test), l)
		}

		if data, err := ReadByteSequence(buff); err != nil {
			t.Fatal(err)
		} else if !bytes.Equal(data, test) {
			t.Fatalf("byte sequence changed after decoding: %x", data)
		} else if data == nil {
			t.Fatal("decoded byte sequence is nil")
		}
	}
}

func TestByteSequenceInvalidLength(t *testing.T) {
	data := append(AppendCompact(nil, 10), 1, 2, 3)

	// A bytes.Reader knows its remaining length.
	if _, err := ReadByteSequence(bytes.NewReader(data)); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}

	// A plain stream is only detected after reading.
	if _, err := ReadByteSequence(iotest.OneByteReader(bytes.NewReader(data))); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}

	// A huge prefix must not be allocated upfront.
	huge := append(AppendCompact(nil, 1<<31), 0xFF)
	if _, err := ReadByteSequence(iotest.OneByteReader(bytes.NewReader(huge))); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}

	// Missing length prefix.
	if _, err := ReadByteSequence(bytes.NewReader(nil)); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestSequenceLength(t *testing.T) {
	buff := new(bytes.Buffer)
	if err := WriteSequenceLength(3, buff); err != nil {
		t.Fatal(err)
	}
	buff.Write(make([]byte, 3*32))

	if n, err := ReadSequenceLength(bytes.NewReader(buff.Bytes()), 32); err != nil {
		t.Fatal(err)
	} else if n != 3 {
		t.Fatalf("sequence length is %d", n)
	}

	if _, err := ReadSequenceLength(bytes.NewReader(buff.Bytes()), 33); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
}

func TestOptionFlag(t *testing.T) {
	for _, present := range []bool{true, false} {
		buff := new(bytes.Buffer)
		if err := WriteOptionFlag(present, buff); err != nil {
			t.Fatal(err)
		}

		if p, err := ReadOptionFlag(buff); err != nil {
			t.Fatal(err)
		} else if p != present {
			t.Fatalf("option flag changed from %t to %t", present, p)
		}
	}

	if _, err := ReadOptionFlag(bytes.NewReader([]byte{0x02})); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if _, err := ReadOptionFlag(bytes.NewReader(nil)); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestFixedWidth(t *testing.T) {
	buff := new(bytes.Buffer)
	if err := WriteUint32(0x01020304, buff); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buff.Bytes(), []byte{0x04, 0x03, 0x02, 0x01}) {
		t.Fatalf("uint32 is not little endian: %x", buff.Bytes())
	}
	if n, err := ReadUint32(buff); err != nil {
		t.Fatal(err)
	} else if n != 0x01020304 {
		t.Fatalf("decoded %x", n)
	}

	var dst [4]byte
	if err := ReadFixed(bytes.NewReader([]byte{1, 2}), dst[:]); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if _, err := ReadUint32(bytes.NewReader([]byte{1})); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}
