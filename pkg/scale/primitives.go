// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package scale

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// readChunkSize bounds each allocation while reading a length-prefixed payload.
// A hostile length prefix cannot reserve more memory than the stream delivers.
const readChunkSize = 64 * 1024

// maxPreallocItems bounds the capacity reserved for a decoded sequence.
const maxPreallocItems = 1024

// lenReader is implemented by readers knowing their remaining length, e.g.,
// bytes.Reader and bytes.Buffer.
type lenReader interface {
	Len() int
}

// checkRemaining fails with ErrInvalidLength if r knows that less than need
// bytes are left.
func checkRemaining(r io.Reader, need uint64, what string) error {
	if lr, ok := r.(lenReader); ok && need > uint64(lr.Len()) {
		return fmt.Errorf("%s announces %d bytes, only %d left: %w", what, need, lr.Len(), ErrInvalidLength)
	}
	return nil
}

// SequenceCapacity returns a capacity to preallocate for a decoded sequence of n items.
func SequenceCapacity(n int) int {
	if n > maxPreallocItems {
		return maxPreallocItems
	}
	return n
}

// WriteFixed writes a fixed-size field without any prefix.
func WriteFixed(data []byte, w io.Writer) error {
	_, err := w.Write(data)
	return err
}

// ReadFixed fills dst completely from r.
func ReadFixed(r io.Reader, dst []byte) error {
	if _, err := io.ReadFull(r, dst); err != nil {
		return truncated(err, fmt.Sprintf("%d byte field", len(dst)))
	}
	return nil
}

// WriteUint8 writes a single byte.
func WriteUint8(n uint8, w io.Writer) error {
	_, err := w.Write([]byte{n})
	return err
}

// ReadUint8 reads a single byte.
func ReadUint8(r io.Reader) (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, truncated(err, "uint8")
	}
	return buf[0], nil
}

// WriteUint32 writes a fixed-width little endian uint32.
func WriteUint32(n uint32, w io.Writer) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], n)
	_, err := w.Write(buf[:])
	return err
}

// ReadUint32 reads a fixed-width little endian uint32.
func ReadUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, truncated(err, "uint32")
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// WriteOptionFlag writes the presence flag of an optional value.
func WriteOptionFlag(present bool, w io.Writer) error {
	if present {
		return WriteUint8(1, w)
	}
	return WriteUint8(0, w)
}

// ReadOptionFlag reads the presence flag of an optional value. Only 0x00 and
// 0x01 are accepted.
func ReadOptionFlag(r io.Reader) (bool, error) {
	flag, err := ReadUint8(r)
	if err != nil {
		return false, err
	}

	switch flag {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("option flag 0x%02x: %w", flag, ErrMalformed)
	}
}

// WriteSequenceLength writes the compact item count of a sequence.
func WriteSequenceLength(n int, w io.Writer) error {
	return WriteCompact(uint64(n), w)
}

// ReadSequenceLength reads the compact item count of a sequence. minItemSize is
// the smallest possible encoding of one item and is used to reject counts
// which cannot fit into the remaining input.
func ReadSequenceLength(r io.Reader, minItemSize int) (int, error) {
	n, err := ReadCompactUint32(r)
	if err != nil {
		return 0, err
	}
	if err := checkRemaining(r, uint64(n)*uint64(minItemSize), "sequence length"); err != nil {
		return 0, err
	}
	return int(n), nil
}

// WriteByteSequence writes a compact length prefix followed by the raw bytes.
func WriteByteSequence(data []byte, w io.Writer) error {
	if err := WriteCompact(uint64(len(data)), w); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

// ReadByteSequence reads a compact length prefix and the announced bytes. A
// stream ending before the announced length is reached fails with
// ErrInvalidLength. The result is never nil.
func ReadByteSequence(r io.Reader) ([]byte, error) {
	n, err := ReadCompactUint32(r)
	if err != nil {
		return nil, err
	}
	if err := checkRemaining(r, uint64(n), "byte sequence"); err != nil {
		return nil, err
	}

	data := make([]byte, 0, SequenceCapacity(int(n)))
	for uint32(len(data)) < n {
		chunk := n - uint32(len(data))
		if chunk > readChunkSize {
			chunk = readChunkSize
		}

		start := len(data)
		data = append(data, make([]byte, chunk)...)
		if _, err := io.ReadFull(r, data[start:]); errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("byte sequence announces %d bytes, stream ended earlier: %w", n, ErrInvalidLength)
		} else if err != nil {
			return nil, fmt.Errorf("reading byte sequence: %w", err)
		}
	}
	return data, nil
}
