// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package scale

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"math/big"

	gsrpc "github.com/centrifuge/go-substrate-rpc-client/v4/scale"
)

// Upper bounds of the three small compact modes. Each mode stores the value
// shifted by two bits, the lowest two bits select the mode.
const (
	compactSingleByteMax = 1<<6 - 1
	compactTwoByteMax    = 1<<14 - 1
	compactFourByteMax   = 1<<30 - 1
)

// compactModeBigInteger marks the mode whose upper six bits hold the byte count minus four.
const compactModeBigInteger byte = 0b11

// compactBigIntegerSize returns the minimal byte count for the big integer mode,
// which is at least four.
func compactBigIntegerSize(n uint64) int {
	size := 4
	for size < 8 && n>>(8*uint(size)) != 0 {
		size++
	}
	return size
}

// CompactLen returns the length of n's compact encoding.
func CompactLen(n uint64) int {
	switch {
	case n <= compactSingleByteMax:
		return 1
	case n <= compactTwoByteMax:
		return 2
	case n <= compactFourByteMax:
		return 4
	default:
		return 1 + compactBigIntegerSize(n)
	}
}

// AppendCompact appends n's compact encoding to dst, choosing the shortest mode.
func AppendCompact(dst []byte, n uint64) []byte {
	buff := bytes.NewBuffer(dst)
	if err := WriteCompact(n, buff); err != nil {
		panic(fmt.Sprintf("encoding compact integer into memory failed: %v", err))
	}
	return buff.Bytes()
}

// WriteCompact writes n in the compact format.
func WriteCompact(n uint64, w io.Writer) error {
	return gsrpc.NewEncoder(w).EncodeUintCompact(*new(big.Int).SetUint64(n))
}

// fullReader fills each buffer completely like io.ReadFull. It counts the
// consumed bytes and keeps the reader's error, which the compact decoder does
// not pass on unchanged.
type fullReader struct {
	r   io.Reader
	n   int
	err error
}

func (fr *fullReader) Read(p []byte) (int, error) {
	n, err := io.ReadFull(fr.r, p)
	fr.n += n
	if err != nil {
		fr.err = err
	}
	return n, err
}

// ReadCompact reads a compact integer. Encodings which are not the shortest
// possible one are rejected with ErrMalformed, keeping the format canonical.
func ReadCompact(r io.Reader) (uint64, error) {
	var prefix [1]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return 0, truncated(err, "compact integer")
	}

	if prefix[0]&0b11 == compactModeBigInteger {
		if size := int(prefix[0]>>2) + 4; size > 8 {
			return 0, fmt.Errorf("compact integer of %d bytes exceeds 64 bits: %w", size, ErrMalformed)
		}
	}

	fr := &fullReader{r: io.MultiReader(bytes.NewReader(prefix[:]), r)}
	v, err := gsrpc.NewDecoder(fr).DecodeUintCompact()
	if fr.err != nil {
		return 0, truncated(fr.err, "compact integer")
	} else if err != nil {
		return 0, fmt.Errorf("decoding compact integer: %v: %w", err, ErrMalformed)
	} else if !v.IsUint64() {
		return 0, fmt.Errorf("compact integer %v exceeds 64 bits: %w", v, ErrMalformed)
	}

	n := v.Uint64()
	if l := CompactLen(n); l != fr.n {
		return 0, fmt.Errorf("compact integer %d uses %d bytes instead of %d: %w", n, fr.n, l, ErrMalformed)
	}
	return n, nil
}

// ReadCompactUint32 reads a compact integer which must fit into 32 bits, e.g.,
// a block number or a length prefix.
func ReadCompactUint32(r io.Reader) (uint32, error) {
	v, err := ReadCompact(r)
	if err != nil {
		return 0, err
	} else if v > math.MaxUint32 {
		return 0, fmt.Errorf("compact integer %d exceeds 32 bits: %w", v, ErrMalformed)
	}
	return uint32(v), nil
}
