// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package block

import (
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// HashWriter incrementally hashes data with unkeyed BLAKE2b-256. It is an
// io.Writer, thus values can be encoded straight into the hash state.
type HashWriter struct {
	hash.Hash
}

// NewHashWriter creates a HashWriter.
func NewHashWriter() HashWriter {
	// New256 only errors for keys longer than 64 bytes.
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(fmt.Sprintf("creating unkeyed BLAKE2b-256 failed: %v", err))
	}
	return HashWriter{h}
}

// InfallibleWrite is like Write, but without a return value. A hash.Hash never
// returns an error on writing.
func (hw HashWriter) InfallibleWrite(p []byte) {
	if _, err := hw.Write(p); err != nil {
		panic(fmt.Sprintf("hash.Hash returned an error on write: %v", err))
	}
}

// Finalize returns the resulting Hash.
func (hw HashWriter) Finalize() (h Hash) {
	copy(h[:], hw.Sum(h[:0]))
	return
}

// Blake2b256 hashes data with unkeyed BLAKE2b-256.
func Blake2b256(data []byte) Hash {
	return blake2b.Sum256(data)
}
