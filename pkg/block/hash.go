// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package block

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/chainprim/chainprim/pkg/scale"
)

// HashSize is the size of a Hash in bytes.
const HashSize = 32

// Hash is a 256-bit value, used for parent hashes, trie roots and block hashes.
// It is encoded as its raw 32 bytes.
type Hash [HashSize]byte

// BlockHash identifies a block. It is derived from the block's Header only.
type BlockHash = Hash

// HashFromBytes creates a Hash from a byte slice of exactly HashSize bytes.
func HashFromBytes(data []byte) (h Hash, err error) {
	if len(data) != HashSize {
		err = fmt.Errorf("invalid hash size: want %d, got %d", HashSize, len(data))
		return
	}

	copy(h[:], data)
	return
}

// HashFromString parses a hexadecimal Hash, optionally prefixed by "0x".
func HashFromString(s string) (h Hash, err error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s) != 2*HashSize {
		err = fmt.Errorf("hash string length is %d, while it should be %d", len(s), 2*HashSize)
		return
	}

	if _, hexErr := hex.Decode(h[:], []byte(s)); hexErr != nil {
		err = fmt.Errorf("decoding hash hex failed: %w", hexErr)
	}
	return
}

// IsZero checks if all bytes are zero, which is the genesis block's parent hash.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// String returns the hexadecimal representation.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// MarshalScale writes the raw 32 bytes.
func (h *Hash) MarshalScale(w io.Writer) error {
	return scale.WriteFixed(h[:], w)
}

// UnmarshalScale reads the raw 32 bytes.
func (h *Hash) UnmarshalScale(r io.Reader) error {
	return scale.ReadFixed(r, h[:])
}

// MarshalJSON writes a "0x" prefixed hexadecimal string.
func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal("0x" + h.String())
}

// UnmarshalJSON reads a hexadecimal string.
func (h *Hash) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := HashFromString(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
