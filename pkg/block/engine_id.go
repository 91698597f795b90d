// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package block

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/chainprim/chainprim/pkg/scale"
)

// EngineIDSize is the size of an EngineID in bytes.
const EngineIDSize = 4

// EngineID identifies the consensus engine which produced or consumes a digest item.
type EngineID [EngineIDSize]byte

// Well-known consensus engine identifiers.
var (
	AuraEngineID    = EngineID{'a', 'u', 'r', 'a'}
	BabeEngineID    = EngineID{'B', 'A', 'B', 'E'}
	GrandpaEngineID = EngineID{'F', 'R', 'N', 'K'}
	PowEngineID     = EngineID{'p', 'o', 'w', '_'}
)

// NewEngineID creates an EngineID from a string of exactly four bytes.
func NewEngineID(s string) (id EngineID, err error) {
	if len(s) != EngineIDSize {
		err = fmt.Errorf("engine id %q has %d bytes, expected %d", s, len(s), EngineIDSize)
		return
	}

	copy(id[:], s)
	return
}

// MustNewEngineID is like NewEngineID, but panics on an error.
func MustNewEngineID(s string) EngineID {
	id, err := NewEngineID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// isPrintable checks if all bytes are printable ASCII.
func (id EngineID) isPrintable() bool {
	for _, c := range id {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}

// String returns the ASCII representation or, for non-printable ids, a hex string.
func (id EngineID) String() string {
	if id.isPrintable() {
		return string(id[:])
	}
	return "0x" + hex.EncodeToString(id[:])
}

// MarshalScale writes the raw four bytes.
func (id *EngineID) MarshalScale(w io.Writer) error {
	return scale.WriteFixed(id[:], w)
}

// UnmarshalScale reads the raw four bytes.
func (id *EngineID) UnmarshalScale(r io.Reader) error {
	return scale.ReadFixed(r, id[:])
}

// MarshalJSON writes the String representation.
func (id EngineID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}
