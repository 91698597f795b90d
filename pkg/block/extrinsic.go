// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package block

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"

	"github.com/chainprim/chainprim/pkg/scale"
)

// Extrinsic is an opaque, uninterpreted transaction. It is encoded as a
// compact length prefixed byte sequence.
type Extrinsic []byte

// MarshalScale writes the length prefixed bytes.
func (e *Extrinsic) MarshalScale(w io.Writer) error {
	return scale.WriteByteSequence(*e, w)
}

// UnmarshalScale reads the length prefixed bytes.
func (e *Extrinsic) UnmarshalScale(r io.Reader) error {
	data, err := scale.ReadByteSequence(r)
	if err != nil {
		return err
	}

	*e = data
	return nil
}

// Equal compares the bytes; a nil and an empty Extrinsic are equal.
func (e Extrinsic) Equal(other Extrinsic) bool {
	return bytes.Equal(e, other)
}

// MarshalJSON writes a "0x" prefixed hexadecimal string.
func (e Extrinsic) MarshalJSON() ([]byte, error) {
	return json.Marshal("0x" + hex.EncodeToString(e))
}
