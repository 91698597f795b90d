// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package block

import (
	"fmt"
	"io"

	"github.com/chainprim/chainprim/pkg/scale"
)

// Header is a block's header. Its canonical encoding is the concatenation of
// its fields in declaration order, the Number being compact encoded.
type Header struct {
	ParentHash     Hash   `json:"parentHash"`
	Number         uint32 `json:"number"`
	StateRoot      Hash   `json:"stateRoot"`
	ExtrinsicsRoot Hash   `json:"extrinsicsRoot"`
	Digest         Digest `json:"digest"`
}

// NewHeader creates a Header. No semantic validation is performed; the
// relation between a parent's and a child's Number is checked elsewhere.
func NewHeader(parentHash Hash, number uint32, stateRoot, extrinsicsRoot Hash, digest Digest) Header {
	return Header{
		ParentHash:     parentHash,
		Number:         number,
		StateRoot:      stateRoot,
		ExtrinsicsRoot: extrinsicsRoot,
		Digest:         digest,
	}
}

// Hash returns the BLAKE2b-256 hash of the canonical encoding. It is computed
// on each call.
func (h Header) Hash() BlockHash {
	hw := NewHashWriter()
	hw.InfallibleWrite(scale.Encode(&h))
	return hw.Finalize()
}

// IsGenesis checks if this Header has the zero parent hash.
func (h Header) IsGenesis() bool {
	return h.ParentHash.IsZero()
}

// Equal checks all fields for equality.
func (h Header) Equal(other Header) bool {
	return h.ParentHash == other.ParentHash &&
		h.Number == other.Number &&
		h.StateRoot == other.StateRoot &&
		h.ExtrinsicsRoot == other.ExtrinsicsRoot &&
		h.Digest.Equal(other.Digest)
}

// MarshalScale writes the canonical encoding.
func (h *Header) MarshalScale(w io.Writer) error {
	if err := h.ParentHash.MarshalScale(w); err != nil {
		return fmt.Errorf("marshalling parent hash failed: %w", err)
	}
	if err := scale.WriteCompact(uint64(h.Number), w); err != nil {
		return fmt.Errorf("marshalling number failed: %w", err)
	}
	if err := h.StateRoot.MarshalScale(w); err != nil {
		return fmt.Errorf("marshalling state root failed: %w", err)
	}
	if err := h.ExtrinsicsRoot.MarshalScale(w); err != nil {
		return fmt.Errorf("marshalling extrinsics root failed: %w", err)
	}
	if err := h.Digest.MarshalScale(w); err != nil {
		return fmt.Errorf("marshalling digest failed: %w", err)
	}
	return nil
}

// UnmarshalScale reads a Header written by MarshalScale.
func (h *Header) UnmarshalScale(r io.Reader) error {
	if err := h.ParentHash.UnmarshalScale(r); err != nil {
		return fmt.Errorf("unmarshalling parent hash failed: %w", err)
	}

	number, err := scale.ReadCompactUint32(r)
	if err != nil {
		return fmt.Errorf("unmarshalling number failed: %w", err)
	}
	h.Number = number

	if err := h.StateRoot.UnmarshalScale(r); err != nil {
		return fmt.Errorf("unmarshalling state root failed: %w", err)
	}
	if err := h.ExtrinsicsRoot.UnmarshalScale(r); err != nil {
		return fmt.Errorf("unmarshalling extrinsics root failed: %w", err)
	}
	if err := h.Digest.UnmarshalScale(r); err != nil {
		return fmt.Errorf("unmarshalling digest failed: %w", err)
	}
	return nil
}

func (h Header) String() string {
	return fmt.Sprintf("#%d (%v)", h.Number, h.Hash())
}
