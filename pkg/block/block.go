// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package block

import (
	"fmt"
	"io"

	"github.com/chainprim/chainprim/pkg/scale"
)

// Block is a Header together with its ordered Extrinsics.
type Block struct {
	Header     Header      `json:"header"`
	Extrinsics []Extrinsic `json:"extrinsics"`
}

// NewBlock creates a Block without checking the Header against its Extrinsics.
func NewBlock(header Header, extrinsics []Extrinsic) Block {
	return Block{
		Header:     header,
		Extrinsics: extrinsics,
	}
}

// Hash returns the Header's hash. Extrinsics are committed to by the
// Header's ExtrinsicsRoot only.
func (b Block) Hash() BlockHash {
	return b.Header.Hash()
}

// Equal checks the Header and all Extrinsics for equality.
func (b Block) Equal(other Block) bool {
	if !b.Header.Equal(other.Header) || len(b.Extrinsics) != len(other.Extrinsics) {
		return false
	}
	for i := range b.Extrinsics {
		if !b.Extrinsics[i].Equal(other.Extrinsics[i]) {
			return false
		}
	}
	return true
}

// MarshalScale writes the Header followed by the compact counted Extrinsics.
func (b *Block) MarshalScale(w io.Writer) error {
	if err := b.Header.MarshalScale(w); err != nil {
		return err
	}

	if err := scale.WriteSequenceLength(len(b.Extrinsics), w); err != nil {
		return fmt.Errorf("marshalling extrinsics length failed: %w", err)
	}
	for i := range b.Extrinsics {
		if err := b.Extrinsics[i].MarshalScale(w); err != nil {
			return fmt.Errorf("marshalling extrinsic %d failed: %w", i, err)
		}
	}
	return nil
}

// UnmarshalScale reads a Block written by MarshalScale. A Block without
// Extrinsics has a nil slice.
func (b *Block) UnmarshalScale(r io.Reader) error {
	if err := b.Header.UnmarshalScale(r); err != nil {
		return err
	}

	// Each Extrinsic takes at least its one byte length prefix.
	n, err := scale.ReadSequenceLength(r, 1)
	if err != nil {
		return fmt.Errorf("unmarshalling extrinsics length failed: %w", err)
	}

	b.Extrinsics = nil
	if n > 0 {
		b.Extrinsics = make([]Extrinsic, 0, scale.SequenceCapacity(n))
	}
	for i := 0; i < n; i++ {
		var e Extrinsic
		if err := e.UnmarshalScale(r); err != nil {
			return fmt.Errorf("unmarshalling extrinsic %d failed: %w", i, err)
		}
		b.Extrinsics = append(b.Extrinsics, e)
	}
	return nil
}

func (b Block) String() string {
	return fmt.Sprintf("block %v with %d extrinsics", b.Header, len(b.Extrinsics))
}
