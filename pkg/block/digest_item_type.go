// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package block

import (
	"fmt"
	"io"
	"math"

	"github.com/chainprim/chainprim/pkg/scale"
)

// DigestItemType is the wire discriminant of a digest item. The values are
// assigned explicitly and must never change, independent of the order of the
// declarations below.
type DigestItemType uint32

const (
	// DigestItemOther is an opaque item, unsupported and experimental.
	DigestItemOther DigestItemType = 0

	// DigestItemChangesTrieRoot carries the root of the block's changes trie.
	DigestItemChangesTrieRoot DigestItemType = 2

	// DigestItemConsensus is a message from the runtime to the consensus engine.
	DigestItemConsensus DigestItemType = 4

	// DigestItemSeal is a seal, e.g., a signature, put on by the consensus engine.
	DigestItemSeal DigestItemType = 5

	// DigestItemPreRuntime is a message from the consensus engine to the runtime.
	DigestItemPreRuntime DigestItemType = 6

	// DigestItemChangesTrieSignal announces a new changes trie configuration.
	DigestItemChangesTrieSignal DigestItemType = 7
)

// reservedDigestItemTypes are discriminants of removed variants. They are
// never produced and never accepted.
var reservedDigestItemTypes = map[DigestItemType]struct{}{
	1: {},
	3: {},
}

// digestItemTypeNames maps each known discriminant to its name.
var digestItemTypeNames = map[DigestItemType]string{
	DigestItemOther:             "Other",
	DigestItemChangesTrieRoot:   "ChangesTrieRoot",
	DigestItemConsensus:         "Consensus",
	DigestItemSeal:              "Seal",
	DigestItemPreRuntime:        "PreRuntime",
	DigestItemChangesTrieSignal: "ChangesTrieSignal",
}

// IsKnown checks if this discriminant belongs to a digest item variant.
func (t DigestItemType) IsKnown() bool {
	_, ok := digestItemTypeNames[t]
	return ok
}

// IsReserved checks if this discriminant belongs to a removed variant.
func (t DigestItemType) IsReserved() bool {
	_, ok := reservedDigestItemTypes[t]
	return ok
}

func (t DigestItemType) String() string {
	if name, ok := digestItemTypeNames[t]; ok {
		return name
	} else if t.IsReserved() {
		return fmt.Sprintf("Reserved(%d)", uint32(t))
	}
	return fmt.Sprintf("Unknown(%d)", uint32(t))
}

// MarshalScale writes the compact encoded discriminant.
func (t DigestItemType) MarshalScale(w io.Writer) error {
	return scale.WriteCompact(uint64(t), w)
}

// readDigestItemType reads a discriminant and rejects unknown and reserved values.
func readDigestItemType(r io.Reader) (DigestItemType, error) {
	n, err := scale.ReadCompact(r)
	if err != nil {
		return 0, err
	}
	if n > math.MaxUint32 {
		return 0, fmt.Errorf("unknown digest item type %d: %w", n, scale.ErrInvalidDiscriminant)
	}

	t := DigestItemType(n)
	switch {
	case t.IsKnown():
		return t, nil
	case t.IsReserved():
		return 0, fmt.Errorf("digest item type %d is reserved: %w", n, scale.ErrInvalidDiscriminant)
	default:
		return 0, fmt.Errorf("unknown digest item type %d: %w", n, scale.ErrInvalidDiscriminant)
	}
}
