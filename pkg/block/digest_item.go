// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package block

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/chainprim/chainprim/pkg/scale"
)

// DigestItem is one entry of a Digest. Each implementation owns its payload.
//
// The set of implementations is closed, OtherItem covers everything else. All
// implementations encode through their Ref, thus a DigestItem and a
// DigestItemRef with the same content have byte-identical encodings.
type DigestItem interface {
	scale.Marshaler
	json.Marshaler

	// Type returns the constant wire discriminant.
	Type() DigestItemType

	// Ref returns a non-owning view of this item.
	Ref() DigestItemRef

	// unmarshalPayload reads the payload following the discriminant.
	unmarshalPayload(r io.Reader) error
}

// digestItemConstructors maps each discriminant to a constructor of an empty item.
var digestItemConstructors = map[DigestItemType]func() DigestItem{
	DigestItemOther:             func() DigestItem { return new(OtherItem) },
	DigestItemChangesTrieRoot:   func() DigestItem { return new(ChangesTrieRootItem) },
	DigestItemConsensus:         func() DigestItem { return new(ConsensusItem) },
	DigestItemSeal:              func() DigestItem { return new(SealItem) },
	DigestItemPreRuntime:        func() DigestItem { return new(PreRuntimeItem) },
	DigestItemChangesTrieSignal: func() DigestItem { return new(ChangesTrieSignalItem) },
}

// ReadDigestItem reads one DigestItem, starting with its discriminant.
func ReadDigestItem(r io.Reader) (DigestItem, error) {
	t, err := readDigestItemType(r)
	if err != nil {
		return nil, err
	}

	item := digestItemConstructors[t]()
	if err := item.unmarshalPayload(r); err != nil {
		return nil, fmt.Errorf("reading %v digest item: %w", t, err)
	}
	return item, nil
}

// DecodeDigestItem decodes exactly one DigestItem from data.
func DecodeDigestItem(data []byte) (DigestItem, error) {
	r := bytes.NewReader(data)
	item, err := ReadDigestItem(r)
	if err != nil {
		return nil, err
	}
	if n := r.Len(); n != 0 {
		return nil, fmt.Errorf("%d trailing bytes after digest item: %w", n, scale.ErrMalformed)
	}
	return item, nil
}

// DigestItemsEqual checks if two items have the same variant and content.
func DigestItemsEqual(a, b DigestItem) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Ref().Equal(b.Ref())
}

// cloneBytes returns an owned, never nil, copy of data.
func cloneBytes(data []byte) []byte {
	return append(make([]byte, 0, len(data)), data...)
}

// readEnginePayload reads the engine id and payload shared by PreRuntime,
// Consensus and Seal items.
func readEnginePayload(r io.Reader, engine *EngineID, data *[]byte) (err error) {
	if err = engine.UnmarshalScale(r); err != nil {
		return
	}
	*data, err = scale.ReadByteSequence(r)
	return
}

// ChangesTrieRootItem carries the root of the changes trie at this block. It
// is created for every block if the runtime supports changes tries.
type ChangesTrieRootItem struct {
	Root Hash
}

// NewChangesTrieRootItem creates a ChangesTrieRootItem.
func NewChangesTrieRootItem(root Hash) *ChangesTrieRootItem {
	return &ChangesTrieRootItem{Root: root}
}

// Type returns DigestItemChangesTrieRoot.
func (i *ChangesTrieRootItem) Type() DigestItemType { return DigestItemChangesTrieRoot }

// Ref returns a view of this item.
func (i *ChangesTrieRootItem) Ref() DigestItemRef { return ChangesTrieRootRef(&i.Root) }

// MarshalScale writes the discriminant and the root.
func (i *ChangesTrieRootItem) MarshalScale(w io.Writer) error { return i.Ref().MarshalScale(w) }

// MarshalJSON writes the item's JSON representation.
func (i *ChangesTrieRootItem) MarshalJSON() ([]byte, error) { return i.Ref().MarshalJSON() }

func (i *ChangesTrieRootItem) unmarshalPayload(r io.Reader) error {
	return i.Root.UnmarshalScale(r)
}

// PreRuntimeItem is a message from the consensus engine to the runtime, e.g.,
// the slot a block was authored in.
//
// A runtime must not fail if an expected PreRuntimeItem is missing. Checking
// their presence is the responsibility of an external block verifier.
type PreRuntimeItem struct {
	Engine EngineID
	Data   []byte
}

// NewPreRuntimeItem creates a PreRuntimeItem with a copy of data.
func NewPreRuntimeItem(engine EngineID, data []byte) *PreRuntimeItem {
	return &PreRuntimeItem{Engine: engine, Data: cloneBytes(data)}
}

// Type returns DigestItemPreRuntime.
func (i *PreRuntimeItem) Type() DigestItemType { return DigestItemPreRuntime }

// Ref returns a view of this item.
func (i *PreRuntimeItem) Ref() DigestItemRef { return PreRuntimeRef(i.Engine, i.Data) }

// MarshalScale writes the discriminant, the engine id and the payload.
func (i *PreRuntimeItem) MarshalScale(w io.Writer) error { return i.Ref().MarshalScale(w) }

// MarshalJSON writes the item's JSON representation.
func (i *PreRuntimeItem) MarshalJSON() ([]byte, error) { return i.Ref().MarshalJSON() }

func (i *PreRuntimeItem) unmarshalPayload(r io.Reader) error {
	return readEnginePayload(r, &i.Engine, &i.Data)
}

// ConsensusItem is a message from the runtime to the consensus engine. It is
// never generated by the native code of a consensus engine.
type ConsensusItem struct {
	Engine EngineID
	Data   []byte
}

// NewConsensusItem creates a ConsensusItem with a copy of data.
func NewConsensusItem(engine EngineID, data []byte) *ConsensusItem {
	return &ConsensusItem{Engine: engine, Data: cloneBytes(data)}
}

// Type returns DigestItemConsensus.
func (i *ConsensusItem) Type() DigestItemType { return DigestItemConsensus }

// Ref returns a view of this item.
func (i *ConsensusItem) Ref() DigestItemRef { return ConsensusRef(i.Engine, i.Data) }

// MarshalScale writes the discriminant, the engine id and the payload.
func (i *ConsensusItem) MarshalScale(w io.Writer) error { return i.Ref().MarshalScale(w) }

// MarshalJSON writes the item's JSON representation.
func (i *ConsensusItem) MarshalJSON() ([]byte, error) { return i.Ref().MarshalJSON() }

func (i *ConsensusItem) unmarshalPayload(r io.Reader) error {
	return readEnginePayload(r, &i.Engine, &i.Data)
}

// SealItem is put on a header by the consensus engine's native code, e.g., the
// author's signature. Runtimes never see it.
type SealItem struct {
	Engine EngineID
	Data   []byte
}

// NewSealItem creates a SealItem with a copy of data.
func NewSealItem(engine EngineID, data []byte) *SealItem {
	return &SealItem{Engine: engine, Data: cloneBytes(data)}
}

// Type returns DigestItemSeal.
func (i *SealItem) Type() DigestItemType { return DigestItemSeal }

// Ref returns a view of this item.
func (i *SealItem) Ref() DigestItemRef { return SealRef(i.Engine, i.Data) }

// MarshalScale writes the discriminant, the engine id and the seal.
func (i *SealItem) MarshalScale(w io.Writer) error { return i.Ref().MarshalScale(w) }

// MarshalJSON writes the item's JSON representation.
func (i *SealItem) MarshalJSON() ([]byte, error) { return i.Ref().MarshalJSON() }

func (i *SealItem) unmarshalPayload(r io.Reader) error {
	return readEnginePayload(r, &i.Engine, &i.Data)
}

// ChangesTrieSignalItem carries a signal from the changes trie manager.
type ChangesTrieSignalItem struct {
	Signal ChangesTrieSignal
}

// NewChangesTrieSignalItem creates a ChangesTrieSignalItem with a copy of signal.
func NewChangesTrieSignalItem(signal ChangesTrieSignal) *ChangesTrieSignalItem {
	return &ChangesTrieSignalItem{Signal: NewConfigurationChangesTrieSignal(signal.NewConfiguration)}
}

// Type returns DigestItemChangesTrieSignal.
func (i *ChangesTrieSignalItem) Type() DigestItemType { return DigestItemChangesTrieSignal }

// Ref returns a view of this item.
func (i *ChangesTrieSignalItem) Ref() DigestItemRef { return ChangesTrieSignalRef(&i.Signal) }

// MarshalScale writes the discriminant and the signal.
func (i *ChangesTrieSignalItem) MarshalScale(w io.Writer) error { return i.Ref().MarshalScale(w) }

// MarshalJSON writes the item's JSON representation.
func (i *ChangesTrieSignalItem) MarshalJSON() ([]byte, error) { return i.Ref().MarshalJSON() }

func (i *ChangesTrieSignalItem) unmarshalPayload(r io.Reader) error {
	return i.Signal.UnmarshalScale(r)
}

// OtherItem is any other, opaque, digest item. It is unsupported and experimental.
type OtherItem struct {
	Data []byte
}

// NewOtherItem creates an OtherItem with a copy of data.
func NewOtherItem(data []byte) *OtherItem {
	return &OtherItem{Data: cloneBytes(data)}
}

// Type returns DigestItemOther.
func (i *OtherItem) Type() DigestItemType { return DigestItemOther }

// Ref returns a view of this item.
func (i *OtherItem) Ref() DigestItemRef { return OtherRef(i.Data) }

// MarshalScale writes the discriminant and the data.
func (i *OtherItem) MarshalScale(w io.Writer) error { return i.Ref().MarshalScale(w) }

// MarshalJSON writes the item's JSON representation.
func (i *OtherItem) MarshalJSON() ([]byte, error) { return i.Ref().MarshalJSON() }

func (i *OtherItem) unmarshalPayload(r io.Reader) (err error) {
	i.Data, err = scale.ReadByteSequence(r)
	return
}
