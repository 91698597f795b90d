// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package block

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/chainprim/chainprim/pkg/scale"
)

// DigestItemRef is a non-owning view of a digest item. Its payload aliases
// memory owned elsewhere, which must not be modified while the view is in use.
// A DigestItemRef is only encoded, decoding always results in a DigestItem.
//
// The zero value is an OtherRef with an empty payload.
type DigestItemRef struct {
	typ    DigestItemType
	engine EngineID
	data   []byte
	root   *Hash
	signal *ChangesTrieSignal
}

// ChangesTrieRootRef creates a view of a changes trie root.
func ChangesTrieRootRef(root *Hash) DigestItemRef {
	return DigestItemRef{typ: DigestItemChangesTrieRoot, root: root}
}

// PreRuntimeRef creates a view of a pre-runtime message.
func PreRuntimeRef(engine EngineID, data []byte) DigestItemRef {
	return DigestItemRef{typ: DigestItemPreRuntime, engine: engine, data: data}
}

// ConsensusRef creates a view of a consensus message.
func ConsensusRef(engine EngineID, data []byte) DigestItemRef {
	return DigestItemRef{typ: DigestItemConsensus, engine: engine, data: data}
}

// SealRef creates a view of a seal.
func SealRef(engine EngineID, data []byte) DigestItemRef {
	return DigestItemRef{typ: DigestItemSeal, engine: engine, data: data}
}

// ChangesTrieSignalRef creates a view of a changes trie signal.
func ChangesTrieSignalRef(signal *ChangesTrieSignal) DigestItemRef {
	return DigestItemRef{typ: DigestItemChangesTrieSignal, signal: signal}
}

// OtherRef creates a view of an opaque item.
func OtherRef(data []byte) DigestItemRef {
	return DigestItemRef{typ: DigestItemOther, data: data}
}

// Type returns the wire discriminant.
func (ref DigestItemRef) Type() DigestItemType {
	return ref.typ
}

// hasEngine checks if this variant carries an engine id and payload.
func (ref DigestItemRef) hasEngine() bool {
	return ref.typ == DigestItemPreRuntime || ref.typ == DigestItemConsensus || ref.typ == DigestItemSeal
}

// MarshalScale writes the discriminant followed by the variant's payload.
func (ref DigestItemRef) MarshalScale(w io.Writer) error {
	if err := ref.typ.MarshalScale(w); err != nil {
		return err
	}

	switch ref.typ {
	case DigestItemChangesTrieRoot:
		return ref.root.MarshalScale(w)

	case DigestItemPreRuntime, DigestItemConsensus, DigestItemSeal:
		if err := ref.engine.MarshalScale(w); err != nil {
			return err
		}
		return scale.WriteByteSequence(ref.data, w)

	case DigestItemChangesTrieSignal:
		return ref.signal.MarshalScale(w)

	case DigestItemOther:
		return scale.WriteByteSequence(ref.data, w)

	default:
		// Refs can only be created by the constructors above.
		panic(fmt.Sprintf("DigestItemRef with unknown type %v", ref.typ))
	}
}

// Owned copies the viewed content into an owning DigestItem.
func (ref DigestItemRef) Owned() DigestItem {
	switch ref.typ {
	case DigestItemChangesTrieRoot:
		return NewChangesTrieRootItem(*ref.root)
	case DigestItemPreRuntime:
		return NewPreRuntimeItem(ref.engine, ref.data)
	case DigestItemConsensus:
		return NewConsensusItem(ref.engine, ref.data)
	case DigestItemSeal:
		return NewSealItem(ref.engine, ref.data)
	case DigestItemChangesTrieSignal:
		return NewChangesTrieSignalItem(*ref.signal)
	default:
		return NewOtherItem(ref.data)
	}
}

// Equal checks if two views have the same variant and content.
func (ref DigestItemRef) Equal(other DigestItemRef) bool {
	if ref.typ != other.typ {
		return false
	}

	switch ref.typ {
	case DigestItemChangesTrieRoot:
		return *ref.root == *other.root
	case DigestItemChangesTrieSignal:
		return ref.signal.Equal(*other.signal)
	case DigestItemPreRuntime, DigestItemConsensus, DigestItemSeal:
		return ref.engine == other.engine && bytes.Equal(ref.data, other.data)
	default:
		return bytes.Equal(ref.data, other.data)
	}
}

// engineItem returns engine and payload if this view is of type t.
func (ref DigestItemRef) engineItem(t DigestItemType) (EngineID, []byte, bool) {
	if ref.typ != t {
		return EngineID{}, nil, false
	}
	return ref.engine, ref.data, true
}

// AsPreRuntime returns the engine id and payload of a pre-runtime item.
func (ref DigestItemRef) AsPreRuntime() (EngineID, []byte, bool) {
	return ref.engineItem(DigestItemPreRuntime)
}

// AsConsensus returns the engine id and payload of a consensus item.
func (ref DigestItemRef) AsConsensus() (EngineID, []byte, bool) {
	return ref.engineItem(DigestItemConsensus)
}

// AsSeal returns the engine id and seal of a seal item.
func (ref DigestItemRef) AsSeal() (EngineID, []byte, bool) {
	return ref.engineItem(DigestItemSeal)
}

// AsChangesTrieRoot returns the root of a changes trie root item.
func (ref DigestItemRef) AsChangesTrieRoot() (Hash, bool) {
	if ref.typ != DigestItemChangesTrieRoot {
		return Hash{}, false
	}
	return *ref.root, true
}

// AsChangesTrieSignal returns the signal of a changes trie signal item.
func (ref DigestItemRef) AsChangesTrieSignal() (ChangesTrieSignal, bool) {
	if ref.typ != DigestItemChangesTrieSignal {
		return ChangesTrieSignal{}, false
	}
	return *ref.signal, true
}

// AsOther returns the data of an opaque item.
func (ref DigestItemRef) AsOther() ([]byte, bool) {
	if ref.typ != DigestItemOther {
		return nil, false
	}
	return ref.data, true
}

// TryAsRaw returns the raw payload if this view matches the opaque id.
func (ref DigestItemRef) TryAsRaw(id OpaqueDigestItemID) ([]byte, bool) {
	if ref.typ != id.Type {
		return nil, false
	}
	if ref.hasEngine() && ref.engine != id.Engine {
		return nil, false
	}
	if !ref.hasEngine() && ref.typ != DigestItemOther {
		return nil, false
	}
	return ref.data, true
}

// MarshalJSON writes an object with the variant's name, its discriminant and its payload.
func (ref DigestItemRef) MarshalJSON() ([]byte, error) {
	type jsonItem struct {
		Type     string             `json:"type"`
		TypeCode uint32             `json:"typeCode"`
		Engine   *EngineID          `json:"engine,omitempty"`
		Data     string             `json:"data,omitempty"`
		Root     *Hash              `json:"root,omitempty"`
		Signal   *ChangesTrieSignal `json:"signal,omitempty"`
	}

	item := jsonItem{
		Type:     ref.typ.String(),
		TypeCode: uint32(ref.typ),
		Root:     ref.root,
		Signal:   ref.signal,
	}
	if ref.hasEngine() {
		engine := ref.engine
		item.Engine = &engine
	}
	if ref.hasEngine() || ref.typ == DigestItemOther {
		item.Data = "0x" + hex.EncodeToString(ref.data)
	}

	return json.Marshal(item)
}

// DigestRefs is a list of views, encoded exactly like a Digest of the
// corresponding owning items.
type DigestRefs []DigestItemRef

// MarshalScale writes the compact item count followed by each item.
func (refs DigestRefs) MarshalScale(w io.Writer) error {
	if err := scale.WriteSequenceLength(len(refs), w); err != nil {
		return err
	}
	for _, ref := range refs {
		if err := ref.MarshalScale(w); err != nil {
			return err
		}
	}
	return nil
}

// Owned copies all views into an owning Digest.
func (refs DigestRefs) Owned() Digest {
	var d Digest
	for _, ref := range refs {
		d.Push(ref.Owned())
	}
	return d
}
