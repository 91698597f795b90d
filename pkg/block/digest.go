// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package block

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"

	"github.com/chainprim/chainprim/pkg/scale"
)

// minDigestItemSize is the smallest possible encoding of a DigestItem: a one
// byte discriminant and an empty OtherItem.
const minDigestItemSize = 2

// Digest is a header's ordered log of chain specific data, useful for light
// clients or for referencing auxiliary data.
//
// Logs must not hold nil items. NewDigest and Push drop them, and all other
// methods skip nil items of a Digest built as a literal; only CheckValid
// reports them.
type Digest struct {
	Logs []DigestItem
}

// NewDigest creates a Digest of the given items, keeping their order.
func NewDigest(items ...DigestItem) Digest {
	var d Digest
	for _, item := range items {
		d.Push(item)
	}
	return d
}

// Push appends an item, nil is dropped. As values are never modified in place,
// call Push only while assembling a new Digest.
func (d *Digest) Push(item DigestItem) {
	if item == nil {
		return
	}
	d.Logs = append(d.Logs, item)
}

// items returns Logs without nil items. Without any nil item, Logs itself is returned.
func (d Digest) items() []DigestItem {
	for i, item := range d.Logs {
		if item != nil {
			continue
		}

		items := make([]DigestItem, i, len(d.Logs)-1)
		copy(items, d.Logs[:i])
		for _, item := range d.Logs[i+1:] {
			if item != nil {
				items = append(items, item)
			}
		}
		return items
	}
	return d.Logs
}

// Len returns the number of items.
func (d Digest) Len() int {
	return len(d.items())
}

// Refs returns views of all items.
func (d Digest) Refs() DigestRefs {
	items := d.items()
	refs := make(DigestRefs, len(items))
	for i, item := range items {
		refs[i] = item.Ref()
	}
	return refs
}

// Log returns the first item matching the predicate.
func (d Digest) Log(predicate func(DigestItemRef) bool) (DigestItem, bool) {
	for _, item := range d.items() {
		if predicate(item.Ref()) {
			return item, true
		}
	}
	return nil, false
}

// TryAsRaw returns the raw payload of the first item matching the opaque id.
func (d Digest) TryAsRaw(id OpaqueDigestItemID) ([]byte, bool) {
	for _, item := range d.items() {
		if data, ok := item.Ref().TryAsRaw(id); ok {
			return data, true
		}
	}
	return nil, false
}

// PreRuntime returns the payload of the first pre-runtime item of an engine.
func (d Digest) PreRuntime(engine EngineID) ([]byte, bool) {
	return d.TryAsRaw(PreRuntimeID(engine))
}

// Consensus returns the payload of the first consensus item of an engine.
func (d Digest) Consensus(engine EngineID) ([]byte, bool) {
	return d.TryAsRaw(ConsensusID(engine))
}

// Seal returns the first seal of an engine.
func (d Digest) Seal(engine EngineID) ([]byte, bool) {
	return d.TryAsRaw(SealID(engine))
}

// ChangesTrieRoot returns the root of the first changes trie root item.
func (d Digest) ChangesTrieRoot() (Hash, bool) {
	for _, item := range d.items() {
		if root, ok := item.Ref().AsChangesTrieRoot(); ok {
			return root, true
		}
	}
	return Hash{}, false
}

// ChangesTrieSignal returns the signal of the first changes trie signal item.
func (d Digest) ChangesTrieSignal() (ChangesTrieSignal, bool) {
	for _, item := range d.items() {
		if signal, ok := item.Ref().AsChangesTrieSignal(); ok {
			return signal, true
		}
	}
	return ChangesTrieSignal{}, false
}

// WithoutSeal splits a trailing seal off. The returned Digest shares its items
// with d. If the last item is no seal, d and nil are returned.
func (d Digest) WithoutSeal() (Digest, *SealItem) {
	items := d.items()
	if len(items) == 0 {
		return d, nil
	}

	last := items[len(items)-1]
	seal, ok := last.(*SealItem)
	if !ok {
		return d, nil
	}

	var rest Digest
	if len(items) > 1 {
		rest.Logs = items[: len(items)-1 : len(items)-1]
	}
	return rest, seal
}

// Equal checks if both Digests contain equal items in the same order.
func (d Digest) Equal(other Digest) bool {
	items, otherItems := d.items(), other.items()
	if len(items) != len(otherItems) {
		return false
	}
	for i := range items {
		if !DigestItemsEqual(items[i], otherItems[i]) {
			return false
		}
	}
	return true
}

// CheckValid performs structural checks on the item order: at most one
// changes trie root, at most one changes trie signal and seals only as the
// last item. These checks are never performed while constructing or decoding.
func (d Digest) CheckValid() (errs error) {
	var roots, signals int
	for i, item := range d.Logs {
		if item == nil {
			errs = multierror.Append(errs, fmt.Errorf("digest item %d is nil", i))
			continue
		}

		switch item.Type() {
		case DigestItemChangesTrieRoot:
			roots++
		case DigestItemChangesTrieSignal:
			signals++
		case DigestItemSeal:
			if i != len(d.Logs)-1 {
				errs = multierror.Append(errs, fmt.Errorf("seal at position %d is not the last digest item", i))
			}
		}
	}

	if roots > 1 {
		errs = multierror.Append(errs, fmt.Errorf("digest contains %d changes trie roots", roots))
	}
	if signals > 1 {
		errs = multierror.Append(errs, fmt.Errorf("digest contains %d changes trie signals", signals))
	}
	return
}

// MarshalScale writes the compact item count followed by each item.
func (d *Digest) MarshalScale(w io.Writer) error {
	items := d.items()
	if err := scale.WriteSequenceLength(len(items), w); err != nil {
		return err
	}
	for _, item := range items {
		if err := item.MarshalScale(w); err != nil {
			return err
		}
	}
	return nil
}

// UnmarshalScale reads a Digest written by MarshalScale. An empty Digest has nil Logs.
func (d *Digest) UnmarshalScale(r io.Reader) error {
	n, err := scale.ReadSequenceLength(r, minDigestItemSize)
	if err != nil {
		return err
	}

	d.Logs = nil
	if n > 0 {
		d.Logs = make([]DigestItem, 0, scale.SequenceCapacity(n))
	}
	for i := 0; i < n; i++ {
		item, err := ReadDigestItem(r)
		if err != nil {
			return fmt.Errorf("digest item %d: %w", i, err)
		}
		d.Logs = append(d.Logs, item)
	}
	return nil
}

// MarshalJSON writes an object holding the list of items.
func (d Digest) MarshalJSON() ([]byte, error) {
	logs := d.items()
	if logs == nil {
		logs = []DigestItem{}
	}

	return json.Marshal(&struct {
		Logs []DigestItem `json:"logs"`
	}{logs})
}
