// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package block

import (
	"bytes"
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"

	"github.com/chainprim/chainprim/pkg/scale"
)

func sampleDigest() Digest {
	return NewDigest(
		NewPreRuntimeItem(AuraEngineID, []byte("slot")),
		NewConsensusItem(BabeEngineID, []byte("epoch")),
		NewChangesTrieRootItem(hashOf(7)),
		NewChangesTrieSignalItem(NewConfigurationChangesTrieSignal(
			&ChangesTrieConfiguration{DigestInterval: 8, DigestLevels: 1})),
		NewOtherItem([]byte("other")),
		NewSealItem(AuraEngineID, []byte("seal")))
}

func TestDigestRoundTrip(t *testing.T) {
	tests := []Digest{{}, sampleDigest(), NewDigest(NewOtherItem(nil), NewOtherItem(nil))}

	for _, d1 := range tests {
		data := scale.Encode(&d1)

		var d2 Digest
		if err := scale.Decode(data, &d2); err != nil {
			t.Fatal(err)
		}
		if !d1.Equal(d2) {
			t.Fatalf("digests differ after decoding %x", data)
		}

		if refData := scale.Encode(d1.Refs()); !bytes.Equal(data, refData) {
			t.Fatalf("refs encode to %x, digest to %x", refData, data)
		}
		if !d1.Refs().Owned().Equal(d1) {
			t.Fatal("owned refs differ")
		}
	}

	var empty Digest
	if err := scale.Decode([]byte{0x00}, &empty); err != nil {
		t.Fatal(err)
	} else if empty.Logs != nil {
		t.Fatal("empty digest has non-nil logs")
	}
}

func TestDigestSequenceLength(t *testing.T) {
	// Announces 36 items, but only has room for one.
	data := []byte{0x90, 0x00, 0x00}

	var d Digest
	if err := scale.Decode(data, &d); !errors.Is(err, scale.ErrInvalidLength) {
		t.Fatalf("expected invalid length, got %v", err)
	}
}

func TestDigestLookups(t *testing.T) {
	d := sampleDigest()

	if d.Len() != 6 {
		t.Fatalf("digest has %d items", d.Len())
	}

	if data, ok := d.PreRuntime(AuraEngineID); !ok || string(data) != "slot" {
		t.Fatalf("pre-runtime lookup: %t %q", ok, data)
	}
	if _, ok := d.PreRuntime(BabeEngineID); ok {
		t.Fatal("found pre-runtime item of the wrong engine")
	}
	if data, ok := d.Consensus(BabeEngineID); !ok || string(data) != "epoch" {
		t.Fatalf("consensus lookup: %t %q", ok, data)
	}
	if data, ok := d.Seal(AuraEngineID); !ok || string(data) != "seal" {
		t.Fatalf("seal lookup: %t %q", ok, data)
	}
	if data, ok := d.TryAsRaw(OtherID()); !ok || string(data) != "other" {
		t.Fatalf("other lookup: %t %q", ok, data)
	}
	if root, ok := d.ChangesTrieRoot(); !ok || root != hashOf(7) {
		t.Fatalf("changes trie root lookup: %t %v", ok, root)
	}
	if signal, ok := d.ChangesTrieSignal(); !ok || signal.NewConfiguration.DigestInterval != 8 {
		t.Fatalf("changes trie signal lookup: %t %v", ok, signal)
	}

	item, ok := d.Log(func(ref DigestItemRef) bool { return ref.Type() == DigestItemConsensus })
	if !ok || item.Type() != DigestItemConsensus {
		t.Fatalf("log lookup: %t %v", ok, item)
	}
	if _, ok := (Digest{}).ChangesTrieRoot(); ok {
		t.Fatal("empty digest has a changes trie root")
	}
}

func TestDigestWithoutSeal(t *testing.T) {
	d := sampleDigest()

	rest, seal := d.WithoutSeal()
	if seal == nil || seal.Engine != AuraEngineID || string(seal.Data) != "seal" {
		t.Fatalf("unexpected seal %v", seal)
	}
	if rest.Len() != d.Len()-1 {
		t.Fatalf("rest has %d items", rest.Len())
	}
	if _, ok := rest.Seal(AuraEngineID); ok {
		t.Fatal("rest still has a seal")
	}

	// Pushing to the rest must not overwrite the original's seal.
	rest.Push(NewOtherItem(nil))
	if _, ok := d.Seal(AuraEngineID); !ok {
		t.Fatal("original digest lost its seal")
	}

	unsealed, seal := rest.WithoutSeal()
	if seal != nil || !unsealed.Equal(rest) {
		t.Fatal("unsealed digest returned a seal")
	}
}

func TestDigestCheckValid(t *testing.T) {
	if err := sampleDigest().CheckValid(); err != nil {
		t.Fatal(err)
	}
	if err := (Digest{}).CheckValid(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		digest Digest
		errors int
	}{
		{NewDigest(NewSealItem(AuraEngineID, nil), NewOtherItem(nil)), 1},
		{NewDigest(NewChangesTrieRootItem(Hash{}), NewChangesTrieRootItem(Hash{})), 1},
		{NewDigest(
			NewSealItem(AuraEngineID, nil),
			NewChangesTrieSignalItem(ChangesTrieSignal{}),
			NewChangesTrieSignalItem(ChangesTrieSignal{}),
			NewChangesTrieRootItem(Hash{}),
			NewChangesTrieRootItem(Hash{})), 3},
	}

	for i, test := range tests {
		err := test.digest.CheckValid()

		var merr *multierror.Error
		if !errors.As(err, &merr) {
			t.Fatalf("test %d: expected multierror, got %v", i, err)
		}
		if len(merr.Errors) != test.errors {
			t.Fatalf("test %d: expected %d errors, got %v", i, test.errors, merr)
		}
	}
}

func TestDigestNilItems(t *testing.T) {
	if d := NewDigest(nil, NewOtherItem([]byte{0x01}), nil); d.Len() != 1 || len(d.Logs) != 1 {
		t.Fatalf("NewDigest kept nil items: %v", d.Logs)
	}

	var pushed Digest
	pushed.Push(nil)
	if pushed.Logs != nil {
		t.Fatalf("Push kept a nil item: %v", pushed.Logs)
	}

	literal := Digest{Logs: []DigestItem{
		nil,
		NewPreRuntimeItem(AuraEngineID, []byte{0x01, 0x02}),
		nil,
		NewSealItem(AuraEngineID, []byte("seal")),
	}}
	clean := NewDigest(
		NewPreRuntimeItem(AuraEngineID, []byte{0x01, 0x02}),
		NewSealItem(AuraEngineID, []byte("seal")))

	if err := literal.CheckValid(); err == nil {
		t.Fatal("CheckValid accepted nil items")
	}

	if !bytes.Equal(scale.Encode(&literal), scale.Encode(&clean)) {
		t.Fatal("nil items changed the encoding")
	}
	if !literal.Equal(clean) || literal.Len() != 2 || len(literal.Refs()) != 2 {
		t.Fatal("nil items were not skipped")
	}
	if data, ok := literal.PreRuntime(AuraEngineID); !ok || !bytes.Equal(data, []byte{0x01, 0x02}) {
		t.Fatal("pre-runtime item behind a nil item was not found")
	}
	if unsealed, seal := literal.WithoutSeal(); seal == nil || unsealed.Len() != 1 {
		t.Fatalf("WithoutSeal did not skip nil items: %v %v", unsealed.Logs, seal)
	}

	if (Header{Digest: literal}).Hash() != (Header{Digest: clean}).Hash() {
		t.Fatal("nil items changed the header hash")
	}
	if (Header{Digest: Digest{Logs: []DigestItem{nil}}}).Hash() != (Header{}).Hash() {
		t.Fatal("a digest of only nil items does not hash like an empty one")
	}
}
