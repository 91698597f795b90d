// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package block provides the canonical block primitives: headers, their
// digests, blocks and storage proofs, together with the derivation of a block's
// identity, its BlockHash.
//
// A Header is hashed by encoding it canonically and passing the bytes through
// BLAKE2b-256.
//
//	header := block.NewHeader(parent, 42, stateRoot, extrinsicsRoot,
//	  block.NewDigest(block.NewPreRuntimeItem(block.AuraEngineID, slot)))
//	hash := header.Hash()
//
// Digest items come in two representations sharing one wire format. The
// DigestItem implementations own their payloads, while a DigestItemRef is a
// view on data owned elsewhere. A consensus engine holding a payload can
// encode it without copying:
//
//	ref := block.SealRef(block.BabeEngineID, signature)
//	err := scale.Marshal(ref, w)
//
// All types of this package are plain values. Neither construction nor
// decoding checks any semantic property, e.g., whether the extrinsics root
// matches the extrinsics.
package block
