// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package block

// OpaqueDigestItemID selects digest items by their variant and, for engine
// specific variants, their engine id. It is used to fetch raw payloads without
// knowing their format.
type OpaqueDigestItemID struct {
	Type   DigestItemType
	Engine EngineID
}

// PreRuntimeID selects the pre-runtime items of an engine.
func PreRuntimeID(engine EngineID) OpaqueDigestItemID {
	return OpaqueDigestItemID{Type: DigestItemPreRuntime, Engine: engine}
}

// ConsensusID selects the consensus items of an engine.
func ConsensusID(engine EngineID) OpaqueDigestItemID {
	return OpaqueDigestItemID{Type: DigestItemConsensus, Engine: engine}
}

// SealID selects the seals of an engine.
func SealID(engine EngineID) OpaqueDigestItemID {
	return OpaqueDigestItemID{Type: DigestItemSeal, Engine: engine}
}

// OtherID selects opaque items.
func OtherID() OpaqueDigestItemID {
	return OpaqueDigestItemID{Type: DigestItemOther}
}
