// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package block

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chainprim/chainprim/pkg/scale"
)

// ChangesTrieConfiguration configures the changes trie, an index which lets
// light clients prove storage changes over a range of blocks.
type ChangesTrieConfiguration struct {
	// DigestInterval is the interval, in blocks, at which level1 digests are
	// created. Digests are not created when this is less or equal to 1.
	DigestInterval uint32 `json:"digestInterval"`

	// DigestLevels is the maximal number of digest levels. 0 disables digests,
	// 1 means only level1 digests. With 2, there is a level2 digest every
	// DigestInterval^2 blocks, and so on.
	DigestLevels uint32 `json:"digestLevels"`
}

// MarshalScale writes both fields as fixed-width integers.
func (ctc *ChangesTrieConfiguration) MarshalScale(w io.Writer) error {
	if err := scale.WriteUint32(ctc.DigestInterval, w); err != nil {
		return err
	}
	return scale.WriteUint32(ctc.DigestLevels, w)
}

// UnmarshalScale reads both fields as fixed-width integers.
func (ctc *ChangesTrieConfiguration) UnmarshalScale(r io.Reader) (err error) {
	if ctc.DigestInterval, err = scale.ReadUint32(r); err != nil {
		return
	}
	ctc.DigestLevels, err = scale.ReadUint32(r)
	return
}

// IsDigestBuildEnabled checks if digests are created at all.
func (ctc ChangesTrieConfiguration) IsDigestBuildEnabled() bool {
	return ctc.DigestInterval > 1 && ctc.DigestLevels > 0
}

// IsDigestBuildRequiredAt checks if a digest must be built at block, where zero
// is the block at which this configuration became active.
func (ctc ChangesTrieConfiguration) IsDigestBuildRequiredAt(zero, block uint32) bool {
	return block > zero && ctc.IsDigestBuildEnabled() && (block-zero)%ctc.DigestInterval == 0
}

// MaxDigestInterval returns DigestInterval^DigestLevels. If this exceeds 32 bits,
// the largest power still fitting is returned.
func (ctc ChangesTrieConfiguration) MaxDigestInterval() uint32 {
	if !ctc.IsDigestBuildEnabled() {
		return 1
	}

	maxInterval := uint64(ctc.DigestInterval)
	for level := uint32(1); level < ctc.DigestLevels; level++ {
		next := maxInterval * uint64(ctc.DigestInterval)
		if next > 1<<32-1 {
			break
		}
		maxInterval = next
	}
	return uint32(maxInterval)
}

// DigestLevelAt returns the digest level to be built at block, its interval and
// the step between the digested blocks. ok is false if no digest is required.
func (ctc ChangesTrieConfiguration) DigestLevelAt(zero, block uint32) (level, interval, step uint32, ok bool) {
	if !ctc.IsDigestBuildRequiredAt(zero, block) {
		return
	}

	relative := uint64(block - zero)
	level, step = 1, 1
	curInterval := uint64(ctc.DigestInterval)
	for level < ctc.DigestLevels {
		next := curInterval * uint64(ctc.DigestInterval)
		if next > 1<<32-1 || relative%next != 0 {
			break
		}

		step = uint32(curInterval)
		curInterval = next
		level++
	}
	return level, uint32(curInterval), step, true
}

// NextMaxLevelDigestRange returns the range of blocks covered by the next, or
// current, max level digest. ok is false if digests are disabled.
func (ctc ChangesTrieConfiguration) NextMaxLevelDigestRange(zero, block uint32) (begin, end uint32, ok bool) {
	if !ctc.IsDigestBuildEnabled() {
		return
	}
	if block <= zero {
		block = zero + 1
	}

	maxInterval := uint64(ctc.MaxDigestInterval())
	sinceZero := (uint64(block) - uint64(zero)) / maxInterval
	if sinceZero == 0 {
		return zero + 1, uint32(uint64(zero) + maxInterval), true
	}

	lastMaxDigest := uint64(zero) + sinceZero*maxInterval
	if uint64(block) == lastMaxDigest {
		return uint32(uint64(block) - maxInterval + 1), block, true
	}
	return uint32(lastMaxDigest + 1), uint32(lastMaxDigest + maxInterval), true
}

// PrevMaxLevelDigestBlock returns the block of the previous, or current, max
// level digest. ok is false if there is none.
func (ctc ChangesTrieConfiguration) PrevMaxLevelDigestBlock(zero, block uint32) (prev uint32, ok bool) {
	if block <= zero {
		return
	}

	begin, end, enabled := ctc.NextMaxLevelDigestRange(zero, block)
	if !enabled {
		return
	}
	if end == block {
		return block, true
	}

	prevEnd := begin - 1
	if prevEnd == zero {
		return
	}
	return prevEnd, true
}

// ChangesTrieSignalKind is the discriminant of a ChangesTrieSignal. It is
// encoded as a single byte.
type ChangesTrieSignalKind uint8

const (
	// NewConfigurationSignal enacts a new changes trie configuration, starting
	// from the next block.
	NewConfigurationSignal ChangesTrieSignalKind = 0
)

// ChangesTrieSignal is a signal from the changes trie manager to the native code.
//
// Its only variant is NewConfigurationSignal. The block emitting this signal
// contains a changes trie covering all blocks since the last top level digest,
// the last configuration change or the first block, in this order.
type ChangesTrieSignal struct {
	// NewConfiguration is the configuration to enact. Nil disables changes tries.
	NewConfiguration *ChangesTrieConfiguration
}

// NewConfigurationChangesTrieSignal creates a signal enacting conf. A nil
// conf disables changes tries.
func NewConfigurationChangesTrieSignal(conf *ChangesTrieConfiguration) ChangesTrieSignal {
	if conf == nil {
		return ChangesTrieSignal{}
	}

	confCopy := *conf
	return ChangesTrieSignal{NewConfiguration: &confCopy}
}

// Kind returns the signal's discriminant.
func (cts ChangesTrieSignal) Kind() ChangesTrieSignalKind {
	return NewConfigurationSignal
}

// Equal checks if two signals are equal.
func (cts ChangesTrieSignal) Equal(other ChangesTrieSignal) bool {
	if cts.NewConfiguration == nil || other.NewConfiguration == nil {
		return cts.NewConfiguration == other.NewConfiguration
	}
	return *cts.NewConfiguration == *other.NewConfiguration
}

// MarshalScale writes the discriminant, the option flag and, if present, the configuration.
func (cts *ChangesTrieSignal) MarshalScale(w io.Writer) error {
	if err := scale.WriteUint8(uint8(cts.Kind()), w); err != nil {
		return err
	}
	if err := scale.WriteOptionFlag(cts.NewConfiguration != nil, w); err != nil {
		return err
	}
	if cts.NewConfiguration != nil {
		return cts.NewConfiguration.MarshalScale(w)
	}
	return nil
}

// UnmarshalScale reads a signal written by MarshalScale.
func (cts *ChangesTrieSignal) UnmarshalScale(r io.Reader) error {
	if kind, err := scale.ReadUint8(r); err != nil {
		return err
	} else if ChangesTrieSignalKind(kind) != NewConfigurationSignal {
		return fmt.Errorf("unknown changes trie signal %d: %w", kind, scale.ErrInvalidDiscriminant)
	}

	present, err := scale.ReadOptionFlag(r)
	if err != nil {
		return err
	}

	cts.NewConfiguration = nil
	if present {
		conf := new(ChangesTrieConfiguration)
		if err := conf.UnmarshalScale(r); err != nil {
			return err
		}
		cts.NewConfiguration = conf
	}
	return nil
}

// MarshalJSON writes the signal as an object naming its variant.
func (cts ChangesTrieSignal) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		NewConfiguration *ChangesTrieConfiguration `json:"newConfiguration"`
	}{cts.NewConfiguration})
}
