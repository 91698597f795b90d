// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/chainprim/chainprim/pkg/block"
)

// appendSeal returns a copy of the Block with a seal item appended to its header's digest.
// An existing seal is replaced, as a valid digest ends with at most one seal.
func appendSeal(b block.Block, engine, payloadHex string) (block.Block, error) {
	engineId, err := block.NewEngineID(engine)
	if err != nil {
		return b, err
	}

	payload, err := hex.DecodeString(strings.TrimPrefix(payloadHex, "0x"))
	if err != nil {
		return b, fmt.Errorf("payload: %w", err)
	}

	unsealed, _ := b.Header.Digest.WithoutSeal()
	digest := block.NewDigest(unsealed.Logs...)
	digest.Push(block.NewSealItem(engineId, payload))

	header := b.Header
	header.Digest = digest
	return block.NewBlock(header, b.Extrinsics), nil
}

// sealBlock for the "seal" CLI option.
func sealBlock(args []string) {
	if len(args) != 4 {
		printUsage()
	}

	b, err := readBlock(args[0])
	if err != nil {
		printFatal(err, "Reading Block errored")
	}

	if b, err = appendSeal(b, args[1], args[2]); err != nil {
		printFatal(err, "Sealing Block errored")
	}

	if err = writeBlock(b, args[3]); err != nil {
		printFatal(err, "Writing Block errored")
	}
}
