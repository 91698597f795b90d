// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"strconv"

	"github.com/chainprim/chainprim/pkg/block"
)

// buildBlock parses the header fields and reads each extrinsic input.
func buildBlock(parentHash, number, stateRoot, extrinsicsRoot string, inputs []string) (b block.Block, err error) {
	var (
		header     block.Header
		n          uint64
		extrinsics []block.Extrinsic
		stdinUses  int
	)

	for _, input := range inputs {
		if input == "-" {
			stdinUses++
		}
	}
	if stdinUses > 1 {
		return b, fmt.Errorf("stdin can only be used for one extrinsic")
	}

	if header.ParentHash, err = block.HashFromString(parentHash); err != nil {
		return b, fmt.Errorf("parent hash: %w", err)
	}
	if n, err = strconv.ParseUint(number, 10, 32); err != nil {
		return b, fmt.Errorf("number: %w", err)
	}
	header.Number = uint32(n)
	if header.StateRoot, err = block.HashFromString(stateRoot); err != nil {
		return b, fmt.Errorf("state root: %w", err)
	}
	if header.ExtrinsicsRoot, err = block.HashFromString(extrinsicsRoot); err != nil {
		return b, fmt.Errorf("extrinsics root: %w", err)
	}

	for _, input := range inputs {
		data, readErr := readInput(input)
		if readErr != nil {
			return b, readErr
		}
		extrinsics = append(extrinsics, block.Extrinsic(data))
	}

	return block.NewBlock(header, extrinsics), nil
}

// createBlock for the "create" CLI option.
func createBlock(args []string) {
	if len(args) < 5 {
		printUsage()
	}

	var (
		inputs  = args[4 : len(args)-1]
		outName = args[len(args)-1]
	)

	b, err := buildBlock(args[0], args[1], args[2], args[3], inputs)
	if err != nil {
		printFatal(err, "Building Block errored")
	}

	if err = writeBlock(b, outName); err != nil {
		printFatal(err, "Writing Block errored")
	}
}
