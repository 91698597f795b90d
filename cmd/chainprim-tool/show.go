// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"encoding/json"
	"fmt"
)

// showBlock for the "show" CLI option.
func showBlock(args []string) {
	if len(args) != 1 {
		printUsage()
	}

	b, err := readBlock(args[0])
	if err != nil {
		printFatal(err, "Reading Block errored")
	}

	bMsg, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		printFatal(err, "Marshaling JSON errored")
	}
	fmt.Println(string(bMsg))
}

// hashBlock for the "hash" CLI option.
func hashBlock(args []string) {
	if len(args) != 1 {
		printUsage()
	}

	b, err := readBlock(args[0])
	if err != nil {
		printFatal(err, "Reading Block errored")
	}

	fmt.Println(b.Hash().String())
}
