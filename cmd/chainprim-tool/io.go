// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"io/ioutil"
	"os"

	"github.com/chainprim/chainprim/pkg/block"
	"github.com/chainprim/chainprim/pkg/scale"
)

// readInput reads a whole file or, for "-", stdin.
func readInput(input string) ([]byte, error) {
	if input == "-" {
		return ioutil.ReadAll(os.Stdin)
	}
	return ioutil.ReadFile(input)
}

// readBlock decodes a Block from a file or, for "-", stdin.
func readBlock(input string) (b block.Block, err error) {
	data, err := readInput(input)
	if err != nil {
		return
	}

	err = scale.Decode(data, &b)
	return
}

// writeBlock encodes a Block into a file or, for "-", stdout.
func writeBlock(b block.Block, output string) error {
	data := scale.Encode(&b)

	if output == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return ioutil.WriteFile(output, data, 0644)
}
