// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// chainprim-tool creates, inspects and exchanges canonically encoded Blocks.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

// printUsage of chainprim-tool and exit with an error code afterwards.
func printUsage() {
	_, _ = fmt.Fprintf(os.Stderr, "Usage of %s create|show|hash|seal|exchange:\n\n", os.Args[0])

	_, _ = fmt.Fprintf(os.Stderr, "%s create parent-hash number state-root extrinsics-root [-|filename...] block-name\n", os.Args[0])
	_, _ = fmt.Fprintf(os.Stderr, "  Creates a new Block. Each filename becomes one extrinsic, \"-\" reads one from stdin.\n")
	_, _ = fmt.Fprintf(os.Stderr, "  This Block will be saved as block-name or written to stdout for \"-\".\n\n")

	_, _ = fmt.Fprintf(os.Stderr, "%s show -|filename\n", os.Args[0])
	_, _ = fmt.Fprintf(os.Stderr, "  Prints a JSON representation of the given Block.\n\n")

	_, _ = fmt.Fprintf(os.Stderr, "%s hash -|filename\n", os.Args[0])
	_, _ = fmt.Fprintf(os.Stderr, "  Prints the hash of the given Block.\n\n")

	_, _ = fmt.Fprintf(os.Stderr, "%s seal -|filename engine payload-hex block-name\n", os.Args[0])
	_, _ = fmt.Fprintf(os.Stderr, "  Appends a seal of the four byte engine to the Block and saves it as block-name.\n\n")

	_, _ = fmt.Fprintf(os.Stderr, "%s exchange websocket directory\n", os.Args[0])
	_, _ = fmt.Fprintf(os.Stderr, "  %s subscribes to the given websocket and writes incoming\n", os.Args[0])
	_, _ = fmt.Fprintf(os.Stderr, "  Blocks in the directory. If the user drops a new Block in the\n")
	_, _ = fmt.Fprintf(os.Stderr, "  directory, it will be sent to the server.\n\n")

	os.Exit(1)
}

// printFatal logs the error with a message and exits.
func printFatal(err error, msg string) {
	log.WithError(err).Fatal(msg)
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
	}

	switch os.Args[1] {
	case "create":
		createBlock(os.Args[2:])

	case "show":
		showBlock(os.Args[2:])

	case "hash":
		hashBlock(os.Args[2:])

	case "seal":
		sealBlock(os.Args[2:])

	case "exchange":
		startExchange(os.Args[2:])

	default:
		printUsage()
	}
}
