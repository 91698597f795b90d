// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import "github.com/chainprim/chainprim/pkg/block"

// RestImportResponse describes a JSON response for a Block POSTed to /blocks.
type RestImportResponse struct {
	Error    string `json:"error,omitempty"`
	Hash     string `json:"hash,omitempty"`
	Inserted bool   `json:"inserted"`
}

// RestBlockResponse describes a JSON response for /blocks/{hash}.
type RestBlockResponse struct {
	Error string       `json:"error,omitempty"`
	Hash  string       `json:"hash,omitempty"`
	Block *block.Block `json:"block,omitempty"`
}

// RestHeader is a Header together with its hash.
type RestHeader struct {
	Hash   string       `json:"hash"`
	Header block.Header `json:"header"`
}

// RestHeadersResponse describes a JSON response for /headers/{number}.
type RestHeadersResponse struct {
	Error   string       `json:"error,omitempty"`
	Headers []RestHeader `json:"headers"`
}

// RestHashResponse describes a JSON response for a Header POSTed to /hash/header.
type RestHashResponse struct {
	Error string `json:"error,omitempty"`
	Hash  string `json:"hash,omitempty"`
}
