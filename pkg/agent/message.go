// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"github.com/chainprim/chainprim/pkg/block"
)

// Message is a generic interface to specify an information exchange between an ApplicationAgent and the Importer.
// The following types named *Message are implementations of this interface.
type Message interface {
	// ForSubscribers reports if this Message is only addressed to subscribed ApplicationAgents.
	// Otherwise, it is addressed to every ApplicationAgent.
	ForSubscribers() bool
}

// BlockMessage indicates a transmitted Block.
// If the Message is received from an ApplicationAgent, it is a newly imported Block.
// If the Message is sent from an ApplicationAgent, it is a Block to be imported.
type BlockMessage struct {
	Block block.Block
}

// ForSubscribers is true, Blocks are only delivered to subscribers.
func (bm BlockMessage) ForSubscribers() bool {
	return true
}

// ShutdownMessage indicates the closing down of an ApplicationAgent.
// If the Message is received from an ApplicationAgent, it must close itself down.
// If the Message is sent from an ApplicationAgent, it is closing down itself.
type ShutdownMessage struct{}

// ForSubscribers is false, everyone must shut down.
func (sm ShutdownMessage) ForSubscribers() bool {
	return false
}
