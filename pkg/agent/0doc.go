// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package agent connects the block store to the outside world.
//
// The main interface is the ApplicationAgent, which only requires two channels for incoming and outgoing Messages.
// Incoming Blocks are handed to the Importer, which stores them and broadcasts each new Block to all subscribed
// ApplicationAgents. The WebSocketAgent is such an ApplicationAgent for external programs, the RestAgent offers a
// synchronous HTTP interface on top of the Importer and the Store.
package agent
