// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/chainprim/chainprim/pkg/agent"
)

// peerSync subscribes to discovered peers' WebSocket feeds and imports their Blocks.
type peerSync struct {
	sync.Mutex

	importer *agent.Importer
	peers    map[string]*agent.WebSocketAgentConnector
	closed   bool

	wg sync.WaitGroup
}

func newPeerSync(importer *agent.Importer) *peerSync {
	return &peerSync{
		importer: importer,
		peers:    make(map[string]*agent.WebSocketAgentConnector),
	}
}

// connect to a peer's API, unless a connection to this node already exists.
func (ps *peerSync) connect(nodeId, apiAddr string) {
	ps.Lock()
	defer ps.Unlock()

	logger := log.WithFields(log.Fields{
		"peer": nodeId,
		"addr": apiAddr,
	})

	if _, known := ps.peers[nodeId]; known || ps.closed {
		return
	}

	wac, err := agent.NewWebSocketAgentConnector(fmt.Sprintf("ws://%s/ws", apiAddr))
	if err != nil {
		logger.WithError(err).Warn("Connecting to peer errored")
		return
	}

	ps.peers[nodeId] = wac
	ps.wg.Add(1)
	go ps.handlePeer(nodeId, wac)

	logger.Info("Subscribed to peer")
}

func (ps *peerSync) handlePeer(nodeId string, wac *agent.WebSocketAgentConnector) {
	defer ps.wg.Done()

	logger := log.WithField("peer", nodeId)

	for {
		b, err := wac.ReadBlock()
		if err != nil {
			logger.WithError(err).Info("Peer connection closed")
			break
		}

		if inserted, err := ps.importer.Import(b); err != nil {
			logger.WithError(err).WithField("block", b.Hash()).Warn("Importing peer's Block errored")
		} else {
			logger.WithFields(log.Fields{
				"block":    b.Hash(),
				"inserted": inserted,
			}).Debug("Imported peer's Block")
		}
	}

	// Forget this peer, a later announcement reconnects.
	ps.Lock()
	if ps.peers[nodeId] == wac {
		delete(ps.peers, nodeId)
	}
	ps.Unlock()

	wac.Close()
}

// Close all peer connections.
func (ps *peerSync) Close() {
	ps.Lock()
	ps.closed = true
	for _, wac := range ps.peers {
		wac.Close()
	}
	ps.Unlock()

	ps.wg.Wait()
}
