// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/chainprim/chainprim/pkg/block"
	"github.com/chainprim/chainprim/pkg/storage"
)

// ErrImporterClosed is returned when importing into a closed Importer.
var ErrImporterClosed = errors.New("importer is closed")

// Importer is the single path for Blocks into the Store. Blocks are received from registered ApplicationAgents
// or passed to Import directly. Each newly stored Block is broadcast to all subscribed ApplicationAgents.
type Importer struct {
	sync.RWMutex

	store        *storage.Store
	strictDigest bool
	agents       *MuxAgent
	closed       bool

	handlerDone chan struct{}
}

// NewImporter creates an Importer for a Store. If strictDigest is set, Blocks whose Digest fails its structural
// checks are rejected.
func NewImporter(store *storage.Store, strictDigest bool) (imp *Importer) {
	imp = &Importer{
		store:        store,
		strictDigest: strictDigest,
		agents:       NewMuxAgent(),

		handlerDone: make(chan struct{}),
	}

	go imp.handler()

	return
}

func (imp *Importer) handler() {
	defer close(imp.handlerDone)

	for msg := range imp.agents.MessageSender() {
		switch msg := msg.(type) {
		case BlockMessage:
			if _, err := imp.Import(msg.Block); err != nil {
				log.WithField("block", msg.Block.Hash()).WithError(err).Warn("Importing Block from agent errored")
			}

		default:
			log.WithField("message", msg).Debug("Importer received unsupported message")
		}
	}
}

// Register an ApplicationAgent, whose Blocks will be imported.
func (imp *Importer) Register(agent ApplicationAgent) {
	imp.agents.Register(agent)
}

// Import a Block into the Store. The returned flag reports if the Block was new and therefore broadcast.
func (imp *Importer) Import(b block.Block) (inserted bool, err error) {
	imp.RLock()
	defer imp.RUnlock()

	if imp.closed {
		return false, ErrImporterClosed
	}

	hash := b.Hash()

	if imp.strictDigest {
		if checkErr := b.Header.Digest.CheckValid(); checkErr != nil {
			return false, fmt.Errorf("block %v has an invalid digest: %w", hash, checkErr)
		}
	}

	if inserted, err = imp.store.Push(b); err != nil || !inserted {
		return
	}

	log.WithFields(log.Fields{
		"block":  hash,
		"number": b.Header.Number,
	}).Info("Imported new Block")

	imp.agents.MessageReceiver() <- BlockMessage{b}
	return
}

// Close shuts down all registered ApplicationAgents. The Store stays open.
func (imp *Importer) Close() {
	imp.Lock()
	if imp.closed {
		imp.Unlock()
		return
	}
	imp.closed = true
	imp.Unlock()

	imp.agents.MessageReceiver() <- ShutdownMessage{}
	<-imp.handlerDone
}
