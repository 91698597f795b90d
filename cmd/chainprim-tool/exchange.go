// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"io/ioutil"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fsnotify/fsnotify"

	"github.com/chainprim/chainprim/pkg/agent"
	"github.com/chainprim/chainprim/pkg/block"
	"github.com/chainprim/chainprim/pkg/scale"
)

// exchange Blocks between an user and a chainprimd over the filesystem.
type exchange struct {
	directory     string
	knownFiles    sync.Map
	websocketConn *agent.WebSocketAgentConnector
	watcher       *fsnotify.Watcher

	closeChan     chan os.Signal
	blockReadChan chan block.Block
}

// startExchange to exchange Blocks between client and a chainprimd.
func startExchange(args []string) {
	if len(args) != 2 {
		printUsage()
	}

	var (
		websocketAddr = args[0]
		directory     = args[1]

		err error
	)

	ex := &exchange{
		directory:     directory,
		closeChan:     make(chan os.Signal, 1),
		blockReadChan: make(chan block.Block),
	}

	signal.Notify(ex.closeChan, os.Interrupt)

	if ex.websocketConn, err = agent.NewWebSocketAgentConnector(websocketAddr); err != nil {
		printFatal(err, "Starting WebSocketAgentConnector errored")
	}

	if ex.watcher, err = fsnotify.NewWatcher(); err != nil {
		printFatal(err, "Starting file watcher errored")
	}
	if err = ex.watcher.Add(directory); err != nil {
		printFatal(err, "Adding directory to file watcher errored")
	}

	go ex.handleBlockRead()
	ex.handler()
}

// cleanFilepath creates a relative path from the initial path to a new file's path.
func (ex *exchange) cleanFilepath(f string) string {
	if rel, err := filepath.Rel(ex.directory, f); err != nil {
		log.WithField("path", f).WithError(err).Fatal("Failed to clean file path")
		return ""
	} else {
		return rel
	}
}

func (ex *exchange) handler() {
	defer func() {
		_ = ex.watcher.Close()
		ex.websocketConn.Close()
	}()

	for {
		select {
		case <-ex.closeChan:
			log.Info("Received interrupt signal")
			return

		case e, ok := <-ex.watcher.Events:
			if !ok {
				log.Error("fsnotify's Event channel was closed")
				return
			}

			if _, ok := ex.knownFiles.Load(ex.cleanFilepath(e.Name)); ok {
				log.WithField("file", e.Name).Debug("Skipping file; already known")
				continue
			}

			if e.Op&fsnotify.Create == 0 {
				log.WithFields(log.Fields{
					"file":      e.Name,
					"operation": e.Op.String(),
				}).Debug("Ignoring fsnotify event")
				continue
			}

			ex.readNewFile(e)

		case err, ok := <-ex.watcher.Errors:
			if !ok {
				log.Error("fsnotify's Errors channel was closed")
				return
			}

			log.WithError(err).Error("fsnotify errored")
			return

		case b, ok := <-ex.blockReadChan:
			if !ok {
				log.Error("Block reader channel was closed")
				return
			}

			filePath := filepath.Join(ex.directory, b.Hash().String())
			logger := log.WithFields(log.Fields{
				"block": b.Hash(),
				"file":  filePath,
			})

			// Register the file first, its creation triggers a fsnotify event.
			ex.knownFiles.Store(ex.cleanFilepath(filePath), struct{}{})

			if err := writeBlock(b, filePath); err != nil {
				logger.WithError(err).Error("Writing Block errored")
				return
			}

			logger.Info("Saved received Block")
		}
	}
}

func (ex *exchange) readNewFile(e fsnotify.Event) {
	for i := 0; i < 5; i++ {
		var b block.Block

		if data, err := ioutil.ReadFile(e.Name); err != nil {
			log.WithError(err).WithField("file", e.Name).Warn("Reading file errored, retrying..")
		} else if err := scale.Decode(data, &b); err != nil {
			log.WithError(err).WithField("file", e.Name).Warn("Decoding Block errored, retrying..")
		} else if err := ex.websocketConn.WriteBlock(b); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"file":  e.Name,
				"block": b.Hash(),
			}).Error("Sending Block errored")
			return
		} else {
			ex.knownFiles.Store(ex.cleanFilepath(e.Name), struct{}{})

			log.WithFields(log.Fields{
				"file":  e.Name,
				"block": b.Hash(),
			}).Info("Sent Block")
			return
		}

		time.Sleep(time.Duration(math.Pow(2, float64(i))) * 100 * time.Millisecond)
	}

	log.WithField("file", e.Name).Error("Failed to process file, giving up.")
}

func (ex *exchange) handleBlockRead() {
	for {
		if b, err := ex.websocketConn.ReadBlock(); err != nil {
			log.WithError(err).Error("Reading Block errored")

			close(ex.blockReadChan)
			return
		} else {
			ex.blockReadChan <- b
		}
	}
}
