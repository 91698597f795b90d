// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fsnotify/fsnotify"

	"github.com/chainprim/chainprim/pkg/agent"
	"github.com/chainprim/chainprim/pkg/block"
	"github.com/chainprim/chainprim/pkg/scale"
)

// watcher imports Blocks from files dropped into a directory.
type watcher struct {
	directory string
	importer  *agent.Importer
	fsWatcher *fsnotify.Watcher

	closeSyn chan struct{}
	closeAck chan struct{}
	wg       sync.WaitGroup
}

// newWatcher starts watching the directory. Files already present are imported first.
func newWatcher(directory string, importer *agent.Importer) (w *watcher, err error) {
	if err = os.MkdirAll(directory, 0700); err != nil {
		return
	}

	w = &watcher{
		directory: directory,
		importer:  importer,
		closeSyn:  make(chan struct{}),
		closeAck:  make(chan struct{}),
	}

	if w.fsWatcher, err = fsnotify.NewWatcher(); err != nil {
		return nil, err
	}
	if err = w.fsWatcher.Add(directory); err != nil {
		_ = w.fsWatcher.Close()
		return nil, err
	}

	if entries, dirErr := ioutil.ReadDir(directory); dirErr != nil {
		log.WithError(dirErr).WithField("directory", directory).Warn("Listing watched directory errored")
	} else {
		for _, entry := range entries {
			if !entry.IsDir() {
				w.importFile(filepath.Join(directory, entry.Name()), 1)
			}
		}
	}

	go w.handler()

	log.WithField("directory", directory).Info("Started watching directory for Blocks")
	return
}

func (w *watcher) handler() {
	defer close(w.closeAck)

	for {
		select {
		case <-w.closeSyn:
			return

		case e, ok := <-w.fsWatcher.Events:
			if !ok {
				log.Error("fsnotify's Event channel was closed")
				return
			}

			if e.Op&fsnotify.Create == 0 {
				log.WithFields(log.Fields{
					"file":      e.Name,
					"operation": e.Op.String(),
				}).Debug("Ignoring fsnotify event")
				continue
			}

			// A file might still be written to; importFile retries with a backoff.
			w.wg.Add(1)
			go func(name string) {
				defer w.wg.Done()
				w.importFile(name, 5)
			}(e.Name)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				log.Error("fsnotify's Errors channel was closed")
				return
			}

			log.WithError(err).Error("fsnotify errored")
		}
	}
}

// importFile reads a Block's encoding from a file and imports it, trying up to attempts times.
func (w *watcher) importFile(name string, attempts int) {
	logger := log.WithField("file", name)

	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-w.closeSyn:
				logger.Debug("Aborting file import, watcher is closing")
				return
			case <-time.After(time.Duration(math.Pow(2, float64(i-1))) * 100 * time.Millisecond):
			}
		}

		var b block.Block

		if data, err := ioutil.ReadFile(name); err != nil {
			logger.WithError(err).Warn("Reading file errored, retrying..")
		} else if err := scale.Decode(data, &b); err != nil {
			logger.WithError(err).Warn("Decoding Block errored, retrying..")
		} else if inserted, err := w.importer.Import(b); err != nil {
			logger.WithError(err).WithField("block", b.Hash()).Error("Importing Block errored")
			return
		} else {
			logger.WithFields(log.Fields{
				"block":    b.Hash(),
				"inserted": inserted,
			}).Info("Imported Block from file")
			return
		}
	}

	logger.Error("Failed to process file, giving up.")
}

// Close stops watching and waits for pending imports.
func (w *watcher) Close() {
	close(w.closeSyn)
	<-w.closeAck
	w.wg.Wait()

	if err := w.fsWatcher.Close(); err != nil {
		log.WithError(err).Warn("Closing fsnotify watcher errored")
	}
}
