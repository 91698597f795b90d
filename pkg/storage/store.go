// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package storage

import (
	"errors"
	"fmt"
	"os"
	"path"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/timshannon/badgerhold"

	"github.com/chainprim/chainprim/pkg/block"
)

// ErrNotFound is returned when querying an unknown Block.
var ErrNotFound = badgerhold.ErrNotFound

const (
	dirBadger string = "db"
	dirBlock  string = "blck"
)

// Store implements a storage for Blocks together with meta data. Blocks are
// identified by their hash.
type Store struct {
	bh *badgerhold.Store

	// pushMutex serializes Push and Delete, whose index and file updates are not atomic.
	pushMutex sync.Mutex

	badgerDir string
	blockDir  string
	compress  bool
}

// NewStore creates a new Store or opens an existing Store from the given path.
// If compress is set, new Blocks are stored xz compressed.
func NewStore(dir string, compress bool) (s *Store, err error) {
	badgerDir := path.Join(dir, dirBadger)
	blockDir := path.Join(dir, dirBlock)

	opts := badgerhold.DefaultOptions
	opts.Dir = badgerDir
	opts.ValueDir = badgerDir
	opts.Logger = log.StandardLogger()
	opts.Options.ValueLogFileSize = 1<<28 - 1

	if dirErr := os.MkdirAll(badgerDir, 0700); dirErr != nil {
		err = dirErr
		return
	}
	if dirErr := os.MkdirAll(blockDir, 0700); dirErr != nil {
		err = dirErr
		return
	}

	if bh, bhErr := badgerhold.Open(opts); bhErr != nil {
		err = bhErr
	} else {
		s = &Store{
			bh: bh,

			badgerDir: badgerDir,
			blockDir:  blockDir,
			compress:  compress,
		}
	}
	return
}

// Close the Store. It must not be used afterwards.
func (s *Store) Close() error {
	return s.bh.Close()
}

// Push a new/received Block to the Store. Pushing a known Block is a no-op.
// The returned flag reports if the Block was new.
func (s *Store) Push(b block.Block) (inserted bool, err error) {
	s.pushMutex.Lock()
	defer s.pushMutex.Unlock()

	hash := b.Hash()
	logger := log.WithFields(log.Fields{
		"block":  hash.String(),
		"number": b.Header.Number,
	})

	if known, knownErr := s.knowsBlock(hash); knownErr != nil {
		return false, knownErr
	} else if known {
		logger.Debug("Block is known, ignoring push")
		return false, nil
	}

	bi := newBlockItem(b, s.blockDir, s.compress)
	if err = bi.storeBlock(b); err != nil {
		return false, err
	}

	logger.WithFields(log.Fields{
		"file":       bi.Filename,
		"compressed": bi.Compressed,
	}).Info("Block is unknown, inserting BlockItem")

	if err = s.bh.Insert(bi.Id, bi); errors.Is(err, badgerhold.ErrKeyExists) {
		// Another Store on the same directory won. Only remove a file its BlockItem does not reference.
		if existing, qErr := s.QueryHash(hash); qErr == nil && existing.Filename != bi.Filename {
			if rmErr := bi.deleteBlock(); rmErr != nil {
				logger.WithError(rmErr).Warn("Failed to remove duplicate block file")
			}
		}
		logger.Debug("Block was inserted concurrently, ignoring push")
		return false, nil
	} else if err != nil {
		if rmErr := bi.deleteBlock(); rmErr != nil {
			logger.WithError(rmErr).Warn("Failed to remove block file after failed insert")
		}
		return false, err
	}
	return true, nil
}

// Delete a BlockItem and its file.
func (s *Store) Delete(hash block.Hash) error {
	s.pushMutex.Lock()
	defer s.pushMutex.Unlock()

	if bi, err := s.QueryHash(hash); err == nil {
		log.WithFields(log.Fields{
			"block": bi.Id,
		}).Info("Store deletes BlockItem")

		if err := bi.deleteBlock(); err != nil {
			log.WithFields(log.Fields{
				"block": bi.Id,
				"file":  bi.Filename,
				"error": err,
			}).Warn("Failed to delete block file")
		}

		return s.bh.Delete(bi.Id, BlockItem{})
	}

	return nil
}

// QueryHash fetches the BlockItem for the requested hash.
func (s *Store) QueryHash(hash block.Hash) (bi BlockItem, err error) {
	err = s.bh.Get(hash.String(), &bi)
	return
}

// QueryNumber fetches all BlockItems of the requested height. There might be
// more than one in case of forks.
func (s *Store) QueryNumber(number uint32) (bis []BlockItem, err error) {
	err = s.bh.Find(&bis, badgerhold.Where("Number").Eq(number))
	return
}

// QueryChildren fetches all BlockItems whose parent is the requested hash.
func (s *Store) QueryChildren(parent block.Hash) (bis []BlockItem, err error) {
	err = s.bh.Find(&bis, badgerhold.Where("ParentHash").Eq(parent.String()))
	return
}

// KnowsBlock checks if such a Block is known. Lookup errors are logged and reported as unknown.
func (s *Store) KnowsBlock(hash block.Hash) bool {
	known, err := s.knowsBlock(hash)
	if err != nil {
		log.WithField("block", hash.String()).WithError(err).Warn("Looking up Block errored")
	}
	return known
}

// knowsBlock distinguishes an unknown Block from a failed lookup.
func (s *Store) knowsBlock(hash block.Hash) (bool, error) {
	if _, err := s.QueryHash(hash); errors.Is(err, ErrNotFound) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("looking up block %v failed: %w", hash, err)
	}
	return true, nil
}

// Load the Block for the requested hash.
func (s *Store) Load(hash block.Hash) (b block.Block, err error) {
	bi, biErr := s.QueryHash(hash)
	if biErr != nil {
		err = biErr
		return
	}
	return bi.Load()
}
