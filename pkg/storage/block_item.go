// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/howeyc/crc16"
	"github.com/ulikunitz/xz"

	"github.com/chainprim/chainprim/pkg/block"
	"github.com/chainprim/chainprim/pkg/scale"
)

// ErrChecksumMismatch is returned when a stored block file does not match its
// recorded checksum.
var ErrChecksumMismatch = errors.New("block file checksum mismatch")

var crc16table = crc16.MakeTable(crc16.CCITT)

// BlockItem is a wrapper for meta data around a Block. The Store operates
// on BlockItems, while the Block itself lives in its own file.
type BlockItem struct {
	Id string `badgerhold:"key"`

	Number     uint32 `badgerholdIndex:"Number"`
	ParentHash string `badgerholdIndex:"ParentHash"`

	Filename   string
	Compressed bool
	Checksum   uint16

	Received time.Time
}

// Hash of the referenced Block.
func (bi BlockItem) Hash() (block.Hash, error) {
	return block.HashFromString(bi.Id)
}

// Load the Block from the disk. The file's checksum and the Block's hash are
// checked against this BlockItem.
func (bi BlockItem) Load() (b block.Block, err error) {
	data, err := os.ReadFile(bi.Filename)
	if err != nil {
		return
	}

	if checksum := crc16.Checksum(data, crc16table); checksum != bi.Checksum {
		err = fmt.Errorf("%s has checksum %04x, expected %04x: %w",
			bi.Filename, checksum, bi.Checksum, ErrChecksumMismatch)
		return
	}

	if bi.Compressed {
		xzR, xzErr := xz.NewReader(bytes.NewReader(data))
		if xzErr != nil {
			err = xzErr
			return
		}
		if data, err = io.ReadAll(xzR); err != nil {
			return
		}
	}

	if err = scale.Decode(data, &b); err != nil {
		return
	}

	if hash := b.Hash().String(); hash != bi.Id {
		err = fmt.Errorf("loaded block %s, expected %s", hash, bi.Id)
	}
	return
}

// storeBlock serializes the Block to the disk and records the file's checksum.
// An existing file of the same Block is replaced by identical content.
func (bi *BlockItem) storeBlock(b block.Block) error {
	var buf bytes.Buffer
	if bi.Compressed {
		if xzW, xzErr := xz.NewWriter(&buf); xzErr != nil {
			return xzErr
		} else if err := scale.Marshal(&b, xzW); err != nil {
			return err
		} else if err := xzW.Close(); err != nil {
			return err
		}
	} else if err := scale.Marshal(&b, &buf); err != nil {
		return err
	}

	bi.Checksum = crc16.Checksum(buf.Bytes(), crc16table)

	// The file is renamed into place, so readers never see a partial file.
	f, err := os.CreateTemp(path.Dir(bi.Filename), path.Base(bi.Filename)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return err
	}
	if err := os.Rename(f.Name(), bi.Filename); err != nil {
		_ = os.Remove(f.Name())
		return err
	}
	return nil
}

// deleteBlock removes the serialized Block from the disk.
func (bi BlockItem) deleteBlock() error {
	return os.Remove(bi.Filename)
}

// blockPath returns a path for a Block.
func blockPath(hash block.Hash, storagePath string, compressed bool) string {
	if compressed {
		return path.Join(storagePath, hash.String()+".xz")
	}
	return path.Join(storagePath, hash.String())
}

// newBlockItem creates a new BlockItem for a Block.
func newBlockItem(b block.Block, storagePath string, compress bool) BlockItem {
	hash := b.Hash()

	return BlockItem{
		Id: hash.String(),

		Number:     b.Header.Number,
		ParentHash: b.Header.ParentHash.String(),

		Filename:   blockPath(hash, storagePath, compress),
		Compressed: compress,

		Received: time.Now(),
	}
}
