// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package scale

import (
	"bytes"
	"fmt"
	"io"
)

// Marshaler is implemented by each type which can write its canonical encoding.
type Marshaler interface {
	// MarshalScale writes the canonical encoding into a Writer. Errors are only
	// returned if the Writer fails.
	MarshalScale(w io.Writer) error
}

// Unmarshaler is implemented by each type which can be read from its canonical encoding.
type Unmarshaler interface {
	// UnmarshalScale reads exactly one encoded value from a Reader.
	UnmarshalScale(r io.Reader) error
}

// Codec is implemented by types supporting both directions.
type Codec interface {
	Marshaler
	Unmarshaler
}

// Marshal writes a Marshaler's encoding into a Writer.
func Marshal(m Marshaler, w io.Writer) error {
	return m.MarshalScale(w)
}

// Unmarshal reads an Unmarshaler's encoding from a Reader.
func Unmarshal(u Unmarshaler, r io.Reader) error {
	return u.UnmarshalScale(r)
}

// Encode returns a Marshaler's encoding as a new byte slice.
//
// A bytes.Buffer never fails on write, thus every error would be a bug in the
// Marshaler itself and results in a panic.
func Encode(m Marshaler) []byte {
	buff := new(bytes.Buffer)
	if err := m.MarshalScale(buff); err != nil {
		panic(fmt.Sprintf("encoding into memory failed: %v", err))
	}
	return buff.Bytes()
}

// EncodedLen returns the length of a Marshaler's encoding.
func EncodedLen(m Marshaler) int {
	var c counter
	if err := m.MarshalScale(&c); err != nil {
		panic(fmt.Sprintf("encoding into counter failed: %v", err))
	}
	return int(c)
}

// Decode reads an Unmarshaler from a byte slice. The slice must be consumed
// completely, otherwise an ErrMalformed error is returned.
func Decode(data []byte, u Unmarshaler) error {
	r := bytes.NewReader(data)
	if err := u.UnmarshalScale(r); err != nil {
		return err
	}
	if n := r.Len(); n != 0 {
		return fmt.Errorf("%d trailing bytes after value: %w", n, ErrMalformed)
	}
	return nil
}

// counter is an io.Writer which only counts the written bytes.
type counter int

func (c *counter) Write(p []byte) (int, error) {
	*c += counter(len(p))
	return len(p), nil
}
