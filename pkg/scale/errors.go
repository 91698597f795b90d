// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package scale

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrTruncated signals that the input ended before a value was complete.
	ErrTruncated = errors.New("truncated input")

	// ErrInvalidDiscriminant signals an unknown tag value of a tagged union.
	ErrInvalidDiscriminant = errors.New("invalid discriminant")

	// ErrInvalidLength signals a length prefix which is inconsistent with the remaining data.
	ErrInvalidLength = errors.New("invalid length prefix")

	// ErrMalformed signals a structurally invalid value, e.g., a non-canonical compact integer.
	ErrMalformed = errors.New("malformed value")
)

// IsDecodeError checks if an error belongs to the decoding error taxonomy.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrTruncated) || errors.Is(err, ErrInvalidDiscriminant) ||
		errors.Is(err, ErrInvalidLength) || errors.Is(err, ErrMalformed)
}

// truncated maps an io error of a short read onto ErrTruncated.
func truncated(err error, what string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("reading %s: %w", what, ErrTruncated)
	}
	return fmt.Errorf("reading %s: %w", what, err)
}
