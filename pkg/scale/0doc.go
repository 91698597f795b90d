// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scale implements the canonical binary codec used for blocks, headers
// and digests. Composite values are encoded as the concatenation of their
// fields in declaration order. Integers used as lengths or block numbers are
// written in the variable-length compact format.
//
// Types take part in the codec by implementing Marshaler and Unmarshaler.
//
//	// Encoding can never fail for an in-memory value.
//	data := scale.Encode(&header)
//
//	// Decode fails on any short read, unknown tag or trailing byte.
//	var h block.Header
//	err := scale.Decode(data, &h)
//
// Decoding errors wrap one of ErrTruncated, ErrInvalidDiscriminant,
// ErrInvalidLength or ErrMalformed and can be inspected with errors.Is.
package scale
