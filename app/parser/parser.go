// Copyright (C) 2021-2025, Zondax GmbH
// Licensed under the Apache License, Version 2.0

// Package parser decodes the binary operation payloads carried inside sign
// requests. Decoders are pure functions over a caller-owned buffer: every
// decoded value borrows sub-slices of the input and stays valid only for the
// duration of the parse call, and each decoder hands back the exact
// remaining input so failures report how far decoding got.
package parser

import "errors"

var (
	// ErrUnexpectedEOF reports input that ran out before a field completed.
	ErrUnexpectedEOF = errors.New("parser: unexpected end of input")
	// ErrInvalidEntrypoint reports an unknown entrypoint tag.
	ErrInvalidEntrypoint = errors.New("parser: invalid entrypoint name")
	// ErrInvalidContractTag reports an unknown contract identifier tag.
	ErrInvalidContractTag = errors.New("parser: invalid contract tag")
	// ErrInvalidCurveTag reports an unknown curve tag.
	ErrInvalidCurveTag = errors.New("parser: invalid curve tag")
)

// take splits exactly n bytes off the front of input.
func take(input []byte, n int) (chunk, rem []byte, err error) {
	if len(input) < n {
		return nil, input, ErrUnexpectedEOF
	}
	return input[:n], input[n:], nil
}

// takeByte splits a single byte off the front of input.
func takeByte(input []byte) (b byte, rem []byte, err error) {
	if len(input) < 1 {
		return 0, input, ErrUnexpectedEOF
	}
	return input[0], input[1:], nil
}
