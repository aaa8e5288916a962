// Copyright (C) 2021-2025, Zondax GmbH
// Licensed under the Apache License, Version 2.0

package parser

// Zarith is an arbitrary-precision integer in the sign-magnitude varint
// encoding: the high bit of each byte is a continuation flag, the low 7 bits
// (6 for the first byte in signed mode, where bit 6 is the sign) are value
// chunks. The value is never evaluated numerically here; only the consumed
// span and the sign survive decoding.
type Zarith struct {
	// Bytes is the full encoding span, continuation bytes included.
	Bytes []byte
	// Signed records whether the value was decoded in signed mode; Negative
	// is meaningful only when it was.
	Signed   bool
	Negative bool
}

// DecodeZarith consumes bytes up to and including the first byte whose
// continuation flag is clear. Exhausting input before that byte is an
// incomplete-input condition.
func DecodeZarith(input []byte, signed bool) (Zarith, []byte, error) {
	for i, b := range input {
		if b&0x80 != 0 {
			continue
		}
		z := Zarith{Bytes: input[:i+1], Signed: signed}
		if signed {
			z.Negative = input[0]&0x40 != 0
		}
		return z, input[i+1:], nil
	}
	return Zarith{}, input, ErrUnexpectedEOF
}
