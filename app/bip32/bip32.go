// Copyright (C) 2021-2025, Zondax GmbH
// Licensed under the Apache License, Version 2.0

// Package bip32 reads and writes the wire form of hierarchical key
// derivation paths: a component count byte followed by that many big-endian
// 32-bit components.
package bip32

import (
	"encoding/binary"
	"errors"
)

// MaxComponents is the deepest derivation path the app accepts.
const MaxComponents = 10

var (
	// ErrZeroLength reports a path with no components.
	ErrZeroLength = errors.New("bip32: zero length path")
	// ErrNotEnoughData reports input with fewer bytes than the declared
	// component count requires.
	ErrNotEnoughData = errors.New("bip32: not enough data")
	// ErrTooMuchData reports more components than declared or supported.
	ErrTooMuchData = errors.New("bip32: too much data")
)

// Path is a derivation path of up to MaxComponents 32-bit components.
type Path struct {
	count      uint8
	components [MaxComponents]uint32
}

// Read decodes a path from input. The total length must be exactly
// 1 + 4*count for the declared count; excess and shortfall are distinct
// rejected conditions.
func Read(input []byte) (Path, error) {
	if len(input) < 1 {
		return Path{}, ErrZeroLength
	}
	rest := len(input) - 1
	if rest == 0 {
		return Path{}, ErrZeroLength
	}
	if rest%4 != 0 {
		return Path{}, ErrNotEnoughData
	}

	count := int(input[0])
	switch {
	case count == 0:
		return Path{}, ErrZeroLength
	case count > MaxComponents:
		return Path{}, ErrTooMuchData
	case rest/4 > count:
		return Path{}, ErrTooMuchData
	case rest/4 < count:
		return Path{}, ErrNotEnoughData
	}

	p := Path{count: uint8(count)}
	for i := 0; i < count; i++ {
		p.components[i] = binary.BigEndian.Uint32(input[1+4*i:])
	}
	return p, nil
}

// NewPath builds a path from components, for host-side use and tests.
func NewPath(components ...uint32) (Path, error) {
	if len(components) == 0 {
		return Path{}, ErrZeroLength
	}
	if len(components) > MaxComponents {
		return Path{}, ErrTooMuchData
	}
	p := Path{count: uint8(len(components))}
	copy(p.components[:], components)
	return p, nil
}

// Components returns the decoded components in order.
func (p Path) Components() []uint32 {
	return p.components[:p.count]
}

// Serialize renders the wire form of the path.
func (p Path) Serialize() []byte {
	out := make([]byte, 1+4*int(p.count))
	out[0] = p.count
	for i, c := range p.Components() {
		binary.BigEndian.PutUint32(out[1+4*i:], c)
	}
	return out
}
