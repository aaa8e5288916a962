// Copyright (C) 2021-2025, Zondax GmbH
// Licensed under the Apache License, Version 2.0

package parser

// EntrypointKind enumerates the closed set of entrypoint variants.
type EntrypointKind uint8

const (
	EntrypointDefault EntrypointKind = iota
	EntrypointRoot
	EntrypointDo
	EntrypointSetDelegate
	EntrypointRemoveDelegate
	EntrypointCustom
)

// Entrypoint is the target selector of a smart-contract call: one of five
// fixed names, or a custom length-prefixed name carried verbatim.
type Entrypoint struct {
	Kind EntrypointKind
	name []byte
}

// DecodeEntrypoint reads one tag byte. Tags 0x00-0x04 select the fixed
// variants and consume nothing further; tag 0xFF reads a length byte and
// that many name bytes. Every other tag is rejected.
func DecodeEntrypoint(input []byte) (Entrypoint, []byte, error) {
	tag, rem, err := takeByte(input)
	if err != nil {
		return Entrypoint{}, input, err
	}

	switch tag {
	case 0x00:
		return Entrypoint{Kind: EntrypointDefault}, rem, nil
	case 0x01:
		return Entrypoint{Kind: EntrypointRoot}, rem, nil
	case 0x02:
		return Entrypoint{Kind: EntrypointDo}, rem, nil
	case 0x03:
		return Entrypoint{Kind: EntrypointSetDelegate}, rem, nil
	case 0x04:
		return Entrypoint{Kind: EntrypointRemoveDelegate}, rem, nil
	case 0xFF:
		length, rem, err := takeByte(rem)
		if err != nil {
			return Entrypoint{}, input, err
		}
		name, rem, err := take(rem, int(length))
		if err != nil {
			return Entrypoint{}, input, err
		}
		return Entrypoint{Kind: EntrypointCustom, name: name}, rem, nil
	default:
		return Entrypoint{}, input, ErrInvalidEntrypoint
	}
}

// Name returns the custom name span, nil for the fixed variants.
func (e Entrypoint) Name() []byte {
	return e.name
}

// String renders the fixed variants as their canonical lowercase
// identifiers. Custom names are converted as-is; upstream validation
// guarantees the bytes are valid text.
func (e Entrypoint) String() string {
	switch e.Kind {
	case EntrypointDefault:
		return "default"
	case EntrypointRoot:
		return "root"
	case EntrypointDo:
		return "do"
	case EntrypointSetDelegate:
		return "set_delegate"
	case EntrypointRemoveDelegate:
		return "remove_delegate"
	case EntrypointCustom:
		return string(e.name)
	default:
		return "invalid"
	}
}
