// Copyright (C) 2021-2025, Zondax GmbH
// Licensed under the Apache License, Version 2.0

package parser

// Curve identifies the signature scheme behind a key hash or a derivation
// request.
type Curve uint8

const (
	CurveEd25519 Curve = iota
	CurveSecp256k1
	CurveSecp256r1
	CurveBip32Ed25519
)

// CurveFromTag maps an operation-encoding curve tag. Only the three wire
// tags exist in payloads; the bip32 flavor is selected via P2 only.
func CurveFromTag(tag byte) (Curve, error) {
	switch tag {
	case 0x00:
		return CurveEd25519, nil
	case 0x01:
		return CurveSecp256k1, nil
	case 0x02:
		return CurveSecp256r1, nil
	default:
		return 0, ErrInvalidCurveTag
	}
}

// CurveFromP2 maps the P2 header byte of address and sign commands.
func CurveFromP2(p2 byte) (Curve, error) {
	switch p2 {
	case 0x00:
		return CurveEd25519, nil
	case 0x01:
		return CurveSecp256k1, nil
	case 0x02:
		return CurveSecp256r1, nil
	case 0x03:
		return CurveBip32Ed25519, nil
	default:
		return 0, ErrInvalidCurveTag
	}
}

func (c Curve) String() string {
	switch c {
	case CurveEd25519:
		return "ed25519"
	case CurveSecp256k1:
		return "secp256k1"
	case CurveSecp256r1:
		return "secp256r1"
	case CurveBip32Ed25519:
		return "bip32-ed25519"
	default:
		return "unknown"
	}
}
