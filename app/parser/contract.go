// Copyright (C) 2021-2025, Zondax GmbH
// Licensed under the Apache License, Version 2.0

package parser

// HashLen is the length of the key/contract hashes used in operation
// payloads.
const HashLen = 20

// PublicKeyHash is a curve tag plus a 20-byte key hash, the encoding of an
// implicit account source.
type PublicKeyHash struct {
	Curve Curve
	Hash  []byte
}

// DecodePublicKeyHash reads a curve tag followed by a 20-byte hash.
func DecodePublicKeyHash(input []byte) (PublicKeyHash, []byte, error) {
	tag, rem, err := takeByte(input)
	if err != nil {
		return PublicKeyHash{}, input, err
	}
	curve, err := CurveFromTag(tag)
	if err != nil {
		return PublicKeyHash{}, input, err
	}
	hash, rem, err := take(rem, HashLen)
	if err != nil {
		return PublicKeyHash{}, input, err
	}
	return PublicKeyHash{Curve: curve, Hash: hash}, rem, nil
}

// ContractKind discriminates the two contract identifier encodings.
type ContractKind uint8

const (
	// ContractImplicit is a key-hash-addressed account: curve tag + hash.
	ContractImplicit ContractKind = iota
	// ContractOriginated is a contract hash followed by one padding byte.
	ContractOriginated
)

// ContractID is a tagged reference to an implicit account or an originated
// contract. Curve is meaningful only for the implicit kind.
type ContractID struct {
	Kind  ContractKind
	Curve Curve
	Hash  []byte
}

// DecodeContractID reads tag 0x00 (implicit: public key hash) or tag 0x01
// (originated: 20-byte hash plus a padding byte). Other tags are rejected.
func DecodeContractID(input []byte) (ContractID, []byte, error) {
	tag, rem, err := takeByte(input)
	if err != nil {
		return ContractID{}, input, err
	}

	switch tag {
	case 0x00:
		pkh, rem, err := DecodePublicKeyHash(rem)
		if err != nil {
			return ContractID{}, input, err
		}
		return ContractID{Kind: ContractImplicit, Curve: pkh.Curve, Hash: pkh.Hash}, rem, nil
	case 0x01:
		hash, rem, err := take(rem, HashLen)
		if err != nil {
			return ContractID{}, input, err
		}
		// trailing padding byte
		if _, rem, err = takeByte(rem); err != nil {
			return ContractID{}, input, err
		}
		return ContractID{Kind: ContractOriginated, Hash: hash}, rem, nil
	default:
		return ContractID{}, input, ErrInvalidContractTag
	}
}
