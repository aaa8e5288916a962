// Copyright (C) 2021-2025, Zondax GmbH
// Licensed under the Apache License, Version 2.0

package parser

import "encoding/binary"

// Parameters is the optional payload of a transfer: the entrypoint to call
// and the raw michelson argument bytes.
type Parameters struct {
	Entrypoint Entrypoint
	Michelson  []byte
}

// DecodeParameters reads an entrypoint, a 4-byte big-endian length and
// exactly that many payload bytes.
func DecodeParameters(input []byte) (Parameters, []byte, error) {
	entrypoint, rem, err := DecodeEntrypoint(input)
	if err != nil {
		return Parameters{}, input, err
	}
	lenBytes, rem, err := take(rem, 4)
	if err != nil {
		return Parameters{}, input, err
	}
	michelson, rem, err := take(rem, int(binary.BigEndian.Uint32(lenBytes)))
	if err != nil {
		return Parameters{}, input, err
	}
	return Parameters{Entrypoint: entrypoint, Michelson: michelson}, rem, nil
}

// Transfer is a decoded transaction operation. All byte fields borrow from
// the parse input.
type Transfer struct {
	Source       PublicKeyHash
	Fee          Zarith
	Counter      Zarith
	GasLimit     Zarith
	StorageLimit Zarith
	Amount       Zarith
	Destination  ContractID
	// Parameters is nil when the transfer carries no contract call.
	Parameters *Parameters
}

// DecodeTransfer decodes a transfer strictly left to right with no
// backtracking. Any sub-decode failure aborts the whole decode and is
// propagated unchanged together with the position it failed at, so callers
// can report how much was consumed before the failure.
func DecodeTransfer(input []byte) (Transfer, []byte, error) {
	var t Transfer
	var err error

	rem := input
	if t.Source, rem, err = DecodePublicKeyHash(rem); err != nil {
		return Transfer{}, rem, err
	}
	for _, z := range []*Zarith{&t.Fee, &t.Counter, &t.GasLimit, &t.StorageLimit, &t.Amount} {
		if *z, rem, err = DecodeZarith(rem, false); err != nil {
			return Transfer{}, rem, err
		}
	}
	if t.Destination, rem, err = DecodeContractID(rem); err != nil {
		return Transfer{}, rem, err
	}

	hasParams, rem, err := takeByte(rem)
	if err != nil {
		return Transfer{}, rem, err
	}
	if hasParams != 0 {
		var params Parameters
		if params, rem, err = DecodeParameters(rem); err != nil {
			return Transfer{}, rem, err
		}
		t.Parameters = &params
	}

	return t, rem, nil
}
