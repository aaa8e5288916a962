// Copyright (C) 2021-2025, Zondax GmbH
// Licensed under the Apache License, Version 2.0

package app

import (
	"github.com/isabella232/ledger-tezos/app/bip32"
	"github.com/isabella232/ledger-tezos/app/parser"
)

// Keyring is the secure-element collaborator behind address derivation and
// signing. The exact public key and address formats are its contract, not
// this package's; handlers pass decoded paths through and relay what comes
// back.
type Keyring interface {
	// PublicKey derives the public key and display address for the key at
	// path on the given curve.
	PublicKey(curve parser.Curve, path bip32.Path) (pub []byte, addr string, err error)

	// Sign hashes message and signs the digest with the key at path.
	Sign(curve parser.Curve, path bip32.Path, message []byte) (digest, sig []byte, err error)
}
