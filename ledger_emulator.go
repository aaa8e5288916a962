// Copyright (C) 2021-2025, Zondax GmbH
// Forked from github.com/zondax/ledger-go
// Licensed under the Apache License, Version 2.0

package ledger_tezos

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/isabella232/ledger-tezos/apdu"
	"github.com/isabella232/ledger-tezos/app"
	"github.com/isabella232/ledger-tezos/app/bip32"
	"github.com/isabella232/ledger-tezos/app/parser"
)

// Emulator is a LedgerDevice that runs the embedded app in-process,
// bypassing HID framing: one Exchange is one command frame. It backs the
// tests and the CLI's offline mode.
type Emulator struct {
	app   *app.App
	flags uint32
	buf   [apdu.BufferSize]byte
}

// NewEmulator starts an emulated device for the given variant and keyring.
func NewEmulator(cfg app.Config, keyring app.Keyring) *Emulator {
	return &Emulator{app: app.New(cfg, keyring)}
}

func (e *Emulator) Exchange(command []byte) ([]byte, error) {
	if len(command) < apdu.MinLength {
		return nil, errors.New("APDU commands should not be smaller than 5")
	}
	if len(command) > len(e.buf) {
		return nil, errors.New("APDU command larger than the device buffer")
	}

	log.Debugf("[EMU] => %x", command)

	copy(e.buf[:], command)
	tx := e.app.HandleAPDU(&e.flags, e.buf[:], uint32(len(command)))

	response := make([]byte, tx)
	copy(response, e.buf[:tx])

	log.Debugf("[EMU] <= %x flags=%#x", response, e.flags)
	return response, nil
}

// Flags returns the output flags of the last exchange.
func (e *Emulator) Flags() uint32 {
	return e.flags
}

func (e *Emulator) Close() error {
	return nil
}

// FakeKeyring is a deterministic stand-in for the secure element, for the
// emulator and tests only. Keys are hashes of their own derivation request;
// nothing here is real cryptography.
type FakeKeyring struct{}

func (FakeKeyring) PublicKey(curve parser.Curve, path bip32.Path) ([]byte, string, error) {
	sum := sha256.Sum256(append([]byte{byte(curve)}, path.Serialize()...))
	addr := "tz1" + hex.EncodeToString(sum[:16])
	return sum[:], addr, nil
}

func (FakeKeyring) Sign(curve parser.Curve, path bip32.Path, message []byte) ([]byte, []byte, error) {
	digest := sha256.Sum256(message)
	key := sha256.Sum256(append([]byte{byte(curve)}, path.Serialize()...))
	sig := sha256.Sum256(append(key[:], digest[:]...))
	return digest[:], append(sig[:], sig[:]...), nil
}
