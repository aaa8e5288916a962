// Copyright (C) 2021-2025, Zondax GmbH
// Forked from github.com/zondax/ledger-go
// Licensed under the Apache License, Version 2.0

// Package ledger_tezos drives the Tezos signing app from the host side:
// over HID for a physical device, or through an in-process emulator running
// the embedded command core from the app package.
package ledger_tezos

// LedgerAdmin defines the interface for managing Ledger devices.
type LedgerAdmin interface {
	CountDevices() int
	ListDevices() ([]string, error)
	Connect(deviceIndex int) (LedgerDevice, error)
}

// LedgerDevice defines the interface for exchanging command frames with a
// Ledger device.
type LedgerDevice interface {
	Exchange(command []byte) ([]byte, error)
	Close() error
}
