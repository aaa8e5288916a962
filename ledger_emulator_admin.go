//go:build ledger_emulator
// +build ledger_emulator

// Copyright (C) 2021-2025, Zondax GmbH
// Forked from github.com/zondax/ledger-go
// Licensed under the Apache License, Version 2.0

package ledger_tezos

import (
	"errors"

	"github.com/isabella232/ledger-tezos/app"
)

type LedgerAdminEmulator struct{}

// NewLedgerAdmin hands out emulated wallet devices when built with the
// ledger_emulator tag.
func NewLedgerAdmin() LedgerAdmin {
	return &LedgerAdminEmulator{}
}

func (admin *LedgerAdminEmulator) CountDevices() int {
	return 1
}

func (admin *LedgerAdminEmulator) ListDevices() ([]string, error) {
	return []string{"emulator"}, nil
}

func (admin *LedgerAdminEmulator) Connect(deviceIndex int) (LedgerDevice, error) {
	if deviceIndex != 0 {
		return nil, errors.New("device not found")
	}
	return NewEmulator(app.Config{Variant: app.VariantWallet}, FakeKeyring{}), nil
}
