// Copyright (C) 2021-2025, Zondax GmbH
// Licensed under the Apache License, Version 2.0

package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/isabella232/ledger-tezos/app"
)

// tezosctl config.toml key mapping.
type fileConfig struct {
	Variant     string `toml:"variant"`
	Dev         bool   `toml:"dev"`
	Emulator    bool   `toml:"emulator"`
	DeviceIndex int    `toml:"device_index"`
}

type config struct {
	App         app.Config
	Emulator    bool
	DeviceIndex int
}

func defaultConfig() config {
	return config{
		App:      app.Config{Variant: app.VariantWallet},
		Emulator: true,
	}
}

// loadConfig reads a TOML config with default overlay: only keys present in
// the file override defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load tezosctl config: %w", err)
	}

	if meta.IsDefined("variant") {
		variant, err := app.ParseVariant(raw.Variant)
		if err != nil {
			return config{}, err
		}
		cfg.App.Variant = variant
	}
	if meta.IsDefined("dev") {
		cfg.App.Dev = raw.Dev
	}
	if meta.IsDefined("emulator") {
		cfg.Emulator = raw.Emulator
	}
	if meta.IsDefined("device_index") {
		cfg.DeviceIndex = raw.DeviceIndex
	}

	return cfg, nil
}
