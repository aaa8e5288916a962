// Copyright (C) 2021-2025, Zondax GmbH
// Licensed under the Apache License, Version 2.0

// tezosctl exercises the Tezos signing app from the host side: against the
// in-process emulator by default, or a physical device over HID.
package main

import (
	"encoding/binary"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	ledger "github.com/isabella232/ledger-tezos"
	"github.com/isabella232/ledger-tezos/apdu"
	"github.com/isabella232/ledger-tezos/app"
	"github.com/isabella232/ledger-tezos/app/bip32"
)

const hardened = 0x80000000

func main() {
	cfgPath := flag.String("config", "", "path to tezosctl config.toml")
	pathStr := flag.String("path", "m/44'/1729'/0'/0'", "derivation path for address commands")
	curveStr := flag.String("curve", "ed25519", "curve: ed25519, secp256k1, secp256r1, bip32-ed25519")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tezosctl [flags] version|git|address")
		os.Exit(2)
	}

	cfg := defaultConfig()
	if *cfgPath != "" {
		var err error
		if cfg, err = loadConfig(*cfgPath); err != nil {
			fatal(err)
		}
	}

	device, err := connect(cfg)
	if err != nil {
		fatal(err)
	}
	defer device.Close()

	switch flag.Arg(0) {
	case "version":
		err = runVersion(device)
	case "git":
		err = runGit(device)
	case "address":
		err = runAddress(device, *pathStr, *curveStr)
	default:
		err = fmt.Errorf("unknown command %q", flag.Arg(0))
	}
	if err != nil {
		fatal(err)
	}
}

func connect(cfg config) (ledger.LedgerDevice, error) {
	if cfg.Emulator {
		return ledger.NewEmulator(cfg.App, ledger.FakeKeyring{}), nil
	}
	return ledger.NewLedgerAdmin().Connect(cfg.DeviceIndex)
}

// exchange sends one command and separates payload from the status word.
func exchange(device ledger.LedgerDevice, command []byte) ([]byte, error) {
	response, err := device.Exchange(command)
	if err != nil {
		return nil, err
	}
	if len(response) < 2 {
		return nil, fmt.Errorf("response too short: %d bytes", len(response))
	}

	st := apdu.Status(binary.BigEndian.Uint16(response[len(response)-2:]))
	if st != apdu.StatusSuccess {
		return nil, fmt.Errorf("device returned %#04x: %s", uint16(st), st)
	}
	return response[:len(response)-2], nil
}

func runVersion(device ledger.LedgerDevice) error {
	payload, err := exchange(device, []byte{app.CLA, app.InsGetVersion, 0, 0, 0})
	if err != nil {
		return err
	}
	if len(payload) < 4 {
		return fmt.Errorf("malformed version reply: %x", payload)
	}

	variant := "wallet"
	if payload[0] == 0x01 {
		variant = "baking"
	}
	fmt.Printf("%s v%d.%d.%d\n", variant, payload[1], payload[2], payload[3])
	return nil
}

func runGit(device ledger.LedgerDevice) error {
	payload, err := exchange(device, []byte{app.CLA, app.InsLegacyGit, 0, 0, 0})
	if err != nil {
		return err
	}
	fmt.Printf("commit %s\n", strings.TrimRight(string(payload), "\x00"))
	return nil
}

func runAddress(device ledger.LedgerDevice, pathStr, curveStr string) error {
	path, err := parsePath(pathStr)
	if err != nil {
		return err
	}
	p2, err := curveP2(curveStr)
	if err != nil {
		return err
	}

	data := path.Serialize()
	command := append([]byte{app.CLA, app.InsGetAddress, 0, p2, byte(len(data))}, data...)

	payload, err := exchange(device, command)
	if err != nil {
		return err
	}
	if len(payload) < 1 || 1+int(payload[0]) > len(payload) {
		return fmt.Errorf("malformed address reply: %x", payload)
	}

	pubLen := int(payload[0])
	fmt.Printf("public key %s\n", hex.EncodeToString(payload[1:1+pubLen]))
	fmt.Printf("address    %s\n", string(payload[1+pubLen:]))
	return nil
}

// parsePath parses "m/44'/1729'/0'/0'" notation; apostrophe marks a
// hardened component.
func parsePath(s string) (bip32.Path, error) {
	parts := strings.Split(strings.TrimPrefix(s, "m/"), "/")
	components := make([]uint32, 0, len(parts))

	for _, part := range parts {
		harden := uint32(0)
		if strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h") {
			harden = hardened
			part = part[:len(part)-1]
		}
		v, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return bip32.Path{}, fmt.Errorf("bad path component %q: %w", part, err)
		}
		if v >= hardened {
			return bip32.Path{}, fmt.Errorf("path component %q out of range", part)
		}
		components = append(components, uint32(v)|harden)
	}

	return bip32.NewPath(components...)
}

func curveP2(s string) (byte, error) {
	switch s {
	case "ed25519":
		return 0x00, nil
	case "secp256k1":
		return 0x01, nil
	case "secp256r1":
		return 0x02, nil
	case "bip32-ed25519":
		return 0x03, nil
	default:
		return 0, fmt.Errorf("unknown curve %q", s)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "tezosctl:", err)
	os.Exit(1)
}
