// Copyright (C) 2021-2025, Zondax GmbH
// Licensed under the Apache License, Version 2.0

package app

import "fmt"

// Variant selects which of the two mutually exclusive instruction sets the
// app exposes. Exactly one variant is active for the lifetime of an App;
// the dispatcher never consults anything else to decide what is allowed.
type Variant uint8

const (
	// VariantWallet exposes transaction signing, including the legacy
	// unsafe-sign instruction.
	VariantWallet Variant = iota
	// VariantBaking exposes watermark and baking-authorization
	// instructions instead.
	VariantBaking
)

func (v Variant) String() string {
	switch v {
	case VariantWallet:
		return "wallet"
	case VariantBaking:
		return "baking"
	default:
		return "unknown"
	}
}

// ParseVariant maps a configuration string to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "wallet":
		return VariantWallet, nil
	case "baking":
		return VariantBaking, nil
	default:
		return 0, fmt.Errorf("app: unknown variant %q", s)
	}
}

// Config is the immutable startup configuration of an App.
type Config struct {
	Variant Variant
	// Dev enables the diagnostic instruction set (hash, except, echo).
	Dev bool
}
