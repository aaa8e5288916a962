// Copyright (C) 2021-2025, Zondax GmbH
// Licensed under the Apache License, Version 2.0

package app

// CLA is the single application class byte; every command frame must carry
// it.
const CLA byte = 0x80

// Legacy instruction codes shared by both variants.
const (
	InsLegacyGetVersion      byte = 0x00
	InsLegacyGetPublicKey    byte = 0x02
	InsLegacyPromptPublicKey byte = 0x03
	InsLegacySign            byte = 0x04
	InsLegacyGit             byte = 0x09
	InsLegacySignWithHash    byte = 0x0F
)

// Wallet-only legacy instruction codes.
const (
	InsLegacySignUnsafe byte = 0x05
)

// Baking-only legacy instruction codes. The authorization-related ones are
// recognized but deliberately refused; only the watermark ones still route.
const (
	InsLegacyAuthorizeBaking       byte = 0x01
	InsLegacyReset                 byte = 0x06
	InsLegacyQueryAuthKey          byte = 0x07
	InsLegacyQueryMainHWM          byte = 0x08
	InsLegacySetup                 byte = 0x0A
	InsLegacyQueryAllHWM           byte = 0x0B
	InsLegacyDeauthorize           byte = 0x0C
	InsLegacyQueryAuthKeyWithCurve byte = 0x0D
	InsLegacyHMAC                  byte = 0x0E
)

// Current instruction codes.
const (
	InsGetVersion byte = 0x10
	InsGetAddress byte = 0x11
	InsSign       byte = 0x12
)

// Baking-only current instruction codes.
const (
	InsAuthorizeBaking       byte = 0xA1
	InsQueryAuthKey          byte = 0xA7
	InsDeauthorizeBaking     byte = 0xAC
	InsQueryAuthKeyWithCurve byte = 0xAD
	InsBakerSign             byte = 0xAF
)

// Diagnostic instruction codes, active only with Config.Dev.
const (
	InsDevHash   byte = 0xF0
	InsDevExcept byte = 0xF1
	InsDevEcho   byte = 0xF2
)
