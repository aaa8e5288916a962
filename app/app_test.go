// Copyright (C) 2021-2025, Zondax GmbH
// Licensed under the Apache License, Version 2.0

package app

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/isabella232/ledger-tezos/apdu"
	"github.com/isabella232/ledger-tezos/app/bip32"
	"github.com/isabella232/ledger-tezos/app/parser"
)

type testKeyring struct{}

func (testKeyring) PublicKey(parser.Curve, bip32.Path) ([]byte, string, error) {
	return bytes.Repeat([]byte{0xAB}, 32), "tz1testaddress", nil
}

func (testKeyring) Sign(parser.Curve, bip32.Path, []byte) ([]byte, []byte, error) {
	return bytes.Repeat([]byte{0xD1}, 32), bytes.Repeat([]byte{0x51}, 64), nil
}

// exchange runs one frame through the top-level entry point.
func exchange(t *testing.T, a *App, frame []byte) (payload []byte, st apdu.Status, flags uint32) {
	t.Helper()

	buf := make([]byte, apdu.BufferSize)
	copy(buf, frame)

	tx := a.HandleAPDU(&flags, buf, uint32(len(frame)))
	require.GreaterOrEqual(t, int(tx), 2, "every response carries a status word")

	resp := buf[:tx]
	st = apdu.Status(binary.BigEndian.Uint16(resp[len(resp)-2:]))
	return resp[:len(resp)-2], st, flags
}

func walletApp() *App {
	return New(Config{Variant: VariantWallet}, testKeyring{})
}

func bakingApp() *App {
	return New(Config{Variant: VariantBaking}, testKeyring{})
}

func testPath(t *testing.T) []byte {
	t.Helper()
	path, err := bip32.NewPath(0x8000002c, 0x800006c1, 0x80000000, 0x80000000)
	require.NoError(t, err)
	return path.Serialize()
}

func frame(ins, p1, p2 byte, data []byte) []byte {
	return append([]byte{CLA, ins, p1, p2, byte(len(data))}, data...)
}

func TestHandleAPDUTooShort(t *testing.T) {
	a := walletApp()

	for rx := uint32(0); rx < apdu.MinLength; rx++ {
		buf := make([]byte, apdu.BufferSize)
		var flags uint32

		tx := a.HandleAPDU(&flags, buf, rx)
		require.Equal(t, uint32(2), tx, "rx=%d", rx)
		require.Equal(t, []byte{0x67, 0x00}, buf[:2], "rx=%d", rx)
	}
}

func TestHandleAPDUBadCLA(t *testing.T) {
	a := walletApp()

	for _, cla := range []byte{0x00, 0x55, 0xE0} {
		payload, st, _ := exchange(t, a, []byte{cla, InsGetVersion, 0, 0, 0, 0xAA, 0xBB})
		require.Equal(t, apdu.StatusClaNotSupported, st, "cla=%#02x", cla)
		require.Empty(t, payload)
	}
}

func TestVersionHandlers(t *testing.T) {
	a := walletApp()

	payload, st, _ := exchange(t, a, frame(InsLegacyGetVersion, 0, 0, nil))
	require.Equal(t, apdu.StatusSuccess, st)
	require.Equal(t, []byte{0x00, VersionMajor, VersionMinor, VersionPatch}, payload)

	payload, st, _ = exchange(t, a, frame(InsGetVersion, 0, 0, nil))
	require.Equal(t, apdu.StatusSuccess, st)
	require.Len(t, payload, 8)
	require.Equal(t, TargetID, binary.BigEndian.Uint32(payload[4:]))

	payload, st, _ = exchange(t, bakingApp(), frame(InsLegacyGetVersion, 0, 0, nil))
	require.Equal(t, apdu.StatusSuccess, st)
	require.Equal(t, byte(0x01), payload[0])
}

func TestGitHandler(t *testing.T) {
	payload, st, _ := exchange(t, walletApp(), frame(InsLegacyGit, 0, 0, nil))
	require.Equal(t, apdu.StatusSuccess, st)
	require.Equal(t, append([]byte(GitCommit), 0x00), payload)
}

func TestVariantExclusivity(t *testing.T) {
	wallet := walletApp()
	baking := bakingApp()

	// baking-only codes under the wallet variant fall through to the
	// common set and are unknown there
	for _, ins := range []byte{InsLegacyReset, InsLegacyQueryMainHWM, InsAuthorizeBaking, InsBakerSign} {
		_, st, _ := exchange(t, wallet, frame(ins, 0, 0, nil))
		require.Equal(t, apdu.StatusCommandNotAllowed, st, "ins=%#02x", ins)
	}

	// wallet-only unsafe sign is unknown under baking
	_, st, _ := exchange(t, baking, frame(InsLegacySignUnsafe, 0, 0, nil))
	require.Equal(t, apdu.StatusCommandNotAllowed, st)

	// recognized but refused legacy baking codes
	for _, ins := range []byte{
		InsLegacyAuthorizeBaking, InsLegacyQueryAuthKey, InsLegacySetup,
		InsLegacyDeauthorize, InsLegacyQueryAuthKeyWithCurve, InsLegacyHMAC,
	} {
		_, st, _ := exchange(t, baking, frame(ins, 0, 0, nil))
		require.Equal(t, apdu.StatusCommandNotAllowed, st, "ins=%#02x", ins)
	}
}

func TestUnknownInstruction(t *testing.T) {
	_, st, _ := exchange(t, walletApp(), frame(0x42, 0, 0, nil))
	require.Equal(t, apdu.StatusCommandNotAllowed, st)
}

func TestDevInstructionsGated(t *testing.T) {
	plain := walletApp()
	dev := New(Config{Variant: VariantWallet, Dev: true}, testKeyring{})

	_, st, _ := exchange(t, plain, frame(InsDevHash, 0, 0, []byte("abc")))
	require.Equal(t, apdu.StatusCommandNotAllowed, st)

	payload, st, _ := exchange(t, dev, frame(InsDevHash, 0, 0, []byte("abc")))
	require.Equal(t, apdu.StatusSuccess, st)
	digest := sha256.Sum256([]byte("abc"))
	require.Equal(t, digest[:], payload)

	_, st, _ = exchange(t, dev, frame(InsDevExcept, 0x00, 0, nil))
	require.Equal(t, apdu.StatusExecutionError, st)

	payload, st, flags := exchange(t, dev, frame(InsDevEcho, 0, 0, []byte{0xAA, 0xBB}))
	require.Equal(t, apdu.StatusSuccess, st)
	require.Equal(t, []byte{0xAA, 0xBB}, payload)
	require.Equal(t, FlagReplyAsync, flags&FlagReplyAsync)
}

func TestGetAddress(t *testing.T) {
	a := walletApp()
	path := testPath(t)

	for _, ins := range []byte{InsLegacyGetPublicKey, InsLegacyPromptPublicKey, InsGetAddress} {
		payload, st, flags := exchange(t, a, frame(ins, 0, 0, path))
		require.Equal(t, apdu.StatusSuccess, st, "ins=%#02x", ins)
		require.Equal(t, byte(32), payload[0])
		require.Equal(t, []byte("tz1testaddress"), payload[33:])
		require.Zero(t, flags)
	}

	// P1 >= 1 requests confirmation: response deferred via the async flag
	_, st, flags := exchange(t, a, frame(InsGetAddress, 1, 0, path))
	require.Equal(t, apdu.StatusSuccess, st)
	require.Equal(t, FlagReplyAsync, flags&FlagReplyAsync)

	_, st, _ = exchange(t, a, frame(InsGetAddress, 0, 0x09, path))
	require.Equal(t, apdu.StatusInvalidP1P2, st)

	_, st, _ = exchange(t, a, frame(InsGetAddress, 0, 0, []byte{0, 1, 2}))
	require.Equal(t, apdu.StatusDataInvalid, st)
}

func TestFlagsResetPerCall(t *testing.T) {
	a := walletApp()

	_, _, flags := exchange(t, a, frame(InsGetAddress, 1, 0, testPath(t)))
	require.NotZero(t, flags)

	_, _, flags = exchange(t, a, frame(InsGetVersion, 0, 0, nil))
	require.Zero(t, flags)
}

const transferHex = "0035e993d8c7aaa42b5e3ccd86a33390ececc73abd" +
	"904e010a0ae807" +
	"000035e993d8c7aaa42b5e3ccd86a33390ececc73abd" +
	"00"

func TestSignUpload(t *testing.T) {
	a := walletApp()
	path := testPath(t)

	blob, err := hex.DecodeString(transferHex)
	require.NoError(t, err)

	_, st, _ := exchange(t, a, frame(InsSign, P1Init, 0, path))
	require.Equal(t, apdu.StatusSuccess, st)

	_, st, _ = exchange(t, a, frame(InsSign, P1Add, 0, blob[:20]))
	require.Equal(t, apdu.StatusSuccess, st)

	payload, st, flags := exchange(t, a, frame(InsSign, P1Last, 0, blob[20:]))
	require.Equal(t, apdu.StatusSuccess, st)
	require.Equal(t, bytes.Repeat([]byte{0x51}, 64), payload)
	require.Equal(t, FlagReplyAsync, flags&FlagReplyAsync)
}

func TestSignWithHashRepliesDigest(t *testing.T) {
	a := walletApp()

	blob, err := hex.DecodeString(transferHex)
	require.NoError(t, err)

	_, st, _ := exchange(t, a, frame(InsLegacySignWithHash, P1Init, 0, testPath(t)))
	require.Equal(t, apdu.StatusSuccess, st)

	payload, st, _ := exchange(t, a, frame(InsLegacySignWithHash, P1Last, 0, blob))
	require.Equal(t, apdu.StatusSuccess, st)
	require.Len(t, payload, 96)
	require.Equal(t, bytes.Repeat([]byte{0xD1}, 32), payload[:32])
}

func TestSignRejectsMalformedOperation(t *testing.T) {
	a := walletApp()

	_, st, _ := exchange(t, a, frame(InsSign, P1Init, 0, testPath(t)))
	require.Equal(t, apdu.StatusSuccess, st)

	_, st, _ = exchange(t, a, frame(InsSign, P1Last, 0, []byte{0x00, 0x01, 0x02}))
	require.Equal(t, apdu.StatusDataInvalid, st)

	// upload state is gone after the failure
	_, st, _ = exchange(t, a, frame(InsSign, P1Add, 0, []byte{0xAA}))
	require.Equal(t, apdu.StatusConditionsNotSatisfied, st)
}

func TestSignUnsafeSkipsParsing(t *testing.T) {
	a := walletApp()

	_, st, _ := exchange(t, a, frame(InsLegacySignUnsafe, P1Init, 0, testPath(t)))
	require.Equal(t, apdu.StatusSuccess, st)

	payload, st, flags := exchange(t, a, frame(InsLegacySignUnsafe, P1Last, 0, []byte{0xDE, 0xAD}))
	require.Equal(t, apdu.StatusSuccess, st)
	require.Len(t, payload, 64)
	require.Zero(t, flags&FlagReplyAsync, "blind signing has nothing to review")
}

func TestSignAddWithoutInit(t *testing.T) {
	_, st, _ := exchange(t, walletApp(), frame(InsSign, P1Add, 0, []byte{0x01}))
	require.Equal(t, apdu.StatusConditionsNotSatisfied, st)
}

func TestWatermarks(t *testing.T) {
	a := bakingApp()

	_, st, _ := exchange(t, a, frame(InsLegacyReset, 0, 0, []byte{0x00, 0x01, 0x00, 0x00}))
	require.Equal(t, apdu.StatusSuccess, st)

	payload, st, _ := exchange(t, a, frame(InsLegacyQueryMainHWM, 0, 0, nil))
	require.Equal(t, apdu.StatusSuccess, st)
	require.Equal(t, []byte{0x00, 0x01, 0x00, 0x00}, payload)

	payload, st, _ = exchange(t, a, frame(InsLegacyQueryAllHWM, 0, 0, nil))
	require.Equal(t, apdu.StatusSuccess, st)
	require.Len(t, payload, 12)

	_, st, _ = exchange(t, a, frame(InsLegacyReset, 0, 0, []byte{0x01}))
	require.Equal(t, apdu.StatusWrongLength, st)
}

func TestBakingAuthorization(t *testing.T) {
	a := bakingApp()
	path := testPath(t)

	// nothing authorized yet
	_, st, _ := exchange(t, a, frame(InsQueryAuthKey, 0, 0, nil))
	require.Equal(t, apdu.StatusConditionsNotSatisfied, st)

	payload, st, flags := exchange(t, a, frame(InsAuthorizeBaking, 0, 0, path))
	require.Equal(t, apdu.StatusSuccess, st)
	require.Equal(t, byte(32), payload[0])
	require.Equal(t, FlagReplyAsync, flags&FlagReplyAsync)

	payload, st, _ = exchange(t, a, frame(InsQueryAuthKey, 0, 0, nil))
	require.Equal(t, apdu.StatusSuccess, st)
	require.Equal(t, path, payload)

	payload, st, _ = exchange(t, a, frame(InsQueryAuthKeyWithCurve, 0, 0, nil))
	require.Equal(t, apdu.StatusSuccess, st)
	require.Equal(t, byte(parser.CurveEd25519), payload[0])
	require.Equal(t, path, payload[1:])

	payload, st, _ = exchange(t, a, frame(InsBakerSign, 0, 0, []byte{0x01, 0x02}))
	require.Equal(t, apdu.StatusSuccess, st)
	require.Len(t, payload, 96)

	_, st, _ = exchange(t, a, frame(InsDeauthorizeBaking, 0, 0, nil))
	require.Equal(t, apdu.StatusSuccess, st)

	_, st, _ = exchange(t, a, frame(InsBakerSign, 0, 0, []byte{0x01}))
	require.Equal(t, apdu.StatusConditionsNotSatisfied, st)
}
