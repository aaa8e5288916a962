// Copyright (C) 2021-2025, Zondax GmbH
// Licensed under the Apache License, Version 2.0

// Package app is the command-processing core of the Tezos signing app: it
// routes validated command frames to handler capabilities according to the
// configured variant and guarantees that every exchange, however malformed,
// ends with a well-formed status response in the caller's buffer.
package app

import (
	"github.com/isabella232/ledger-tezos/apdu"
)

// Output flag bits handed back to the transport loop.
const (
	// FlagReplyAsync asks the caller to defer the final response until an
	// external user-approval flow completes.
	FlagReplyAsync uint32 = 0x10
)

// Handler is a single command capability. Handlers read the validated frame,
// write response payload bytes and report the outcome as an error (nil for
// success, an apdu.Status for a wire code).
type Handler interface {
	Handle(flags *uint32, r *apdu.Reader, w *apdu.Writer) error
}

// App routes command frames to handlers. One App serves one execution
// context; commands are processed to completion one at a time and no frame
// state survives between calls.
type App struct {
	cfg Config

	legacyVersion Handler
	version       Handler
	git           Handler
	address       Handler
	sign          Handler
	hwm           Handler
	baking        Handler

	devHash   Handler
	devExcept Handler
	devEcho   Handler
}

// New assembles an App for the given variant. The keyring is the external
// signing collaborator; it is consulted only by the address, sign and
// baking handlers.
func New(cfg Config, keyring Keyring) *App {
	sign := newSign(keyring)
	hwm := newWatermarks()

	return &App{
		cfg:           cfg,
		legacyVersion: &legacyVersionHandler{variant: cfg.Variant},
		version:       &versionHandler{variant: cfg.Variant},
		git:           &gitHandler{},
		address:       &getAddress{keyring: keyring},
		sign:          sign,
		hwm:           hwm,
		baking:        newBaking(keyring, hwm),
		devHash:       &devHash{},
		devExcept:     &devExcept{},
		devEcho:       &devEcho{},
	}
}

// Dispatch routes one validated frame. Flags are reset on entry; the
// returned writer always belongs to the frame's buffer, and the returned
// error (if any) is the status to close the response with.
func (a *App) Dispatch(flags *uint32, r *apdu.Reader) (*apdu.Writer, error) {
	*flags = 0
	w := r.Writer()

	if r.CLA() != CLA {
		return w, apdu.StatusClaNotSupported
	}

	ins := r.INS()
	log.Debugf("dispatch ins=%#02x variant=%s", ins, a.cfg.Variant)

	if a.cfg.Dev {
		switch ins {
		case InsDevHash:
			return w, a.devHash.Handle(flags, r, w)
		case InsDevExcept:
			return w, a.devExcept.Handle(flags, r, w)
		case InsDevEcho:
			return w, a.devEcho.Handle(flags, r, w)
		}
	}

	// The two variants are exclusive: an instruction that exists only in
	// the other variant must not fall through to the common set.
	switch a.cfg.Variant {
	case VariantBaking:
		switch ins {
		case InsLegacyReset, InsLegacyQueryMainHWM, InsLegacyQueryAllHWM:
			return w, a.hwm.Handle(flags, r, w)

		case InsAuthorizeBaking, InsDeauthorizeBaking,
			InsQueryAuthKey, InsQueryAuthKeyWithCurve, InsBakerSign:
			return w, a.baking.Handle(flags, r, w)

		// Known legacy codes that this firmware refuses rather than
		// routes. Refused is not the same signal as undefined.
		case InsLegacyAuthorizeBaking, InsLegacyQueryAuthKey,
			InsLegacySetup, InsLegacyDeauthorize,
			InsLegacyQueryAuthKeyWithCurve, InsLegacyHMAC:
			return w, apdu.StatusCommandNotAllowed
		}
	case VariantWallet:
		if ins == InsLegacySignUnsafe {
			return w, a.sign.Handle(flags, r, w)
		}
	}

	switch ins {
	case InsLegacyGetVersion:
		return w, a.legacyVersion.Handle(flags, r, w)

	case InsLegacyGetPublicKey, InsLegacyPromptPublicKey, InsGetAddress:
		return w, a.address.Handle(flags, r, w)

	case InsLegacyGit:
		return w, a.git.Handle(flags, r, w)

	case InsLegacySign, InsLegacySignWithHash, InsSign:
		return w, a.sign.Handle(flags, r, w)

	case InsGetVersion:
		return w, a.version.Handle(flags, r, w)

	default:
		return w, apdu.StatusCommandNotAllowed
	}
}

// HandleAPDU is the top-level entry point: buf holds rx received bytes and
// is reused for the response. Whatever happens inside, buf ends up holding a
// well-formed response and the returned count covers it, a corrupted reply
// would desynchronize the host session.
func (a *App) HandleAPDU(flags *uint32, buf []byte, rx uint32) uint32 {
	r, err := apdu.NewReader(buf, rx)
	if err != nil {
		return uint32(apdu.PutStatus(buf, apdu.StatusWrongLength))
	}

	w, herr := a.Dispatch(flags, r)

	n, err := w.Close(apdu.StatusOf(herr))
	if err != nil {
		return uint32(apdu.PutStatus(buf, apdu.StatusOutputBufferTooSmall))
	}
	return uint32(n)
}
