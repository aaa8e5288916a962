// Copyright (C) 2021-2025, Zondax GmbH
// Licensed under the Apache License, Version 2.0

package app

import (
	"github.com/isabella232/ledger-tezos/apdu"
	"github.com/isabella232/ledger-tezos/app/bip32"
	"github.com/isabella232/ledger-tezos/app/parser"
)

// watermarks serves the legacy high-water-mark instructions of the baking
// variant. The marks live in memory; persistent storage is the platform's
// concern, not this core's.
type watermarks struct {
	main    uint32
	test    uint32
	chainID uint32
}

func newWatermarks() *watermarks {
	return &watermarks{}
}

func (h *watermarks) Handle(_ *uint32, r *apdu.Reader, w *apdu.Writer) error {
	payload, err := r.Payload()
	if err != nil {
		return err
	}

	switch r.INS() {
	case InsLegacyReset:
		if len(payload) != 4 {
			return apdu.StatusWrongLength
		}
		level := uint32(payload[0])<<24 | uint32(payload[1])<<16 | uint32(payload[2])<<8 | uint32(payload[3])
		h.main = level
		h.test = level
		return nil

	case InsLegacyQueryMainHWM:
		return w.AppendUint32(h.main)

	case InsLegacyQueryAllHWM:
		if err := w.AppendUint32(h.main); err != nil {
			return err
		}
		if err := w.AppendUint32(h.test); err != nil {
			return err
		}
		return w.AppendUint32(h.chainID)

	default:
		return apdu.StatusInsNotSupported
	}
}

// bakingHandler serves the current baking instruction codes: key
// authorization bookkeeping and one-shot baker signing with the authorized
// key.
type bakingHandler struct {
	keyring Keyring
	hwm     *watermarks

	authorized bool
	curve      parser.Curve
	path       bip32.Path
}

func newBaking(keyring Keyring, hwm *watermarks) *bakingHandler {
	return &bakingHandler{keyring: keyring, hwm: hwm}
}

func (h *bakingHandler) Handle(flags *uint32, r *apdu.Reader, w *apdu.Writer) error {
	payload, err := r.Payload()
	if err != nil {
		return err
	}

	switch r.INS() {
	case InsAuthorizeBaking:
		return h.authorize(flags, r.P2(), payload, w)

	case InsDeauthorizeBaking:
		if len(payload) != 0 {
			return apdu.StatusWrongLength
		}
		h.authorized = false
		return nil

	case InsQueryAuthKey:
		if !h.authorized {
			return apdu.StatusConditionsNotSatisfied
		}
		return w.Append(h.path.Serialize())

	case InsQueryAuthKeyWithCurve:
		if !h.authorized {
			return apdu.StatusConditionsNotSatisfied
		}
		if err := w.AppendByte(byte(h.curve)); err != nil {
			return err
		}
		return w.Append(h.path.Serialize())

	case InsBakerSign:
		return h.sign(payload, w)

	default:
		return apdu.StatusInsNotSupported
	}
}

// authorize records the baking key and answers with its public key. The
// approval flow gates the actual authorization on screen, hence the async
// flag.
func (h *bakingHandler) authorize(flags *uint32, p2 byte, payload []byte, w *apdu.Writer) error {
	curve, err := parser.CurveFromP2(p2)
	if err != nil {
		return apdu.StatusInvalidP1P2
	}
	path, err := bip32.Read(payload)
	if err != nil {
		return apdu.StatusDataInvalid
	}

	pub, _, err := h.keyring.PublicKey(curve, path)
	if err != nil {
		return apdu.StatusExecutionError
	}

	h.authorized = true
	h.curve = curve
	h.path = path
	*flags |= FlagReplyAsync

	if err := w.AppendByte(byte(len(pub))); err != nil {
		return err
	}
	return w.Append(pub)
}

func (h *bakingHandler) sign(payload []byte, w *apdu.Writer) error {
	if !h.authorized {
		return apdu.StatusConditionsNotSatisfied
	}

	digest, sig, err := h.keyring.Sign(h.curve, h.path, payload)
	if err != nil {
		return apdu.StatusExecutionError
	}
	if err := w.Append(digest); err != nil {
		return err
	}
	return w.Append(sig)
}
