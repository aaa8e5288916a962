// Copyright (C) 2021-2025, Zondax GmbH
// Licensed under the Apache License, Version 2.0

package app

import (
	"github.com/isabella232/ledger-tezos/apdu"
	"github.com/isabella232/ledger-tezos/app/bip32"
	"github.com/isabella232/ledger-tezos/app/parser"
)

// Sign upload packet types, carried in P1.
const (
	P1Init byte = 0x00
	P1Add  byte = 0x01
	P1Last byte = 0x02
)

// MaxUploadSize caps the accumulated operation blob.
const MaxUploadSize = 512

// signHandler serves every sign instruction code. Uploads are chunked: an
// init packet carries the derivation path, add packets append operation
// bytes, and the last packet triggers decode and signing. The upload buffer
// is the only state and is reset by every init packet.
type signHandler struct {
	keyring Keyring

	active bool
	curve  parser.Curve
	path   bip32.Path
	blob   []byte
}

func newSign(keyring Keyring) *signHandler {
	return &signHandler{
		keyring: keyring,
		blob:    make([]byte, 0, MaxUploadSize),
	}
}

func (h *signHandler) Handle(flags *uint32, r *apdu.Reader, w *apdu.Writer) error {
	payload, err := r.Payload()
	if err != nil {
		return err
	}

	switch r.P1() {
	case P1Init:
		return h.init(r.P2(), payload)
	case P1Add:
		return h.append(payload)
	case P1Last:
		if err := h.append(payload); err != nil {
			return err
		}
		return h.finish(r.INS(), flags, w)
	default:
		return apdu.StatusInvalidP1P2
	}
}

func (h *signHandler) init(p2 byte, payload []byte) error {
	h.reset()

	curve, err := parser.CurveFromP2(p2)
	if err != nil {
		return apdu.StatusInvalidP1P2
	}
	path, err := bip32.Read(payload)
	if err != nil {
		return apdu.StatusDataInvalid
	}

	h.active = true
	h.curve = curve
	h.path = path
	return nil
}

func (h *signHandler) append(payload []byte) error {
	if !h.active {
		return apdu.StatusConditionsNotSatisfied
	}
	if len(h.blob)+len(payload) > MaxUploadSize {
		h.reset()
		return apdu.StatusDataInvalid
	}
	h.blob = append(h.blob, payload...)
	return nil
}

func (h *signHandler) finish(ins byte, flags *uint32, w *apdu.Writer) error {
	defer h.reset()

	// The unsafe legacy instruction signs the blob blind; every other code
	// requires the operation to decode so it can be reviewed.
	if ins != InsLegacySignUnsafe {
		if _, _, err := parser.DecodeTransfer(h.blob); err != nil {
			log.Debugf("operation rejected: %v", err)
			return apdu.StatusDataInvalid
		}
		*flags |= FlagReplyAsync
	}

	digest, sig, err := h.keyring.Sign(h.curve, h.path, h.blob)
	if err != nil {
		return apdu.StatusExecutionError
	}

	if ins == InsLegacySignWithHash {
		if err := w.Append(digest); err != nil {
			return err
		}
	}
	return w.Append(sig)
}

func (h *signHandler) reset() {
	h.active = false
	h.blob = h.blob[:0]
}
