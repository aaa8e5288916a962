// Copyright (C) 2021-2025, Zondax GmbH
// Licensed under the Apache License, Version 2.0

package app

import (
	"github.com/isabella232/ledger-tezos/apdu"
	"github.com/isabella232/ledger-tezos/app/bip32"
	"github.com/isabella232/ledger-tezos/app/parser"
)

// getAddress serves the three address-retrieval instruction codes. P1 >= 1
// requests on-device confirmation, P2 selects the curve, and the command
// data is the derivation path.
type getAddress struct {
	keyring Keyring
}

func (h *getAddress) Handle(flags *uint32, r *apdu.Reader, w *apdu.Writer) error {
	payload, err := r.Payload()
	if err != nil {
		return err
	}

	curve, err := parser.CurveFromP2(r.P2())
	if err != nil {
		return apdu.StatusInvalidP1P2
	}

	path, err := bip32.Read(payload)
	if err != nil {
		return apdu.StatusDataInvalid
	}

	pub, addr, err := h.keyring.PublicKey(curve, path)
	if err != nil {
		return apdu.StatusExecutionError
	}

	if r.P1() >= 1 {
		// Response content is ready; the transport holds it until the
		// user approves on screen.
		*flags |= FlagReplyAsync
	}

	if err := w.AppendByte(byte(len(pub))); err != nil {
		return err
	}
	if err := w.Append(pub); err != nil {
		return err
	}
	return w.Append([]byte(addr))
}
