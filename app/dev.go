// Copyright (C) 2021-2025, Zondax GmbH
// Licensed under the Apache License, Version 2.0

package app

import (
	"crypto/sha256"

	"github.com/isabella232/ledger-tezos/apdu"
)

// Diagnostic handlers, reachable only when Config.Dev is set. They exist to
// exercise the I/O and error paths from the host side.

// devHash answers with the sha256 digest of the command data.
type devHash struct{}

func (h *devHash) Handle(_ *uint32, r *apdu.Reader, w *apdu.Writer) error {
	payload, err := r.Payload()
	if err != nil {
		return err
	}
	digest := sha256.Sum256(payload)
	return w.Append(digest[:])
}

// devExcept fails with a status selected by P1, to verify host-side error
// handling end to end.
type devExcept struct{}

func (h *devExcept) Handle(_ *uint32, r *apdu.Reader, _ *apdu.Writer) error {
	switch r.P1() {
	case 0x00:
		return apdu.StatusExecutionError
	case 0x01:
		return apdu.StatusDataInvalid
	case 0x02:
		return apdu.StatusSignVerifyError
	default:
		return apdu.StatusUnknown
	}
}

// devEcho reflects the command data and raises the async flag as if a
// review screen were pending.
type devEcho struct{}

func (h *devEcho) Handle(flags *uint32, r *apdu.Reader, w *apdu.Writer) error {
	payload, err := r.Payload()
	if err != nil {
		return err
	}
	*flags |= FlagReplyAsync
	return w.Append(payload)
}
