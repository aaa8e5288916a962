// Copyright (C) 2021-2025, Zondax GmbH
// Licensed under the Apache License, Version 2.0

package app

import "github.com/isabella232/ledger-tezos/apdu"

// Application version, reported by both version instructions.
const (
	VersionMajor byte = 2
	VersionMinor byte = 0
	VersionPatch byte = 0
)

// TargetID identifies the device model in the extended version reply.
const TargetID uint32 = 0x33000004

// GitCommit is the build commit reported by the legacy git instruction.
// Overridden at build time via -ldflags.
var GitCommit = "0000000"

// legacyVersionHandler answers the legacy get-version instruction with the
// variant byte followed by the three version bytes.
type legacyVersionHandler struct {
	variant Variant
}

func (h *legacyVersionHandler) Handle(_ *uint32, _ *apdu.Reader, w *apdu.Writer) error {
	return w.Append([]byte{variantByte(h.variant), VersionMajor, VersionMinor, VersionPatch})
}

// versionHandler answers the current get-version instruction; same as the
// legacy reply plus the target id.
type versionHandler struct {
	variant Variant
}

func (h *versionHandler) Handle(_ *uint32, _ *apdu.Reader, w *apdu.Writer) error {
	if err := w.Append([]byte{variantByte(h.variant), VersionMajor, VersionMinor, VersionPatch}); err != nil {
		return err
	}
	return w.AppendUint32(TargetID)
}

// gitHandler answers with the NUL-terminated build commit string.
type gitHandler struct{}

func (h *gitHandler) Handle(_ *uint32, _ *apdu.Reader, w *apdu.Writer) error {
	if err := w.Append([]byte(GitCommit)); err != nil {
		return err
	}
	return w.AppendByte(0x00)
}

func variantByte(v Variant) byte {
	if v == VariantBaking {
		return 0x01
	}
	return 0x00
}
