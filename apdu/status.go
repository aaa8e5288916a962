// Copyright (C) 2021-2025, Zondax GmbH
// Licensed under the Apache License, Version 2.0

package apdu

import "errors"

// Status is a 2-byte ISO7816 status word, transmitted big-endian at the end
// of every response. Status implements error so handlers can return a wire
// code directly.
type Status uint16

const (
	StatusSuccess                Status = 0x9000
	StatusExecutionError         Status = 0x6400
	StatusWrongLength            Status = 0x6700
	StatusEmptyBuffer            Status = 0x6982
	StatusOutputBufferTooSmall   Status = 0x6983
	StatusDataInvalid            Status = 0x6984
	StatusConditionsNotSatisfied Status = 0x6985
	StatusCommandNotAllowed      Status = 0x6986
	StatusBadKeyHandle           Status = 0x6A80
	StatusInvalidP1P2            Status = 0x6B00
	StatusInsNotSupported        Status = 0x6D00
	StatusClaNotSupported        Status = 0x6E00
	StatusUnknown                Status = 0x6F00
	StatusSignVerifyError        Status = 0x6F01
)

func (s Status) Error() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusExecutionError:
		return "execution error"
	case StatusWrongLength:
		return "wrong length"
	case StatusEmptyBuffer:
		return "empty buffer"
	case StatusOutputBufferTooSmall:
		return "output buffer too small"
	case StatusDataInvalid:
		return "data invalid"
	case StatusConditionsNotSatisfied:
		return "conditions not satisfied"
	case StatusCommandNotAllowed:
		return "command not allowed"
	case StatusBadKeyHandle:
		return "bad key handle"
	case StatusInvalidP1P2:
		return "invalid P1/P2"
	case StatusInsNotSupported:
		return "instruction not supported"
	case StatusClaNotSupported:
		return "class not supported"
	case StatusSignVerifyError:
		return "signature verification error"
	default:
		return "unknown error"
	}
}

// StatusOf collapses a handler error to the status word that goes on the
// wire. A nil error is success; anything that is not already a Status is
// reported as the generic unknown code rather than leaking internal detail.
func StatusOf(err error) Status {
	if err == nil {
		return StatusSuccess
	}
	var st Status
	if errors.As(err, &st) {
		return st
	}
	return StatusUnknown
}
