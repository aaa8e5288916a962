// Copyright (C) 2021-2025, Zondax GmbH
// Licensed under the Apache License, Version 2.0

// Package apdu implements the command/response frame layout exchanged with
// the host: a 5-byte header (CLA, INS, P1, P2, LC) followed by LC data
// bytes, answered by an arbitrary payload plus a trailing status word.
package apdu

import "encoding/binary"

// Fixed byte offsets within a command frame.
const (
	OffsetCLA     = 0
	OffsetINS     = 1
	OffsetP1      = 2
	OffsetP2      = 3
	OffsetDataLen = 4
	OffsetData    = 5

	// MinLength is the smallest frame that still carries a full header.
	MinLength = 5

	// BufferSize is the I/O buffer shared between command and response.
	BufferSize = 260
)

// Reader is a validated view over a received command frame. All accessors
// are bounds-checked against the declared received length; nothing past rx
// is ever exposed.
type Reader struct {
	buf []byte
	rx  uint32
}

// NewReader validates the raw buffer against the minimum header size.
func NewReader(buf []byte, rx uint32) (*Reader, error) {
	if rx < MinLength || int(rx) > len(buf) {
		return nil, StatusWrongLength
	}
	return &Reader{buf: buf, rx: rx}, nil
}

func (r *Reader) CLA() byte { return r.buf[OffsetCLA] }
func (r *Reader) INS() byte { return r.buf[OffsetINS] }
func (r *Reader) P1() byte  { return r.buf[OffsetP1] }
func (r *Reader) P2() byte  { return r.buf[OffsetP2] }

// Payload returns exactly the declared LC bytes of command data. A declared
// length that reaches past the received length is rejected, never truncated.
func (r *Reader) Payload() ([]byte, error) {
	lc := uint32(r.buf[OffsetDataLen])
	if OffsetData+lc > r.rx {
		return nil, StatusWrongLength
	}
	return r.buf[OffsetData : OffsetData+lc], nil
}

// Writer returns a response writer over the same physical buffer. The
// command bytes are dead once the first response byte lands.
func (r *Reader) Writer() *Writer {
	return NewWriter(r.buf)
}

// Writer accumulates response bytes at the start of the shared buffer.
type Writer struct {
	buf []byte
	tx  int
}

func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf}
}

// Append copies p into the response, failing with a capacity error if the
// buffer cannot hold it. Nothing is written on failure.
func (w *Writer) Append(p []byte) error {
	if w.tx+len(p) > len(w.buf) {
		return StatusOutputBufferTooSmall
	}
	copy(w.buf[w.tx:], p)
	w.tx += len(p)
	return nil
}

// AppendByte appends a single response byte.
func (w *Writer) AppendByte(b byte) error {
	if w.tx+1 > len(w.buf) {
		return StatusOutputBufferTooSmall
	}
	w.buf[w.tx] = b
	w.tx++
	return nil
}

// AppendUint32 appends v big-endian.
func (w *Writer) AppendUint32(v uint32) error {
	var be [4]byte
	binary.BigEndian.PutUint32(be[:], v)
	return w.Append(be[:])
}

// Written reports the number of payload bytes accumulated so far.
func (w *Writer) Written() int {
	return w.tx
}

// Close appends the 2-byte big-endian status word and returns the total
// response length. If even the status word cannot fit, the caller must fall
// back to overwriting the first two bytes of the buffer; see app.HandleAPDU.
func (w *Writer) Close(st Status) (int, error) {
	if w.tx+2 > len(w.buf) {
		return 0, StatusOutputBufferTooSmall
	}
	binary.BigEndian.PutUint16(w.buf[w.tx:], uint16(st))
	w.tx += 2
	return w.tx, nil
}

// PutStatus writes st at the very start of buf, the degenerate fallback
// used when a response cannot be closed normally. buf must hold 2 bytes.
func PutStatus(buf []byte, st Status) int {
	binary.BigEndian.PutUint16(buf[:2], uint16(st))
	return 2
}
