// Copyright (C) 2021-2025, Zondax GmbH
// Forked from github.com/zondax/ledger-go
// Licensed under the Apache License, Version 2.0

package ledger_tezos

import (
	"encoding/binary"
	"errors"
)

const tagAPDU = 0x05

var (
	errPacketSize   = errors.New("packet size must be at least 6")
	errBadChannel  = errors.New("unexpected channel in packet")
	errBadTag      = errors.New("unexpected tag in packet")
	errBadSequence = errors.New("unexpected sequence number in packet")
	errShortPacket = errors.New("packet shorter than transport header")
)

// WrapCommandAPDU turns the command into a sequence of fixed-size packets
// for HID transport. The first packet header carries the total command
// length; continuation headers carry a sequence number.
func WrapCommandAPDU(channel uint16, command []byte, packetSize int) ([][]byte, error) {
	if packetSize < 6 {
		return nil, errPacketSize
	}

	var chunks [][]byte

	firstPacket := make([]byte, packetSize)
	binary.BigEndian.PutUint16(firstPacket[0:2], channel)
	firstPacket[2] = tagAPDU
	binary.BigEndian.PutUint16(firstPacket[3:5], uint16(len(command)))

	offset := copy(firstPacket[5:], command)
	chunks = append(chunks, firstPacket)

	seqNum := uint16(0)
	for offset < len(command) {
		packet := make([]byte, packetSize)
		binary.BigEndian.PutUint16(packet[0:2], channel)
		packet[2] = tagAPDU
		binary.BigEndian.PutUint16(packet[3:5], seqNum)
		seqNum++

		offset += copy(packet[5:], command[offset:])
		chunks = append(chunks, packet)
	}

	return chunks, nil
}

// responseAssembler reassembles a response APDU from transport packets. The
// declared total length from the first packet decides completion, so
// payloads that legitimately end in zero bytes survive intact.
type responseAssembler struct {
	channel  uint16
	started  bool
	expected int
	nextSeq  uint16
	data     []byte
}

func newResponseAssembler(channel uint16) *responseAssembler {
	return &responseAssembler{channel: channel, expected: -1}
}

// Push consumes one transport packet.
func (a *responseAssembler) Push(packet []byte) error {
	if len(packet) < 5 {
		return errShortPacket
	}
	if binary.BigEndian.Uint16(packet[0:2]) != a.channel {
		return errBadChannel
	}
	if packet[2] != tagAPDU {
		return errBadTag
	}

	seqOrLen := binary.BigEndian.Uint16(packet[3:5])
	if !a.started {
		a.started = true
		a.expected = int(seqOrLen)
	} else {
		if seqOrLen != a.nextSeq {
			return errBadSequence
		}
		a.nextSeq++
	}

	a.data = append(a.data, packet[5:]...)
	return nil
}

// Done reports whether the declared response length has been received.
func (a *responseAssembler) Done() bool {
	return a.started && len(a.data) >= a.expected
}

// Payload returns exactly the declared response bytes.
func (a *responseAssembler) Payload() []byte {
	if !a.Done() {
		return nil
	}
	return a.data[:a.expected]
}
