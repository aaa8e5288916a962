// Copyright (C) 2021-2025, Zondax GmbH
// Forked from github.com/zondax/ledger-go
// Licensed under the Apache License, Version 2.0

package ledger_tezos

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

const testChannel = 0x0101

func roundTrip(t *testing.T, command []byte, packetSize int) []byte {
	t.Helper()

	chunks, err := WrapCommandAPDU(testChannel, command, packetSize)
	require.NoError(t, err)

	assembler := newResponseAssembler(testChannel)
	for _, chunk := range chunks {
		require.Len(t, chunk, packetSize)
		require.NoError(t, assembler.Push(chunk))
	}
	require.True(t, assembler.Done())
	return assembler.Payload()
}

func TestWrapUnwrapSinglePacket(t *testing.T) {
	command := []byte{0x80, 0x10, 0x00, 0x00, 0x00}
	require.Equal(t, command, roundTrip(t, command, 64))
}

func TestWrapUnwrapMultiPacket(t *testing.T) {
	command := make([]byte, 200)
	for i := range command {
		command[i] = byte(i)
	}

	chunks, err := WrapCommandAPDU(testChannel, command, 64)
	require.NoError(t, err)
	require.Len(t, chunks, 4)

	require.Equal(t, command, roundTrip(t, command, 64))
}

func TestUnwrapKeepsTrailingZeros(t *testing.T) {
	// a payload ending in zero bytes must survive reassembly; status
	// words like 0x9000 end in one
	command := append(bytes.Repeat([]byte{0xAA}, 5), 0x90, 0x00)
	require.Equal(t, command, roundTrip(t, command, 64))
}

func TestWrapRejectsTinyPackets(t *testing.T) {
	_, err := WrapCommandAPDU(testChannel, []byte{1, 2, 3, 4, 5}, 5)
	require.ErrorIs(t, err, errPacketSize)
}

func TestUnwrapRejectsForeignPackets(t *testing.T) {
	chunks, err := WrapCommandAPDU(0x0202, []byte{1, 2, 3, 4, 5}, 64)
	require.NoError(t, err)

	assembler := newResponseAssembler(testChannel)
	require.ErrorIs(t, assembler.Push(chunks[0]), errBadChannel)

	require.ErrorIs(t, assembler.Push([]byte{0x01}), errShortPacket)
}

func TestUnwrapRejectsOutOfOrderPackets(t *testing.T) {
	command := make([]byte, 200)
	chunks, err := WrapCommandAPDU(testChannel, command, 64)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 2)

	assembler := newResponseAssembler(testChannel)
	require.NoError(t, assembler.Push(chunks[0]))
	require.ErrorIs(t, assembler.Push(chunks[2]), errBadSequence)
}
