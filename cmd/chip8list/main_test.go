package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/trace"
	"github.com/retroenv/retrogolib/assert"
)

func TestVerifyOutput(t *testing.T) {
	rom := []byte{0x00, 0xE0, 0x6A, 0x05, 0xFF, 0xFF, 0x12}

	var listing bytes.Buffer
	assert.NoError(t, trace.List(&listing, rom))
	assert.NoError(t, verifyOutput(rom, listing.Bytes()))

	changed := []byte{0x00, 0xE0, 0x6A, 0x06, 0xFF, 0xFF}
	err := verifyOutput(changed, listing.Bytes())
	assert.ErrorContains(t, err, "1 offset mismatches, first at offset 3")
}

func TestParseListing(t *testing.T) {
	data, err := parseListing([]byte("200: 6A05  ld VA, $05\n202: 7A01  add VA, $01\n"))
	assert.NoError(t, err)
	assert.True(t, bytes.Equal([]byte{0x6A, 0x05, 0x7A, 0x01}, data))

	_, err = parseListing([]byte("202: 6A05  ld VA, $05\n"))
	assert.ErrorContains(t, err, "unexpected address")

	_, err = parseListing([]byte("garbage\n"))
	assert.ErrorContains(t, err, "malformed line")
}

func TestCheckBufferEqual(t *testing.T) {
	assert.NoError(t, checkBufferEqual([]byte{1, 2}, []byte{1, 2}))
	assert.ErrorContains(t, checkBufferEqual([]byte{1}, []byte{1, 2}), "mismatched lengths")
}

func TestListROM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.ch8")
	assert.NoError(t, os.WriteFile(path, []byte{0x6A, 0x05, 0x7A, 0x01}, 0600))

	rom, listing, err := listROM(path)
	assert.NoError(t, err)
	assert.Len(t, rom, 4)

	lines := strings.Split(strings.TrimSpace(string(listing)), "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "200: 6A05"))
	assert.True(t, strings.HasPrefix(lines[1], "202: 7A01"))
	assert.NoError(t, verifyOutput(rom, listing))

	_, _, err = listROM(filepath.Join(t.TempDir(), "missing.ch8"))
	assert.ErrorContains(t, err, "opening file")
}
