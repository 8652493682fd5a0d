// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compressed

import "io"

// maxRun is the longest run a single tuple can hold, minus one.
const maxRun = 15

// Buffer run length encodes the 4 most significant bits of each byte.
// Each tuple is 4 bits of value followed by 4 bits of count - 1.
// Reading does not modify the encoded data, so a Buffer can be rewound with Rewind.
type Buffer struct {
	buf  []byte
	off  int  // Read position (tuple)
	used byte // Values already read from the tuple at off
}

// Reset replaces the encoded data and rewinds.
func (buffer *Buffer) Reset(buf []byte) {
	buffer.buf = buf
	buffer.Rewind()
}

// Rewind moves the read position back to the first value.
func (buffer *Buffer) Rewind() {
	buffer.off = 0
	buffer.used = 0
}

// writeByte encodes a byte as its 4 most significant bits.
func (buffer *Buffer) writeByte(b byte) {
	buf := buffer.buf

	// Nibble
	next := b >> 4

	var current, countMinusOne byte
	end := len(buf) - 1

	if len(buf) > 0 {
		current = buf[end] >> 4
		countMinusOne = buf[end] & maxRun
	} else {
		countMinusOne = maxRun // Full
	}

	if next != current || countMinusOne == maxRun {
		buf = append(buf, next<<4)
	} else {
		buf[end]++
	}

	buffer.buf = buf
}

func (buffer *Buffer) Write(buf []byte) (int, error) {
	for _, b := range buf {
		buffer.writeByte(b)
	}
	return len(buf), nil
}

// readByte must only be called while buffer.off < len(buffer.buf).
func (buffer *Buffer) readByte() byte {
	tuple := buffer.buf[buffer.off]

	if buffer.used < tuple&maxRun {
		buffer.used++
	} else {
		buffer.off++
		buffer.used = 0
	}

	return tuple & 0b11110000
}

func (buffer *Buffer) Read(buf []byte) (int, error) {
	i := 0
	for ; i < len(buf) && buffer.off < len(buffer.buf); i++ {
		buf[i] = buffer.readByte()
	}

	if i == 0 && len(buf) > 0 {
		return 0, io.EOF
	}

	return i, nil
}

// Len returns the number of decoded bytes left to read.
func (buffer *Buffer) Len() int {
	n := -int(buffer.used)
	for _, tuple := range buffer.buf[buffer.off:] {
		n += int(tuple&maxRun) + 1
	}
	return n
}

// Grow makes space for about n more values.
func (buffer *Buffer) Grow(n int) {
	compressed := n / 2
	if cap(buffer.buf)-len(buffer.buf) < compressed {
		buf := make([]byte, len(buffer.buf), len(buffer.buf)+compressed)
		copy(buf, buffer.buf)
		buffer.buf = buf
	}
}

// Bytes returns the encoded data, including anything already read.
func (buffer *Buffer) Bytes() []byte {
	return buffer.buf
}
