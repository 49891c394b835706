// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

// The transaction wire format prefixes every variable-length array with a
// compact-u16: little endian base-128 with a continuation bit, at most
// three bytes.

// AppendShortVec appends the compact-u16 encoding of [n] to [dst].
func AppendShortVec(dst []byte, n int) []byte {
	v := uint16(n)
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// DecodeShortVec reads a compact-u16 from the front of [b], returning the
// value and the number of bytes consumed.
func DecodeShortVec(b []byte) (int, int, error) {
	var out int
	for i := 0; i < 3; i++ {
		if i >= len(b) {
			return 0, 0, ErrInsufficientLength
		}
		elem := int(b[i])
		out |= (elem & 0x7f) << (7 * i)
		if elem&0x80 == 0 {
			if out > 0xffff {
				return 0, 0, ErrLengthTooLarge
			}
			return out, i + 1, nil
		}
	}
	return 0, 0, ErrLengthTooLarge
}
