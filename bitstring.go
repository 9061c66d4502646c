package everybit

import "strings"

// ParseBits builds a bit array from a string of '0' and '1' characters.
// The first character is bit 0. The array has exactly len(s) bits.
func ParseBits(s string, optFns ...Option) (*BitArray, error) {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c != '0' && c != '1' {
			return nil, &BitStringError{Pos: i, Char: rune(c)}
		}
	}

	ba, err := New(uint64(len(s)), optFns...)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(s); i++ {
		if s[i] == '1' {
			ba.set(uint64(i), true)
		}
	}
	return ba, nil
}

// String returns the bits of ba as '0' and '1' characters, bit 0 first.
func (ba *BitArray) String() string {
	if ba.words == nil {
		return "<freed>"
	}
	var sb strings.Builder
	sb.Grow(int(ba.bitSz))
	for i := uint64(0); i < ba.bitSz; i++ {
		if ba.get(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Equal reports whether ba and other have the same length and bits.
// Padding bits past Len are ignored. A freed array equals nothing.
func (ba *BitArray) Equal(other *BitArray) bool {
	if ba.words == nil || other.words == nil || ba.bitSz != other.bitSz {
		return false
	}
	full := ba.bitSz / WordBits
	for w := uint64(0); w < full; w++ {
		if ba.words[w] != other.words[w] {
			return false
		}
	}
	if rem := ba.bitSz % WordBits; rem != 0 {
		// Bits are MSB-first, so the valid bits of the last word are the
		// rem most significant ones.
		keep := ^uint64(0) << (WordBits - rem)
		if (ba.words[full]^other.words[full])&keep != 0 {
			return false
		}
	}
	return true
}

// EqualString reports whether ba holds exactly the bits spelled by s.
// Characters other than '0' and '1' never match.
func (ba *BitArray) EqualString(s string) bool {
	if ba.words == nil || uint64(len(s)) != ba.bitSz {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			if ba.get(uint64(i)) {
				return false
			}
		case '1':
			if !ba.get(uint64(i)) {
				return false
			}
		default:
			return false
		}
	}
	return true
}
