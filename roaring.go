package everybit

import (
	"math/bits"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// ToBitmap returns the positions of the set bits of ba as a roaring bitmap.
func (ba *BitArray) ToBitmap() (*roaring64.Bitmap, error) {
	if ba.words == nil {
		return nil, ErrFreed
	}
	rb := roaring64.New()
	full := ba.bitSz / WordBits
	for w := uint64(0); w <= full && w < uint64(len(ba.words)); w++ {
		word := ba.words[w]
		if w == full {
			rem := ba.bitSz % WordBits
			if rem == 0 {
				break
			}
			word &= ^uint64(0) << (WordBits - rem)
		}
		for word != 0 {
			p := uint64(bits.LeadingZeros64(word))
			rb.Add(w*WordBits + p)
			word &^= mask(p)
		}
	}
	return rb, nil
}

// FromBitmap builds a bit array of bitSz bits whose set bits are the
// positions in rb. A position at or past bitSz yields ErrOutOfRange.
func FromBitmap(bitSz uint64, rb *roaring64.Bitmap, optFns ...Option) (*BitArray, error) {
	if !rb.IsEmpty() {
		if maxPos := rb.Maximum(); maxPos >= bitSz {
			return nil, &RangeError{Op: "from bitmap", Index: maxPos, Size: bitSz}
		}
	}

	ba, err := New(bitSz, optFns...)
	if err != nil {
		return nil, err
	}
	it := rb.Iterator()
	for it.HasNext() {
		ba.set(it.Next(), true)
	}
	return ba, nil
}
