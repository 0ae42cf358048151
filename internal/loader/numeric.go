// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"encoding/binary"
	"fmt"
	"math"
)

// elemKind is the storage class of one tensor element.
type elemKind int

const (
	kindFloat elemKind = iota
	kindBFloat
	kindInt
	kindUint
	kindBool
)

// elemType describes how to read one element.
type elemType struct {
	kind elemKind
	size int
}

// decodeElements reads count elements of t from data.
func decodeElements(data []byte, t elemType, count int64, order binary.ByteOrder) ([]float64, error) {
	need := count * int64(t.size)
	if count < 0 || int64(len(data)) < need {
		return nil, fmt.Errorf("%w: payload has %d bytes, need %d", ErrMalformed, len(data), need)
	}

	out := make([]float64, count)
	for i := range out {
		b := data[i*t.size : (i+1)*t.size]
		switch t.kind {
		case kindFloat:
			switch t.size {
			case 2:
				out[i] = float64(halfToFloat32(order.Uint16(b)))
			case 4:
				out[i] = float64(math.Float32frombits(order.Uint32(b)))
			case 8:
				out[i] = math.Float64frombits(order.Uint64(b))
			}
		case kindBFloat:
			out[i] = float64(math.Float32frombits(uint32(order.Uint16(b)) << 16))
		case kindInt:
			switch t.size {
			case 1:
				out[i] = float64(int8(b[0]))
			case 2:
				out[i] = float64(int16(order.Uint16(b)))
			case 4:
				out[i] = float64(int32(order.Uint32(b)))
			case 8:
				out[i] = float64(int64(order.Uint64(b)))
			}
		case kindUint:
			switch t.size {
			case 1:
				out[i] = float64(b[0])
			case 2:
				out[i] = float64(order.Uint16(b))
			case 4:
				out[i] = float64(order.Uint32(b))
			case 8:
				out[i] = float64(order.Uint64(b))
			}
		case kindBool:
			if b[0] != 0 {
				out[i] = 1
			}
		}
	}
	return out, nil
}

// halfToFloat32 widens an IEEE 754 binary16 value.
func halfToFloat32(h uint16) float32 {
	sign := uint32(h>>15) << 31
	exp := uint32(h>>10) & 0x1f
	mant := uint32(h) & 0x3ff

	switch exp {
	case 0:
		if mant == 0 {
			return math.Float32frombits(sign)
		}
		// Subnormal: normalize the mantissa.
		e := uint32(127 - 15 + 1)
		for mant&0x400 == 0 {
			mant <<= 1
			e--
		}
		mant &= 0x3ff
		return math.Float32frombits(sign | e<<23 | mant<<13)
	case 0x1f:
		return math.Float32frombits(sign | 0xff<<23 | mant<<13)
	}
	return math.Float32frombits(sign | (exp+127-15)<<23 | mant<<13)
}
