// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tfctl/diffai/internal/tensor"
	"github.com/tfctl/diffai/internal/value"
)

var npyMagic = []byte("\x93NUMPY")

var (
	npyDescr = regexp.MustCompile(`'descr'\s*:\s*'([^']*)'`)
	npyShape = regexp.MustCompile(`'shape'\s*:\s*\(([^)]*)\)`)
)

// npyNames maps a NumPy type code and width to its dtype name.
var npyNames = map[string]string{
	"f2": "float16", "f4": "float32", "f8": "float64",
	"i1": "int8", "i2": "int16", "i4": "int32", "i8": "int64",
	"u1": "uint8", "u2": "uint16", "u4": "uint32", "u8": "uint64",
	"b1": "bool",
}

// ParseNPY reads a NumPy .npy array (format versions 1 to 3) into a tensor
// summary object.
func ParseNPY(_ string, data []byte) (value.Value, error) {
	if len(data) < 10 || !bytes.HasPrefix(data, npyMagic) {
		return value.Value{}, fmt.Errorf("%w: missing npy magic", ErrMalformed)
	}

	major := data[6]
	var headerLen, offset int
	switch major {
	case 1:
		headerLen, offset = int(binary.LittleEndian.Uint16(data[8:10])), 10
	case 2, 3:
		if len(data) < 12 {
			return value.Value{}, fmt.Errorf("%w: truncated npy header", ErrMalformed)
		}
		headerLen, offset = int(binary.LittleEndian.Uint32(data[8:12])), 12
	default:
		return value.Value{}, fmt.Errorf("%w: npy version %d", ErrUnsupportedFormat, major)
	}
	if offset+headerLen > len(data) {
		return value.Value{}, fmt.Errorf("%w: truncated npy header", ErrMalformed)
	}
	header := string(data[offset : offset+headerLen])

	order, elem, name, err := npyDtype(header)
	if err != nil {
		return value.Value{}, err
	}

	shape, err := npyShapeOf(header)
	if err != nil {
		return value.Value{}, err
	}

	elems, err := decodeElements(data[offset+headerLen:], elem, tensor.Elements(shape), order)
	if err != nil {
		return value.Value{}, err
	}
	return tensor.Summary(tensor.Compute(shape, name, elems)), nil
}

func npyDtype(header string) (binary.ByteOrder, elemType, string, error) {
	m := npyDescr.FindStringSubmatch(header)
	if m == nil {
		return nil, elemType{}, "", fmt.Errorf("%w: npy header has no descr", ErrMalformed)
	}
	descr := m[1]

	var order binary.ByteOrder = binary.LittleEndian
	code := descr
	if len(descr) > 0 && strings.ContainsRune("<>|=", rune(descr[0])) {
		if descr[0] == '>' {
			order = binary.BigEndian
		}
		code = descr[1:]
	}

	name, ok := npyNames[code]
	if !ok {
		return nil, elemType{}, "", fmt.Errorf("%w: npy dtype %s", ErrUnsupportedFormat, descr)
	}
	size, _ := strconv.Atoi(code[1:])

	var kind elemKind
	switch code[0] {
	case 'f':
		kind = kindFloat
	case 'i':
		kind = kindInt
	case 'u':
		kind = kindUint
	case 'b':
		kind = kindBool
	}
	return order, elemType{kind: kind, size: size}, name, nil
}

func npyShapeOf(header string) ([]int64, error) {
	m := npyShape.FindStringSubmatch(header)
	if m == nil {
		return nil, fmt.Errorf("%w: npy header has no shape", ErrMalformed)
	}
	shape := []int64{}
	for _, part := range strings.Split(m[1], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.ParseInt(strings.TrimSuffix(part, "L"), 10, 64)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("%w: npy shape %q", ErrMalformed, m[1])
		}
		shape = append(shape, d)
	}
	return shape, nil
}
