// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"encoding/binary"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/tfctl/diffai/internal/tensor"
	"github.com/tfctl/diffai/internal/value"
)

// maxSafetensorsHeader bounds the JSON header read from a safetensors file.
const maxSafetensorsHeader = 100 << 20

var safetensorsTypes = map[string]elemType{
	"F64":  {kind: kindFloat, size: 8},
	"F32":  {kind: kindFloat, size: 4},
	"F16":  {kind: kindFloat, size: 2},
	"BF16": {kind: kindBFloat, size: 2},
	"I64":  {kind: kindInt, size: 8},
	"I32":  {kind: kindInt, size: 4},
	"I16":  {kind: kindInt, size: 2},
	"I8":   {kind: kindInt, size: 1},
	"U64":  {kind: kindUint, size: 8},
	"U32":  {kind: kindUint, size: 4},
	"U16":  {kind: kindUint, size: 2},
	"U8":   {kind: kindUint, size: 1},
	"BOOL": {kind: kindBool, size: 1},
}

// ParseSafetensors reads a safetensors file into an object mapping each
// tensor name, in header order, to its summary. The optional __metadata__
// entry is kept as is.
func ParseSafetensors(_ string, data []byte) (value.Value, error) {
	if len(data) < 8 {
		return value.Value{}, fmt.Errorf("%w: truncated safetensors header", ErrMalformed)
	}
	n := binary.LittleEndian.Uint64(data[:8])
	if n > maxSafetensorsHeader || n > uint64(len(data)-8) {
		return value.Value{}, fmt.Errorf("%w: safetensors header length %d", ErrMalformed, n)
	}
	header := data[8 : 8+n]
	payload := data[8+n:]

	if !gjson.ValidBytes(header) {
		return value.Value{}, fmt.Errorf("%w: safetensors header is not json", ErrMalformed)
	}

	var members []value.Member
	var err error
	gjson.ParseBytes(header).ForEach(func(k, v gjson.Result) bool {
		name := k.String()
		if name == "__metadata__" {
			var meta value.Value
			meta, err = value.Lower(v)
			if err != nil {
				return false
			}
			members = append(members, value.Field(name, meta))
			return true
		}

		var t value.Value
		t, err = safetensor(name, v, payload)
		if err != nil {
			return false
		}
		members = append(members, value.Field(name, t))
		return true
	})
	if err != nil {
		return value.Value{}, err
	}
	return value.Object(members...), nil
}

func safetensor(name string, info gjson.Result, payload []byte) (value.Value, error) {
	dtype := info.Get("dtype").String()
	elem, ok := safetensorsTypes[dtype]
	if !ok {
		return value.Value{}, fmt.Errorf("%w: tensor %s dtype %q", ErrUnsupportedFormat, name, dtype)
	}

	shape := []int64{}
	for _, d := range info.Get("shape").Array() {
		if d.Int() < 0 {
			return value.Value{}, fmt.Errorf("%w: tensor %s shape", ErrMalformed, name)
		}
		shape = append(shape, d.Int())
	}

	offsets := info.Get("data_offsets").Array()
	if len(offsets) != 2 {
		return value.Value{}, fmt.Errorf("%w: tensor %s data_offsets", ErrMalformed, name)
	}
	start, end := offsets[0].Uint(), offsets[1].Uint()
	if start > end || end > uint64(len(payload)) {
		return value.Value{}, fmt.Errorf("%w: tensor %s data_offsets [%d, %d] outside payload of %d bytes", ErrMalformed, name, start, end, len(payload))
	}

	count := tensor.Elements(shape)
	if uint64(count)*uint64(elem.size) != end-start {
		return value.Value{}, fmt.Errorf("%w: tensor %s has %d bytes for %d elements", ErrMalformed, name, end-start, count)
	}

	elems, err := decodeElements(payload[start:end], elem, count, binary.LittleEndian)
	if err != nil {
		return value.Value{}, err
	}
	return tensor.Summary(tensor.Compute(shape, dtype, elems)), nil
}
