// Package tagstream is a third Ops backend: a compact, length-prefixed
// binary tag/value encoding over []byte, demonstrating a non-text
// representation per spec.md §1's own example list (SPEC_FULL.md D3).
//
// Every value is a standalone []byte blob: a one-byte tag followed by a
// tag-specific payload. Lists and maps nest complete blobs. There is no
// third-party binary TLV codec anywhere in the retrieved example pack to
// ground a dependency choice here, so this backend is justified stdlib
// use of encoding/binary (see DESIGN.md).
package tagstream

import (
	"encoding/binary"
	"math"

	"github.com/arkenfold/datafix"
)

type tag byte

const (
	tagDouble tag = iota
	tagFloat
	tagLong
	tagInt
	tagShort
	tagByte
	tagString
	tagBoolean
	tagUnit
	tagList
	tagMap
)

// Ops implements datafix.Ops[[]byte].
type Ops struct{}

var _ datafix.Ops[[]byte] = Ops{}

func unexpected(expected string) datafix.DataError {
	return &datafix.UnexpectedTypeError{Expected: expected}
}

func frame(t tag, payload []byte) []byte {
	out := make([]byte, 0, 1+len(payload))
	out = append(out, byte(t))
	out = append(out, payload...)
	return out
}

func putUvarint(v uint64) []byte {
	buf := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(buf, v)
	return buf[:n]
}

func (Ops) CreateDouble(v float64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, math.Float64bits(v))
	return frame(tagDouble, buf)
}

func (Ops) CreateFloat(v float32) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, math.Float32bits(v))
	return frame(tagFloat, buf)
}

func (Ops) CreateLong(v int64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(v))
	return frame(tagLong, buf)
}

func (Ops) CreateInt(v int32) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(v))
	return frame(tagInt, buf)
}

func (Ops) CreateShort(v int16) []byte {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, uint16(v))
	return frame(tagShort, buf)
}

func (Ops) CreateByte(v int8) []byte { return frame(tagByte, []byte{byte(v)}) }

func (Ops) CreateString(v string) []byte {
	lenPrefix := putUvarint(uint64(len(v)))
	payload := append(lenPrefix, []byte(v)...)
	return frame(tagString, payload)
}

func (Ops) CreateBoolean(v bool) []byte {
	b := byte(0)
	if v {
		b = 1
	}
	return frame(tagBoolean, []byte{b})
}

func (Ops) CreateUnit() []byte { return frame(tagUnit, nil) }

func (Ops) CreateList(values [][]byte) []byte {
	payload := putUvarint(uint64(len(values)))
	for _, v := range values {
		payload = append(payload, putUvarint(uint64(len(v)))...)
		payload = append(payload, v...)
	}
	return frame(tagList, payload)
}

func (Ops) CreateMap(entries []datafix.MapEntry[[]byte]) []byte {
	payload := putUvarint(uint64(len(entries)))
	for _, e := range entries {
		payload = append(payload, putUvarint(uint64(len(e.Key)))...)
		payload = append(payload, []byte(e.Key)...)
		payload = append(payload, putUvarint(uint64(len(e.Value)))...)
		payload = append(payload, e.Value...)
	}
	return frame(tagMap, payload)
}

func checkTag(value []byte, want tag, name string) ([]byte, datafix.DataError) {
	if len(value) < 1 || tag(value[0]) != want {
		return nil, unexpected(name)
	}
	return value[1:], nil
}

func (Ops) GetDouble(value []byte) (float64, datafix.DataError) {
	body, err := checkTag(value, tagDouble, "double")
	if err != nil || len(body) < 8 {
		return 0, unexpected("double")
	}
	return math.Float64frombits(binary.BigEndian.Uint64(body)), nil
}

func (Ops) GetFloat(value []byte) (float32, datafix.DataError) {
	body, err := checkTag(value, tagFloat, "float")
	if err != nil || len(body) < 4 {
		return 0, unexpected("float")
	}
	return math.Float32frombits(binary.BigEndian.Uint32(body)), nil
}

func (Ops) GetLong(value []byte) (int64, datafix.DataError) {
	body, err := checkTag(value, tagLong, "long")
	if err != nil || len(body) < 8 {
		return 0, unexpected("long")
	}
	return int64(binary.BigEndian.Uint64(body)), nil
}

func (Ops) GetInt(value []byte) (int32, datafix.DataError) {
	body, err := checkTag(value, tagInt, "int")
	if err != nil || len(body) < 4 {
		return 0, unexpected("int")
	}
	return int32(binary.BigEndian.Uint32(body)), nil
}

func (Ops) GetShort(value []byte) (int16, datafix.DataError) {
	body, err := checkTag(value, tagShort, "short")
	if err != nil || len(body) < 2 {
		return 0, unexpected("short")
	}
	return int16(binary.BigEndian.Uint16(body)), nil
}

func (Ops) GetByte(value []byte) (int8, datafix.DataError) {
	body, err := checkTag(value, tagByte, "byte")
	if err != nil || len(body) < 1 {
		return 0, unexpected("byte")
	}
	return int8(body[0]), nil
}

func (Ops) GetString(value []byte) (string, datafix.DataError) {
	body, err := checkTag(value, tagString, "string")
	if err != nil {
		return "", err
	}
	n, rest := readUvarint(body)
	if uint64(len(rest)) < n {
		return "", unexpected("string")
	}
	return string(rest[:n]), nil
}

func (Ops) GetBoolean(value []byte) (bool, datafix.DataError) {
	body, err := checkTag(value, tagBoolean, "boolean")
	if err != nil || len(body) < 1 {
		return false, unexpected("boolean")
	}
	return body[0] != 0, nil
}

func (Ops) GetUnit(value []byte) datafix.DataError {
	_, err := checkTag(value, tagUnit, "unit")
	return err
}

func readUvarint(buf []byte) (uint64, []byte) {
	v, n := binary.Uvarint(buf)
	if n <= 0 {
		return 0, buf
	}
	return v, buf[n:]
}

func (Ops) GetList(value []byte) ([][]byte, datafix.DataError) {
	body, err := checkTag(value, tagList, "list")
	if err != nil {
		return nil, err
	}
	count, rest := readUvarint(body)
	out := make([][]byte, 0, count)
	for i := uint64(0); i < count; i++ {
		l, r := readUvarint(rest)
		if uint64(len(r)) < l {
			return nil, unexpected("list")
		}
		out = append(out, r[:l])
		rest = r[l:]
	}
	return out, nil
}

func (Ops) GetMap(value []byte) ([]datafix.MapEntry[[]byte], datafix.DataError) {
	body, err := checkTag(value, tagMap, "map")
	if err != nil {
		return nil, err
	}
	count, rest := readUvarint(body)
	out := make([]datafix.MapEntry[[]byte], 0, count)
	for i := uint64(0); i < count; i++ {
		kl, r := readUvarint(rest)
		if uint64(len(r)) < kl {
			return nil, unexpected("map")
		}
		key := string(r[:kl])
		r = r[kl:]
		vl, r2 := readUvarint(r)
		if uint64(len(r2)) < vl {
			return nil, unexpected("map")
		}
		out = append(out, datafix.MapEntry[[]byte]{Key: key, Value: r2[:vl]})
		rest = r2[vl:]
	}
	return out, nil
}

type listView struct {
	ops  Ops
	raw  []byte
	vals [][]byte
}

func (v *listView) Append(value []byte) {
	v.vals = append(v.vals, value)
	v.raw = v.ops.CreateList(v.vals)
}

func (v *listView) Get(index int) ([]byte, datafix.DataError) {
	if index < 0 || index >= len(v.vals) {
		return nil, &datafix.IndexOutOfBoundsError{Index: index, Length: len(v.vals)}
	}
	return v.vals[index], nil
}

func (v *listView) Len() int { return len(v.vals) }

func (v *listView) Each(fn func(index int, value []byte)) {
	for i, val := range v.vals {
		fn(i, val)
	}
}

// Materialize returns the current encoding. Unlike a reference-typed
// backend, appending to v.vals cannot be observed through the original
// []byte the caller passed to GetListMut, so Append keeps v.raw in sync
// and this just hands it back.
func (v *listView) Materialize() []byte { return v.raw }

func (o Ops) GetListMut(value []byte) (datafix.ListView[[]byte], datafix.DataError) {
	vals, err := o.GetList(value)
	if err != nil {
		return nil, err
	}
	return &listView{ops: o, raw: value, vals: vals}, nil
}

type mapView struct {
	ops     Ops
	entries []datafix.MapEntry[[]byte]
}

func (v *mapView) indexOf(name string) int {
	for i, e := range v.entries {
		if e.Key == name {
			return i
		}
	}
	return -1
}

func (v *mapView) Get(name string) ([]byte, datafix.DataError) {
	i := v.indexOf(name)
	if i < 0 {
		return nil, &datafix.KeyNotFoundError{Key: name}
	}
	return v.entries[i].Value, nil
}

func (v *mapView) Set(name string, value []byte) {
	i := v.indexOf(name)
	if i >= 0 {
		v.entries[i].Value = value
		return
	}
	v.entries = append(v.entries, datafix.MapEntry[[]byte]{Key: name, Value: value})
}

func (v *mapView) Remove(name string) ([]byte, datafix.DataError) {
	i := v.indexOf(name)
	if i < 0 {
		return nil, &datafix.KeyNotFoundError{Key: name}
	}
	val := v.entries[i].Value
	v.entries = append(v.entries[:i], v.entries[i+1:]...)
	return val, nil
}

func (v *mapView) Keys() []string {
	out := make([]string, len(v.entries))
	for i, e := range v.entries {
		out[i] = e.Key
	}
	return out
}

// Materialize re-encodes v.entries into a fresh tag-stream blob. []byte
// gives Set/Remove nothing to mutate in place (the prior encoding is
// immutable and a different length besides), so, unlike the reference-typed
// backends, this is the only way a caller observes the mutation.
func (v *mapView) Materialize() []byte { return v.ops.CreateMap(v.entries) }

func (o Ops) GetMapMut(value []byte) (datafix.MapView[[]byte], datafix.DataError) {
	entries, err := o.GetMap(value)
	if err != nil {
		return nil, err
	}
	return &mapView{ops: o, entries: entries}, nil
}

type ownedMapView struct {
	entries []datafix.MapEntry[[]byte]
	taken   map[string]bool
}

func (v *ownedMapView) Take(name string) ([]byte, datafix.DataError) {
	for _, e := range v.entries {
		if e.Key == name && !v.taken[name] {
			v.taken[name] = true
			return e.Value, nil
		}
	}
	return nil, &datafix.KeyNotFoundError{Key: name}
}

func (v *ownedMapView) Entries() []datafix.MapEntry[[]byte] {
	out := make([]datafix.MapEntry[[]byte], 0, len(v.entries))
	for _, e := range v.entries {
		if !v.taken[e.Key] {
			out = append(out, e)
		}
	}
	return out
}

func (o Ops) TakeMap(value []byte) (datafix.OwnedMapView[[]byte], datafix.DataError) {
	entries, err := o.GetMap(value)
	if err != nil {
		return nil, err
	}
	return &ownedMapView{entries: entries, taken: map[string]bool{}}, nil
}

func (o Ops) CreateMapSpecial(entries []datafix.OptionalEntry[[]byte]) ([]byte, datafix.DataError) {
	return datafix.CreateMapSpecialDefault[[]byte](o, entries)
}
