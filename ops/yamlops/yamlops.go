// Package yamlops is a second Ops backend, built directly on
// gopkg.in/yaml.v3's *yaml.Node (kind + tag + content), demonstrating
// that the Ops abstraction is representation-agnostic rather than
// JSON-shaped by accident (SPEC_FULL.md D2).
package yamlops

import (
	"strconv"

	"github.com/arkenfold/datafix"
	"gopkg.in/yaml.v3"
)

// Ops implements datafix.Ops[*yaml.Node].
type Ops struct{}

var _ datafix.Ops[*yaml.Node] = Ops{}

func scalar(tag string, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func (Ops) CreateDouble(v float64) *yaml.Node {
	return scalar("!!float", strconv.FormatFloat(v, 'g', -1, 64))
}
func (Ops) CreateFloat(v float32) *yaml.Node {
	return scalar("!!float", strconv.FormatFloat(float64(v), 'g', -1, 32))
}
func (Ops) CreateLong(v int64) *yaml.Node   { return scalar("!!int", strconv.FormatInt(v, 10)) }
func (Ops) CreateInt(v int32) *yaml.Node    { return scalar("!!int", strconv.FormatInt(int64(v), 10)) }
func (Ops) CreateShort(v int16) *yaml.Node  { return scalar("!!int", strconv.FormatInt(int64(v), 10)) }
func (Ops) CreateByte(v int8) *yaml.Node    { return scalar("!!int", strconv.FormatInt(int64(v), 10)) }
func (Ops) CreateString(v string) *yaml.Node { return scalar("!!str", v) }
func (Ops) CreateBoolean(v bool) *yaml.Node { return scalar("!!bool", strconv.FormatBool(v)) }
func (Ops) CreateUnit() *yaml.Node          { return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"} }

func (Ops) CreateList(values []*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: append([]*yaml.Node(nil), values...)}
}

func (Ops) CreateMap(entries []datafix.MapEntry[*yaml.Node]) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range entries {
		n.Content = append(n.Content, scalar("!!str", e.Key), e.Value)
	}
	return n
}

func unexpected(expected string) datafix.DataError {
	return &datafix.UnexpectedTypeError{Expected: expected}
}

func requireScalar(n *yaml.Node, tag, kind string) (string, datafix.DataError) {
	if n == nil || n.Kind != yaml.ScalarNode {
		return "", unexpected(kind)
	}
	return n.Value, nil
}

func (Ops) GetDouble(n *yaml.Node) (float64, datafix.DataError) {
	s, err := requireScalar(n, "!!float", "double")
	if err != nil {
		return 0, err
	}
	f, perr := strconv.ParseFloat(s, 64)
	if perr != nil {
		return 0, unexpected("double")
	}
	return f, nil
}

func (Ops) GetFloat(n *yaml.Node) (float32, datafix.DataError) {
	s, err := requireScalar(n, "!!float", "float")
	if err != nil {
		return 0, err
	}
	f, perr := strconv.ParseFloat(s, 32)
	if perr != nil {
		return 0, unexpected("float")
	}
	return float32(f), nil
}

func (Ops) GetLong(n *yaml.Node) (int64, datafix.DataError) {
	s, err := requireScalar(n, "!!int", "long")
	if err != nil {
		return 0, err
	}
	i, perr := strconv.ParseInt(s, 10, 64)
	if perr != nil {
		return 0, unexpected("long")
	}
	return i, nil
}

func (o Ops) GetInt(n *yaml.Node) (int32, datafix.DataError) {
	v, err := o.GetLong(n)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

func (o Ops) GetShort(n *yaml.Node) (int16, datafix.DataError) {
	v, err := o.GetLong(n)
	if err != nil {
		return 0, err
	}
	return int16(v), nil
}

func (o Ops) GetByte(n *yaml.Node) (int8, datafix.DataError) {
	v, err := o.GetLong(n)
	if err != nil {
		return 0, err
	}
	return int8(v), nil
}

func (Ops) GetString(n *yaml.Node) (string, datafix.DataError) {
	return requireScalar(n, "!!str", "string")
}

func (Ops) GetBoolean(n *yaml.Node) (bool, datafix.DataError) {
	s, err := requireScalar(n, "!!bool", "boolean")
	if err != nil {
		return false, err
	}
	b, perr := strconv.ParseBool(s)
	if perr != nil {
		return false, unexpected("boolean")
	}
	return b, nil
}

func (Ops) GetUnit(n *yaml.Node) datafix.DataError {
	if n == nil || n.Kind != yaml.MappingNode || len(n.Content) != 0 {
		return unexpected("unit")
	}
	return nil
}

func (Ops) GetList(n *yaml.Node) ([]*yaml.Node, datafix.DataError) {
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil, unexpected("list")
	}
	return n.Content, nil
}

func mapEntries(n *yaml.Node) ([]datafix.MapEntry[*yaml.Node], datafix.DataError) {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, unexpected("map")
	}
	out := make([]datafix.MapEntry[*yaml.Node], 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		out = append(out, datafix.MapEntry[*yaml.Node]{Key: n.Content[i].Value, Value: n.Content[i+1]})
	}
	return out, nil
}

func (Ops) GetMap(n *yaml.Node) ([]datafix.MapEntry[*yaml.Node], datafix.DataError) {
	return mapEntries(n)
}

type listView struct{ node *yaml.Node }

func (v *listView) Append(value *yaml.Node) { v.node.Content = append(v.node.Content, value) }

func (v *listView) Get(index int) (*yaml.Node, datafix.DataError) {
	if index < 0 || index >= len(v.node.Content) {
		return nil, &datafix.IndexOutOfBoundsError{Index: index, Length: len(v.node.Content)}
	}
	return v.node.Content[index], nil
}

func (v *listView) Len() int { return len(v.node.Content) }

func (v *listView) Each(fn func(index int, value *yaml.Node)) {
	for i, elem := range v.node.Content {
		fn(i, elem)
	}
}

// Materialize is a no-op on this backend: *yaml.Node is a pointer, so
// Append already mutated the node the caller's V refers to.
func (v *listView) Materialize() *yaml.Node { return v.node }

func (Ops) GetListMut(n *yaml.Node) (datafix.ListView[*yaml.Node], datafix.DataError) {
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil, unexpected("list")
	}
	return &listView{node: n}, nil
}

type mapView struct{ node *yaml.Node }

func (v *mapView) indexOf(name string) int {
	for i := 0; i+1 < len(v.node.Content); i += 2 {
		if v.node.Content[i].Value == name {
			return i
		}
	}
	return -1
}

func (v *mapView) Get(name string) (*yaml.Node, datafix.DataError) {
	i := v.indexOf(name)
	if i < 0 {
		return nil, &datafix.KeyNotFoundError{Key: name}
	}
	return v.node.Content[i+1], nil
}

func (v *mapView) Set(name string, value *yaml.Node) {
	i := v.indexOf(name)
	if i >= 0 {
		v.node.Content[i+1] = value
		return
	}
	v.node.Content = append(v.node.Content, scalar("!!str", name), value)
}

func (v *mapView) Remove(name string) (*yaml.Node, datafix.DataError) {
	i := v.indexOf(name)
	if i < 0 {
		return nil, &datafix.KeyNotFoundError{Key: name}
	}
	val := v.node.Content[i+1]
	v.node.Content = append(v.node.Content[:i], v.node.Content[i+2:]...)
	return val, nil
}

func (v *mapView) Keys() []string {
	out := make([]string, 0, len(v.node.Content)/2)
	for i := 0; i+1 < len(v.node.Content); i += 2 {
		out = append(out, v.node.Content[i].Value)
	}
	return out
}

// Materialize is a no-op on this backend: *yaml.Node is a pointer, so
// Set/Remove already mutated the node the caller's V refers to.
func (v *mapView) Materialize() *yaml.Node { return v.node }

func (Ops) GetMapMut(n *yaml.Node) (datafix.MapView[*yaml.Node], datafix.DataError) {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, unexpected("map")
	}
	return &mapView{node: n}, nil
}

type ownedMapView struct {
	entries []datafix.MapEntry[*yaml.Node]
	taken   map[string]bool
}

func (v *ownedMapView) Take(name string) (*yaml.Node, datafix.DataError) {
	for _, e := range v.entries {
		if e.Key == name && !v.taken[name] {
			v.taken[name] = true
			return e.Value, nil
		}
	}
	return nil, &datafix.KeyNotFoundError{Key: name}
}

func (v *ownedMapView) Entries() []datafix.MapEntry[*yaml.Node] {
	out := make([]datafix.MapEntry[*yaml.Node], 0, len(v.entries))
	for _, e := range v.entries {
		if !v.taken[e.Key] {
			out = append(out, e)
		}
	}
	return out
}

func (Ops) TakeMap(n *yaml.Node) (datafix.OwnedMapView[*yaml.Node], datafix.DataError) {
	entries, err := mapEntries(n)
	if err != nil {
		return nil, err
	}
	return &ownedMapView{entries: entries, taken: map[string]bool{}}, nil
}

func (o Ops) CreateMapSpecial(entries []datafix.OptionalEntry[*yaml.Node]) (*yaml.Node, datafix.DataError) {
	return datafix.CreateMapSpecialDefault[*yaml.Node](o, entries)
}
