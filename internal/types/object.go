package types

import (
	"fmt"
	"sort"
	"strings"
)

// Prop is one property of an object shape.
type Prop struct {
	Name     string
	Type     TypeID
	Optional bool
	Readonly bool
}

// ObjectInfo stores the ordered property list of an object shape. Property
// names are unique.
type ObjectInfo struct {
	Props []Prop
}

// Prop returns the property with the given name.
func (oi *ObjectInfo) Prop(name string) (Prop, bool) {
	for _, p := range oi.Props {
		if p.Name == name {
			return p, true
		}
	}
	return Prop{}, false
}

// Object interns an object shape. Identity is structural and ignores the
// declaration order of properties.
func (in *Interner) Object(props []Prop) TypeID {
	sorted := make([]Prop, len(props))
	copy(sorted, props)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var key strings.Builder
	key.WriteString("obj:")
	for _, p := range sorted {
		fmt.Fprintf(&key, "%s:%d:%t:%t;", p.Name, p.Type, p.Optional, p.Readonly)
	}

	return in.internKeyed(key.String(), func() TypeID {
		cloned := make([]Prop, len(props))
		copy(cloned, props)
		slot := appendSlot(&in.objects, ObjectInfo{Props: cloned}, "object")
		return in.internRaw(Type{Kind: KindObject, Payload: slot})
	})
}

// ObjectInfo returns the property list for an object TypeID.
func (in *Interner) ObjectInfo(id TypeID) (*ObjectInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindObject {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.objects) {
		return nil, false
	}
	return &in.objects[tt.Payload], true
}
