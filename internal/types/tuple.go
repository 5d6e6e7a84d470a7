package types

import (
	"fmt"
	"strings"
)

// TupleInfo stores the ordered element list of a tuple type.
type TupleInfo struct {
	Elems []TypeID
}

// Tuple interns [E0, E1, ...] for the given element list.
func (in *Interner) Tuple(elems []TypeID) TypeID {
	var key strings.Builder
	key.WriteString("tup:")
	for _, e := range elems {
		fmt.Fprintf(&key, "%d,", e)
	}
	return in.internKeyed(key.String(), func() TypeID {
		slot := appendSlot(&in.tuples, TupleInfo{Elems: cloneIDs(elems)}, "tuple")
		return in.internRaw(Type{Kind: KindTuple, Payload: slot})
	})
}

// TupleInfo returns the element list for a tuple TypeID.
func (in *Interner) TupleInfo(id TypeID) (*TupleInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTuple {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.tuples) {
		return nil, false
	}
	return &in.tuples[tt.Payload], true
}
