package types

import (
	"fmt"
	"strings"
)

// FuncInfo stores the signature of a function type.
type FuncInfo struct {
	Params []TypeID
	Result TypeID
}

// Func interns (P0, P1, ...) => R.
func (in *Interner) Func(params []TypeID, result TypeID) TypeID {
	var key strings.Builder
	key.WriteString("fn:")
	for _, p := range params {
		fmt.Fprintf(&key, "%d,", p)
	}
	fmt.Fprintf(&key, "->%d", result)

	return in.internKeyed(key.String(), func() TypeID {
		slot := appendSlot(&in.funcs, FuncInfo{Params: cloneIDs(params), Result: result}, "func")
		return in.internRaw(Type{Kind: KindFunc, Payload: slot})
	})
}

// FuncInfo returns the signature for a function TypeID.
func (in *Interner) FuncInfo(id TypeID) (*FuncInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFunc {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.funcs) {
		return nil, false
	}
	return &in.funcs[tt.Payload], true
}
