package types

// ParamInfo stores metadata for a type parameter or an infer variable.
// Constraint is NoTypeID when unconstrained.
type ParamInfo struct {
	Name       string
	Constraint TypeID
}

// RegisterTypeParam allocates a fresh nominal type parameter. Every
// declaration site gets its own TypeID, so shadowed parameters with the same
// name stay distinct.
func (in *Interner) RegisterTypeParam(name string, constraint TypeID) TypeID {
	slot := appendSlot(&in.params, ParamInfo{Name: name, Constraint: constraint}, "type param")
	return in.internRaw(Type{Kind: KindTypeParam, Payload: slot})
}

// SetParamConstraint patches the constraint of a type parameter. Used to
// close the backedge of self-referential alias placeholders after their body
// has been resolved.
func (in *Interner) SetParamConstraint(id, constraint TypeID) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTypeParam {
		return
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.params) {
		return
	}
	in.params[tt.Payload].Constraint = constraint
}

// ParamInfo returns metadata for a type parameter TypeID.
func (in *Interner) ParamInfo(id TypeID) (*ParamInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTypeParam {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.params) {
		return nil, false
	}
	return &in.params[tt.Payload], true
}
