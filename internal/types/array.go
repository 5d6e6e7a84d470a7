package types

// Array interns T[] for the given element type.
func (in *Interner) Array(elem TypeID) TypeID {
	return in.Intern(Type{Kind: KindArray, Elem: elem})
}

// ArrayElem returns the element type of an array, NoTypeID otherwise.
func (in *Interner) ArrayElem(id TypeID) TypeID {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindArray {
		return NoTypeID
	}
	return tt.Elem
}
