package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the singleton types.
type Builtins struct {
	Invalid   TypeID
	Any       TypeID
	Unknown   TypeID
	Void      TypeID
	Never     TypeID
	Null      TypeID
	Undefined TypeID
	String    TypeID
	Number    TypeID
	Boolean   TypeID
	BigInt    TypeID
	Symbol    TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Structural types (literals, arrays, tuples, objects, unions, intersections,
// functions) are deduplicated by content, so TypeID equality is structural
// identity. Enums and type parameters are nominal and always get fresh IDs.
// The interner lives for one checking pass.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	byKey    map[string]TypeID // canonical content keys for composite kinds
	builtins Builtins

	literals []LiteralInfo
	tuples   []TupleInfo
	objects  []ObjectInfo
	unions   []UnionInfo
	inters   []IntersectionInfo
	funcs    []FuncInfo
	enums    []EnumInfo
	params   []ParamInfo
}

// NewInterner constructs an interner seeded with the builtin singletons.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[typeKey]TypeID, 64),
		byKey: make(map[string]TypeID, 64),
	}
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Any = in.Intern(Type{Kind: KindAny})
	in.builtins.Unknown = in.Intern(Type{Kind: KindUnknown})
	in.builtins.Void = in.Intern(Type{Kind: KindVoid})
	in.builtins.Never = in.Intern(Type{Kind: KindNever})
	in.builtins.Null = in.Intern(Type{Kind: KindNull})
	in.builtins.Undefined = in.Intern(Type{Kind: KindUndefined})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.Number = in.Intern(Type{Kind: KindNumber})
	in.builtins.Boolean = in.Intern(Type{Kind: KindBoolean})
	in.builtins.BigInt = in.Intern(Type{Kind: KindBigInt})
	in.builtins.Symbol = in.Intern(Type{Kind: KindSymbol})
	return in
}

// Builtins returns TypeIDs for the singleton types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[typeKey(t)] = id
	return id
}

// internKeyed deduplicates composite descriptors by a canonical content key.
// The register callback runs only when the key is new and must produce the
// TypeID (typically via internRaw plus a side-table append).
func (in *Interner) internKeyed(key string, register func() TypeID) TypeID {
	if id, ok := in.byKey[key]; ok {
		return id
	}
	id := register()
	in.byKey[key] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Kind returns the kind for a TypeID, KindInvalid when unknown.
func (in *Interner) Kind(id TypeID) Kind {
	tt, ok := in.Lookup(id)
	if !ok {
		return KindInvalid
	}
	return tt.Kind
}

// Len returns the number of interned types, the invalid sentinel included.
func (in *Interner) Len() int {
	return len(in.types)
}

type typeKey struct {
	Kind    Kind
	Elem    TypeID
	Payload uint32
}

func appendSlot[T any](table *[]T, info T, what string) uint32 {
	if *table == nil {
		var zero T
		*table = append(*table, zero) // reserve slot 0 as invalid sentinel
	}
	*table = append(*table, info)
	slot, err := safecast.Conv[uint32](len(*table) - 1)
	if err != nil {
		panic(fmt.Errorf("%s info overflow: %w", what, err))
	}
	return slot
}

func cloneIDs(ids []TypeID) []TypeID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]TypeID, len(ids))
	copy(out, ids)
	return out
}
