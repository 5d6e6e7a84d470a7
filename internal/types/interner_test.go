package types

import (
	"testing"

	"prism/internal/source"
)

func TestBuiltinsAreDistinct(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	ids := []TypeID{b.Any, b.Unknown, b.Void, b.Never, b.Null, b.Undefined,
		b.String, b.Number, b.Boolean, b.BigInt, b.Symbol}
	seen := make(map[TypeID]bool)
	for _, id := range ids {
		if id == NoTypeID {
			t.Fatal("builtin has NoTypeID")
		}
		if seen[id] {
			t.Fatalf("duplicate builtin TypeID %d", id)
		}
		seen[id] = true
	}
}

func TestStructuralInterning(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	a1 := in.Array(b.String)
	a2 := in.Array(b.String)
	if a1 != a2 {
		t.Error("identical arrays interned to different IDs")
	}
	if in.Array(b.Number) == a1 {
		t.Error("different arrays share a TypeID")
	}

	t1 := in.Tuple([]TypeID{b.String, b.Number})
	t2 := in.Tuple([]TypeID{b.String, b.Number})
	if t1 != t2 {
		t.Error("identical tuples interned to different IDs")
	}
	if in.Tuple([]TypeID{b.Number, b.String}) == t1 {
		t.Error("tuple identity must respect element order")
	}

	f1 := in.Func([]TypeID{b.String}, b.Boolean)
	f2 := in.Func([]TypeID{b.String}, b.Boolean)
	if f1 != f2 {
		t.Error("identical functions interned to different IDs")
	}
}

func TestObjectIdentityIgnoresPropOrder(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	o1 := in.Object([]Prop{{Name: "x", Type: b.Number}, {Name: "y", Type: b.String}})
	o2 := in.Object([]Prop{{Name: "y", Type: b.String}, {Name: "x", Type: b.Number}})
	if o1 != o2 {
		t.Error("property order changed object identity")
	}

	o3 := in.Object([]Prop{{Name: "x", Type: b.Number, Optional: true}, {Name: "y", Type: b.String}})
	if o3 == o1 {
		t.Error("optionality must be part of object identity")
	}
}

func TestLiteralInterning(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	s1 := in.StringLit("a")
	s2 := in.StringLit("a")
	if s1 != s2 {
		t.Error("identical string literals interned to different IDs")
	}
	if in.StringLit("b") == s1 {
		t.Error("different string literals share a TypeID")
	}

	li, ok := in.LiteralInfo(s1)
	if !ok || li.Str != "a" || li.Base != b.String {
		t.Errorf("LiteralInfo = %+v, ok=%t", li, ok)
	}

	if in.NumberLit(1) == in.NumberLit(2) {
		t.Error("different number literals share a TypeID")
	}
	if in.BoolLit(true) == in.BoolLit(false) {
		t.Error("true and false share a TypeID")
	}
}

func TestUnionNormalization(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	// flatten and dedupe
	inner := in.Union([]TypeID{b.String, b.Number})
	outer := in.Union([]TypeID{inner, b.String, b.Boolean})
	info, ok := in.UnionInfo(outer)
	if !ok {
		t.Fatal("expected a union")
	}
	if len(info.Members) != 3 {
		t.Errorf("got %d members, want 3", len(info.Members))
	}

	// commutativity through normalization
	u1 := in.Union([]TypeID{b.String, b.Number})
	u2 := in.Union([]TypeID{b.Number, b.String})
	if u1 != u2 {
		t.Error("A | B and B | A interned to different IDs")
	}

	// Never drops; singleton collapses
	if got := in.Union([]TypeID{b.String, b.Never}); got != b.String {
		t.Errorf("string | never = %s, want string", Label(in, got))
	}
	if got := in.Union([]TypeID{b.Never, b.Never}); got != b.Never {
		t.Errorf("never | never = %s, want never", Label(in, got))
	}

	// top types absorb
	if got := in.Union([]TypeID{b.String, b.Any}); got != b.Any {
		t.Errorf("string | any = %s, want any", Label(in, got))
	}
	if got := in.Union([]TypeID{b.String, b.Unknown}); got != b.Unknown {
		t.Errorf("string | unknown = %s, want unknown", Label(in, got))
	}
}

func TestIntersectionNormalization(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	oa := in.Object([]Prop{{Name: "a", Type: b.String}})
	ob := in.Object([]Prop{{Name: "b", Type: b.Number}})

	i1 := in.Intersection([]TypeID{oa, ob})
	i2 := in.Intersection([]TypeID{ob, oa})
	if i1 != i2 {
		t.Error("A & B and B & A interned to different IDs")
	}

	// Any absorbs, Never dominates
	if got := in.Intersection([]TypeID{oa, b.Any}); got != b.Any {
		t.Errorf("obj & any = %s, want any", Label(in, got))
	}
	if got := in.Intersection([]TypeID{oa, b.Never}); got != b.Never {
		t.Errorf("obj & never = %s, want never", Label(in, got))
	}

	// Unknown is the identity
	if got := in.Intersection([]TypeID{oa, b.Unknown}); got != oa {
		t.Errorf("obj & unknown = %s, want the object", Label(in, got))
	}

	// conflicting primitives collapse to Never
	if got := in.Intersection([]TypeID{b.String, b.Number}); got != b.Never {
		t.Errorf("string & number = %s, want never", Label(in, got))
	}

	// conflicting literal values collapse to Never
	if got := in.Intersection([]TypeID{in.StringLit("a"), in.StringLit("b")}); got != b.Never {
		t.Errorf(`"a" & "b" = %s, want never`, Label(in, got))
	}

	// a literal absorbs its own base primitive
	lit := in.StringLit("a")
	if got := in.Intersection([]TypeID{lit, b.String}); got != lit {
		t.Errorf(`"a" & string = %s, want "a"`, Label(in, got))
	}

	// a literal against a foreign primitive collapses to Never
	if got := in.Intersection([]TypeID{lit, b.Number}); got != b.Never {
		t.Errorf(`"a" & number = %s, want never`, Label(in, got))
	}
}

func TestEnumsAreNominal(t *testing.T) {
	in := NewInterner()

	e1 := in.RegisterEnum("Color", source.Span{})
	e2 := in.RegisterEnum("Color", source.Span{})
	if e1 == e2 {
		t.Error("two enum declarations share a TypeID")
	}

	members := []EnumMemberInfo{{Name: "Red", Value: 0}, {Name: "Green", Value: 5}}
	in.SealEnum(e1, members)

	info, ok := in.EnumInfo(e1)
	if !ok || !info.Sealed {
		t.Fatal("enum not sealed")
	}
	if m, idx, found := info.Member("Green"); !found || idx != 1 || m.Value != 5 {
		t.Errorf("Member(Green) = %+v, %d, %t", m, idx, found)
	}

	red := in.EnumMember(e1, 0)
	if red == NoTypeID {
		t.Fatal("EnumMember returned NoTypeID")
	}
	if red != in.EnumMember(e1, 0) {
		t.Error("same enum member interned twice")
	}
	enum, m, ok := in.EnumMemberInfo(red)
	if !ok || enum != e1 || m.Name != "Red" {
		t.Errorf("EnumMemberInfo = %d, %+v, %t", enum, m, ok)
	}
}

func TestSealEnumTwicePanics(t *testing.T) {
	in := NewInterner()
	e := in.RegisterEnum("E", source.Span{})
	in.SealEnum(e, []EnumMemberInfo{{Name: "A"}})

	defer func() {
		if recover() == nil {
			t.Error("expected panic on double seal")
		}
	}()
	in.SealEnum(e, []EnumMemberInfo{{Name: "B"}})
}

func TestTypeParamsAreNominal(t *testing.T) {
	in := NewInterner()
	p1 := in.RegisterTypeParam("T", NoTypeID)
	p2 := in.RegisterTypeParam("T", NoTypeID)
	if p1 == p2 {
		t.Error("shadowed type parameters share a TypeID")
	}
	info, ok := in.ParamInfo(p1)
	if !ok || info.Name != "T" {
		t.Errorf("ParamInfo = %+v, %t", info, ok)
	}
}

func TestLabel(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	enum := in.RegisterEnum("Color", source.Span{})
	in.SealEnum(enum, []EnumMemberInfo{{Name: "Red"}})

	tests := []struct {
		id   TypeID
		want string
	}{
		{b.String, "string"},
		{b.Never, "never"},
		{in.StringLit("a"), `"a"`},
		{in.NumberLit(42), "42"},
		{in.BoolLit(true), "true"},
		{in.Array(b.String), "string[]"},
		{in.Array(in.Union([]TypeID{b.String, b.Number})), "(string | number)[]"},
		{in.Tuple([]TypeID{b.String, b.Number}), "[string, number]"},
		{in.Object(nil), "{}"},
		{in.Object([]Prop{{Name: "x", Type: b.Number}, {Name: "y", Type: b.String, Optional: true}}), "{ x: number, y?: string }"},
		{in.Object([]Prop{{Name: "c", Type: b.String, Readonly: true}}), "{ readonly c: string }"},
		{in.Func([]TypeID{b.String, b.Number}, b.Boolean), "(string, number) => boolean"},
		{enum, "Color"},
		{in.EnumMember(enum, 0), "Color.Red"},
		{NoTypeID, "?"},
	}
	for _, tt := range tests {
		if got := Label(in, tt.id); got != tt.want {
			t.Errorf("Label(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
