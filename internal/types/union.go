package types

import (
	"fmt"
	"sort"
	"strings"
)

// UnionInfo stores the normalized member list of a union type.
type UnionInfo struct {
	Members []TypeID
}

// IntersectionInfo stores the normalized member list of an intersection type.
type IntersectionInfo struct {
	Members []TypeID
}

// Union interns a normalized union of the given members: nested unions are
// flattened, Never members drop, duplicates collapse. An empty result is
// Never; a single member is returned as-is. Any and Unknown absorb the union.
func (in *Interner) Union(members []TypeID) TypeID {
	flat := make([]TypeID, 0, len(members))
	seenAny := false
	seenUnknown := false

	var add func(id TypeID)
	add = func(id TypeID) {
		switch in.Kind(id) {
		case KindUnion:
			info, _ := in.UnionInfo(id)
			for _, m := range info.Members {
				add(m)
			}
		case KindNever:
			// drops
		case KindAny:
			seenAny = true
		case KindUnknown:
			seenUnknown = true
		default:
			flat = append(flat, id)
		}
	}
	for _, m := range members {
		add(m)
	}

	if seenAny {
		return in.builtins.Any
	}
	if seenUnknown {
		return in.builtins.Unknown
	}

	flat = sortedUnique(flat)
	switch len(flat) {
	case 0:
		return in.builtins.Never
	case 1:
		return flat[0]
	}

	return in.internKeyed(memberKey("uni", flat), func() TypeID {
		slot := appendSlot(&in.unions, UnionInfo{Members: flat}, "union")
		return in.internRaw(Type{Kind: KindUnion, Payload: slot})
	})
}

// UnionInfo returns the member list for a union TypeID.
func (in *Interner) UnionInfo(id TypeID) (*UnionInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindUnion {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.unions) {
		return nil, false
	}
	return &in.unions[tt.Payload], true
}

// Intersection interns a normalized intersection: nested intersections are
// flattened, Unknown members drop, duplicates collapse. An Any member
// collapses the whole type to Any, a Never member to Never. Members with
// conflicting primitive bases or conflicting literal values collapse to
// Never; a literal absorbs its own base primitive.
func (in *Interner) Intersection(members []TypeID) TypeID {
	flat := make([]TypeID, 0, len(members))
	seenAny := false
	seenNever := false

	var add func(id TypeID)
	add = func(id TypeID) {
		switch in.Kind(id) {
		case KindIntersection:
			info, _ := in.IntersectionInfo(id)
			for _, m := range info.Members {
				add(m)
			}
		case KindAny:
			seenAny = true
		case KindNever:
			seenNever = true
		case KindUnknown:
			// identity, drops
		default:
			flat = append(flat, id)
		}
	}
	for _, m := range members {
		add(m)
	}

	if seenAny {
		return in.builtins.Any
	}
	if seenNever {
		return in.builtins.Never
	}

	flat = sortedUnique(flat)
	reduced, conflict := in.reducePrimitives(flat)
	if conflict {
		return in.builtins.Never
	}
	flat = reduced

	switch len(flat) {
	case 0:
		return in.builtins.Unknown
	case 1:
		return flat[0]
	}

	return in.internKeyed(memberKey("int", flat), func() TypeID {
		slot := appendSlot(&in.inters, IntersectionInfo{Members: flat}, "intersection")
		return in.internRaw(Type{Kind: KindIntersection, Payload: slot})
	})
}

// IntersectionInfo returns the member list for an intersection TypeID.
func (in *Interner) IntersectionInfo(id TypeID) (*IntersectionInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindIntersection {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.inters) {
		return nil, false
	}
	return &in.inters[tt.Payload], true
}

// reducePrimitives detects unsatisfiable primitive combinations in an
// intersection member list and drops primitives absorbed by a literal of the
// same base. The second result reports a conflict.
func (in *Interner) reducePrimitives(members []TypeID) ([]TypeID, bool) {
	base := NoTypeID       // the single primitive base seen so far
	literal := NoTypeID    // the single literal seen so far
	hasPrimLike := false   // any primitive or literal member present
	primMember := NoTypeID // the bare primitive member, when present

	for _, m := range members {
		tt := in.MustLookup(m)
		switch {
		case tt.Kind == KindLiteral:
			li, _ := in.LiteralInfo(m)
			if hasPrimLike && base != li.Base {
				return nil, true
			}
			if literal != NoTypeID && literal != m {
				return nil, true
			}
			base, literal, hasPrimLike = li.Base, m, true

		case tt.Kind.IsPrimitive() || tt.Kind == KindVoid:
			self := in.Intern(Type{Kind: tt.Kind})
			if hasPrimLike && base != self {
				return nil, true
			}
			base, primMember, hasPrimLike = self, self, true
		}
	}

	if literal == NoTypeID || primMember == NoTypeID {
		return members, false
	}

	// literal & its base primitive: keep only the literal
	out := members[:0:0]
	for _, m := range members {
		if m == primMember {
			continue
		}
		out = append(out, m)
	}
	return out, false
}

func sortedUnique(ids []TypeID) []TypeID {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := ids[:0]
	var prev TypeID
	for i, id := range ids {
		if i > 0 && id == prev {
			continue
		}
		out = append(out, id)
		prev = id
	}
	return out
}

func memberKey(prefix string, ids []TypeID) string {
	var key strings.Builder
	key.WriteString(prefix)
	key.WriteByte(':')
	for _, id := range ids {
		fmt.Fprintf(&key, "%d,", id)
	}
	return key.String()
}
