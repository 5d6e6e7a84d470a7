package types

import (
	"fmt"

	"prism/internal/source"
)

// EnumMemberInfo stores one named constant of an enum.
type EnumMemberInfo struct {
	Name  string
	Value float64
	Span  source.Span
}

// EnumInfo stores metadata for an enum type. An enum starts as a draft; once
// sealed its member list is immutable.
type EnumInfo struct {
	Name    string
	Decl    source.Span
	Sealed  bool
	Members []EnumMemberInfo
}

// Member returns the member with the given name and its index.
func (ei *EnumInfo) Member(name string) (EnumMemberInfo, int, bool) {
	for i, m := range ei.Members {
		if m.Name == name {
			return m, i, true
		}
	}
	return EnumMemberInfo{}, -1, false
}

// RegisterEnum allocates a fresh nominal enum type in draft state.
func (in *Interner) RegisterEnum(name string, decl source.Span) TypeID {
	slot := appendSlot(&in.enums, EnumInfo{Name: name, Decl: decl}, "enum")
	return in.internRaw(Type{Kind: KindEnum, Payload: slot})
}

// SealEnum stores the resolved member list and marks the enum sealed.
// Sealing twice panics: a sealed enum is immutable.
func (in *Interner) SealEnum(id TypeID, members []EnumMemberInfo) {
	info := in.enumInfo(id)
	if info == nil {
		return
	}
	if info.Sealed {
		panic(fmt.Sprintf("types: enum %s sealed twice", info.Name))
	}
	cloned := make([]EnumMemberInfo, len(members))
	copy(cloned, members)
	info.Members = cloned
	info.Sealed = true
}

// EnumInfo returns metadata for the provided enum TypeID.
func (in *Interner) EnumInfo(id TypeID) (*EnumInfo, bool) {
	info := in.enumInfo(id)
	if info == nil {
		return nil, false
	}
	return info, true
}

// EnumMember interns the type of one enum member. Elem points at the owning
// enum, Payload is the member index.
func (in *Interner) EnumMember(enum TypeID, index int) TypeID {
	info := in.enumInfo(enum)
	if info == nil || index < 0 || index >= len(info.Members) {
		return NoTypeID
	}
	return in.Intern(Type{Kind: KindEnumMember, Elem: enum, Payload: uint32(index)})
}

// EnumMemberInfo resolves an enum member TypeID to its enum and metadata.
func (in *Interner) EnumMemberInfo(id TypeID) (enum TypeID, member EnumMemberInfo, ok bool) {
	tt, lok := in.Lookup(id)
	if !lok || tt.Kind != KindEnumMember {
		return NoTypeID, EnumMemberInfo{}, false
	}
	info := in.enumInfo(tt.Elem)
	if info == nil || int(tt.Payload) >= len(info.Members) {
		return NoTypeID, EnumMemberInfo{}, false
	}
	return tt.Elem, info.Members[tt.Payload], true
}

func (in *Interner) enumInfo(id TypeID) *EnumInfo {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindEnum {
		return nil
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.enums) {
		return nil
	}
	return &in.enums[tt.Payload]
}
