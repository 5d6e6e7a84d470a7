package ast

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented, line-oriented dump of the tree to w. The output
// is stable and is what `prism parse` shows.
func Fprint(w io.Writer, f *File) error {
	d := dumper{w: w}
	for _, st := range f.Stmts {
		d.stmt(st, 0)
	}
	return d.err
}

// Dump renders the tree into a string.
func Dump(f *File) string {
	var b strings.Builder
	_ = Fprint(&b, f)
	return b.String()
}

type dumper struct {
	w   io.Writer
	err error
}

func (d *dumper) line(depth int, format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (d *dumper) stmt(s Stmt, depth int) {
	switch st := s.(type) {
	case *TypeDecl:
		if len(st.Params) == 0 {
			d.line(depth, "TypeDecl %s", st.Name.Name)
		} else {
			names := make([]string, len(st.Params))
			for i, p := range st.Params {
				names[i] = p.Name.Name
			}
			d.line(depth, "TypeDecl %s<%s>", st.Name.Name, strings.Join(names, ", "))
		}
		for _, p := range st.Params {
			if p.Constraint != nil {
				d.line(depth+1, "Constraint %s", p.Name.Name)
				d.typeExpr(p.Constraint, depth+2)
			}
		}
		d.typeExpr(st.Body, depth+1)

	case *EnumDecl:
		d.line(depth, "EnumDecl %s", st.Name.Name)
		for _, m := range st.Members {
			if m.Value != nil {
				d.line(depth+1, "Member %s = %s", m.Name.Name, m.Value.Text)
			} else {
				d.line(depth+1, "Member %s", m.Name.Name)
			}
		}

	case *LetDecl:
		d.line(depth, "LetDecl %s", st.Name.Name)
		d.typeExpr(st.Type, depth+1)

	case *AssignStmt:
		d.line(depth, "Assign %s", st.Target.Name)
		d.typeExpr(st.Value, depth+1)

	case *DeleteStmt:
		d.line(depth, "Delete %s.%s", st.Target.Name, st.Prop.Name)

	case *AssertStmt:
		d.line(depth, "Assert %s", st.Op)
		d.typeExpr(st.Left, depth+1)
		d.typeExpr(st.Right, depth+1)

	case *BadStmt:
		d.line(depth, "BadStmt")

	default:
		d.line(depth, "UnknownStmt %T", s)
	}
}

func (d *dumper) typeExpr(t TypeExpr, depth int) {
	switch te := t.(type) {
	case *NameRef:
		d.line(depth, "Name %s", te.Name)

	case *LiteralType:
		switch te.Kind {
		case LitString:
			d.line(depth, "Literal %q", te.Text)
		default:
			d.line(depth, "Literal %s", te.Text)
		}

	case *ArrayType:
		d.line(depth, "Array")
		d.typeExpr(te.Elem, depth+1)

	case *TupleType:
		d.line(depth, "Tuple")
		for _, e := range te.Elems {
			d.typeExpr(e, depth+1)
		}

	case *ObjectType:
		d.line(depth, "Object")
		for _, p := range te.Props {
			mods := ""
			if p.Readonly {
				mods += "readonly "
			}
			name := p.Name.Name
			if p.Optional {
				name += "?"
			}
			d.line(depth+1, "Prop %s%s", mods, name)
			d.typeExpr(p.Type, depth+2)
		}

	case *UnionType:
		d.line(depth, "Union")
		for _, m := range te.Members {
			d.typeExpr(m, depth+1)
		}

	case *IntersectionType:
		d.line(depth, "Intersection")
		for _, m := range te.Members {
			d.typeExpr(m, depth+1)
		}

	case *FuncType:
		d.line(depth, "Func")
		for _, p := range te.Params {
			d.line(depth+1, "Param")
			d.typeExpr(p, depth+2)
		}
		d.line(depth+1, "Result")
		d.typeExpr(te.Result, depth+2)

	case *Instantiation:
		d.line(depth, "Apply %s", te.Name.Name)
		for _, a := range te.Args {
			d.typeExpr(a, depth+1)
		}

	case *KeyofType:
		d.line(depth, "Keyof")
		d.typeExpr(te.Operand, depth+1)

	case *IndexedAccessType:
		d.line(depth, "Index")
		d.typeExpr(te.Base, depth+1)
		d.typeExpr(te.Index, depth+1)

	case *CondType:
		d.line(depth, "Cond")
		d.typeExpr(te.Check, depth+1)
		d.line(depth+1, "Extends")
		d.typeExpr(te.Extends, depth+2)
		d.line(depth+1, "Then")
		d.typeExpr(te.True, depth+2)
		d.line(depth+1, "Else")
		d.typeExpr(te.False, depth+2)

	case *InferType:
		d.line(depth, "Infer %s", te.Name.Name)

	case *MappedType:
		d.line(depth, "Mapped [%s in ...]%s", te.Key.Name, mappedMods(te))
		d.typeExpr(te.Constraint, depth+1)
		d.typeExpr(te.Value, depth+1)

	case *MemberType:
		d.line(depth, "Member %s.%s", te.Base.Name, te.Member.Name)

	case *ParenType:
		d.typeExpr(te.Inner, depth)

	default:
		d.line(depth, "UnknownType %T", t)
	}
}

func mappedMods(t *MappedType) string {
	var b strings.Builder
	switch t.Readonly {
	case ModAdd:
		b.WriteString(" +readonly")
	case ModRemove:
		b.WriteString(" -readonly")
	}
	switch t.Optional {
	case ModAdd:
		b.WriteString(" +?")
	case ModRemove:
		b.WriteString(" -?")
	}
	return b.String()
}
