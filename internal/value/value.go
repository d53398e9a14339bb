// Package value implements the PostScript value model: a tagged Value
// union over scalars and shared composite objects (strings, arrays,
// dictionaries, fonts, files, save snapshots).
//
// A composite payload is just a Go pointer shared by value, and cloning is
// the only operation that needs to walk the graph explicitly. The Kind
// discriminant and payload are kept in lock-step by construction: every
// constructor below sets both together, and nothing mutates Kind without
// also replacing the payload.
package value

import "eps2pdf/internal/errors"

// MaxObjectSize bounds string and array length, and dictionary capacity.
const MaxObjectSize = 65536

// Kind is the Value discriminant.
type Kind uint8

const (
	Null Kind = iota
	Bool
	Integer
	Real
	Operator
	Name
	Literal
	Constant // //name: resolved once, pushed as a plain value
	HexString
	TextString
	ArrayKind
	Procedure
	DictKind
	SystemDict
	StateDict
	FontKind
	FileKind

	// Transient scanner/parse markers. These never escape the interpreter
	// core onto a user-visible data structure; they are consumed while
	// building arrays, dicts and procedures.
	MarkArrayOpen
	MarkDictOpen
	MarkArrayClose
	MarkDictClose
	MarkProcOpen
	MarkProcClose
	MarkPlain // pushed by the `mark` operator

	Comment
	Dsc
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "nulltype"
	case Bool:
		return "booleantype"
	case Integer, Real:
		return "numbertype"
	case Operator:
		return "operatortype"
	case Name, Literal, Constant:
		return "nametype"
	case HexString, TextString:
		return "stringtype"
	case ArrayKind, Procedure:
		return "arraytype"
	case DictKind, SystemDict:
		return "dicttype"
	case StateDict:
		return "savetype"
	case FontKind:
		return "fonttype"
	case FileKind:
		return "filetype"
	default:
		return "marktype"
	}
}

// Value is the tagged union. Composite kinds carry their payload in Obj;
// scalar kinds carry it inline in Num/Flag. Assignment is always shallow —
// composites are shared pointers, matching PostScript's "ordinary value
// assignment is shallow" semantics.
type Value struct {
	Kind Kind
	Num  float64 // Integer / Real
	Flag bool    // Bool
	Obj  interface{}
}

// AllocType records which VM allocation space a composite was created in.
// It is advisory: this core never refuses an operation because of it, it
// only preserves the tag across Clone.
type AllocType uint8

const (
	Local AllocType = iota
	Global
)

// --- scalar constructors -----------------------------------------------

func Nil() Value            { return Value{Kind: Null} }
func Boolean(b bool) Value  { return Value{Kind: Bool, Flag: b} }
func Int(n int64) Value     { return Value{Kind: Integer, Num: float64(n)} }
func IntF(n float64) Value  { return Value{Kind: Integer, Num: n} }
func Float(n float64) Value { return Value{Kind: Real, Num: n} }

func OperatorValue(entry interface{}) Value { return Value{Kind: Operator, Obj: entry} }

// --- predicates ------------------------------------------

func (v Value) IsNumber() bool { return v.Kind == Integer || v.Kind == Real }
func (v Value) IsStringType() bool {
	return v.Kind == Name || v.Kind == Literal || v.Kind == Constant ||
		v.Kind == HexString || v.Kind == TextString
}
func (v Value) IsArrayType() bool { return v.Kind == ArrayKind || v.Kind == Procedure }
func (v Value) IsDictType() bool  { return v.Kind == DictKind || v.Kind == SystemDict }
func (v Value) IsExecutable() bool {
	return v.Kind == Procedure || v.Kind == Operator || v.Kind == Name || v.Kind == Constant
}

// IsMatrix requires an array of exactly six numeric values.
func (v Value) IsMatrix() bool {
	if !v.IsArrayType() {
		return false
	}
	a, ok := v.Obj.(*ArrayObject)
	if !ok || len(a.Elems) != 6 {
		return false
	}
	for _, e := range a.Elems {
		if !e.IsNumber() {
			return false
		}
	}
	return true
}

func (v Value) AsArray() *ArrayObject { a, _ := v.Obj.(*ArrayObject); return a }
func (v Value) AsString() *StringObject {
	s, _ := v.Obj.(*StringObject)
	return s
}
func (v Value) AsDict() *DictObject { d, _ := v.Obj.(*DictObject); return d }
func (v Value) AsSystemDict() *SystemDictObject {
	d, _ := v.Obj.(*SystemDictObject)
	return d
}
func (v Value) AsFont() *FontObject { f, _ := v.Obj.(*FontObject); return f }
func (v Value) AsFile() *FileObject { f, _ := v.Obj.(*FileObject); return f }
func (v Value) AsSavedState() *SavedState {
	s, _ := v.Obj.(*SavedState)
	return s
}

// Matrix6 extracts the six numbers of a matrix-shaped array. Caller must
// have checked IsMatrix.
func (v Value) Matrix6() [6]float64 {
	var m [6]float64
	a := v.AsArray()
	for i := 0; i < 6 && i < len(a.Elems); i++ {
		m[i] = a.Elems[i].Num
	}
	return m
}

// Eq implements value equality.
func Eq(a, b Value) bool {
	switch {
	case a.IsNumber() && b.IsNumber():
		return a.Num == b.Num
	case a.IsStringType() && b.IsStringType():
		return string(a.AsString().Data) == string(b.AsString().Data)
	case a.Kind != b.Kind:
		return false
	default:
		switch a.Kind {
		case Null:
			return true
		case Bool:
			return a.Flag == b.Flag
		default:
			return a.Obj == b.Obj
		}
	}
}

// Cmp orders two numbers or two text-strings; anything else is a typecheck
// error.
func Cmp(op string, a, b Value) (int, error) {
	switch {
	case a.IsNumber() && b.IsNumber():
		switch {
		case a.Num < b.Num:
			return -1, nil
		case a.Num > b.Num:
			return 1, nil
		default:
			return 0, nil
		}
	case a.Kind == TextString && b.Kind == TextString:
		sa, sb := string(a.AsString().Data), string(b.AsString().Data)
		switch {
		case sa < sb:
			return -1, nil
		case sa > sb:
			return 1, nil
		default:
			return 0, nil
		}
	default:
		return 0, errors.New(errors.TypeCheck, op)
	}
}

// Clone deep-copies arrays and user dictionaries recursively; any other
// composite (system dict, saved state, font, file) is shared with no
// refcount bump needed — Go's GC keeps it alive.
func Clone(v Value, alloc AllocType) Value {
	switch v.Kind {
	case ArrayKind, Procedure:
		src := v.AsArray()
		dst := &ArrayObject{Exec: src.Exec, Alloc: alloc, Elems: make([]Value, len(src.Elems))}
		for i, e := range src.Elems {
			dst.Elems[i] = Clone(e, alloc)
		}
		return Value{Kind: v.Kind, Obj: dst}
	case DictKind:
		src := v.AsDict()
		dst := NewDict(alloc)
		for k, e := range src.StrKeys {
			dst.StrKeys[k] = Clone(e, alloc)
		}
		for k, e := range src.NumKeys {
			dst.NumKeys[k] = Clone(e, alloc)
		}
		return Value{Kind: DictKind, Obj: dst}
	default:
		return v
	}
}
