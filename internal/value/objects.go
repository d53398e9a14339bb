package value

import (
	"fmt"
	"strconv"

	"eps2pdf/internal/errors"
)

// StringTag distinguishes the four string-shaped kinds a StringObject can
// back.
type StringTag uint8

const (
	TagLiteral StringTag = iota
	TagName
	TagHex
	TagText
)

// StringObject is a mutable byte sequence, bounds-checked on Get/Put and
// capped at MaxObjectSize.
type StringObject struct {
	Data  []byte
	Tag   StringTag
	Alloc AllocType
}

func NewString(data []byte, tag StringTag, alloc AllocType) (*StringObject, error) {
	if len(data) > MaxObjectSize {
		return nil, errors.New(errors.RangeCheck, "string")
	}
	return &StringObject{Data: data, Tag: tag, Alloc: alloc}, nil
}

func (s *StringObject) Get(i int) (byte, error) {
	if i < 0 || i >= len(s.Data) {
		return 0, errors.New(errors.RangeCheck, "get")
	}
	return s.Data[i], nil
}

func (s *StringObject) Put(i int, b byte) error {
	if i < 0 || i >= len(s.Data) {
		return errors.New(errors.RangeCheck, "put")
	}
	s.Data[i] = b
	return nil
}

// ArrayObject is an ordered sequence of Values, tagged Array or Procedure
// via the owning Value.Kind; Exec mirrors that so code holding only the
// *ArrayObject (e.g. during bind) can tell whether it is executable.
type ArrayObject struct {
	Elems []Value
	Exec  bool
	Alloc AllocType
}

func NewArray(n int, exec bool, alloc AllocType) (*ArrayObject, error) {
	if n < 0 || n > MaxObjectSize {
		return nil, errors.New(errors.RangeCheck, "array")
	}
	return &ArrayObject{Elems: make([]Value, n), Exec: exec, Alloc: alloc}, nil
}

func (a *ArrayObject) Get(i int) (Value, error) {
	if i < 0 || i >= len(a.Elems) {
		return Value{}, errors.New(errors.RangeCheck, "get")
	}
	return a.Elems[i], nil
}

func (a *ArrayObject) Put(i int, v Value) error {
	if i < 0 || i >= len(a.Elems) {
		return errors.New(errors.RangeCheck, "put")
	}
	a.Elems[i] = v
	return nil
}

// IsNumeric reports whether the array is non-empty and every element is a
// number.
func (a *ArrayObject) IsNumeric() bool {
	if len(a.Elems) == 0 {
		return false
	}
	for _, e := range a.Elems {
		if !e.IsNumber() {
			return false
		}
	}
	return true
}

// DictObject holds two maps keyed by the canonicalized string form of the
// key: StrKeys for name/literal/string keys by raw bytes,
// NumKeys for numeric/boolean keys formatted as "true"/"false"/"%d"/"%g".
type DictObject struct {
	StrKeys map[string]Value
	NumKeys map[string]Value
	Alloc   AllocType
}

func NewDict(alloc AllocType) *DictObject {
	return &DictObject{StrKeys: make(map[string]Value), NumKeys: make(map[string]Value), Alloc: alloc}
}

// CanonicalKey renders a key Value to its canonical map key: string keys
// use their raw bytes, numbers/booleans are formatted.
func CanonicalKey(key Value) (str string, numeric bool, ok bool) {
	switch {
	case key.IsStringType():
		return string(key.AsString().Data), false, true
	case key.Kind == Bool:
		if key.Flag {
			return "true", true, true
		}
		return "false", true, true
	case key.Kind == Integer:
		return strconv.FormatInt(int64(key.Num), 10), true, true
	case key.Kind == Real:
		return strconv.FormatFloat(key.Num, 'g', -1, 64), true, true
	default:
		return "", false, false
	}
}

func (d *DictObject) Get(key Value) (Value, bool) {
	k, numeric, ok := CanonicalKey(key)
	if !ok {
		return Value{}, false
	}
	if numeric {
		v, found := d.NumKeys[k]
		return v, found
	}
	v, found := d.StrKeys[k]
	return v, found
}

func (d *DictObject) Put(key, val Value) error {
	k, numeric, ok := CanonicalKey(key)
	if !ok {
		return errors.New(errors.TypeCheck, "put")
	}
	if numeric {
		if _, exists := d.NumKeys[k]; !exists && d.Size() >= MaxObjectSize {
			return errors.New(errors.RangeCheck, "put")
		}
		d.NumKeys[k] = val
		return nil
	}
	if _, exists := d.StrKeys[k]; !exists && d.Size() >= MaxObjectSize {
		return errors.New(errors.RangeCheck, "put")
	}
	d.StrKeys[k] = val
	return nil
}

func (d *DictObject) Size() int { return len(d.StrKeys) + len(d.NumKeys) }

// SystemDictObject is a read-only view over the static operator table plus
// true/false/null, delegated through late-bound closures so this package
// does not need to import the operator table.
type SystemDictObject struct {
	Lookup func(name string) (Value, bool)
	Count  func() int
}

func (d *SystemDictObject) Get(name string) (Value, bool) { return d.Lookup(name) }

func (d *SystemDictObject) Put(Value, Value) error {
	return errors.New(errors.InvalidAccess, "put")
}

// SavedState is the snapshot pushed by `save`. DictSnapshot and GState are
// opaque to this package — dictstack.Clone and graphics.Snapshot produce
// them, and dictstack.Restore/graphics.Restore consume them — to avoid an
// import cycle between value, dictstack and graphics.
type SavedState struct {
	DictSnapshot interface{}
	GState       interface{}
}

// Slant is a font slant as used by FontObject.
type Slant uint8

const (
	SlantNormal Slant = iota
	SlantItalic
	SlantOblique
)

// FontObject carries the face name and style selected by findfont/
// scalefont/setfont.
type FontObject struct {
	Face   string
	Size   float64
	Slant  Slant
	Bold   bool
	Matrix [6]float64
}

// FileObject wraps the scanner instance a File value refers to
// (currentfile, the `token` operator). The concrete type is supplied by
// the scanner package via an interface to avoid value depending on
// scanner's token types.
type FileObject struct {
	Reader interface {
		NextToken() (interface{}, error)
	}
	Name string
}

// FormatNumber renders a number the way `cvs`/`=`/`==` do: integers with no
// decimal point, reals with Go's shortest round-trip representation.
func FormatNumber(v Value) string {
	if v.Kind == Integer {
		return strconv.FormatInt(int64(v.Num), 10)
	}
	return strconv.FormatFloat(v.Num, 'g', -1, 64)
}

// Write renders a value the way `=`/`==`/`print` do.
func Write(v Value) string {
	switch v.Kind {
	case Null:
		return "null"
	case Bool:
		return strconv.FormatBool(v.Flag)
	case Integer, Real:
		return FormatNumber(v)
	case Name, Literal, Constant:
		return string(v.AsString().Data)
	case HexString, TextString:
		return string(v.AsString().Data)
	case ArrayKind:
		return "-array-"
	case Procedure:
		return "-proctype-"
	case DictKind, SystemDict:
		return "-dict-"
	case StateDict:
		return "-save-"
	case FontKind:
		return fmt.Sprintf("-font-%s-", v.AsFont().Face)
	case FileKind:
		return "-file-"
	case Operator:
		return "-operator-"
	default:
		return "-mark-"
	}
}
