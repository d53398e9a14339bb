package interp

import (
	"strconv"

	"eps2pdf/internal/errors"
	"eps2pdf/internal/operators"
	"eps2pdf/internal/scanner"
	"eps2pdf/internal/value"
)

func opDict(ip *Interp, name string) error {
	v, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if v.Kind != value.Integer {
		return errors.New(errors.TypeCheck, name)
	}
	n := int(v.Num)
	if n < 0 || n > value.MaxObjectSize {
		return errors.New(errors.RangeCheck, name)
	}
	return ip.Ops.Push(value.Value{Kind: value.DictKind, Obj: value.NewDict(ip.alloc)})
}

func opBegin(ip *Interp, name string) error {
	v, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	d := v.AsDict()
	if v.Kind != value.DictKind || d == nil {
		return errors.New(errors.TypeCheck, name)
	}
	ip.Dicts.Begin(d)
	return nil
}

func opEnd(ip *Interp, name string) error { return ip.Dicts.End() }

func opCurrentDict(ip *Interp, name string) error {
	return ip.Ops.Push(value.Value{Kind: value.DictKind, Obj: ip.Dicts.Current()})
}

func opDef(ip *Interp, name string) error {
	val, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	key, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	return ip.Dicts.Def(key, val)
}

func opLoad(ip *Interp, name string) error {
	key, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if !key.IsStringType() {
		return errors.New(errors.Undefined, name)
	}
	v, ok := ip.Dicts.Find(string(key.AsString().Data))
	if !ok {
		return errors.New(errors.Undefined, name)
	}
	return ip.Ops.Push(v)
}

func opWhere(ip *Interp, name string) error {
	key, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if !key.IsStringType() {
		return ip.Ops.Push(value.Boolean(false))
	}
	dv, ok := ip.Dicts.Where(string(key.AsString().Data))
	if !ok {
		return ip.Ops.Push(value.Boolean(false))
	}
	if err := ip.Ops.Push(dv); err != nil {
		return err
	}
	return ip.Ops.Push(value.Boolean(true))
}

// opGet handles array/string/dict indexing.
func opGet(ip *Interp, name string) error {
	idx, err := ip.Ops.Peek(0)
	if err != nil {
		return err
	}
	comp, err := ip.Ops.Peek(1)
	if err != nil {
		return err
	}
	switch {
	case comp.IsArrayType() && idx.Kind == value.Integer:
		v, err := comp.AsArray().Get(int(idx.Num))
		if err != nil {
			return err
		}
		if _, err := ip.Ops.PopN(2); err != nil {
			return err
		}
		return ip.Ops.Push(v)
	case comp.Kind == value.TextString && idx.Kind == value.Integer:
		b, err := comp.AsString().Get(int(idx.Num))
		if err != nil {
			return err
		}
		if _, err := ip.Ops.PopN(2); err != nil {
			return err
		}
		return ip.Ops.Push(value.Int(int64(b)))
	case comp.IsDictType():
		var v value.Value
		var ok bool
		if comp.Kind == value.SystemDict {
			if idx.IsStringType() {
				v, ok = comp.AsSystemDict().Get(string(idx.AsString().Data))
			}
		} else {
			v, ok = comp.AsDict().Get(idx)
		}
		if !ok {
			return errors.New(errors.Undefined, name)
		}
		if _, err := ip.Ops.PopN(2); err != nil {
			return err
		}
		return ip.Ops.Push(v)
	default:
		return errors.New(errors.TypeCheck, name)
	}
}

// opPut handles array/string/dict assignment: value, index, composite
// top-to-bottom.
func opPut(ip *Interp, name string) error {
	val, err := ip.Ops.Peek(0)
	if err != nil {
		return err
	}
	idx, err := ip.Ops.Peek(1)
	if err != nil {
		return err
	}
	comp, err := ip.Ops.Peek(2)
	if err != nil {
		return err
	}
	switch {
	case comp.IsArrayType() && idx.Kind == value.Integer:
		if err := comp.AsArray().Put(int(idx.Num), val); err != nil {
			return err
		}
	case comp.Kind == value.TextString && idx.Kind == value.Integer && val.Kind == value.Integer:
		if err := comp.AsString().Put(int(idx.Num), byte(int64(val.Num))); err != nil {
			return err
		}
	case comp.Kind == value.SystemDict:
		return errors.New(errors.InvalidAccess, name)
	case comp.Kind == value.DictKind:
		if err := comp.AsDict().Put(idx, val); err != nil {
			return err
		}
	default:
		return errors.New(errors.TypeCheck, name)
	}
	_, err = ip.Ops.PopN(3)
	return err
}

func opLength(ip *Interp, name string) error {
	v, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	var n int
	switch {
	case v.IsArrayType():
		n = len(v.AsArray().Elems)
	case v.IsStringType():
		n = len(v.AsString().Data)
	case v.Kind == value.DictKind:
		n = v.AsDict().Size()
	case v.Kind == value.SystemDict:
		n = v.AsSystemDict().Count()
	default:
		return errors.New(errors.TypeCheck, name)
	}
	return ip.Ops.Push(value.Int(int64(n)))
}

// opBind replaces every name inside a procedure (recursively) that is a
// built-in operator, or one of the constants true/false/null, with the
// operator/constant value; other names are left as they are. It mutates
// the procedure in place, leaving it on the stack.
func opBind(ip *Interp, name string) error {
	v, err := ip.Ops.Peek(0)
	if err != nil {
		return err
	}
	if v.Kind != value.Procedure {
		return errors.New(errors.TypeCheck, name)
	}
	bindProcedure(v.AsArray())
	return nil
}

func bindProcedure(arr *value.ArrayObject) {
	for i, it := range arr.Elems {
		switch it.Kind {
		case value.Name:
			nm := string(it.AsString().Data)
			if _, ok := operators.Find(nm); ok {
				arr.Elems[i] = value.OperatorValue(nm)
				continue
			}
			switch nm {
			case "true":
				arr.Elems[i] = value.Boolean(true)
			case "false":
				arr.Elems[i] = value.Boolean(false)
			case "null":
				arr.Elems[i] = value.Nil()
			}
		case value.Procedure:
			bindProcedure(it.AsArray())
		}
	}
}

// opCvs converts src to its text representation and copies it into the
// prefix of dest.
func opCvs(ip *Interp, name string) error {
	dest, err := ip.Ops.Peek(0)
	if err != nil {
		return err
	}
	src, err := ip.Ops.Peek(1)
	if err != nil {
		return err
	}
	if dest.Kind != value.TextString {
		return errors.New(errors.TypeCheck, name)
	}
	ds := dest.AsString()
	var text string
	switch {
	case src.IsStringType():
		text = string(src.AsString().Data)
	case src.IsNumber():
		text = value.FormatNumber(src)
	case src.Kind == value.Bool:
		text = strconv.FormatBool(src.Flag)
	case src.Kind == value.Operator:
		text, _ = src.Obj.(string)
	default:
		text = "--nostringval--"
	}
	if len(text) > len(ds.Data) {
		return errors.New(errors.RangeCheck, name)
	}
	copy(ds.Data, []byte(text))
	if _, err := ip.Ops.PopN(2); err != nil {
		return err
	}
	return ip.Ops.Push(dest)
}

// opCvx makes an array executable (a Procedure) or a literal name
// executable (a Name).
func opCvx(ip *Interp, name string) error {
	v, err := ip.Ops.Peek(0)
	if err != nil {
		return err
	}
	switch v.Kind {
	case value.ArrayKind:
		arr := v.AsArray()
		arr.Exec = true
		if _, err := ip.Ops.Pop(); err != nil {
			return err
		}
		return ip.Ops.Push(value.Value{Kind: value.Procedure, Obj: arr})
	case value.Literal:
		if _, err := ip.Ops.Pop(); err != nil {
			return err
		}
		return ip.Ops.Push(value.Value{Kind: value.Name, Obj: v.Obj})
	case value.Name, value.Procedure:
		return nil
	case value.TextString:
		return errors.New(errors.Unsupported, name)
	default:
		return errors.New(errors.TypeCheck, name)
	}
}

func opString(ip *Interp, name string) error {
	v, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if v.Kind != value.Integer {
		return errors.New(errors.TypeCheck, name)
	}
	n := int(v.Num)
	if n < 0 || n > value.MaxObjectSize {
		return errors.New(errors.RangeCheck, name)
	}
	s, err := value.NewString(make([]byte, n), value.TagText, ip.alloc)
	if err != nil {
		return err
	}
	return ip.Ops.Push(value.Value{Kind: value.TextString, Obj: s})
}

// fileReader adapts scanner.Scanner to the value.FileObject reader
// interface, which cannot import scanner directly without an import
// cycle.
type fileReader struct{ sc *scanner.Scanner }

func (r fileReader) NextToken() (interface{}, error) { return r.sc.NextToken() }

func opCurrentFile(ip *Interp, name string) error {
	fo := &value.FileObject{Name: "currentfile"}
	if ip.scan != nil {
		fo.Reader = fileReader{ip.scan}
	}
	return ip.Ops.Push(value.Value{Kind: value.FileKind, Obj: fo})
}

// opToken reads one token from a File, deferring name resolution the way
// a procedure body does, and pushes a success flag.
func opToken(ip *Interp, name string) error {
	fv, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	switch fv.Kind {
	case value.FileKind:
		fo := fv.AsFile()
		if fo.Reader == nil {
			return ip.Ops.Push(value.Boolean(false))
		}
		raw, err := fo.Reader.NextToken()
		if err != nil {
			return ip.Ops.Push(value.Boolean(false))
		}
		tok, ok := raw.(scanner.Token)
		if !ok {
			return errors.New(errors.TypeCheck, name)
		}
		ip.procNesting++
		perr := ip.ProcessToken(tok)
		ip.procNesting--
		if perr != nil {
			return perr
		}
		return ip.Ops.Push(value.Boolean(true))
	case value.TextString:
		return errors.New(errors.Unsupported, name)
	default:
		return errors.New(errors.TypeCheck, name)
	}
}
