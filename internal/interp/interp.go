// Package interp is the interpreter core: token dispatch,
// name resolution, procedure execution and operator invocation, wired on
// top of the operand stack, dictionary stack and graphics state.
package interp

import (
	"math/rand"
	"time"

	"eps2pdf/internal/dictstack"
	"eps2pdf/internal/errors"
	"eps2pdf/internal/graphics"
	"eps2pdf/internal/operators"
	"eps2pdf/internal/opstack"
	"eps2pdf/internal/scanner"
	"eps2pdf/internal/value"
)

// loopBreak is the sentinel `exit` raises. It unwinds every nested
// executeProcedure call (e.g. an `if` body) up to the innermost for/repeat,
// which absorbs it; any other caller propagates it like an ordinary error,
// which only happens for exit used outside a loop and simply drains up to
// the driver.
type loopBreak struct{}

func (loopBreak) Error() string { return "exit" }

// Interp is the interpreter core. It owns no I/O beyond an
// optional reference to the live scanner, used by currentfile/token.
type Interp struct {
	Ops   *opstack.Stack
	Dicts *dictstack.Stack
	GS    *graphics.State

	alloc       value.AllocType
	procNesting int
	quit        bool
	interactive bool

	scan *scanner.Scanner

	rng     *rand.Rand
	rngSeed uint32

	curFont *value.FontObject
}

// New builds an interpreter wired to a fresh operand stack, a dictionary
// stack backed by the static operator table, and the given graphics
// state.
func New(gs *graphics.State) *Interp {
	ip := &Interp{
		Ops: opstack.New(),
		GS:  gs,
	}
	ip.Dicts = dictstack.New(sysLookup, operators.Count)
	seed := uint32(time.Now().UnixNano())
	ip.rngSeed = seed
	ip.rng = rand.New(rand.NewSource(int64(seed)))
	return ip
}

// SetScanner records the live scanner so currentfile/token can read from
// it.
func (ip *Interp) SetScanner(s *scanner.Scanner) { ip.scan = s }

// SetInteractive marks the session as interactive: errors are printed and
// execution continues rather than aborting, matching a REPL-style session.
func (ip *Interp) SetInteractive(v bool) { ip.interactive = v }

func (ip *Interp) Interactive() bool { return ip.interactive }

// Quit reports whether `quit` has been executed (driver loop
// polls this after every token).
func (ip *Interp) Quit() bool { return ip.quit }

func sysLookup(name string) (value.Value, bool) {
	if _, ok := operators.Find(name); ok {
		return value.OperatorValue(name), true
	}
	switch name {
	case "true":
		return value.Boolean(true), true
	case "false":
		return value.Boolean(false), true
	case "null":
		return value.Nil(), true
	}
	return value.Value{}, false
}

// ProcessToken dispatches one scanner token: literals and composites push,
// executable names and procedures run.
func (ip *Interp) ProcessToken(tok scanner.Token) error {
	switch tok.Kind {
	case scanner.ArrayOpen:
		return ip.Ops.Push(value.Value{Kind: value.MarkArrayOpen})
	case scanner.DictOpen:
		return ip.Ops.Push(value.Value{Kind: value.MarkDictOpen})
	case scanner.ProcOpen:
		ip.procNesting++
		return ip.Ops.Push(value.Value{Kind: value.MarkProcOpen})
	case scanner.ArrayClose:
		if ip.procNesting > 0 {
			return ip.Ops.Push(value.Value{Kind: value.MarkArrayClose})
		}
		return ip.buildArray(false)
	case scanner.DictClose:
		if ip.procNesting > 0 {
			return ip.Ops.Push(value.Value{Kind: value.MarkDictClose})
		}
		return ip.buildDict()
	case scanner.ProcClose:
		err := ip.buildArray(true)
		if ip.procNesting > 0 {
			ip.procNesting--
		}
		return err
	case scanner.Number:
		k := value.Real
		if tok.IsInt {
			k = value.Integer
		}
		return ip.Ops.Push(value.Value{Kind: k, Num: tok.Num})
	case scanner.Literal:
		return ip.pushString(tok.Name, value.Literal, value.TagLiteral)
	case scanner.Constant:
		return ip.resolveAndExecute(tok.Name, true)
	case scanner.NameTok:
		if ip.procNesting > 0 {
			return ip.pushString(tok.Name, value.Name, value.TagName)
		}
		return ip.resolveAndExecute(tok.Name, false)
	case scanner.HexString:
		return ip.pushBytes(tok.Str, value.HexString, value.TagHex)
	case scanner.TextString:
		return ip.pushBytes(tok.Str, value.TextString, value.TagText)
	case scanner.Dsc, scanner.EOF:
		return nil
	}
	return nil
}

func (ip *Interp) pushString(s string, kind value.Kind, tag value.StringTag) error {
	obj, err := value.NewString([]byte(s), tag, ip.alloc)
	if err != nil {
		return err
	}
	return ip.Ops.Push(value.Value{Kind: kind, Obj: obj})
}

func (ip *Interp) pushBytes(b []byte, kind value.Kind, tag value.StringTag) error {
	cp := make([]byte, len(b))
	copy(cp, b)
	obj, err := value.NewString(cp, tag, ip.alloc)
	if err != nil {
		return err
	}
	return ip.Ops.Push(value.Value{Kind: kind, Obj: obj})
}

// resolveAndExecute looks up a name and runs it: a Name token inside a
// procedure body still being scanned is deferred as a plain value;
// everything else is looked up and, if a procedure or operator, executed
// immediately.
func (ip *Interp) resolveAndExecute(name string, isConstant bool) error {
	if !isConstant && ip.procNesting > 0 {
		return ip.pushString(name, value.Name, value.TagName)
	}
	v, ok := ip.Dicts.Find(name)
	if !ok {
		return errors.New(errors.Undefined, name)
	}
	switch v.Kind {
	case value.Procedure:
		return ip.executeProcedure(v)
	case value.Operator:
		return ip.executeOperator(name)
	default:
		return ip.Ops.Push(v)
	}
}

// executeProcedure walks a procedure's elements in order. Close-markers
// embedded by a nested `[`/`<<` that was itself scanned while inside this
// procedure are built into an array/dict now, against whatever the
// procedure has pushed so far.
func (ip *Interp) executeProcedure(v value.Value) error {
	arr := v.AsArray()
	if arr == nil {
		return errors.New(errors.TypeCheck, "exec")
	}
	for _, item := range arr.Elems {
		var err error
		switch item.Kind {
		case value.Name:
			err = ip.resolveAndExecute(string(item.AsString().Data), false)
		case value.Operator:
			err = ip.executeOperator(item.Obj.(string))
		case value.MarkArrayClose:
			err = ip.buildArray(false)
		case value.MarkDictClose:
			err = ip.buildDict()
		default:
			err = ip.Ops.Push(item)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// executeOperator checks arity and the numeric mask against the static
// operator table before invoking the handler.
func (ip *Interp) executeOperator(name string) error {
	spec, ok := operators.Find(name)
	if !ok {
		return errors.New(errors.Undefined, name)
	}
	if spec.NParams > 0 {
		if ip.Ops.Count() < spec.NParams {
			return errors.New(errors.StackUnderflow, name)
		}
		if spec.Numeric {
			for i := 0; i < spec.NParams; i++ {
				v, err := ip.Ops.Peek(i)
				if err != nil {
					return errors.WithOp(err, name)
				}
				if !v.IsNumber() {
					return errors.New(errors.TypeCheck, name)
				}
			}
		}
	}
	fn, ok := dispatch[name]
	if !ok {
		return errors.New(errors.Undefined, name)
	}
	return errors.WithOp(fn(ip, name), name)
}

// findMarker scans down from the top for the nearest value of kind,
// returning its distance from the top. Used to delimit procedure/array/
// dict construction, which tracks specific marker kinds
// rather than the generic mark opstack.CountToMark recognizes.
func (ip *Interp) findMarker(kind value.Kind) (int, error) {
	for i := 0; ; i++ {
		v, err := ip.Ops.Peek(i)
		if err != nil {
			return 0, errors.New(errors.UnmatchedMark, "")
		}
		if v.Kind == kind {
			return i, nil
		}
	}
}

// buildArray implements `]` and `}`: pop down to the
// matching open marker and build an Array or, for exec, a Procedure.
func (ip *Interp) buildArray(exec bool) error {
	markKind := value.MarkArrayOpen
	if exec {
		markKind = value.MarkProcOpen
	}
	n, err := ip.findMarker(markKind)
	if err != nil {
		return err
	}
	items, err := ip.Ops.PopN(n)
	if err != nil {
		return err
	}
	if _, err := ip.Ops.Pop(); err != nil { // discard the marker
		return err
	}
	arr := &value.ArrayObject{Elems: items, Exec: exec, Alloc: ip.alloc}
	kind := value.ArrayKind
	if exec {
		kind = value.Procedure
	}
	return ip.Ops.Push(value.Value{Kind: kind, Obj: arr})
}

// buildDict implements `>>`: items are key,value pairs in
// the order they were pushed.
func (ip *Interp) buildDict() error {
	n, err := ip.findMarker(value.MarkDictOpen)
	if err != nil {
		return err
	}
	items, err := ip.Ops.PopN(n)
	if err != nil {
		return err
	}
	if _, err := ip.Ops.Pop(); err != nil {
		return err
	}
	if len(items)%2 != 0 {
		return errors.New(errors.RangeCheck, "dict")
	}
	d := value.NewDict(ip.alloc)
	for i := 0; i < len(items); i += 2 {
		if err := d.Put(items[i], items[i+1]); err != nil {
			return err
		}
	}
	return ip.Ops.Push(value.Value{Kind: value.DictKind, Obj: d})
}
