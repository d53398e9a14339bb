package interp

import (
	"eps2pdf/internal/dictstack"
	"eps2pdf/internal/errors"
	"eps2pdf/internal/graphics"
	"eps2pdf/internal/value"
)

func opIf(ip *Interp, name string) error {
	proc, err := ip.Ops.Peek(0)
	if err != nil {
		return err
	}
	cond, err := ip.Ops.Peek(1)
	if err != nil {
		return err
	}
	if proc.Kind != value.Procedure || cond.Kind != value.Bool {
		return errors.New(errors.TypeCheck, name)
	}
	if _, err := ip.Ops.PopN(2); err != nil {
		return err
	}
	if cond.Flag {
		return ip.executeProcedure(proc)
	}
	return nil
}

func opIfelse(ip *Interp, name string) error {
	procFalse, err := ip.Ops.Peek(0)
	if err != nil {
		return err
	}
	procTrue, err := ip.Ops.Peek(1)
	if err != nil {
		return err
	}
	cond, err := ip.Ops.Peek(2)
	if err != nil {
		return err
	}
	if procFalse.Kind != value.Procedure || procTrue.Kind != value.Procedure || cond.Kind != value.Bool {
		return errors.New(errors.TypeCheck, name)
	}
	if _, err := ip.Ops.PopN(3); err != nil {
		return err
	}
	if cond.Flag {
		return ip.executeProcedure(procTrue)
	}
	return ip.executeProcedure(procFalse)
}

// opRepeat implements `n {proc} repeat`. exit unwinds only this loop.
func opRepeat(ip *Interp, name string) error {
	proc, err := ip.Ops.Peek(0)
	if err != nil {
		return err
	}
	nv, err := ip.Ops.Peek(1)
	if err != nil {
		return err
	}
	if proc.Kind != value.Procedure || nv.Kind != value.Integer {
		return errors.New(errors.TypeCheck, name)
	}
	times := int64(nv.Num)
	if times < 0 {
		return errors.New(errors.RangeCheck, name)
	}
	if _, err := ip.Ops.PopN(2); err != nil {
		return err
	}
	for i := int64(0); i < times; i++ {
		if err := ip.executeProcedure(proc); err != nil {
			if _, ok := err.(loopBreak); ok {
				return nil
			}
			return err
		}
	}
	return nil
}

// opFor implements `initial increment limit {proc} for`. The control
// value's type (Integer vs Real) follows initial and increment.
func opFor(ip *Interp, name string) error {
	proc, err := ip.Ops.Peek(0)
	if err != nil {
		return err
	}
	limitV, err := ip.Ops.Peek(1)
	if err != nil {
		return err
	}
	incV, err := ip.Ops.Peek(2)
	if err != nil {
		return err
	}
	initV, err := ip.Ops.Peek(3)
	if err != nil {
		return err
	}
	if proc.Kind != value.Procedure || !limitV.IsNumber() || !incV.IsNumber() || !initV.IsNumber() {
		return errors.New(errors.TypeCheck, name)
	}
	initial, increment, limit := initV.Num, incV.Num, limitV.Num
	resultKind := value.Real
	if initV.Kind == value.Integer && incV.Kind == value.Integer {
		resultKind = value.Integer
	}
	if increment == 0 {
		return errors.New(errors.RangeCheck, name)
	}
	if _, err := ip.Ops.PopN(4); err != nil {
		return err
	}
	for control := initial; (increment > 0 && control <= limit) || (increment < 0 && control >= limit); control += increment {
		if err := ip.Ops.Push(value.Value{Kind: resultKind, Num: control}); err != nil {
			return err
		}
		if err := ip.executeProcedure(proc); err != nil {
			if _, ok := err.(loopBreak); ok {
				return nil
			}
			return err
		}
	}
	return nil
}

func opExit(ip *Interp, name string) error { return loopBreak{} }

// opExec implements `any exec`: a deferred name resolves now, a procedure
// runs, anything else that isn't executable is simply left on the stack.
func opExec(ip *Interp, name string) error {
	v, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	switch v.Kind {
	case value.Name:
		return ip.resolveAndExecute(string(v.AsString().Data), false)
	case value.Procedure:
		return ip.executeProcedure(v)
	case value.Operator:
		return ip.executeOperator(v.Obj.(string))
	case value.TextString:
		return errors.New(errors.Unsupported, name)
	default:
		return ip.Ops.Push(v)
	}
}

func opQuitOp(ip *Interp, name string) error {
	ip.quit = true
	return nil
}

// opSave/opRestore combine a dictionary-stack clone with an implicit
// gsave.
func opSave(ip *Interp, name string) error {
	snap := &value.SavedState{
		DictSnapshot: dictstack.Clone(ip.Dicts),
		GState:       graphics.Snapshot(ip.GS),
	}
	return ip.Ops.Push(value.Value{Kind: value.StateDict, Obj: snap})
}

func opRestore(ip *Interp, name string) error {
	v, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if v.Kind != value.StateDict {
		return errors.New(errors.TypeCheck, name)
	}
	snap := v.AsSavedState()
	if err := dictstack.Restore(ip.Dicts, snap.DictSnapshot); err != nil {
		return err
	}
	return graphics.Restore(ip.GS, snap.GState)
}

func opSetGlobal(ip *Interp, name string) error {
	v, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if v.Kind != value.Bool {
		return errors.New(errors.TypeCheck, name)
	}
	if v.Flag {
		ip.alloc = value.Global
	} else {
		ip.alloc = value.Local
	}
	return nil
}
