package interp

import (
	"fmt"

	"eps2pdf/internal/errors"
	"eps2pdf/internal/opstack"
	"eps2pdf/internal/value"
)

func opDup(ip *Interp, name string) error {
	v, err := ip.Ops.Peek(0)
	if err != nil {
		return err
	}
	return ip.Ops.Push(v)
}

// opExch swaps the top two elements.
func opExch(ip *Interp, name string) error {
	top, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	second, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if err := ip.Ops.Push(top); err != nil {
		return err
	}
	return ip.Ops.Push(second)
}

func opPop(ip *Interp, name string) error {
	_, err := ip.Ops.Pop()
	return err
}

func opClear(ip *Interp, name string) error {
	ip.Ops.Clear()
	return nil
}

func opMark(ip *Interp, name string) error {
	return ip.Ops.Push(value.Value{Kind: value.MarkPlain})
}

func opCount(ip *Interp, name string) error {
	return ip.Ops.Push(value.Int(int64(ip.Ops.Count())))
}

func opCountToMark(ip *Interp, name string) error {
	n := ip.Ops.CountToMark()
	if n == opstack.NotFound {
		return errors.New(errors.UnmatchedMark, name)
	}
	return ip.Ops.Push(value.Int(int64(n)))
}

func opClearToMark(ip *Interp, name string) error {
	_, err := ip.Ops.PopToMark()
	return err
}

// opIndex implements `n index`: n is popped first, then the stack (now one
// shorter) is addressed.
func opIndex(ip *Interp, name string) error {
	nv, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if nv.Kind != value.Integer {
		return errors.New(errors.TypeCheck, name)
	}
	n := int(nv.Num)
	if n < 0 {
		return errors.New(errors.RangeCheck, name)
	}
	v, err := ip.Ops.Peek(n)
	if err != nil {
		return errors.New(errors.StackUnderflow, name)
	}
	return ip.Ops.Push(v)
}

// opCopy duplicates the top n elements in place, preserving order.
func opCopy(ip *Interp, name string) error {
	nv, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if nv.Kind != value.Integer {
		return errors.New(errors.TypeCheck, name)
	}
	n := int(nv.Num)
	if n < 0 || n > ip.Ops.Count() {
		return errors.New(errors.StackUnderflow, name)
	}
	items := make([]value.Value, n)
	for i := 0; i < n; i++ {
		v, err := ip.Ops.Peek(n - 1 - i)
		if err != nil {
			return err
		}
		items[i] = v
	}
	for _, it := range items {
		if err := ip.Ops.Push(it); err != nil {
			return err
		}
	}
	return nil
}

// opRoll implements `n j roll`: n is the window size, j the signed
// rotation count.
func opRoll(ip *Interp, name string) error {
	jv, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	nv, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if jv.Kind != value.Integer || nv.Kind != value.Integer {
		return errors.New(errors.TypeCheck, name)
	}
	n := int(nv.Num)
	if n < 0 {
		return errors.New(errors.RangeCheck, name)
	}
	if err := ip.Ops.Roll(n, int(jv.Num)); err != nil {
		return err
	}
	return nil
}

func opAload(ip *Interp, name string) error {
	v, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if !v.IsArrayType() {
		return errors.New(errors.TypeCheck, name)
	}
	for _, e := range v.AsArray().Elems {
		if err := ip.Ops.Push(e); err != nil {
			return err
		}
	}
	return ip.Ops.Push(v)
}

// opAstore fills the top array from the n values just below it, in push
// order.
func opAstore(ip *Interp, name string) error {
	v, err := ip.Ops.Peek(0)
	if err != nil {
		return err
	}
	if v.Kind != value.ArrayKind {
		return errors.New(errors.TypeCheck, name)
	}
	arr := v.AsArray()
	n := len(arr.Elems)
	if n == 0 {
		_, err := ip.Ops.Pop()
		if err != nil {
			return err
		}
		return ip.Ops.Push(v)
	}
	if ip.Ops.Count()-1 < n {
		return errors.New(errors.StackUnderflow, name)
	}
	if _, err := ip.Ops.Pop(); err != nil {
		return err
	}
	items, err := ip.Ops.PopN(n)
	if err != nil {
		return err
	}
	copy(arr.Elems, items)
	return ip.Ops.Push(v)
}

func opArrayOp(ip *Interp, name string) error {
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
	arr, err := value.NewArray(n, false, ip.alloc)
	if err != nil {
		return err
	}
	return ip.Ops.Push(value.Value{Kind: value.ArrayKind, Obj: arr})
}

// opPstack prints the whole stack top to bottom without popping.
func opPstack(ip *Interp, name string) error {
	for i := 0; i < ip.Ops.Count(); i++ {
		v, err := ip.Ops.Peek(i)
		if err != nil {
			return err
		}
		fmt.Println(value.Write(v))
	}
	return nil
}

// opStack is `n stack`: prints the top n elements top to bottom without
// popping.
func opStack(ip *Interp, name string) error {
	v, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if v.Kind != value.Integer {
		return errors.New(errors.TypeCheck, name)
	}
	n := int(v.Num)
	if n < 0 || n > ip.Ops.Count() {
		return errors.New(errors.RangeCheck, name)
	}
	for i := 0; i < n; i++ {
		e, err := ip.Ops.Peek(i)
		if err != nil {
			return err
		}
		fmt.Println(value.Write(e))
	}
	return nil
}

func opPrintTop(ip *Interp, name string) error {
	v, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	fmt.Println(value.Write(v))
	return nil
}

func opPrintTopVerbose(ip *Interp, name string) error {
	v, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	fmt.Printf("%s %s\n", v.Kind, value.Write(v))
	return nil
}
