package interp

import (
	"math"
	"math/rand"

	"eps2pdf/internal/errors"
	"eps2pdf/internal/value"
)

type unaryMathFn struct {
	f         func(float64) float64
	forceReal bool
}

// unaryMath: sqrt/ln/log/sin/cos always produce a Real, the rest preserve
// the operand's Integer/Real type.
var unaryMath = map[string]unaryMathFn{
	"sqrt":     {math.Sqrt, true},
	"ln":       {math.Log, true},
	"log":      {math.Log10, true},
	"sin":      {func(v float64) float64 { return math.Sin(v * math.Pi / 180) }, true},
	"cos":      {func(v float64) float64 { return math.Cos(v * math.Pi / 180) }, true},
	"abs":      {math.Abs, false},
	"neg":      {func(v float64) float64 { return -v }, false},
	"ceiling":  {math.Ceil, false},
	"floor":    {math.Floor, false},
	"round":    {math.Round, false},
	"truncate": {math.Trunc, false},
}

func opMathUnary(ip *Interp, name string) error {
	fn := unaryMath[name]
	v, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	res := fn.f(v.Num)
	kind := v.Kind
	if fn.forceReal {
		kind = value.Real
	}
	return ip.Ops.Push(value.Value{Kind: kind, Num: res})
}

// opMathBinary covers add/sub/mul/div/idiv/mod/atan/exp: the result is
// Integer iff both operands are Integer, except div/atan/exp which always
// produce Real.
func opMathBinary(ip *Interp, name string) error {
	b, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	a, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	resultKind := value.Real
	if a.Kind == value.Integer && b.Kind == value.Integer {
		resultKind = value.Integer
	}
	var res float64
	switch name {
	case "add":
		res = a.Num + b.Num
	case "sub":
		res = a.Num - b.Num
	case "mul":
		res = a.Num * b.Num
	case "div":
		if b.Num == 0 {
			return errors.New(errors.RangeCheck, name)
		}
		res = a.Num / b.Num
		resultKind = value.Real
	case "idiv":
		if resultKind != value.Integer {
			return errors.New(errors.TypeCheck, name)
		}
		if int64(b.Num) == 0 {
			return errors.New(errors.RangeCheck, name)
		}
		res = float64(int64(a.Num) / int64(b.Num))
	case "mod":
		if resultKind != value.Integer {
			return errors.New(errors.TypeCheck, name)
		}
		if int64(b.Num) == 0 {
			return errors.New(errors.RangeCheck, name)
		}
		res = float64(int64(a.Num) % int64(b.Num))
	case "atan":
		res = math.Atan2(a.Num, b.Num) * 180 / math.Pi
		if res < 0 {
			res += 360
		}
		resultKind = value.Real
	case "exp":
		res = math.Pow(a.Num, b.Num)
		resultKind = value.Real
	}
	return ip.Ops.Push(value.Value{Kind: resultKind, Num: res})
}

// opLogicBinary covers and/or/xor/bitshift over both integer and boolean
// operands.
func opLogicBinary(ip *Interp, name string) error {
	b, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	a, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	switch {
	case a.Kind == value.Integer && b.Kind == value.Integer:
		x, y := int64(a.Num), int64(b.Num)
		var r int64
		switch name {
		case "and":
			r = x & y
		case "or":
			r = x | y
		case "xor":
			r = x ^ y
		case "bitshift":
			if y >= 0 {
				r = x << uint(y)
			} else {
				r = x >> uint(-y)
			}
		}
		return ip.Ops.Push(value.Int(r))
	case a.Kind == value.Bool && b.Kind == value.Bool && name != "bitshift":
		var r bool
		switch name {
		case "and":
			r = a.Flag && b.Flag
		case "or":
			r = a.Flag || b.Flag
		case "xor":
			r = a.Flag != b.Flag
		}
		return ip.Ops.Push(value.Boolean(r))
	default:
		return errors.New(errors.TypeCheck, name)
	}
}

func opNot(ip *Interp, name string) error {
	v, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	switch v.Kind {
	case value.Integer:
		return ip.Ops.Push(value.Int(^int64(v.Num)))
	case value.Bool:
		return ip.Ops.Push(value.Boolean(!v.Flag))
	default:
		return errors.New(errors.TypeCheck, name)
	}
}

// opRand/opSrand/opRrand: srand reseeds and remembers the seed so rrand
// can read it back.
func opRand(ip *Interp, name string) error {
	n := ip.rng.Int31()
	return ip.Ops.Push(value.Int(int64(n)))
}

func opSrand(ip *Interp, name string) error {
	v, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if v.Kind != value.Integer {
		return errors.New(errors.TypeCheck, name)
	}
	seed := uint32(math.Abs(v.Num))
	ip.rngSeed = seed
	ip.rng = rand.New(rand.NewSource(int64(seed)))
	return nil
}

func opRrand(ip *Interp, name string) error {
	return ip.Ops.Push(value.Int(int64(ip.rngSeed)))
}
