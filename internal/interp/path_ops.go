package interp

import (
	"math"

	"eps2pdf/internal/backend"
	"eps2pdf/internal/errors"
	"eps2pdf/internal/graphics"
	"eps2pdf/internal/value"
)

// --- path construction ----------------------------------------------------

func opNewpath(ip *Interp, name string) error { ip.GS.NewPath(); return nil }

func opMoveto(ip *Interp, name string) error {
	y, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	x, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	ip.GS.MoveTo(x.Num, y.Num)
	return nil
}

func opLineto(ip *Interp, name string) error {
	y, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	x, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	return ip.GS.LineTo(name, x.Num, y.Num)
}

func opRmoveto(ip *Interp, name string) error {
	dy, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	dx, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	return ip.GS.RMoveTo(name, dx.Num, dy.Num)
}

func opRlineto(ip *Interp, name string) error {
	dy, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	dx, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	return ip.GS.RLineTo(name, dx.Num, dy.Num)
}

func opCurveto(ip *Interp, name string) error {
	args, err := popNumbers(ip, 6)
	if err != nil {
		return err
	}
	return ip.GS.CurveTo(name, args[0], args[1], args[2], args[3], args[4], args[5])
}

func opRcurveto(ip *Interp, name string) error {
	args, err := popNumbers(ip, 6)
	if err != nil {
		return err
	}
	return ip.GS.RCurveTo(name, args[0], args[1], args[2], args[3], args[4], args[5])
}

// popNumbers pops n already-verified numeric operands and returns them in
// left-to-right (textual argument) order, which opstack.PopN already
// produces.
func popNumbers(ip *Interp, n int) ([]float64, error) {
	items, err := ip.Ops.PopN(n)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i, it := range items {
		out[i] = it.Num
	}
	return out, nil
}

func opClosepath(ip *Interp, name string) error { ip.GS.ClosePath(); return nil }

func opCurrentpoint(ip *Interp, name string) error {
	x, y, has := ip.GS.CurrentPoint()
	if !has {
		return errors.New(errors.NoCurrentPoint, name)
	}
	if err := ip.Ops.Push(value.Float(x)); err != nil {
		return err
	}
	return ip.Ops.Push(value.Float(y))
}

func opArc(ip *Interp, name string) error {
	args, err := popNumbers(ip, 5)
	if err != nil {
		return err
	}
	ip.GS.Arc(args[0], args[1], args[2], args[3], args[4], name == "arcn")
	return nil
}

func opRectFillStroke(ip *Interp, name string) error {
	args, err := popNumbers(ip, 4)
	if err != nil {
		return err
	}
	ip.GS.RectFillOrStroke(args[0], args[1], args[2], args[3], name == "rectfill")
	return nil
}

func opStroke(ip *Interp, name string) error      { ip.GS.Stroke(); return nil }
func opFill(ip *Interp, name string) error        { ip.GS.Fill(false); return nil }
func opEofill(ip *Interp, name string) error      { ip.GS.Fill(true); return nil }
func opClip(ip *Interp, name string) error        { ip.GS.Clip(false); return nil }
func opErasepage(ip *Interp, name string) error   { ip.GS.ErasePage(); return nil }
func opFlattenpath(ip *Interp, name string) error { ip.GS.FlattenPath(); return nil }

// opClippath clips against the full page when there is no current path to
// clip against.
func opClippath(ip *Interp, name string) error {
	if _, _, has := ip.GS.CurrentPoint(); !has {
		ip.GS.NewPath()
		ip.GS.MoveTo(0, 0)
		if err := ip.GS.LineTo(name, ip.GS.Width, 0); err != nil {
			return err
		}
		if err := ip.GS.LineTo(name, ip.GS.Width, ip.GS.Height); err != nil {
			return err
		}
		if err := ip.GS.LineTo(name, 0, ip.GS.Height); err != nil {
			return err
		}
		ip.GS.ClosePath()
	}
	ip.GS.Clip(false)
	return nil
}

func opShowpage(ip *Interp, name string) error { ip.GS.ShowPage(); return nil }
func opGsave(ip *Interp, name string) error    { ip.GS.GSave(); return nil }
func opGrestore(ip *Interp, name string) error { return ip.GS.GRestore() }

// --- line/fill style -------------

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func opSetlinewidth(ip *Interp, name string) error {
	v, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if v.Num >= 0 {
		ip.GS.SetLineWidth(v.Num)
	}
	return nil
}

func opSetlinecap(ip *Interp, name string) error {
	v, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if v.Kind != value.Integer {
		return errors.New(errors.TypeCheck, name)
	}
	n := int(v.Num)
	if n < 0 || n > 2 {
		return errors.New(errors.RangeCheck, name)
	}
	ip.GS.SetLineCap(backend.LineCap(n))
	return nil
}

func opSetlinejoin(ip *Interp, name string) error {
	v, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if v.Kind != value.Integer {
		return errors.New(errors.TypeCheck, name)
	}
	n := int(v.Num)
	if n < 0 || n > 2 {
		return errors.New(errors.RangeCheck, name)
	}
	ip.GS.SetLineJoin(backend.LineJoin(n))
	return nil
}

func opSetmiterlimit(ip *Interp, name string) error {
	v, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if v.Num < 1 {
		return errors.New(errors.RangeCheck, name)
	}
	ip.GS.SetMiterLimit(v.Num)
	return nil
}

func opSetflat(ip *Interp, name string) error {
	v, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	t := v.Num
	if t <= 0 {
		t = 0.1
	}
	ip.GS.SetFlat(t)
	return nil
}

// opSetdash validates the dash pattern: no negative elements, and not all
// zero unless empty.
func opSetdash(ip *Interp, name string) error {
	phase, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	arrV, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if !phase.IsNumber() || !arrV.IsArrayType() {
		return errors.New(errors.TypeCheck, name)
	}
	arr := arrV.AsArray()
	pattern := make([]float64, len(arr.Elems))
	allZero := len(arr.Elems) > 0
	for i, e := range arr.Elems {
		if !e.IsNumber() || e.Num < 0 {
			return errors.New(errors.RangeCheck, name)
		}
		if e.Num != 0 {
			allZero = false
		}
		pattern[i] = e.Num
	}
	if allZero {
		return errors.New(errors.RangeCheck, name)
	}
	ip.GS.SetDash(pattern, phase.Num)
	return nil
}

func opSetgray(ip *Interp, name string) error {
	v, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	ip.GS.SetColor(graphics.GrayColor(clamp01(v.Num)))
	return nil
}

func opSetrgbcolor(ip *Interp, name string) error {
	args, err := popNumbers(ip, 3)
	if err != nil {
		return err
	}
	ip.GS.SetColor(graphics.RGBColor(clamp01(args[0]), clamp01(args[1]), clamp01(args[2])))
	return nil
}

func opSetcmykcolor(ip *Interp, name string) error {
	args, err := popNumbers(ip, 4)
	if err != nil {
		return err
	}
	ip.GS.SetColor(graphics.CMYKColor(clamp01(args[0]), clamp01(args[1]), clamp01(args[2]), clamp01(args[3])))
	return nil
}

func opCurrentgray(ip *Interp, name string) error {
	return ip.Ops.Push(value.Float(ip.GS.Color().ToGray()))
}

func opCurrentrgbcolor(ip *Interp, name string) error {
	r, g, b := ip.GS.Color().ToRGB()
	for _, v := range []float64{r, g, b} {
		if err := ip.Ops.Push(value.Float(v)); err != nil {
			return err
		}
	}
	return nil
}

func opCurrentcmykcolor(ip *Interp, name string) error {
	c, m, y, k := ip.GS.Color().ToCMYK()
	for _, v := range []float64{c, m, y, k} {
		if err := ip.Ops.Push(value.Float(v)); err != nil {
			return err
		}
	}
	return nil
}

func opCurrentlinewidth(ip *Interp, name string) error {
	return ip.Ops.Push(value.Float(ip.GS.LineWidth()))
}
func opCurrentlinecap(ip *Interp, name string) error {
	return ip.Ops.Push(value.Int(int64(ip.GS.LineCap())))
}
func opCurrentlinejoin(ip *Interp, name string) error {
	return ip.Ops.Push(value.Int(int64(ip.GS.LineJoin())))
}
func opCurrentmiterlimit(ip *Interp, name string) error {
	return ip.Ops.Push(value.Float(ip.GS.MiterLimit()))
}
func opCurrentflat(ip *Interp, name string) error {
	return ip.Ops.Push(value.Float(ip.GS.Flatness()))
}

// --- matrix ops -------------------------------------------------------

func opMatrix(ip *Interp, name string) error {
	return ip.Ops.Push(matrixValue(graphics.Identity(), ip.alloc))
}

func matrixValue(m graphics.Matrix, alloc value.AllocType) value.Value {
	arr := &value.ArrayObject{Alloc: alloc, Elems: make([]value.Value, 6)}
	for i, f := range m {
		arr.Elems[i] = value.Float(f)
	}
	return value.Value{Kind: value.ArrayKind, Obj: arr}
}

func writeMatrix(dest value.Value, m graphics.Matrix) error {
	arr := dest.AsArray()
	if arr == nil || len(arr.Elems) != 6 {
		return errors.New(errors.TypeCheck, "matrix")
	}
	for i, f := range m {
		arr.Elems[i] = value.Float(f)
	}
	return nil
}

func opIdentmatrix(ip *Interp, name string) error {
	dest, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if !dest.IsMatrix() {
		return errors.New(errors.TypeCheck, name)
	}
	if err := writeMatrix(dest, graphics.Identity()); err != nil {
		return err
	}
	return ip.Ops.Push(dest)
}

func opCurrentmatrix(ip *Interp, name string) error {
	dest, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if !dest.IsMatrix() {
		return errors.New(errors.TypeCheck, name)
	}
	if err := writeMatrix(dest, ip.GS.CTM()); err != nil {
		return err
	}
	return ip.Ops.Push(dest)
}

func opDefaultmatrix(ip *Interp, name string) error {
	dest, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if !dest.IsMatrix() {
		return errors.New(errors.TypeCheck, name)
	}
	if err := writeMatrix(dest, ip.GS.DefaultMatrix()); err != nil {
		return err
	}
	return ip.Ops.Push(dest)
}

func opInitmatrix(ip *Interp, name string) error { ip.GS.InitMatrix(); return nil }

func opSetmatrix(ip *Interp, name string) error {
	v, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if !v.IsMatrix() {
		return errors.New(errors.TypeCheck, name)
	}
	ip.GS.SetMatrix(graphics.Matrix(v.Matrix6()))
	return nil
}

func opConcat(ip *Interp, name string) error {
	v, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if !v.IsMatrix() {
		return errors.New(errors.TypeCheck, name)
	}
	ip.GS.Concat(graphics.Matrix(v.Matrix6()))
	return nil
}

func opConcatmatrix(ip *Interp, name string) error {
	dest, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	m2, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	m1, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if !m1.IsMatrix() || !m2.IsMatrix() || !dest.IsMatrix() {
		return errors.New(errors.TypeCheck, name)
	}
	result := graphics.Multiply(graphics.Matrix(m1.Matrix6()), graphics.Matrix(m2.Matrix6()))
	if err := writeMatrix(dest, result); err != nil {
		return err
	}
	return ip.Ops.Push(dest)
}

func opInvertmatrix(ip *Interp, name string) error {
	dest, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	src, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if !src.IsMatrix() || !dest.IsMatrix() {
		return errors.New(errors.TypeCheck, name)
	}
	inv, err := graphics.Invert(graphics.Matrix(src.Matrix6()))
	if err != nil {
		return err
	}
	if err := writeMatrix(dest, inv); err != nil {
		return err
	}
	return ip.Ops.Push(dest)
}

// opMatrixTransform implements transform/itransform/dtransform/idtransform,
// each either the 2-arg CTM form or the 3-arg explicit-matrix form.
func opMatrixTransform(ip *Interp, name string) error {
	top, err := ip.Ops.Peek(0)
	if err != nil {
		return err
	}
	m := ip.GS.CTM()
	explicit := top.IsMatrix()
	if explicit {
		if _, err := ip.Ops.Pop(); err != nil {
			return err
		}
		m = graphics.Matrix(top.Matrix6())
	}
	y, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	x, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if !x.IsNumber() || !y.IsNumber() {
		return errors.New(errors.TypeCheck, name)
	}
	inverse := name == "itransform" || name == "idtransform"
	if inverse {
		m, err = graphics.Invert(m)
		if err != nil {
			return err
		}
	}
	var rx, ry float64
	if name == "transform" || name == "itransform" {
		rx, ry = graphics.TransformPoint(m, x.Num, y.Num)
	} else {
		rx, ry = graphics.TransformDistance(m, x.Num, y.Num)
	}
	if err := ip.Ops.Push(value.Float(rx)); err != nil {
		return err
	}
	return ip.Ops.Push(value.Float(ry))
}

// opScale/opRotate/opTranslate implement both the 2/1/2-arg CTM form and
// the 3/2/3-arg explicit-matrix form.
func opScale(ip *Interp, name string) error {
	top, err := ip.Ops.Peek(0)
	if err != nil {
		return err
	}
	if top.IsMatrix() {
		dest, _ := ip.Ops.Pop()
		sy, err := ip.Ops.Pop()
		if err != nil {
			return err
		}
		sx, err := ip.Ops.Pop()
		if err != nil {
			return err
		}
		if err := writeMatrix(dest, graphics.ScaleMatrix(sx.Num, sy.Num)); err != nil {
			return err
		}
		return ip.Ops.Push(dest)
	}
	sy, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	sx, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	ip.GS.Scale(sx.Num, sy.Num)
	return nil
}

func opTranslate(ip *Interp, name string) error {
	top, err := ip.Ops.Peek(0)
	if err != nil {
		return err
	}
	if top.IsMatrix() {
		dest, _ := ip.Ops.Pop()
		ty, err := ip.Ops.Pop()
		if err != nil {
			return err
		}
		tx, err := ip.Ops.Pop()
		if err != nil {
			return err
		}
		if err := writeMatrix(dest, graphics.TranslateMatrix(tx.Num, ty.Num)); err != nil {
			return err
		}
		return ip.Ops.Push(dest)
	}
	ty, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	tx, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	ip.GS.Translate(tx.Num, ty.Num)
	return nil
}

func opRotate(ip *Interp, name string) error {
	top, err := ip.Ops.Peek(0)
	if err != nil {
		return err
	}
	if top.IsMatrix() {
		dest, _ := ip.Ops.Pop()
		angle, err := ip.Ops.Pop()
		if err != nil {
			return err
		}
		if err := writeMatrix(dest, graphics.RotateMatrix(angle.Num*math.Pi/180)); err != nil {
			return err
		}
		return ip.Ops.Push(dest)
	}
	angle, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	ip.GS.Rotate(angle.Num * math.Pi / 180)
	return nil
}
