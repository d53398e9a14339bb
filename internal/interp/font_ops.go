package interp

import (
	"eps2pdf/internal/backend"
	"eps2pdf/internal/errors"
	"eps2pdf/internal/font"
	"eps2pdf/internal/graphics"
	"eps2pdf/internal/value"
)

func descriptorToFont(d font.Descriptor) *value.FontObject {
	return &value.FontObject{
		Face:  d.Face,
		Size:  d.Size,
		Slant: value.Slant(d.Slant),
		Bold:  d.Bold,
	}
}

func fontToDescriptor(fo *value.FontObject) font.Descriptor {
	return font.Descriptor{
		Face:  fo.Face,
		Slant: backend.Slant(fo.Slant),
		Bold:  fo.Bold,
		Size:  fo.Size,
	}
}

// opFindfont resolves a PostScript font name against the static table,
// falling back to Times-Roman for anything unknown.
func opFindfont(ip *Interp, name string) error {
	v, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if !v.IsStringType() {
		return errors.New(errors.TypeCheck, name)
	}
	d := font.Find(string(v.AsString().Data))
	return ip.Ops.Push(value.Value{Kind: value.FontKind, Obj: descriptorToFont(d)})
}

// opScalefont mutates the point size in place and leaves the font on the
// stack.
func opScalefont(ip *Interp, name string) error {
	sizeV, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	fv, err := ip.Ops.Peek(0)
	if err != nil {
		return err
	}
	if fv.Kind != value.FontKind {
		return errors.New(errors.TypeCheck, name)
	}
	if sizeV.Num < 0 {
		return errors.New(errors.RangeCheck, name)
	}
	fv.AsFont().Size = sizeV.Num
	return nil
}

// opSetfont commits the face, slant, weight and size to the backend and
// remembers it for stringwidth.
func opSetfont(ip *Interp, name string) error {
	v, err := ip.Ops.Peek(0)
	if err != nil {
		return err
	}
	if v.Kind != value.FontKind {
		return errors.New(errors.TypeCheck, name)
	}
	fo := v.AsFont()
	if err := fontToDescriptor(fo).Commit(ip.GS.Backend); err != nil {
		return err
	}
	if _, err := ip.Ops.Pop(); err != nil {
		return err
	}
	ip.curFont = fo
	return nil
}

// opSelectfont is findfont+scalefont+setfont in one step: nothing is
// popped from the stack until every step has succeeded.
func opSelectfont(ip *Interp, name string) error {
	sizeV, err := ip.Ops.Peek(0)
	if err != nil {
		return err
	}
	nameV, err := ip.Ops.Peek(1)
	if err != nil {
		return err
	}
	if !sizeV.IsNumber() || !nameV.IsStringType() {
		return errors.New(errors.TypeCheck, name)
	}
	if sizeV.Num < 0 {
		return errors.New(errors.RangeCheck, name)
	}
	d := font.Find(string(nameV.AsString().Data)).Scale(sizeV.Num)
	if err := d.Commit(ip.GS.Backend); err != nil {
		return err
	}
	ip.curFont = descriptorToFont(d)
	if _, err := ip.Ops.PopN(2); err != nil {
		return err
	}
	return nil
}

// withYFlip brackets fn in a temporary Y-flip, since PostScript text
// baselines run opposite the device Y axis used to size the page.
func withYFlip(ip *Interp, fn func() error) error {
	saved := ip.GS.CTM()
	ip.GS.Concat(graphics.ScaleMatrix(1, -1))
	err := fn()
	ip.GS.SetMatrix(saved)
	return err
}

func opShow(ip *Interp, name string) error {
	v, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if v.Kind != value.TextString {
		return errors.New(errors.TypeCheck, name)
	}
	if _, _, has := ip.GS.CurrentPoint(); !has {
		return errors.New(errors.NoCurrentPoint, name)
	}
	return withYFlip(ip, func() error {
		return ip.GS.Backend.ShowText(string(v.AsString().Data))
	})
}

// opCharpath pops a boolean stroke-flag (unused: Backend.TextPath takes no
// such flag) and the text itself. The PDF backend's TextPath adds no glyph
// outlines to the path; it only advances the current point by the text's
// width.
func opCharpath(ip *Interp, name string) error {
	_, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	s, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if s.Kind != value.TextString {
		return errors.New(errors.TypeCheck, name)
	}
	if _, _, has := ip.GS.CurrentPoint(); !has {
		return errors.New(errors.NoCurrentPoint, name)
	}
	return withYFlip(ip, func() error {
		return ip.GS.Backend.TextPath(string(s.AsString().Data))
	})
}

// opStringwidth uses the independent metrics table rather than the
// backend, so it works even before any text has actually been painted.
func opStringwidth(ip *Interp, name string) error {
	v, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if v.Kind != value.TextString {
		return errors.New(errors.TypeCheck, name)
	}
	if ip.curFont == nil {
		return errors.New(errors.Undefined, name)
	}
	italic := ip.curFont.Slant == value.SlantItalic || ip.curFont.Slant == value.SlantOblique
	w, err := font.Shared().AdvanceWidth(string(v.AsString().Data), ip.curFont.Size, ip.curFont.Bold, italic)
	if err != nil {
		return err
	}
	if err := ip.Ops.Push(value.Float(w)); err != nil {
		return err
	}
	return ip.Ops.Push(value.Float(0))
}
