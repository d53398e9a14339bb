package interp

import (
	"eps2pdf/internal/errors"
	"eps2pdf/internal/value"
)

func opLanguagelevel(ip *Interp, name string) error {
	return ip.Ops.Push(value.Int(1))
}

func opProduct(ip *Interp, name string) error {
	return ip.pushString("EPS2PDF", value.TextString, value.TagText)
}

func opVersion(ip *Interp, name string) error {
	return ip.pushString("1.0", value.TextString, value.TagText)
}

func opStart(ip *Interp, name string) error { return nil }

// opSetpagedevice reads the PageSize entry of a page-device dict into the
// graphics state's Width/Height. The backend page, already opened at its
// initial size, is not resized. Any other key is accepted and ignored.
func opSetpagedevice(ip *Interp, name string) error {
	v, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	if v.Kind != value.DictKind {
		return errors.New(errors.TypeCheck, name)
	}
	d := v.AsDict()
	sizeV, ok := d.StrKeys["PageSize"]
	if !ok {
		return nil
	}
	if !sizeV.IsArrayType() {
		return nil
	}
	arr := sizeV.AsArray()
	if len(arr.Elems) != 2 || !arr.Elems[0].IsNumber() || !arr.Elems[1].IsNumber() {
		return nil
	}
	w, h := arr.Elems[0].Num, arr.Elems[1].Num
	if w <= 0 || h <= 0 {
		return errors.New(errors.RangeCheck, name)
	}
	ip.GS.Width = w
	ip.GS.Height = h
	return nil
}
