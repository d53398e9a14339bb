// Package font maps PostScript font names to backend faces and provides an
// independent glyph-metrics path for stringwidth.
package font

import (
	"eps2pdf/internal/backend"
	"eps2pdf/internal/errors"
)

// entry describes one static-table mapping from a PostScript font name to
// a backend face family, slant and weight.
type entry struct {
	face  string
	slant backend.Slant
	bold  bool
}

// table is the findfont mapping. Unknown names fall back to Times-Roman.
var table = map[string]entry{
	"Times-Roman":           {"Times", backend.SlantNormal, false},
	"Times-Bold":            {"Times", backend.SlantNormal, true},
	"Times-Italic":          {"Times", backend.SlantItalic, false},
	"Times-BoldItalic":      {"Times", backend.SlantItalic, true},
	"Helvetica":             {"Helvetica", backend.SlantNormal, false},
	"Helvetica-Bold":        {"Helvetica", backend.SlantNormal, true},
	"Helvetica-Oblique":     {"Helvetica", backend.SlantOblique, false},
	"Helvetica-BoldOblique": {"Helvetica", backend.SlantOblique, true},
	"Courier":               {"Courier", backend.SlantNormal, false},
	"Courier-Bold":          {"Courier", backend.SlantNormal, true},
	"Courier-Oblique":       {"Courier", backend.SlantOblique, false},
	"Courier-BoldOblique":   {"Courier", backend.SlantOblique, true},
	"Symbol":                {"Symbol", backend.SlantNormal, false},
	"ZapfDingbats":          {"ZapfDingbats", backend.SlantNormal, false},
}

const fallbackName = "Times-Roman"

// Descriptor is the resolved face/size/style findfont, scalefont and
// setfont build up before committing to the backend.
type Descriptor struct {
	Name  string
	Face  string
	Slant backend.Slant
	Bold  bool
	Size  float64
}

// Find resolves a PostScript font name to a face descriptor, falling back
// to Times-Roman for anything the static table doesn't know.
func Find(name string) Descriptor {
	e, ok := table[name]
	if !ok {
		e = table[fallbackName]
		name = fallbackName
	}
	return Descriptor{Name: name, Face: e.face, Slant: e.slant, Bold: e.bold, Size: 1}
}

// Scale returns a copy of d with the point size set (`scalefont`).
func (d Descriptor) Scale(size float64) Descriptor {
	d.Size = size
	return d
}

// Commit selects the face and size on the backend surface (`setfont`). The
// returned error carries no operator name; callers fill it in via
// errors.WithOp.
func (d Descriptor) Commit(bk backend.Surface) error {
	if err := bk.SelectFace(d.Face, d.Slant, d.Bold); err != nil {
		return errors.New(errors.Undefined, "")
	}
	bk.SetFontSize(d.Size)
	return nil
}
