// Package pdfsurface implements backend.Surface on top of seehuhn.de/go/pdf,
// the concrete 2D vector rendering surface for this converter.
package pdfsurface

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf/document"
	gcolor "seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/font"
	"seehuhn.de/go/pdf/font/type1"

	"eps2pdf/internal/backend"
	"eps2pdf/internal/errors"
	psfont "eps2pdf/internal/font"
)

// Surface is the PDF-backed implementation of backend.Surface. The
// interpreter core sees only the backend.Surface interface; this type is
// never referenced outside cmd/eps2pdf's wiring.
type Surface struct {
	doc    *document.Page
	width  float64
	height float64

	ctm      matrix.Matrix
	x, y     float64
	hasPoint bool

	fonts   map[string]font.Embedded
	curFont font.Embedded
	curSize float64
	bold    bool
	italic  bool

	saveStack []saved
}

type saved struct {
	ctm      matrix.Matrix
	x, y     float64
	hasPoint bool
}

// New opens outPath and starts a single page sized width x height points.
func New(outPath string, width, height float64) (*Surface, error) {
	doc, err := document.CreateSinglePage(outPath, width, height, nil)
	if err != nil {
		return nil, errors.New(errors.IOError, "")
	}
	return &Surface{
		doc:    doc,
		width:  width,
		height: height,
		ctm:    matrix.Identity,
		fonts:  make(map[string]font.Embedded),
	}, nil
}

// --- matrix plumbing -------------------------------------------------------
//
// seehuhn.de/go/pdf/document.Page.Transform concatenates onto the content
// stream's CTM; it has no "set absolute" primitive. This type tracks the
// absolute CTM itself and, on SetMatrix, emits the delta needed to land on
// the requested absolute matrix.

func toGeom(m backend.Matrix) matrix.Matrix {
	return matrix.Matrix{m[0], m[1], m[2], m[3], m[4], m[5]}
}

func fromGeom(m matrix.Matrix) backend.Matrix {
	return backend.Matrix{m[0], m[1], m[2], m[3], m[4], m[5]}
}

func invert(m matrix.Matrix) (matrix.Matrix, bool) {
	det := m[0]*m[3] - m[1]*m[2]
	if math.Abs(det) < 1e-12 {
		return matrix.Matrix{}, false
	}
	inv := 1 / det
	a, b, c, d, e, f := m[0], m[1], m[2], m[3], m[4], m[5]
	ia, ib, ic, id := d*inv, -b*inv, -c*inv, a*inv
	return matrix.Matrix{ia, ib, ic, id, -(e*ia + f*ic), -(e*ib + f*id)}, true
}

func (s *Surface) SetMatrix(m backend.Matrix) {
	target := toGeom(m)
	inv, ok := invert(s.ctm)
	if !ok {
		s.ctm = target
		return
	}
	delta := inv.Mul(target)
	s.doc.Transform(delta)
	s.ctm = target
}

func (s *Surface) GetMatrix() backend.Matrix { return fromGeom(s.ctm) }

func (s *Surface) Translate(x, y float64) {
	s.doc.Transform(matrix.Translate(x, y))
	s.ctm = matrix.Translate(x, y).Mul(s.ctm)
}

func (s *Surface) Scale(x, y float64) {
	s.doc.Transform(matrix.Scale(x, y))
	s.ctm = matrix.Scale(x, y).Mul(s.ctm)
}

func (s *Surface) Rotate(radians float64) {
	s.doc.Transform(matrix.Rotate(radians))
	s.ctm = matrix.Rotate(radians).Mul(s.ctm)
}

// --- path construction -----------------------------------------------------

func (s *Surface) NewPath() { s.hasPoint = false }

func (s *Surface) MoveTo(x, y float64) {
	s.doc.MoveTo(x, y)
	s.x, s.y, s.hasPoint = x, y, true
}

func (s *Surface) LineTo(x, y float64) {
	s.doc.LineTo(x, y)
	s.x, s.y = x, y
}

func (s *Surface) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	s.doc.CurveTo(x1, y1, x2, y2, x3, y3)
	s.x, s.y = x3, y3
}

func (s *Surface) ClosePath() { s.doc.ClosePath() }

func (s *Surface) Rectangle(x, y, w, h float64) {
	s.doc.Rectangle(x, y, w, h)
	s.x, s.y, s.hasPoint = x, y, true
}

// Arc approximates the circular arc with cubic Beziers in 90-degree-or-less
// steps, since the PDF content stream has no native arc operator.
func (s *Surface) Arc(cx, cy, r, a1, a2 float64, negative bool) {
	start, end := a1, a2
	if negative && end > start {
		end -= 360
	} else if !negative && end < start {
		end += 360
	}
	sx := cx + r*math.Cos(start*math.Pi/180)
	sy := cy + r*math.Sin(start*math.Pi/180)
	if !s.hasPoint {
		s.doc.MoveTo(sx, sy)
	} else {
		s.doc.LineTo(sx, sy)
	}
	s.x, s.y, s.hasPoint = sx, sy, true

	span := end - start
	const maxStep = 90.0
	steps := int(math.Ceil(math.Abs(span) / maxStep))
	if steps == 0 {
		return
	}
	step := span / float64(steps)
	cur := start
	for i := 0; i < steps; i++ {
		next := cur + step
		s.arcSegment(cx, cy, r, cur, next)
		cur = next
	}
}

func (s *Surface) arcSegment(cx, cy, r, a1, a2 float64) {
	t1 := a1 * math.Pi / 180
	t2 := a2 * math.Pi / 180
	alpha := (t2 - t1) / 2
	k := 4.0 / 3.0 * math.Sin(alpha) / (1 + math.Cos(alpha))

	x1, y1 := cx+r*math.Cos(t1), cy+r*math.Sin(t1)
	x2, y2 := cx+r*math.Cos(t2), cy+r*math.Sin(t2)
	c1x := x1 - k*r*math.Sin(t1)
	c1y := y1 + k*r*math.Cos(t1)
	c2x := x2 + k*r*math.Sin(t2)
	c2y := y2 - k*r*math.Cos(t2)

	s.doc.CurveTo(c1x, c1y, c2x, c2y, x2, y2)
	s.x, s.y = x2, y2
}

// FlattenPath is a no-op: the PDF content stream accepts Bezier curves
// directly, so there is nothing to flatten.
func (s *Surface) FlattenPath() {}

// --- painting ----------------------------------------------------------

func (s *Surface) Stroke() { s.doc.Stroke() }

func (s *Surface) Fill(evenOdd bool) {
	if evenOdd {
		s.doc.FillEvenOdd()
		return
	}
	s.doc.Fill()
}

func (s *Surface) Clip(evenOdd bool) {
	if evenOdd {
		s.doc.ClipEvenOdd()
		return
	}
	s.doc.ClipNonZero()
}

func (s *Surface) ErasePage() {
	s.doc.SetFillColor(gcolor.DeviceGray(1))
	s.doc.Rectangle(0, 0, s.width, s.height)
	s.doc.Fill()
}

// --- line/fill style ---------------------------------------------------

func (s *Surface) SetLineWidth(w float64) { s.doc.SetLineWidth(w) }

func (s *Surface) SetLineCap(c backend.LineCap) { s.doc.SetLineCap(int(c)) }

func (s *Surface) SetLineJoin(j backend.LineJoin) { s.doc.SetLineJoin(int(j)) }

func (s *Surface) SetMiterLimit(m float64) { s.doc.SetMiterLimit(m) }

// SetFlatness records the curve-flattening tolerance; seehuhn.de/go/pdf
// does not need it since it writes Bezier curves directly, but the viewer
// receiving the PDF still honors the PDF `i` operator for its own
// rasterization.
func (s *Surface) SetFlatness(tolerance float64) { s.doc.SetFlatness(tolerance) }

func (s *Surface) SetDash(pattern []float64, phase float64) {
	s.doc.SetDashPattern(pattern, phase)
}

func (s *Surface) SetSourceRGB(r, g, b float64) {
	s.doc.SetFillColor(gcolor.DeviceRGB(r, g, b))
	s.doc.SetStrokeColor(gcolor.DeviceRGB(r, g, b))
}

// --- text ----------------------------------------------------------------

// standardFont maps face/slant/bold to the PDF standard-14 Type 1 font
// descriptors.
func standardFont(face string, slant backend.Slant, bold bool) *type1.Font {
	switch face {
	case "Times":
		switch {
		case bold && slant != backend.SlantNormal:
			return type1.TimesBoldItalic
		case bold:
			return type1.TimesBold
		case slant != backend.SlantNormal:
			return type1.TimesItalic
		default:
			return type1.TimesRoman
		}
	case "Courier":
		switch {
		case bold && slant != backend.SlantNormal:
			return type1.CourierBoldOblique
		case bold:
			return type1.CourierBold
		case slant != backend.SlantNormal:
			return type1.CourierOblique
		default:
			return type1.Courier
		}
	case "Symbol":
		return type1.Symbol
	case "ZapfDingbats":
		return type1.ZapfDingbats
	default: // Helvetica
		switch {
		case bold && slant != backend.SlantNormal:
			return type1.HelveticaBoldOblique
		case bold:
			return type1.HelveticaBold
		case slant != backend.SlantNormal:
			return type1.HelveticaOblique
		default:
			return type1.Helvetica
		}
	}
}

func (s *Surface) SelectFace(face string, slant backend.Slant, bold bool) error {
	key := fmt.Sprintf("%s|%d|%s", face, slant, boolKey(bold))
	s.bold = bold
	s.italic = slant != backend.SlantNormal
	if f, ok := s.fonts[key]; ok {
		s.curFont = f
		return nil
	}
	base := standardFont(face, slant, bold)
	embedded, err := base.Embed(s.doc.Out, nil)
	if err != nil {
		return errors.New(errors.Undefined, "")
	}
	s.fonts[key] = embedded
	s.curFont = embedded
	return nil
}

func boolKey(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (s *Surface) SetFontSize(size float64) { s.curSize = size }

func (s *Surface) ShowText(text string) error {
	if s.curFont == nil {
		return errors.New(errors.Undefined, "show")
	}
	s.doc.TextBegin()
	s.doc.TextSetFont(s.curFont, s.curSize)
	s.doc.TextFirstLine(s.x, s.y)
	s.doc.TextShow(text)
	s.doc.TextEnd()
	w, _, err := s.TextExtents(text)
	if err == nil {
		s.x += w
	}
	return nil
}

// TextPath advances the current point as if the glyphs had been painted,
// without adding glyph outlines to the path: seehuhn.de/go/pdf's font
// objects expose advance widths, not outline geometry, for the standard-14
// fonts this backend renders with.
func (s *Surface) TextPath(text string) error {
	w, _, err := s.TextExtents(text)
	if err != nil {
		return err
	}
	s.x += w
	return nil
}

func (s *Surface) TextExtents(text string) (float64, float64, error) {
	w, err := psfont.Shared().AdvanceWidth(text, s.curSize, s.bold, s.italic)
	if err != nil {
		return 0, 0, err
	}
	return w, 0, nil
}

// --- state stack -----------------------------------------------------------

func (s *Surface) Save() {
	s.doc.PushGraphicsState()
	s.saveStack = append(s.saveStack, saved{ctm: s.ctm, x: s.x, y: s.y, hasPoint: s.hasPoint})
}

func (s *Surface) Restore() {
	if len(s.saveStack) == 0 {
		return
	}
	top := s.saveStack[len(s.saveStack)-1]
	s.saveStack = s.saveStack[:len(s.saveStack)-1]
	s.ctm, s.x, s.y, s.hasPoint = top.ctm, top.x, top.y, top.hasPoint
	s.doc.PopGraphicsState()
}

// --- page lifecycle ----------------------------------------------------

func (s *Surface) ShowPage() {}

func (s *Surface) WriteTo(path string) error {
	if err := s.doc.Close(); err != nil {
		return errors.New(errors.IOError, "")
	}
	return nil
}

var _ backend.Surface = (*Surface)(nil)
