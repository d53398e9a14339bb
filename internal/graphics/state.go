// Package graphics implements the graphics state: the CTM,
// current point, current color, and the gsave/grestore stack, mediating
// every drawing call to the backend.Surface collaborator.
package graphics

import (
	"eps2pdf/internal/backend"
	"eps2pdf/internal/errors"
)

// DeviceScale is the default CTM scale, 96 user units per 72 PostScript
// points.
const DeviceScale = 96.0 / 72.0

type snapshot struct {
	ctm        Matrix
	x, y       float64
	hasPoint   bool
	color      Color
	lineWidth  float64
	lineCap    backend.LineCap
	lineJoin   backend.LineJoin
	miterLimit float64
	flatness   float64
}

// State mediates every path/color/matrix/text operator to the backend
//. Width and Height are the page size in points, set at
// construction from the scanner's BoundingBox pre-scan or the 612x792
// fallback, and overwritten by setpagedevice's PageSize.
type State struct {
	Backend backend.Surface
	Width   float64
	Height  float64

	ctm      Matrix
	x, y     float64
	hasPoint bool
	color    Color

	lineWidth  float64
	lineCap    backend.LineCap
	lineJoin   backend.LineJoin
	miterLimit float64
	flatness   float64

	stack []snapshot
}

// New wires a backend surface sized to width x height and sets the
// default CTM and line style. The backend has no
// getters for line style, so State mirrors it locally for the current*
// readback operators.
func New(bk backend.Surface, width, height float64) *State {
	st := &State{Backend: bk, Width: width, Height: height}
	st.ctm = ScaleMatrix(DeviceScale, DeviceScale)
	st.color = GrayColor(0)
	st.lineWidth = 1
	st.miterLimit = 10
	st.flatness = 1
	bk.SetMatrix(st.ctm)
	bk.NewPath()
	return st
}

func (st *State) CTM() Matrix { return st.ctm }

func (st *State) CurrentPoint() (float64, float64, bool) { return st.x, st.y, st.hasPoint }

func (st *State) requireCurrentPoint(op string) error {
	if !st.hasPoint {
		return errors.New(errors.NoCurrentPoint, op)
	}
	return nil
}

// --- path construction -----------------------------------

func (st *State) NewPath() {
	st.Backend.NewPath()
	st.hasPoint = false
}

func (st *State) MoveTo(x, y float64) {
	st.Backend.MoveTo(x, y)
	st.x, st.y, st.hasPoint = x, y, true
}

func (st *State) LineTo(op string, x, y float64) error {
	if err := st.requireCurrentPoint(op); err != nil {
		return err
	}
	st.Backend.LineTo(x, y)
	st.x, st.y = x, y
	return nil
}

func (st *State) RLineTo(op string, dx, dy float64) error {
	if err := st.requireCurrentPoint(op); err != nil {
		return err
	}
	return st.LineTo(op, st.x+dx, st.y+dy)
}

func (st *State) RMoveTo(op string, dx, dy float64) error {
	if err := st.requireCurrentPoint(op); err != nil {
		return err
	}
	st.MoveTo(st.x+dx, st.y+dy)
	return nil
}

func (st *State) CurveTo(op string, x1, y1, x2, y2, x3, y3 float64) error {
	if err := st.requireCurrentPoint(op); err != nil {
		return err
	}
	st.Backend.CurveTo(x1, y1, x2, y2, x3, y3)
	st.x, st.y = x3, y3
	return nil
}

func (st *State) RCurveTo(op string, dx1, dy1, dx2, dy2, dx3, dy3 float64) error {
	if err := st.requireCurrentPoint(op); err != nil {
		return err
	}
	x0, y0 := st.x, st.y
	return st.CurveTo(op, x0+dx1, y0+dy1, x0+dx2, y0+dy2, x0+dx3, y0+dy3)
}

func (st *State) ClosePath() { st.Backend.ClosePath() }

func (st *State) Arc(cx, cy, r, a1, a2 float64, negative bool) {
	st.Backend.Arc(cx, cy, r, a1, a2, negative)
	if negative {
		st.x, st.y = cx+r*cosDeg(a1), cy+r*sinDeg(a1)
	} else {
		st.x, st.y = cx+r*cosDeg(a2), cy+r*sinDeg(a2)
	}
	st.hasPoint = true
}

func (st *State) FlattenPath() { st.Backend.FlattenPath() }

// RectFillOrStroke implements rectfill/rectstroke, bracketed in their own
// save/restore so the surrounding path is untouched.
func (st *State) RectFillOrStroke(x, y, w, h float64, fill bool) {
	st.GSave()
	st.Backend.NewPath()
	st.Backend.Rectangle(x, y, w, h)
	if fill {
		st.Backend.Fill(false)
	} else {
		st.Backend.Stroke()
	}
	st.GRestore()
}

func (st *State) Stroke()            { st.Backend.Stroke() }
func (st *State) Fill(evenOdd bool)  { st.Backend.Fill(evenOdd) }
func (st *State) Clip(evenOdd bool)  { st.Backend.Clip(evenOdd) }
func (st *State) ErasePage()         { st.Backend.ErasePage() }

// --- line/fill/color style -----------------------------------------------

func (st *State) SetLineWidth(w float64) {
	st.lineWidth = w
	st.Backend.SetLineWidth(w)
}

func (st *State) SetLineCap(c backend.LineCap) {
	st.lineCap = c
	st.Backend.SetLineCap(c)
}

func (st *State) SetLineJoin(j backend.LineJoin) {
	st.lineJoin = j
	st.Backend.SetLineJoin(j)
}

func (st *State) SetMiterLimit(m float64) {
	st.miterLimit = m
	st.Backend.SetMiterLimit(m)
}

func (st *State) SetFlat(tolerance float64) {
	st.flatness = tolerance
	st.Backend.SetFlatness(tolerance)
}

func (st *State) SetDash(pattern []float64, phase float64) { st.Backend.SetDash(pattern, phase) }

func (st *State) SetColor(c Color) {
	st.color = c
	r, g, b := c.ToRGB()
	st.Backend.SetSourceRGB(r, g, b)
}

func (st *State) Color() Color { return st.color }

func (st *State) LineWidth() float64          { return st.lineWidth }
func (st *State) LineCap() backend.LineCap    { return st.lineCap }
func (st *State) LineJoin() backend.LineJoin  { return st.lineJoin }
func (st *State) MiterLimit() float64         { return st.miterLimit }
func (st *State) Flatness() float64           { return st.flatness }

// --- matrix ops -------------------------------------------

func (st *State) SetMatrix(m Matrix) {
	st.ctm = m
	st.Backend.SetMatrix(m)
}

func (st *State) Concat(m Matrix) {
	st.ctm = Multiply(m, st.ctm)
	st.Backend.SetMatrix(st.ctm)
}

func (st *State) Scale(sx, sy float64)       { st.Concat(ScaleMatrix(sx, sy)) }
func (st *State) Translate(tx, ty float64)   { st.Concat(TranslateMatrix(tx, ty)) }
func (st *State) Rotate(radians float64)     { st.Concat(RotateMatrix(radians)) }

func (st *State) InitMatrix() {
	st.SetMatrix(ScaleMatrix(DeviceScale, DeviceScale))
}

func (st *State) DefaultMatrix() Matrix { return ScaleMatrix(DeviceScale, DeviceScale) }

// --- gsave/grestore and save/restore ----------------

func (st *State) snapshotNow() snapshot {
	return snapshot{
		ctm: st.ctm, x: st.x, y: st.y, hasPoint: st.hasPoint, color: st.color,
		lineWidth: st.lineWidth, lineCap: st.lineCap, lineJoin: st.lineJoin,
		miterLimit: st.miterLimit, flatness: st.flatness,
	}
}

func (st *State) GSave() {
	st.stack = append(st.stack, st.snapshotNow())
	st.Backend.Save()
}

func (st *State) GRestore() error {
	if len(st.stack) == 0 {
		return nil // grestore on an empty stack is a no-op in this core
	}
	snap := st.stack[len(st.stack)-1]
	st.stack = st.stack[:len(st.stack)-1]
	st.restoreSnapshot(snap)
	st.Backend.Restore()
	return nil
}

func (st *State) restoreSnapshot(snap snapshot) {
	st.ctm, st.x, st.y, st.hasPoint, st.color = snap.ctm, snap.x, snap.y, snap.hasPoint, snap.color
	st.lineWidth, st.lineCap, st.lineJoin = snap.lineWidth, snap.lineCap, snap.lineJoin
	st.miterLimit, st.flatness = snap.miterLimit, snap.flatness
	st.Backend.SetMatrix(st.ctm)
	r, g, b := st.color.ToRGB()
	st.Backend.SetSourceRGB(r, g, b)
	st.Backend.SetLineWidth(st.lineWidth)
	st.Backend.SetLineCap(st.lineCap)
	st.Backend.SetLineJoin(st.lineJoin)
	st.Backend.SetMiterLimit(st.miterLimit)
	st.Backend.SetFlatness(st.flatness)
}

// Snapshot returns an opaque payload for value.SavedState.GState, produced
// by `save` alongside an implicit gsave.
func Snapshot(st *State) interface{} {
	st.GSave()
	return st.snapshotNow()
}

// Restore applies a Snapshot payload and pops the matching gsave frame.
func Restore(st *State, snap interface{}) error {
	sn, ok := snap.(snapshot)
	if !ok {
		return errors.New(errors.TypeCheck, "restore")
	}
	st.restoreSnapshot(sn)
	if len(st.stack) > 0 {
		st.stack = st.stack[:len(st.stack)-1]
	}
	return nil
}

func (st *State) ShowPage() { st.Backend.ShowPage() }

func (st *State) WriteTo(path string) error { return st.Backend.WriteTo(path) }
