package font

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"eps2pdf/internal/errors"
)

// Metrics measures glyph advance widths independently of the backend's own
// glyph cache. It backs stringwidth for callers that need metrics before a
// page has been opened on the backend.
type Metrics struct {
	mu    sync.Mutex
	cache map[bool]map[bool]*truetype.Font // [bold][italic]
}

var shared = &Metrics{}

// Shared returns the process-wide metrics table, parsed lazily on first use.
func Shared() *Metrics { return shared }

func (m *Metrics) fontFor(bold, italic bool) (*truetype.Font, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cache == nil {
		m.cache = make(map[bool]map[bool]*truetype.Font)
	}
	if m.cache[bold] == nil {
		m.cache[bold] = make(map[bool]*truetype.Font)
	}
	if f, ok := m.cache[bold][italic]; ok {
		return f, nil
	}
	var raw []byte
	switch {
	case bold && italic:
		raw = gobolditalic.TTF
	case bold:
		raw = gobold.TTF
	case italic:
		raw = goitalic.TTF
	default:
		raw = goregular.TTF
	}
	f, err := truetype.Parse(raw)
	if err != nil {
		return nil, errors.New(errors.VMError, "stringwidth")
	}
	m.cache[bold][italic] = f
	return f, nil
}

// AdvanceWidth returns the x advance of a string set at size points in the
// face matching bold/italic, in PostScript user-space units.
func (m *Metrics) AdvanceWidth(s string, size float64, bold, italic bool) (float64, error) {
	f, err := m.fontFor(bold, italic)
	if err != nil {
		return 0, err
	}
	unitsPerEM := float64(f.FUnitsPerEm())
	fscale := fixed.I(int(unitsPerEM))
	scale := size / unitsPerEM
	var total float64
	prev := truetype.Index(0)
	hasPrev := false
	for _, r := range s {
		gi := f.Index(r)
		hm := f.HMetric(fscale, gi)
		total += float64(hm.AdvanceWidth) / 64 * scale
		if hasPrev {
			k := f.Kern(fscale, prev, gi)
			total += float64(k) / 64 * scale
		}
		prev, hasPrev = gi, true
	}
	return total, nil
}
