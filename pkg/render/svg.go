package render

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"github.com/sheetsmith/sheetsmith/pkg/sheet"
)

// Scale converts template millimeters to SVG pixels.
const defaultScale = 4.0

// kindFills maps region kinds to their preview fill colors.
var kindFills = map[sheet.Kind]string{
	sheet.KindPositioning: "#1f2937",
	sheet.KindBarcode:     "#6b7280",
	sheet.KindObjective:   "#3b82f6",
	sheet.KindSubjective:  "#10b981",
	sheet.KindHeader:      "#f59e0b",
	sheet.KindFooter:      "#f59e0b",
	sheet.KindStudentInfo: "#8b5cf6",
}

const fallbackFill = "#9ca3af"

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale      float64
	showLabels bool
	showGrid   bool
	margins    *[4]float64
}

// WithScale overrides the millimeter-to-pixel scale factor.
func WithScale(s float64) SVGOption { return func(r *svgRenderer) { r.scale = s } }

// WithLabels draws each region's id inside its rectangle.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.showLabels = true } }

// WithGrid draws a light 10 mm reference grid behind the regions.
func WithGrid() SVGOption { return func(r *svgRenderer) { r.showGrid = true } }

// WithMargins draws the printable-area boundary as a dashed rectangle.
// Order is top, right, bottom, left.
func WithMargins(top, right, bottom, left float64) SVGOption {
	return func(r *svgRenderer) { r.margins = &[4]float64{top, right, bottom, left} }
}

// RenderSVG renders a template preview. Regions are drawn in id order so the
// output is byte-stable for identical templates.
func RenderSVG(tpl *sheet.Template, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	regions := sheet.CloneRegions(tpl.Regions)
	slices.SortFunc(regions, func(a, b sheet.Region) int {
		return cmp.Compare(a.ID, b.ID)
	})

	w := tpl.Page.Width * r.scale
	h := tpl.Page.Height * r.scale

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="#ffffff" stroke="#d1d5db"/>`+"\n", w, h)

	if r.showGrid {
		renderGrid(&buf, tpl.Page, r.scale)
	}
	if r.margins != nil {
		renderMargins(&buf, tpl.Page, *r.margins, r.scale)
	}
	for _, reg := range regions {
		r.renderRegion(&buf, reg)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{scale: defaultScale}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *svgRenderer) renderRegion(buf *bytes.Buffer, reg sheet.Region) {
	fill, ok := kindFills[reg.Kind]
	if !ok {
		fill = fallbackFill
	}
	fmt.Fprintf(buf, `  <rect id="region-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="0.35" stroke="%s"/>`+"\n",
		reg.ID, reg.X*r.scale, reg.Y*r.scale, reg.Width*r.scale, reg.Height*r.scale, fill, fill)

	if r.showLabels {
		b := reg.Bounds()
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" text-anchor="middle" dominant-baseline="middle" fill="#111827">%s</text>`+"\n",
			b.CenterX()*r.scale, b.CenterY()*r.scale, 3*r.scale, reg.ID)
	}
}

func renderGrid(buf *bytes.Buffer, page sheet.Page, scale float64) {
	for x := 10.0; x < page.Width; x += 10 {
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="0" x2="%.1f" y2="%.1f" stroke="#f3f4f6"/>`+"\n",
			x*scale, x*scale, page.Height*scale)
	}
	for y := 10.0; y < page.Height; y += 10 {
		fmt.Fprintf(buf, `  <line x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#f3f4f6"/>`+"\n",
			y*scale, page.Width*scale, y*scale)
	}
}

func renderMargins(buf *bytes.Buffer, page sheet.Page, m [4]float64, scale float64) {
	top, right, bottom, left := m[0], m[1], m[2], m[3]
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#ef4444" stroke-dasharray="4 4"/>`+"\n",
		left*scale, top*scale,
		(page.Width-left-right)*scale, (page.Height-top-bottom)*scale)
}
