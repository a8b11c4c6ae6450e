package convert

import (
	"math"

	"github.com/roboco-io/jww2dxf/internal/dxf"
	"github.com/roboco-io/jww2dxf/internal/ir"
)

// penColorRGB marks a solid that carries its own COLORREF.
const penColorRGB = 10

// colorTable maps JWW pen colors to AutoCAD color indices.
var colorTable = map[uint16]int{
	0: 0,
	1: 4, // light blue
	2: 7, // white
	3: 3, // green
	4: 2, // yellow
	5: 6, // pink
	6: 5, // blue
	7: 7, // black/white
	8: 1, // red
	9: 8, // gray

	// SXF standard colors
	101: 7,   // black
	102: 1,   // red
	103: 3,   // green
	104: 5,   // blue
	105: 2,   // yellow
	106: 6,   // magenta
	107: 4,   // cyan
	108: 7,   // white
	109: 230, // deeppink
	110: 34,  // brown
	111: 30,  // orange
	112: 91,  // lightgreen
	113: 151, // lightblue
	114: 191, // lavender
	115: 9,   // lightgray
	116: 8,   // darkgray
}

// lineTypes lists the LTYPE table. Pen style n (1-9) maps to lineTypes[n-1];
// style 0 is solid as well.
var lineTypes = []dxf.LineType{
	{Name: "CONTINUOUS", Description: "Solid line"},
	{Name: "DASHED", Description: "Dashed __ __ __", Pattern: []float64{0.5, -0.25}},
	{Name: "DASHDOT", Description: "Dash dot __ . __ .", Pattern: []float64{0.5, -0.25, 0, -0.25}},
	{Name: "CENTER", Description: "Center ____ _ ____", Pattern: []float64{1.25, -0.25, 0.25, -0.25}},
	{Name: "DOT", Description: "Dot . . . .", Pattern: []float64{0, -0.25}},
	{Name: "DASHEDX2", Description: "Dashed (2x) ____  ____", Pattern: []float64{1, -0.5}},
	{Name: "DASHDOTX2", Description: "Dash dot (2x) ____  .  ____", Pattern: []float64{1, -0.5, 0, -0.5}},
	{Name: "CENTERX2", Description: "Center (2x) ________  __  ________", Pattern: []float64{2.5, -0.5, 0.5, -0.5}},
	{Name: "DOTX2", Description: "Dot (2x) .  .  .", Pattern: []float64{0, -0.5}},
}

const defaultLayer = "0"

func (c *Converter) lineTypes(out *dxf.Document) {
	for _, lt := range lineTypes {
		out.AddLineType(lt)
	}
}

// layers writes layer "0" followed by all 256 JWW layers.
func (c *Converter) layers(out *dxf.Document) {
	out.AddLayer(dxf.Layer{Name: defaultLayer, Color: dxf.ColorWhite, LineType: "CONTINUOUS"})
	for g := 0; g < ir.LayerGroupCount; g++ {
		lg := &c.doc.LayerGroups[g]
		for l := 0; l < ir.LayerCount; l++ {
			out.AddLayer(dxf.Layer{
				Name:     c.layerName(g, l),
				Color:    (g*ir.LayerCount+l)%255 + 1,
				LineType: "CONTINUOUS",
				Frozen:   lg.Hidden(l),
				Locked:   lg.Protected(l),
			})
		}
	}
}

func (c *Converter) layerName(g, l int) string {
	if name := c.doc.LayerGroups[g].Layers[l].Name; name != "" {
		return name
	}
	return ir.LayerName(g, l)
}

// common translates the shared attributes. Points skip the line type
// lookup because their pen style selects a marker, not a dash pattern.
func (c *Converter) common(a ir.Attributes, withLineType bool) dxf.Common {
	cm := dxf.Common{
		Layer:     c.layer(a),
		Color:     c.color(a.PenColor),
		TrueColor: dxf.NoTrueColor,
		LineType:  "CONTINUOUS",
	}
	if withLineType {
		cm.LineType = c.lineType(a.PenStyle)
	}
	return cm
}

func (c *Converter) layer(a ir.Attributes) string {
	if a.LayerGroup >= ir.LayerGroupCount || a.Layer >= ir.LayerCount {
		c.lossy("layer %d of group %d out of range, using layer %q", a.Layer, a.LayerGroup, defaultLayer)
		return defaultLayer
	}
	return c.layerName(int(a.LayerGroup), int(a.Layer))
}

func (c *Converter) color(pen uint16) int {
	if aci, ok := colorTable[pen]; ok {
		return aci
	}
	c.lossy("pen color %d has no ACI mapping, using %d", pen, dxf.ColorWhite)
	return dxf.ColorWhite
}

func (c *Converter) lineType(style uint8) string {
	switch {
	case style == 0:
		return lineTypes[0].Name
	case int(style) <= len(lineTypes):
		return lineTypes[style-1].Name
	}
	c.lossy("pen style %d has no line type, using CONTINUOUS", style)
	return lineTypes[0].Name
}

// trueColor converts a Windows COLORREF (0x00BBGGRR) to 0xRRGGBB.
func trueColor(colorref uint32) int {
	r := colorref & 0xFF
	g := (colorref >> 8) & 0xFF
	b := (colorref >> 16) & 0xFF
	return int(r<<16 | g<<8 | b)
}

// aciPalette holds the RGB values of the standard colors 1-9.
var aciPalette = [...][3]float64{
	{255, 0, 0},
	{255, 255, 0},
	{0, 255, 0},
	{0, 255, 255},
	{0, 0, 255},
	{255, 0, 255},
	{255, 255, 255},
	{128, 128, 128},
	{192, 192, 192},
}

// nearestACI returns the standard color closest to rgb (0xRRGGBB).
func nearestACI(rgb int) int {
	r, g, b := float64(rgb>>16&0xFF), float64(rgb>>8&0xFF), float64(rgb&0xFF)
	best, bestDist := dxf.ColorWhite, math.Inf(1)
	for i, p := range aciPalette {
		dr, dg, db := r-p[0], g-p[1], b-p[2]
		if d := dr*dr + dg*dg + db*db; d < bestDist {
			best, bestDist = i+1, d
		}
	}
	return best
}
