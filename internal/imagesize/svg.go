package imagesize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const svgSniffLength = 1000

var (
	svgRoot    = regexp.MustCompile(`<svg\s(?:[^>"']|"[^"]*"|'[^']*')*>`)
	svgWidth   = regexp.MustCompile(`\swidth=(?:"([^%"]+?)"|'([^%']+?)')`)
	svgHeight  = regexp.MustCompile(`\sheight=(?:"([^%"]+?)"|'([^%']+?)')`)
	svgViewBox = regexp.MustCompile(`(?i)\sviewBox=(?:"(.+?)"|'(.+?)')`)
	svgLength  = regexp.MustCompile(`^([0-9.]+(?:e\d+)?)(in|cm|em|ex|m|mm|pc|pt|px)?$`)
)

// svgUnits converts absolute and font-relative units to CSS pixels at 96 dpi
// with a 16px em.
var svgUnits = map[string]float64{
	"in": 96,
	"cm": 96 / 2.54,
	"em": 16,
	"ex": 8,
	"m":  96 / 2.54 * 100,
	"mm": 96 / 2.54 / 10,
	"pc": 96.0 / 6,
	"pt": 96.0 / 72,
	"px": 1,
}

var svgHandler = Handler{
	Type: "svg",
	Validate: func(b []byte) Verdict {
		return matchIf(svgRoot.MatchString(newView(b).str(0, svgSniffLength)))
	},
	Calculate: calculateSVG,
}

func submatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	for _, g := range m[min(1, len(m)):] {
		if g != "" {
			return g
		}
	}
	return ""
}

// svgParseLength returns the length in pixels, or 0 if it cannot be parsed.
func svgParseLength(s string) int {
	m := svgLength.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	scale := 1.0
	if m[2] != "" {
		scale = svgUnits[m[2]]
	}
	return int(math.Round(n * scale))
}

func calculateSVG(b []byte) (*Dimensions, error) {
	root := svgRoot.FindString(string(b))
	if root == "" {
		return nil, corruptf("svg", "no <svg> root element")
	}

	width := svgParseLength(submatch(svgWidth, root))
	height := svgParseLength(submatch(svgHeight, root))
	if width > 0 && height > 0 {
		return &Dimensions{Width: width, Height: height}, nil
	}

	box := strings.Fields(strings.ReplaceAll(submatch(svgViewBox, root), ",", " "))
	if len(box) != 4 {
		return nil, corruptf("svg", "root element has neither width/height nor a viewBox")
	}
	vbWidth, vbHeight := svgParseLength(box[2]), svgParseLength(box[3])
	if vbWidth <= 0 || vbHeight <= 0 {
		return nil, corruptf("svg", "viewBox %q has no area", strings.Join(box, " "))
	}

	ratio := float64(vbWidth) / float64(vbHeight)
	switch {
	case width > 0:
		return &Dimensions{Width: width, Height: int(math.Floor(float64(width) / ratio))}, nil
	case height > 0:
		return &Dimensions{Width: int(math.Floor(float64(height) * ratio)), Height: height}, nil
	}
	return &Dimensions{Width: vbWidth, Height: vbHeight}, nil
}
