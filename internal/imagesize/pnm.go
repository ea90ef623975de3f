package imagesize

import (
	"bytes"
	"strconv"
	"strings"
)

// Netpbm magic numbers. Only P7 (PAM) uses keyed header lines.
var pnmTypes = map[string]string{
	"P1": "pbm/ascii",
	"P2": "pgm/ascii",
	"P3": "ppm/ascii",
	"P4": "pbm",
	"P5": "pgm",
	"P6": "ppm",
	"P7": "pam",
	"PF": "pfm",
}

var pnmHandler = Handler{
	Type: "pnm",
	Validate: func(b []byte) Verdict {
		_, ok := pnmTypes[newView(b).str(0, 2)]
		return matchIf(ok)
	},
	Calculate: func(b []byte) (*Dimensions, error) {
		lines, complete := pnmHeaderLines(b)
		if pnmTypes[string(b[:2])] == "pam" {
			return pamSize(lines, complete)
		}
		return pnmSize(lines)
	},
}

// pnmHeaderLines splits everything after the magic number into non-empty
// lines. A final line without a terminator may still be growing and is
// dropped; complete reports whether the header end marker has been seen.
func pnmHeaderLines(b []byte) (lines []string, complete bool) {
	if len(b) <= 3 {
		return nil, false
	}
	body := b[3:]
	if i := bytes.LastIndexAny(body, "\r\n"); i >= 0 {
		body = body[:i]
	} else {
		body = nil
	}
	for _, l := range strings.FieldsFunc(string(body), func(r rune) bool { return r == '\r' || r == '\n' }) {
		lines = append(lines, l)
		if l == "ENDHDR" {
			complete = true
		}
	}
	return lines, complete
}

// pnmSize reads "width height" from the first line that is not a comment.
func pnmSize(lines []string) (*Dimensions, error) {
	for _, l := range lines {
		if strings.HasPrefix(l, "#") {
			continue
		}
		f := strings.Fields(l)
		if len(f) != 2 {
			return nil, corruptf("pnm", "size line %q", l)
		}
		w, errW := strconv.Atoi(f[0])
		h, errH := strconv.Atoi(f[1])
		if errW != nil || errH != nil {
			return nil, corruptf("pnm", "size line %q", l)
		}
		return &Dimensions{Width: w, Height: h}, nil
	}
	return nil, truncatedf("pnm", "no size line yet")
}

// pamSize reads the WIDTH and HEIGHT keyed lines of a PAM header.
func pamSize(lines []string, complete bool) (*Dimensions, error) {
	var width, height int
	for _, l := range lines {
		if len(l) > 16 || l[0] > 128 {
			continue
		}
		key, value, ok := strings.Cut(l, " ")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			continue
		}
		switch strings.ToLower(key) {
		case "width":
			width = n
		case "height":
			height = n
		}
		if width > 0 && height > 0 {
			return &Dimensions{Width: width, Height: height}, nil
		}
	}
	if complete {
		return nil, corruptf("pnm", "PAM header has no WIDTH and HEIGHT")
	}
	return nil, truncatedf("pnm", "PAM header incomplete")
}
