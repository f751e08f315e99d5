package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

var siWords = strings.NewReplacer("M", " mil", "G", " bil", "T", " tril")

// FormatTick renders an axis value with an SI prefix and trailing zeros
// trimmed, spelling out the large prefixes: 1.5e6 -> "1.5 mil",
// 2e9 -> "2 bil", 250000 -> "250k".
func FormatTick(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	if v == 0 {
		return "0"
	}
	// Round to six significant digits first so values like 999999.9 pick
	// the prefix of what will be printed.
	v, _ = strconv.ParseFloat(strconv.FormatFloat(v, 'g', 6, 64), 64)
	mant, prefix := humanize.ComputeSI(v)
	s := strconv.FormatFloat(mant, 'g', 6, 64)
	return siWords.Replace(s + prefix)
}
