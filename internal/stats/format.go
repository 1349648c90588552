package stats

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

var units = []struct {
	size   float64
	suffix string
}{
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

// FormatCompact renders n the way the hero shows counters: 125000 becomes
// "125K+", 12888325 becomes "12.8M+". Values below 1000 are printed as is.
// The fraction is truncated so the figure never overstates the count.
func FormatCompact(n int64) string {
	if n < 1000 {
		return strconv.FormatInt(n, 10)
	}
	v := float64(n)
	for _, u := range units {
		if v >= u.size {
			scaled := math.Floor(v/u.size*10) / 10
			return printer.Sprint(number.Decimal(scaled, number.MaxFractionDigits(1))) + u.suffix + "+"
		}
	}
	return strconv.FormatInt(n, 10)
}
