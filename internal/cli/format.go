package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultDateLayout renders epochs like "14:21:05 28-Aug-2026".
const DefaultDateLayout = "15:04:05 02-Jan-2006"

// Formatter renders durations and dates for the presentation layer.
type Formatter struct {
	DateLayout string
	Seconds    bool // raw seconds instead of words
	Location   *time.Location

	printer *message.Printer
}

// NewFormatter builds a formatter from the CLI options, rendering dates in
// local time.
func NewFormatter(opts *RootOptions) *Formatter {
	return &Formatter{
		DateLayout: opts.DateFormat,
		Seconds:    opts.Seconds,
		Location:   time.Local,
		printer:    message.NewPrinter(language.English),
	}
}

// Date renders an epoch with the configured layout.
func (f *Formatter) Date(epoch int64) string {
	return time.Unix(epoch, 0).In(f.Location).Format(f.DateLayout)
}

// Duration renders a duration in words, or as grouped raw seconds when the
// seconds mode is on.
func (f *Formatter) Duration(seconds float64) string {
	if f.Seconds {
		return f.printer.Sprintf("%.2f seconds", seconds)
	}
	return durationWords(seconds)
}

// durationWords spells a duration out, e.g.
// "14 days, 2 hours, 3 minutes and 4 seconds".
func durationWords(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}

	whole := int64(seconds)
	frac := seconds - float64(whole)

	units := []struct {
		name string
		size int64
	}{
		{"year", 31536000},
		{"day", 86400},
		{"hour", 3600},
		{"minute", 60},
	}

	var parts []string
	for _, u := range units {
		if n := whole / u.size; n > 0 {
			parts = append(parts, plural(n, u.name))
			whole %= u.size
		}
	}

	rem := float64(whole) + frac
	if rem > 0 || len(parts) == 0 {
		parts = append(parts, secondsPart(rem))
	}

	if len(parts) == 1 {
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// secondsPart trims trailing zeros so whole seconds read naturally while
// fractional ones keep their two decimals.
func secondsPart(sec float64) string {
	rounded := float64(int64(sec*100+0.5)) / 100
	s := strconv.FormatFloat(rounded, 'f', -1, 64)
	if s == "1" {
		return "1 second"
	}
	return s + " seconds"
}
