package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func utcFormatter(seconds bool) *Formatter {
	return &Formatter{
		DateLayout: DefaultDateLayout,
		Seconds:    seconds,
		Location:   time.UTC,
		printer:    message.NewPrinter(language.English),
	}
}

func TestDurationWords(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0 seconds"},
		{1, "1 second"},
		{59.5, "59.5 seconds"},
		{60, "1 minute"},
		{61, "1 minute and 1 second"},
		{3600, "1 hour"},
		{3661, "1 hour, 1 minute and 1 second"},
		{86400, "1 day"},
		{90061, "1 day, 1 hour, 1 minute and 1 second"},
		{500000, "5 days, 18 hours, 53 minutes and 20 seconds"},
		{31536000, "1 year"},
		{63072000 + 2*86400, "2 years and 2 days"},
		{200.25, "3 minutes and 20.25 seconds"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, durationWords(tt.seconds))
		})
	}
}

func TestFormatter_SecondsMode(t *testing.T) {
	f := utcFormatter(true)
	assert.Equal(t, "1,234.50 seconds", f.Duration(1234.5))
}

func TestFormatter_Date(t *testing.T) {
	f := utcFormatter(false)
	assert.Equal(t, "01:46:40 09-Sep-2001", f.Date(1000000000))
}

func TestFormatter_CustomLayout(t *testing.T) {
	f := utcFormatter(false)
	f.DateLayout = "2006-01-02"
	assert.Equal(t, "2001-09-09", f.Date(1000000000))
}
