package dates

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, y int, m time.Month, d int) Date {
	t.Helper()
	date, ok := New(y, m, d)
	if !ok {
		t.Fatalf("invalid test date %d-%d-%d", y, m, d)
	}
	return date
}

func TestParseText(t *testing.T) {
	cases := []struct {
		in   string
		want Date
	}{
		{"05/06/2024", Date{2024, time.June, 5}},
		{"5-6-2024", Date{2024, time.June, 5}},
		{"05.06.2024", Date{2024, time.June, 5}},
		{" 31/12/2023 ", Date{2023, time.December, 31}},
		{"01/02/2024 14:30", Date{2024, time.February, 1}},
		{"2024-06-15", Date{2024, time.June, 15}},
		{"2024-06-15T10:00:00Z", Date{2024, time.June, 15}},
		{"31/02/2024", Date{}},
		{"13/13/2024", Date{}},
		{"not a date", Date{}},
		{"", Date{}},
	}
	for _, tc := range cases {
		if got := ParseText(tc.in); got != tc.want {
			t.Errorf("ParseText(%q): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestParseNative(t *testing.T) {
	ts := time.Date(2024, time.March, 3, 18, 45, 0, 0, time.UTC)
	if got := Parse(ts); got != (Date{2024, time.March, 3}) {
		t.Errorf("Expected 2024-03-03, got %v", got)
	}
	if got := Parse(time.Time{}); !got.IsZero() {
		t.Errorf("Expected zero time to be null, got %v", got)
	}
	if got := Parse(nil); !got.IsZero() {
		t.Errorf("Expected nil to be null, got %v", got)
	}
	if got := Parse(true); !got.IsZero() {
		t.Errorf("Expected bool to be null, got %v", got)
	}
}

func TestParseSerial(t *testing.T) {
	cases := []struct {
		in   any
		want Date
	}{
		{45667, Date{2025, time.January, 10}},
		{45667.75, Date{2025, time.January, 10}},
		{float64(45658), Date{2025, time.January, 1}},
		{1, Date{1899, time.December, 31}},
		{0, Date{}},
		{0.0, Date{}},
		{0.5, Date{1899, time.December, 30}},
		{2958465, Date{9999, time.December, 31}},
		{2958466, Date{}},
		{-2958466, Date{}},
	}
	for _, tc := range cases {
		if got := Parse(tc.in); got != tc.want {
			t.Errorf("Parse(%v): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := Format(Date{}); got != "-" {
		t.Errorf("Expected '-', got %q", got)
	}
	if got := Format(mustDate(t, 2024, time.June, 5)); got != "05/06/2024" {
		t.Errorf("Expected '05/06/2024', got %q", got)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	d := mustDate(t, 1995, time.January, 1)
	end := mustDate(t, 2035, time.December, 31)
	for !d.After(end) {
		if got := Parse(Format(d)); got != d {
			t.Fatalf("round trip of %v produced %v", d, got)
		}
		d = d.AddDays(3)
	}
}

func TestDaysSince(t *testing.T) {
	today := mustDate(t, 2024, time.June, 10)
	if got := today.DaysSince(mustDate(t, 2024, time.June, 5)); got != 5 {
		t.Errorf("Expected 5, got %d", got)
	}
	if got := today.DaysSince(mustDate(t, 2024, time.June, 15)); got != -5 {
		t.Errorf("Expected -5, got %d", got)
	}
	// Spans a DST change in most northern-hemisphere zones.
	if got := mustDate(t, 2024, time.April, 1).DaysSince(mustDate(t, 2024, time.March, 1)); got != 31 {
		t.Errorf("Expected 31, got %d", got)
	}
}

func TestToday(t *testing.T) {
	loc := time.FixedZone("UTC+14", 14*60*60)
	now := time.Date(2024, time.June, 10, 23, 59, 0, 0, loc)
	if got := Today(now); got != (Date{2024, time.June, 10}) {
		t.Errorf("Expected local calendar day 2024-06-10, got %v", got)
	}
}

func TestFormatRoundTripAtBounds(t *testing.T) {
	for _, serial := range []float64{1, 2958465, 2958466, 3_000_000} {
		d := FromSerial(serial)
		if got := Parse(Format(d)); got != d {
			t.Errorf("serial %v: %v formatted as %q parsed back as %v", serial, d, Format(d), got)
		}
	}
}

func TestNewRejectsOutOfRangeYears(t *testing.T) {
	if _, ok := New(10000, time.January, 1); ok {
		t.Error("Expected year 10000 to be rejected")
	}
	if _, ok := New(0, time.January, 1); ok {
		t.Error("Expected year 0 to be rejected")
	}
	if got := ParseText("9999-12-31"); got != (Date{9999, time.December, 31}) {
		t.Errorf("Expected 9999-12-31, got %v", got)
	}
}
