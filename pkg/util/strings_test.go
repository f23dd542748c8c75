package util

import (
	"testing"
	"time"
)

func TestFormatThousands(t *testing.T) {
	cases := map[int64]string{
		0:          "0",
		5:          "5",
		100:        "100",
		1234:       "1,234",
		1234567:    "1,234,567",
		-9876543:   "-9,876,543",
		1000000000: "1,000,000,000",
	}
	for in, want := range cases {
		if got := FormatThousands(in); got != want {
			t.Fatalf("FormatThousands(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("", 7); got != 7 {
		t.Fatalf("expected default 7, got %d", got)
	}
	if got := ParseIntDefault("12", 7); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
	if got := ParseIntDefault("x", 7); got != 7 {
		t.Fatalf("expected default on invalid, got %d", got)
	}
}

func TestRangeStart(t *testing.T) {
	last := time.Date(2021, 6, 30, 0, 0, 0, 0, time.UTC)

	start, ok := RangeStart(last, "3m")
	if !ok {
		t.Fatalf("expected ok for 3m")
	}
	if want := time.Date(2021, 3, 30, 0, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Fatalf("unexpected start %v", start)
	}

	if _, ok := RangeStart(last, "all"); ok {
		t.Fatalf("'all' must not produce a bounded start")
	}
}
