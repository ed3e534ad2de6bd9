package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	got := ParseTimeDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestParseDurationDefault(t *testing.T) {
	if got := ParseDurationDefault("5s", time.Second); got != 5*time.Second {
		t.Fatalf("unexpected duration %v", got)
	}
	if got := ParseDurationDefault("", 2*time.Second); got != 2*time.Second {
		t.Fatalf("expected default, got %v", got)
	}
	if got := ParseDurationDefault("-3s", 2*time.Second); got != 2*time.Second {
		t.Fatalf("negative duration should fall back, got %v", got)
	}
}

func TestDayStart(t *testing.T) {
	in := time.Date(2024, 10, 10, 13, 45, 59, 123, time.UTC)
	got := DayStart(in)
	want := time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("DayStart = %v, want %v", got, want)
	}
}
