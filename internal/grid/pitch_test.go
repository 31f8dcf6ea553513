package grid

import (
	"errors"
	"math"
	"testing"
)

func TestRowPitchRoundTrip(t *testing.T) {
	for row := 0; row < RowCount; row++ {
		name := PitchOf(row)
		got, err := RowOf(name)
		if err != nil {
			t.Fatalf("RowOf(%q): %v", name, err)
		}
		if got != row {
			t.Errorf("RowOf(PitchOf(%d)) = %d, want %d", row, got, row)
		}
	}
}

func TestRowEndpoints(t *testing.T) {
	if got := PitchOf(0); got != "C8" {
		t.Errorf("PitchOf(0) = %q, want C8", got)
	}
	if got := PitchOf(RowCount - 1); got != "C1" {
		t.Errorf("PitchOf(%d) = %q, want C1", RowCount-1, got)
	}
	if got := MidiOf(0); got != 108 {
		t.Errorf("MidiOf(0) = %d, want 108", got)
	}
	if got := MidiOf(RowCount - 1); got != 24 {
		t.Errorf("MidiOf(%d) = %d, want 24", RowCount-1, got)
	}
}

func TestFrequencyAnchors(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		{"A4", 440.0},
		{"A5", 880.0},
		{"A3", 220.0},
	}
	for _, tt := range tests {
		if got := Frequency(tt.name); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Frequency(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFlatNormalization(t *testing.T) {
	pairs := [][2]string{
		{"Db4", "C#4"},
		{"Eb4", "D#4"},
		{"Gb4", "F#4"},
		{"Ab4", "G#4"},
		{"Bb4", "A#4"},
	}
	for _, p := range pairs {
		flat, err := RowOf(p[0])
		if err != nil {
			t.Fatalf("RowOf(%q): %v", p[0], err)
		}
		sharp, err := RowOf(p[1])
		if err != nil {
			t.Fatalf("RowOf(%q): %v", p[1], err)
		}
		if flat != sharp {
			t.Errorf("RowOf(%q) = %d, RowOf(%q) = %d, want equal", p[0], flat, p[1], sharp)
		}
	}
}

func TestRowOfCaseInsensitive(t *testing.T) {
	upper, err := RowOf("C4")
	if err != nil {
		t.Fatal(err)
	}
	lower, err := RowOf("c4")
	if err != nil {
		t.Fatal(err)
	}
	if upper != lower {
		t.Errorf("RowOf(\"C4\") = %d, RowOf(\"c4\") = %d", upper, lower)
	}
}

func TestInvalidPitch(t *testing.T) {
	for _, name := range []string{"", "C", "Z9", "H4", "C#", "4C", "C4x", "C0"} {
		if _, err := RowOf(name); !errors.Is(err, ErrInvalidPitch) {
			t.Errorf("RowOf(%q) err = %v, want ErrInvalidPitch", name, err)
		}
	}
	// Frequency degrades to the silence sentinel instead of erroring.
	if got := Frequency("Z9"); got != 0 {
		t.Errorf("Frequency(\"Z9\") = %v, want 0", got)
	}
}
