package papercut

import (
	"image/color"
	"math"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#fff", White},
		{"000", Black},
		{"#ff0000", Red},
		{"00ff0080", RGBA(0, 1, 0, 128.0/255)},
		{"#F0F8", RGBA(1, 0, 1, 136.0/255)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if err != nil {
				t.Fatalf("ParseHex(%q): %v", tt.in, err)
			}
			if !colorNear(got, tt.want) {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseHexInvalid(t *testing.T) {
	for _, in := range []string{"", "#12", "zzzzzz", "#1234567"} {
		if _, err := ParseHex(in); err == nil {
			t.Errorf("ParseHex(%q) should fail", in)
		}
		if got := Hex(in); got != Black {
			t.Errorf("Hex(%q) = %v, want Black", in, got)
		}
	}
}

func TestColorArray(t *testing.T) {
	got := RGBA(0.25, 0.5, 0.75, 1).Array()
	want := [4]float32{0.25, 0.5, 0.75, 1}
	if got != want {
		t.Errorf("Array() = %v, want %v", got, want)
	}
}

func TestColorStdRoundTrip(t *testing.T) {
	c := RGBA(0.8, 0.2, 0.4, 0.6)
	got := FromColor(c.Std())
	if math.Abs(got.R-c.R) > 1.0/255 || math.Abs(got.A-c.A) > 1.0/255 {
		t.Errorf("round trip = %v, want about %v", got, c)
	}
	if n := White.Std().(color.NRGBA); n != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("White.Std() = %v", n)
	}
}

func TestColorLerp(t *testing.T) {
	got := Black.Lerp(White, 0.5)
	if !colorNear(got, RGB(0.5, 0.5, 0.5)) {
		t.Errorf("Lerp = %v, want mid gray", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ff0000", Red},
		{" 00F ", Blue},
		{"white", White},
		{"Black", Black},
		{"lime", Green},
		{"hsl(120, 1, 0.5)", Green},
		{"HSL(240, 100%, 50%)", Blue},
		{"hsl( -120 , 100% , 50% )", Blue},
		{"hsl(0, 0, 1)", White},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q): %v", tt.in, err)
			}
			if !colorNear(got, tt.want) {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{"", "notacolor", "hsl(1, 2)", "hsl(0, 1, 0.5", "hsl(0, 150%, 50%)", "hsl(a, 1, 1)"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q) should fail", in)
		}
	}
}

func TestHSL(t *testing.T) {
	tests := []struct {
		h, s, l float64
		want    Color
	}{
		{0, 1, 0.5, Red},
		{120, 1, 0.5, Green},
		{240, 1, 0.5, Blue},
		{-120, 1, 0.5, Blue},
		{0, 0, 1, White},
	}
	for _, tt := range tests {
		if got := HSL(tt.h, tt.s, tt.l); !colorNear(got, tt.want) {
			t.Errorf("HSL(%g, %g, %g) = %v, want %v", tt.h, tt.s, tt.l, got, tt.want)
		}
	}
}

func colorNear(a, b Color) bool {
	const eps = 1e-9
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps && math.Abs(a.A-b.A) < eps
}
