package money

import "testing"

func TestFormatMajor(t *testing.T) {
	tests := []struct {
		cents int
		want  string
	}{
		{cents: 0, want: "0.00"},
		{cents: 5, want: "0.05"},
		{cents: 995, want: "9.95"},
		{cents: 10000, want: "100.00"},
		{cents: -1250, want: "-12.50"},
	}

	for _, tt := range tests {
		if got := FormatMajor(tt.cents); got != tt.want {
			t.Fatalf("FormatMajor(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestMajorFloat(t *testing.T) {
	if got := MajorFloat(10995); got != 109.95 {
		t.Fatalf("MajorFloat(10995) = %v, want 109.95", got)
	}
}
