package types

import "testing"

func TestParseScale(t *testing.T) {
	for in, want := range map[string]Scale{
		"C":          ScaleCelsius,
		"celsius":    ScaleCelsius,
		"F":          ScaleFahrenheit,
		"Fahrenheit": ScaleFahrenheit,
	} {
		got, err := ParseScale(in)
		if err != nil || got != want {
			t.Fatalf("ParseScale(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseScale("kelvin"); err != ErrUnknownScale {
		t.Fatalf("ParseScale(kelvin) err = %v", err)
	}
}

func TestUnit(t *testing.T) {
	if ScaleCelsius.Unit() != 'C' || ScaleFahrenheit.Unit() != 'F' {
		t.Fatal("unexpected unit letters")
	}
}
