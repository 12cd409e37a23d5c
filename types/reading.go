package types

import (
	"errors"
	"strings"
)

// Scale selects the unit a Reading is expressed in.
type Scale uint8

const (
	ScaleCelsius Scale = iota
	ScaleFahrenheit
)

var ErrUnknownScale = errors.New("unknown_scale")

// ParseScale accepts "C", "celsius", "F" or "fahrenheit" (case-insensitive).
func ParseScale(s string) (Scale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "celsius", "":
		return ScaleCelsius, nil
	case "f", "fahrenheit":
		return ScaleFahrenheit, nil
	}
	return 0, ErrUnknownScale
}

// Unit returns the single letter written to the log ('C' or 'F').
func (s Scale) Unit() byte {
	if s == ScaleFahrenheit {
		return 'F'
	}
	return 'C'
}

func (s Scale) String() string { return string(s.Unit()) }

// Reading is one decoded temperature sample in whole degrees.
// It is handed between state machines by value.
type Reading struct {
	Value int16
	Scale Scale
}

// Clock is a wall-clock time of day as kept by the RTC.
type Clock struct {
	Hour, Min, Sec int
}
