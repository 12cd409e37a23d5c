// Package lm75 provides a driver for LM75-compatible digital temperature
// sensors (LM75, TCN75A, MCP9800 in 9-bit mode).
//
// The temperature register is a big-endian two's-complement word whose top
// nine bits hold the value in half-degree steps:
//
//	b0       b1
//	SIII IIII  F000 0000   S=sign, I=integer, F=0.5 °C
//
// Decoding is pure integer arithmetic so results match the sensor's fixed-point
// format exactly. The split-phase, callback-driven read used by the logger
// lives in services/acquire; Device here is a blocking convenience for
// diagnostics.
//
// NOTE: I2C.Tx MUST perform a write followed by a repeated-start read when both
// w and r are provided, without releasing the bus.
package lm75

import "tinygo.org/x/drivers"

// Address is the default 7-bit address (A2..A0 strapped 011).
const Address = 0x4B

// Registers.
const (
	RegTemperature = 0x00
	RegConfig      = 0x01
)

// Range of the sensor in whole degrees Celsius.
const (
	MinCelsius = -55
	MaxCelsius = 125
)

// DecodeHalfDegrees converts the two-byte register image into half-degree
// units: the value is sign-extended and shifted right by seven bits.
func DecodeHalfDegrees(b0, b1 byte) int16 {
	raw := int16(uint16(b0)<<8 | uint16(b1))
	return raw >> 7
}

// HalfToWhole halves a half-degree value, truncating toward zero.
func HalfToWhole(h int16) int32 { return int32(h) / 2 }

// ToFahrenheit converts whole degrees Celsius, truncating toward zero.
// trunc((9c+160)/5) is exactly trunc(c*9/5 + 32) without floating point.
func ToFahrenheit(c int32) int32 { return (c*9 + 160) / 5 }

// Config controls non-hardware behaviour. All fields are optional.
type Config struct {
	// Address defaults to 0x4B if zero.
	Address uint16
}

// Device wraps an I2C connection to an LM75-class device.
type Device struct {
	bus     drivers.I2C
	Address uint16

	reg [1]byte
	buf [2]byte // reuse buffer to avoid allocations
}

// New creates a new device handle. The I2C bus must already be configured.
// This function only creates the Device object; it does not touch the device.
func New(bus drivers.I2C) Device {
	return Device{bus: bus, Address: Address}
}

// Configure applies optional config.
func (d *Device) Configure(cfgs ...Config) {
	if len(cfgs) > 0 && cfgs[0].Address != 0 {
		d.Address = cfgs[0].Address
	}
}

// ReadHalfDegrees performs a blocking pointer-write + two-byte read.
func (d *Device) ReadHalfDegrees() (int16, error) {
	d.reg[0] = RegTemperature
	if err := d.bus.Tx(d.Address, d.reg[:], d.buf[:]); err != nil {
		return 0, err
	}
	return DecodeHalfDegrees(d.buf[0], d.buf[1]), nil
}

// ReadCelsius returns whole degrees Celsius.
func (d *Device) ReadCelsius() (int32, error) {
	h, err := d.ReadHalfDegrees()
	if err != nil {
		return 0, err
	}
	return HalfToWhole(h), nil
}

// Encode is the inverse of DecodeHalfDegrees: it builds the register image for
// a half-degree value. Used by bus simulators.
func Encode(half int16) (b0, b1 byte) {
	raw := uint16(half) << 7
	return byte(raw >> 8), byte(raw)
}
