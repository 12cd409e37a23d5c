// services/hal/board_rp2xxx.go
//go:build rp2040 || rp2350

package hal

import (
	"machine"

	"github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers"
)

// Board wires the Raspberry Pi Pico / Pico 2 peripherals used by the logger.
type Board struct {
	I2C    map[int]drivers.I2C
	Switch Switch
	LED    Indicator

	// Serial SD logger on UART1 and its card-detect line.
	Log        *uartx.UART
	CardDetect machine.Pin
}

const (
	// Stop switch on GP15 to ground (active low, internal pull-up).
	switchPin     = machine.GP15
	// Card detect on GP14, pulled low while a card is inserted.
	cardDetectPin = machine.GP14

	logBaud = 115200
)

// DefaultBoard configures i2c0 at 400 kHz on the default pins, the stop
// switch and the on-board LED.
func DefaultBoard() Board {
	b0 := machine.I2C0
	_ = b0.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.I2C0_SDA_PIN,
		SCL:       machine.I2C0_SCL_PIN,
	})

	sw := switchPin
	sw.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led.Low()

	u := uartx.UART1
	_ = u.Configure(uartx.UARTConfig{
		BaudRate: logBaud,
		TX:       machine.UART1_TX_PIN,
		RX:       machine.UART1_RX_PIN,
	})

	return Board{
		I2C:        map[int]drivers.I2C{0: b0},
		Switch:     pinSwitch{p: sw},
		LED:        pinLED{p: led},
		Log:        u,
		CardDetect: cardDetectPin,
	}
}

type pinSwitch struct{ p machine.Pin }

func (s pinSwitch) Pressed() bool { return !s.p.Get() }

type pinLED struct{ p machine.Pin }

func (l pinLED) Toggle() {
	if l.p.Get() {
		l.p.Low()
	} else {
		l.p.High()
	}
}

func (l pinLED) Clear() { l.p.Low() }
