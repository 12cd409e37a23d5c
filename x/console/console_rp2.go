//go:build rp2040 || rp2350

package console

import (
	"machine"

	"github.com/jangala-dev/tinygo-uartx/uartx"
)

// Default writes to UART0 at 115200 baud on the board-default pins.
func Default() *Console {
	u := uartx.UART0
	_ = u.Configure(uartx.UARTConfig{
		BaudRate: 115200,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	return New(u)
}
