//go:build !rp2040 && !rp2350

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"templogger-go/drivers/lm75"
	"templogger-go/services/hal/sim"
	"templogger-go/types"
)

var probeTemp float64

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Take one blocking reading from the sensor",
	Long: `probe reads the temperature register once over a blocking bus and prints
the result in the configured scale. It exercises the sensor and decode
path without the logging state machines.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ac, err := cfg.Acquire()
		if err != nil {
			return err
		}

		sensor := sim.NewSensor(ac.Address)
		sensor.SetHalfDegrees(halfDegrees(probeTemp))

		dev := lm75.New(sensor)
		dev.Configure(lm75.Config{Address: ac.Address})
		c, err := dev.ReadCelsius()
		if err != nil {
			return fmt.Errorf("probe 0x%02X: %w", ac.Address, err)
		}
		v := c
		if ac.Scale == types.ScaleFahrenheit {
			v = lm75.ToFahrenheit(c)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d %c\n", v, ac.Scale.Unit())
		return nil
	},
}

func init() {
	probeCmd.Flags().Float64Var(&probeTemp, "sim-temp", 25, "simulated sensor temperature in °C")
	rootCmd.AddCommand(probeCmd)
}
