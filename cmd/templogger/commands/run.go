//go:build !rp2040 && !rp2350

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"tinygo.org/x/drivers"

	"templogger-go/drivers/lm75"
	"templogger-go/services/config"
	"templogger-go/services/hal"
	"templogger-go/services/hal/sim"
	"templogger-go/services/logger"
	"templogger-go/x/console"
	"templogger-go/x/mathx"
)

var errNoVolumeDir = errors.New("no backing directory for the volume: set storage.dir or --volume-dir")

var (
	volumeDir string
	simTemp   float64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Log readings until the switch is pressed",
	Long: `run starts the acquisition and storage state machines on one poll loop.

The volume is considered mounted while its backing directory exists:
create the directory to attach it, remove it to pull the media. The first
interrupt presses the stop switch so the log is closed cleanly; a second
one aborts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if volumeDir != "" {
			cfg.Storage.Dir = volumeDir
		}
		return runLogger(cmd.Context(), cfg, newLogger())
	},
}

func init() {
	runCmd.Flags().StringVar(&volumeDir, "volume-dir", "", "host directory backing the volume (overrides storage.dir)")
	runCmd.Flags().Float64Var(&simTemp, "sim-temp", 25, "simulated sensor temperature in °C")
	rootCmd.AddCommand(runCmd)
}

func runLogger(parent context.Context, cfg config.Config, log *slog.Logger) error {
	if parent == nil {
		parent = context.Background()
	}
	if cfg.Storage.Dir == "" {
		return errNoVolumeDir
	}
	ac, err := cfg.Acquire()
	if err != nil {
		return err
	}
	sc, err := cfg.StorageMachine(time.Now())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sensor := sim.NewSensor(ac.Address)
	sensor.SetHalfDegrees(halfDegrees(simTemp))

	timers := hal.NewTimerWheel(0)
	bus := hal.NewI2CQueue(map[int]drivers.I2C{cfg.Sensor.Bus: sensor}, 0)
	fs := hal.NewDirFS(sc.Volume, cfg.Storage.Dir, time.Duration(cfg.Storage.PollMs)*time.Millisecond)
	sw := &sim.Switch{}

	out := console.New(os.Stdout)
	if cfg.Console.Color {
		out = console.NewColor(os.Stdout)
	}

	app := logger.New(ac, sc, logger.Platform{
		Timer:   timers,
		I2C:     bus,
		FS:      fs,
		RTC:     hal.NewSoftRTC(),
		Switch:  sw,
		LED:     &logLED{log: log},
		Console: out,
	}, cfg.IdleInterval())

	log.Info("logger starting",
		"volume", sc.Volume,
		"dir", cfg.Storage.Dir,
		"file", sc.FileName,
		"scale", ac.Scale.String(),
		"start", fmt.Sprintf("%02d:%02d:%02d", sc.StartTime.Hour, sc.StartTime.Min, sc.StartTime.Sec),
	)

	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case <-ctx.Done():
			return
		case <-sigs:
			log.Info("stop requested, closing log")
			sw.Press()
		}
		select {
		case <-ctx.Done():
		case <-sigs:
			log.Warn("aborting")
			cancel()
		}
	}()

	go timers.Run(ctx)
	bus.Start(ctx)
	go fs.Run(ctx)

	if err := app.Loop.Run(ctx); err != nil {
		log.Warn("logging aborted", "state", app.Storage.State().String(), "err", err)
	}
	if err := app.Storage.Err(); err != nil {
		log.Error("logging ended with fault", "session", app.Storage.Session(), "err", err)
		return err
	}
	if err := app.Acquire.Err(); err != nil {
		log.Warn("sensor task stopped", "err", err)
	}
	log.Info("logging finished", "session", app.Storage.Session())
	return nil
}

// halfDegrees rounds a Celsius value to the sensor's 0.5 °C resolution,
// limited to what the part can report.
func halfDegrees(c float64) int16 {
	c = mathx.Clamp(c, lm75.MinCelsius, lm75.MaxCelsius)
	return int16(math.Round(c * 2))
}

// logLED stands in for the board LED.
type logLED struct {
	log *slog.Logger
	on  bool
}

func (l *logLED) Toggle() {
	l.on = !l.on
	l.log.Debug("led", "on", l.on)
}

func (l *logLED) Clear() {
	l.on = false
	l.log.Debug("led", "on", false)
}
