//go:build rp2040 || rp2350

package main

import (
	"context"
	"time"

	"templogger-go/services/config"
	"templogger-go/services/hal"
	"templogger-go/services/logger"
	"templogger-go/x/console"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	out := console.Default()
	println("boot")

	cfg, err := config.Load("pico", "")
	if err != nil {
		halt(out, "config", err)
	}
	ac, err := cfg.Acquire()
	if err != nil {
		halt(out, "sensor config", err)
	}
	sc, err := cfg.StorageMachine(time.Time{})
	if err != nil {
		halt(out, "storage config", err)
	}

	ctx := context.Background()
	board := hal.DefaultBoard()
	timers := hal.NewTimerWheel(0)
	i2c := hal.NewI2CQueue(board.I2C, 0)
	fs := hal.NewSerialFS(sc.Volume, board.Log, board.CardDetect)

	app := logger.New(ac, sc, logger.Platform{
		Timer:   timers,
		I2C:     i2c,
		FS:      fs,
		RTC:     hal.NewSoftRTC(),
		Switch:  board.Switch,
		LED:     board.LED,
		Console: out,
	}, cfg.IdleInterval())

	if err := fs.Start(); err != nil {
		out.Printf("card detect: %v\r\n", err)
	}
	go timers.Run(ctx)
	i2c.Start(ctx)

	_ = app.Loop.Run(ctx)

	// Storage is finished; keep sampling so the console still shows readings.
	for {
		app.Acquire.Tasks()
		time.Sleep(cfg.IdleInterval() + time.Millisecond)
	}
}

func halt(out *console.Console, what string, err error) {
	out.Printf("%s: %v\r\n", what, err)
	for {
		time.Sleep(time.Hour)
	}
}
