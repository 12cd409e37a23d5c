package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: board name (selected with --board)
// Val: raw YAML for that board; a user file is overlaid on top.
// -----------------------------------------------------------------------------

const cfgHost = `
sensor:
  bus: 0
  address: 0x4B
  register: 0x00
  period_ms: 1000
  scale: C
storage:
  volume: /mnt/mydrive
  file: temp_log.txt
  dir: ./sdcard
  poll_ms: 100
  start_time: now
loop:
  idle_us: 1000
console:
  color: true
`

const cfgPico = `
sensor:
  bus: 0
  address: 0x4B
  register: 0x00
  period_ms: 1000
  scale: C
storage:
  volume: /mnt/mydrive
  file: temp_log.txt
  start_time: "00:00:00"
loop:
  idle_us: 0
console:
  color: false
`

var embeddedConfigs = map[string][]byte{
	"host": []byte(cfgHost),
	"pico": []byte(cfgPico),
}
