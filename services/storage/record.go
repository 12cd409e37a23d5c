package storage

import (
	"templogger-go/types"
	"templogger-go/x/conv"
)

const recordLabel = " Temperature : "

// FormatRecord renders one log line without its terminator:
//
//	[HH:MM:SS] Temperature : <value> <unit>
func FormatRecord(c types.Clock, r types.Reading) string {
	b := make([]byte, 0, 32)
	b = append(b, '[')
	b = conv.AppendPad2(b, c.Hour)
	b = append(b, ':')
	b = conv.AppendPad2(b, c.Min)
	b = append(b, ':')
	b = conv.AppendPad2(b, c.Sec)
	b = append(b, ']')
	b = append(b, recordLabel...)
	b = conv.AppendInt(b, int64(r.Value))
	b = append(b, ' ', r.Scale.Unit())
	return string(b)
}
