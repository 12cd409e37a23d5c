package conv

// AppendInt appends the base-10 representation of n to dst.
// No allocations beyond dst growth; no fmt/strconv dependency.
func AppendInt(dst []byte, n int64) []byte {
	var buf [20]byte
	i := len(buf)
	neg := n < 0
	var u uint64
	if neg {
		u = uint64(-n)
	} else {
		u = uint64(n)
	}
	// Write digits backwards.
	if u == 0 {
		i--
		buf[i] = '0'
	}
	for u > 0 {
		i--
		buf[i] = byte('0' + (u % 10))
		u /= 10
	}
	if neg {
		dst = append(dst, '-')
	}
	return append(dst, buf[i:]...)
}

// AppendPad2 appends n in [0,99] as exactly two digits. Out-of-range values
// are reduced modulo 100 so the field width never changes.
func AppendPad2(dst []byte, n int) []byte {
	if n < 0 {
		n = -n
	}
	n %= 100
	return append(dst, byte('0'+n/10), byte('0'+n%10))
}
