package heuristics

// trailingZeros counts trailing decimal zeros of a satoshi amount. Round
// numbers read as intentional payment amounts rather than change.
func trailingZeros(sats uint64) int {
	if sats == 0 {
		return 0
	}
	tz := 0
	for sats%10 == 0 {
		tz++
		sats /= 10
	}
	return tz
}

// subBTCNonZeroDigits counts non-zero digits among the 8 low-order decimal
// digits of a satoshi amount, the sub-BTC part of its decimal rendering.
func subBTCNonZeroDigits(sats uint64) int {
	n := 0
	for i := 0; i < 8; i++ {
		if sats%10 != 0 {
			n++
		}
		sats /= 10
	}
	return n
}
