// Package utils holds small bitcoin unit helpers shared by reports and handlers.
package utils

import "github.com/shopspring/decimal"

// FormatBTC renders a satoshi amount as a fixed 8-decimal BTC string.
func FormatBTC(sats uint64) string {
	return decimal.New(int64(sats), -8).StringFixed(8)
}
