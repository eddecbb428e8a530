package cmd

import (
	"strings"

	"github.com/holiman/uint256"
)

// parseAmount reads a base-unit amount, allowing underscores as digit
// separators the way the flags document them
func parseAmount(s string) (*uint256.Int, error) {
	return uint256.FromDecimal(strings.ReplaceAll(s, "_", ""))
}
