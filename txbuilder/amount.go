package txbuilder

import (
	"strings"

	"github.com/holiman/uint256"

	"startex/chain"
	"startex/errors"
)

// baseUnitDigits is the decimal precision of the native token: one whole
// unit is 10^baseUnitDigits base units
const baseUnitDigits = 6

// ToBaseUnits converts a whole-unit decimal string ("1.5") into base units
// (1500000). The fractional part is truncated, never rounded up, so a
// conversion can only ever under-spend. A non-zero input that truncates to
// zero base units is rejected: the caller typed an amount below the minimum
// unit and silently sending zero would not match their intent.
func ToBaseUnits(amount string) (*uint256.Int, error) {
	s := strings.TrimSpace(amount)
	if s == "" {
		return nil, errors.NewInvalidParameter("amount is empty")
	}
	if strings.HasPrefix(s, "-") {
		return nil, errors.NewInvalidParameter("amount must not be negative")
	}

	intPart := s
	fracPart := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, fracPart = s[:dot], s[dot+1:]
	}
	if intPart == "" {
		intPart = "0"
	}

	whole, err := uint256.FromDecimal(intPart)
	if err != nil {
		return nil, errors.NewInvalidParameter("amount is not a decimal number")
	}

	// truncate the fraction to the native precision
	hadExtraDigits := false
	if len(fracPart) > baseUnitDigits {
		for _, c := range fracPart[baseUnitDigits:] {
			if c != '0' {
				hadExtraDigits = true
			}
		}
		fracPart = fracPart[:baseUnitDigits]
	}
	for len(fracPart) < baseUnitDigits {
		fracPart += "0"
	}

	frac, err := uint256.FromDecimal(fracPart)
	if err != nil {
		return nil, errors.NewInvalidParameter("amount is not a decimal number")
	}

	base := new(uint256.Int)
	if _, overflow := base.MulOverflow(whole, uint256.NewInt(chain.BaseUnitScale)); overflow {
		return nil, errors.NewInvalidParameter("amount is out of range")
	}
	if _, overflow := base.AddOverflow(base, frac); overflow {
		return nil, errors.NewInvalidParameter("amount is out of range")
	}

	if base.IsZero() && (hadExtraDigits || hasNonZeroDigit(s)) {
		return nil, errors.NewInvalidParameter("amount is below the minimum unit")
	}
	return base, nil
}

func hasNonZeroDigit(s string) bool {
	for _, c := range s {
		if c >= '1' && c <= '9' {
			return true
		}
	}
	return false
}
