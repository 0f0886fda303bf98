package multisig

import (
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// FormatBalance renders coin in display units, shifting the integer amount by
// exponent decimals. The denom is not included.
func FormatBalance(coin sdk.Coin, exponent int) string {
	if coin.Amount.IsNil() {
		return formatAmount("0", exponent)
	}
	return formatAmount(coin.Amount.String(), exponent)
}

func formatAmount(numStr string, exponent int) string {
	if exponent <= 0 {
		return numStr
	}
	if len(numStr) <= exponent {
		numStr = strings.Repeat("0", exponent-len(numStr)+1) + numStr
	}
	whole, frac := numStr[:len(numStr)-exponent], strings.TrimRight(numStr[len(numStr)-exponent:], "0")
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}
