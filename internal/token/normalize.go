// Package token converts raw on-chain integers and addresses into the values
// a human actually reads: scaled decimal amounts and token display names. The
// metadata needed for that (name, decimals) is fetched best-effort and
// memoized for the process lifetime; every failure degrades to a documented
// fallback instead of propagating.
package token

import (
	"math/big"
	"strings"

	"github.com/TokenSwapper/swap-status-svc/internal/swap"
)

// weiDecimals is fixed by the chain: wei to ETH.
const weiDecimals uint8 = 18

// NormalizeAmount scales raw by 10^decimals and strips trailing zero
// fractional digits. A nil or zero value is always "0".
func NormalizeAmount(raw *big.Int, decimals uint8) string {
	if raw == nil || raw.Sign() == 0 {
		return "0"
	}
	if decimals == 0 {
		return raw.String()
	}

	exp := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	quo, rem := new(big.Int).QuoRem(new(big.Int).Abs(raw), exp, new(big.Int))

	sign := ""
	if raw.Sign() < 0 {
		sign = "-"
	}

	frac := rem.String()
	if pad := int(decimals) - len(frac); pad > 0 {
		frac = strings.Repeat("0", pad) + frac
	}
	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		return sign + quo.String()
	}
	return sign + quo.String() + "." + frac
}

// NormalizeETH renders a wei-denominated ETH portion. ETH amounts are always
// scaled by 18 regardless of the swap's token types.
func NormalizeETH(raw *big.Int) string {
	return NormalizeAmount(raw, weiDecimals)
}

// Normalize renders a token quantity according to its type.
//
// Fungible tokens (ERC20/ERC777) are always scaled; when the token's decimals
// could not be resolved the chain-standard 18 is assumed. ERC1155 balances
// are atomic counts by default and stay unscaled unless decimals were
// explicitly resolved. Everything else (NFT counts, NONE) is the raw integer.
func Normalize(t swap.TokenType, raw *big.Int, decimals uint8, resolved bool) string {
	switch {
	case t.Fungible():
		if !resolved {
			decimals = weiDecimals
		}
		return NormalizeAmount(raw, decimals)
	case t == swap.TypeERC1155 && resolved:
		return NormalizeAmount(raw, decimals)
	default:
		if raw == nil || raw.Sign() == 0 {
			return "0"
		}
		return raw.String()
	}
}
