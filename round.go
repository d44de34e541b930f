package syntacalc

import (
	"math/big"
	"strings"
)

// Round returns x rounded half to even to the given number of decimal places,
// at x's precision. Infinities are returned unchanged.
func Round(x *big.Float, places int) *big.Float {
	z := new(big.Float).SetPrec(x.Prec())
	if z.Prec() == 0 {
		z.SetPrec(DefaultPrec)
	}
	return round(z, x, places)
}

// round sets z to x rounded to places decimal places at z's precision. z may
// alias x.
func round(z, x *big.Float, places int) *big.Float {
	if x.IsInf() {
		return z.Set(x)
	}
	if places < 0 {
		places = 0
	}
	// Text rounds the exact binary value half to even, so parsing the decimal
	// back gives the nearest value to the rounded decimal.
	if _, _, err := z.Parse(x.Text('f', places), 10); err != nil {
		panic("syntacalc: cannot reparse rounded value: " + err.Error())
	}
	if z.Sign() == 0 {
		// Drop the sign of negative zero.
		z.Abs(z)
	}
	return z
}

// Format formats x as a canonical decimal string rounded to the given number
// of decimal places: fixed notation, no trailing zeros after the decimal point,
// no trailing point, and no sign on zero. Parsing and evaluating the result
// with the same number of places gives back the same value.
func Format(x *big.Float, places int) string {
	if x.IsInf() {
		return x.String()
	}
	if places < 0 {
		places = 0
	}
	s := x.Text('f', places)
	if strings.IndexByte(s, '.') >= 0 {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
