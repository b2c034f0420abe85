// =============================================================================
// Kunstlotteri Report Tool - Money Representation
// =============================================================================
//
// Amounts are carried as integer øre (minor currency units) end to end.
// Division and modulo against the unit price happen on integers, so the
// exact-multiple test needs no floating-point epsilon.
//
// =============================================================================

package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseOre parses a gross amount cell into integer øre.
//
// The Vipps export is not consistent about number formatting: amounts show
// up as "100", "100.00", "100,50" and occasionally with space or NBSP
// thousands separators ("1 234,50"). Both comma and dot are accepted as the
// decimal separator. Unparseable values coerce to 0, matching how the
// report treats missing amounts.
func ParseOre(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	// Strip space-like thousands separators.
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")

	// Norwegian decimal comma. When both separators appear, the dot is a
	// thousands separator ("1.234,50").
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(v * 100))
}

// FormatKroner renders øre as whole kroner with a decimal comma, omitting
// the fraction when it is zero: 4500 -> "45", 4550 -> "45,50".
func FormatKroner(ore int64) string {
	neg := ore < 0
	if neg {
		ore = -ore
	}
	out := strconv.FormatInt(ore/100, 10)
	if rem := ore % 100; rem != 0 {
		out = fmt.Sprintf("%s,%02d", out, rem)
	}
	if neg {
		out = "-" + out
	}
	return out
}

// Kroner returns the amount as a float64 number of kroner, for chart-style
// consumers that want a plain number.
func Kroner(ore int64) float64 {
	return float64(ore) / 100
}
