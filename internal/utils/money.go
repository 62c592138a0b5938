package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatKip renders an integer kip amount with thousand separators.
// Kip has no fractional sub-units.
func FormatKip(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%s LAK", sign, formatThousand(amount))
}

// ParseKipToInt parses "4,500,000 LAK" or "4.500.000" into an integer amount.
func ParseKipToInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.ToUpper(s), "LAK")
	s = strings.TrimSpace(s)
	replacer := strings.NewReplacer(".", "", ",", "", " ", "")
	s = replacer.Replace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid kip amount")
	}
	return strconv.ParseInt(s, 10, 64)
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
