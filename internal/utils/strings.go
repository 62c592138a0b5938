package utils

import "strings"

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// JoinTicketNos serializes generated ticket numbers for storage.
func JoinTicketNos(nos []string) string {
	out := make([]string, 0, len(nos))
	for _, n := range nos {
		n = strings.TrimSpace(n)
		if n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, ",")
}

// SplitTicketNos parses a stored comma-separated ticket number list.
func SplitTicketNos(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
