package formatter

import (
	"strings"

	"github.com/dustin/go-humanize"
)

type integer interface {
	~int | ~int32 | ~int64
}

// FormatNumber renders n with commas as thousands separators.
// Example: 1234567 -> "1,234,567"
func FormatNumber[T integer](n T) string {
	return humanize.Comma(int64(n))
}

// Count renders "1 file", "2 files", "1,024 files".
func Count[T integer](n T, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return FormatNumber(n) + " " + plural
}

// EscapeMarkdownV2 escapes the characters Telegram reserves in MarkdownV2.
func EscapeMarkdownV2(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`_*[]()~`+"`"+`>#+-=|{}.!\`, r) {
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
