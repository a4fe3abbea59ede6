package extract

import (
	"math/big"
	"regexp"
	"strings"

	"github.com/ppiankov/refdocs/internal/syntax"
)

// GroupThousands inserts comma separators into a string of decimal digits.
// Anything else is returned unchanged.
func GroupThousands(digits string) string {
	if !isDigits(digits) || len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

var thousand = big.NewInt(1000)

// NormalizeConstValue renders a constant's value for display. Plain integers
// longer than three digits get separators. Underscore-grouped products such
// as 21_000_000 * 100_000_000 are evaluated and rendered with separators when
// the result exceeds 1000. Anything that cannot be evaluated is returned with
// its whitespace collapsed.
func NormalizeConstValue(raw string) string {
	value := syntax.CollapseSpace(raw)
	if isDigits(value) && len(value) > 3 {
		digits := strings.TrimLeft(value, "0")
		if digits == "" {
			digits = "0"
		}
		return GroupThousands(digits)
	}
	if !strings.Contains(value, "_") || !isProductText(value) {
		return value
	}
	product, ok := evalProduct(strings.ReplaceAll(value, "_", ""))
	if !ok || product.Cmp(thousand) <= 0 {
		return value
	}
	return GroupThousands(product.String())
}

// isProductText reports whether s holds only digits, underscores, spaces and
// '*', with at least one digit
func isProductText(s string) bool {
	digit := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digit = true
		case c == '_' || c == '*' || c == ' ':
		default:
			return false
		}
	}
	return digit
}

// evalProduct multiplies the '*'-separated integer factors of s
func evalProduct(s string) (*big.Int, bool) {
	product := big.NewInt(1)
	for _, factor := range strings.Split(s, "*") {
		factor = strings.TrimSpace(factor)
		n, ok := new(big.Int).SetString(factor, 10)
		if !ok || strings.Contains(factor, " ") {
			return nil, false
		}
		product.Mul(product, n)
	}
	return product, true
}

var (
	reReturnInt  = regexp.MustCompile(`return\s+(\d+)\s*;`)
	reBareInt    = regexp.MustCompile(`(?m)^\s*(\d+)\s*$`)
	reProduct    = regexp.MustCompile(`(\d+)\s*\*\s*(\d+)(?:\s*\*\s*(\d+))?`)
	reCommentInt = regexp.MustCompile(`(\d+)\s*//\s*(.+)`)
	reQuoted     = regexp.MustCompile(`"([^"]+)"`)
)

// DefaultValue extracts the value a default function returns. The forms are
// tried in order: `return N;`, a bare integer line, a product of two or three
// integers, `N // comment`, a string literal, then true/false. It reports
// false when no form matches.
func DefaultValue(body string) (string, bool) {
	if m := reReturnInt.FindStringSubmatch(body); m != nil {
		return m[1], true
	}
	if m := reBareInt.FindStringSubmatch(body); m != nil {
		return m[1], true
	}
	if m := reProduct.FindStringSubmatch(body); m != nil {
		product := big.NewInt(1)
		for _, factor := range m[1:] {
			if factor == "" {
				continue
			}
			n, _ := new(big.Int).SetString(factor, 10)
			product.Mul(product, n)
		}
		return product.String(), true
	}
	if m := reCommentInt.FindStringSubmatch(body); m != nil {
		return m[1] + " (" + strings.TrimSpace(m[2]) + ")", true
	}
	if m := reQuoted.FindStringSubmatch(body); m != nil {
		return `"` + m[1] + `"`, true
	}
	if strings.Contains(body, "true") {
		return "true", true
	}
	if strings.Contains(body, "false") {
		return "false", true
	}
	return "", false
}

// SettingName derives a dotted setting name from a default function name:
// default_max_peers becomes max.peers
func SettingName(fn, prefix string) string {
	return strings.ReplaceAll(strings.TrimPrefix(fn, prefix), "_", ".")
}

var reMarkdownLink = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)

// StripMarkdownLinks replaces [text](url) with text
func StripMarkdownLinks(s string) string {
	return reMarkdownLink.ReplaceAllString(s, "$1")
}
