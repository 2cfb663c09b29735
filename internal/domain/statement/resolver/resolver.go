// Package resolver maps raw statement header rows to canonical fields using
// multi-language alias dictionaries (English plus accented and unaccented
// Vietnamese), with a conservative positional fallback for unrecognized
// layouts.
package resolver

import (
	"regexp"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/tranvu/vnstatement/internal/domain/statement"
)

// Alias tables. Matching is by substring on the normalized header, so generic
// single words stay out of these lists ("amount" alone would force a lone
// Amount column to Debit).
var (
	dateAliases = []string{"date", "ngày", "ngay", "ngày giao dịch", "transaction date"}
	descAliases = []string{
		"description", "nội dung", "noi dung", "diễn giải", "dien giai",
		"details", "chi tiết", "chi tiet", "content",
	}
	remitterAliases = []string{"remitter", "đối tác", "doi tac", "partner", "người chuyển", "nguoi chuyen"}
	debitAliases    = []string{
		"debit", "ghi nợ", "ghi no", "số tiền ghi nợ", "outflow",
		"phát sinh nợ", "phat sinh no", "ghi nợ (vnđ)", "nợ tktt",
	}
	creditAliases = []string{
		"credit", "ghi có", "ghi co", "số tiền ghi có", "inflow",
		"phát sinh có", "phat sinh co", "ghi có (vnđ)", "có tktt",
	}

	// Headers naming the remitter's bank ("NH Đối tác") share the word "đối tác"
	// with the remitter column and must never map to Remitter.
	remitterBankIndicators = []string{
		"remitter bank", "nh đối tác", "nh doi tac",
		"ngân hàng đối tác", "ngan hang doi tac",
	}
)

// aliasFamilies is the fixed priority order for header matching; the first
// family containing the normalized header as a substring wins.
var aliasFamilies = []struct {
	aliases []string
	field   statement.Field
}{
	{dateAliases, statement.FieldDate},
	{descAliases, statement.FieldDescription},
	{remitterAliases, statement.FieldRemitter},
	{debitAliases, statement.FieldDebit},
	{creditAliases, statement.FieldCredit},
}

var whitespace = regexp.MustCompile(`\s+`)

// normalizeHeader lowercases, trims and collapses internal whitespace.
func normalizeHeader(h string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(h)), " ")
}

func isRemitterBankHeader(normalized string) bool {
	for _, ind := range remitterBankIndicators {
		if strings.Contains(normalized, ind) {
			return true
		}
	}
	return false
}

// Map resolves a header row to a column map. Empty cells are skipped; each
// cell maps to at most one field, decided by the first matching alias family.
func Map(header []string) statement.ColumnMap {
	mapping := make(statement.ColumnMap)
	for i, h := range header {
		n := normalizeHeader(h)
		if n == "" {
			continue
		}
		for _, family := range aliasFamilies {
			if !containsAny(n, family.aliases) {
				continue
			}
			if family.field == statement.FieldRemitter && isRemitterBankHeader(n) {
				// Leave the remitter-bank column unmapped.
				continue
			}
			mapping[i] = family.field
			break
		}
	}
	return mapping
}

// Fallback assumes the common Date, Description, Debit, Credit layout for as
// many columns as exist. It is intentionally the weakest mapping and is only
// meant for header rows where Map found nothing.
func Fallback(header []string) statement.ColumnMap {
	positional := []statement.Field{
		statement.FieldDate,
		statement.FieldDescription,
		statement.FieldDebit,
		statement.FieldCredit,
	}
	mapping := make(statement.ColumnMap)
	for i := 0; i < len(header) && i < len(positional); i++ {
		mapping[i] = positional[i]
	}
	return mapping
}

// Suggest returns the closest alias family for a header cell by fuzzy match.
// It is a diagnostic aid for logging unrecognized headers and never feeds the
// actual mapping.
func Suggest(header string) (statement.Field, bool) {
	n := normalizeHeader(header)
	if n == "" {
		return "", false
	}
	bestRank := -1
	var bestField statement.Field
	for _, family := range aliasFamilies {
		for _, alias := range family.aliases {
			rank := fuzzy.RankMatchNormalizedFold(alias, n)
			if rank < 0 {
				continue
			}
			if bestRank < 0 || rank < bestRank {
				bestRank = rank
				bestField = family.field
			}
		}
	}
	return bestField, bestRank >= 0
}

func containsAny(s string, aliases []string) bool {
	for _, a := range aliases {
		if strings.Contains(s, a) {
			return true
		}
	}
	return false
}
