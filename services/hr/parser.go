package hr

import (
	"fmt"
	"strconv"
	"strings"

	"cazinoureview/constants"

	"github.com/fiam/gounidecode/unidecode"
)

// Row is one normalized work/test row.
type Row struct {
	Casino     string
	Deposit    float64
	Withdrawal float64
	Card       string
}

// SkipReason tags why a source row was discarded.
type SkipReason string

const (
	SkipNone              SkipReason = ""
	SkipBlankCasino       SkipReason = "blank casino"
	SkipPlaceholderCasino SkipReason = "placeholder casino"
	SkipHeaderRepeat      SkipReason = "header repeat"
	SkipZeroAmounts       SkipReason = "zero amounts"
)

// Column labels that sometimes reappear mid-sheet when rows are copied
// around by hand.
var headerWords = map[string]bool{
	"casino": true,
	"site":   true,
	"name":   true,
}

// ParseRow turns a positional source row into a Row or a SkipReason.
// Columns: casino, deposit, withdrawal, card. No column presence is
// trusted; amounts that fail to parse become 0.
func ParseRow(cells []interface{}) (Row, SkipReason) {
	casino := strings.TrimSpace(cellString(cells, 0))
	if casino == "" {
		return Row{}, SkipBlankCasino
	}
	lower := strings.ToLower(casino)
	if lower == "unknown" || lower == "n/a" || lower == "-" {
		return Row{}, SkipPlaceholderCasino
	}
	if headerWords[lower] {
		return Row{}, SkipHeaderRepeat
	}

	deposit := cellNumber(cells, 1)
	withdrawal := cellNumber(cells, 2)
	if deposit == 0 && withdrawal == 0 {
		return Row{}, SkipZeroAmounts
	}

	card := strings.TrimSpace(cellString(cells, 3))
	if card == "" {
		card = constants.DefaultCard
	}

	return Row{
		Casino:     casino,
		Deposit:    deposit,
		Withdrawal: withdrawal,
		Card:       card,
	}, SkipNone
}

func cellString(cells []interface{}, i int) string {
	if i >= len(cells) || cells[i] == nil {
		return ""
	}
	switch v := cells[i].(type) {
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// cellNumber coerces a cell to a non-negative amount; anything that does
// not parse, including negatives from hand-edited sheets, becomes 0.
func cellNumber(cells []interface{}, i int) float64 {
	if i >= len(cells) || cells[i] == nil {
		return 0
	}

	var n float64
	switch v := cells[i].(type) {
	case float64:
		n = v
	case int:
		n = float64(v)
	case string:
		cleaned := strings.TrimSpace(strings.ReplaceAll(v, ",", ""))
		cleaned = strings.TrimPrefix(cleaned, "$")
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}

	if n < 0 {
		return 0
	}
	return n
}

// NormalizeCasino canonicalizes a casino name for the tester overlap join
// and per-site grouping: transliterated, lowercased, trimmed.
func NormalizeCasino(name string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(name)))
}
