package report

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/AngelCh415/digmar-dash/internal/models"
)

// Undefined is shown wherever a ratio or amount is not finite.
const Undefined = "n/a"

// Formatter renders numbers the way the dashboard shows them: counts with
// thousands separators, ratios as percent with two decimals, money as a
// currency prefix plus a whole grouped amount.
type Formatter struct {
	p        *message.Printer
	currency string
}

func NewFormatter(currency string) Formatter {
	return Formatter{p: message.NewPrinter(language.English), currency: currency}
}

func (f Formatter) Count(n int64) string { return f.p.Sprintf("%d", n) }

// Plain is used for count columns inside tables, which are not grouped.
func (f Formatter) Plain(n int64) string { return strconv.FormatInt(n, 10) }

func (f Formatter) Percent(r models.Ratio) string {
	if !r.Defined() {
		return Undefined
	}
	return fmt.Sprintf("%.2f%%", r.Float()*100)
}

func (f Formatter) Money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Undefined
	}
	return f.currency + f.p.Sprintf("%.0f", v)
}

func (f Formatter) MoneyRatio(r models.Ratio) string {
	if !r.Defined() {
		return Undefined
	}
	return f.Money(r.Float())
}
