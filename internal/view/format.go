package view

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const dateLayout = "02.01.2006"

// Istanbul is the fixed UTC+3 offset Turkey has kept since 2016.
var Istanbul = time.FixedZone("TRT", 3*60*60)

// Currency renders an amount the way tr-TR renders TRY, e.g. ₺3.888,00.
func Currency(d decimal.Decimal) string {
	p := message.NewPrinter(language.Turkish)
	f := d.Round(2).InexactFloat64()
	if f < 0 {
		return "-₺" + p.Sprintf("%v", number.Decimal(-f, number.Scale(2)))
	}
	return "₺" + p.Sprintf("%v", number.Decimal(f, number.Scale(2)))
}

func Date(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateLayout)
}

// Millimetres prints a dimension without trailing zeros.
func Millimetres(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
