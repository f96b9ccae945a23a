package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"quoter/model"
)

const (
	lineWidth = 90
	nameWidth = 25
)

// Money formats an amount as dollars with two fraction digits and thousands separators.
// The digits come from the decimal itself so large totals stay exact to the cent.
func Money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	return sign + "$" + groupThousands(whole) + "." + frac
}

func groupThousands(digits string) string {
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	var sb strings.Builder
	sb.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		sb.WriteByte(',')
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}

// Quantity prints a hero quantity without trailing zeros.
func Quantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// Banner centers title in a row of fill characters. An empty title gives a plain rule.
func Banner(title string, fill rune) string {
	if title == "" {
		return strings.Repeat(string(fill), lineWidth)
	}
	title = " " + title + " "
	pad := lineWidth - utf8.RuneCountInString(title)
	if pad < 2 {
		return title
	}
	left := pad / 2
	return strings.Repeat(string(fill), left) + title + strings.Repeat(string(fill), pad-left)
}

// Quote writes the full quote text. Everything it prints comes from q.
func Quote(w io.Writer, q *model.Quote) error {
	var sb strings.Builder
	main := q.Main.Product

	sb.WriteString(Banner("", '-') + "\n")
	sb.WriteString(Banner("BUILDING PRODUCT QUOTE", '-') + "\n")
	sb.WriteString(Banner("", '-') + "\n")
	sb.WriteString(fmt.Sprintf("%s (%s)\n", main.Name, main.Color))
	sb.WriteString(fmt.Sprintf("Quantity: %s %s\n", Quantity(q.Main.Quantity), main.Unit))
	sb.WriteString(fmt.Sprintf("Base Price: %s\n", Money(q.Main.Subtotal)))

	sb.WriteString(Banner("SUGGESTED ADD-ONS", '-') + "\n")
	if q.AccessoryColor != "" && q.AccessoryColor != main.Color {
		sb.WriteString(fmt.Sprintf("Accessory color: %s\n", q.AccessoryColor))
	}
	if len(q.Accessories) == 0 {
		sb.WriteString("- none\n")
	}
	for _, a := range q.Accessories {
		sb.WriteString(fmt.Sprintf("- %s qty: %2d | %9s\n", dotPad(a.Product.Name, nameWidth), a.Quantity, Money(a.Cost)))
	}

	sb.WriteString(Banner("GRAND TOTAL", '-') + "\n")
	sb.WriteString(fmt.Sprintf("Total Before Accessories: %s\n", Money(q.Subtotal)))
	sb.WriteString(fmt.Sprintf("Total Incl. Accessories: %s\n", Money(q.GrandTotal)))

	if len(q.Warnings) > 0 {
		sb.WriteString(Banner("", '!') + "\n")
		sb.WriteString(Banner("STOCK ALERTS", '!') + "\n")
		for _, wn := range q.Warnings {
			sb.WriteString(wn.Message + "\n")
		}
		sb.WriteString(Banner("", '!') + "\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// dotPad left-aligns s in width runes, filling with dots and cutting what does not fit.
func dotPad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return string([]rune(s)[:width])
	}
	return s + strings.Repeat(".", width-n)
}
