package render

import (
	"fmt"
	"io"
	"strings"

	"quoter/model"
)

// Products writes the id/category/name/color listing used by the menu.
func Products(w io.Writer, products []model.Product) error {
	var sb strings.Builder
	sb.WriteString("ID | Category | Name | Color\n")
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	if len(products) == 0 {
		sb.WriteString("No products loaded.\n")
	}
	for _, p := range products {
		sb.WriteString(fmt.Sprintf("%-3s | %-7s | %-20s | %s\n", p.ID, p.Category, p.Name, p.Color))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
