package catalog

import (
	"fmt"
	"strings"
)

// FormatPrice renders a price the way the catalog lists it: "$250".
func FormatPrice(p float64) string {
	if p == float64(int64(p)) {
		return fmt.Sprintf("$%d", int64(p))
	}
	return fmt.Sprintf("$%.2f", p)
}

// Line renders an item as a single plain-text row:
//
//	grand-plaza-hotel-1  Grand Plaza Hotel  New York, USA  ★ 4.8  $250 per night  WiFi, Pool, Spa
func (it Item) Line() string {
	parts := []string{it.Key(), it.Name}
	if loc := it.DisplayLocation(); loc != "" {
		parts = append(parts, loc)
	}
	if r, ok := it.Rating(); ok {
		parts = append(parts, fmt.Sprintf("★ %.1f", r))
	}
	price := FormatPrice(it.Price)
	if suffix := it.PriceSuffix(); suffix != "" {
		price += " " + suffix
	}
	parts = append(parts, price)
	if tags := it.Tags(); len(tags) > 0 {
		parts = append(parts, strings.Join(tags, ", "))
	}
	if p := it.Processing(); p != "" {
		parts = append(parts, "Processing: "+p)
	}
	return strings.Join(parts, "  ")
}
