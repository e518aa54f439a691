package sizing

// Variant ties a size label to the stock keeping unit sold in that size.
type Variant struct {
	SizeLabel string `json:"sizeLabel"`
	SKU       string `json:"sku"`
}

// SKUFor returns the SKU of the first variant whose label normalises to the
// same key as label, or "" when none matches.
func SKUFor(variants []Variant, label string) string {
	if label == "" {
		return ""
	}
	key := NormalizeKey(label)
	for _, v := range variants {
		if NormalizeKey(v.SizeLabel) == key {
			return v.SKU
		}
	}
	return ""
}

// Option describes one selectable size with its scale relative to a base.
type Option struct {
	Label string
	Scale float64
	SKU   string
}

// Options lists every size with its scale factor against base and matching
// SKU, in input order.
func Options(sizes []string, base string, variants []Variant) []Option {
	out := make([]Option, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, Option{Label: s, Scale: ScaleFactor(base, s), SKU: SKUFor(variants, s)})
	}
	return out
}
