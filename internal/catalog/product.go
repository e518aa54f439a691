// Package catalog resolves rug article codes to products and their
// texture images.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/example/tryon/internal/sizing"
)

var (
	// ErrNotFound reports an article code unknown to the catalog.
	ErrNotFound = errors.New("catalog: product not found")
	// ErrEmptyCode reports a lookup with a blank article code.
	ErrEmptyCode = errors.New("catalog: empty article code")
)

// Product is what the editor needs to know about one rug.
type Product struct {
	Code        string            `json:"code"`
	Name        map[string]string `json:"name,omitempty"`
	Images      []string          `json:"images"`
	Sizes       []string          `json:"sizes,omitempty"`
	DefaultSize string            `json:"defaultSize,omitempty"`
	Variants    []sizing.Variant  `json:"variants,omitempty"`
}

// DisplayName returns the name for locale, falling back to English and then
// the article code.
func (p *Product) DisplayName(locale string) string {
	if p == nil {
		return ""
	}
	if n := p.Name[locale]; n != "" {
		return n
	}
	if n := p.Name["en"]; n != "" {
		return n
	}
	return p.Code
}

// InitialSize is the declared default size, or the first listed size.
func (p *Product) InitialSize() string {
	if p == nil {
		return ""
	}
	if p.DefaultSize != "" {
		return p.DefaultSize
	}
	if len(p.Sizes) > 0 {
		return p.Sizes[0]
	}
	return ""
}

// SKU returns the variant SKU for a size label.
func (p *Product) SKU(size string) string {
	if p == nil {
		return ""
	}
	return sizing.SKUFor(p.Variants, size)
}

// Lookup finds a product by article code.
type Lookup interface {
	Lookup(ctx context.Context, code string) (*Product, error)
}

// NormalizeCode trims an article code as typed by a user.
func NormalizeCode(code string) string {
	return strings.TrimSpace(code)
}
