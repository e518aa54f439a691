package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
)

// Document is the on-disk and over-the-wire catalog layout.
type Document struct {
	Products []Product `json:"products"`
}

// Memory is a Lookup over an in-memory product list. Codes match exactly
// first and case-insensitively second. When a code repeats, exactly or by
// case, the first product in catalog order wins. A Memory is read-only
// after NewMemory and safe for concurrent use.
type Memory struct {
	products map[string]*Product
	folded   map[string]*Product
	codes    []string
}

// NewMemory indexes products by code.
func NewMemory(products []Product) *Memory {
	m := &Memory{
		products: make(map[string]*Product, len(products)),
		folded:   make(map[string]*Product, len(products)),
		codes:    make([]string, 0, len(products)),
	}
	for i := range products {
		p := products[i]
		if _, ok := m.products[p.Code]; ok {
			continue
		}
		m.products[p.Code] = &p
		m.codes = append(m.codes, p.Code)
		key := strings.ToLower(p.Code)
		if _, ok := m.folded[key]; !ok {
			m.folded[key] = &p
		}
	}
	return m
}

// Lookup implements Lookup.
func (m *Memory) Lookup(ctx context.Context, code string) (*Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	code = NormalizeCode(code)
	if code == "" {
		return nil, ErrEmptyCode
	}
	if p, ok := m.products[code]; ok {
		return p, nil
	}
	if p, ok := m.folded[strings.ToLower(code)]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, code)
}

// Codes returns every known article code in catalog order.
func (m *Memory) Codes() []string {
	return append([]string(nil), m.codes...)
}

// ParseDocument decodes a catalog document.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for i, p := range doc.Products {
		if NormalizeCode(p.Code) == "" {
			return nil, fmt.Errorf("parse catalog: product %d: %w", i, ErrEmptyCode)
		}
		doc.Products[i].Code = NormalizeCode(p.Code)
	}
	return &doc, nil
}

// LoadFile reads a JSON catalog file into a Memory lookup.
func LoadFile(path string) (*Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewMemory(doc.Products), nil
}
