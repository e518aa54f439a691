package catalog

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/example/tryon/internal/sizing"
)

const sampleDoc = `{"products":[
 {"code":" R-100 ","name":{"en":"Kilim","ru":"Килим"},"images":["a.png","b.png"],
  "sizes":["80x150","160x230"],"defaultSize":"160x230",
  "variants":[{"sizeLabel":"80 x 150 cm","sku":"R-100-S"}]}
]}`

func sample(t *testing.T) *Memory {
	t.Helper()
	doc, err := ParseDocument([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return NewMemory(doc.Products)
}

func TestMemoryLookup(t *testing.T) {
	m := sample(t)
	ctx := context.Background()
	p, err := m.Lookup(ctx, "r-100")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if p.Code != "R-100" || p.DisplayName("ru") != "Килим" || p.DisplayName("de") != "Kilim" {
		t.Fatalf("product %+v", p)
	}
	if p.InitialSize() != "160x230" {
		t.Fatalf("initial size %q", p.InitialSize())
	}
	if got := p.SKU("80x150"); got != "R-100-S" {
		t.Fatalf("sku %q", got)
	}
	if _, err := m.Lookup(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v", err)
	}
	if _, err := m.Lookup(ctx, "   "); !errors.Is(err, ErrEmptyCode) {
		t.Fatalf("got %v", err)
	}
}

func TestMemoryCaseFoldingIsStable(t *testing.T) {
	m := NewMemory([]Product{
		{Code: "ab-1", Images: []string{"lower.png"}},
		{Code: "AB-1", Images: []string{"upper.png"}},
		{Code: "Ab-1", Images: []string{"mixed.png"}},
		{Code: "AB-1", Images: []string{"duplicate.png"}},
	})
	ctx := context.Background()
	for i := 0; i < 20; i++ {
		p, err := m.Lookup(ctx, "aB-1")
		if err != nil {
			t.Fatalf("lookup: %v", err)
		}
		if p.Images[0] != "lower.png" {
			t.Fatalf("case-insensitive match picked %q", p.Images[0])
		}
	}
	if p, _ := m.Lookup(ctx, "AB-1"); p.Images[0] != "upper.png" {
		t.Fatalf("exact match picked %q", p.Images[0])
	}
	codes := m.Codes()
	if strings.Join(codes, ",") != "ab-1,AB-1,Ab-1" {
		t.Fatalf("codes %v", codes)
	}
}

func TestParseDocumentRejectsBlankCode(t *testing.T) {
	if _, err := ParseDocument([]byte(`{"products":[{"code":""}]}`)); !errors.Is(err, ErrEmptyCode) {
		t.Fatalf("got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if codes := m.Codes(); len(codes) != 1 || codes[0] != "R-100" {
		t.Fatalf("codes %v", codes)
	}
}

func TestHandlerStatuses(t *testing.T) {
	srv := httptest.NewServer(NewHandler(sample(t)).Router())
	defer srv.Close()

	cases := []struct {
		query  string
		status int
		body   string
	}{
		{"", http.StatusBadRequest, "Missing code"},
		{"?code=%20", http.StatusBadRequest, "Missing code"},
		{"?code=X", http.StatusNotFound, "Not found"},
		{"?code=R-100", http.StatusOK, `"sku":"R-100-S"`},
	}
	for _, c := range cases {
		resp, err := http.Get(srv.URL + ProductPath + c.query)
		if err != nil {
			t.Fatalf("get %q: %v", c.query, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != c.status {
			t.Errorf("%q: status %d want %d", c.query, resp.StatusCode, c.status)
		}
		if !strings.Contains(string(body), c.body) {
			t.Errorf("%q: body %s", c.query, body)
		}
	}
}

func TestClientAgainstHandler(t *testing.T) {
	srv := httptest.NewServer(NewHandler(sample(t)).Router())
	defer srv.Close()
	c := NewClient(srv.URL + "/")
	ctx := context.Background()

	p, err := c.Lookup(ctx, "R-100")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	want := []sizing.Variant{{SizeLabel: "80 x 150 cm", SKU: "R-100-S"}}
	if len(p.Variants) != 1 || p.Variants[0] != want[0] || len(p.Images) != 2 {
		t.Fatalf("product %+v", p)
	}
	if _, err := c.Lookup(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v", err)
	}
	if _, err := c.Lookup(ctx, ""); !errors.Is(err, ErrEmptyCode) {
		t.Fatalf("got %v", err)
	}
}

func writePNG(t *testing.T, w io.Writer, width, height int) {
	t.Helper()
	if err := png.Encode(w, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatal(err)
	}
}

func TestTexturesCachesRemote(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/rug.png" {
			http.NotFound(w, r)
			return
		}
		png.Encode(w, image.NewRGBA(image.Rect(0, 0, 6, 4)))
	}))
	defer srv.Close()

	tx := NewTextures("", time.Minute)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		img, err := tx.Fetch(ctx, srv.URL+"/rug.png")
		if err != nil {
			t.Fatalf("fetch: %v", err)
		}
		if img.Bounds().Dx() != 6 {
			t.Fatalf("bounds %v", img.Bounds())
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("server hit %d times", hits.Load())
	}
	if tx.Cached() != 1 {
		t.Fatalf("cached %d", tx.Cached())
	}
	if _, err := tx.Fetch(ctx, srv.URL+"/missing.png"); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestTexturesRelativePath(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	writePNG(t, &buf, 3, 3)
	if err := os.WriteFile(filepath.Join(dir, "a.png"), buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	tx := NewTextures(dir, 0)
	if _, err := tx.Fetch(context.Background(), "a.png"); err != nil {
		t.Fatalf("relative: %v", err)
	}
	if _, err := tx.Fetch(context.Background(), "file://"+filepath.Join(dir, "a.png")); err != nil {
		t.Fatalf("file url: %v", err)
	}
}
