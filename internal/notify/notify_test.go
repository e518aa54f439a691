package notify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/example/tryon/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func recorder(n *Notifier) *[]sent {
	var out []sent
	n.send = func(title, body string, opts platform.Options) error {
		out = append(out, sent{title, body, opts})
		return nil
	}
	return &out
}

func TestDisabledEventsAreSilent(t *testing.T) {
	n := New(DefaultPreferences())
	got := recorder(n)
	n.Copy("SKU-1")
	n.Export("x.png")
	if len(*got) != 0 {
		t.Fatalf("sent %v", *got)
	}
	var nilNotifier *Notifier
	nilNotifier.Copy("x")
	nilNotifier.Enable(EventCopy, true)
}

func TestExportUsesAbsolutePathAndIcon(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tryon.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := New(DefaultPreferences())
	n.Enable(EventExport, true)
	got := recorder(n)
	n.Export(path)
	if len(*got) != 1 {
		t.Fatalf("sent %v", *got)
	}
	s := (*got)[0]
	if s.title != "Try-on" || s.body != "Saved "+path || s.opts.IconPath != path {
		t.Fatalf("sent %+v", s)
	}
}

func TestCopyDefaultsDetail(t *testing.T) {
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	got := recorder(n)
	n.Copy(" ")
	if len(*got) != 1 || (*got)[0].body != "Copied image to clipboard" {
		t.Fatalf("sent %v", *got)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("TRYON_NOTIFY_TITLE", "Rugs")
	t.Setenv("TRYON_NOTIFY_COPY_TEXT", "Clipboard: %s")
	p := LoadPreferences()
	if p.Title != "Rugs" || p.Templates[EventCopy] != "Clipboard: %s" || p.Templates[EventExport] != "Saved %s" {
		t.Fatalf("prefs %+v", p)
	}
}
