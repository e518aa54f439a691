package main

import (
	"flag"

	"github.com/example/tryon/internal/editor"
	"github.com/example/tryon/internal/layer"
)

type editCmd struct {
	*root
	fs      *flag.FlagSet
	photo   string
	codes   [layer.Count]string
	output  string
	width   int
	height  int
	saveDir string
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.photo, "photo", "", "room photo to place the rug on")
	fs.StringVar(&e.codes[layer.A], "a", "", "article code to load into the first rug")
	fs.StringVar(&e.codes[layer.B], "b", "", "article code to load into the second rug")
	fs.StringVar(&e.output, "output", "", "export path for Ctrl+S (default SAVE_DIR/"+editor.DefaultExportName+")")
	fs.IntVar(&e.width, "width", 0, "canvas width in pixels (default from config)")
	fs.IntVar(&e.height, "height", 0, "canvas height in pixels (default from config)")
	fs.StringVar(&e.saveDir, "save-dir", "", "directory for exports")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 && e.photo == "" {
		e.photo = fs.Arg(0)
	}
	return e, nil
}

func (e *editCmd) Run() error {
	sess, err := e.newSession(e.width, e.height)
	if err != nil {
		return err
	}
	dir := e.saveDir
	if dir == "" {
		dir = e.config.SaveDir
	}
	w := &editor.Window{
		Session:  sess,
		Theme:    e.currentTheme(),
		Notifier: e.notifier,
		Locale:   e.config.Locale,
		Output:   e.output,
		SaveDir:  dir,
		Photo:    e.photo,
		MaxPhoto: e.config.Canvas.MaxPhoto,
		Codes:    e.codes,
	}
	w.Run()
	return nil
}
