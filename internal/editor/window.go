package editor

import (
	"context"
	"image"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/tryon/internal/clipboard"
	"github.com/example/tryon/internal/compose"
	"github.com/example/tryon/internal/geom"
	"github.com/example/tryon/internal/i18n"
	"github.com/example/tryon/internal/imageio"
	"github.com/example/tryon/internal/interaction"
	"github.com/example/tryon/internal/layer"
	"github.com/example/tryon/internal/notify"
	"github.com/example/tryon/internal/render"
	"github.com/example/tryon/internal/theme"
)

// frameDropThreshold is how many consecutive frames may be cancelled
// before one is allowed to finish.
const frameDropThreshold = 10

const messageDuration = 3 * time.Second

// DefaultExportName is the file written when no output path is given.
const DefaultExportName = "tryon.png"

// Window is the interactive editor.
type Window struct {
	Session  *Session
	Theme    *theme.Theme
	Notifier *notify.Notifier
	Locale   string
	// Output is the export path; empty means SaveDir/tryon.png.
	Output   string
	SaveDir  string
	Photo    string
	MaxPhoto int
	Codes    [layer.Count]string

	log zerolog.Logger
}

type loadDone struct{ res LoadResult }

type photoDone struct {
	img image.Image
	err error
}

type paintState struct {
	width, height int
	scene         compose.Scene
	drag          interaction.Drag
	panel         panelState
}

// Run opens the window and blocks until it is closed.
func (w *Window) Run() {
	driver.Main(w.Main)
}

// ExportPath is where Ctrl+S writes.
func (w *Window) ExportPath() string {
	if w.Output != "" {
		return w.Output
	}
	return filepath.Join(w.SaveDir, DefaultExportName)
}

// Main runs the event loop on s.
func (w *Window) Main(s screen.Screen) {
	w.log = log.With().Str("module", "window").Logger()
	if w.Theme == nil {
		w.Theme = theme.Default()
	}
	sess := w.Session
	sceneW, height := sess.Scene.Width, sess.Scene.Height
	width := sceneW + PanelWidth

	win, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "tryon"})
	if err != nil {
		w.log.Error().Err(err).Msg("new window")
		return
	}
	defer win.Release()

	ctx, cancelLoads := context.WithCancel(context.Background())
	defer cancelLoads()

	start := func(req LoadRequest, ok bool) {
		if !ok {
			return
		}
		go func() {
			win.Send(loadDone{res: sess.Fetch(ctx, req)})
		}()
	}

	if w.Photo != "" {
		path, maxDim := w.Photo, w.MaxPhoto
		go func() {
			img, err := imageio.LoadPhotoFile(path, maxDim)
			win.Send(photoDone{img: img, err: err})
		}()
	}
	for i, code := range w.Codes {
		if code != "" {
			start(sess.BeginLoad(layer.ID(i), code))
		}
	}

	var (
		paintMu     sync.Mutex
		paintCancel context.CancelFunc
		dropCount   int
	)
	paintCh := make(chan paintState, 1)
	go func() {
		for st := range paintCh {
			pctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			w.drawFrame(pctx, s, win, st)
			paintMu.Lock()
			paintCancel = nil
			if pctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	defer close(paintCh)

	stopPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	var (
		inputOn      bool
		input        string
		message      string
		messageUntil time.Time
	)
	say := func(msg string) {
		message = msg
		messageUntil = time.Now().Add(messageDuration)
		w.log.Info().Msg(msg)
	}
	hints := Bindings()

	for {
		switch e := win.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stopPaint()
				return
			}
			if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff {
				sess.PointerLeave()
				win.Send(paint.Event{})
			}

		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			sceneW = max(1, width-PanelWidth)
			sess.Resize(sceneW, max(1, height))
			win.Send(paint.Event{})

		case loadDone:
			if sess.Apply(e.res) {
				win.Send(paint.Event{})
			}

		case photoDone:
			if e.err != nil {
				w.log.Error().Err(e.err).Str("photo", w.Photo).Msg("load photo")
				say(i18n.Sprintf(w.Locale, i18n.MsgLoadFailed))
			} else {
				sess.SetPhoto(e.img)
			}
			win.Send(paint.Event{})

		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			if message != "" && time.Now().After(messageUntil) {
				message = ""
			}
			st := paintState{
				width:  width,
				height: height,
				scene:  sess.Scene,
				drag:   sess.Drag(),
				panel: panelState{
					lines:   sess.Status(w.Locale),
					inputOn: inputOn,
					input:   input,
					message: message,
					hints:   hints,
				},
			}
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}

		case mouse.Event:
			p := geom.Pt(float64(e.X), float64(e.Y))
			switch {
			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
				if int(e.X) < sceneW {
					sess.PointerDown(p)
				}
			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
				if sess.Drag().Mode != interaction.Idle {
					sess.PointerUp()
					win.Send(paint.Event{})
				}
			case e.Direction == mouse.DirNone:
				if sess.PointerMove(p) {
					win.Send(paint.Event{})
				}
			}

		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if inputOn {
				switch e.Code {
				case key.CodeReturnEnter:
					inputOn = false
					start(sess.BeginLoad(sess.Scene.Active, input))
				case key.CodeEscape:
					inputOn = false
				case key.CodeDeleteBackspace:
					if r := []rune(input); len(r) > 0 {
						input = string(r[:len(r)-1])
					}
				default:
					if e.Rune > 0 {
						input += string(e.Rune)
					}
				}
				win.Send(paint.Event{})
				continue
			}
			action, ok := ActionFor(e)
			if !ok {
				continue
			}
			switch action {
			case ActionQuit:
				stopPaint()
				return
			case ActionEnterCode:
				inputOn = true
				input = sess.Scene.ActiveLayer().Code
			case ActionExport:
				path := w.ExportPath()
				msg, err := SaveExport(sess, path, w.Locale)
				if err != nil {
					w.log.Error().Err(err).Str("path", path).Msg("export")
				} else {
					w.Notifier.Export(path)
				}
				say(msg)
			case ActionCopyImage:
				if err := clipboard.WriteImage(sess.Export()); err != nil {
					w.log.Error().Err(err).Msg("copy image")
					say(err.Error())
				} else {
					say(i18n.Sprintf(w.Locale, i18n.MsgCopied))
					w.Notifier.Copy("image")
				}
			case ActionCopySKU:
				sku := sess.SKU()
				if sku == "" {
					continue
				}
				if err := clipboard.WriteText(sku); err != nil {
					w.log.Error().Err(err).Msg("copy sku")
					say(err.Error())
				} else {
					say(i18n.Sprintf(w.Locale, i18n.MsgSKU, sku))
					w.Notifier.Copy(sku)
				}
			default:
				start(sess.Do(action, nudgeStep(e)))
			}
			win.Send(paint.Event{})
		}
	}
}

func (w *Window) drawFrame(ctx context.Context, s screen.Screen, win screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		w.log.Error().Err(err).Msg("new buffer")
		return
	}
	defer b.Release()
	dst := b.RGBA()

	sceneRect := image.Rect(0, 0, st.scene.Width, st.height)
	c := render.NewCanvas(dst.SubImage(sceneRect).(*image.RGBA))
	compose.Render(c, &st.scene, w.Session.Options().Render)
	if ctx.Err() != nil {
		return
	}
	if st.drag.Mode != interaction.Idle {
		if q, ok := st.scene.Layer(st.drag.Layer).QuadValue(); ok {
			render.QuadOutline(c, q, 1.5, w.Theme.Outline)
		}
	}
	if ctx.Err() != nil {
		return
	}

	drawPanel(dst, image.Rect(st.scene.Width, 0, st.width, st.height), w.Theme, st.panel)
	if ctx.Err() != nil {
		return
	}

	win.Upload(image.Point{}, b, b.Bounds())
	win.Publish()
}

