package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/tryon/internal/editor"
	"github.com/example/tryon/internal/geom"
	"github.com/example/tryon/internal/imageio"
	"github.com/example/tryon/internal/layer"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// scriptCmd drives an editor session from text commands, one per line.
type scriptCmd struct {
	*root
	fs      *flag.FlagSet
	execs   commandList
	file    string
	width   int
	height  int
	timeout time.Duration
	stdin   io.Reader

	sess *editor.Session
}

func (c *scriptCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseScriptCmd(args []string, r *root) (*scriptCmd, error) {
	fs := flag.NewFlagSet("script", flag.ExitOnError)
	c := &scriptCmd{root: r, fs: fs, stdin: os.Stdin}
	fs.Usage = usageFunc(c)
	fs.Var(&c.execs, "e", "execute a command (may be specified multiple times)")
	fs.StringVar(&c.file, "f", "", "read commands from this file instead of stdin")
	fs.IntVar(&c.width, "width", 0, "canvas width in pixels (default from config)")
	fs.IntVar(&c.height, "height", 0, "canvas height in pixels (default from config)")
	fs.DurationVar(&c.timeout, "timeout", 30*time.Second, "give up a single load after this long")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *scriptCmd) Run() error {
	sess, err := c.newSession(c.width, c.height)
	if err != nil {
		return err
	}
	c.sess = sess
	if len(c.execs) > 0 {
		for _, line := range c.execs {
			done, err := c.executeLine(line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	in := c.stdin
	prompt := true
	if c.file != "" {
		f, err := os.Open(c.file)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
		prompt = false
	}
	if prompt {
		fmt.Fprintln(c.out(), "Enter commands (type 'help' for a list, 'quit' to exit)")
	}
	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprint(c.out(), "> ")
		}
		if !scanner.Scan() {
			break
		}
		done, err := c.executeLine(scanner.Text())
		if err != nil {
			if !prompt {
				return err
			}
			fmt.Fprintln(c.errOut(), err)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

const scriptHelp = `load a|b CODE    load a product into a rug
photo PATH       set the room photo
active a|b       choose the rug the commands edit
second           add or remove the second rug
size LABEL       select a declared size; size next|prev steps through them
scale PCT        set the scale percent
rotate DEG       set the rotation in degrees
shadow on|off|PCT
texture          switch to the next product image
reset            put the rug back in its starting position
move DX DY       shift the rug
down X Y / drag X Y / up
                 press, drag and release the pointer
compare on|off   split view; split PCT moves the divider
status           show the panel text
sku              print the selected SKU
render PATH      export the image
quit             stop`

// executeLine runs one command. done is true when the script should stop.
func (c *scriptCmd) executeLine(line string) (done bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}
	args := strings.Fields(line)
	name, args := strings.ToLower(args[0]), args[1:]
	s := c.sess

	switch name {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(c.out(), scriptHelp)
	case "load":
		if len(args) != 2 {
			return false, errors.New("usage: load a|b CODE")
		}
		id, err := layer.ParseID(args[0])
		if err != nil {
			return false, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		if err := s.Load(ctx, id, args[1]); err != nil {
			return false, fmt.Errorf("load %s: %w", args[1], err)
		}
	case "photo":
		if len(args) != 1 {
			return false, errors.New("usage: photo PATH")
		}
		img, err := imageio.LoadPhotoFile(args[0], c.config.Canvas.MaxPhoto)
		if err != nil {
			return false, fmt.Errorf("photo: %w", err)
		}
		s.SetPhoto(img)
	case "active":
		if len(args) != 1 {
			return false, errors.New("usage: active a|b")
		}
		id, err := layer.ParseID(args[0])
		if err != nil {
			return false, err
		}
		s.SetActive(id)
	case "second":
		s.ToggleSecond()
	case "size":
		if len(args) == 0 {
			return false, errors.New("usage: size LABEL|next|prev")
		}
		switch strings.ToLower(args[0]) {
		case "next":
			s.StepSize(1)
		case "prev":
			s.StepSize(-1)
		default:
			s.SetSize(strings.Join(args, " "))
		}
	case "scale":
		v, err := floatArg(args, "scale PCT")
		if err != nil {
			return false, err
		}
		s.SetScale(v)
	case "rotate":
		v, err := floatArg(args, "rotate DEG")
		if err != nil {
			return false, err
		}
		s.SetRotation(v)
	case "shadow":
		if len(args) != 1 {
			return false, errors.New("usage: shadow on|off|PCT")
		}
		st := s.Layer(s.Scene.Active)
		switch strings.ToLower(args[0]) {
		case "on":
			s.SetShadow(true, st.ShadowStrengthPct)
		case "off":
			s.SetShadow(false, st.ShadowStrengthPct)
		default:
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return false, fmt.Errorf("shadow: %w", err)
			}
			s.SetShadow(v > 0, v)
		}
	case "texture":
		req, ok := s.NextTexture()
		if !ok {
			return false, nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		res := s.Fetch(ctx, req)
		s.Apply(res)
		if res.Err != nil {
			return false, fmt.Errorf("texture: %w", res.Err)
		}
	case "reset":
		s.ResetQuad()
	case "move":
		p, err := pointArg(args, "move DX DY")
		if err != nil {
			return false, err
		}
		s.Nudge(p.X, p.Y)
	case "down":
		p, err := pointArg(args, "down X Y")
		if err != nil {
			return false, err
		}
		s.PointerDown(p)
	case "drag":
		p, err := pointArg(args, "drag X Y")
		if err != nil {
			return false, err
		}
		s.PointerMove(p)
	case "up":
		s.PointerUp()
	case "compare":
		on, err := switchArg(args, "compare on|off")
		if err != nil {
			return false, err
		}
		s.SetCompare(on)
	case "split":
		v, err := floatArg(args, "split PCT")
		if err != nil {
			return false, err
		}
		s.SetSplit(v)
	case "status":
		for _, l := range s.Status(c.config.Locale) {
			fmt.Fprintln(c.out(), l.Text)
		}
	case "sku":
		fmt.Fprintln(c.out(), s.SKU())
	case "render", "export":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: %s PATH", name)
		}
		if err := imageio.SavePNG(args[0], s.Export()); err != nil {
			return false, fmt.Errorf("render: %w", err)
		}
		c.notifyExport(args[0])
		fmt.Fprintf(c.out(), "saved %s\n", args[0])
	default:
		return false, fmt.Errorf("unknown command %q", name)
	}
	return false, nil
}

func floatArg(args []string, usage string) (float64, error) {
	if len(args) != 1 {
		return 0, errors.New("usage: " + usage)
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, fmt.Errorf("usage: %s: %w", usage, err)
	}
	return v, nil
}

func pointArg(args []string, usage string) (geom.Point, error) {
	if len(args) != 2 {
		return geom.Point{}, errors.New("usage: " + usage)
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("usage: %s: %w", usage, err)
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("usage: %s: %w", usage, err)
	}
	return geom.Pt(x, y), nil
}

func switchArg(args []string, usage string) (bool, error) {
	if len(args) != 1 {
		return false, errors.New("usage: " + usage)
	}
	switch strings.ToLower(args[0]) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, errors.New("usage: " + usage)
}
