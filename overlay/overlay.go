package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"
	"time"

	"github.com/allape/gogger"
	"github.com/allape/sysevents/capture"
	"github.com/allape/sysevents/capture/event"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

var l = gogger.New("overlay")

const (
	DefaultWidth  = 640
	DefaultHeight = 360
	DefaultTrail  = 256
	// MaxClicks markers kept on screen
	MaxClicks = 32
)

var (
	BackgroundColor = color.RGBA{R: 0x11, G: 0x14, B: 0x18, A: 0xff}
	TrailColor      = color.RGBA{R: 0x4f, G: 0xc3, B: 0xf7, A: 0xff}
	TextColor       = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
)

var buttonColors = map[event.Button]color.Color{
	event.Left:   color.RGBA{R: 0x66, G: 0xbb, B: 0x6a, A: 0xff},
	event.Middle: color.RGBA{R: 0xff, G: 0xca, B: 0x28, A: 0xff},
	event.Right:  color.RGBA{R: 0xef, G: 0x53, B: 0x50, A: 0xff},
}

var (
	fontOnce sync.Once
	font     *truetype.Font
	fontErr  error
)

func loadFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		font, fontErr = truetype.Parse(goregular.TTF)
	})
	return font, fontErr
}

type click struct {
	At     event.Position
	Button event.Button
}

// Overlay keeps a bounded picture of recent pointer activity
type Overlay struct {
	locker sync.Locker

	width  int
	height int
	trail  int

	screen  event.Bounds
	points  []event.Position
	clicks  []click
	scrolls int
	keys    int
	lastKey string
	updated int64
}

func (o *Overlay) Handle(e event.Event) error {
	o.locker.Lock()
	defer o.locker.Unlock()

	switch v := e.(type) {
	case event.MouseMoveEvent:
		if !v.Screen.Empty() {
			o.screen = v.Screen
		}
		o.points = append(o.points, event.Position{X: v.X, Y: v.Y})
		if len(o.points) > o.trail {
			o.points = o.points[len(o.points)-o.trail:]
		}
	case event.ClickEvent:
		o.clicks = append(o.clicks, click{At: event.Position{X: v.X, Y: v.Y}, Button: v.Button})
		if len(o.clicks) > MaxClicks {
			o.clicks = o.clicks[len(o.clicks)-MaxClicks:]
		}
	case event.ScrollEvent:
		o.scrolls++
	case event.KeyEvent:
		if v.Down {
			o.keys++
			o.lastKey = v.Key
		}
	default:
		return fmt.Errorf("unexpected event %T", e)
	}

	o.updated = e.Time()

	return nil
}

// Attach subscribes to every kind, the tokens are returned for Detach
func (o *Overlay) Attach(c *capture.Coordinator) []capture.Token {
	tokens := make([]capture.Token, 0, len(event.Kinds()))
	for _, kind := range event.Kinds() {
		tokens = append(tokens, c.Subscribe(kind, o.Handle))
	}
	return tokens
}

func Detach(c *capture.Coordinator, tokens []capture.Token) {
	for _, token := range tokens {
		c.Unsubscribe(token)
	}
}

func (o *Overlay) Reset() {
	o.locker.Lock()
	defer o.locker.Unlock()

	o.points = nil
	o.clicks = nil
	o.scrolls = 0
	o.keys = 0
	o.lastKey = ""
	o.updated = 0
}

// project maps a screen position into the image, the screen defaults to the bounding box of the trail
func (o *Overlay) project(screen event.Bounds, p event.Position) (float64, float64) {
	x := float64(p.X-screen.X) / float64(screen.Width) * float64(o.width)
	y := float64(p.Y-screen.Y) / float64(screen.Height) * float64(o.height)
	return x, y
}

func (o *Overlay) viewport() event.Bounds {
	if !o.screen.Empty() {
		return o.screen
	}

	b := event.Bounds{Width: o.width, Height: o.height}
	all := make([]event.Position, 0, len(o.points)+len(o.clicks))
	all = append(all, o.points...)
	for _, c := range o.clicks {
		all = append(all, c.At)
	}
	for _, p := range all {
		if p.X+1 > b.X+b.Width {
			b.Width = p.X + 1 - b.X
		}
		if p.Y+1 > b.Y+b.Height {
			b.Height = p.Y + 1 - b.Y
		}
	}
	return b
}

func (o *Overlay) Render() (image.Image, error) {
	f, err := loadFont()
	if err != nil {
		return nil, err
	}

	o.locker.Lock()
	defer o.locker.Unlock()

	dc := gg.NewContext(o.width, o.height)
	dc.SetColor(BackgroundColor)
	dc.DrawRectangle(0, 0, float64(o.width), float64(o.height))
	dc.Fill()

	screen := o.viewport()

	if len(o.points) > 0 {
		dc.SetColor(TrailColor)
		dc.SetLineWidth(2)
		x, y := o.project(screen, o.points[0])
		dc.MoveTo(x, y)
		for _, p := range o.points[1:] {
			x, y = o.project(screen, p)
			dc.LineTo(x, y)
		}
		dc.Stroke()
		dc.DrawCircle(x, y, 4)
		dc.Fill()
	}

	for _, c := range o.clicks {
		x, y := o.project(screen, c.At)
		dc.SetColor(buttonColors[c.Button])
		dc.DrawCircle(x, y, 6)
		dc.Fill()
	}

	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: 14}))
	dc.SetColor(TextColor)
	dc.DrawStringAnchored(
		fmt.Sprintf("clicks %d  scrolls %d  keys %d  %s", len(o.clicks), o.scrolls, o.keys, o.lastKey),
		8, 8, 0, 1,
	)
	if o.updated > 0 {
		dc.DrawStringAnchored(
			time.UnixMilli(o.updated).Format(time.DateTime),
			float64(o.width-8), float64(o.height-8), 1, 0,
		)
	}

	return dc.Image(), nil
}

func (o *Overlay) WritePNG(w io.Writer) error {
	img, err := o.Render()
	if err != nil {
		l.Error().Println("render overlay:", err)
		return err
	}
	return png.Encode(w, img)
}

type Options struct {
	Width  int
	Height int
	Trail  int
}

func New(options *Options) *Overlay {
	if options == nil {
		options = &Options{}
	}
	if options.Width <= 0 {
		options.Width = DefaultWidth
	}
	if options.Height <= 0 {
		options.Height = DefaultHeight
	}
	if options.Trail <= 0 {
		options.Trail = DefaultTrail
	}

	return &Overlay{
		locker: &sync.Mutex{},
		width:  options.Width,
		height: options.Height,
		trail:  options.Trail,
	}
}
