package x11

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/allape/gogger"
	"github.com/allape/sysevents/capture"
	"github.com/allape/sysevents/capture/cursor"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var l = gogger.New("capture.cursor.x11")

type Driver struct {
	cursor.Driver

	locker sync.Locker
	conn   *xgb.Conn
	root   xproto.Window

	// Display empty uses $DISPLAY
	Display string
}

func (d *Driver) connect() error {
	if d.conn != nil {
		return nil
	}

	conn, err := xgb.NewConnDisplay(d.Display)
	if err != nil {
		return fmt.Errorf("%w: x11 display %q: %v", capture.ErrUnavailable, d.Display, err)
	}

	screen := xproto.Setup(conn).DefaultScreen(conn)
	if screen == nil {
		conn.Close()
		return fmt.Errorf("%w: x11 display has no screen", capture.ErrUnavailable)
	}

	d.conn = conn
	d.root = screen.Root
	l.Verbose().Println("connected to x11 display", d.Display)

	return nil
}

func (d *Driver) Open() error {
	d.locker.Lock()
	defer d.locker.Unlock()
	return d.connect()
}

func (d *Driver) Close() error {
	d.locker.Lock()
	defer d.locker.Unlock()

	if d.conn == nil {
		return nil
	}
	d.conn.Close()
	d.conn = nil
	return nil
}

func (d *Driver) Position() (image.Point, error) {
	d.locker.Lock()
	defer d.locker.Unlock()

	err := d.connect()
	if err != nil {
		return image.Point{}, err
	}

	reply, err := xproto.QueryPointer(d.conn, d.root).Reply()
	if err != nil {
		d.conn.Close()
		d.conn = nil
		return image.Point{}, err
	}
	if reply == nil {
		return image.Point{}, errors.New("empty pointer reply")
	}

	return image.Pt(int(reply.RootX), int(reply.RootY)), nil
}

func New(display string) *Driver {
	return &Driver{
		locker:  &sync.Mutex{},
		Display: display,
	}
}
