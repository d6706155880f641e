// Package game hosts the bingo overlay in an ebiten window and feeds it
// combat events from the feed connection.
package game

import (
	"context"
	"image"
	"image/color"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/j3kstrum/runelite-bingo/internal/app"
	"github.com/j3kstrum/runelite-bingo/internal/feed"
	"github.com/j3kstrum/runelite-bingo/internal/overlay"
	"github.com/j3kstrum/runelite-bingo/shared/protocol"
)

const (
	ScreenW = 800
	ScreenH = 600
	title   = "RuneLite Bingo"

	overlayMinW = overlay.Width
	overlayMinH = overlay.Height + 40
	retryDelay  = 2 * time.Second
)

var colScreen = color.NRGBA{18, 20, 24, 255}

// Options configures the host window.
type Options struct {
	Session   *app.Session
	FeedURL   string
	FeedToken string
	// OnClose releases whatever main opened besides the session.
	OnClose func()
}

type Game struct {
	sess *app.Session
	ov   *overlay.Container

	ctx    context.Context
	cancel context.CancelFunc
	feedCh chan protocol.MsgEnvelope

	in      input
	frame   *image.RGBA
	img     *ebiten.Image
	onClose func()
	closed  bool
}

// New starts the feed connection in the background and returns the game.
func New(opts Options) *Game {
	ctx, cancel := context.WithCancel(context.Background())
	g := &Game{
		sess:    opts.Session,
		ov:      opts.Session.Overlay(),
		ctx:     ctx,
		cancel:  cancel,
		feedCh:  make(chan protocol.MsgEnvelope, 256),
		onClose: opts.OnClose,
	}
	g.in.last = image.Pt(-1, -1)
	g.ov.SetOrigin(image.Pt((ScreenW-overlay.Width)/2, 8))
	if opts.FeedURL != "" {
		go feed.Run(ctx, opts.FeedURL, opts.FeedToken, retryDelay, g.feedCh)
	} else {
		log.Printf("game: no feed configured")
	}
	return g
}

func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		g.Close()
		return ebiten.Termination
	}

drain:
	for {
		select {
		case env := <-g.feedCh:
			g.sess.Handle(env)
		default:
			break drain
		}
	}

	g.pollMouse()
	g.pollKeys()
	g.sess.Tick(g.ctx)
	return nil
}

// export copies the active board to the clipboard.
func (g *Game) export() {
	s, err := g.sess.Export()
	if err != nil {
		g.sess.SetStatus("Nothing to export")
		return
	}
	if err := clipboard.WriteAll(s); err != nil {
		log.Printf("game: clipboard: %v", err)
		g.sess.SetStatus("Clipboard unavailable")
		return
	}
	g.sess.SetStatus("Board copied")
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colScreen)

	if frame := g.ov.Render(); frame != nil {
		if frame != g.frame {
			if g.img != nil {
				g.img.Deallocate()
			}
			g.img = ebiten.NewImageFromImage(frame)
			g.frame = frame
		}
		var op ebiten.DrawImageOptions
		o := g.ov.Bounds().Min
		op.GeoM.Translate(float64(o.X), float64(o.Y))
		screen.DrawImage(g.img, &op)
	} else {
		text.Draw(screen, "Press B to show the bingo board", basicfont.Face7x13, 12, 24, color.White)
	}

	if msg := g.sess.Status(); msg != "" {
		text.Draw(screen, msg, basicfont.Face7x13, 12, ScreenH-12, color.NRGBA{255, 255, 0, 255})
	}
}

func (g *Game) Layout(w, h int) (int, int) { return ScreenW, ScreenH }

// Close stops the feed and flushes the session. Safe to call twice.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.cancel()
	if err := g.sess.Close(context.Background()); err != nil {
		log.Printf("game: close session: %v", err)
	}
	if g.img != nil {
		g.img.Deallocate()
		g.img = nil
	}
	if g.onClose != nil {
		g.onClose()
	}
}
