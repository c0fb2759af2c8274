package tunnel

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/lukaszgryglicki/orbittunnel/internal/orbit"
)

// density ramp, sparse to dense
var ramp = []rune{'.', ':', '+', '*', '#', '@'}

const hudRows = 1

// Viewer draws levels produced by an orbit.Worker onto a terminal. The worker builds
// on its own goroutine; after LevelTicks frames on one level the viewer asks for the
// next one and keeps zooming into the current level until it arrives.
type Viewer struct {
	screen  tcell.Screen
	w       *orbit.Worker
	cfg     *Config
	p       orbit.Params
	vec     orbit.Vector
	pal     []colorful.Color
	ctx     context.Context
	results chan built

	level    int
	next     int
	tick     int // frames since the current level arrived
	paused   bool
	inflight bool
	bufs     [][]float32
	stats    orbit.Stats
	counts   []int // per cell hit count
	owner    []int // per cell last subset
}

type built struct {
	id  int
	r   orbit.Result
	err error
}

// NewViewer draws levels built by w, which must be running.
func NewViewer(screen tcell.Screen, w *orbit.Worker, cfg *Config) *Viewer {
	p := cfg.Params()
	return &Viewer{
		screen:  screen,
		w:       w,
		cfg:     cfg,
		p:       p,
		vec:     p.Vector(),
		pal:     Palette(max(p.SubsetCount, 1)),
		ctx:     context.Background(),
		results: make(chan built, 1),
	}
}

// Level is the id of the level on screen.
func (v *Viewer) Level() int { return v.level }

// request asks the worker for the next level unless one is already on its way.
func (v *Viewer) request() {
	if v.inflight {
		return
	}
	v.inflight = true
	req := orbit.Request{LevelID: v.next, Vector: v.vec}
	v.next++
	go func() {
		r, err := v.w.Submit(v.ctx, req)
		v.results <- built{id: req.LevelID, r: r, err: err}
	}()
}

// poll swaps in a finished level, if there is one.
func (v *Viewer) poll() {
	select {
	case b := <-v.results:
		v.inflight = false
		if b.err != nil {
			DebugLog("Level %d not built: %v", b.id, b.err)
			return
		}
		v.level = b.r.LevelID
		v.bufs = b.r.Buffers
		v.stats = b.r.Stats
		v.tick = 0
	default:
	}
}

// Step advances one frame: picks up a finished level, asks for the next one when due, then draws.
func (v *Viewer) Step() {
	v.poll()
	if !v.paused {
		if v.bufs == nil || v.tick >= v.cfg.LevelTicks {
			v.request()
		}
		if v.bufs != nil && v.tick < v.cfg.LevelTicks {
			v.tick++
		}
	}
	v.draw()
}

func (v *Viewer) zoom() float32 {
	phase := float32(min(v.tick, v.cfg.LevelTicks)) / float32(v.cfg.LevelTicks)
	return v.cfg.Zoom * (1 + phase)
}

func (v *Viewer) draw() {
	w, h := v.screen.Size()
	rows := h - hudRows
	v.screen.Clear()
	if w <= 0 || rows <= 0 {
		v.screen.Show()
		return
	}
	if len(v.counts) != w*rows {
		v.counts = make([]int, w*rows)
		v.owner = make([]int, w*rows)
	}
	for i := range v.counts {
		v.counts[i] = 0
	}

	half := v.p.Scale / v.zoom()
	peak := 0
	for s, buf := range v.bufs {
		for i := 0; i+1 < len(buf); i += 2 {
			x, y := buf[i], buf[i+1]
			if !isFinite(x) || !isFinite(y) {
				continue
			}
			cx := int((x + half) / (2 * half) * float32(w))
			cy := rows - 1 - int((y+half)/(2*half)*float32(rows))
			if cx < 0 || cx >= w || cy < 0 || cy >= rows {
				continue
			}
			c := cy*w + cx
			v.counts[c]++
			v.owner[c] = s
			peak = max(peak, v.counts[c])
		}
	}

	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < w; cx++ {
			c := cy*w + cx
			n := v.counts[c]
			if n == 0 {
				continue
			}
			ch := ramp[(n*len(ramp)-1)/peak]
			r, g, b := v.pal[v.owner[c]%len(v.pal)].RGB255()
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
			v.screen.SetContent(cx, cy+hudRows, ch, nil, style)
		}
	}

	st := v.stats
	hud := fmt.Sprintf("level %d  branch %s  builds %d  allocs %d  non-finite %d  [space] pause  [n] next  [q] quit",
		v.level, st.Coefficients.Branch, st.Builds, st.Allocations, st.NonFinite)
	if v.bufs == nil {
		hud = "loading"
	}
	if v.paused {
		hud = "PAUSED  " + hud
	}
	for i, r := range []rune(hud) {
		if i >= w {
			break
		}
		v.screen.SetContent(i, 0, r, nil, tcell.StyleDefault.Reverse(true))
	}
	v.screen.Show()
}

// HandleEvent reacts to keys; it returns false when the viewer should quit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			v.paused = !v.paused
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'n':
			v.request()
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// Run drives the viewer at cfg.FPS until a quit key or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	v.ctx = ctx
	ticker := time.NewTicker(time.Second / time.Duration(v.cfg.FPS))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	v.Step()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !v.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			v.Step()
		}
	}
}

// RunView opens the terminal and runs a Viewer over cfgPath.
func RunView(ctx context.Context, cfgPath string) error {
	cfg, err := Load(cfgPath)
	if err != nil {
		return err
	}
	return RunViewConfig(ctx, cfg)
}

// RunViewConfig opens the terminal and runs a Viewer over cfg.
func RunViewConfig(ctx context.Context, cfg *Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()
	var b *orbit.Builder
	if cfg.Seed != 0 {
		b = orbit.NewSeededBuilder(cfg.Seed)
	} else {
		b = orbit.NewBuilder(orbit.NewTimeRand(0))
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	w := orbit.NewWorker(b)
	go w.Run(ctx)
	err = NewViewer(screen, w, cfg).Run(ctx)
	if err == context.Canceled {
		return nil
	}
	return err
}
