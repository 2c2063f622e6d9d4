package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/Looking-Fresh-Games/Freshynoid/config"
	"github.com/Looking-Fresh-Games/Freshynoid/scheduler"
	"github.com/Looking-Fresh-Games/Freshynoid/status"
	"github.com/Looking-Fresh-Games/Freshynoid/world"
)

const frameInterval = 16 * time.Millisecond

var agentStyles = []tcell.Style{
	tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
	tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true),
	tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
	tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true),
	tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true),
}

type simulation struct {
	screen tcell.Screen
	w      *world.World
	sched  *scheduler.Scheduler
	reg    *status.Registry
	agents []*agent
	logger *zap.Logger

	audioReady bool
}

func newSimulation(opts options, logger *zap.Logger) (*simulation, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return nil, err
		}
	}

	s := &simulation{
		w:      world.Generate(world.Config{Width: opts.width, Height: opts.height, Braiding: opts.braiding, Seed: opts.seed}),
		sched:  scheduler.New(),
		reg:    status.NewRegistry(),
		logger: logger,
	}

	if !opts.mute {
		sampleRate := beep.SampleRate(44100)
		if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
			// Non-fatal, the demo runs silently
			logger.Warn("audio init failed", zap.Error(err))
		} else {
			s.audioReady = true
		}
	}

	rng := rand.New(rand.NewSource(opts.seed + 1))
	for i := 0; i < opts.agents; i++ {
		a, err := newAgent(s.w, s.sched, cfg, s.reg, rng, logger, s.playCue)
		if err != nil {
			return nil, err
		}
		s.agents = append(s.agents, a)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	s.screen = screen
	return s, nil
}

// playCue sounds a short tone: high for arrival, low for stuck
func (s *simulation) playCue(arrived bool) {
	if !s.audioReady {
		return
	}
	freq := 880.0
	if !arrived {
		freq = 220.0
	}
	sampleRate := beep.SampleRate(44100)
	tone, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(50*time.Millisecond), tone))
}

func (s *simulation) run() {
	defer s.cleanup()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- s.screen.PollEvent()
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !s.handleInput(ev) {
				return
			}

		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now

			for _, a := range s.agents {
				a.act.step(dt.Seconds())
			}
			s.sched.Tick(dt)
			for _, a := range s.agents {
				a.router.DispatchAll()
			}
			s.draw()
		}
	}
}

func (s *simulation) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
			return false
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == 'r' {
			for _, a := range s.agents {
				a.roam()
			}
		}
	case *tcell.EventResize:
		s.screen.Sync()
	}
	return true
}

func (s *simulation) draw() {
	s.screen.Clear()

	wallStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	targetStyle := tcell.StyleDefault.Foreground(tcell.ColorRed)

	cols, rows := s.w.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if s.w.Grid[y][x] == world.Blocked {
				s.screen.SetContent(x, y+1, '█', nil, wallStyle)
			}
		}
	}

	for i, a := range s.agents {
		style := agentStyles[i%len(agentStyles)]
		tc := s.w.CellAt(a.target)
		s.screen.SetContent(tc.X, tc.Y+1, 'x', nil, targetStyle)
		ac := s.w.CellAt(a.act.Position())
		s.screen.SetContent(ac.X, ac.Y+1, '@', nil, style)
	}

	s.drawStatus()
	s.screen.Show()
}

func (s *simulation) drawStatus() {
	arrivals, stucks := 0, 0
	for _, a := range s.agents {
		arrivals += a.arrivals
		stucks += a.stucks
	}
	snap := s.reg.Snapshot()
	line := fmt.Sprintf(" agents:%d arrivals:%d stuck:%d fallback-plans:%d stalls:%d | q quit, r re-roam ",
		len(s.agents), arrivals, stucks,
		snap["nav.fallback.plans"], snap["motion.stalls"])

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	for i, r := range line {
		s.screen.SetContent(i, 0, r, nil, style)
	}
}

func (s *simulation) cleanup() {
	for _, a := range s.agents {
		a.ctrl.Destroy()
	}
	if s.audioReady {
		speaker.Close()
	}
	s.screen.Fini()
}
