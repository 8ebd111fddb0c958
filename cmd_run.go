package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation in the terminal",
		Long: `Run the simulation in an interactive terminal view.

Keys: space toggles automatic mode, n steps one generation, r restarts,
h toggles birth/death highlighting, q or Esc quits. The arrow keys scroll a
world larger than the terminal and Home jumps back to its top-left corner.

With --headless no screen is drawn; a status line is printed per generation
until --max-generations is reached or the process is interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("max-generations") {
				config.MaxGenerations, _ = cmd.Flags().GetInt("max-generations")
			}
			if cmd.Flags().Changed("auto-restart") {
				config.AutoRestart, _ = cmd.Flags().GetBool("auto-restart")
			}

			headless, _ := cmd.Flags().GetBool("headless")
			if headless {
				logger := utils.NewLogger(config.LogLevel, cmd.ErrOrStderr())
				world, err := initializeGame(config, logger)
				if err != nil {
					return err
				}
				defer world.Destroy()

				ctx, cancel := context.WithCancel(cmd.Context())
				defer cancel()
				stopOnSignal(ctx, cancel)

				return runHeadless(ctx, world, config, cmd.OutOrStdout())
			}

			logFile, _ := cmd.Flags().GetString("log-file")
			logOut := io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
				if err != nil {
					return errors.Wrapf(err, "[run] failed to open log file: %s", logFile)
				}
				defer f.Close()
				logOut = f
			}
			logger := utils.NewLogger(config.LogLevel, logOut)

			world, err := initializeGame(config, logger)
			if err != nil {
				return err
			}
			defer world.Destroy()

			screen, err := tcell.NewScreen()
			if err != nil {
				return errors.Wrap(err, "[run] failed to create screen")
			}
			if err = screen.Init(); err != nil {
				return errors.Wrap(err, "[run] failed to initialize screen")
			}
			defer screen.Fini()

			return runInteractive(newSession(world, config, logger), screen)
		},
	}

	addWorldFlags(cmd)
	cmd.Flags().Bool("headless", false, "Print status lines instead of drawing the grid")
	cmd.Flags().Int("max-generations", 0, "Stop after this many generations (0 = unbounded)")
	cmd.Flags().Bool("auto-restart", false, "Restart on extinction or stagnation (headless)")
	cmd.Flags().String("log-file", "", "Write logs to this file in interactive mode")
	return cmd
}

// runHeadless iterates the world, printing a status line per generation
func runHeadless(ctx context.Context, world *model.World, config utils.Config, out io.Writer) error {
	var (
		stats          = utils.NewStats()
		history        model.History
		stagnantCount  = 0
		lastRestartGen uint64
		totalGen       uint64
		lastFrameTime  = time.Now()
		delay          = config.FrameRate
	)

	history.Observe(world.Fingerprint())

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "Shutting down gracefully...")
			displayFinalStats(out, stats)
			return nil
		default:
		}

		if config.MaxGenerations > 0 && totalGen >= uint64(config.MaxGenerations) {
			fmt.Fprintf(out, "Reached maximum generations limit (%d)\n", config.MaxGenerations)
			displayFinalStats(out, stats)
			return nil
		}

		if err := world.Iterate(); err != nil {
			return err
		}
		totalGen++

		snap := world.Stats()
		stats.Update(totalGen, snap.Population, snap.Births, snap.Deaths, time.Since(lastFrameTime))
		lastFrameTime = time.Now()

		if history.Observe(world.Fingerprint()) {
			stagnantCount++
		} else {
			stagnantCount = 0
		}

		fmt.Fprintln(out, formatStatus(snap, stats))

		if config.AutoRestart {
			if restart, reason := checkRestartConditions(snap.Population, stagnantCount, config); restart {
				fmt.Fprintf(out, "Restarting due to %s after %d generations\n", reason, totalGen-lastRestartGen)
				if err := restartGame(world, config); err != nil {
					return err
				}
				history.Reset()
				history.Observe(world.Fingerprint())
				stagnantCount = 0
				lastRestartGen = totalGen
			}
		}

		if delay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(delay):
			}
		}
	}
}

// panStep is how many cells one arrow key press scrolls the view
const panStep = 8

// session holds the interactive state driven by key presses
type session struct {
	world     *model.World
	config    utils.Config
	logger    *slog.Logger
	renderer  *model.TerminalRenderer
	highlight bool
	auto      bool
}

func newSession(world *model.World, config utils.Config, logger *slog.Logger) *session {
	return &session{
		world:     world,
		config:    config,
		logger:    logger,
		highlight: config.ShowBirthDeath,
	}
}

// handleKey applies one key press and reports whether the user asked to quit
func (s *session) handleKey(ev *tcell.EventKey) (quit bool, err error) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true, nil
	case tcell.KeyLeft:
		s.pan(-panStep, 0)
		return false, nil
	case tcell.KeyRight:
		s.pan(panStep, 0)
		return false, nil
	case tcell.KeyUp:
		s.pan(0, -panStep)
		return false, nil
	case tcell.KeyDown:
		s.pan(0, panStep)
		return false, nil
	case tcell.KeyHome:
		if s.renderer != nil {
			s.renderer.ResetView()
		}
		return false, nil
	}

	switch ev.Rune() {
	case 'q':
		return true, nil
	case ' ':
		s.auto = !s.auto
		s.logger.Debug("toggle automatic mode", "auto", s.auto)
	case 'n':
		// a manual step leaves automatic mode
		s.auto = false
		err = s.world.Iterate()
	case 'r':
		s.logger.Debug("restart game of life")
		err = restartGame(s.world, s.config)
	case 'h':
		s.highlight = !s.highlight
	}
	return false, err
}

func (s *session) pan(dx, dy int) {
	if s.renderer == nil {
		return
	}
	s.renderer.Pan(dx, dy)
}

// tick advances one generation when automatic mode is on
func (s *session) tick() error {
	if !s.auto {
		return nil
	}
	return s.world.Iterate()
}

func (s *session) title() string {
	title := fmt.Sprintf(" #%d", s.world.Generation())
	if s.renderer != nil {
		if x, y := s.renderer.Origin(); x != 0 || y != 0 {
			title += fmt.Sprintf(" @%d,%d", x, y)
		}
	}
	if s.auto {
		title += " - auto"
	}
	if s.highlight {
		title += " - highlight"
	}
	return title + " | space: auto  n: step  r: restart  h: highlight  arrows: scroll  q: quit"
}

// runInteractive draws the world on screen until the user quits
func runInteractive(s *session, screen tcell.Screen) error {
	s.renderer = model.NewTerminalRenderer(screen)

	var (
		events   = make(chan tcell.Event)
		done     = make(chan struct{})
		ticker   = time.NewTicker(frameDelay(s.config))
	)
	defer ticker.Stop()
	defer close(done)

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		if err := s.renderer.Display(s.world, s.highlight, s.title()); err != nil {
			s.logger.Warn("display failed", "error", err)
		}

		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				quit, err := s.handleKey(ev)
				if err != nil {
					return err
				}
				if quit {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			if err := s.tick(); err != nil {
				return err
			}
		}
	}
}
