package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/harrylevesque/ordercode/internal/api"
	"github.com/harrylevesque/ordercode/internal/config"
	"github.com/harrylevesque/ordercode/internal/form"
	"github.com/harrylevesque/ordercode/internal/push"
	"github.com/harrylevesque/ordercode/internal/utils"
	"github.com/harrylevesque/ordercode/internal/view"
)

const quitCommand = ":q"

func main() {
	configFlag := flag.String("config", "", "path to config file (default: ordercode.yaml at project root)")
	flag.Parse()

	if err := run(*configFlag); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(utils.ResolveConfigPath(configPath))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := utils.NewLogger(cfg.Env, os.Stderr)
	target := config.CurrentTarget()
	logger.Info("starting terminal client", "target", target.Name)

	scr := &screen{out: os.Stdout, viewport: cfg.ViewportLines}
	f := form.New(form.Config{
		PushURL: target.PushURL,
		Dialer:  push.WebsocketDialer{},
		Sender:  api.NewSender(target.SendURL, nil, logger),
		Alerter: scr,
		Logger:  logger,
	})
	scr.form = f

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := f.Mount(ctx); err != nil {
		return err
	}
	defer func() {
		if err := f.Unmount(); err != nil {
			logger.Warn("unmount", "error", err)
		}
	}()

	changes, unwatch := f.Watch()
	defer unwatch()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-changes:
				scr.draw()
			}
		}
	}()
	scr.draw()

	lines := readLines(os.Stdin)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok || line == quitCommand {
				return nil
			}
			scr.Alert("")
			go submit(ctx, f, line, logger)
		}
	}
}

func submit(ctx context.Context, f *form.OrderCodeForm, line string, logger *slog.Logger) {
	var alert *utils.AlertError
	if err := f.SubmitInput(ctx, line); err != nil && !errors.As(err, &alert) {
		logger.Error("submit", "error", err)
	}
}

func readLines(r io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			out <- strings.TrimRight(sc.Text(), "\r")
		}
	}()
	return out
}

// ===== Screen =====

// screen redraws the whole terminal frame and doubles as the form's Alerter.
// An alert stays on screen until the next submission attempt replaces it.
type screen struct {
	out      io.Writer
	viewport int
	form     *form.OrderCodeForm

	mu    sync.Mutex
	alert string
}

func (s *screen) Alert(message string) {
	s.mu.Lock()
	s.alert = message
	s.mu.Unlock()
	s.draw()
}

func (s *screen) draw() {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := view.Page{
		Input:  s.form.Input(),
		State:  s.form.State().String(),
		Alert:  s.alert,
		Groups: s.form.Grouped(),
	}
	fmt.Fprint(s.out, "\033[H\033[2J")
	if err := view.RenderText(s.out, p, s.viewport); err != nil {
		fmt.Fprintln(os.Stderr, "render:", err)
	}
	fmt.Fprintf(s.out, "type 4 digits and press Enter, %s to quit\n", quitCommand)
}
