package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harrylevesque/ordercode/internal/api"
	"github.com/harrylevesque/ordercode/internal/config"
	"github.com/harrylevesque/ordercode/internal/form"
	"github.com/harrylevesque/ordercode/internal/push"
	"github.com/harrylevesque/ordercode/internal/utils"
	"github.com/harrylevesque/ordercode/internal/view"
)

func main() {
	configFlag := flag.String("config", "", "path to config file (default: ordercode.yaml at project root)")
	addrFlag := flag.String("addr", "", "override the GUI listen address")
	flag.Parse()

	if err := run(*configFlag, *addrFlag); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(configPath, addr string) error {
	cfg, err := config.Load(utils.ResolveConfigPath(configPath))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if addr == "" {
		addr = cfg.GUIAddr
	}
	logger := utils.NewLogger(cfg.Env, os.Stdout)
	target := config.CurrentTarget()

	flash := &view.Flash{}
	f := form.New(form.Config{
		PushURL: target.PushURL,
		Dialer:  push.WebsocketDialer{},
		Sender:  api.NewSender(target.SendURL, nil, logger),
		Alerter: flash,
		Logger:  logger,
	})

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

	server := &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(api.NewHandler(f, flash, logger)),
		ReadHeaderTimeout: 5 * time.Second,
		// event streams end with the process, not with Shutdown
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("GUI serving", "url", "http://"+addr, "target", target.Name)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("gui server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down GUI")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("gui shutdown: %w", err)
	}
	return nil
}
