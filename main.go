package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nstehr/goose/agent"
	"github.com/nstehr/goose/ipc"
	"github.com/nstehr/goose/rules"
)

const banner = `
 ██████╗  ██████╗  ██████╗ ███████╗███████╗
██╔════╝ ██╔═══██╗██╔═══██╗██╔════╝██╔════╝
██║  ███╗██║   ██║██║   ██║███████╗█████╗
██║   ██║██║   ██║██║   ██║╚════██║██╔══╝
╚██████╔╝╚██████╔╝╚██████╔╝███████║███████╗
 ╚═════╝  ╚═════╝  ╚═════╝ ╚══════╝╚══════╝

Turn-Planned Robot Swarm`

func main() {
	socketPath := flag.String("socket", "/tmp/goose.sock", "unix socket path")
	wsAddr := flag.String("ws", "", "websocket listen address (empty disables)")
	profilePath := flag.String("profile", "", "YAML profile; built-in goose profile if empty")
	verbose := flag.Bool("v", false, "log every rule firing")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	profile := rules.DefaultProfile()
	if *profilePath != "" {
		p, err := rules.LoadProfile(*profilePath)
		if err != nil {
			slog.Error("failed to load profile", "path", *profilePath, "error", err)
			os.Exit(1)
		}
		profile = p
	}
	engine, err := rules.NewEngine(profile)
	if err != nil {
		slog.Error("failed to build rule engine", "profile", profile.Name, "error", err)
		os.Exit(1)
	}
	slog.Info("starting goose", "profile", profile.Name, "mode", profile.Mode, "rules", engine.Rules())

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(*socketPath); err != nil {
		slog.Error("failed to clean up socket", "path", *socketPath, "error", err)
		os.Exit(1)
	}

	listener, err := net.Listen("unix", *socketPath)
	if err != nil {
		slog.Error("failed to listen on socket", "path", *socketPath, "error", err)
		os.Exit(1)
	}
	defer os.Remove(*socketPath)

	slog.Info("listening on domain socket", "path", *socketPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		acceptLoop(ctx, listener, engine)
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		return listener.Close()
	})

	if *wsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/ws", ipc.WebSocketHandler(func(tr ipc.Transport) {
			agent.Serve(tr, engine)
		}))
		srv := &http.Server{Addr: *wsAddr, Handler: mux}

		eg.Go(func() error {
			slog.Info("listening for websockets", "addr", *wsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("websocket server: %w", err)
			}
			return nil
		})
		eg.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if err := eg.Wait(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("shutting down")
}

func acceptLoop(ctx context.Context, listener net.Listener, engine *rules.Engine) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				slog.Error("failed to accept connection", "error", err)
				continue
			}
		}
		slog.Info("new connection accepted")
		go agent.Serve(ipc.NewStreamTransport(conn), engine)
	}
}
