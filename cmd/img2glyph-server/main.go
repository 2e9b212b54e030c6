// Command img2glyph-server serves glyph mosaic rendering over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/wbrown/img2glyph"
	"github.com/wbrown/img2glyph/server"
)

type Options struct {
	Addr      string `short:"a" long:"addr" description:"Address to listen on" default:":8000"`
	MaxUpload int64  `long:"max-upload" description:"Maximum upload size in bytes" default:"10485760"`
	Font      string `long:"font" description:"Font file to try before the platform fonts"`
	Quiet     bool   `short:"q" long:"quiet" description:"Do not log requests"`
}

func main() {
	var opts Options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(1)
	}

	logger := log.New(os.Stderr, "img2glyph-server: ", log.LstdFlags)

	hopts := []server.Option{server.WithMaxUpload(opts.MaxUpload)}
	if !opts.Quiet {
		hopts = append(hopts, server.WithLogger(logger))
	}
	if opts.Font != "" {
		hopts = append(hopts, server.WithResolverOptions(img2glyph.WithFontPath(opts.Font)))
	}

	srv := &http.Server{
		Addr:         opts.Addr,
		Handler:      server.New(hopts...),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("listening on %s", opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: shutdown: %v\n", err)
			os.Exit(1)
		}
		logger.Printf("stopped")
	}
}
