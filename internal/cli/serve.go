package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/promptink/promptink/pkg/art"
	"github.com/promptink/promptink/pkg/canvas"
	"github.com/promptink/promptink/pkg/errors"
	"github.com/promptink/promptink/pkg/export"
	"github.com/promptink/promptink/pkg/palette"
	"github.com/promptink/promptink/pkg/seed"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	listen string // HTTP listen address
	redis  string // Redis address for the shared palette cache, empty for in-process
}

// serveCommand creates the serve command that exposes rendering over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered artwork over HTTP",
		Long: `Serve starts an HTTP server with two endpoints:

  GET /v1/art?prompt=...      the rendered artwork as a PNG
  GET /v1/palette?prompt=...  the derived palette as JSON

Rendering is deterministic, so responses are safe to cache by URL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("listen") && cfg.Listen != "" {
				opts.listen = cfg.Listen
			}
			if !cmd.Flags().Changed("redis") && cfg.Redis != "" {
				opts.redis = cfg.Redis
			}
			if err := errors.ValidateListenAddr(opts.listen); err != nil {
				return err
			}
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.listen, "listen", "l", ":8080", "HTTP listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis address for a shared palette cache (host:port)")

	return cmd
}

// runServe builds the server and runs it until ctx is canceled, then
// shuts down gracefully.
func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	cache, err := buildPaletteCache(ctx, opts.redis)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              opts.listen,
		Handler:           newRouter(cache),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Listening on %s", opts.listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// buildPaletteCache selects the palette cache backend: Redis when an
// address is given, otherwise in-process memory.
func buildPaletteCache(ctx context.Context, addr string) (palette.Cache, error) {
	logger := loggerFromContext(ctx)
	if addr == "" {
		return palette.NewMemoryCache(), nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to redis at %s", addr)
	}
	logger.Infof("Using Redis palette cache at %s", addr)
	return palette.NewRedisCache(client), nil
}

// newRouter builds the chi router with request logging and recovery.
// Each request gets its own surface so concurrent renders never share
// pixel buffers; the palette cache is the only shared state.
func newRouter(cache palette.Cache) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/art", handleArt(cache))
		r.Get("/palette", handlePalette(cache))
	})

	return r
}

// handleHealth reports liveness.
func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintln(w, `{"status":"ok"}`)
}

// handleArt renders the prompt and responds with the PNG bytes.
func handleArt(cache palette.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		prompt := req.URL.Query().Get("prompt")

		renderer := art.New(
			art.WithSurface(canvas.NewImage()),
			art.WithCache(cache),
		)
		renderer.Render(prompt)

		data, err := export.PNG(renderer.Image())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("inline; filename=%q", export.Filename(prompt)+".png"))
		w.Write(data)
	}
}

// paletteResponse is the JSON body for the palette endpoint.
type paletteResponse struct {
	Prompt string   `json:"prompt"`
	Seed   uint32   `json:"seed"`
	Colors []string `json:"colors"`
}

// handlePalette derives the palette for the prompt and responds with JSON.
func handlePalette(cache palette.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		prompt := req.URL.Query().Get("prompt")

		renderer := art.New(art.WithCache(cache))
		pal := renderer.Palette(prompt)

		shown := strings.TrimSpace(prompt)
		if shown == "" {
			shown = art.DefaultPrompt
		}
		resp := paletteResponse{
			Prompt: shown,
			Seed:   seed.Hash(shown),
			Colors: pal[:],
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			writeError(w, http.StatusInternalServerError, err)
		}
	}
}

// writeError responds with a JSON error body.
func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
