package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/ampkit-dev/ampkit/pkg/dom"
	"github.com/ampkit-dev/ampkit/pkg/engine"
	"github.com/ampkit-dev/ampkit/pkg/media"
	"github.com/ampkit-dev/ampkit/pkg/plugins/metrics"
	"github.com/ampkit-dev/ampkit/pkg/plugins/tracing"
	"github.com/ampkit-dev/ampkit/pkg/remote"
	"github.com/ampkit-dev/ampkit/pkg/render"
)

func serveCmd() *cobra.Command {
	var (
		addr     string
		s3Bucket string
		s3Prefix string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo player",
		Long: `Serve the demo player.

The player tree is materialized by the engine and rendered
server-side at /. Connected shells receive live patches over /ws,
and Prometheus metrics are exposed at /metrics.

Examples:
  ampkit serve
  ampkit serve --addr=:9090
  ampkit serve --s3-bucket=my-tracks --s3-prefix=albums/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, s3Bucket, s3Prefix)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Address to listen on")
	cmd.Flags().StringVar(&s3Bucket, "s3-bucket", "", "S3 bucket to resolve tracks from (default: built-in demo tracks)")
	cmd.Flags().StringVar(&s3Prefix, "s3-prefix", "tracks/", "Key prefix for S3 tracks")

	return cmd
}

func runServe(addr, s3Bucket, s3Prefix string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	library, err := buildLibrary(s3Bucket, s3Prefix)
	if err != nil {
		return err
	}
	tracks, err := library.List(context.Background())
	if err != nil {
		return fmt.Errorf("list tracks: %w", err)
	}

	hub := remote.NewHub(logger)
	defer hub.Close()

	engine.RegisterPlugin(metrics.New(), engine.WithPriority(10))
	engine.RegisterPlugin(tracing.New())
	engine.RegisterPlugin(remote.NewPlugin(hub, logger))

	doc := dom.NewDocument()
	host := doc.CreateElement("body")
	inst, err := engine.New(playerDef(tracks), engine.Config{
		Document: doc,
		Logger:   logger,
		Mount:    &engine.MountOptions{Target: host},
	})
	if err != nil {
		return fmt.Errorf("materialize player: %w", err)
	}
	defer inst.Destroy()

	renderer := render.New(render.Config{Pretty: true})

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, "<!DOCTYPE html>\n<html>\n<head><title>AmpKit</title></head>\n<body>\n<div id=\"host\">\n")
		if err := renderer.RenderToWriter(w, inst.Root().Node); err != nil {
			logger.Error("render failed", "error", err)
		}
		io.WriteString(w, "</div>\n"+shellScript+"</body>\n</html>\n")
	})
	r.Get("/tracks", func(w http.ResponseWriter, req *http.Request) {
		list, err := library.List(req.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(list)
	})
	r.Get("/tracks/{id}", func(w http.ResponseWriter, req *http.Request) {
		track, err := library.Resolve(req.Context(), chi.URLParam(req, "id"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(track)
	})
	r.Handle("/ws", hub)
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	printBanner()
	logger.Info("serving demo player", "addr", addr, "tracks", len(tracks))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

// buildLibrary picks the S3 library when a bucket is configured, the
// built-in demo list otherwise.
func buildLibrary(bucket, prefix string) (media.Library, error) {
	if bucket == "" {
		return media.NewStaticLibrary(
			media.Track{ID: "first-light.mp3", Title: "First Light", ContentType: "audio/mpeg", URL: "/static/first-light.mp3"},
			media.Track{ID: "night-drive.mp3", Title: "Night Drive", ContentType: "audio/mpeg", URL: "/static/night-drive.mp3"},
		), nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return media.NewS3Library(client, s3.NewPresignClient(client), bucket, prefix), nil
}

// playerDef builds the demo player definition: a title bar with an inline
// SVG icon, the audio element, and the track list.
func playerDef(tracks []media.Track) *engine.NodeDef {
	items := make([]*engine.NodeDef, 0, len(tracks))
	for _, t := range tracks {
		track := t
		items = append(items, engine.El("li", engine.Props{
			"class":      "track",
			"data-track": track.ID,
			"click": func(ev *dom.Event) {
				slog.Info("track selected", "track", track.ID)
			},
		}, engine.Text(track.Title)))
	}

	icon := engine.El("svg", engine.Props{
		"viewBox": "0 0 24 24", "width": "24", "height": "24",
	},
		engine.El("path", engine.Props{"d": "M8 5v14l11-7z"}),
	)

	var src string
	if len(tracks) > 0 {
		src = tracks[0].URL
	}
	audio := &engine.NodeDef{
		Tag: "audio",
		Ref: "player",
		Props: engine.Props{
			"src":      src,
			"controls": true,
			"volume":   0.8,
		},
	}

	return engine.El("div", engine.Props{"class": "ampkit-player"},
		engine.El("header", nil, icon, engine.El("h1", nil, engine.Text("AmpKit"))),
		audio,
		engine.El("ul", engine.Props{"class": "tracks"}, items),
	)
}

const shellScript = `<script>
(function () {
  var proto = location.protocol === "https:" ? "wss:" : "ws:";
  var ws = new WebSocket(proto + "//" + location.host + "/ws");
  ws.onmessage = function (msg) {
    var patches = JSON.parse(msg.data);
    patches.forEach(function (p) {
      var el = document.getElementById(p.id);
      switch (p.op) {
      case "insert":
        var parent = document.getElementById(p.parentId) || document.body;
        parent.insertAdjacentHTML("beforeend", p.html);
        break;
      case "remove":
        if (el) el.remove();
        break;
      case "replace":
        if (el) el.outerHTML = p.html;
        break;
      case "set-text":
        if (el) el.textContent = p.value;
        break;
      case "set-attr":
        if (el) el.setAttribute(p.key, p.value);
        break;
      }
    });
  };
})();
</script>
`
