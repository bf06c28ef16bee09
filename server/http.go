package server

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
	"github.com/soypat/svo"
	"github.com/soypat/svo/render"
	"golang.org/x/net/websocket"
	"gonum.org/v1/gonum/spatial/r3"
)

// Handler returns the HTTP routes of the service:
//
//	GET /svo?depth=N                 octree leaves and stats as JSON
//	GET /preview?depth=N             PNG rendering of the octree leaves
//	GET /nearest?depth=N&x=&y=&z=    leaf closest to a point
//	GET /ws                          WebSocket rebuild stream
//	GET /health
//	GET /metrics
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/svo", s.handleBuild)
	mux.HandleFunc("/preview", s.handlePreview)
	mux.HandleFunc("/nearest", s.handleNearest)
	mux.Handle("/ws", websocket.Handler(s.handleWebSocket))
	mux.HandleFunc("/health", HandleHealthCheck)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// ListenAndServe runs servers until ctx is done, then shuts them down.
func ListenAndServe(ctx context.Context, servers ...*http.Server) {
	go func() {
		<-ctx.Done()

		for _, s := range servers {
			if err := s.Shutdown(context.Background()); err != nil {
				logger.Warningf("shutting down the server at %s failed: %v", s.Addr, err)
			}
		}
	}()

	var wg sync.WaitGroup

	for _, s := range servers {
		wg.Add(1)

		go func(s *http.Server) {
			defer wg.Done()

			logger.Noticef("starting server at %s", s.Addr)

			switch err := s.ListenAndServe(); err {
			case nil, http.ErrServerClosed, context.Canceled:
				logger.Noticef("stopping server at %s", s.Addr)

			default:
				logger.Warningf("server at %s stopped: %v", s.Addr, err)
			}
		}(s)
	}

	wg.Wait()
}

func HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Service) handleBuild(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	res, err := s.buildFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Service) handlePreview(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	res, err := s.buildFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	img, err := render.RenderImage(render.LeafTriangles(res.Root()), render.DefaultView)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if err := png.Encode(w, img); err != nil {
		logger.Warningf("writing preview of build %s failed: %v", res.ID, err)
	}
}

type nearestResponse struct {
	ID       string  `json:"id"`
	Box      r3.Box  `json:"box"`
	Distance float64 `json:"distance"`
}

func (s *Service) handleNearest(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	var p r3.Vec
	for _, c := range []struct {
		key string
		dst *float64
	}{{"x", &p.X}, {"y", &p.Y}, {"z", &p.Z}} {
		v, err := strconv.ParseFloat(r.URL.Query().Get(c.key), 64)
		if err != nil {
			writeError(w, fmt.Errorf("%w: bad %s coordinate: %v", svo.ErrInvalidArgument, c.key, err))
			return
		}
		*c.dst = v
	}
	res, err := s.buildFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	box, dist := render.NewLeafIndex(res.Root()).Nearest(p)
	writeJSON(w, http.StatusOK, nearestResponse{
		ID:       res.ID.String(),
		Box:      box,
		Distance: dist,
	})
}

func (s *Service) buildFromQuery(r *http.Request) (Result, error) {
	q := r.URL.Query().Get("depth")
	if q == "" {
		return Result{}, fmt.Errorf("%w: missing depth parameter", svo.ErrInvalidArgument)
	}
	depth, err := strconv.Atoi(q)
	if err != nil {
		return Result{}, fmt.Errorf("%w: bad depth %q", svo.ErrInvalidArgument, q)
	}
	return s.Build(depth)
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	return false
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps invalid argument errors to 400 and everything else to 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, svo.ErrInvalidArgument) {
		status = http.StatusBadRequest
	} else {
		logger.Error(err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		logger.Errorf("encoding response failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}
