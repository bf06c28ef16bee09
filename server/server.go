// Package server serves sparse voxel octrees of a fixed mesh over HTTP
// and WebSocket.
package server

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/soypat/svo"
	"github.com/soypat/svo/log"
	"gonum.org/v1/gonum/spatial/r3"
)

var logger = log.New("server")

// Options configures a Service.
type Options struct {
	// MaxDepth is the deepest octree a client may request.
	MaxDepth int
	// Concurrency is passed on to svo.Builder.
	Concurrency int
}

// Result is the outcome of a single octree build.
type Result struct {
	ID       uuid.UUID     `json:"id"`
	Depth    int           `json:"depth"`
	Duration time.Duration `json:"duration_ns"`
	Stats    svo.TreeStats `json:"stats"`
	Leaves   []r3.Box      `json:"leaves"`

	root svo.Node
}

// Root returns the root of the built octree.
func (r Result) Root() svo.Node { return r.root }

// Service builds octrees of a mesh on demand. It is safe for concurrent use.
type Service struct {
	box       r3.Box
	triangles []svo.Triangle
	opts      Options
}

// NewService returns a Service building octrees over box from triangles.
// The mesh is validated once so later builds only fail on bad depths.
func NewService(triangles []svo.Triangle, box r3.Box, opts Options) (*Service, error) {
	if opts.MaxDepth < 0 {
		return nil, fmt.Errorf("%w: negative max depth %d", svo.ErrInvalidArgument, opts.MaxDepth)
	}
	if _, err := svo.Build(box, triangles, 0); err != nil {
		return nil, err
	}
	return &Service{
		box:       box,
		triangles: triangles,
		opts:      opts,
	}, nil
}

// MaxDepth returns the deepest octree the service builds.
func (s *Service) MaxDepth() int { return s.opts.MaxDepth }

// Build constructs a fresh octree of the given depth. Builds never share
// state so concurrent calls are independent.
func (s *Service) Build(depth int) (Result, error) {
	start := time.Now()
	if depth < 0 || depth > s.opts.MaxDepth {
		err := fmt.Errorf("%w: depth %d outside [0, %d]", svo.ErrInvalidArgument, depth, s.opts.MaxDepth)
		instrumentBuild(depth, start, svo.TreeStats{}, err)
		return Result{}, err
	}
	b := svo.Builder{Concurrency: s.opts.Concurrency}
	root, err := b.Build(s.box, s.triangles, depth)
	if err != nil {
		instrumentBuild(depth, start, svo.TreeStats{}, err)
		return Result{}, err
	}
	leaves := svo.CollectLeaves(root)
	res := Result{
		ID:       uuid.New(),
		Depth:    depth,
		Duration: time.Since(start),
		Stats:    svo.Stats(root),
		Leaves:   make([]r3.Box, len(leaves)),
		root:     root,
	}
	for i, leaf := range leaves {
		res.Leaves[i] = leaf.Bounds()
	}
	instrumentBuild(depth, start, res.Stats, nil)
	logger.Infof("build %s: depth %d, %d nodes, %d leaves in %s", res.ID, depth, res.Stats.Nodes, res.Stats.Leaves, res.Duration)
	return res, nil
}
