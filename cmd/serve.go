package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/soypat/svo/server"
	"github.com/urfave/cli"
)

// Serve starts the octree HTTP server and blocks until interrupted.
func Serve(ctx *cli.Context) error {
	conf, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	triangles, box, err := loadMesh(conf.MeshPath)
	if err != nil {
		return err
	}

	svc, err := server.NewService(triangles, box, server.Options{
		MaxDepth:    conf.MaxDepth,
		Concurrency: conf.Concurrency,
	})
	if err != nil {
		return err
	}

	sigCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	server.ListenAndServe(sigCtx, &http.Server{
		Addr:    conf.Addr,
		Handler: svc.Handler(),
	})
	return nil
}
