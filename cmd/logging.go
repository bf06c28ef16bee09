package cmd

import (
	"os"

	"github.com/soypat/svo/log"
	"github.com/urfave/cli"
)

var logger = log.New("svo")

// setupLogging sends records to the app error writer so they never mix
// with command output on the app writer.
func setupLogging(ctx *cli.Context) error {
	if ctx.App.ErrWriter != nil {
		log.SetSink(ctx.App.ErrWriter)
	} else {
		log.SetSink(os.Stderr)
	}
	log.SetLevel(log.Notice)

	if name := ctx.GlobalString("log-level"); name != "" {
		level, err := log.ParseLevel(name)
		if err != nil {
			return err
		}
		log.SetLevel(level)
	}

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
	return nil
}
