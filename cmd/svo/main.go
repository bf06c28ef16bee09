package main

import (
	"os"

	"github.com/soypat/svo/cmd"
	"github.com/soypat/svo/log"
)

func main() {
	if err := cmd.NewApp().Run(os.Args); err != nil {
		log.New("svo").Error(err)
		os.Exit(1)
	}
}
