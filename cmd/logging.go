package cmd

import (
	"github.com/auriga-render/auriga/log"
	"github.com/urfave/cli"
)

var logger = log.New("auriga")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
