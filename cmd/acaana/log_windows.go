package main

import (
	"github.com/mattn/go-colorable"
	log "github.com/sirupsen/logrus"
)

func init() {
	formatter := &log.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	}
	log.SetFormatter(formatter)
	log.SetOutput(colorable.NewColorableStdout())
}
