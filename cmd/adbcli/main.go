package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/jarijaas/go-adbexec/cmd/adbcli/cmd"
)

func main() {
	log.SetFormatter(&log.TextFormatter{ForceColors: true})

	cmd.Execute()
}
