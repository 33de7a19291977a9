package main

import (
	"os"

	"github.com/md-abdullah-92/edurecords/internal/pkg/logger"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
