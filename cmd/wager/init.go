package main

import (
	"github.com/spf13/cobra"

	"code.wagernet.io/wager/config"
	"code.wagernet.io/wager/logging"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file under the home directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.AtExit()
			path, err := config.Write(rootFlags.home, config.NewDefaultConfig())
			if err != nil {
				log.Error("could not initialise configuration", logging.Error(err))
				return err
			}
			log.Info("configuration generated", logging.String("path", path))
			return nil
		},
	}
}

func newLogger() *logging.Logger {
	if rootFlags.dev {
		return logging.NewDevLogger()
	}
	return logging.NewProdLogger()
}
