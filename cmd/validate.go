package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/trafikskolan/supportbot/config"
	"github.com/trafikskolan/supportbot/internal/catalog"
)

func validateCMD() *cobra.Command {
	var cfgPath string
	var validate = &cobra.Command{
		Use:   "validate",
		Short: "Load the knowledge directory and report what it produces",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)

			snap, err := catalog.Load(cfg.Knowledge.Dir, log.New(cmd.OutOrStdout(), "", 0))
			if err != nil {
				return err
			}
			if snap.Len() == 0 {
				return fmt.Errorf("knowledge dir %q produced no chunks", cfg.Knowledge.Dir)
			}
			for _, city := range snap.Cities() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", city, snap.Offices(city))
			}
			return nil
		},
	}
	validate.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")

	return validate
}
