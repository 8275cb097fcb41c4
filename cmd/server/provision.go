package main

import (
	"github.com/spf13/cobra"
)

func newProvisionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "provision",
		Short: "Create the directory of every allowed category and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.images.Provision(cmd.Context()); err != nil {
				return err
			}
			a.log.Info().
				Str("base_dir", a.cfg.Storage.BaseDir).
				Strs("categories", a.cfg.Upload.AllowedCategories).
				Msg("provisioned image directories")
			return nil
		},
	}
}
