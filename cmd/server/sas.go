package main

import (
	"errors"
	"fmt"

	"github.com/resumedash/internal/blob"
	"github.com/resumedash/internal/config"
	"github.com/spf13/cobra"
)

var sasCmd = &cobra.Command{
	Use:   "sas",
	Short: "Print a short-lived SAS URL for the images container",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// sas 不签发会话，不需要 SESSION_SECRET
		cfg, err := config.LoadTooling()
		if err != nil {
			return err
		}
		if cfg.Storage.ConnectionString == "" {
			return errors.New("AZURE_STORAGE_CONNECTION_STRING is not set")
		}
		signer, err := blob.NewSigner(cfg.Storage.ConnectionString)
		if err != nil {
			return err
		}
		sasURL, err := signer.ContainerSASURL(cmd.Context(), blob.ImagesContainer)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), sasURL)
		return nil
	},
}
