package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hark-back/internal/fontfetch"
)

var fontDir string

var fontCmd = &cobra.Command{
	Use:   "font",
	Short: "Manage overlay fonts",
}

var fontGetCmd = &cobra.Command{
	Use:   "get <family|url>",
	Short: "Download a Google Fonts family (or a .ttf/.otf/.zip URL) into the fonts folder",
	Long: `Download a font for the overlay. A family name such as "Inter" or "Open Sans" is
looked up in the google/fonts repository; a URL is downloaded as-is and zip archives are unpacked.
Set ui.font to the family name to use it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := fontfetch.New(log.Logger).Install(cmd.Context(), args[0], fontDir)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
		return nil
	},
}

func init() {
	fontGetCmd.Flags().StringVar(&fontDir, "dir", fontfetch.DefaultDir, "Destination folder")
	fontCmd.AddCommand(fontGetCmd)
	rootCmd.AddCommand(fontCmd)
}
