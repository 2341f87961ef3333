package cmd

import (
	"fmt"

	"promptcat/pkg/version"

	"github.com/spf13/cobra"
)

// versionCmd displays the build information embedded at compile time.
// The --short flag prints a concise version string.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version of promptcat",
	Long:  `Display the current version information of the promptcat CLI tool.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		short, err := cmd.Flags().GetBool("short")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}

		v := version.Get()

		if short {
			fmt.Println(v.Version)
		} else {
			fmt.Println(v.String())
		}

		return nil
	},
}

func init() {
	versionCmd.Flags().BoolP("short", "s", false, "Print the version number only")

	rootCmd.AddCommand(versionCmd)
}
