package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/mocapkit/amassget/common"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Print the version number of amassget",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("amassget version: %s %s/%s\nBuildTime: %s, Commit: %s\n",
			common.Version, runtime.GOOS, runtime.GOARCH, common.BuildTime, common.GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
