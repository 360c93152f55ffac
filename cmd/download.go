package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mocapkit/amassget/common/progress"
	"github.com/mocapkit/amassget/common/utils/netutil"
	"github.com/mocapkit/amassget/core/amass"
	"github.com/mocapkit/amassget/core/downloader"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download AMASS dataset archives",
	Long:  "Download the configured dataset archives from the AMASS portal, authenticating with session cookies from the configured cookie file.",
	RunE:  runDownload,
}

func init() {
	flags := downloadCmd.Flags()
	flags.StringP("config", "c", "config.json", "config file path")
	flags.String("dataset", "", "download a single dataset instead of the configured list")
	flags.Bool("list", false, "list the known dataset catalog and exit")
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, _ []string) error {
	if list, _ := cmd.Flags().GetBool("list"); list {
		fmt.Println(renderCatalog())
		return nil
	}

	ctx, cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	logger := log.FromContext(ctx)

	cookies, err := netutil.ParseCookieFile(cfg.DownloadSettings.CookieFile)
	switch {
	case os.IsNotExist(err):
		logger.Warnf("cookie file not found: %s", cfg.DownloadSettings.CookieFile)
	case err != nil:
		return fmt.Errorf("load cookies: %w", err)
	default:
		logger.Infof("loaded %d cookies from %s", len(cookies), cfg.DownloadSettings.CookieFile)
	}

	dl := downloader.New(cfg, cookies, progress.Detect(os.Stderr))

	if dataset, _ := cmd.Flags().GetString("dataset"); dataset != "" {
		if err := dl.DownloadDataset(ctx, dataset); err != nil {
			return err
		}
		logger.Info("download complete")
		return nil
	}

	if len(cfg.DownloadOptions.Datasets) == 0 {
		return fmt.Errorf("no datasets configured in download_options.datasets")
	}

	results := dl.DownloadAll(ctx)
	fmt.Println(renderSummary("Dataset", cfg.DownloadOptions.Datasets, results))
	if anyFailed(results) {
		os.Exit(1)
	}
	return nil
}

func renderCatalog() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Dataset"})
	for _, name := range amass.Datasets() {
		tw.AppendRow(table.Row{name})
	}
	return tw.Render()
}
