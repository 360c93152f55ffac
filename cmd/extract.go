package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mocapkit/amassget/common/progress"
	"github.com/mocapkit/amassget/core/extractor"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Unpack downloaded dataset archives",
	Long:  "Scan a directory for tar.bz2 archives and decompress each into the output directory, optionally in parallel and optionally deleting sources on success.",
	RunE:  runExtract,
}

func init() {
	flags := extractCmd.Flags()
	flags.StringP("config", "c", "config.json", "config file path")
	flags.String("input", "", "input directory (default: download output dir)")
	flags.String("output", "", "output directory (default: <download output dir>/extracted)")
	flags.IntP("workers", "w", 0, "parallel extraction workers (default: from config)")
	flags.Bool("delete", false, "delete source archives after successful extraction")
	flags.String("file", "", "extract a single archive instead of scanning")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	ctx, cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	logger := log.FromContext(ctx)

	inputDir, _ := cmd.Flags().GetString("input")
	if inputDir == "" {
		inputDir = cfg.DownloadSettings.OutputDir
	}
	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.ExtractOutputDir()
	}
	workers, _ := cmd.Flags().GetInt("workers")
	if workers <= 0 {
		workers = cfg.ExtractSettings.MaxWorkers
	}
	deleteAfter, _ := cmd.Flags().GetBool("delete")
	deleteAfter = deleteAfter || cfg.ExtractSettings.DeleteAfterExtract

	logger.Infof("input dir: %s", inputDir)
	logger.Infof("output dir: %s", outputDir)

	ex := extractor.New(progress.Detect(os.Stderr))

	if file, _ := cmd.Flags().GetString("file"); file != "" {
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("archive not found: %s", file)
		}
		if err := ex.ExtractArchive(ctx, file, outputDir); err != nil {
			return err
		}
		logger.Info("extraction complete")
		if deleteAfter {
			if err := os.Remove(file); err != nil {
				logger.Errorf("failed to delete %s: %v", file, err)
			} else {
				logger.Infof("deleted source archive: %s", file)
			}
		}
		return nil
	}

	archives, results, err := ex.ExtractAll(ctx, inputDir, outputDir, workers, deleteAfter)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}
	fmt.Println(renderSummary("Archive", archives, results))
	if anyFailed(results) {
		os.Exit(1)
	}
	return nil
}
