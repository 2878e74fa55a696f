package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"docln-downloader/config"
	"docln-downloader/downloader"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download [novel-id...]",
	Short: "Download novels as epub",
	Long:  "Download every volume of the given novels and pack each novel into docln_<id>.epub",
	RunE:  runDownload,
}

type downloadArgs struct {
	NovelId int
}

var dArgs downloadArgs

func init() {
	downloadCmd.Flags().IntVarP(&dArgs.NovelId, "novel-id", "n", 0, "novel id")
	downloadCmd.Flags().Bool("text", false, "also export chapters as plain text")
	cobra.CheckErr(config.BindFlags(v, downloadCmd.Flags()))
	RootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	novelIds, err := parseNovelIds(dArgs.NovelId, args)
	if err != nil {
		return err
	}

	var errs []error
	for _, novelId := range novelIds {
		savePath, err := downloader.DownloadNovel(cmd.Context(), cfg, novelId)
		if err != nil {
			log.Error("Failed to download novel", "id", novelId, "err", err)
			errs = append(errs, fmt.Errorf("novel %d: %w", novelId, err))
			continue
		}
		fmt.Println(savePath)
		if cmd.Context().Err() != nil {
			break
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to download novel: %w", errors.Join(errs...))
	}
	return nil
}

func parseNovelIds(flagId int, args []string) ([]int, error) {
	novelIds := []int{}
	if flagId != 0 {
		novelIds = append(novelIds, flagId)
	}
	for _, arg := range args {
		novelId, err := strconv.Atoi(arg)
		if err != nil || novelId <= 0 {
			return nil, fmt.Errorf("invalid novel id %q", arg)
		}
		novelIds = append(novelIds, novelId)
	}
	if len(novelIds) == 0 {
		return nil, errors.New("novel id is required")
	}
	return novelIds, nil
}
