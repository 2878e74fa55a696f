package cmd

import (
	"errors"
	"fmt"

	"docln-downloader/epub"

	"github.com/spf13/cobra"
)

type packArgs struct {
	DirPath string
}

var (
	pArgs packArgs
)

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "pack an epub file from a working directory",
	Long:  "pack an existing epub_<id> working directory into docln_<id>.epub next to it",
	RunE:  runPackage,
}

func init() {
	packCmd.Flags().StringVarP(&pArgs.DirPath, "dir-path", "d", "", "directory path")
	RootCmd.AddCommand(packCmd)
}

func runPackage(cmd *cobra.Command, args []string) error {
	if pArgs.DirPath == "" {
		return errors.New("dir path is required")
	}
	savePath, err := epub.Archive(pArgs.DirPath)
	if err != nil {
		return fmt.Errorf("failed to create epub: %w", err)
	}
	fmt.Println(savePath)
	return nil
}
