package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"veld/internal/bspserver"
	"veld/internal/driver"
)

var bspNoCache bool

func init() {
	bspCmd.Flags().BoolVar(&bspNoCache, "no-cache", false, "disable the scan result cache")
}

var bspCmd = &cobra.Command{
	Use:          "bsp",
	Short:        "Run the Veld build server over stdio",
	SilenceUsage: true,
	RunE:         runBSP,
}

func runBSP(cmd *cobra.Command, _ []string) error {
	var cache *driver.Cache
	if !bspNoCache {
		opened, err := driver.OpenCache("veld")
		if err != nil {
			fmt.Fprintf(os.Stderr, "bsp: cache disabled: %v\n", err)
		} else {
			cache = opened
		}
	}
	server := bspserver.NewServer(os.Stdin, os.Stdout, bspserver.Options{Cache: cache})
	if err := server.Run(cmd.Context()); err != nil {
		if errors.Is(err, bspserver.ErrExit) {
			return nil
		}
		if errors.Is(err, bspserver.ErrExitWithoutShutdown) {
			return fmt.Errorf("bsp exit without shutdown")
		}
		return err
	}
	return nil
}
