package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"veld/internal/driver"
	"veld/internal/observ"
	"veld/internal/project"
	"veld/internal/protocol"
	"veld/internal/report"
)

var (
	compileJobs     int
	compileNoCache  bool
	compileCacheDir string
	compileOrigin   string
)

func init() {
	compileCmd.Flags().IntVar(&compileJobs, "jobs", 0, "number of parallel workers (0 = all CPUs)")
	compileCmd.Flags().BoolVar(&compileNoCache, "no-cache", false, "disable the scan result cache")
	compileCmd.Flags().StringVar(&compileCacheDir, "cache-dir", "", "override the scan cache directory")
	compileCmd.Flags().StringVar(&compileOrigin, "origin", "", "origin id echoed on all notifications")
}

var compileCmd = &cobra.Command{
	Use:          "compile [dir]",
	Short:        "Compile the target and print its diagnostics",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runCompile,
}

func runCompile(cmd *cobra.Command, args []string) error {
	startDir := "."
	if len(args) == 1 {
		startDir = args[0]
	}
	quiet, _ := cmd.Flags().GetBool("quiet")
	timings, _ := cmd.Flags().GetBool("timings")

	timer := observ.NewTimer()
	loadPhase := timer.Begin("load target")
	target, err := project.LoadTarget(startDir)
	timer.End(loadPhase, "")
	if err != nil {
		return err
	}

	var cache *driver.Cache
	if !compileNoCache {
		open := func() (*driver.Cache, error) {
			if compileCacheDir != "" {
				return driver.OpenCacheAt(compileCacheDir)
			}
			return driver.OpenCache("veld")
		}
		if opened, cacheErr := open(); cacheErr == nil {
			cache = opened
		}
	}

	console := newConsoleNotifier(cmd.OutOrStdout(), quiet)
	reporter := report.New(console, report.Options{
		Target:      target.ID,
		DisplayName: target.Name,
		TaskID:      protocol.TaskID{ID: "cli-compile"},
		OriginID:    compileOrigin,
	})

	compilePhase := timer.Begin("compile")
	err = driver.Compile(cmd.Context(), target, reporter, driver.Options{
		Jobs:  compileJobs,
		Cache: cache,
	})
	timer.End(compilePhase, fmt.Sprintf("%d files", console.documents()))
	if err != nil {
		return err
	}

	if timings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	if reporter.Status() == protocol.StatusError {
		return fmt.Errorf("compilation failed")
	}
	return nil
}
