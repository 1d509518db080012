package cmd

import (
	"fmt"
	"os"

	"objectio/core/logger"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var bucketFlag string

// errAbsent makes the process exit with status 1 without logging a failure.
var errAbsent = errors.New("object absent")

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "objectio",
	Short: "Typed object storage tool",
	Long: `objectio reads, writes and inspects typed objects (tables, JSON, arrays)
stored in S3-compatible object storage.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		if errors.Is(err, errAbsent) {
			os.Exit(1)
		}

		// Console encoding at debug level gives readable ISO8601 timestamps
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&bucketFlag, "bucket", "", "bucket to use instead of the configured default")
}
