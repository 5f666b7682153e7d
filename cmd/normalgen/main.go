// Command normalgen generates tangent-space normal maps from color textures.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/gogpu/normalmap"
	"github.com/gogpu/normalmap/internal/config"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string
	var logFile string

	root := &cobra.Command{
		Use:          "normalgen",
		Short:        "Generate normal maps from color textures",
		Long:         "Derives a DirectX or OpenGL tangent-space normal map from the brightness of a texture, for single files or every material of a model manifest.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "Also append logs to this file")

	root.AddCommand(
		generateCmd(&logLevel, &logFile),
		batchCmd(&logLevel, &logFile),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "normalgen %s (%s/%s, %s)\n",
				normalmap.Version, runtime.GOOS, runtime.GOARCH, runtime.Version())
		},
	}
}

// setupLogging installs the package logger. Flag values override lc.
// The returned function closes the log file, if any.
func setupLogging(lc config.LoggingConfig, level, file string) (func() error, error) {
	if level != "" {
		lc.Level = level
	}
	if file != "" {
		lc.File = file
	}
	log, closeFn, err := lc.NewLogger(os.Stderr)
	if err != nil {
		return nil, err
	}
	normalmap.SetLogger(log)
	return closeFn, nil
}
