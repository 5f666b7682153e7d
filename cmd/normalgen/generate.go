package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/normalmap"
	"github.com/gogpu/normalmap/internal/config"
	"github.com/gogpu/normalmap/internal/image"
)

func generateCmd(logLevel, logFile *string) *cobra.Command {
	var (
		strength   float64
		flip       bool
		convention string
		bitDepth   int
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "generate <input> <output>",
		Short: "Generate the normal map of one texture",
		Long:  "Reads a PNG, JPEG, BMP, TIFF or WebP texture and writes its normal map. The output format follows the output file extension (png, tif, bmp).",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			closeLog, err := setupLogging(config.Default().Logging, *logLevel, *logFile)
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			conv, err := normalmap.ParseConvention(convention)
			if err != nil {
				return err
			}

			gen, err := normalmap.NewGenerator(
				normalmap.WithStrength(strength),
				normalmap.WithFlip(flip),
				normalmap.WithConvention(conv),
				normalmap.WithWorkers(workers),
			)
			if err != nil {
				return err
			}
			defer gen.Close()

			start := time.Now()
			src, err := image.Load(args[0])
			if err != nil {
				return err
			}

			pix, err := gen.Generate(src.Pix, src.Width, src.Height)
			if err != nil {
				return err
			}

			out, err := image.WrapFloatImage(pix, src.Width, src.Height)
			if err != nil {
				return err
			}
			if err := out.Save(args[1], image.EncodeOptions{BitDepth: bitDepth}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d, %s) in %s\n",
				args[1], src.Width, src.Height, conv, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().Float64Var(&strength, "strength", normalmap.DefaultStrength, "Gradient amplification, greater than 0")
	cmd.Flags().BoolVar(&flip, "flip", false, "Invert the relief")
	cmd.Flags().StringVar(&convention, "convention", "directx", "Green channel convention: directx or opengl")
	cmd.Flags().IntVar(&bitDepth, "bit-depth", 8, "Bits per channel: 8 or 16 (png, tiff)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Goroutines per image, 0 for all CPUs")
	return cmd
}
