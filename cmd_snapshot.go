package main

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Write a PNG of the world after a number of generations",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			generations, _ := cmd.Flags().GetInt("generations")
			out, _ := cmd.Flags().GetString("out")
			scale, _ := cmd.Flags().GetInt("scale")
			if generations < 0 {
				return errors.Errorf("generations must be non-negative, got %d", generations)
			}
			if scale < 1 {
				return errors.Errorf("scale must be at least 1, got %d", scale)
			}

			world, err := initializeGame(config, utils.NewLogger(config.LogLevel, cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer world.Destroy()

			for range generations {
				if err = world.Iterate(); err != nil {
					return err
				}
			}

			if err = writeSnapshot(world, out, scale, config.ShowBirthDeath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote generation %d to %s\n", world.Generation(), out)
			return nil
		},
	}

	addWorldFlags(cmd)
	cmd.Flags().IntP("generations", "g", 0, "Generations to compute before rendering")
	cmd.Flags().StringP("out", "o", "life.png", "Output PNG path")
	cmd.Flags().Int("scale", 4, "Pixels per cell")
	return cmd
}

// renderImage renders the world with every cell drawn as a scale x scale square
func renderImage(world *model.World, scale int, highlight bool) (*image.RGBA, error) {
	width, height := world.Size()
	cells := image.NewRGBA(image.Rect(0, 0, width, height))
	if err := world.RenderToImage(cells, highlight); err != nil {
		return nil, err
	}
	if scale == 1 {
		return cells, nil
	}

	img := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	for y := range height * scale {
		for x := range width * scale {
			src := cells.PixOffset(x/scale, y/scale)
			dst := img.PixOffset(x, y)
			copy(img.Pix[dst:dst+4], cells.Pix[src:src+4])
		}
	}
	return img, nil
}

func writeSnapshot(world *model.World, path string, scale int, highlight bool) error {
	img, err := renderImage(world, scale, highlight)
	if err != nil {
		return errors.Wrap(err, "[writeSnapshot] failed to render")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "[writeSnapshot] failed to create file: %s", path)
	}
	if err = png.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrapf(err, "[writeSnapshot] failed to encode png: %s", path)
	}
	return errors.Wrapf(f.Close(), "[writeSnapshot] failed to close file: %s", path)
}
