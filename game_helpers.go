package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

// addWorldFlags registers the flags that override world settings
func addWorldFlags(cmd *cobra.Command) {
	cmd.Flags().Int("width", 0, "Cells per row")
	cmd.Flags().Int("height", 0, "Rows of cells")
	cmd.Flags().Int64("seed", 0, "Random seed (0 picks one from the clock)")
	cmd.Flags().Float64("density", 0, "Probability that a seeded cell starts alive")
	cmd.Flags().Int("workers", 0, "Goroutines per generation (0 = one per CPU, 1 = sequential)")
	cmd.Flags().String("pattern", "", "Pattern stamped at the centre after seeding")
	cmd.Flags().Bool("highlight", true, "Color newly born and newly dead cells")
}

// loadConfig reads the config file, falling back to defaults when it does
// not exist, then applies any flags the user set
func loadConfig(cmd *cobra.Command) (utils.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	config, err := utils.LoadConfig(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return config, err
		}
		config = utils.DefaultConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		config.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("width") {
		config.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("height") {
		config.Height, _ = flags.GetInt("height")
	}
	if flags.Changed("seed") {
		config.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("density") {
		config.Density, _ = flags.GetFloat64("density")
	}
	if flags.Changed("workers") {
		config.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("pattern") {
		config.Pattern, _ = flags.GetString("pattern")
	}
	if flags.Changed("highlight") {
		config.ShowBirthDeath, _ = flags.GetBool("highlight")
	}

	if err = config.Validate(func(name string) bool {
		_, ok := model.LookupPattern(name)
		return ok
	}); err != nil {
		return config, errors.Wrapf(err, "[loadConfig] invalid configuration in %s", path)
	}
	return config, nil
}

// initializeGame sets up the world described by config
func initializeGame(config utils.Config, logger *slog.Logger) (*model.World, error) {
	opts := []model.Option{
		model.WithLogger(logger),
		model.WithDensity(config.Density),
		model.WithWorkers(config.Workers),
		model.WithMaxCells(config.MaxCells),
	}
	if config.Seed != 0 {
		opts = append(opts, model.WithSeed(config.Seed))
	}
	if config.UseMemoryPool {
		opts = append(opts, model.WithPool(model.NewBitGridPool()))
	}

	world := model.NewWorld(opts...)
	if err := restartGame(world, config); err != nil {
		return nil, err
	}
	return world, nil
}

// restartGame creates a fresh world and stamps the configured pattern
func restartGame(world *model.World, config utils.Config) error {
	if err := world.Create(config.Width, config.Height); err != nil {
		return err
	}
	if config.Pattern == "" {
		return nil
	}

	pattern, ok := model.LookupPattern(config.Pattern)
	if !ok {
		return errors.Errorf("unknown pattern: %s", config.Pattern)
	}
	return world.PlaceCentered(pattern)
}

// formatStatus builds the one-line summary of the current generation
func formatStatus(snap model.Snapshot, stats *utils.Stats) string {
	cells := snap.Width * snap.Height
	density := 0.0
	if cells > 0 {
		density = float64(snap.Population) / float64(cells) * 100
	}
	return fmt.Sprintf("Gen: %d | Living: %d | Density: %.1f%% | Born: %d | Died: %d | %.1f gen/sec",
		snap.Generation, snap.Population, density, snap.Births, snap.Deaths, stats.GenerationsPerSecond)
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(population, stagnantCount int, config utils.Config) (bool, string) {
	if population == 0 {
		return true, "extinction"
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// displayFinalStats prints the summary shown when a run ends
func displayFinalStats(out io.Writer, stats *utils.Stats) {
	fmt.Fprintf(out, "Final stats: %d generations in %.1f seconds\n",
		stats.TotalGenerations, stats.Runtime().Seconds())
	fmt.Fprintf(out, "Average: %.1f gen/sec, %.1f avg population, %d births, %d deaths\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.TotalBirths, stats.TotalDeaths)
}

// frameDelay clamps the configured frame rate to something a ticker accepts
func frameDelay(config utils.Config) time.Duration {
	if config.FrameRate <= 0 {
		return time.Millisecond
	}
	return config.FrameRate
}

// stopOnSignal cancels ctx on SIGINT/SIGTERM
func stopOnSignal(ctx context.Context, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	notifySignals(sigChan)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()
}
