package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/lukaszgryglicki/orbittunnel/internal/orbit"
	"github.com/lukaszgryglicki/orbittunnel/internal/tunnel"
	"github.com/spf13/cobra"
)

const defaultConfig = "scenes/config.json"

var (
	debug   bool
	profile bool
	seed    int64
	rawOut  string

	stopProfile = func() {}
)

func cfgArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if _, err := os.Stat(defaultConfig); err == nil {
		return defaultConfig
	}
	return ""
}

func loadWithSeed(cmd *cobra.Command, path string) (*tunnel.Config, error) {
	cfg, err := tunnel.Load(path)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "orbittunnel",
		Short:         "Generate and render chaotic orbit tunnel levels",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			tunnel.Debug = debug || os.Getenv("DEBUG") != ""
			tunnel.PNG = os.Getenv("PNG") != ""
			tunnel.RAW = os.Getenv("RAW") != ""
			if tunnel.Debug {
				orbit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
			if profile || os.Getenv("PROFILE") != "" {
				f, err := os.Create("cpu.out")
				if err != nil {
					return err
				}
				if err := pprof.StartCPUProfile(f); err != nil {
					_ = f.Close()
					return err
				}
				stopProfile = func() {
					pprof.StopCPUProfile()
					_ = f.Close()
				}
			}
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging (also DEBUG=1)")
	root.PersistentFlags().BoolVar(&profile, "profile", false, "write a CPU profile to cpu.out (also PROFILE=1)")
	root.PersistentFlags().Int64Var(&seed, "seed", 0, "override the config seed, 0 seeds from the clock")

	render := &cobra.Command{
		Use:   "render [config]",
		Short: "Build the levels and write a GIF, or a PNG sequence with PNG=1",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadWithSeed(cmd, cfgArg(args))
			if err != nil {
				return err
			}
			written, err := tunnel.Render(cmd.Context(), cfg)
			for _, w := range written {
				fmt.Println(w)
			}
			return err
		},
	}

	dump := &cobra.Command{
		Use:   "dump [config]",
		Short: "Build the levels and write raw float32 coordinates",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadWithSeed(cmd, cfgArg(args))
			if err != nil {
				return err
			}
			return tunnel.Dump(cmd.Context(), cfg, rawOut)
		},
	}
	dump.Flags().StringVarP(&rawOut, "out", "o", "", "output file (default: rawOut from config)")

	view := &cobra.Command{
		Use:   "view [config]",
		Short: "Fly through the levels in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfgArg(args)
			if cmd.Flags().Changed("seed") {
				cfg, err := loadWithSeed(cmd, path)
				if err != nil {
					return err
				}
				return tunnel.RunViewConfig(cmd.Context(), cfg)
			}
			return tunnel.RunView(cmd.Context(), path)
		},
	}

	watch := &cobra.Command{
		Use:   "watch config",
		Short: "Re-render every time the config file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			load := func(path string) (*tunnel.Config, error) { return loadWithSeed(cmd, path) }
			return tunnel.RunWatch(cmd.Context(), args[0], load, func(err error) {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			})
		},
	}

	root.AddCommand(render, dump, view, watch)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err := newRootCmd().ExecuteContext(ctx)
	stopProfile()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
