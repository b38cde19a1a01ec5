package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/doccorpus/bitcode"
	"github.com/wippyai/doccorpus/build"
	"github.com/wippyai/doccorpus/config"
	"github.com/wippyai/doccorpus/merge"
	"github.com/wippyai/doccorpus/store"
)

// app carries state shared by every subcommand once flags are parsed.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	cfgFile string
	root    string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "doccorpus",
		Short:         "Build a documentation corpus from symbol containers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./.doccorpus.yaml)")
	flags.StringVar(&a.root, "root", ".", "directory holding .doccorpus.yaml")
	flags.String("input", "", "directory searched for unit containers")
	flags.String("db", "", "corpus database path")
	flags.Int("workers", 0, "parallel decode and merge workers (0 = GOMAXPROCS)")
	flags.String("log-level", "", "log level: debug, info, warn, error")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return a.init(cmd)
	}
	cmd.PersistentPostRun = func(*cobra.Command, []string) {
		if a.log != nil {
			_ = a.log.Sync()
		}
	}

	cmd.AddCommand(
		newBuildCmd(a),
		newDumpCmd(a),
		newSymbolsCmd(a),
		newBrowseCmd(a),
		newWatchCmd(a),
	)
	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	loader := config.NewLoader(a.root)
	if a.cfgFile != "" {
		loader.SetFile(a.cfgFile)
	}
	v := loader.Viper()
	flags := cmd.Flags()
	for key, flag := range map[string]string{
		"input.dir":     "input",
		"store.path":    "db",
		"build.workers": "workers",
		"log.level":     "log-level",
	} {
		if f := flags.Lookup(flag); f != nil && f.Changed {
			_ = v.BindPFlag(key, f)
		}
	}

	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log, err = newLogger(cfg.Log)
	if err != nil {
		return err
	}
	bitcode.SetLogger(a.log.Named("bitcode"))
	merge.SetLogger(a.log.Named("merge"))
	build.SetLogger(a.log.Named("build"))
	store.SetLogger(a.log.Named("store"))
	return nil
}

func newLogger(c config.LogConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = level
	return zc.Build()
}

func (a *app) buildOptions() build.Options {
	return build.Options{
		Dir:      a.cfg.Input.Dir,
		Include:  a.cfg.Input.Include,
		Exclude:  a.cfg.Input.Exclude,
		Version:  a.cfg.Decode.Version,
		Workers:  a.cfg.Build.Workers,
		Debounce: a.cfg.Watch.Debounce,
	}
}

func (a *app) openStore() (*store.Store, error) {
	return store.Open(a.cfg.Store.Path, store.WithCacheSize(a.cfg.Store.CacheSize))
}
