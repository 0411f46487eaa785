package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rainbowedu/rainbow/internal/config"
	"github.com/rainbowedu/rainbow/internal/logging"
	"github.com/rainbowedu/rainbow/internal/progress"
	"github.com/rainbowedu/rainbow/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "rainbow",
	Short: "Learning progress for young learners",
	Long:  "Rainbow is a terminal companion for Vietnamese letters, numbers and animals that remembers where each learner left off.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides RAINBOW_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ./rainbow.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(versionCmd)
}

// session bundles a loaded tracker with the resources behind it.
type session struct {
	cfg     *config.Config
	log     *logrus.Logger
	tracker *progress.Tracker
	closers []func() error
}

func (s *session) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}

// openSession loads config, builds the logger and KV backend, and loads the
// learner's progress. Logs go to logOut unless a log file is configured.
func openSession(cmd *cobra.Command, logOut io.Writer) (*session, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}

	logger, closeLog, err := logging.Open(cfg.Log, logOut)
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, log: logger, closers: []func() error{closeLog}}

	kv, closeKV, err := openKV(cmd, cfg.Storage)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.closers = append(s.closers, closeKV)

	s.tracker = progress.New(kv,
		progress.WithLogger(logger),
		progress.WithStorageKey(cfg.Storage.Key),
	)
	s.tracker.Load(cmd.Context())
	logger.WithFields(logrus.Fields{
		"driver":  cfg.Storage.Driver,
		"session": s.tracker.SessionID(),
	}).Debug("progress loaded")
	return s, nil
}

func openKV(cmd *cobra.Command, sc config.StorageConfig) (store.KV, func() error, error) {
	noop := func() error { return nil }

	switch sc.Driver {
	case config.DriverMemory:
		return store.NewMemoryKV(), noop, nil
	case config.DriverFile:
		dir := sc.DSN
		if dir == "" {
			dbPath, err := store.DefaultDBPath()
			if err != nil {
				return nil, nil, fmt.Errorf("resolve data directory: %w", err)
			}
			dir = filepath.Join(filepath.Dir(dbPath), "progress")
		}
		kv, err := store.NewFileKV(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("open file storage: %w", err)
		}
		return kv, noop, nil
	case config.DriverPostgres:
		st, err := store.OpenDriver(config.DriverPostgres, sc.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		return st, st.Close, nil
	default:
		dbPath, err := resolveDBPath(cmd, sc.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		return st, st.Close, nil
	}
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured DSN, then RAINBOW_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
