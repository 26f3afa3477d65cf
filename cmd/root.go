package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/chrisdamba/weaning/internal/changefeed"
	"github.com/chrisdamba/weaning/internal/logger"
	"github.com/chrisdamba/weaning/internal/models"
	"github.com/chrisdamba/weaning/internal/persistence"
	"github.com/chrisdamba/weaning/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app is what every subcommand runs against: the loaded config, the store
// and the observers writing its changes out.
type app struct {
	v       *viper.Viper
	cfgFile string
	now     func() time.Time

	cfg     *models.Config
	log     *logger.Logger
	adapter *persistence.Adapter
	feed    *changefeed.Publisher
	store   *store.Store
}

func newApp() *app {
	return &app{v: viper.New(), now: time.Now}
}

func (a *app) open(cmd *cobra.Command) error {
	cfg, err := models.LoadConfig(a.v, a.cfgFile)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	a.cfg = cfg

	level := logger.ParseLevel(cfg.LogLevel)
	if a.v.GetBool("verbose") {
		level = logger.LevelVerbose
	}
	a.log = logger.New(level, cmd.ErrOrStderr())
	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debug("using config file: %s", used)
	}

	selected := a.v.GetString("date")
	if selected == "" {
		selected = models.Today(a.now())
	} else if _, err := models.ParseDate(selected); err != nil {
		return err
	}

	ctx := cmd.Context()
	a.adapter, err = persistence.Open(ctx, cfg, a.log)
	if err != nil {
		return err
	}
	opts := []store.Option{
		store.WithClock(a.now),
		store.WithSelectedDate(selected),
		store.WithObserver(a.adapter),
	}
	a.feed, err = changefeed.Open(cfg.Kafka, a.log)
	if err != nil {
		a.log.Warn("change feed disabled: %v", err)
	} else if a.feed != nil {
		opts = append(opts, store.WithObserver(a.feed))
	}
	a.store = store.New(a.adapter.LoadState(ctx, cfg.WeightPerCube), opts...)
	return nil
}

func (a *app) close() error {
	if err := a.feed.Close(); err != nil {
		a.log.Warn("closing change feed: %v", err)
	}
	if a.adapter != nil {
		return a.adapter.Close()
	}
	return nil
}

// NewRootCmd builds the command tree. Each invocation loads every slot,
// runs one operation and lets the observers write the changed slots back.
func NewRootCmd() *cobra.Command {
	return newRootCmd(newApp())
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "weaning",
		Short: "Keeps track of a baby's weaning food",
		Long: `weaning is a CLI for planning and logging a baby's solid-food journey:
frozen food cubes and their expiry, meals fed per day, ingredient reactions,
grocery orders, preparation reminders and batch-cooking records.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.weaning.yaml)")
	flags.String("date", "", "selected date, YYYY-MM-DD (default today)")
	flags.BoolP("verbose", "v", false, "verbose logging")
	flags.String("storage", "", "storage driver: file, sqlite, postgres, s3, memory")

	_ = a.v.BindPFlag("date", flags.Lookup("date"))
	_ = a.v.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = a.v.BindPFlag("storage.driver", flags.Lookup("storage"))

	rootCmd.AddCommand(
		newCubeCmd(a),
		newMealCmd(a),
		newOrderCmd(a),
		newPrepCmd(a),
		newArchiveCmd(a),
		newStatusCmd(a),
		newWeightCmd(a),
		newDayCmd(a),
		newMonthCmd(a),
		newStatsCmd(a),
		newRecipeCmd(a),
		newExportCmd(a),
		newSeedCmd(a),
	)
	return rootCmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
