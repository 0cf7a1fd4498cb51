package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/modoterra/kubedig/internal/buildinfo"
	"github.com/modoterra/kubedig/pkg/cluster"
	"github.com/modoterra/kubedig/pkg/config"
	"github.com/modoterra/kubedig/pkg/core"
	tuimodel "github.com/modoterra/kubedig/pkg/tui/model"
)

var (
	flagConfig         string
	flagContext        string
	flagNamespace      string
	flagPodQuery       string
	flagStates         []string
	flagLogTimeout     int
	flagRenderInterval int
	flagQueueCapacity  int
	flagLogFile        string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "kubedig",
	Short:        "Interactive Kubernetes log viewer",
	Long:         "Kubedig tails the logs of every container matching a pod query and container-state filter,\nand lets you dig through the buffered history with an interactive full-text search.",
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	def := config.Default()
	f := rootCmd.Flags()
	f.StringVar(&flagConfig, "config", config.DefaultPath(), "config file path")
	f.StringVar(&flagContext, "context", "", "kubernetes context (default: current context)")
	f.StringVarP(&flagNamespace, "namespace", "n", "", "kubernetes namespace (default: context namespace)")
	f.StringVarP(&flagPodQuery, "pod-query", "p", "", "regular expression to filter pods")
	f.StringSliceVar(&flagStates, "container-states", def.ContainerStates, "container states to tail: all, running, terminated, waiting")
	f.IntVar(&flagLogTimeout, "log-retrieval-timeout", def.LogTimeoutMS, "timeout to read the next log line, in milliseconds")
	f.IntVar(&flagRenderInterval, "render-interval", def.RenderIntervalMS, "interval between stream redraws, in milliseconds")
	f.IntVarP(&flagQueueCapacity, "queue-capacity", "q", def.QueueCapacity, "history buffer capacity in records")
	f.StringVar(&flagLogFile, "log-file", "", "write diagnostic logs to this file")

	rootCmd.AddCommand(versionCmd)
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	// Flags given on the command line win over the config file.
	flags := cmd.Flags()
	if flags.Changed("context") {
		cfg.Context = flagContext
	}
	if flags.Changed("namespace") {
		cfg.Namespace = flagNamespace
	}
	if flags.Changed("pod-query") {
		cfg.PodQuery = flagPodQuery
	}
	if flags.Changed("container-states") {
		cfg.ContainerStates = flagStates
	}
	if flags.Changed("log-retrieval-timeout") {
		cfg.LogTimeoutMS = flagLogTimeout
	}
	if flags.Changed("render-interval") {
		cfg.RenderIntervalMS = flagRenderInterval
	}
	if flags.Changed("queue-capacity") {
		cfg.QueueCapacity = flagQueueCapacity
	}
	if flags.Changed("log-file") {
		cfg.LogFile = flagLogFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	states, err := core.ParseContainerStates(cfg.ContainerStates)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := cluster.NewKubeClient(cfg.Context, cfg.Namespace)
	if err != nil {
		return err
	}
	matcher, err := cluster.NewMatcher(cfg.PodQuery, core.NewStateMatcher(states))
	if err != nil {
		return err
	}

	app := tuimodel.New(tuimodel.Options{
		Client:         client,
		Matcher:        matcher,
		LogTimeout:     time.Duration(cfg.LogTimeoutMS) * time.Millisecond,
		RenderInterval: time.Duration(cfg.RenderIntervalMS) * time.Millisecond,
		QueueCapacity:  cfg.QueueCapacity,
		Logger:         logger,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if a, ok := final.(tuimodel.App); ok {
		if err := a.FatalErr(); err != nil {
			return err
		}
	}
	return nil
}

// newLogger opens the diagnostic log sink. The TUI owns the terminal, so
// without a log file everything is discarded.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, nil)), func() { f.Close() }, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "kubedig "+buildinfo.String())
	},
}
