package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravgrid/internal/audio"
	"github.com/san-kum/gravgrid/internal/config"
	"github.com/san-kum/gravgrid/internal/export"
	"github.com/san-kum/gravgrid/internal/level"
	"github.com/san-kum/gravgrid/internal/levels"
	"github.com/san-kum/gravgrid/internal/logging"
	"github.com/san-kum/gravgrid/internal/replay"
	"github.com/san-kum/gravgrid/internal/session"
	"github.com/san-kum/gravgrid/internal/tui"
)

var (
	configFile string
	logLevel   string
	logFile    string
	noAudio    bool
	startLevel int

	// replay
	scriptFile string
	showBoard  bool
	showChart  bool
	svgFile    string

	// probe
	trials    int
	maxClicks int
	seed      int64

	force bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "gravgrid",
		Short:        "tile puzzle about placing planets into a stable system",
		SilenceUsage: true,
		RunE:         runPlay,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().IntVar(&startLevel, "level", 0, "start level index")
	rootCmd.Flags().BoolVar(&noAudio, "no-audio", false, "disable sound cues")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "play in the terminal",
		RunE:  runPlay,
	}
	playCmd.Flags().BoolVar(&noAudio, "no-audio", false, "disable sound cues")

	levelsCmd := &cobra.Command{
		Use:   "levels",
		Short: "list levels",
		RunE:  listLevels,
	}

	replayCmd := &cobra.Command{
		Use:   "replay [moves...]",
		Short: "replay scripted moves, e.g. 8,5 confirm 3,2",
		RunE:  runReplay,
	}
	replayCmd.Flags().StringVar(&scriptFile, "script", "", "scenario file (yaml)")
	replayCmd.Flags().BoolVar(&showBoard, "board", true, "print the final board")
	replayCmd.Flags().BoolVar(&showChart, "chart", false, "plot tiles moved per pass")
	replayCmd.Flags().StringVar(&svgFile, "svg", "", "write the final board as svg")

	probeCmd := &cobra.Command{
		Use:   "probe [level]",
		Short: "play random clicks on a level and count outcomes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runProbe,
	}
	probeCmd.Flags().IntVar(&trials, "trials", 100, "number of trials")
	probeCmd.Flags().IntVar(&maxClicks, "clicks", 20, "click budget per trial")
	probeCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(playCmd, levelsCmd, replayCmd, probeCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads --config when given. Flags override file values
// only when set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("level") {
		cfg.StartLevel = startLevel
	}
	if flags.Lookup("no-audio") != nil && flags.Changed("no-audio") {
		cfg.Audio.Enabled = !noAudio
	}
	return cfg, cfg.Validate()
}

// openLogger logs to the configured file, or to stderr when the
// terminal is not taken over by the game.
func openLogger(cfg *config.Config, interactive bool) (zerolog.Logger, func() error, error) {
	lvl, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	if cfg.LogFile != "" || interactive {
		return logging.Open(cfg.LogFile, lvl)
	}
	return logging.New(os.Stderr, lvl), func() error { return nil }, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := openLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	player := audio.NewPlayer(cfg.Audio, log)
	if err := player.Start(); err != nil {
		log.Warn().Err(err).Msg("audio unavailable")
	}
	defer player.Stop()

	sess, err := session.New(levels.All(), session.WithLogger(log), session.WithSink(player))
	if err != nil {
		return err
	}
	sess.EnterLevel(cfg.StartLevel)

	return tui.Run(sess, cfg.TUI)
}

func listLevels(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tGRID\tBODIES\tANCHORS\tFIXED")

	for i, def := range levels.All() {
		anchors, fixed := 0, 0
		for _, tpl := range def.Bodies {
			if tpl.At != nil {
				anchors++
			}
			if !tpl.Removable {
				fixed++
			}
		}
		fmt.Fprintf(w, "%d\t%s\t%dx%d\t%d\t%d\t%d\n",
			i, def.Name, def.Grid.W, def.Grid.H, len(def.Bodies), anchors, fixed)
	}

	return w.Flush()
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := openLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	sc := &replay.Scenario{Name: "cli", StartLevel: cfg.StartLevel, Moves: args}
	if scriptFile != "" {
		if sc, err = replay.LoadScenario(scriptFile); err != nil {
			return err
		}
		if cmd.Flags().Changed("level") {
			sc.StartLevel = cfg.StartLevel
		}
		sc.Moves = append(sc.Moves, args...)
	}
	if len(sc.Moves) == 0 {
		return errors.New("no moves given")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rep, err := replay.RunScenario(ctx, levels.All(), sc, session.WithLogger(log))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tMOVE\tOUTCOME\tLEVEL\tSCORE\tTOTAL")
	for i, st := range rep.Steps {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\n",
			i+1, st.Move, st.Outcome, st.Level, st.Score, st.Total)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%s: %s (level %d, %q)\n", rep.Scenario, rep.Result, rep.Level, rep.LevelName)
	fmt.Printf("score %d  total %d  passes %d  collisions %d  stability %.2f\n",
		rep.Score, rep.TotalScore, len(rep.Passes), rep.Collisions, rep.Stability)

	if showBoard {
		fmt.Println()
		fmt.Print(tui.Board(rep.Final))
	}
	if showChart {
		if chart := rep.Chart(10, 60); chart != "" {
			fmt.Println()
			fmt.Println(chart)
		}
	}
	if svgFile != "" {
		if err := os.WriteFile(svgFile, []byte(export.BoardSVG(rep.Final)), 0644); err != nil {
			return err
		}
		log.Info().Str("path", svgFile).Msg("board exported")
	}
	return nil
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	def, idx, err := pickLevel(args, cfg.StartLevel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := replay.Probe(ctx, def, replay.ProbeConfig{
		Trials:    trials,
		MaxClicks: maxClicks,
		Seed:      seed,
	})
	if err != nil {
		return err
	}

	stable, failed, undecided := replay.ProbeStats(results)
	best := 0
	for _, r := range results {
		if r.Result == replay.Stable && (best == 0 || r.Score+session.StableBonus > best) {
			best = r.Score + session.StableBonus
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "level\t%d %s\n", idx, def.Name)
	fmt.Fprintf(w, "trials\t%d\n", len(results))
	fmt.Fprintf(w, "stable\t%d\n", stable)
	fmt.Fprintf(w, "failed\t%d\n", failed)
	fmt.Fprintf(w, "undecided\t%d\n", undecided)
	if best > 0 {
		fmt.Fprintf(w, "best score\t%d\n", best)
	}
	return w.Flush()
}

// pickLevel resolves a level by catalog index or name.
func pickLevel(args []string, fallback int) (level.Definition, int, error) {
	all := levels.All()
	if len(args) == 0 {
		i := max(0, min(fallback, len(all)-1))
		return all[i], i, nil
	}
	if i, err := strconv.Atoi(args[0]); err == nil {
		if i < 0 || i >= len(all) {
			return level.Definition{}, 0, fmt.Errorf("level %d out of range (0-%d)", i, len(all)-1)
		}
		return all[i], i, nil
	}
	def, i, ok := levels.ByName(args[0])
	if !ok {
		return level.Definition{}, 0, fmt.Errorf("unknown level: %s (available: %v)", args[0], levels.Names())
	}
	return def, i, nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "gravgrid.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
