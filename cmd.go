package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/montrey/jump/config"
	"github.com/montrey/jump/history"
	"github.com/montrey/jump/platform"
	"github.com/montrey/jump/search"
	"github.com/montrey/jump/store"
	"github.com/montrey/jump/ui"
)

type options struct {
	configPath string
	dbPath     string
	verbose    bool

	add      string
	increase weightFlag
	decrease weightFlag
	complete bool
	purge    bool
	stat     bool
	pick     bool
	importAJ string
}

// app is everything one invocation works with.
type app struct {
	cfg       config.Config
	db        *sqlx.DB
	platform  platform.Platform
	model     history.Model
	pipeline  *search.Pipeline
	completer *search.Completer
	out       io.Writer
}

func newRootCmd(p platform.Platform) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "jump [flags] [needles...]",
		Short: "Jump to frequently used directories",
		Long: titleStyle.Render("jump") + " - A weighted directory history for the shell\n\n" +
			"Prints the best match for the given needles so a shell function can cd there.\n" +
			"Matching tries, in order: needles as consecutive trailing path components,\n" +
			"a fuzzy match of the last needle against the directory name, and the needles\n" +
			"anywhere in the path.",
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, p, opts)
			if err != nil {
				return err
			}
			defer a.db.Close()
			return a.run(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "path to config file")
	flags.StringVar(&opts.dbPath, "db", "", "path to database file (overrides data_path)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	flags.StringVarP(&opts.add, "add", "a", "", "add a directory to the history")
	flags.VarP(&opts.increase, "increase", "i", "increase the current directory's weight (-i20 or --increase=20)")
	flags.VarP(&opts.decrease, "decrease", "d", "decrease the current directory's weight (-d20 or --decrease=20)")
	flags.Lookup("increase").NoOptDefVal = defaultWeight
	flags.Lookup("decrease").NoOptDefVal = defaultWeight
	flags.BoolVar(&opts.complete, "complete", false, "print tab completion candidates for the needle")
	flags.BoolVar(&opts.purge, "purge", false, "remove directories that no longer exist")
	flags.BoolVarP(&opts.stat, "stat", "s", false, "show weights and totals")
	flags.BoolVar(&opts.pick, "pick", false, "choose among the matches interactively")
	flags.StringVar(&opts.importAJ, "import", "", "import an autojump data file")

	cmd.MarkFlagsMutuallyExclusive("add", "increase", "decrease", "complete", "purge", "stat", "pick", "import")

	return cmd
}

func newApp(cmd *cobra.Command, p platform.Platform, opts options) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.dbPath != "" {
		cfg.DataPath = opts.dbPath
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warn("Unknown log level, using info", "level", cfg.LogLevel)
		level = log.InfoLevel
	}
	if opts.verbose {
		level = log.DebugLevel
	}
	logger.SetLevel(level)

	db, err := store.InitDB(cfg.DataPath, migrationLogger{logger})
	if err != nil {
		return nil, err
	}
	logger.Debug("Opened database", "path", cfg.DataPath)

	pipeline := search.New(p, search.WithFuzzyThreshold(cfg.FuzzyThreshold))
	return &app{
		cfg:       cfg,
		db:        db,
		platform:  p,
		model:     history.NewModel(p, cfg.Exclude),
		pipeline:  pipeline,
		completer: search.NewCompleter(pipeline, cfg.TabSeparator, cfg.TabEntries),
		out:       cmd.OutOrStdout(),
	}, nil
}

func (a *app) run(cmd *cobra.Command, opts options, args []string) error {
	flags := cmd.Flags()
	needles := search.Sanitize(args, a.platform.Separator())

	switch {
	case flags.Changed("add"):
		return a.addPath(opts.add)
	case flags.Changed("increase"):
		return a.visitCwd(opts.increase.or(a.cfg.IncreaseWeight), false)
	case flags.Changed("decrease"):
		return a.visitCwd(opts.decrease.or(a.cfg.DecreaseWeight), true)
	case opts.purge:
		return a.purgeMissing()
	case opts.stat:
		return a.printStats()
	case opts.complete:
		return a.completeNeedle(needles)
	case opts.pick:
		return a.pickMatch(needles)
	case flags.Changed("import"):
		return a.importFile(opts.importAJ)
	default:
		return a.jump(needles)
	}
}

// defaultWeight is what a bare -i or -d parses as: use the configured weight.
const defaultWeight = "default"

var errNegativeWeight = errors.New("weight must be a non-negative number")

// weightFlag is a float flag whose value may be omitted.
type weightFlag struct {
	value    float64
	explicit bool
}

func (w *weightFlag) String() string {
	if !w.explicit {
		return ""
	}
	return strconv.FormatFloat(w.value, 'g', -1, 64)
}

func (w *weightFlag) Set(s string) error {
	if s == defaultWeight {
		w.value, w.explicit = 0, false
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return errNegativeWeight
	}
	w.value, w.explicit = v, true
	return nil
}

func (w *weightFlag) Type() string {
	return "weight"
}

func (w weightFlag) or(fallback float64) float64 {
	if !w.explicit {
		return fallback
	}
	return w.value
}

func (a *app) load() (*history.PathStore, error) {
	return store.Load(a.db)
}

func (a *app) addPath(path string) error {
	s, err := a.load()
	if err != nil {
		return err
	}

	e := a.model.Visit(s, path, a.cfg.IncreaseWeight)
	if err := store.Save(a.db, s); err != nil {
		return err
	}
	logger.Debug("Updated weight", "path", e.Path, "weight", e.Weight)
	return nil
}

func (a *app) visitCwd(weight float64, penalize bool) error {
	cwd, err := a.platform.Getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve current directory: %w", err)
	}

	s, err := a.load()
	if err != nil {
		return err
	}
	var e history.Entry
	if penalize {
		e = a.model.Penalize(s, cwd, weight)
	} else {
		e = a.model.Visit(s, cwd, weight)
	}
	if err := store.Save(a.db, s); err != nil {
		return err
	}
	printEntry(a.out, e)
	return nil
}

func (a *app) purgeMissing() error {
	s, err := a.load()
	if err != nil {
		return err
	}
	before := s.Len()
	kept := history.FromEntries(slices.Collect(history.Purge(s.Entries(), a.platform.Exists)))
	if err := store.Save(a.db, kept); err != nil {
		return err
	}
	if err := store.SetSetting(a.db, store.LastPurgeKey, time.Now().UTC().Format(time.RFC3339)); err != nil {
		logger.Warn("Could not record purge time", "err", err)
	}
	fmt.Fprintf(a.out, "Purged %d entries.\n", before-kept.Len())
	return nil
}

func (a *app) printStats() error {
	s, err := a.load()
	if err != nil {
		return err
	}
	st := history.Summarize(s, a.platform)

	for _, e := range st.Entries {
		printEntry(a.out, e)
	}
	fmt.Fprintln(a.out, "________________________________________")
	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "%s\t %s\n", weightStyle.Render(fmt.Sprintf("%d:", int(st.Total))), "total weight")
	fmt.Fprintf(a.out, "%s\t %s\n", weightStyle.Render(fmt.Sprintf("%d:", st.Count)), "number of entries")
	if st.HasCurrent {
		fmt.Fprintf(a.out, "%s\t %s\n", weightStyle.Render(fmt.Sprintf("%.2f:", st.CurrentWeight)), "current directory weight")
	}
	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "%s\t %s\n", dimStyle.Render("data:"), a.cfg.DataPath)

	lastPurge, err := store.GetSetting(a.db, store.LastPurgeKey)
	if err != nil {
		return err
	}
	if lastPurge != "" {
		fmt.Fprintf(a.out, "%s\t %s\n", dimStyle.Render("purged:"), lastPurge)
	}
	return nil
}

func (a *app) completeNeedle(needles []string) error {
	s, err := a.load()
	if err != nil {
		return err
	}
	needle := ""
	if len(needles) > 0 {
		needle = needles[0]
	}

	lines, err := a.completer.Complete(needle, s.Entries())
	if errors.Is(err, search.ErrIndexOutOfRange) {
		logger.Debug("No completion at index", "needle", needle)
		return nil
	}
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Fprintln(a.out, line)
	}
	return nil
}

func (a *app) pickMatch(needles []string) error {
	s, err := a.load()
	if err != nil {
		return err
	}

	matches := search.Take(a.cfg.PickerLimit, search.Distinct(a.pipeline.FindMatches(s.Entries(), needles, true)))
	if len(matches) == 0 {
		fmt.Fprintln(a.out, search.CurrentDirectory)
		return nil
	}
	paths := make([]string, len(matches))
	for i, e := range matches {
		paths[i] = e.Path
	}

	choice, err := ui.Pick(paths, os.Stderr)
	if err != nil {
		return err
	}
	if choice == "" {
		choice = search.CurrentDirectory
	}
	fmt.Fprintln(a.out, choice)
	return nil
}

func (a *app) importFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	entries, err := store.ParseAutojump(f)
	if errors.Is(err, store.ErrBadImportLine) {
		logger.Warn("Skipped unreadable lines", "err", err)
	} else if err != nil {
		return err
	}

	s, err := a.load()
	if err != nil {
		return err
	}
	imported := 0
	for _, e := range entries {
		old, _ := s.Get(history.Normalize(e.Path, a.platform.Separator()))
		if got := a.model.Visit(s, e.Path, e.Weight); got.Weight != old {
			imported++
		}
	}
	if err := store.Save(a.db, s); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Imported %d entries.\n", imported)
	return nil
}

func (a *app) jump(needles []string) error {
	s, err := a.load()
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.completer.Resolve(needles, s.Entries()))
	return nil
}

func printEntry(w io.Writer, e history.Entry) {
	fmt.Fprintf(w, "%.1f:\t%s\n", e.Weight, e.Path)
}
