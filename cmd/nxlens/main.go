package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nxlens/nxlens/internal/deps"
	"github.com/nxlens/nxlens/internal/extract"
	"github.com/nxlens/nxlens/internal/index"
	"github.com/nxlens/nxlens/internal/journal"
	"github.com/nxlens/nxlens/internal/loader"
	"github.com/nxlens/nxlens/internal/schema"
	"github.com/nxlens/nxlens/internal/script"
	"github.com/nxlens/nxlens/internal/srcview"
	"github.com/nxlens/nxlens/internal/theme"
	"github.com/nxlens/nxlens/internal/ui/browser"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		baseFlag    string
		themeFlag   string
		journalFlag string
	)

	var jnl *journal.Logger

	rootCmd := &cobra.Command{
		Use:   "nxlens",
		Short: "Schema extraction and code intelligence for Ninox exports",
		Long: `nxlens loads an exported database file tree, extracts every embedded
script occurrence, and makes the result searchable: code listings,
statistics, cross-database dependencies, syntax highlighting and an
interactive browser.

Examples:
  nxlens databases --base ./export          # List loaded databases
  nxlens code "afterUpdate" --level FIELD   # Search code locations
  nxlens deps abc123                        # Dependency closures
  nxlens browse                             # Interactive browser`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if journalFlag == "" {
				return
			}
			var err error
			jnl, err = journal.New(journalFlag, 16)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not open journal: %v\n", err)
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = jnl.Close()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&baseFlag, "base", "b", ".", "Export base directory (contains src/Objects)")
	rootCmd.PersistentFlags().StringVarP(&themeFlag, "theme", "t", "default", "Color theme (default, light)")
	rootCmd.PersistentFlags().StringVarP(&journalFlag, "journal", "j", "", "Journal file path (JSON Lines)")

	loadAll := func() ([]*schema.Database, error) {
		start := time.Now()
		dbs, warns, err := loader.LoadAll(baseFlag)
		if err != nil {
			return nil, err
		}
		for _, w := range warns {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
		}
		for _, db := range dbs {
			for _, w := range db.Warnings {
				fmt.Fprintf(os.Stderr, "Warning: %s: %s\n", db.Name, w)
			}
			jnl.Log(journal.Entry{
				Event:      "load",
				Database:   db.ID,
				Tables:     db.TableCount(),
				Warnings:   len(db.Warnings),
				DurationMS: time.Since(start).Milliseconds(),
			})
		}
		return dbs, nil
	}

	extractAll := func() ([]extract.Location, error) {
		dbs, err := loadAll()
		if err != nil {
			return nil, err
		}
		var locs []extract.Location
		for _, db := range dbs {
			dbLocs := extract.FromDatabase(db)
			jnl.Log(journal.Entry{
				Event:     "extract",
				Database:  db.ID,
				Locations: len(dbLocs),
			})
			locs = append(locs, dbLocs...)
		}
		return locs, nil
	}

	databasesCmd := &cobra.Command{
		Use:   "databases",
		Short: "List loaded databases",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbs, err := loadAll()
			if err != nil {
				return err
			}
			if len(dbs) == 0 {
				fmt.Println("No databases found.")
				return nil
			}
			for _, db := range dbs {
				locs := extract.FromDatabase(db)
				fmt.Printf("%-24s id=%-12s layout=%-7s tables=%-3d views=%-3d reports=%-3d code=%d\n",
					db.Name, db.ID, db.Layout, db.TableCount(), len(db.Views), len(db.Reports), len(locs))
			}
			return nil
		},
	}

	var (
		levelFlag    string
		categoryFlag string
		typeFlag     string
		tableFlag    string
		fuzzyFlag    bool
	)
	codeCmd := &cobra.Command{
		Use:   "code [query]",
		Short: "List and search code locations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locs, err := extractAll()
			if err != nil {
				return err
			}

			query := ""
			if len(args) > 0 {
				query = args[0]
			}

			if fuzzyFlag && query != "" {
				locs = index.FuzzySearch(locs, query, 50)
			} else {
				f := index.Filter{Text: query}
				if levelFlag != "" {
					lvl, err := parseLevel(levelFlag)
					if err != nil {
						return err
					}
					f.Levels = []extract.Level{lvl}
				}
				if categoryFlag != "" {
					f.Categories = []extract.Category{extract.Category(strings.ToLower(categoryFlag))}
				}
				if typeFlag != "" {
					f.CodeTypes = []string{typeFlag}
				}
				if tableFlag != "" {
					f.Tables = []string{tableFlag}
				}
				locs = index.Apply(locs, f)
			}

			for i := range locs {
				loc := &locs[i]
				fmt.Printf("%-52s %-12s %-10s %3d lines  %s\n",
					loc.Path(), loc.Level, loc.Category, loc.LineCount, loc.Preview(60))
			}
			fmt.Fprintf(os.Stderr, "%d locations\n", len(locs))
			return nil
		},
	}
	codeCmd.Flags().StringVar(&levelFlag, "level", "", "Filter by level (DATABASE, TABLE, FIELD, UI, VIEW, REPORT)")
	codeCmd.Flags().StringVar(&categoryFlag, "category", "", "Filter by category (trigger, formula, button, ...)")
	codeCmd.Flags().StringVar(&typeFlag, "type", "", "Filter by code type (fn, afterUpdate, ...)")
	codeCmd.Flags().StringVar(&tableFlag, "table", "", "Filter by table name")
	codeCmd.Flags().BoolVar(&fuzzyFlag, "fuzzy", false, "Rank results by fuzzy path match")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Code statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			locs, err := extractAll()
			if err != nil {
				return err
			}
			s := index.Statistics(locs)
			fmt.Printf("Total locations: %d\nTotal lines:     %d\n", s.Total, s.TotalLines)
			printCounts("By level", s.ByLevel)
			printCounts("By category", s.ByCategory)
			printCounts("By type", s.ByType)
			printCounts("By table", s.ByTable)
			return nil
		},
	}

	depsCmd := &cobra.Command{
		Use:   "deps [database-id]",
		Short: "Cross-database dependency graph",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbs, err := loadAll()
			if err != nil {
				return err
			}
			g := deps.Build(dbs)
			jnl.Log(journal.Entry{Event: "deps", Detail: fmt.Sprintf("%d edges", len(g.Edges()))})

			if len(args) == 0 {
				edges := g.Edges()
				if len(edges) == 0 {
					fmt.Println("No cross-database references found.")
					return nil
				}
				for _, e := range edges {
					fmt.Printf("%s -> %s\n", e.Source, e.Target)
				}
				return nil
			}

			id := args[0]
			fmt.Printf("depends on:   %s\n", joinOrNone(g.DependsOn(id)))
			fmt.Printf("depended by:  %s\n", joinOrNone(g.Dependents(id)))
			return nil
		},
	}

	var indentFlag int
	fmtCmd := &cobra.Command{
		Use:   "fmt [location-path]",
		Short: "Reformat script code (from a location, or stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := resolveCode(args, extractAll)
			if err != nil {
				return err
			}
			fmt.Println(script.Format(code, indentFlag))
			return nil
		},
	}
	fmtCmd.Flags().IntVar(&indentFlag, "indent", 4, "Spaces per indent level")

	var (
		htmlFlag bool
		rawFlag  bool
		markFlag string
	)
	viewCmd := &cobra.Command{
		Use:   "view <location-path>",
		Short: "Show a code location with syntax highlighting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locs, err := extractAll()
			if err != nil {
				return err
			}
			loc := findLocation(locs, args[0])
			if loc == nil {
				return fmt.Errorf("no location matches %q", args[0])
			}

			th := theme.Get(themeFlag)
			switch {
			case rawFlag:
				data, err := os.ReadFile(loc.FilePath)
				if err != nil {
					return fmt.Errorf("read source file: %w", err)
				}
				fmt.Println(srcview.NewRenderer().Render(string(data), th))
			case htmlFlag:
				fmt.Println(script.HTML(loc.Code, script.HTMLOptions{
					Highlight:   markFlag,
					LineNumbers: true,
				}))
			default:
				fmt.Printf("%s  (%s, %s, %d lines)\n\n",
					loc.Path(), loc.TypeDisplayName(), loc.CategoryName(), loc.LineCount)
				fmt.Println(script.Terminal(loc.Code, th))
			}
			return nil
		},
	}
	viewCmd.Flags().BoolVar(&htmlFlag, "html", false, "Emit HTML instead of terminal output")
	viewCmd.Flags().BoolVar(&rawFlag, "raw", false, "Show the raw YAML source file")
	viewCmd.Flags().StringVar(&markFlag, "mark", "", "Search term to highlight in HTML output")

	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "Interactive code browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			locs, err := extractAll()
			if err != nil {
				return err
			}
			p := tea.NewProgram(browser.New(locs, theme.Get(themeFlag)), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run browser: %w", err)
			}
			return nil
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("nxlens %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}

	rootCmd.AddCommand(databasesCmd, codeCmd, statsCmd, depsCmd, fmtCmd, viewCmd, browseCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func parseLevel(s string) (extract.Level, error) {
	switch strings.ToUpper(s) {
	case "DATABASE":
		return extract.LevelDatabase, nil
	case "TABLE":
		return extract.LevelTable, nil
	case "FIELD":
		return extract.LevelField, nil
	case "UI":
		return extract.LevelUI, nil
	case "VIEW":
		return extract.LevelView, nil
	case "REPORT":
		return extract.LevelReport, nil
	}
	return 0, fmt.Errorf("unknown level: %s", s)
}

// resolveCode returns the code of the named location, or stdin when no
// location is given.
func resolveCode(args []string, extractAll func() ([]extract.Location, error)) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	locs, err := extractAll()
	if err != nil {
		return "", err
	}
	loc := findLocation(locs, args[0])
	if loc == nil {
		return "", fmt.Errorf("no location matches %q", args[0])
	}
	return loc.Code, nil
}

// findLocation resolves a path argument to a location: exact path first,
// then unique case-insensitive substring.
func findLocation(locs []extract.Location, path string) *extract.Location {
	for i := range locs {
		if locs[i].Path() == path {
			return &locs[i]
		}
	}
	var match *extract.Location
	lower := strings.ToLower(path)
	for i := range locs {
		if strings.Contains(strings.ToLower(locs[i].Path()), lower) {
			if match != nil {
				return nil // ambiguous
			}
			match = &locs[i]
		}
	}
	return match
}

func printCounts(title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", title)
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		fmt.Printf("  %-32s %d\n", k, counts[k])
	}
}

func joinOrNone(ids []string) string {
	if len(ids) == 0 {
		return "(none)"
	}
	return strings.Join(ids, ", ")
}
