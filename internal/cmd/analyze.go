package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katichai/pyqa/internal/analyzer"
	"github.com/katichai/pyqa/internal/git"
	"github.com/katichai/pyqa/internal/pyconfig"
	"github.com/katichai/pyqa/internal/pyprofile"
	"github.com/katichai/pyqa/internal/unified"
)

var (
	analyzeFormat     string
	analyzeOnly       string
	analyzeExclude    string
	analyzeChanged    bool
	analyzeProfile    bool
	analyzeNoCache    bool
	analyzeNoParallel bool
)

// analyzeCmd represents the analyze command: the CLI adapter over the
// Unified Analyzer. It owns argument parsing and terminal rendering only
// — all scoring lives in internal/unified and internal/principles.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze Python source against the seven principle detectors",
	Long: `Run the configured principle analyzers (SRP, OCP, LSP, ISP, DIP, KISS,
DRY) over a file or directory of Python source and print a unified report.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		return runAnalyze(root)
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "text", "report format: text, json, html")
	analyzeCmd.Flags().StringVar(&analyzeOnly, "analyzer", "", "comma-separated analyzer subset (default: all configured)")
	analyzeCmd.Flags().StringVar(&analyzeExclude, "exclude", "", "comma-separated doublestar glob patterns to skip, e.g. \"**/migrations/**,test_*.py\"")
	analyzeCmd.Flags().BoolVar(&analyzeChanged, "changed", false, "only analyze files touched by the latest commit")
	analyzeCmd.Flags().BoolVar(&analyzeProfile, "profile", false, "print the detected Python ecosystem profile alongside the report")
	analyzeCmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false, "disable the per-file analysis cache")
	analyzeCmd.Flags().BoolVar(&analyzeNoParallel, "no-parallel", false, "disable parallel directory analysis")
}

func runAnalyze(root string) error {
	cfg, err := pyconfig.Load(GetConfig())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if analyzeOnly != "" {
		cfg.EnabledAnalyzers = strings.Split(analyzeOnly, ",")
	}
	if analyzeNoCache {
		cfg.UseCache = false
	}
	if analyzeNoParallel {
		cfg.Analysis.Parallel = false
	}
	if analyzeExclude != "" {
		cfg.ExcludePatterns = append(cfg.ExcludePatterns, strings.Split(analyzeExclude, ",")...)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := zap.NewNop()
	if GetVerbose() {
		logger, _ = zap.NewDevelopment()
	}

	ua, err := unified.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("constructing analyzer: %w", err)
	}

	if analyzeProfile {
		if profile, err := pyprofile.Detect(root); err == nil && len(profile.Frameworks) > 0 {
			color.Cyan("Detected ecosystem: %s", strings.Join(profile.Frameworks, ", "))
		}
	}

	if analyzeChanged {
		return runChanged(ua, analyzer.Format(analyzeFormat))
	}

	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("stat %s: %w", root, err)
	}

	if !info.IsDir() {
		composite := ua.AnalyzeFile(root)
		printSingleFile(composite)
		return nil
	}

	cdr, err := ua.AnalyzeDirectory(root)
	if err != nil {
		return err
	}
	report, err := ua.GenerateReport(cdr, analyzer.Format(analyzeFormat))
	if err != nil {
		return err
	}
	fmt.Println(report)
	printCompositeSummary(cdr)
	return nil
}

// runChanged analyzes only the Python files touched by the latest commit,
// reusing internal/git's repository/diff plumbing (supplemental feature,
// SPEC_FULL.md §6.1).
func runChanged(ua *unified.UnifiedAnalyzer, format analyzer.Format) error {
	repo, err := git.FindRepository()
	if err != nil {
		return fmt.Errorf("finding git repository: %w", err)
	}

	diff, err := repo.GetDiff("HEAD")
	if err != nil {
		return fmt.Errorf("reading diff: %w", err)
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"File", "Score"})

	for _, f := range diff.Files {
		if !strings.HasSuffix(f.Path, ".py") {
			continue
		}
		path := f.Path
		if repo.RootPath != "" {
			path = repo.RootPath + string(os.PathSeparator) + f.Path
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		composite := ua.AnalyzeFile(path)
		tw.AppendRow(table.Row{f.Path, fmt.Sprintf("%.2f", composite.Score)})
	}

	fmt.Println(tw.Render())
	return nil
}

func printSingleFile(cr unified.CompositeResult) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Analyzer", "Score"})
	for _, name := range unified.DefaultOrder {
		res, ok := cr.PerAnalyzer[name]
		if !ok {
			continue
		}
		if res.IsError() {
			tw.AppendRow(table.Row{name, "error: " + res.Error})
			continue
		}
		tw.AppendRow(table.Row{name, fmt.Sprintf("%.2f", res.Score)})
	}
	fmt.Printf("%s: %s\n", cr.Path, scoreLabel(cr.Score))
	fmt.Println(tw.Render())
}

func printCompositeSummary(cdr unified.CompositeDirectoryResult) {
	fmt.Printf("\nComposite score for %s: %s\n", cdr.Root, scoreLabel(cdr.Score))
}

func scoreLabel(score float64) string {
	text := fmt.Sprintf("%.2f", score)
	switch {
	case score >= 0.8:
		return color.GreenString(text)
	case score >= 0.6:
		return color.YellowString(text)
	default:
		return color.RedString(text)
	}
}
