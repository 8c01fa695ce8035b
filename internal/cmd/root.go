package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katichai/pyqa/internal/git"
	"github.com/katichai/pyqa/internal/pyconfig"
)

var (
	// Version information (set via build flags)
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	// Global flags
	verbose    bool
	configFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pyqa",
	Short: "Multi-principle static code-quality analyzer for Python",
	Long: `pyqa analyzes Python source against seven design-principle detectors
(SRP, OCP, LSP, ISP, DIP, KISS, DRY), caches per-file results, and renders a
unified quality report in text, JSON, or HTML.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is .pyqa/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(analyzeCmd)
}

// GetVerbose returns the verbose flag value.
func GetVerbose() bool { return verbose }

// GetConfig returns the config file path.
func GetConfig() string { return configFile }

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  `Display the version, git commit, and build date of pyqa.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pyqa version %s\n", Version)
		fmt.Printf("Git commit: %s\n", GitCommit)
		fmt.Printf("Build date: %s\n", BuildDate)
	},
}

// doctorCmd represents the doctor command
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system requirements and configuration",
	Long:  `Verify that Git is available and that the config and cache are reachable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDoctor()
	},
}

func runDoctor() error {
	fmt.Println("🔍 Running system diagnostics...")
	fmt.Println()

	checks := make([]struct{ name, status string }, 0)

	gitStatus := "❌ Not found"
	if git.IsGitInstalled() {
		if version, err := git.GetGitVersion(); err == nil {
			gitStatus = fmt.Sprintf("✅ %s", version)
		} else {
			gitStatus = "✅ Found"
		}
	}
	checks = append(checks, struct{ name, status string }{"Git installation", gitStatus})

	repoStatus := "❌ Not in a Git repository"
	if repo, err := git.FindRepository(); err == nil {
		branch, _ := repo.GetCurrentBranch()
		repoStatus = fmt.Sprintf("✅ Found (branch: %s)", branch)
	}
	checks = append(checks, struct{ name, status string }{"Git repository", repoStatus})

	configPath := configFile
	if configPath == "" {
		configPath = pyconfig.DefaultConfigPath
	}
	cfg, err := pyconfig.Load(configPath)
	configStatus := "⚠️  Not found (using defaults)"
	if _, statErr := os.Stat(configPath); err == nil && statErr == nil {
		configStatus = "✅ Found"
	}
	checks = append(checks, struct{ name, status string }{"Configuration file", configStatus})

	cacheStatus := "⚠️  Disabled"
	if cfg != nil && cfg.UseCache {
		cacheStatus = fmt.Sprintf("✅ Enabled (%s)", cfg.CacheDir)
	}
	checks = append(checks, struct{ name, status string }{"Analyzer cache", cacheStatus})

	if cfg != nil {
		checks = append(checks, struct{ name, status string }{
			"Enabled analyzers", fmt.Sprintf("✅ %v", cfg.EnabledAnalyzers),
		})
	}

	for _, check := range checks {
		fmt.Printf("%-24s %s\n", check.name+":", check.status)
	}
	return nil
}
