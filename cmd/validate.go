package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/classifier"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/config"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/types"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// printDefaults prints the built-in header patterns as configuration YAML.
var printDefaults bool

// validateCmd loads the configuration and prints the effective settings.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration and show the effective header patterns",
	Long: `The validate command loads the configuration, compiles the classifier
patterns and prints the effective settings.

With --print-defaults it prints the built-in header patterns as a
classifier block that can be pasted into config.yaml and edited.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if printDefaults {
			return writeDefaultPatterns(cmd.OutOrStdout())
		}

		cfg, _, cleanup, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		patterns, err := cfg.ClassifierPatterns()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Configuration OK")
		fmt.Fprintf(out, "  Input dir:      %s\n", cfg.InputDir)
		fmt.Fprintf(out, "  Output dir:     %s\n", cfg.OutputDir)
		fmt.Fprintf(out, "  Archive dir:    %s\n", cfg.InputArchiveDir)
		fmt.Fprintf(out, "  Report format:  %s\n", cfg.ReportFormat)
		fmt.Fprintf(out, "  File patterns:  %s\n", strings.Join(cfg.FilePatterns, ", "))
		fmt.Fprintf(out, "  Concurrency:    %d\n", cfg.MaxConcurrency)
		fmt.Fprintln(out, "\nHeader patterns:")

		for _, role := range types.AllRoles {
			overridden := ""
			if hasOverride(cfg.Classifier.Patterns, role) {
				overridden = " (configured)"
			}
			fmt.Fprintf(out, "  %s%s:\n", role, overridden)
			for _, re := range patterns[role] {
				fmt.Fprintf(out, "    %s\n", re.String())
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&printDefaults, "print-defaults", false, "Print the built-in header patterns as a config block")
}

// writeDefaultPatterns writes a classifier section seeded with the
// built-in patterns.
func writeDefaultPatterns(w io.Writer) error {
	seed := struct {
		Classifier config.ClassifierConfig `yaml:"classifier"`
	}{
		Classifier: config.ClassifierConfig{Patterns: classifier.DefaultPatternSources()},
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(seed); err != nil {
		return fmt.Errorf("failed to encode default patterns: %w", err)
	}
	return enc.Close()
}

// hasOverride reports whether the configuration replaces a role's patterns.
func hasOverride(overrides map[string][]string, role types.Role) bool {
	for name := range overrides {
		if r, ok := types.ParseRole(strings.ToLower(strings.TrimSpace(name))); ok && r == role {
			return true
		}
	}
	return false
}
