// ABOUTME: Root cobra command, global flags, and lazy settings loading
// ABOUTME: --verbose forces debug logging; --config layers an extra YAML file on top

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mauromedda/nova-router/internal/config"
	nrlog "github.com/mauromedda/nova-router/internal/log"
)

type rootOptions struct {
	configPath string
	verbose    bool

	settings *config.Settings
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "nova-router",
		Short: "Route writing-assistant input to CHAT, METADATA or CONTENT",
		Long: `nova-router decides how a writing assistant should handle a line of user input:
reply conversationally (CHAT), edit document properties (METADATA), or edit
the document body (CONTENT).

Input starting with ":" is a host command and always routes to CHAT. Otherwise
one model attempt is made when credentials are available, and a deterministic
rule cascade decides whenever the model is unavailable or answers off-label.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if opts.verbose {
				nrlog.SetLevel(slog.LevelDebug)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "extra config file layered over ~/.nova-router/config.yaml and ./.nova-router/config.yaml")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging on stderr")

	cmd.AddCommand(
		newClassifyCmd(opts),
		newRulesCmd(),
		newReplCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// loadSettings reads and caches the merged settings, then applies the
// configured log level and env entries.
func (o *rootOptions) loadSettings() (*config.Settings, error) {
	if o.settings != nil {
		return o.settings, nil
	}
	s, err := o.reloadSettings()
	if err != nil {
		return nil, err
	}
	o.settings = s
	return s, nil
}

// reloadSettings reads the settings from disk without touching the cache.
func (o *rootOptions) reloadSettings() (*config.Settings, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	var extra []string
	if o.configPath != "" {
		extra = append(extra, o.configPath)
	}
	s, err := config.Load(cwd, extra...)
	if err != nil {
		return nil, err
	}

	if !o.verbose && s.LogLevel != "" {
		// Validate already accepted the level.
		lvl, _ := nrlog.ParseLevel(s.LogLevel)
		nrlog.SetLevel(lvl)
	}
	applyEnv(s.Env)
	return s, nil
}

// configPaths lists the files whose changes should trigger a reload.
func (o *rootOptions) configPaths() []string {
	cwd, _ := os.Getwd()
	paths := []string{config.GlobalConfigFile(), config.ProjectConfigFile(cwd)}
	if o.configPath != "" {
		paths = append(paths, o.configPath)
	}
	return paths
}

// applyEnv exports config env entries that the process environment does not
// already define.
func applyEnv(env map[string]string) {
	for k, v := range env {
		if _, set := os.LookupEnv(k); set {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			nrlog.Warn("config env %s: %v", k, err)
		}
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "nova-router %s (%s) built %s\n", version, commit, date)
		},
	}
}
