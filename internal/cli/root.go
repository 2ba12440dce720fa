// Package cli implements the cvscore command line: offline scoring of CV
// files and regression replay of stored fixtures.
package cli

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cvscore-api/internal/bootstrap"
	"cvscore-api/internal/cvscore"
	"cvscore-api/internal/shared/config"
	"cvscore-api/internal/shared/telemetry"
)

const (
	app       = "cvscore"
	envPrefix = "CVSCORE"
)

// Actual version can be specified in build command.
var version = "unknown"

// options is the resolved view of flags, env and the optional config file.
type options struct {
	v *viper.Viper
}

func (o options) skillMatch() string {
	return strings.ToLower(strings.TrimSpace(o.v.GetString("skill-match")))
}

func (o options) json() bool {
	return o.v.GetBool("json")
}

// NewRootCommand builds a fresh command tree. Each call gets its own viper
// instance so commands can be executed repeatedly in tests.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("skill-match", string(cvscore.SkillMatchSubstring))
	v.SetDefault("log-level", "warn")

	opts := options{v: v}
	var cfgFile string

	root := &cobra.Command{
		Use:           app,
		Short:         "Score CVs against the regional job-market catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cfgFile != "" {
				v.SetConfigFile(cfgFile)
				if err := v.ReadInConfig(); err != nil {
					return errors.Wrapf(err, "reading config %s", cfgFile)
				}
			}
			logger, err := telemetry.New("cli", v.GetString("log-level"))
			if err != nil {
				return errors.Wrap(err, "building logger")
			}
			telemetry.SetLogger(logger)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "optional config file (yaml, json, toml or env)")
	flags.String("skill-match", string(cvscore.SkillMatchSubstring), "skill matching mode: substring or word")
	flags.Bool("json", false, "print machine readable JSON")
	flags.String("log-level", "warn", "log level for diagnostics on stderr")
	for _, name := range []string{"skill-match", "json", "log-level"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		newAnalyzeCommand(opts),
		newReplayCommand(opts),
		newFixtureCommand(opts),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command tree with os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

func (o options) engine() (*cvscore.Engine, error) {
	cfg := config.Config{SkillMatch: o.skillMatch()}
	switch cvscore.SkillMatch(cfg.SkillMatch) {
	case cvscore.SkillMatchSubstring, cvscore.SkillMatchWord:
	default:
		return nil, errors.Errorf("skill-match must be substring or word, got %q", cfg.SkillMatch)
	}
	engine, err := bootstrap.BuildEngine(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "building engine")
	}
	return engine, nil
}
