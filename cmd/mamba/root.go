package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sevigo/mamba-review/internal/config"
	"github.com/sevigo/mamba-review/internal/jobs"
	"github.com/sevigo/mamba-review/internal/logger"
)

// Process exit codes.
const (
	exitOK     = 0
	exitCaught = 1
	exitSetup  = 2
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

// cli carries the state shared by the subcommands of one invocation.
type cli struct {
	v      *viper.Viper
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	c := &cli{v: viper.New(), stdout: stdout, stderr: stderr}
	root := c.newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return exitOK
	}

	if jobs.IsCaught(err) {
		c.log().Error("Mamba GPT error", "error", err)
		errorColor.Fprintf(stderr, "Mamba GPT error: %v\n", err)
		return exitCaught
	}
	errorColor.Fprintf(stderr, "mamba: %v\n", err)
	return exitSetup
}

func (c *cli) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mamba",
		Short: "Mamba Review posts model-written reviews of Apex pull requests.",
		Long: `Mamba Review reads the issue_comment event that triggered a GitHub Actions
run, diffs the checked-out branch against main, asks a chat-completion model
for a review and posts the reply as a comment on the pull request.

Comment "/mamba strict" to request the stricter review mode.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Inside GitHub Actions the bare binary behaves like `mamba review`.
			if os.Getenv("GITHUB_ACTIONS") == "true" {
				return c.runReview(cmd, args)
			}
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.String("env-file", "", "Path of a .env file to load (default .env)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: text or json")
	c.bind(flags, "env-file", "MAMBA_ENV_FILE")
	c.bind(flags, "log-level", "LOG_LEVEL")
	c.bind(flags, "log-format", "LOG_FORMAT")

	root.AddCommand(c.newReviewCmd(), c.newServeCmd(), newVersionCmd())
	return root
}

func (c *cli) bind(flags *pflag.FlagSet, name, key string) {
	if err := c.v.BindPFlag(key, flags.Lookup(name)); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", name, err))
	}
}

// loadConfig builds the Config and the process logger.
func (c *cli) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(c.v)
	if err != nil {
		return nil, err
	}

	var out io.Writer
	if cfg.Logging.Output == "" || cfg.Logging.Output == "stderr" {
		out = c.stderr
	}
	c.logger = logger.NewLogger(cfg.Logging, out)
	slog.SetDefault(c.logger)
	return cfg, nil
}

func (c *cli) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.NewTextHandler(c.stderr, nil))
	}
	return c.logger
}
