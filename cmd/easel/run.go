package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/aretw0/easel/internal/presentation/tui"
	"github.com/aretw0/easel/pkg/observability"
	"github.com/aretw0/easel/pkg/runner"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Replay a command script",
	Long: `Runs a YAML or JSON command script against a fresh editor and reports each
step. Expectations in the script make the command exit non-zero when they fail.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		jsonMode, _ := cmd.Flags().GetBool("json")
		failFast, _ := cmd.Flags().GetBool("fail-fast")
		persist, _ := cmd.Flags().GetBool("persist")

		script, err := runner.LoadScript(args[0])
		if err != nil {
			return err
		}

		logger := newLogger(cfg)
		out := cmd.OutOrStdout()

		var reporter runner.Reporter
		if jsonMode {
			reporter = runner.NewJSONReporter(out)
		} else {
			var opts []runner.TextReporterOption
			if render := tui.NewRenderer(out); render != nil {
				opts = append(opts, runner.WithTextRenderer(render))
			}
			reporter = runner.NewTextReporter(out, opts...)
		}

		opts := []runner.Option{
			runner.WithLogger(logger),
			runner.WithReporter(reporter),
			runner.WithFailFast(failFast),
			runner.WithEditorOptions(editorOptions(cfg, logger, observability.LogHooks(logger))...),
		}
		if persist {
			store, _, closeStore := newStore(cfg, logger)
			defer closeStore()
			opts = append(opts, runner.WithStore(store))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		_, err = runner.NewRunner(opts...).Run(ctx, script)
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("json", false, "Report steps as JSON lines")
	runCmd.Flags().Bool("fail-fast", false, "Stop at the first failed expectation")
	runCmd.Flags().Bool("persist", false, "Save the final scene to the configured store")
}
