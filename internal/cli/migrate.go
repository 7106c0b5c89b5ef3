package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openobserve/alertquery/internal/legacy"
	"github.com/openobserve/alertquery/internal/wire"
)

// MigrateOptions holds flags for the migrate command.
type MigrateOptions struct {
	*RootOptions
	Output string // output file path ("" = stdout)
}

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MigrateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "migrate <alert-file>",
		Short: "Upgrade a legacy condition file to the current format",
		Long: `Upgrade a persisted condition tree from any historical shape to the
tagged version-2 envelope, in canonical JSON. Legacy shapes are accepted
as input only; the output is always version 2.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runMigrate(opts *MigrateOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	file, err := LoadAlertFile(path)
	if err != nil {
		return reportLoadError(formatter, err)
	}

	detection, err := legacy.Detect(file.Conditions)
	if err != nil {
		_ = formatter.Error(ErrCodeBadShape, err.Error(), nil)
		return WrapExitError(ExitFailure, "cannot classify conditions", err)
	}
	formatter.VerboseLog("detected shape %d", detection.Version)

	root, err := legacy.Upgrade(file.Conditions)
	if err != nil {
		_ = formatter.Error(ErrCodeBadShape, err.Error(), nil)
		return WrapExitError(ExitFailure, "conditions cannot be upgraded", err)
	}

	encoded, err := wire.Encode(wire.NewEnvelope(root))
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, "encode failed", err)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, append(encoded, '\n'), 0o644); err != nil {
			msg := fmt.Sprintf("cannot write %s", opts.Output)
			_ = formatter.Error(ErrCodeGeneric, msg, nil)
			return WrapExitError(ExitCommandError, msg, err)
		}
		return formatter.Success(fmt.Sprintf("wrote %s", opts.Output))
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return nil
}
