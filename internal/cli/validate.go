package cli

import (
	"github.com/spf13/cobra"

	"github.com/openobserve/alertquery/internal/legacy"
	"github.com/openobserve/alertquery/internal/sqlgen"
	"github.com/openobserve/alertquery/internal/wire"
)

// ValidationResult holds validation results for one alert file.
type ValidationResult struct {
	Valid      bool     `json:"valid"`
	Version    int      `json:"version"`
	Incomplete int      `json:"incomplete_conditions"`
	Errors     []string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <alert-file>",
		Short: "Classify and validate a condition file",
		Long: `Detect which historical shape a condition file uses, run the
conversion pipeline, and check the upgraded result against the
version-2 schema. Reports incomplete conditions (empty column or value)
without failing: a tree that is still being edited is not invalid.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
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

	result := ValidationResult{Valid: true}

	detection, err := legacy.Detect(file.Conditions)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return outputValidation(formatter, result)
	}
	result.Version = int(detection.Version)

	root, err := legacy.Upgrade(file.Conditions)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return outputValidation(formatter, result)
	}

	// The upgraded tree must round-trip through the schema it will be
	// persisted under.
	encoded, err := wire.Encode(wire.NewEnvelope(root))
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return outputValidation(formatter, result)
	}
	if err := wire.Check(encoded); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return outputValidation(formatter, result)
	}

	result.Incomplete = len(sqlgen.Incomplete(root))
	return outputValidation(formatter, result)
}

func outputValidation(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else if result.Valid {
		formatter.VerboseLog("detected shape %d, %d incomplete condition(s)", result.Version, result.Incomplete)
		if err := formatter.Success("valid"); err != nil {
			return err
		}
	} else {
		for _, msg := range result.Errors {
			_ = formatter.Error(ErrCodeBadShape, msg, nil)
		}
	}

	if !result.Valid {
		return WrapExitError(ExitFailure, "validation failed", nil)
	}
	return nil
}
