package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openobserve/alertquery/internal/legacy"
	"github.com/openobserve/alertquery/internal/preview"
	"github.com/openobserve/alertquery/internal/sqlgen"
	"github.com/openobserve/alertquery/internal/wire"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Remote          string // remote compiler base URL ("" = local only)
	TimestampColumn string
}

// CompileResult is the compile command's output payload.
type CompileResult struct {
	Where         string `json:"where"`
	GroupByHaving string `json:"group_by_having,omitempty"`
	SQL           string `json:"sql"`
	Source        string `json:"source"` // "local" or "remote"
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <alert-file>",
		Short: "Compile a condition tree to SQL",
		Long: `Compile an alert's condition tree (any supported shape) into a SQL
predicate, plus a GROUP BY/HAVING fragment when aggregation is enabled.

The file may be JSON or YAML, and may be either a full alert definition
or a bare conditions document. With --remote (or remote_url in the
config), the backend compiler is asked as well and its SQL is preferred;
on failure the locally-compiled SQL is used.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Remote, "remote", "", "remote compiler base URL")
	cmd.Flags().StringVar(&opts.TimestampColumn, "timestamp-column", "", "stream timestamp column")

	return cmd
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
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

	root, err := legacy.Upgrade(file.Conditions)
	if err != nil {
		_ = formatter.Error(ErrCodeBadShape, err.Error(), nil)
		return WrapExitError(ExitFailure, "conditions cannot be upgraded", err)
	}

	if leaves := sqlgen.Incomplete(root); len(leaves) > 0 {
		msg := fmt.Sprintf("tree is not ready: %d condition(s) missing column or value", len(leaves))
		_ = formatter.Error(ErrCodeIncomplete, msg, nil)
		return WrapExitError(ExitFailure, msg, nil)
	}

	tsColumn := opts.TimestampColumn
	if tsColumn == "" {
		tsColumn = file.TimestampColumn
	}
	if tsColumn == "" {
		tsColumn = viper.GetString(cfgTimestampColumn)
	}

	out, err := sqlgen.Compile(root, file.Aggregation, tsColumn)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, "compile failed", err)
	}

	result := CompileResult{
		Where:         out.Where,
		GroupByHaving: out.GroupByHaving,
		SQL:           out.Where,
		Source:        "local",
	}
	if out.GroupByHaving != "" {
		result.SQL = out.Where + " " + out.GroupByHaving
	}

	remoteURL := opts.Remote
	if remoteURL == "" {
		remoteURL = viper.GetString(cfgRemoteURL)
	}
	if remoteURL != "" {
		formatter.VerboseLog("asking remote compiler at %s", remoteURL)
		remote := preview.NewHTTPCompiler(remoteURL)
		sql, err := remote.CompileSQL(cmd.Context(), preview.CompileRequest{
			StreamName: file.StreamName,
			StreamType: file.StreamType,
			QueryCondition: preview.QueryCondition{
				Type:        "custom",
				Conditions:  wire.NewEnvelope(root),
				Aggregation: file.Aggregation,
			},
		})
		if err != nil {
			// Remote failure falls back to the local SQL; it is never
			// a blocking error.
			formatter.VerboseLog("remote compile failed (%v), using local SQL", err)
		} else {
			result.SQL = sql
			result.Source = "remote"
		}
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(result.SQL)
}

func reportLoadError(formatter *OutputFormatter, err error) error {
	_ = formatter.Error(ErrCodeBadInput, err.Error(), nil)
	return err
}
