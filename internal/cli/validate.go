package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/launchdash/internal/launch"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid      bool              `json:"valid"`
	Path       string            `json:"path"`
	Records    int               `json:"records,omitempty"`
	Sites      []string          `json:"sites,omitempty"`
	MinPayload float64           `json:"min_payload"`
	MaxPayload float64           `json:"max_payload"`
	Errors     []ValidationError `json:"errors,omitempty"`
}

// ValidationError locates one problem in a launch file.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  string `json:"column,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [launch-file]",
		Short: "Validate a launch file without serving it",
		Long: `Load a launch file and report whether the dashboard could serve it.

Checks CSV framing, the required columns and every cell's type. The file
defaults to --data or the configured data_path.

Exit codes:
  0 - File is valid
  1 - File is malformed
  2 - Command error (file missing, bad config)`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	cfg, err := loadSettings(opts, cmd)
	if err != nil {
		return fail(formatter, "failed to load config", err)
	}
	if len(args) == 1 {
		cfg.DataPath = args[0]
	}

	formatter.VerboseLog("Validating %s", cfg.DataPath)

	ds, err := launch.Load(cfg.DataPath)
	if err != nil {
		if launch.ErrorCode(err) == launch.ErrCodeFileNotFound {
			return fail(formatter, "launch file not found", err)
		}
		return outputValidationError(formatter, cfg.DataPath, err)
	}

	b := ds.Bounds()
	result := ValidationResult{
		Valid:      true,
		Path:       cfg.DataPath,
		Records:    ds.Len(),
		Sites:      b.Sites,
		MinPayload: b.MinPayload,
		MaxPayload: b.MaxPayload,
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "✓ %s is valid\n", result.Path)
	fmt.Fprintf(w, "  %d launches at %d sites, payload %s - %s kg\n",
		result.Records, len(result.Sites), formatMass(result.MinPayload), formatMass(result.MaxPayload))
	return nil
}

// outputValidationError reports a malformed launch file with exit code 1.
func outputValidationError(f *OutputFormatter, path string, err error) error {
	ve := ValidationError{Code: errorCode(err), Message: err.Error()}
	var pe *launch.ParseError
	if errors.As(err, &pe) {
		ve.Line = pe.Line
		ve.Column = pe.Column
		ve.Message = pe.Message
	}

	result := ValidationResult{Path: path, Errors: []ValidationError{ve}}

	if f.Format == "json" {
		if encErr := f.Error(ve.Code, "validation failed", result); encErr != nil {
			return encErr
		}
		return WrapExitError(ExitFailure, "validation failed", err)
	}

	fmt.Fprintf(f.Writer, "✗ %s is invalid\n", path)
	if ve.Line > 0 {
		fmt.Fprintf(f.Writer, "  [%s] line %d, column %s: %s\n", ve.Code, ve.Line, ve.Column, ve.Message)
	} else {
		fmt.Fprintf(f.Writer, "  [%s] %s\n", ve.Code, ve.Message)
	}
	return WrapExitError(ExitFailure, "validation failed", err)
}
