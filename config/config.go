package config

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"flextime/internal/timeutil"
)

const (
	KeyCSV          = "csv"
	KeyStartDate    = "start_date"
	KeyEndDate      = "end_date"
	KeyAPIToken     = "api_token"
	KeyDescription  = "description"
	KeyFigDir       = "fig_dir"
	KeyWorkdayHours = "workday_hours"
	KeyWorkspace    = "workspace"
	KeySource       = "source"
)

const (
	SourceReport  = "report"
	SourceEntries = "entries"

	defaultWindowDays = 30
)

// Options is the resolved configuration of one invocation. Values come from
// flags, environment, config file and defaults, in that order.
type Options struct {
	CSV          string
	StartDate    time.Time
	EndDate      time.Time
	APIToken     string `validate:"required"`
	Description  string
	FigDir       string `validate:"required"`
	WorkdayHours int    `validate:"gte=1,lte=24"`
	Workspace    string
	Source       string `validate:"oneof=report entries"`
}

// Workday is the expected working time of one day.
func (o Options) Workday() time.Duration {
	return time.Duration(o.WorkdayHours) * time.Hour
}

// RemoteMode reports whether records come from the Toggl API instead of a
// local spreadsheet.
func (o Options) RemoteMode() bool {
	return o.CSV == ""
}

// ValidationError marks a configuration problem found before any network or
// file I/O. The command layer maps it to its own exit code.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "invalid configuration: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// PipelineKeys lists the keys every data-producing command binds its flags to.
func PipelineKeys() []string {
	return []string{
		KeyCSV,
		KeyStartDate,
		KeyEndDate,
		KeyAPIToken,
		KeyDescription,
		KeyFigDir,
		KeyWorkdayHours,
		KeyWorkspace,
		KeySource,
	}
}

// SetDefaults sets default values if not provided.
func SetDefaults() {
	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyDescription, "Jobb")
	v.SetDefault(KeyFigDir, "plots")
	v.SetDefault(KeyWorkdayHours, 8)
	v.SetDefault(KeySource, SourceReport)
}

// BindEnv wires the long-standing environment names used by this tool.
func BindEnv() {
	bindEnv(viper.GetViper())
}

func bindEnv(v *viper.Viper) {
	_ = v.BindEnv(KeyCSV, "CSV")
	_ = v.BindEnv(KeyStartDate, "START_DATE")
	_ = v.BindEnv(KeyEndDate, "END_DATE")
	_ = v.BindEnv(KeyAPIToken, "TOGGL_API_TOKEN")
	_ = v.BindEnv(KeyDescription, "DESCRIPTION")
	_ = v.BindEnv(KeyFigDir, "FIG_DIR")
	_ = v.BindEnv(KeyWorkdayHours, "WORKDAY_HOURS")
	_ = v.BindEnv(KeyWorkspace, "WORKSPACE")
}

// Load resolves and validates Options from Viper.
func Load() (Options, error) {
	return loadFromViper(viper.GetViper(), time.Now())
}

func loadFromViper(v *viper.Viper, now time.Time) (Options, error) {
	opts, err := resolveOptions(v, now)
	if err != nil {
		return Options{}, err
	}
	if err := validateOptions(opts); err != nil {
		return Options{}, &ValidationError{Err: err}
	}
	return opts, nil
}

func resolveOptions(v *viper.Viper, now time.Time) (Options, error) {
	opts := Options{
		CSV:          strings.TrimSpace(v.GetString(KeyCSV)),
		APIToken:     strings.TrimSpace(v.GetString(KeyAPIToken)),
		Description:  v.GetString(KeyDescription),
		FigDir:       strings.TrimSpace(v.GetString(KeyFigDir)),
		WorkdayHours: v.GetInt(KeyWorkdayHours),
		Workspace:    strings.TrimSpace(v.GetString(KeyWorkspace)),
		Source:       strings.ToLower(strings.TrimSpace(v.GetString(KeySource))),
	}
	if opts.CSV != "" {
		opts.CSV = timeutil.FromWindowsPath(opts.CSV)
	}

	start, err := resolveDate(v.GetString(KeyStartDate), now.AddDate(0, 0, -defaultWindowDays))
	if err != nil {
		return Options{}, &ValidationError{Err: fmt.Errorf("start_date: %w", err)}
	}
	end, err := resolveDate(v.GetString(KeyEndDate), now)
	if err != nil {
		return Options{}, &ValidationError{Err: fmt.Errorf("end_date: %w", err)}
	}
	opts.StartDate = start
	opts.EndDate = end

	return opts, nil
}

func resolveDate(raw string, fallback time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	return timeutil.ParseDate(raw)
}

func validateOptions(opts Options) error {
	validate := validator.New()
	if err := validate.Struct(opts); err != nil {
		return err
	}
	if opts.EndDate.Before(opts.StartDate) {
		return fmt.Errorf(
			"end_date %s precedes start_date %s",
			opts.EndDate.Format("2006-01-02"),
			opts.StartDate.Format("2006-01-02"),
		)
	}
	if opts.RemoteMode() && opts.Workspace == "" {
		return errors.New("workspace is required without a csv path (set --workspace or WORKSPACE)")
	}
	return nil
}

// CheckYAML validates raw config file content. The credential and workspace
// may legitimately live in the environment, so only file-supplied values are
// held against the required rules.
func CheckYAML(content []byte) error {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return &ValidationError{Err: fmt.Errorf("read config content: %w", err)}
	}

	opts, err := resolveOptions(local, time.Now())
	if err != nil {
		return err
	}
	if opts.APIToken == "" {
		opts.APIToken = "unset"
	}
	if opts.RemoteMode() && opts.Workspace == "" {
		opts.Workspace = "unset"
	}
	if err := validateOptions(opts); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# flextime configuration
# Flags and environment variables take precedence over these values.
api_token: ""
workspace: ""
description: "Jobb"
fig_dir: "plots"
workday_hours: 8
# report uses the detailed report search, entries the flat time entry listing.
source: "report"
`
}
