package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/recera/rodata"
	"github.com/recera/rodata/internal/config"
	"github.com/recera/rodata/internal/diagnostics"
	"github.com/spf13/cobra"
)

// newRunID tags one invocation's diagnostic lines, so a user piping
// several rodata commands' stderr together can tell which lines belong
// to which run.
func newRunID() string {
	return uuid.NewString()[:8]
}

// commonFlags are the flags shared by every query subcommand: the
// request shape (select/filter/orderby/user/pass) and the output shape
// (format/output), plus the config file they fall back to.
type commonFlags struct {
	selectClause string
	filter       string
	orderBy      string
	user         string
	pass         string
	format       string
	output       string
}

func addQueryFlags(cmd *cobra.Command, f *commonFlags, includeCollectionOptions bool) {
	if includeCollectionOptions {
		cmd.Flags().StringVar(&f.selectClause, "select", "", "$select clause")
		cmd.Flags().StringVar(&f.filter, "filter", "", "$filter clause")
		cmd.Flags().StringVar(&f.orderBy, "orderby", "", "$orderby clause")
	}
	cmd.Flags().StringVar(&f.user, "user", "", "Basic Auth username")
	cmd.Flags().StringVar(&f.pass, "pass", "", "Basic Auth password")
	cmd.Flags().StringVar(&f.format, "format", "", "Output format: json, xml, or csv (default: json)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", `Output path, or "-" for standard output (default: "-")`)
}

// loadConfig resolves the config file a command run reads its defaults
// from: the --config flag when given, otherwise $HOME/.rodata/config.yaml.
// A missing file, either way, is not an error — config.Load already
// treats it as a zero Defaults, since the file is always optional.
func loadConfig(cmd *cobra.Command) (config.Defaults, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return config.Defaults{}, nil
		}
		path = filepath.Join(home, config.DefaultPath)
	}
	return config.Load(path)
}

// resolveURL prepends cfg's base URL to raw when raw isn't already an
// absolute URL, so a config file can shorten repeated invocations
// against the same service down to a relative path.
func resolveURL(cfg config.Defaults, raw string) string {
	if cfg.BaseURL == "" || strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return strings.TrimRight(cfg.BaseURL, "/") + "/" + strings.TrimLeft(raw, "/")
}

// resolve applies cfg's defaults for any flag the user left at its zero
// value, then returns the resolved format and output path.
func (f *commonFlags) resolve(cfg config.Defaults) (rodata.Format, string, error) {
	if f.format == "" {
		f.format = cfg.Format
	}
	if f.output == "" {
		f.output = cfg.Output
	}
	if f.user == "" {
		f.user = cfg.User
	}
	if f.pass == "" {
		f.pass = cfg.Pass
	}

	output := f.output
	if output == "" {
		output = "-"
	}

	switch f.format {
	case "xml":
		return rodata.FormatXML, output, nil
	case "csv":
		return rodata.FormatCSV, output, nil
	case "", "json":
		return rodata.FormatJSON, output, nil
	default:
		return 0, "", fmt.Errorf("unknown --format %q (want json, xml, or csv)", f.format)
	}
}

// credentials returns nil, nil when no username was supplied, since the
// fetcher treats a nil pair as "do not attach Basic Auth" rather than
// "attach empty credentials".
func (f *commonFlags) credentials() (*string, *string) {
	if f.user == "" {
		return nil, nil
	}
	return &f.user, &f.pass
}

var diag = diagnostics.New(os.Stderr)

// newClient builds a rodata.Client honoring the persistent --rate flag
// plus cfg's CSV dialect and HTTP timeout overrides.
func newClient(cmd *cobra.Command, cfg config.Defaults) *rodata.Client {
	var opts []rodata.ClientOption

	if rps, _ := cmd.Flags().GetFloat64("rate"); rps > 0 {
		opts = append(opts, rodata.WithRateLimit(rps, 1))
	}
	if cfg.Delimiter != "" || cfg.Newline != "" {
		fieldSep, lineEnd := cfg.Delimiter, cfg.Newline
		if fieldSep == "" {
			fieldSep = ";"
		}
		if lineEnd == "" {
			lineEnd = "\r\n"
		}
		opts = append(opts, rodata.WithCSVDialect(fieldSep, lineEnd))
	}
	if timeout := cfg.Timeout(); timeout > 0 {
		opts = append(opts, rodata.WithHTTPClient(&http.Client{Timeout: timeout}))
	}

	return rodata.NewClient(opts...)
}
