package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gouravbhagat/pngseq/internal/config"
	"github.com/gouravbhagat/pngseq/internal/fileutil"
	"github.com/gouravbhagat/pngseq/internal/rename"
)

// batchFlags holds the naming flags shared by preview and rename.
// A flag only overrides the directory config when the user actually set
// it, so config file values survive flags left at their defaults.
type batchFlags struct {
	basename    string
	startIndex  int
	zeroPadding int
	prefix      string
	suffix      string
	sortMode    string
	logLevel    string
}

// register adds the shared naming flags to cmd.
func (f *batchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.basename, "basename", "b", "frame", "Stem used for every generated name")
	cmd.Flags().IntVarP(&f.startIndex, "start-index", "s", 1, "Sequence number assigned to the first file")
	cmd.Flags().IntVarP(&f.zeroPadding, "padding", "p", 0, "Index width (0 = auto-detect from batch size)")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "Text prepended before the basename")
	cmd.Flags().StringVar(&f.suffix, "suffix", "", "Text inserted between the index and .png")
	cmd.Flags().StringVar(&f.sortMode, "sort", "name", "File ordering: name, modified, or created")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "info", "Logging verbosity: trace, debug, info, warn, error")
}

// resolve loads the directory config, overlays the explicitly set
// flags, validates the result, and returns the effective naming
// parameters and sort mode.
func (f *batchFlags) resolve(cmd *cobra.Command, dir string) (rename.Params, fileutil.SortMode, *config.Config, error) {
	cfg, err := config.LoadConfigFromDir(dir)
	if err != nil {
		return rename.Params{}, "", nil, err
	}

	var basename, prefix, suffix, sortMode, logLevel *string
	var startIndex, zeroPadding *int
	flags := cmd.Flags()
	if flags.Changed("basename") {
		basename = &f.basename
	}
	if flags.Changed("start-index") {
		startIndex = &f.startIndex
	}
	if flags.Changed("padding") {
		zeroPadding = &f.zeroPadding
	}
	if flags.Changed("prefix") {
		prefix = &f.prefix
	}
	if flags.Changed("suffix") {
		suffix = &f.suffix
	}
	if flags.Changed("sort") {
		sortMode = &f.sortMode
	}
	if flags.Changed("log-level") {
		logLevel = &f.logLevel
	}
	cfg.MergeWithFlags(basename, startIndex, zeroPadding, prefix, suffix, sortMode, logLevel)

	if err := cfg.Validate(); err != nil {
		return rename.Params{}, "", nil, err
	}
	mode, err := fileutil.ParseSortMode(cfg.SortMode)
	if err != nil {
		return rename.Params{}, "", nil, err
	}

	params := rename.Params{
		Basename:    strings.TrimSpace(cfg.Basename),
		StartIndex:  cfg.StartIndex,
		ZeroPadding: cfg.ZeroPadding,
		Prefix:      cfg.Prefix,
		Suffix:      cfg.Suffix,
	}
	return params, mode, cfg, nil
}
