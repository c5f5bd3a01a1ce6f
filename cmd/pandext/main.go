// Command pandext inspects and renders documents written with the Pandoc
// extended list syntax: hash lists, fancy lists, example lists, custom label
// lists, and definition lists.
package main

import (
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jcorbin/pandext/internal/config"
	"github.com/jcorbin/pandext/internal/decorate"
	"github.com/jcorbin/pandext/internal/placeholder"
	"github.com/jcorbin/pandext/internal/textdoc"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("pandext: ")
	if err := newApp().root().Execute(); err != nil {
		log.Fatalln(err)
	}
}

// app is the state shared by every subcommand.
type app struct {
	configPath string
	verbose    bool
	strict     bool
	extended   bool
	renumber   bool
	regions    string

	settings config.Settings
	logger   *slog.Logger
	registry *placeholder.Registry
}

func newApp() *app {
	return &app{registry: placeholder.NewRegistry()}
}

func (a *app) root() *cobra.Command {
	def := config.Default()
	cmd := &cobra.Command{
		Use:   "pandext",
		Short: "Work with Pandoc extended list documents",
		Long: `Work with Pandoc extended list documents.

Settings are read from a .pandext.yaml file found in the working directory or
any parent, overridden by PANDEXT_* environment variables, overridden in turn
by flags.

Examples:
  pandext scan notes.md                  # list example and custom labels
  pandext decorate --cursor 120 notes.md # dump live view decorations
  pandext preview notes.md               # show the live view in the terminal
  pandext render 'docs/**/*.md'          # write reading mode HTML`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "settings file (default: nearest "+config.FileName+")")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log debug detail to stderr")
	flags.BoolVar(&a.strict, config.Flags["strict_pandoc_mode"], def.StrictPandocMode, "require blank lines before lists and two spaces after capital markers")
	flags.BoolVar(&a.extended, config.Flags["more_extended_syntax"], def.MoreExtendedSyntax, "enable custom label lists and references")
	flags.BoolVar(&a.renumber, config.Flags["auto_renumber_lists"], def.AutoRenumberLists, "allow editing commands to renumber fancy lists")
	flags.StringVar(&a.regions, config.Flags["regions"], def.Regions, "code and math region detection: "+config.RegionsText+" or "+config.RegionsTree)

	cmd.AddCommand(
		a.scanCmd(),
		a.decorateCmd(),
		a.previewCmd(),
		a.renderCmd(),
		a.continueCmd(),
		a.renumberCmd(),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	settings, err := config.Load(a.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	a.settings = settings
	a.logger.Debug("loaded settings",
		"strict", settings.StrictPandocMode,
		"extended", settings.MoreExtendedSyntax,
		"renumber", settings.AutoRenumberLists,
		"regions", settings.Regions)
	return nil
}

func (a *app) builder() *decorate.Builder {
	return &decorate.Builder{
		Settings: a.settings,
		Registry: a.registry,
		Logger:   a.logger,
	}
}

// readDoc reads the named document, or standard input for "-".
func readDoc(cmd *cobra.Command, name string) (textdoc.Text, error) {
	var (
		src []byte
		err error
	)
	if name == "-" {
		src, err = io.ReadAll(cmd.InOrStdin())
	} else {
		src, err = os.ReadFile(name)
	}
	if err != nil {
		return textdoc.Text{}, err
	}
	return textdoc.NewText(string(src)), nil
}
