package cmd

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/marcgrab/marcgrab/internal/config"
)

// CLI represents the complete command structure for the marcgrab
// application.
type CLI struct {
	// Global flags
	Libraries string `help:"Path to the library list JSON file"`
	CacheDB   string `help:"Path to the page cache SQLite database"`
	Verbose   bool   `short:"v" help:"Enable debug logging"`

	Scrape  ScrapeCmd  `cmd:"" help:"Scrape MARC data from a catalog URL"`
	Search  SearchCmd  `cmd:"" help:"Search the configured library catalogs"`
	Library LibraryCmd `cmd:"" help:"Manage the configured library list"`
	Create  CreateCmd  `cmd:"" help:"Create a MARC record from a book description file"`
	Cache   CacheCmd   `cmd:"" help:"Manage the page cache"`
}

// ScrapeCmd scrapes one catalog URL into a MARC record.
type ScrapeCmd struct {
	URL     string `arg:"" help:"Catalog page or source-record URL"`
	Output  string `short:"o" help:"Write the record to this file (.mrc added when missing)"`
	Save    bool   `help:"Write the record using the derived default filename"`
	Force   bool   `help:"Write even when required-field validation fails"`
	NoCache bool   `help:"Bypass the page cache"`
}

// SearchCmd groups the two search query types.
type SearchCmd struct {
	ISBN  SearchISBNCmd  `cmd:"" name:"isbn" help:"Search by ISBN"`
	Title SearchTitleCmd `cmd:"" name:"title" help:"Search by title and author"`
}

// SearchISBNCmd searches all configured catalogs (or one) by ISBN.
type SearchISBNCmd struct {
	ISBN    string `arg:"" help:"ISBN to search for"`
	Library string `short:"l" help:"Search a single library by name or list position"`
	Plain   bool   `help:"Line output instead of the interactive status table"`
}

// SearchTitleCmd searches all configured catalogs (or one) by title and
// author.
type SearchTitleCmd struct {
	Title   string `short:"t" required:"" help:"Book title"`
	Author  string `short:"a" required:"" help:"Book author"`
	Library string `short:"l" help:"Search a single library by name or list position"`
	Plain   bool   `help:"Line output instead of the interactive status table"`
}

// LibraryCmd groups endpoint list management.
type LibraryCmd struct {
	List   LibraryListCmd   `cmd:"" default:"1" help:"List the configured libraries"`
	Add    LibraryAddCmd    `cmd:"" help:"Add a library"`
	Edit   LibraryEditCmd   `cmd:"" help:"Edit a library"`
	Remove LibraryRemoveCmd `cmd:"" help:"Remove a library"`
}

// LibraryListCmd lists the configured endpoints.
type LibraryListCmd struct{}

// LibraryAddCmd adds an endpoint after validating its URL templates.
type LibraryAddCmd struct {
	Name           string `required:"" help:"Library display name"`
	ISBNURL        string `name:"isbn-url" required:"" help:"ISBN search URL template with an {isbn} placeholder"`
	TitleAuthorURL string `name:"title-author-url" required:"" help:"Title/author search URL template with {title} and {author} placeholders"`
}

// LibraryEditCmd edits an endpoint in place.
type LibraryEditCmd struct {
	Position       int    `arg:"" help:"List position of the library to edit (1-based)"`
	Name           string `help:"New display name"`
	ISBNURL        string `name:"isbn-url" help:"New ISBN search URL template"`
	TitleAuthorURL string `name:"title-author-url" help:"New title/author search URL template"`
}

// LibraryRemoveCmd removes an endpoint.
type LibraryRemoveCmd struct {
	Position int `arg:"" help:"List position of the library to remove (1-based)"`
}

// CreateCmd builds a MARC record from manually entered details.
type CreateCmd struct {
	Input  string `short:"f" required:"" help:"Path to a YAML book description"`
	Output string `short:"o" help:"Write the record to this file (defaults to <author>_<title>.mrc)"`
}

// CacheCmd manages the page cache.
type CacheCmd struct {
	Clear CacheClearCmd `cmd:"" help:"Delete all cached pages"`
}

// CacheClearCmd deletes every cached page.
type CacheClearCmd struct{}

// Execute runs the Kong-based CLI.
func Execute() {
	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("marcgrab"),
		kong.Description("Scrape, search, and create MARC bibliographic records."),
		kong.UsageOnError(),
	)

	initLogging(cli.Verbose)
	initConfig(&cli)

	if err := ctx.Run(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig(cli *CLI) {
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("Fatal error reading config file", "error", err)
			os.Exit(1)
		}
	}

	// Command-line flags win over the config file.
	if cli.Libraries != "" {
		viper.Set("libraries.file", cli.Libraries)
	}
	if cli.CacheDB != "" {
		viper.Set("cache.dbfile", cli.CacheDB)
	}

	config.InitConfig()
}

func initLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
