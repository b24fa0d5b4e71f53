package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/bhi"
	"github.com/bodgit/bhi/grid"
	"github.com/bodgit/bhi/terminal"
	"github.com/urfave/cli/v2"
)

const defaultDB = ".bhi.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(cfg *config) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if cfg.Verbose {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func newConverter(cfg *config, options ...bhi.Option) (*bhi.Converter, error) {
	logger := newLogger(cfg)

	mode, err := grid.ParseMode(cfg.Addressing)
	if err != nil {
		return nil, err
	}

	options = append(options, bhi.WithAddressing(mode), bhi.WithColors(cfg.Colors))

	return bhi.New(logger, options...), nil
}

func trimExt(file string) string {
	return strings.TrimSuffix(file, filepath.Ext(file))
}

func encode(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowSubcommandHelpAndExit(c, 1)
	}

	cfg, err := settings(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	var options []bhi.Option
	if cfg.DB != "" {
		catalog, err := bhi.NewCatalog(cfg.DB)
		if err != nil {
			return cli.Exit(err, 1)
		}
		defer catalog.Close()
		options = append(options, bhi.WithCatalog(catalog))
	}

	converter, err := newConverter(cfg, options...)
	if err != nil {
		return cli.Exit(err, 1)
	}

	file := c.Args().Get(0)
	name := c.Args().Get(1)
	if name == "" {
		name = trimExt(file)
	}

	if _, err := converter.Encode(file, name); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func decode(c *cli.Context) error {
	if c.NArg() < 3 {
		cli.ShowSubcommandHelpAndExit(c, 1)
	}

	cfg, err := settings(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	converter, err := newConverter(cfg)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if _, err := converter.Decode(c.Args().Get(0), c.Args().Get(1), c.Args().Get(2)); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func render(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowSubcommandHelpAndExit(c, 1)
	}

	cfg, err := settings(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	converter, err := newConverter(cfg)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if !terminal.IsTerminal(int(os.Stdout.Fd())) {
		newLogger(cfg).Println("stdout is not a terminal, rendering at full size")
	}

	if err := converter.Render(c.Args().First(), terminal.New()); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func scan(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowSubcommandHelpAndExit(c, 1)
	}

	cfg, err := settings(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	dir := c.Args().First()
	if cfg.DB == "" {
		cfg.DB = filepath.Join(dir, defaultDB)
	}

	catalog, err := bhi.NewCatalog(cfg.DB)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer catalog.Close()

	converter, err := newConverter(cfg, bhi.WithCatalog(catalog))
	if err != nil {
		return cli.Exit(err, 1)
	}

	if err := converter.Scan(c.Context, dir, cfg.Workers); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "bhi"
	app.Usage = "BHI image conversion utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"BHI_CONFIG"},
			Value:   defaultConfigPath(),
			Usage:   "path to configuration file",
		},
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"BHI_DB"},
			Usage:   "path to catalog database",
		},
		&cli.StringFlag{
			Name:    "addressing",
			EnvVars: []string{"BHI_ADDRESSING"},
			Value:   grid.Legacy.String(),
			Usage:   "pixel addressing mode, \"" + grid.Legacy.String() + "\" or \"" + grid.RowMajor.String() + "\"",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			EnvVars: []string{"BHI_VERBOSE"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "encode",
			Usage:       "Convert an image to BHI",
			Description: "Supported source formats are " + strings.Join(bhi.Formats(), ", ") + ".",
			ArgsUsage:   "FILE [NAME]",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "colors",
					Usage: "reduce the image to at most this many colors, 0 keeps every color",
				},
			},
			Action: encode,
		},
		{
			Name:        "decode",
			Usage:       "Convert a BHI file to another format",
			Description: "FORMAT is one of " + strings.Join(bhi.Formats(), ", ") + ".",
			ArgsUsage:   "FILE NAME FORMAT",
			Action:      decode,
		},
		{
			Name:        "render",
			Usage:       "Display a BHI file in the terminal",
			Description: "",
			ArgsUsage:   "FILE",
			Action:      render,
		},
		{
			Name:        "scan",
			Usage:       "Convert every image under a directory to BHI",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "workers",
					Value: bhi.DefaultWorkers,
					Usage: "number of images to convert concurrently",
				},
			},
			Action: scan,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
