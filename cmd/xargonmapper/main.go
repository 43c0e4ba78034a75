package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"
	"github.com/zerkerX/xargonmapper"
	"github.com/zerkerX/xargonmapper/export"
)

const defaultDB = "xargon.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) zerolog.Logger {
	level := zerolog.InfoLevel
	if c.Bool("verbose") {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func newMapper(c *cli.Context) (*xargon.Mapper, error) {
	return xargon.New(c.String("db"), newLogger(c))
}

func assetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "graphics",
			Aliases:  []string{"g"},
			EnvVars:  []string{"XARGON_GRAPHICS"},
			Usage:    "path to GRAPHICS.XR# archive",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "palettes",
			Aliases: []string{"p"},
			EnvVars: []string{"XARGON_PALETTES"},
			Value:   ".",
			Usage:   "directory containing palimage#.png files",
		},
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "xargonmapper"
	app.Usage = "Xargon map renderer and graphics extractor"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"XARGON_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to sprite catalog database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "import",
			Usage:       "Import XML sprite catalog",
			Description: "Replaces the sprite catalog in the database with the sprites defined in FILE.",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, err := newMapper(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer m.Close()

				if err := m.ImportXML(c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "render",
			Usage:       "Render map images",
			Description: "Renders each map FILE to an image under Episode# in the output directory.",
			ArgsUsage:   "FILE...",
			Flags: append(assetFlags(),
				&cli.StringFlag{
					Name:     "tiles",
					Aliases:  []string{"t"},
					EnvVars:  []string{"XARGON_TILES"},
					Usage:    "path to TILES.XR# file",
					Required: true,
				},
				&cli.StringFlag{
					Name:    "out",
					Aliases: []string{"o"},
					Value:   ".",
					Usage:   "output directory",
				},
				&cli.StringFlag{
					Name:  "format",
					Value: export.PNG.String(),
					Usage: "output format: png, indexed or gif",
				},
				&cli.IntFlag{
					Name:    "workers",
					Aliases: []string{"w"},
					Value:   4,
					Usage:   "number of maps rendered concurrently",
				},
				&cli.BoolFlag{
					Name:  "hide-labels",
					Usage: "do not draw numeric labels on sprites",
				},
			),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				format, err := export.ParseFormat(c.String("format"))
				if err != nil {
					return cli.Exit(err, 1)
				}

				m, err := newMapper(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer m.Close()

				files := c.Args().Slice()
				bar := progressbar.New(len(files))

				if err := m.RenderAll(xargon.Config{
					Graphics:   c.String("graphics"),
					Tiles:      c.String("tiles"),
					Palettes:   c.String("palettes"),
					Out:        c.String("out"),
					Format:     format,
					Workers:    c.Int("workers"),
					HideLabels: c.Bool("hide-labels"),
					Progress: func(string) {
						bar.Add(1)
					},
				}, files); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "extract",
			Usage:       "Extract archive images",
			Description: "Writes every image in the graphics archive to the output directory.",
			Flags: append(assetFlags(),
				&cli.StringFlag{
					Name:    "out",
					Aliases: []string{"o"},
					Value:   "images",
					Usage:   "output directory",
				},
				&cli.BoolFlag{
					Name:  "raw",
					Usage: "write the original indexed images without transparency",
				},
			),
			Action: func(c *cli.Context) error {
				m, err := newMapper(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer m.Close()

				if err := m.Extract(xargon.Config{
					Graphics: c.String("graphics"),
					Palettes: c.String("palettes"),
					Out:      c.String("out"),
					Raw:      c.Bool("raw"),
				}); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
