package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/deretore/jacket"
	"github.com/deretore/jacket/bundle"
	"github.com/urfave/cli/v2"
)

const defaultDB = "jacket.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func songID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid song id %q", s)
	}
	if id < 0 || id > bundle.MaxSongID {
		return 0, fmt.Errorf("song id %d out of range", id)
	}
	return id, nil
}

func globalFlags(cwd string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"JACKET_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to path id catalog",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}
}

// pathID accepts signed ids as well as the unsigned hex form path ids are
// usually dumped in.
func pathID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 0, 64)
	if err == nil {
		return id, nil
	}
	u, uerr := strconv.ParseUint(s, 0, 64)
	if uerr != nil {
		return 0, fmt.Errorf("invalid path id %q", s)
	}
	return int64(u), nil
}

func main() {
	app := cli.NewApp()

	app.Name = "jacket"
	app.Usage = "Song jacket asset bundle builder"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = globalFlags(cwd)

	app.Commands = []*cli.Command{
		{
			Name:        "build",
			Usage:       "Build a single jacket bundle",
			Description: "SMALL must be an ETC1 PVR file. MEDIUM is either an RGB565 DDS file or an image that is converted to RGB565.",
			ArgsUsage:   "SONG SMALL MEDIUM",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   cwd,
					Usage:   "bundle file or directory",
				},
				&cli.IntFlag{
					Name:    "platform",
					EnvVars: []string{"JACKET_PLATFORM"},
					Value:   jacket.Platform,
					Usage:   "target platform id",
				},
				&cli.IntFlag{
					Name:  "width",
					Usage: "scale an image MEDIUM to this width",
				},
				&cli.IntFlag{
					Name:  "height",
					Usage: "scale an image MEDIUM to this height",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 3 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				id, err := songID(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				platform := c.Int("platform")
				if platform < 0 || platform > 0xff {
					return cli.NewExitError(fmt.Errorf("platform %d out of range", platform), 1)
				}

				j, err := jacket.New(c.String("db"), newLogger(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer j.Close()

				if err := j.Build(jacket.Job{
					SongID:       id,
					Platform:     byte(platform),
					Small:        c.Args().Get(1),
					Medium:       c.Args().Get(2),
					MediumWidth:  c.Int("width"),
					MediumHeight: c.Int("height"),
					Output:       c.String("output"),
				}); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "batch",
			Usage:       "Build every jacket listed in a YAML manifest",
			Description: "Relative paths in FILE are resolved against the directory holding it.",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				j, err := jacket.New(c.String("db"), newLogger(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer j.Close()

				if err := j.Batch(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "cab",
			Usage:     "Print the bundle and CAB names for a song",
			ArgsUsage: "SONG",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				id, err := songID(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Printf("%s\t%s\n", bundle.BundleName(id), bundle.CABName(id))

				return nil
			},
		},
		{
			Name:        "pathid",
			Usage:       "Show or set the texture path ids for a song",
			Description: "With only SONG the stored path ids are printed, allocating them if needed. With SMALL and MEDIUM they are replaced.",
			ArgsUsage:   "SONG [SMALL MEDIUM]",
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 && c.NArg() != 3 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				id, err := songID(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				j, err := jacket.New(c.String("db"), newLogger(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer j.Close()

				if c.NArg() == 3 {
					small, err := pathID(c.Args().Get(1))
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					medium, err := pathID(c.Args().Get(2))
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					if err := j.Catalog().SetPathIDs(id, small, medium); err != nil {
						return cli.NewExitError(err, 1)
					}
				}

				small, medium, err := j.Catalog().PathIDs(id)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Printf("%d\t%d\n", small, medium)

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
