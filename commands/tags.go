package commands

import (
	"errors"
	"fmt"

	"code.cloudfoundry.org/lager/v3"
	"github.com/urfave/cli/v2"

	"code.cloudfoundry.org/quillfs/fetcher/tarball"
)

var TagsCommand = &cli.Command{
	Name:        "tags",
	Usage:       "tags --image <image tarball>",
	Description: "Lists the repository tags the image was saved under.",

	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "image",
			Usage: "Path to the image tarball",
		},
	},

	Action: func(ctx *cli.Context) error {
		logger := ctx.App.Metadata["logger"].(lager.Logger)
		logger = logger.Session("tags")

		imagePath := ctx.String("image")
		if imagePath == "" {
			logger.Error("parsing-command", errors.New("image was not specified"))
			return cli.Exit("image was not specified", 1)
		}

		manifest, err := tarball.NewTarball(imagePath).Manifest(logger)
		if err != nil {
			logger.Error("reading-manifest", err)
			return cli.Exit(err.Error(), 1)
		}

		for _, tag := range manifest.RepoTags {
			fmt.Println(tag)
		}
		return nil
	},
}
