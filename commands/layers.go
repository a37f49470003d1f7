package commands

import (
	"errors"
	"fmt"

	"code.cloudfoundry.org/lager/v3"
	units "github.com/docker/go-units"
	"github.com/urfave/cli/v2"

	"code.cloudfoundry.org/quillfs/fetcher/tarball"
)

var LayersCommand = &cli.Command{
	Name:        "layers",
	Usage:       "layers --image <image tarball>",
	Description: "Lists the image's layers in application order, with sizes.",

	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "image",
			Usage: "Path to the image tarball",
		},
	},

	Action: func(ctx *cli.Context) error {
		logger := ctx.App.Metadata["logger"].(lager.Logger)
		logger = logger.Session("layers")

		imagePath := ctx.String("image")
		if imagePath == "" {
			logger.Error("parsing-command", errors.New("image was not specified"))
			return cli.Exit("image was not specified", 1)
		}

		imageSource := tarball.NewTarball(imagePath)
		manifest, err := imageSource.Manifest(logger)
		if err != nil {
			logger.Error("reading-manifest", err)
			return cli.Exit(err.Error(), 1)
		}

		for _, layerID := range manifest.Layers {
			stream, size, err := imageSource.StreamLayer(logger, layerID)
			if err != nil {
				logger.Error("streaming-layer", err)
				return cli.Exit(err.Error(), 1)
			}
			stream.Close()

			fmt.Printf("%s %s\n", layerID, units.HumanSize(float64(size)))
		}
		return nil
	},
}
