package commands // import "code.cloudfoundry.org/quillfs/commands"

import (
	"errors"
	"fmt"
	"os"

	"code.cloudfoundry.org/lager/v3"
	"github.com/urfave/cli/v2"

	"code.cloudfoundry.org/quillfs/commands/config"
	fetcherpkg "code.cloudfoundry.org/quillfs/fetcher"
	"code.cloudfoundry.org/quillfs/fetcher/tarball"
	"code.cloudfoundry.org/quillfs/hooks"
	"code.cloudfoundry.org/quillfs/privchecker"
	"code.cloudfoundry.org/quillfs/quill"
	unpackerpkg "code.cloudfoundry.org/quillfs/unpacker"
)

var ExtractCommand = &cli.Command{
	Name:        "extract",
	Usage:       "extract --image <image tarball> <destination path>",
	Description: "Materializes the image's root filesystem at the destination path.",

	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "image",
			Usage: "Path to the image tarball",
		},
		&cli.BoolFlag{
			Name:  "delete",
			Usage: "Delete the destination path before extracting",
		},
		&cli.StringFlag{
			Name:  "hostname",
			Usage: "Hostname to write into the rootfs' etc/hostname",
		},
		&cli.StringFlag{
			Name:  "resolv-conf-target",
			Usage: "Symlink the rootfs' etc/resolv.conf to this path",
		},
		&cli.StringSliceFlag{
			Name:  "prune-binaries",
			Usage: "Shell pattern of binaries to delete from the rootfs' usr/bin, can be given multiple times",
		},
	},

	Action: func(ctx *cli.Context) error {
		logger := ctx.App.Metadata["logger"].(lager.Logger)
		logger = logger.Session("extract")

		if ctx.NArg() != 1 {
			logger.Error("parsing-command", errors.New("destination path was not specified"))
			return cli.Exit("destination path was not specified", 1)
		}
		destinationPath := ctx.Args().First()

		imagePath := ctx.String("image")
		if imagePath == "" {
			logger.Error("parsing-command", errors.New("image was not specified"))
			return cli.Exit("image was not specified", 1)
		}

		configBuilder := ctx.App.Metadata["configBuilder"].(*config.Builder)
		cfg := configBuilder.
			WithHostname(ctx.String("hostname")).
			WithResolvConfTarget(ctx.String("resolv-conf-target")).
			WithPruneBinaries(ctx.StringSlice("prune-binaries")).
			Build()

		metricsEmitter, err := createMetricsEmitter(logger, cfg)
		if err != nil {
			logger.Error("creating-metrics-emitter", err)
			return cli.Exit(err.Error(), 1)
		}

		cachePath, err := os.MkdirTemp("", "quillfs-layer-cache")
		if err != nil {
			logger.Error("creating-layer-cache", err)
			return cli.Exit(fmt.Sprintf("creating layer cache: %s", err), 1)
		}
		defer os.RemoveAll(cachePath)

		imageSource := tarball.NewTarball(imagePath)
		cachedStreamer := fetcherpkg.NewCachedStreamer(cachePath, imageSource)
		tarUnpacker := unpackerpkg.NewTarUnpacker(cachedStreamer)
		privilegeChecker := privchecker.NewPrivilegeChecker()

		extractorHooks := []quill.Hook{}
		if cfg.Hostname != "" {
			extractorHooks = append(extractorHooks, hooks.NewHostname(cfg.Hostname))
		}
		if cfg.ResolvConfTarget != "" {
			extractorHooks = append(extractorHooks, hooks.NewResolvConf(cfg.ResolvConfTarget))
		}
		if len(cfg.PruneBinaries) != 0 {
			extractorHooks = append(extractorHooks, hooks.NewPruneBinaries(cfg.PruneBinaries))
		}

		extractor := quill.NewExtractor(
			imageSource, tarUnpacker, privilegeChecker, metricsEmitter,
			extractorHooks...,
		)

		if ctx.Bool("delete") {
			if err := os.RemoveAll(destinationPath); err != nil {
				logger.Error("deleting-destination", err)
				return cli.Exit(fmt.Sprintf("deleting destination path: %s", err), 1)
			}
		}

		if err := extractor.Extract(logger, quill.ExtractSpec{
			DestinationPath: destinationPath,
		}); err != nil {
			logger.Error("extracting", err)
			return cli.Exit(err.Error(), 1)
		}

		fmt.Println(destinationPath)
		return nil
	},
}
