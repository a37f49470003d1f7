package main

import (
	"fmt"
	"os"

	"code.cloudfoundry.org/lager/v3"
	"github.com/urfave/cli/v2"

	"code.cloudfoundry.org/quillfs/commands"
	"code.cloudfoundry.org/quillfs/commands/config"
)

var version string

func init() {
	if version == "" {
		version = "dev"
	}
}

func main() {
	quillfs := cli.NewApp()
	quillfs.Name = "quillfs"
	quillfs.Usage = "quillfs: turn an image tarball into a root filesystem"
	quillfs.Version = version

	quillfs.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path to a config file",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Set logging level <debug|info|error|fatal>",
			Value: "fatal",
		},
		&cli.StringFlag{
			Name:  "metron-endpoint",
			Usage: "Metron endpoint used to send metrics",
		},
	}

	quillfs.Commands = []*cli.Command{
		commands.ExtractCommand,
		commands.TagsCommand,
		commands.LayersCommand,
	}

	quillfs.Before = func(ctx *cli.Context) error {
		configBuilder, err := config.NewBuilder(ctx.String("config"))
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		ctx.App.Metadata["configBuilder"] = configBuilder

		cfg := configBuilder.
			WithLogLevel(ctx.String("log-level"), ctx.IsSet("log-level")).
			WithMetronEndpoint(ctx.String("metron-endpoint")).
			Build()

		logLevel := cfg.LogLevel
		if logLevel == "" {
			logLevel = ctx.String("log-level")
		}

		logger, err := createLogger(logLevel)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		ctx.App.Metadata["logger"] = logger

		return nil
	}

	if err := quillfs.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func createLogger(logLevel string) (lager.Logger, error) {
	logLevels := map[string]lager.LogLevel{
		"debug": lager.DEBUG,
		"info":  lager.INFO,
		"error": lager.ERROR,
		"fatal": lager.FATAL,
	}

	level, ok := logLevels[logLevel]
	if !ok {
		return nil, fmt.Errorf("invalid log level `%s`", logLevel)
	}

	logger := lager.NewLogger("quillfs")
	logger.RegisterSink(lager.NewWriterSink(os.Stderr, level))

	return logger, nil
}
