/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/boxoffice-api/boxoffice/pkg/api"
	"github.com/boxoffice-api/boxoffice/pkg/server"
)

// invokerFlags configure the external data process. Shared by serve and query.
func invokerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  keyCommand,
			Usage: "Executable that runs the data script (default: python3)",
		},
		&cli.StringFlag{
			Name:  keyScript,
			Usage: "Script passed to the command before the query arguments (default: boxoff.py)",
		},
		&cli.StringFlag{
			Name:  keyWorkDir,
			Usage: "Working directory of the data process",
		},
		&cli.IntFlag{
			Name:  keyMaxConcurrent,
			Usage: "Maximum number of concurrent data processes (0 is unlimited)",
		},
		&cli.IntFlag{
			Name:  keyMaxOutputBytes,
			Usage: "Maximum bytes captured from each output stream of the data process (0 is unbounded)",
		},
	}
}

func serveCmd() *cli.Command {
	flags := []cli.Flag{
		&cli.IntFlag{
			Name:  keyPort,
			Usage: "Listen port (env: PORT)",
		},
		&cli.StringFlag{
			Name:  keyAddress,
			Usage: "Listen address (default: all interfaces)",
		},
		&cli.StringFlag{
			Name:  keyRoutePrefix,
			Usage: "Prefix for every application route, e.g. /api (env: ROUTE_PREFIX)",
		},
		&cli.StringSliceFlag{
			Name:  keyAllowedOrigins,
			Usage: "CORS origins allowed to call the API (default: any)",
		},
		&cli.IntFlag{
			Name:  keyRateLimit,
			Usage: "Sustained requests per second for API routes",
		},
		&cli.IntFlag{
			Name:  keyRateLimitBurst,
			Usage: "Request burst size for API routes",
		},
		&cli.DurationFlag{
			Name:  keyShutdownTimeout,
			Usage: "Graceful shutdown window",
		},
	}

	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Run the box office HTTP API",
		Description: `Serve box office queries over HTTP. Each request runs the data script once
and relays its JSON output.

Routes (relative to --route-prefix):
  /daily      ?date=YYYY-MM-DD
  /weekend    ?year=&week=
  /weekly     ?year=&week=
  /monthly    ?year=&month=
  /seasonal   ?year=&season=
  /quarterly  ?year=&quarter=
  /yearly     ?year=
  /api-docs   OpenAPI explorer (/api-docs/openapi.json, /api-docs/openapi.yaml)

Settings are read from flags, BOXOFFICE_* environment variables, and the
--config file, in that order of precedence.`,
		Flags: append(flags, invokerFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			v, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			appCfg, err := apiConfig(v)
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			srvCfg, err := serverConfig(v)
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			slog.Debug("serve configuration",
				"port", srvCfg.Port,
				"routePrefix", appCfg.RoutePrefix,
				"command", appCfg.Command,
				"script", appCfg.Script,
				"maxConcurrent", appCfg.MaxConcurrent,
				"maxOutputBytes", appCfg.MaxOutputBytes)

			return api.Run(ctx, appCfg, server.WithConfig(srvCfg))
		},
	}
}
