/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/boxoffice-api/boxoffice/pkg/boxoffice"
	"github.com/boxoffice-api/boxoffice/pkg/invoker"
	"github.com/boxoffice-api/boxoffice/pkg/serializer"
)

// queryParamFlags are the query parameters, named as the HTTP API names them.
var queryParamFlags = []string{
	boxoffice.ParamDate,
	boxoffice.ParamYear,
	boxoffice.ParamWeek,
	boxoffice.ParamMonth,
	boxoffice.ParamSeason,
	boxoffice.ParamQuarter,
}

// newInvoker is replaced in tests.
var newInvoker = func(cmd *cli.Command) (invoker.Invoker, error) {
	v, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := apiConfig(v)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg.NewInvoker(), nil
}

func queryCmd() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  boxoffice.ParamDate,
			Usage: "Day to query, YYYY-MM-DD (daily)",
		},
		&cli.StringFlag{
			Name:  boxoffice.ParamYear,
			Usage: "Calendar year (weekend, weekly, monthly, seasonal, quarterly, yearly)",
		},
		&cli.StringFlag{
			Name:  boxoffice.ParamWeek,
			Usage: "Week number, 1-53 (weekend, weekly)",
		},
		&cli.StringFlag{
			Name:  boxoffice.ParamMonth,
			Usage: "Month number, 1-12 (monthly)",
		},
		&cli.StringFlag{
			Name: boxoffice.ParamSeason,
			Usage: fmt.Sprintf("Season (seasonal; supported values: %s)",
				strings.Join(boxoffice.GetSeasons(), ", ")),
		},
		&cli.StringFlag{
			Name:  boxoffice.ParamQuarter,
			Usage: "Quarter number, 1-4 (quarterly)",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Abort the query after this long (0 waits indefinitely)",
		},
		outputFlag(),
		formatFlag(),
	}

	return &cli.Command{
		Name:                  "query",
		EnableShellCompletion: true,
		Usage:                 "Run a single box office query",
		ArgsUsage:             fmt.Sprintf("<%s>", strings.Join(boxoffice.GetKinds(), "|")),
		Description: `Run one query through the data script and print its result.

Examples:
  boxoffice query daily --date 2024-03-20
  boxoffice query weekend --year 2024 --week 12 --format table
  boxoffice query quarterly --year 2023 --quarter 2 --output q2.yaml`,
		Flags: append(flags, invokerFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one query kind (supported values: %s)",
					strings.Join(boxoffice.GetKinds(), ", "))
			}

			kind, err := boxoffice.ParseKind(cmd.Args().First())
			if err != nil {
				return err
			}

			q, err := boxoffice.ParseQueryFromValues(kind, queryValues(cmd))
			if err != nil {
				return err
			}

			outFormat, err := queryOutputFormat(cmd)
			if err != nil {
				return err
			}

			inv, err := newInvoker(cmd)
			if err != nil {
				return err
			}

			if d := cmd.Duration("timeout"); d > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, d)
				defer cancel()
			}

			start := time.Now()
			out, err := boxoffice.NewClient(inv).Get(ctx, q)
			if err != nil {
				return fmt.Errorf("%s query failed: %w", kind, err)
			}
			if !out.OK() {
				return fmt.Errorf("%s query failed: %w", kind, out.Err())
			}
			slog.Debug("query complete", "kind", kind, "duration", time.Since(start).String())

			w, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			if err != nil {
				return fmt.Errorf("failed to open output: %w", err)
			}
			return writeResult(ctx, w, out.Value)
		},
	}
}

// queryValues collects the set query parameter flags.
func queryValues(cmd *cli.Command) url.Values {
	values := url.Values{}
	for _, p := range queryParamFlags {
		if s := cmd.String(p); s != "" {
			values.Set(p, s)
		}
	}
	return values
}

// queryOutputFormat uses --format when given, otherwise infers the format
// from the --output file extension.
func queryOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	if !cmd.IsSet("format") {
		if path := cmd.String("output"); path != "" {
			return serializer.FormatFromPath(path), nil
		}
	}
	return parseOutputFormat(cmd)
}

// writeResult serializes v and closes ser when it holds resources.
func writeResult(ctx context.Context, ser serializer.Serializer, v any) error {
	defer func() {
		if closer, ok := ser.(serializer.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}
	}()
	return ser.Serialize(ctx, v)
}
