// Package cli implements the boxoffice command-line interface.
//
// # Overview
//
// The boxoffice CLI runs the box office HTTP API and issues one-off queries
// against the same data script, without a server in between.
//
// # Commands
//
// serve - Run the HTTP API:
//
//	boxoffice serve [--port 3000] [--route-prefix /api] [--script boxoff.py]
//
// Serves the seven query routes, their OpenAPI document, and the health,
// readiness and metrics endpoints until interrupted.
//
// query - Run a single query:
//
//	boxoffice query [--date D] [--year Y] [--week W] [--month M] [--season S] [--quarter Q] KIND
//
// Validates the parameters exactly as the HTTP API does, runs the data script
// once, and prints its result. A failed run exits non-zero with the script's
// diagnostic message.
//
// # Global Flags
//
//	--config, -c   YAML config file (env: BOXOFFICE_CONFIG)
//	--log-level    Log level: debug, info, warn, error (env: LOG_LEVEL)
//	--debug        Shorthand for --log-level=debug
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Configuration
//
// serve and query resolve settings from, in order of precedence: flags,
// environment variables, the config file, and built-in defaults. Config file
// keys match flag names:
//
//	port: 3000
//	route-prefix: /api
//	command: python3
//	script: boxoff.py
//	workdir: /srv/boxoffice
//	max-concurrent: 8
//	max-output-bytes: 1048576
//
// Every key can also be set as BOXOFFICE_<KEY> with dashes replaced by
// underscores. PORT and ROUTE_PREFIX are honored as well, and VERCEL switches
// the default command to the unversioned python interpreter.
//
// # Output Formats
//
// query writes JSON by default. --format selects json, yaml, or table;
// without it, the --output file extension decides (.yaml, .yml, .table, .txt).
//
// # Exit Codes
//
//	0  Success
//	1  Invalid arguments, configuration error, or failed query
package cli
