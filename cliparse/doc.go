// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3000)
  - DatabaseURL: PostgreSQL connection string (required)
  - SiteURL: Public base URL used when building share, host, and
    confirmed links (default: http://localhost:3000)

# CLI Flags

	-p         Server port
	-d         Database URL
	-site-url  Public site URL

# Environment Variables

Flags fall back to environment variables:

	PORT         → -p
	DATABASE_URL → -d
	SITE_URL     → -site-url

CLI flags take precedence over environment variables. A .env file in the
working directory is loaded on startup via godotenv autoload.

# Validation

ParseFlags returns an error if DATABASE_URL is missing. A trailing slash on
SiteURL is stripped so link building can safely concatenate paths.
*/
package cliparse
