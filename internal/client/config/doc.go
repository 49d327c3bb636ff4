// Package config loads runtime configuration for the StorePulse console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c/--config. Files ending in .yaml
//     or .yml are read as YAML; anything else as JSON with comments and
//     trailing commas allowed (JSONC).
//  3. Environment variables (STOREPULSE_*).
//  4. Command-line overrides collected by the command tree.
//
// # File schema
//
//	{
//	  // backend host
//	  "api_base_url": "http://localhost:8080",
//	  "session_db": "storepulse.db",
//	  "log_level": "info",
//	  "top_customers_limit": 5,
//	  "dashboard_window": "720h",
//	}
//
// Environment
//
//	STOREPULSE_API_BASE_URL          backend host
//	STOREPULSE_SESSION_DB            sqlite file holding the session record
//	STOREPULSE_LOG_LEVEL             debug | info | warn | error
//	STOREPULSE_TOP_CUSTOMERS_LIMIT   rows requested from top-customers
//	STOREPULSE_DASHBOARD_WINDOW      default dashboard date range, e.g. 720h
package config
