// Package config loads runtime configuration for the kbclip CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config. Comments are allowed.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-v string   token verification endpoint URL
//	-s string   knowledge base storage endpoint URL
//	-k string   api key sent with captures
//	-t int      request timeout (seconds)
//	-d string   session database path
//	-b string   browser DevTools endpoint (e.g. http://127.0.0.1:9222)
//	-u string   capture this URL instead of the browser's active tab
//	-n string   title for the page given with -u
//
// # JSON schema
//
// Only keys present in the file override earlier values. request_timeout is
// a timex.Duration, so "10s" and integer nanoseconds are both accepted:
//
//	{
//	  // local backend
//	  "verify_endpoint_url": "http://127.0.0.1:8080/api/verify-token",
//	  "capture_endpoint_url": "http://127.0.0.1:8080/rest/v1/knowledge_base",
//	  "api_key": "",
//	  "request_timeout": "10s",
//	  "database_path": "/home/me/.config/kbclip/session.db",
//	  "cdp_endpoint": "http://127.0.0.1:9222"
//	}
package config
