// Command crawl runs the ICS focused crawler.
//
// Usage:
//
//	crawl --seed https://www.ics.uci.edu --maxPages 500 --workers 16
//
// Settings not given on the command line come from --config (YAML), the
// environment and a .env file, in that order of precedence below the flags.
package main

func main() {
	Execute()
}
