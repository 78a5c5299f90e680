// Command cookiectl is tooling for hybrid rendered cookies: it parses cookie
// headers, encodes and decodes typed cookie values, runs a demo server whose
// pages set cookies during prerender and over a live connection, and drives that
// server with a headless browser.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
