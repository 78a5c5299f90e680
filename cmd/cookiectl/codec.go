package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/rendercookie/core/config"
	"github.com/dmitrymomot/rendercookie/core/cookie"
	"github.com/dmitrymomot/rendercookie/core/prerender"
)

var (
	setCookieMode bool
	base64Flag    string
)

var parseCmd = &cobra.Command{
	Use:   "parse [header]",
	Short: "Parse a Cookie (or, with --set-cookie, Set-Cookie) header into JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := argOrStdin(cmd, args)
		if err != nil {
			return err
		}

		if !setCookieMode {
			return writeOutput(cmd.OutOrStdout(), prerender.ParseCookieHeader(raw))
		}

		var out []cookie.Cookie
		for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			hc, err := http.ParseSetCookie(line)
			if err != nil {
				return fmt.Errorf("parse %q: %w", line, err)
			}
			out = append(out, cookie.Cookie{
				Name:     hc.Name,
				Value:    hc.Value,
				Expires:  hc.Expires,
				HttpOnly: hc.HttpOnly,
				Secure:   hc.Secure,
			})
		}
		return writeOutput(cmd.OutOrStdout(), out)
	},
}

var encodeCmd = &cobra.Command{
	Use:   "encode [json]",
	Short: "Encode a JSON value into its cookie wire form",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := argOrStdin(cmd, args)
		if err != nil {
			return err
		}
		if !json.Valid([]byte(raw)) {
			return fmt.Errorf("input is not valid JSON")
		}

		opts, err := codecOptions()
		if err != nil {
			return err
		}
		wire, err := cookie.Encode(json.RawMessage(raw), opts)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), wire)
		return err
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode [wire]",
	Short: "Decode a cookie wire value into JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := argOrStdin(cmd, args)
		if err != nil {
			return err
		}

		opts, err := codecOptions()
		if err != nil {
			return err
		}
		v, ok, err := cookie.Decode[json.RawMessage](raw, opts)
		if err != nil {
			return err
		}
		if !ok {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "null")
			return err
		}
		return writeOutput(cmd.OutOrStdout(), v)
	},
}

// codecOptions reads cookie.Config and lets --base64 override it.
func codecOptions() (cookie.CodecOptions, error) {
	var cfg cookie.Config
	if err := config.Load(&cfg); err != nil {
		return cookie.CodecOptions{}, err
	}
	opts := cfg.CodecOptions()

	switch base64Flag {
	case "":
	case "true":
		opts.Base64 = true
	case "false":
		opts.Base64 = false
	default:
		return opts, fmt.Errorf("--base64 must be true or false, got %q", base64Flag)
	}
	return opts, nil
}

func argOrStdin(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

// writeOutput prints v in the format chosen by --output.
func writeOutput(w io.Writer, v any) error {
	switch outputFormat {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		if raw, ok := v.(json.RawMessage); ok {
			var decoded any
			if err := json.Unmarshal(raw, &decoded); err != nil {
				return err
			}
			v = decoded
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

func init() {
	parseCmd.Flags().BoolVar(&setCookieMode, "set-cookie", false, "parse Set-Cookie lines, one per line")
	for _, c := range []*cobra.Command{encodeCmd, decodeCmd} {
		c.Flags().StringVar(&base64Flag, "base64", "", "override COOKIE_BASE64 (true|false)")
	}
	rootCmd.AddCommand(parseCmd, encodeCmd, decodeCmd)
}
