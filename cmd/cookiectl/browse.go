package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/rendercookie/core/livecookie"
	"github.com/dmitrymomot/rendercookie/core/logger"
)

var (
	browseTimeout time.Duration
	browseLive    string
	browseEval    string
)

var browseCmd = &cobra.Command{
	Use:   "browse <url>",
	Short: "Load a page headlessly, answer its live cookie session and print the cookie jar",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), browseTimeout)
		defer cancel()

		vm := livecookie.NewBrowserVM()
		if err := browse(ctx, vm, args[0], browseLive); err != nil {
			return err
		}

		if browseEval != "" {
			v, err := vm.Eval(ctx, browseEval)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(cmd.ErrOrStderr(), v); err != nil {
				return err
			}
		}
		return writeOutput(cmd.OutOrStdout(), vm.Cookies())
	},
}

// browse fetches page with the cookies in vm and stores what it sets, then opens the live endpoint with the cookies
// the page set and serves it from vm until the server ends the session.
// An empty live skips the live session.
func browse(ctx context.Context, vm *livecookie.BrowserVM, page, live string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, page, nil)
	if err != nil {
		return err
	}
	if h := vm.CookieHeader(); h != "" {
		req.Header.Set("Cookie", h)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch page: %w", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	if err := vm.ApplyResponse(resp); err != nil {
		return err
	}
	log.DebugContext(ctx, "page loaded", logger.StatusCode(resp.StatusCode), logger.Count("cookies", len(vm.Cookies())))

	if live == "" {
		return nil
	}
	wsURL, err := liveURL(page, live)
	if err != nil {
		return err
	}

	header := http.Header{}
	if h := vm.CookieHeader(); h != "" {
		header.Set("Cookie", h)
	}
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		return fmt.Errorf("dial %s: %w", wsURL, err)
	}
	defer ws.Close()

	return livecookie.ServePeer(ctx, ws, vm)
}

// liveURL resolves path against page and switches to the websocket scheme.
func liveURL(page, path string) (string, error) {
	base, err := url.Parse(page)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", err
	}
	u := base.ResolveReference(ref)
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return u.String(), nil
}

func init() {
	browseCmd.Flags().DurationVar(&browseTimeout, "timeout", 10*time.Second, "overall timeout")
	browseCmd.Flags().StringVar(&browseLive, "live", livePath, "live endpoint path; empty skips the live session")
	browseCmd.Flags().StringVar(&browseEval, "eval", "", "JavaScript evaluated against document.cookie before printing")
	rootCmd.AddCommand(browseCmd)
}
