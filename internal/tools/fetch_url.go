package tools

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/proxy"
)

const (
	fetchTimeout      = 15 * time.Second
	defaultFetchLimit = 4000

	schemeErrMsg = "Only http:// or https:// URLs are supported, including .onion hosts over Tor."
)

// FetchURLTool retrieves a URL body, optionally over a SOCKS proxy. .onion
// hosts route through the proxy automatically; use_tor forces it either way.
type FetchURLTool struct {
	defaultProxy string
}

// NewFetchURLTool creates the tool. defaultProxy is the Tor SOCKS address
// used when a request needs the proxy and the call does not supply one.
func NewFetchURLTool(defaultProxy string) *FetchURLTool {
	if strings.TrimSpace(defaultProxy) == "" {
		defaultProxy = "socks5://127.0.0.1:9050"
	}
	return &FetchURLTool{defaultProxy: defaultProxy}
}

func (t *FetchURLTool) Name() string {
	return "fetch_url"
}

type fetchArgs struct {
	URL      string `json:"url"`
	Limit    int    `json:"limit"`
	UseTor   *bool  `json:"use_tor"`
	TorProxy string `json:"tor_proxy"`
}

func (t *FetchURLTool) Execute(ctx context.Context, args map[string]any, _ string) (string, error) {
	var in fetchArgs
	if err := decodeArgs(args, &in); err != nil {
		return "", err
	}

	lower := strings.ToLower(in.URL)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return schemeErrMsg, nil
	}
	parsed, err := url.Parse(in.URL)
	if err != nil {
		return fmt.Sprintf("Failed to fetch URL: %v", err), nil
	}

	isOnion := strings.HasSuffix(parsed.Hostname(), ".onion")
	useTor := isOnion
	if in.UseTor != nil {
		useTor = *in.UseTor
	}

	client, err := t.httpClient(useTor, in.TorProxy)
	if err != nil {
		return fmt.Sprintf("Failed to fetch URL: %v", err), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, in.URL, nil)
	if err != nil {
		return fmt.Sprintf("Failed to fetch URL: %v", err), nil
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Sprintf("Failed to fetch URL: %v", err), nil
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Sprintf("Failed to fetch URL: %s returned %s", in.URL, resp.Status), nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Sprintf("Failed to fetch URL: %v", err), nil
	}

	limit := in.Limit
	if limit <= 0 {
		limit = defaultFetchLimit
	}
	// limit and the total in the notice count characters, not bytes, so a
	// multi-byte rune is never split.
	runes := []rune(string(body))
	if len(runes) > limit {
		return string(runes[:limit]) + fmt.Sprintf("\n... (truncated, total %d chars)", len(runes)), nil
	}
	return string(runes), nil
}

// httpClient builds a 15s-bounded client, dialing through the SOCKS proxy
// when requested. The proxy resolves hostnames (required for .onion).
func (t *FetchURLTool) httpClient(useTor bool, proxyOverride string) (*http.Client, error) {
	if !useTor {
		return &http.Client{Timeout: fetchTimeout}, nil
	}

	addr := strings.TrimSpace(proxyOverride)
	if addr == "" {
		addr = t.defaultProxy
	}
	host := addr
	if u, err := url.Parse(addr); err == nil && u.Host != "" {
		host = u.Host
	}

	dialer, err := proxy.SOCKS5("tcp", host, nil, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("socks proxy %s: %w", host, err)
	}
	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, address string) (net.Conn, error) {
			if cd, ok := dialer.(proxy.ContextDialer); ok {
				return cd.DialContext(ctx, network, address)
			}
			return dialer.Dial(network, address)
		},
	}
	return &http.Client{Transport: transport, Timeout: fetchTimeout}, nil
}
