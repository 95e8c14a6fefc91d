package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"time"
)

const maxResponseBodySize = 1 << 20 // 1MB

// connection pooling limits; the monitor talks to a single API host
const (
	defaultMaxIdleConns    = 4
	defaultIdleConnTimeout = 60 * time.Second
)

// userAgent identifies the monitor to the status API, which requires a
// descriptive User-Agent header.
const userAgent = "mcwatch (+https://github.com/philipovic/mcwatch)"

// FailureKind classifies why a poll did not produce a snapshot.
//
// This is the fetcher-internal version of the classification; the mcwatch
// package converts it to its own type, avoiding circular dependencies.
type FailureKind string

const (
	KindTimeout    FailureKind = "timeout"
	KindConnection FailureKind = "connection"
	KindHTTP       FailureKind = "http"
	KindParse      FailureKind = "parse"
)

// Failure describes a poll that produced no snapshot.
type Failure struct {
	// Kind is the failure classification.
	Kind FailureKind

	// StatusCode is set for KindHTTP, zero otherwise.
	StatusCode int

	// Err is the underlying error, if any.
	Err error
}

// Snapshot is the fetcher-internal parsed status observation.
//
// Field semantics match mcwatch.Snapshot: empty strings mean "not reported",
// PlayerNames is nil when the API includes no player list.
type Snapshot struct {
	Online      bool
	PlayerCount int
	PlayerMax   int
	Version     string
	Mode        string
	Software    string
	MOTD        string
	PluginCount int
	ModCount    int
	PlayerNames []string
}

// Result holds the outcome of one poll: a snapshot or a failure, never both.
type Result struct {
	// Snapshot is the parsed observation when Failure is nil.
	Snapshot Snapshot

	// Failure is non-nil when the poll produced no snapshot.
	Failure *Failure

	// Latency is the total time taken for the request.
	Latency time.Duration
}

// StatusURL builds the API URL for a server address. Bedrock servers use a
// dedicated API prefix; both editions share the v3 document format.
func StatusURL(baseURL string, bedrock bool, address string) string {
	if bedrock {
		return fmt.Sprintf("%s/bedrock/3/%s", baseURL, address)
	}
	return fmt.Sprintf("%s/3/%s", baseURL, address)
}

// Client polls a single status API URL.
//
// Timeouts are applied per-request via context rather than a global client
// timeout, and response bodies are limited to 1MB.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a polling [Client] for the given status URL.
func NewClient(statusURL string) *Client {
	return &Client{
		url: statusURL,
		httpClient: &http.Client{
			// no default timeout - per-request timeouts via context
			Transport: &http.Transport{
				MaxIdleConns:      defaultMaxIdleConns,
				IdleConnTimeout:   defaultIdleConnTimeout,
				DisableKeepAlives: false,
			},
		},
	}
}

// URL returns the status API URL this client polls.
func (c *Client) URL() string {
	return c.url
}

// Fetch performs one poll and returns a structured [Result].
//
// Fetch always returns a Result; problems are captured in the Failure field
// rather than returned separately, which keeps the caller's cycle logic to a
// single path.
func (c *Client) Fetch(ctx context.Context, timeout time.Duration) Result {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Result{
			Failure: &Failure{Kind: KindConnection, Err: fmt.Errorf("failed to create request: %w", err)},
			Latency: time.Since(start),
		}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{
			Failure: classifyTransportError(err),
			Latency: time.Since(start),
		}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return Result{
			Failure: classifyTransportError(fmt.Errorf("failed to read response body: %w", err)),
			Latency: time.Since(start),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{
			Failure: &Failure{Kind: KindHTTP, StatusCode: resp.StatusCode},
			Latency: time.Since(start),
		}
	}

	snap, err := parseStatusDocument(body)
	if err != nil {
		return Result{
			Failure: &Failure{Kind: KindParse, Err: err},
			Latency: time.Since(start),
		}
	}

	return Result{Snapshot: snap, Latency: time.Since(start)}
}

// Close closes all idle connections in the client's connection pool.
//
// Safe to call multiple times; the client remains usable afterwards.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}

// classifyTransportError maps a transport error to a timeout or connection
// failure. Context deadline expiry and net.Error timeouts both count as
// timeouts; everything else is a connection failure.
func classifyTransportError(err error) *Failure {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Failure{Kind: KindTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Failure{Kind: KindTimeout, Err: err}
	}
	return &Failure{Kind: KindConnection, Err: err}
}

// statusDocument mirrors the subset of the mcsrvstat.us v3 response the
// monitor cares about. Java and Bedrock documents share this shape; fields
// the edition does not report are simply absent.
type statusDocument struct {
	Online  bool `json:"online"`
	Players struct {
		Online int `json:"online"`
		Max    int `json:"max"`
		List   []struct {
			Name string `json:"name"`
		} `json:"list"`
	} `json:"players"`
	Version  string `json:"version"`
	Gamemode string `json:"gamemode"`
	Software string `json:"software"`
	MOTD     struct {
		Clean []string `json:"clean"`
	} `json:"motd"`
	Plugins []struct {
		Name string `json:"name"`
	} `json:"plugins"`
	Mods []struct {
		Name string `json:"name"`
	} `json:"mods"`
}

// parseStatusDocument decodes a v3 status document into a Snapshot.
//
// The player name list is sorted so downstream set diffs and persisted state
// are deterministic. A document with players.list absent yields a nil
// PlayerNames, which downstream treats as "list unavailable".
func parseStatusDocument(body []byte) (Snapshot, error) {
	var doc statusDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode status document: %w", err)
	}

	snap := Snapshot{
		Online:      doc.Online,
		PlayerCount: doc.Players.Online,
		PlayerMax:   doc.Players.Max,
		Version:     doc.Version,
		Mode:        doc.Gamemode,
		Software:    doc.Software,
		PluginCount: len(doc.Plugins),
		ModCount:    len(doc.Mods),
	}
	if len(doc.MOTD.Clean) > 0 {
		snap.MOTD = doc.MOTD.Clean[0]
	}
	if doc.Players.List != nil {
		names := make([]string, 0, len(doc.Players.List))
		for _, p := range doc.Players.List {
			names = append(names, p.Name)
		}
		sort.Strings(names)
		snap.PlayerNames = names
	}
	return snap, nil
}
