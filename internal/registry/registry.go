// Package registry looks up the latest published version of a package on
// PyPI, npm, or crates.io. Lookups are single-shot best-effort calls with a
// fixed timeout and no retry; a failure never blocks the release workflow.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds one lookup when the config does not say otherwise.
const DefaultTimeout = 10 * time.Second

// Client queries package registries. Base URLs are fields so tests can point
// them at a local server.
type Client struct {
	http *http.Client

	PyPIBase   string
	NPMBase    string
	CratesBase string
}

func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http:       &http.Client{Timeout: timeout},
		PyPIBase:   "https://pypi.org",
		NPMBase:    "https://registry.npmjs.org",
		CratesBase: "https://crates.io",
	}
}

// Latest returns the newest published version of pkg in the given ecosystem
// (pypi, npm, or crates).
func (c *Client) Latest(ctx context.Context, ecosystem, pkg string) (string, error) {
	if pkg == "" {
		return "", fmt.Errorf("empty package name")
	}

	switch ecosystem {
	case "pypi":
		var body struct {
			Info struct {
				Version string `json:"version"`
			} `json:"info"`
		}
		u := fmt.Sprintf("%s/pypi/%s/json", c.PyPIBase, url.PathEscape(pkg))
		if err := c.get(ctx, u, &body); err != nil {
			return "", err
		}
		return body.Info.Version, nil

	case "npm":
		var body struct {
			Version string `json:"version"`
		}
		u := fmt.Sprintf("%s/%s/latest", c.NPMBase, url.PathEscape(pkg))
		if err := c.get(ctx, u, &body); err != nil {
			return "", err
		}
		return body.Version, nil

	case "crates":
		var body struct {
			Crate struct {
				MaxStable string `json:"max_stable_version"`
				Newest    string `json:"newest_version"`
			} `json:"crate"`
		}
		u := fmt.Sprintf("%s/api/v1/crates/%s", c.CratesBase, url.PathEscape(pkg))
		if err := c.get(ctx, u, &body); err != nil {
			return "", err
		}
		if body.Crate.MaxStable != "" {
			return body.Crate.MaxStable, nil
		}
		return body.Crate.Newest, nil

	default:
		return "", fmt.Errorf("unknown ecosystem %q", ecosystem)
	}
}

func (c *Client) get(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("registry request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("registry returned %s for %s", resp.Status, u)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding registry response: %w", err)
	}
	return nil
}
