// Package crawler fetches color nonogram puzzles from nonograms.org
// and decodes the site's obfuscated hint arrays into puzzle data.
package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/vancomm/nonogram-server/internal/nonogram"
)

const (
	colorURL = "https://www.nonograms.org/nonograms2/i/"
	bwURL    = "https://www.nonograms.org/nonograms/i/"
)

var (
	ErrMissingData = errors.New("missing puzzle data")
	ErrInvalidData = errors.New("invalid puzzle data")
)

type Kind string

const (
	Color      Kind = "color"
	BlackWhite Kind = "bw"
)

func (k Kind) baseURL() string {
	if k == BlackWhite {
		return bwURL
	}
	return colorURL
}

type Client struct {
	http *http.Client
}

func New(client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{http: client}
}

// Fetch downloads and decodes one puzzle page.
func (c Client) Fetch(ctx context.Context, kind Kind, puzzleID string) (*nonogram.Puzzle, error) {
	html, err := c.fetchHTML(ctx, kind.baseURL()+puzzleID)
	if err != nil {
		return nil, err
	}
	return Parse(kind, html)
}

// Parse decodes a puzzle from a page's HTML.
func Parse(kind Kind, html string) (*nonogram.Puzzle, error) {
	data, err := extractDArray(html)
	if err != nil {
		return nil, err
	}
	return decodePuzzle(kind, data)
}

func (c Client) fetchHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("unable to fetch puzzle page: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unable to fetch puzzle page: HTTP %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("unable to read puzzle page: %w", err)
	}
	return string(body), nil
}
