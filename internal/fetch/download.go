package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// mmyyToken in a configured URL is replaced with the current two-digit
// month and year, e.g. 0826 for 2026-08.
const mmyyToken = "{mmyy}"

// Download fetches every configured seller URL chain concurrently into the
// download directory and returns the paths written. Each chain is a list of
// fallback URLs for one category; a chain that fails on every URL is logged
// and skipped rather than failing the run, since the remaining sellers'
// data is still worth importing.
func (f *Fetcher) Download(ctx context.Context) ([]string, error) {
	chains := f.urlChains()
	if len(chains) == 0 {
		return nil, nil
	}

	dir := f.DownloadDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create download dir: %w", err)
	}

	var (
		mu    sync.Mutex
		paths []string
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(4)

	for _, chain := range chains {
		chain := chain
		eg.Go(func() error {
			path, err := f.tryURLs(ctx, dir, chain)
			if err != nil {
				f.logger.Error("download error", "urls", chain, "error", err)
				return nil
			}

			mu.Lock()
			paths = append(paths, path)
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// urlChains flattens the configured sellers into URL fallback chains with
// the {mmyy} token expanded.
func (f *Fetcher) urlChains() [][]string {
	mmyy := time.Now().UTC().Format("0106")

	var chains [][]string
	for _, s := range f.cfg.Sellers {
		for _, chain := range s.URLs {
			for _, urls := range chain {
				expanded := make([]string, len(urls))
				for i, u := range urls {
					expanded[i] = strings.ReplaceAll(u, mmyyToken, mmyy)
				}
				chains = append(chains, expanded)
			}
		}
	}
	return chains
}

// tryURLs walks one fallback chain and saves the first successful response
// under a randomized name derived from the URL's last path segment.
func (f *Fetcher) tryURLs(ctx context.Context, dir string, urls []string) (string, error) {
	for _, u := range urls {
		f.logger.Debug("trying to download", "url", u)

		path, err := f.fetchOne(ctx, dir, u)
		if err != nil {
			f.logger.Error("http call error", "url", u, "error", err)
			continue
		}

		f.logger.Info("downloaded", "url", u, "path", path)
		return path, nil
	}

	return "", fmt.Errorf("failed to download from any of the provided urls")
}

func (f *Fetcher) fetchOne(ctx context.Context, dir, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get content from url %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("url %s answered %s", url, resp.Status)
	}

	name := url[strings.LastIndex(url, "/")+1:]
	if name == "" {
		name = "download"
	}
	path := filepath.Join(dir, randomPrefix(name))

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create download target %s: %w", path, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to save response from %s: %w", url, err)
	}

	return path, nil
}
