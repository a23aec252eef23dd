package config

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/flowave-io/mathflow/pkg/log"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-getter"
	"github.com/hashicorp/go-safetemp"
)

// CacheDir holds downloaded remote config sources, relative to the working
// directory.
const CacheDir = ".mathflow/cache"

// Open loads the config named by source: empty for DefaultFile, a local
// path, or a remote address that is fetched into CacheDir first.
func Open(ctx context.Context, source string) (*Config, error) {
	if source == "" || IsLocalSource(strings.TrimSpace(source)) {
		return Load(strings.TrimPrefix(strings.TrimSpace(source), "file://"))
	}
	path, err := Resolve(ctx, source, CacheDir)
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Resolve returns a local file path for a config source.
//   - Local paths (and file:// URLs) are returned as absolute paths.
//   - Anything else go-getter understands (http(s), git::, ...) is downloaded
//     into cacheDir under a name derived from the source. When a download
//     fails and an earlier copy is cached, the cached copy is used.
func Resolve(ctx context.Context, source, cacheDir string) (string, error) {
	s := strings.TrimSpace(source)
	if s == "" {
		return "", fmt.Errorf("empty config source")
	}
	if IsLocalSource(s) {
		abs, err := filepath.Abs(strings.TrimPrefix(s, "file://"))
		if err != nil {
			return "", err
		}
		if fi, err := os.Stat(abs); err != nil || fi.IsDir() {
			return "", fmt.Errorf("config file not found: %s", abs)
		}
		return abs, nil
	}
	if cacheDir == "" {
		return "", fmt.Errorf("cacheDir required for remote sources")
	}
	if err := os.MkdirAll(cacheDir, 0o700); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}
	dest := filepath.Join(cacheDir, fingerprint(s)+".hcl")
	if err := fetch(ctx, s, cacheDir, dest); err != nil {
		if fi, statErr := os.Stat(dest); statErr == nil && !fi.IsDir() {
			log.Warn("config fetch failed, using cached copy:", err)
			return dest, nil
		}
		return "", err
	}
	return dest, nil
}

func fetch(ctx context.Context, src, cacheDir, dest string) error {
	// The temp path lives in cacheDir so the final rename stays on one device.
	tmp, cleanup, err := safetemp.Dir(cacheDir, "fetch-")
	if err != nil {
		return fmt.Errorf("temp dir: %w", err)
	}
	defer func() { _ = cleanup.Close() }()

	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  tmp,
		Mode: getter.ClientModeFile,
		Getters: map[string]getter.Getter{
			"http":  &getter.HttpGetter{Netrc: true, Client: defaultHTTPClient()},
			"https": &getter.HttpGetter{Netrc: true, Client: defaultHTTPClient()},
			"git":   &getter.GitGetter{},
			"file":  &getter.FileGetter{Copy: true},
		},
	}
	if err := client.Get(); err != nil {
		return fmt.Errorf("fetch config source: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		return fmt.Errorf("cache move: %w", err)
	}
	log.Debug("fetched config", src, "->", dest)
	return nil
}

func defaultHTTPClient() *http.Client {
	return cleanhttp.DefaultClient()
}

func fingerprint(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:])
}

// IsLocalSource reports whether s names a file on this machine rather than
// an address for go-getter.
func IsLocalSource(s string) bool {
	if strings.HasPrefix(s, "file://") {
		return true
	}
	return !strings.Contains(s, "://") && !strings.Contains(s, "::")
}
