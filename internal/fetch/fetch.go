// Package fetch is the download collaborator of the item tree: it takes a
// resolved artifact URL and a destination and streams the gzipped tarball
// behind the URL onto a filesystem, reporting byte progress. It never
// touches tree internals and holds no tree locks during I/O.
package fetch

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	billy "github.com/go-git/go-billy/v5"

	"github.com/agentic-research/mirrortree/internal/tree"
)

// FetchLeaf resolves the leaf's URL from its ancestor chain and unpacks the
// artifact under dest on fsys.
func FetchLeaf(ctx context.Context, leaf *tree.Leaf, fsys billy.Filesystem, dest string, hook Hook) error {
	url, err := leaf.URL()
	if err != nil {
		return err
	}
	return DownloadAndUnpack(ctx, url, fsys, dest, hook)
}

// DownloadAndUnpack streams a gzipped tarball from url and extracts it under
// dest on fsys. Progress is reported against the compressed stream, so the
// fraction tracks network transfer, not extracted size. The request is
// cancelled with ctx.
func DownloadAndUnpack(ctx context.Context, url string, fsys billy.Filesystem, dest string, hook Hook) error {
	if hook == nil {
		hook = NopHook{}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", url, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: unexpected status %s", url, resp.Status)
	}

	hook.Start(resp.ContentLength)
	gz, err := gzip.NewReader(&countingReader{r: resp.Body, hook: hook})
	if err != nil {
		return fmt.Errorf("open gzip stream: %w", err)
	}
	defer func() { _ = gz.Close() }()

	return unpack(tar.NewReader(gz), fsys, dest)
}

func unpack(tr *tar.Reader, fsys billy.Filesystem, dest string) error {
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read tar entry: %w", err)
		}
		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := fsys.MkdirAll(target, hdr.FileInfo().Mode()); err != nil {
				return fmt.Errorf("mkdir %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := writeEntry(fsys, target, tr, hdr.FileInfo().Mode()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := fsys.Symlink(hdr.Linkname, target); err != nil {
				return fmt.Errorf("symlink %s: %w", target, err)
			}
		default:
			// Devices, fifos and the like have no place in a release
			// archive; skip them.
		}
	}
}

func writeEntry(fsys billy.Filesystem, target string, r io.Reader, mode os.FileMode) error {
	if err := fsys.MkdirAll(path.Dir(target), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", path.Dir(target), err)
	}
	f, err := fsys.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", target, err)
	}
	return f.Close()
}

// safeJoin joins a tar entry name onto dest, rejecting entries that would
// escape it.
func safeJoin(dest, name string) (string, error) {
	cleaned := path.Clean(name)
	if path.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("tar entry %q escapes destination", name)
	}
	return path.Join(dest, cleaned), nil
}
