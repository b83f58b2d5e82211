package fetch

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/mirrortree/internal/tree"
)

type tarEntry struct {
	name    string
	content string
	dir     bool
}

func buildTarGz(t *testing.T, entries []tarEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, e := range entries {
		hdr := &tar.Header{Name: e.name, Mode: 0o644, Size: int64(len(e.content))}
		if e.dir {
			hdr.Typeflag = tar.TypeDir
			hdr.Mode = 0o755
			hdr.Size = 0
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if !e.dir {
			_, err := tw.Write([]byte(e.content))
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func serveArchive(t *testing.T, payload []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		_, _ = w.Write(payload)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDownloadAndUnpack(t *testing.T) {
	payload := buildTarGz(t, []tarEntry{
		{name: "bin", dir: true},
		{name: "bin/tool", content: "#!/bin/sh\necho ok\n"},
		{name: "README", content: "release notes\n"},
	})
	srv := serveArchive(t, payload)
	fsys := memfs.New()
	tracker := &Tracker{}

	err := DownloadAndUnpack(context.Background(), srv.URL+"/release.tar.gz", fsys, "/dest", tracker)
	require.NoError(t, err)

	got, err := util.ReadFile(fsys, "/dest/bin/tool")
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\necho ok\n", string(got))

	got, err = util.ReadFile(fsys, "/dest/README")
	require.NoError(t, err)
	assert.Equal(t, "release notes\n", string(got))

	assert.Equal(t, int64(len(payload)), tracker.Total())
	assert.Equal(t, int64(len(payload)), tracker.Done())
	assert.InDelta(t, 1.0, tracker.Fraction(), 0.001)
}

func TestDownloadAndUnpack_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	err := DownloadAndUnpack(context.Background(), srv.URL+"/missing.tar.gz", memfs.New(), "/dest", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestDownloadAndUnpack_RejectsEscapingEntry(t *testing.T) {
	payload := buildTarGz(t, []tarEntry{
		{name: "../evil", content: "nope"},
	})
	srv := serveArchive(t, payload)

	err := DownloadAndUnpack(context.Background(), srv.URL+"/release.tar.gz", memfs.New(), "/dest", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes destination")
}

func TestDownloadAndUnpack_NotATarball(t *testing.T) {
	srv := serveArchive(t, []byte("plain text, not gzip"))
	err := DownloadAndUnpack(context.Background(), srv.URL+"/release.tar.gz", memfs.New(), "/dest", nil)
	require.Error(t, err)
}

func TestFetchLeaf(t *testing.T) {
	payload := buildTarGz(t, []tarEntry{
		{name: "README", content: "hello\n"},
	})
	var requested string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		_, _ = w.Write(payload)
	}))
	t.Cleanup(srv.Close)

	root := tree.NewRoot("mirror")
	root.SetURLPrefix(srv.URL)
	releases, err := tree.NewSubtree("releases", root)
	require.NoError(t, err)
	require.NoError(t, root.Children().Add(releases))
	leaf, err := tree.NewLeaf("release.tar.gz", releases)
	require.NoError(t, err)
	require.NoError(t, releases.Children().Add(leaf))

	fsys := memfs.New()
	require.NoError(t, FetchLeaf(context.Background(), leaf, fsys, "/out", nil))

	assert.Equal(t, "/releases/release.tar.gz", requested)
	got, err := util.ReadFile(fsys, "/out/README")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(got))
}

func TestFetchLeaf_MissingPrefix(t *testing.T) {
	root := tree.NewRoot("mirror")
	leaf, err := tree.NewLeaf("release.tar.gz", root)
	require.NoError(t, err)

	err = FetchLeaf(context.Background(), leaf, memfs.New(), "/out", nil)
	var missing *tree.MissingURLPrefixError
	require.ErrorAs(t, err, &missing)
}

func TestTracker_FractionUnknownTotal(t *testing.T) {
	tracker := &Tracker{}
	tracker.Start(-1)
	tracker.Advance(512)
	assert.Zero(t, tracker.Fraction())
	assert.Equal(t, int64(512), tracker.Done())
}

func TestTracker_OnUpdate(t *testing.T) {
	var calls []int64
	tracker := &Tracker{OnUpdate: func(done, total int64) { calls = append(calls, done) }}
	tracker.Start(100)
	tracker.Advance(40)
	tracker.Advance(60)
	assert.Equal(t, []int64{40, 100}, calls)
}
