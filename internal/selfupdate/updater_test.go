package selfupdate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sppa/internal/session"
	"github.com/abhisek/sppa/internal/store"
)

// releaseHost serves a latest-release document plus the archive and
// checksums for each tag in archives.
func releaseHost(t *testing.T, latest string, archives map[string][]byte, badSum bool) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/repos/abhisek/sppa/releases/latest" {
			_, _ = w.Write([]byte(`{"tag_name":"` + latest + `","html_url":"https://example.com/` + latest + `"}`))
			return
		}
		for tag, archive := range archives {
			asset, _ := assetName(tag)
			prefix := "/abhisek/sppa/releases/download/" + tag + "/"
			switch r.URL.Path {
			case prefix + asset:
				_, _ = w.Write(archive)
				return
			case prefix + checksumsName(tag):
				sum := sha256.Sum256(archive)
				hexSum := hex.EncodeToString(sum[:])
				if badSum {
					hexSum = strings.Repeat("0", 64)
				}
				_, _ = fmt.Fprintf(w, "%s  %s\n", hexSum, asset)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)
	return server
}

func installedBinary(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sppa")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0755))
	return path
}

func TestUpdate(t *testing.T) {
	if asset, err := assetName("v1.0.0"); err != nil || strings.HasSuffix(asset, ".zip") {
		t.Skip("no tar.gz release asset for this platform")
	}
	archive := buildTarGz(t, "sppa", []byte("sppa-1.3.0"))

	checker := func(server *httptest.Server, execPath string) *Checker {
		return NewChecker(
			WithBaseURL(server.URL),
			WithDownloadBaseURL(server.URL),
			withExecPath(func() (string, error) { return execPath, nil }),
		)
	}
	noop := func(UpdateProgress) {}

	t.Run("latest minor release", func(t *testing.T) {
		server := releaseHost(t, "v1.3.0", map[string][]byte{"v1.3.0": archive}, false)
		execPath := installedBinary(t)

		var stages []string
		err := checker(server, execPath).Update(context.Background(), &UpdateInput{CurrentVersion: "v1.2.1"}, func(p UpdateProgress) {
			stages = append(stages, p.Stage)
		})
		require.NoError(t, err)

		got, err := os.ReadFile(execPath)
		require.NoError(t, err)
		assert.Equal(t, []byte("sppa-1.3.0"), got)
		assert.Equal(t, []string{"check", "download", "verify", "extract", "apply", "done"}, stages)
	})

	t.Run("major release needs AllowMajor", func(t *testing.T) {
		server := releaseHost(t, "v2.0.0", map[string][]byte{"v2.0.0": archive}, false)
		execPath := installedBinary(t)

		err := checker(server, execPath).Update(context.Background(), &UpdateInput{CurrentVersion: "v1.9.0"}, noop)
		assert.ErrorIs(t, err, ErrMajorUpgrade)
		got, _ := os.ReadFile(execPath)
		assert.Equal(t, []byte("old"), got)

		err = checker(server, execPath).Update(context.Background(), &UpdateInput{CurrentVersion: "v1.9.0", AllowMajor: true}, noop)
		require.NoError(t, err)
	})

	t.Run("pinned downgrade", func(t *testing.T) {
		server := releaseHost(t, "v1.3.0", map[string][]byte{"v1.1.0": archive}, false)
		execPath := installedBinary(t)

		var msgs []string
		err := checker(server, execPath).Update(context.Background(), &UpdateInput{CurrentVersion: "v1.3.0", TargetVersion: "1.1.0"}, func(p UpdateProgress) {
			msgs = append(msgs, p.Message)
		})
		require.NoError(t, err)
		assert.Contains(t, msgs, "Downloading v1.1.0 (older than v1.3.0)...")
	})

	t.Run("dev build", func(t *testing.T) {
		err := NewChecker().Update(context.Background(), &UpdateInput{CurrentVersion: "(devel)"}, noop)
		assert.ErrorIs(t, err, ErrDevBuild)
	})

	t.Run("already latest", func(t *testing.T) {
		server := releaseHost(t, "v1.3.0", nil, false)
		err := checker(server, installedBinary(t)).Update(context.Background(), &UpdateInput{CurrentVersion: "v1.3.0"}, noop)
		assert.ErrorIs(t, err, ErrAlreadyLatest)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		server := releaseHost(t, "v1.3.0", map[string][]byte{"v1.3.0": archive}, true)
		err := checker(server, installedBinary(t)).Update(context.Background(), &UpdateInput{CurrentVersion: "v1.2.0"}, noop)
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("download failure", func(t *testing.T) {
		server := releaseHost(t, "v1.3.0", nil, false)
		err := checker(server, installedBinary(t)).Update(context.Background(), &UpdateInput{CurrentVersion: "v1.2.0"}, noop)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "download archive")
	})

	t.Run("open interview blocks update", func(t *testing.T) {
		st := openTestStore(t)
		ctx := context.Background()
		require.NoError(t, st.EventRepo().AppendSessionEvent(ctx, store.SessionEventData{
			SessionID: "live-1", Action: session.ActionStarted, Phase: "level-select",
		}))
		server := releaseHost(t, "v1.3.0", map[string][]byte{"v1.3.0": archive}, false)
		execPath := installedBinary(t)

		err := checker(server, execPath).Update(ctx, &UpdateInput{
			CurrentVersion: "v1.2.0",
			Guard:          &Guard{Events: st.EventRepo(), Sessions: st.SessionRepo()},
		}, noop)
		assert.ErrorIs(t, err, ErrInterviewOpen)
		got, _ := os.ReadFile(execPath)
		assert.Equal(t, []byte("old"), got)
	})
}
