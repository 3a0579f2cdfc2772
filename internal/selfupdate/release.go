package selfupdate

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// binaryName is the executable name inside release archives.
const binaryName = "sppa"

var ErrChecksum = errors.New("checksum mismatch")

func assetName(tag string) (string, error) {
	return assetNameFor(tag, runtime.GOOS, runtime.GOARCH)
}

// assetNameFor follows the default GoReleaser archive template:
// sppa_<version>_<os>_<arch>, zipped on Windows.
func assetNameFor(tag, goos, goarch string) (string, error) {
	switch goarch {
	case "amd64", "arm64":
	default:
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	}
	ext := ".tar.gz"
	switch goos {
	case "darwin", "linux":
	case "windows":
		ext = ".zip"
	default:
		return "", fmt.Errorf("unsupported operating system: %s", goos)
	}
	return fmt.Sprintf("%s_%s_%s_%s%s", binaryName, strings.TrimPrefix(tag, "v"), goos, goarch, ext), nil
}

func checksumsName(tag string) string {
	return fmt.Sprintf("%s_%s_checksums.txt", binaryName, strings.TrimPrefix(tag, "v"))
}

// checksums maps asset names to hex SHA-256 sums, as listed in a
// GoReleaser checksums file.
type checksums map[string]string

// parseChecksums reads "<sum>  <asset>" lines and skips anything else.
func parseChecksums(data []byte) checksums {
	sums := checksums{}
	for line := range strings.Lines(string(data)) {
		if f := strings.Fields(line); len(f) == 2 {
			sums[f[1]] = strings.ToLower(f[0])
		}
	}
	return sums
}

// verify checks data against the listed sum for asset.
func (c checksums) verify(asset string, data []byte) error {
	want, ok := c[asset]
	if !ok {
		return fmt.Errorf("%w: %s is not listed", ErrChecksum, asset)
	}
	sum := sha256.Sum256(data)
	if got := hex.EncodeToString(sum[:]); got != want {
		return fmt.Errorf("%w: %s: expected %s, got %s", ErrChecksum, asset, want, got)
	}
	return nil
}
