// ledger/image.go
package ledger

import (
	cryptoRand "crypto/rand"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   io.Reader
)

func init() {
	// Seed a PRNG from crypto/rand so artifact suffixes are unpredictable.
	// ulid.Monotonic keeps suffixes generated within the same millisecond
	// lexicographically increasing.
	var seed [8]byte
	if _, err := cryptoRand.Read(seed[:]); err == nil {
		n := int64(0)
		for _, b := range seed {
			n = n<<8 | int64(b)
		}
		entropy = ulid.Monotonic(rand.New(rand.NewSource(n)), 0)
	} else {
		entropy = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	}
}

func artifactSuffix(now time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()

	id, err := ulid.New(ulid.Timestamp(now.UTC()), entropy)
	if err != nil {
		panic(err)
	}
	return id.String()
}

// SaveTradeImage writes image bytes under baseDir/user_<id> and returns the
// stored path for the trade row to reference. Filenames combine a local
// timestamp with a ULID suffix so concurrent saves never collide. The
// ledger row only ever holds this path, never the bytes.
func SaveTradeImage(baseDir string, userID int64, data []byte, ext string) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	userDir := filepath.Join(baseDir, fmt.Sprintf("user_%d", userID))
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}

	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		ext = ".png"
	} else if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	now := time.Now()
	name := fmt.Sprintf("%s_%s%s", now.Format("20060102_150405"), artifactSuffix(now), ext)
	dest := filepath.Join(userDir, name)
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return dest, nil
}
