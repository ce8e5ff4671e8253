package fs

import (
	"fmt"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/assets/internal/core/domain"
	"go.trai.ch/assets/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher derives artifact keys from file names and modification times.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ArtifactKey hashes the ordered path list and the concatenated modification
// times of the files. File contents are never read.
func (h *Hasher) ArtifactKey(paths []string) (domain.ArtifactKey, error) {
	names := xxhash.New()
	mtimes := xxhash.New()

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return domain.ArtifactKey{}, zerr.With(zerr.Wrap(domain.ErrHashFailed, err.Error()), "path", path)
		}

		_, _ = names.WriteString(path)
		_, _ = names.Write([]byte{0}) // Separator

		_, _ = mtimes.WriteString(strconv.FormatInt(info.ModTime().UnixNano(), 10))
		_, _ = mtimes.Write([]byte{0})
	}

	return domain.ArtifactKey{
		NameDigest:  format(names.Sum64()),
		MtimeDigest: format(mtimes.Sum64()),
	}, nil
}

// Digest hashes the given parts in order.
func (h *Hasher) Digest(parts ...string) string {
	d := xxhash.New()
	for _, p := range parts {
		_, _ = d.WriteString(p)
		_, _ = d.Write([]byte{0})
	}
	return format(d.Sum64())
}

func format(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
