package storage

import (
	"encoding/hex"
	"fmt"
	"hash"
	"regexp"
	"strings"
	"time"

	"github.com/twmb/murmur3"
)

type Item struct {
	CreatedAt time.Time `json:"created_at" tag:"app.cocov.actions.item.created_at"`
	Size      int64     `json:"size,omitempty" tag:"app.cocov.actions.item.size"`
	Mime      string    `json:"mime,omitempty" tag:"app.cocov.actions.item.mime"`
	Checksum  string    `json:"checksum,omitempty" tag:"app.cocov.actions.item.checksum"`

	// Location is where the object was written, either a filesystem path or
	// an s3:// URL.
	Location string `json:"location"`

	// Unchanged is set by Store when the existing object already held the
	// same content and nothing was written.
	Unchanged bool `json:"unchanged"`
}

type ObjectDescriptor interface {
	// PathComponents returns a list of path components making the path to the
	// item being represented by a locator instance.
	PathComponents() []string
}

func ArtifactDescriptor(owner, repo string, artifactID int64, format string) ObjectDescriptor {
	return artifactDescriptor{owner: owner, repo: repo, id: artifactID, format: format}
}

type artifactDescriptor struct {
	owner  string
	repo   string
	id     int64
	format string
}

var unsafeComponent = regexp.MustCompile(`[^a-z0-9._-]`)

func sanitize(component string) string {
	c := unsafeComponent.ReplaceAllString(strings.ToLower(component), "_")
	if c == "" || c == "." || c == ".." {
		return "_"
	}
	return c
}

func (a artifactDescriptor) PathComponents() []string {
	format := a.format
	if format == "" {
		format = "zip"
	}
	return []string{
		sanitize(a.owner),
		sanitize(a.repo),
		sanitize(fmt.Sprintf("%d.%s", a.id, format)),
	}
}

func newHash() hash.Hash {
	return murmur3.New128()
}

func checksumOf(h hash.Hash) string {
	return hex.EncodeToString(h.Sum(nil))
}
