package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

func ensureDir(at string) error {
	retrying := false
	for {
		stat, err := os.Stat(at)
		if os.IsNotExist(err) && !retrying {
			if err = os.MkdirAll(at, 0755); err != nil {
				return fmt.Errorf("mkdir_p %s: %w", at, err)
			}
			retrying = true
			continue
		} else if err != nil {
			return err
		}

		if stat.IsDir() {
			return nil
		}

		return fmt.Errorf("%s: exists and is not a directory", at)
	}
}

func NewLocalStorage(basePath string) (Provider, error) {
	basePath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}

	artifactPath := filepath.Join(basePath, "artifacts")
	tempPath := filepath.Join(basePath, "tmp")

	for _, p := range []string{basePath, artifactPath, tempPath} {
		if err = ensureDir(p); err != nil {
			return nil, err
		}
	}

	return LocalStorage{
		basePath:     basePath,
		artifactPath: artifactPath,
		tempPath:     tempPath,
		log:          zap.L().With(zap.String("component", "local_storage")),
	}, nil
}

type LocalStorage struct {
	basePath     string
	artifactPath string
	tempPath     string
	log          *zap.Logger
}

func (l LocalStorage) pathOf(locator ObjectDescriptor) string {
	components := make([]string, 1, 4)
	components[0] = l.artifactPath
	components = append(components, locator.PathComponents()...)

	return filepath.Join(components...)
}

func burninate(path string) {
	_ = os.RemoveAll(path + ".meta")
	_ = os.RemoveAll(path)
}

func readMeta(path string) (*Item, error) {
	f, err := os.Open(path + ".meta")
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var meta Item
	if err = json.NewDecoder(f).Decode(&meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func writeMeta(target string, meta *Item) error {
	m, err := os.OpenFile(target+".meta", os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()

	if err = json.NewEncoder(m).Encode(meta); err != nil {
		return err
	}

	return m.Sync()
}

// checksumOfFile returns an empty string when path does not exist.
func checksumOfFile(path string) (string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return "", nil
	} else if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := newHash()
	if _, err = io.Copy(h, f); err != nil {
		return "", err
	}
	return checksumOf(h), nil
}

func (l LocalStorage) MetadataOf(locator ObjectDescriptor) (*Item, error) {
	p := l.pathOf(locator)
	if _, err := os.Stat(p); os.IsNotExist(err) {
		return nil, ErrNotExist{path: p}
	} else if err != nil {
		return nil, err
	}

	meta, err := readMeta(p)
	if os.IsNotExist(err) {
		return nil, ErrNotExist{path: p}
	} else if err != nil {
		return nil, fmt.Errorf("reading metadata of %s: %w", p, err)
	}
	meta.Location = p

	return meta, nil
}

// Store writes stream to a temporary file and moves it into place, unless
// the destination already holds identical content.
func (l LocalStorage) Store(locator ObjectDescriptor, mime string, objectSize int64, stream io.ReadCloser) (*Item, error) {
	defer func() { _ = stream.Close() }()

	target := l.pathOf(locator)
	if err := ensureDir(filepath.Dir(target)); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(l.tempPath, "artifact-*")
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	h := newHash()
	written, err := io.Copy(io.MultiWriter(tmp, h), stream)
	if err != nil {
		_ = tmp.Close()
		return nil, err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return nil, err
	}
	if err = tmp.Close(); err != nil {
		return nil, err
	}

	if objectSize >= 0 && written != objectSize {
		return nil, fmt.Errorf("short download for %s: got %d bytes, expected %d", target, written, objectSize)
	}

	meta := Item{
		CreatedAt: time.Now().UTC(),
		Size:      written,
		Mime:      mime,
		Checksum:  checksumOf(h),
		Location:  target,
	}

	existing, err := checksumOfFile(target)
	if err != nil {
		return nil, err
	}
	if existing == meta.Checksum {
		l.log.Info("Artifact unchanged, skipping write", zap.String("path", target), zap.String("checksum", existing))
		if previous, err := readMeta(target); err == nil {
			meta.CreatedAt = previous.CreatedAt
		} else if err = writeMeta(target, &meta); err != nil {
			return nil, err
		}
		meta.Unchanged = true
		return &meta, nil
	}

	if err = os.Rename(tmp.Name(), target); err != nil {
		burninate(target)
		return nil, err
	}

	if err = writeMeta(target, &meta); err != nil {
		burninate(target)
		return nil, err
	}

	return &meta, nil
}
