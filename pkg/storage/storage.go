// Package storage abstracts where uploaded files (profile photos, product
// images) live. Two drivers ship out of the box:
//
//   - "local" — local filesystem under STORAGE_LOCAL_ROOT (default)
//   - "s3"    — S3-compatible object storage (AWS S3, MinIO, R2)
//
// Boot once at startup, then write through the default disk:
//
//	storage.Connect()
//	storage.Put("avatars/42.jpg", data)
//	url := storage.URL("avatars/42.jpg")
package storage

import (
	"io"
	"sync"

	"github.com/shashiranjanraj/ordercrm/config"
	"github.com/shashiranjanraj/ordercrm/pkg/logger"
)

// Disk is the filesystem driver interface.
type Disk interface {
	// Put writes content to path, creating parents as needed.
	Put(path string, content []byte) error
	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error
	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)
	// Exists reports whether a file exists at path.
	Exists(path string) bool
	// Delete removes a file. Removing a missing file is not an error.
	Delete(path string) error
	// URL returns the public URL for path.
	URL(path string) string
}

var (
	mu          sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the storage manager. Call once at application startup.
func Connect() {
	mu.Lock()
	defer mu.Unlock()

	defaultDisk = config.StorageDisk()
	disks["local"] = newLocalDisk()

	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}

	if _, ok := disks[defaultDisk]; !ok {
		logger.Warn("storage: configured disk unavailable, using local", "disk", defaultDisk)
		defaultDisk = "local"
	}
}

// Use returns the named disk ("local" or "s3").
func Use(name string) Disk {
	mu.RLock()
	defer mu.RUnlock()
	return disks[name]
}

// Register plugs in a custom Disk (used by tests for in-memory fakes).
func Register(name string, d Disk) {
	mu.Lock()
	defer mu.Unlock()
	disks[name] = d
	if defaultDisk == "" {
		defaultDisk = name
	}
}

func active() Disk {
	mu.RLock()
	defer mu.RUnlock()
	return disks[defaultDisk]
}

// Put writes content to path on the default disk.
func Put(path string, content []byte) error { return active().Put(path, content) }

// PutStream writes from r to path on the default disk.
func PutStream(path string, r io.Reader) error { return active().PutStream(path, r) }

// Get returns file content from the default disk.
func Get(path string) ([]byte, error) { return active().Get(path) }

// Exists reports whether path exists on the default disk.
func Exists(path string) bool { return active().Exists(path) }

// Delete removes path from the default disk.
func Delete(path string) error { return active().Delete(path) }

// URL returns the public URL for path on the default disk.
func URL(path string) string { return active().URL(path) }

// LocalRoot is the filesystem root of the local disk, for serving
// uploads over HTTP. Empty when the local disk is not registered.
func LocalRoot() string {
	if d, ok := Use("local").(*localDisk); ok {
		return d.Root()
	}
	return ""
}
