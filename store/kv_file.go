package store

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// FileKV persists the whole key space as one JSON file, the service-side
// stand-in for a browser profile's localStorage. Every Set/Remove rewrites
// the file; the state is a handful of small collections, so that is cheap.
type FileKV struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// NewFileKV loads the file at path, or starts empty if it is missing or
// unreadable. A corrupt file is discarded, not propagated.
func NewFileKV(path string) *FileKV {
	kv := &FileKV{path: path, data: make(map[string]string)}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ State file unreadable, starting empty: %v", err)
		}
		return kv
	}
	if err := json.Unmarshal(raw, &kv.data); err != nil {
		log.Printf("⚠️ State file corrupt, starting empty: %v", err)
		kv.data = make(map[string]string)
	}
	return kv
}

func (f *FileKV) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

func (f *FileKV) Set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	f.flush()
}

func (f *FileKV) Remove(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	f.flush()
}

// flush writes via a temp file + rename so a crash mid-write cannot leave a
// half-written state file. Caller holds the lock.
func (f *FileKV) flush() {
	raw, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		log.Printf("❌ Failed to encode state: %v", err)
		return
	}

	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		log.Printf("❌ Failed to create state dir: %v", err)
		return
	}
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		log.Printf("❌ Failed to write state: %v", err)
		return
	}
	if err := os.Rename(tmp, f.path); err != nil {
		log.Printf("❌ Failed to replace state file: %v", err)
	}
}
