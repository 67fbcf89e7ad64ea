package snapshot

import (
	"os"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

// Write marshals doc to YAML and writes it to path under an advisory file
// lock on path+".lock", so two concurrent Write calls never interleave.
// Load does not take the lock.
func Write(path string, doc Document) error {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	out, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}

// Load reads and unmarshals a Document from path. Callers receive the
// loaded Version and may choose to recompute and compare hashes themselves
// (spec §7) — Load does not validate the version against anything.
func Load(path string) (Document, error) {
	var doc Document
	content, err := os.ReadFile(path)
	if err != nil {
		return doc, err
	}
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return doc, err
	}
	return doc, nil
}
