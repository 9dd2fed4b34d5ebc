package export

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/dkeller9/contactlens/internal/errors"
)

// WriteFileAtomic writes data to path via a temp file and rename, so a
// failed write never leaves a partial artifact and never clobbers an
// existing file with garbage.
func WriteFileAtomic(path string, data []byte) error {
	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := path + "." + hex.EncodeToString(randBytes) + ".tmp"

	file, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return errors.NewOutputWrite(path, err)
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := file.Write(data); err != nil {
		return errors.NewOutputWrite(path, err)
	}
	if err := file.Sync(); err != nil {
		return errors.NewOutputWrite(path, err)
	}

	// Close before rename (required on Windows; fine elsewhere).
	if err := file.Close(); err != nil {
		return errors.NewOutputWrite(path, err)
	}
	file = nil

	// os.Rename would follow a symlink destination; refuse instead.
	if info, err := os.Lstat(path); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return errors.NewOutputWrite(path, fmt.Errorf("destination is a symlink"))
	}

	if err := os.Rename(tempPath, path); err != nil {
		return errors.NewOutputWrite(path, err)
	}

	success = true
	return nil
}
