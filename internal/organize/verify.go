package organize

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// hashFile computes a BLAKE3 digest of the file's content.
func hashFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}

// sameContent reports whether two files have byte-identical content.
func sameContent(a, b string) (bool, error) {
	ha, err := hashFile(a)
	if err != nil {
		return false, err
	}
	hb, err := hashFile(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(ha, hb), nil
}

// verifyContent confirms a finished copy matches its source.
func verifyContent(src, dest string) error {
	same, err := sameContent(src, dest)
	if err != nil {
		return fmt.Errorf("verify %s: %w", dest, err)
	}
	if !same {
		return fmt.Errorf("verify %s: content mismatch after copy", dest)
	}
	return nil
}
