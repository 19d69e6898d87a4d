//go:build !unix

package common

import (
	"errors"
	"os"
)

func canReadWrite(path string, st os.FileInfo) error {
	if st.Mode().Perm()&0o200 == 0 {
		return errors.New("directory is read-only")
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}
