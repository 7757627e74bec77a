package setuptest

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"dts/system/file"
)

// UseMemFs swaps file.AppFs for an in-memory filesystem until the test
// ends.
func UseMemFs(t *testing.T) afero.Fs {
	t.Helper()

	oldFs := file.AppFs
	file.AppFs = afero.NewMemMapFs()
	t.Cleanup(func() {
		file.AppFs = oldFs
	})
	return file.AppFs
}

// TarGzArchive builds an in-memory tar.gz archive from a name to contents
// map. Entries are created as regular files.
func TarGzArchive(t *testing.T, entries map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gzw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gzw)
	for name, body := range entries {
		require.Nil(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0755,
			Size:     int64(len(body)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(body))
		require.Nil(t, err)
	}
	require.Nil(t, tw.Close())
	require.Nil(t, gzw.Close())
	return buf.Bytes()
}

// ZipArchive builds an in-memory zip archive from a name to contents map.
func ZipArchive(t *testing.T, entries map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range entries {
		w, err := zw.Create(name)
		require.Nil(t, err)
		_, err = w.Write([]byte(body))
		require.Nil(t, err)
	}
	require.Nil(t, zw.Close())
	return buf.Bytes()
}
