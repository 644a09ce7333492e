package peakroc

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

const payload = "chr1\t0\t10\nchr1\t10\t20\n"

func TestDetectDataType(t *testing.T) {
	tests := []struct {
		head []byte
		want DataType
	}{
		{[]byte{0x1f, 0x8b, 0x08, 0x00}, DataTypeGzip},
		{[]byte{0x50, 0x4b, 0x03, 0x04}, DataTypeZip},
		{[]byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}, DataTypeXZ},
		{[]byte("BZh91AY"), DataTypeBZip2},
		{[]byte{0x28, 0xb5, 0x2f, 0xfd}, DataTypeZstd},
		{[]byte{0x04, 0x22, 0x4d, 0x18}, DataTypeLZ4},
		{[]byte("chr1\t0"), DataTypeNoCompression},
		{nil, DataTypeNoCompression},
	}

	for _, tt := range tests {
		if got := DetectDataType(tt.head); got != tt.want {
			t.Errorf("DetectDataType(%x) = %s, want %s", tt.head, got, tt.want)
		}
	}
}

func compressed(t *testing.T, dt DataType) []byte {
	t.Helper()

	var buf bytes.Buffer
	var w io.WriteCloser
	var err error

	switch dt {
	case DataTypeGzip:
		w = gzip.NewWriter(&buf)
	case DataTypeZstd:
		w, err = zstd.NewWriter(&buf)
	case DataTypeLZ4:
		w = lz4.NewWriter(&buf)
	case DataTypeZip:
		zw := zip.NewWriter(&buf)
		f, err := zw.Create("peaks.bed")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := io.WriteString(f, payload); err != nil {
			t.Fatal(err)
		}
		if err := zw.Close(); err != nil {
			t.Fatal(err)
		}
		return buf.Bytes()
	default:
		return []byte(payload)
	}
	if err != nil {
		t.Fatal(err)
	}

	if _, err := io.WriteString(w, payload); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	return buf.Bytes()
}

func TestOpenDecompresses(t *testing.T) {
	dir := t.TempDir()

	for _, dt := range []DataType{DataTypeNoCompression, DataTypeGzip, DataTypeZip, DataTypeZstd, DataTypeLZ4} {
		path := filepath.Join(dir, dt.String())
		if err := os.WriteFile(path, compressed(t, dt), 0o644); err != nil {
			t.Fatal(err)
		}

		rc, err := Open(path, nil)
		if err != nil {
			t.Fatalf("%s: %v", dt, err)
		}
		got, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("%s: %v", dt, err)
		}
		if err := rc.Close(); err != nil {
			t.Errorf("%s: close: %v", dt, err)
		}

		if string(got) != payload {
			t.Errorf("%s: read %q, want %q", dt, got, payload)
		}
	}
}

func TestOpenShortFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	rc, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()

	if got, _ := io.ReadAll(rc); string(got) != "x" {
		t.Errorf("read %q", got)
	}
}

func TestOpenErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.bed")
	if _, err := Open(missing, nil); err == nil || !bytes.Contains([]byte(err.Error()), []byte("missing.bed")) {
		t.Errorf("expected an error naming the file, got %v", err)
	}

	if _, err := Open("gs://bucket/file.bed", nil); err == nil {
		t.Error("expected an error for a gs:// path without a client")
	}
}

func TestSplitGSPath(t *testing.T) {
	tests := []struct {
		path           string
		bucket, object string
		wantErr        bool
	}{
		{"gs://bucket/dir/file.bed", "bucket", "dir/file.bed", false},
		{"gs://bucket/file.bed", "bucket", "file.bed", false},
		{"gs://bucket", "", "", true},
		{"gs:///file.bed", "", "", true},
	}

	for _, tt := range tests {
		bucket, object, err := SplitGSPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("SplitGSPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if bucket != tt.bucket || object != tt.object {
			t.Errorf("SplitGSPath(%q) = %q, %q", tt.path, bucket, object)
		}
	}

	if !IsGSPath("gs://a/b") || IsGSPath("/a/b") {
		t.Error("IsGSPath misclassified a path")
	}
}

func TestDetermineDelimiter(t *testing.T) {
	tests := []struct {
		sample string
		want   rune
	}{
		{"chr1\t0\t10\nchr1\t10\t20\n", '\t'},
		{"chr1,0,10\nchr1,10,20\n", ','},
		{"", '\t'},
	}

	for _, tt := range tests {
		if got := DetermineDelimiter(tt.sample); got != tt.want {
			t.Errorf("DetermineDelimiter(%q) = %q, want %q", tt.sample, got, tt.want)
		}
	}
}

func TestExpandHome(t *testing.T) {
	usr, err := user.Current()
	if err != nil {
		t.Skip("no current user")
	}

	if got := ExpandHome("~"); got != usr.HomeDir {
		t.Errorf("ExpandHome(~) = %q", got)
	}
	if got := ExpandHome("~/data/x.bed"); got != filepath.Join(usr.HomeDir, "data/x.bed") {
		t.Errorf("ExpandHome(~/data/x.bed) = %q", got)
	}

	for _, path := range []string{"/abs/~/x", "rel/x", "gs://b/~/x", "~user/x"} {
		if got := ExpandHome(path); got != path {
			t.Errorf("ExpandHome(%q) = %q, want it unchanged", path, got)
		}
	}
}
