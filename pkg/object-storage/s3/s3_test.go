package s3_test

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/neodocs/neodocs/pkg/object-storage/s3"
	"github.com/neodocs/neodocs/pkg/testutils"
)

func newClient(t *testing.T) *s3.S3 {
	testutils.LoadEnvOrPanic()
	if os.Getenv("TEST_NEODOCS_S3_ENDPOINT") == "" {
		t.Skip("TEST_NEODOCS_S3_ENDPOINT not set")
	}
	return s3.NewS3Client(
		os.Getenv("TEST_NEODOCS_S3_ENDPOINT"),
		os.Getenv("TEST_NEODOCS_S3_REGION"),
		os.Getenv("TEST_NEODOCS_S3_BUCKET"),
		os.Getenv("TEST_NEODOCS_S3_ACCESS_KEY"),
		os.Getenv("TEST_NEODOCS_S3_SECRET_KEY"),
		s3.WithPathStyle(os.Getenv("TEST_NEODOCS_S3_PATH_STYLE") == "true"), // MinIO需要路径样式URL
	)
}

func Test_UploadAndGet(t *testing.T) {
	cli := newClient(t)

	if err := cli.Upload("test/qrcode.png", bytes.NewReader([]byte("not really a png"))); err != nil {
		t.Fatal(err)
	}

	resp, err := cli.GetObject(context.Background(), "test/qrcode.png")
	if err != nil {
		t.Fatal(err)
	}
	t.Log(resp.FileType, len(resp.File))
}

func Test_GenGetPreSignKey(t *testing.T) {
	cli := newClient(t)

	url, err := cli.GenGetObjectPreSignURL("test/qrcode.png")
	if err != nil {
		t.Fatal(err)
	}
	t.Log(url)
}
