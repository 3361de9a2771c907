package core

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/neodocs/neodocs/pkg/object-storage/s3"
)

type UploadFileMeta struct {
	UploadEndpoint string `json:"endpoint"`
	FullPath       string `json:"full_path"`
	Domain         string `json:"domain"`
	Status         string `json:"status"`
}

// FileStorage interface defines methods for file operations.
type FileStorage interface {
	GetStaticDomain() string
	GenUploadFileMeta(fullPath string, contentLength int64) (UploadFileMeta, error)
	SaveFile(fullPath string, content []byte) error
	DeleteFile(fullFilePath string) error
	GenGetObjectPreSignURL(url string) (string, error)
	DownloadFile(ctx context.Context, filePath string) (*s3.GetObjectResult, error)
}

func SetupObjectStorage(cfg ObjectStorageDriver) FileStorage {
	var s FileStorage
	switch strings.ToLower(cfg.Driver) {
	case "s3":
		s3Cfg := cfg.S3
		s = &S3FileStorage{
			StaticDomain: cfg.StaticDomain,
			S3:           s3.NewS3Client(s3Cfg.Endpoint, s3Cfg.Region, s3Cfg.Bucket, s3Cfg.AccessKey, s3Cfg.SecretKey, s3.WithPathStyle(s3Cfg.UsePathStyle)),
		}
	case "local":
		s = &LocalFileStorage{
			StaticDomain: cfg.StaticDomain,
		}
	default:
		s = &NoneFileStorage{}
	}

	return s
}

type NoneFileStorage struct {
}

func (lfs *NoneFileStorage) GetStaticDomain() string {
	return ""
}

func (lfs *NoneFileStorage) GenGetObjectPreSignURL(url string) (string, error) {
	return "", fmt.Errorf("Unsupported")
}

func (lfs *NoneFileStorage) GenUploadFileMeta(fullPath string, _ int64) (UploadFileMeta, error) {
	return UploadFileMeta{}, fmt.Errorf("Unsupported")
}

func (lfs *NoneFileStorage) SaveFile(fullPath string, content []byte) error {
	return fmt.Errorf("Unsupported")
}

func (lfs *NoneFileStorage) DeleteFile(fullFilePath string) error {
	return fmt.Errorf("Unsupported")
}

func (fs *NoneFileStorage) DownloadFile(ctx context.Context, filePath string) (*s3.GetObjectResult, error) {
	return nil, fmt.Errorf("Unsupported")
}

type LocalFileStorage struct {
	StaticDomain string
}

func (lfs *LocalFileStorage) GetStaticDomain() string {
	return lfs.StaticDomain
}

func (lfs *LocalFileStorage) GenUploadFileMeta(fullPath string, _ int64) (UploadFileMeta, error) {
	return UploadFileMeta{
		FullPath: fullPath,
		Domain:   lfs.StaticDomain,
	}, nil
}

// SaveFile stores a file on the local file system.
func (lfs *LocalFileStorage) SaveFile(fullPath string, content []byte) error {
	filePath := filepath.Dir(fullPath)
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		err := os.MkdirAll(filePath, 0755)
		if err != nil {
			return fmt.Errorf("failed to create directory: %v", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to check directory: %v", err)
	}

	err = os.WriteFile(fullPath, content, 0644)
	if err != nil {
		return fmt.Errorf("failed to save file: %v", err)
	}

	return nil
}

func (lfs *LocalFileStorage) DownloadFile(ctx context.Context, filePath string) (*s3.GetObjectResult, error) {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %v", err)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("Error opening file: %v", err)
	}
	defer file.Close()

	raw, _ := io.ReadAll(file)
	// 读取文件的前 512 个字节用于识别类型
	file.Seek(0, 0)
	buffer := make([]byte, 512)
	_, err = file.Read(buffer)
	if err != nil {
		return nil, fmt.Errorf("Error reading file: %v", err)
	}

	mimeType := http.DetectContentType(buffer)
	return &s3.GetObjectResult{
		File:     raw,
		FileType: mimeType,
	}, nil
}

// DeleteFile deletes a file from the local file system using the full file path.
func (lfs *LocalFileStorage) DeleteFile(fullFilePath string) error {
	err := os.Remove(fullFilePath)
	if err != nil {
		return fmt.Errorf("failed to delete file: %v", err)
	}
	return nil
}

func (lfs *LocalFileStorage) GenGetObjectPreSignURL(url string) (string, error) {
	return url, nil
}

type S3FileStorage struct {
	StaticDomain string
	*s3.S3
}

func (fs *S3FileStorage) GetStaticDomain() string {
	return fs.StaticDomain
}

func (fs *S3FileStorage) GenUploadFileMeta(fullPath string, contentLength int64) (UploadFileMeta, error) {
	key, err := fs.S3.GenClientUploadKey(fullPath, contentLength)
	if err != nil {
		return UploadFileMeta{}, err
	}
	return UploadFileMeta{
		FullPath:       fullPath,
		UploadEndpoint: key,
	}, nil
}

// SaveFile stores a file
func (fs *S3FileStorage) SaveFile(fullPath string, content []byte) error {
	return fs.Upload(fullPath, bytes.NewReader(content))
}

func (fs *S3FileStorage) DownloadFile(ctx context.Context, filePath string) (*s3.GetObjectResult, error) {
	return fs.GetObject(ctx, filePath)
}

// DeleteFile deletes a file
func (fs *S3FileStorage) DeleteFile(fullFilePath string) error {
	return fs.Delete(fullFilePath)
}

func (fs *S3FileStorage) GenGetObjectPreSignURL(_url string) (string, error) {
	res, err := url.Parse(_url)
	if err != nil {
		return "", err
	}

	_url, _ = url.QueryUnescape(res.RequestURI())
	return fs.S3.GenGetObjectPreSignURL(_url)
}
