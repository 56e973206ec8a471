package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// cleanSegment keeps a single path element safe to join under a root.
func cleanSegment(s string) (string, error) {
	s = strings.TrimSpace(s)
	base := filepath.Base(s)
	if s == "" || base != s || base == "." || base == ".." || strings.ContainsAny(s, `/\`) {
		return "", fmt.Errorf("invalid path segment %q", s)
	}
	return base, nil
}

// FileArtifactStore writes exports under Dir/<owner>/<name>. Files appear
// atomically: content goes to a temp file that is renamed into place.
type FileArtifactStore struct {
	Dir string
}

func NewFileArtifactStore(dir string) *FileArtifactStore { return &FileArtifactStore{Dir: dir} }

func (s *FileArtifactStore) Put(_ context.Context, owner, name string, content []byte) (string, error) {
	owner, err := cleanSegment(owner)
	if err != nil {
		return "", err
	}
	name, err = cleanSegment(name)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(s.Dir, owner)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close artifact: %w", err)
	}
	dst := filepath.Join(dir, name)
	if err := os.Rename(tmpName, dst); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("publish artifact: %w", err)
	}
	return dst, nil
}

// S3Config holds static credentials for an S3-compatible endpoint.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// NewS3Client builds a client for AWS or any S3-compatible store.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	region := cfg.Region
	if region == "" {
		region = "auto"
	}
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

type s3PutAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ArtifactStore uploads exports to Bucket under <owner>/<name>. A single
// PutObject is all-or-nothing, so no partial objects are left behind.
type S3ArtifactStore struct {
	client s3PutAPI
	bucket string
}

func NewS3ArtifactStore(client s3PutAPI, bucket string) *S3ArtifactStore {
	return &S3ArtifactStore{client: client, bucket: bucket}
}

func (s *S3ArtifactStore) Put(ctx context.Context, owner, name string, content []byte) (string, error) {
	owner, err := cleanSegment(owner)
	if err != nil {
		return "", err
	}
	name, err = cleanSegment(name)
	if err != nil {
		return "", err
	}
	key := path.Join(owner, name)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(content),
		ContentLength: aws.Int64(int64(len(content))),
		ContentType:   aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object: %w", err)
	}
	return "s3://" + s.bucket + "/" + key, nil
}
