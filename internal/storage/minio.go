package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioOptions configures an S3-compatible object store backend.
type MinioOptions struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Prefix    string
	UseSSL    bool
}

// ObjectStorage keeps each record as a JSON object in a bucket.
type ObjectStorage struct {
	client *minio.Client
	bucket string
	prefix string
}

var _ RecordStore = (*ObjectStorage)(nil)

// NewObjectStorage connects to the endpoint and creates the bucket if it is missing.
func NewObjectStorage(ctx context.Context, opts MinioOptions) (*ObjectStorage, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(opts.Endpoint, "endpoint"); err != nil {
		return nil, err
	}
	if err := validateString(opts.Bucket, "bucket"); err != nil {
		return nil, err
	}

	cli, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	exists, err := cli.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", opts.Bucket, err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{Region: opts.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %q: %w", opts.Bucket, err)
		}
	}

	return &ObjectStorage{client: cli, bucket: opts.Bucket, prefix: opts.Prefix}, nil
}

// ReadRecord downloads the object for key.
func (o *ObjectStorage) ReadRecord(ctx context.Context, key string) ([]byte, error) {
	if err := validateKeyAccess(ctx, key); err != nil {
		return nil, err
	}

	obj, err := o.client.GetObject(ctx, o.bucket, objectName(o.prefix, key), minio.GetObjectOptions{})
	if err != nil {
		return nil, translateObjectError(key, err)
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, translateObjectError(key, err)
	}
	return data, nil
}

// WriteRecord uploads value, replacing any previous object.
func (o *ObjectStorage) WriteRecord(ctx context.Context, key string, value []byte) error {
	if err := validateWrite(ctx, key, value); err != nil {
		return err
	}

	_, err := o.client.PutObject(ctx, o.bucket, objectName(o.prefix, key),
		bytes.NewReader(value), int64(len(value)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to write record %q: %w", key, err)
	}
	return nil
}

// DeleteRecord removes the object. S3 treats missing objects as deleted.
func (o *ObjectStorage) DeleteRecord(ctx context.Context, key string) error {
	if err := validateKeyAccess(ctx, key); err != nil {
		return err
	}

	if err := o.client.RemoveObject(ctx, o.bucket, objectName(o.prefix, key), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete record %q: %w", key, err)
	}
	return nil
}

// Close is a no-op; the client holds no long-lived connection.
func (o *ObjectStorage) Close() error {
	return nil
}

func objectName(prefix, key string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return key + ".json"
	}
	return path.Join(prefix, key+".json")
}

func translateObjectError(key string, err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.StatusCode == 404 {
		return ErrNotFound
	}
	return fmt.Errorf("failed to read record %q: %w", key, err)
}
