package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"resume-screener/internal/shared/storage/object"
	"resume-screener/internal/shared/util"
)

type api interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Options configures the S3 store.
type Options struct {
	Region     string
	Bucket     string
	Prefix     string
	KMSKeyID   string
	PublicBase string
}

// Store implements ObjectStore using Amazon S3.
type Store struct {
	client     api
	bucket     string
	prefix     string
	kmsKeyID   string
	publicBase string
	basePath   string
}

// New creates a new S3-backed object store.
func New(ctx context.Context, opts Options) (*Store, error) {
	if strings.TrimSpace(opts.Bucket) == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if opts.Region == "" {
		opts.Region = cfg.Region
	}

	return newStore(s3.NewFromConfig(cfg), opts), nil
}

func newStore(client api, opts Options) *Store {
	publicBase := strings.TrimRight(strings.TrimSpace(opts.PublicBase), "/")
	if publicBase == "" {
		publicBase = defaultPublicBase(opts.Bucket, opts.Region)
	}
	basePath := ""
	if u, err := url.Parse(publicBase); err == nil {
		basePath = strings.TrimRight(u.Path, "/")
	}
	return &Store{
		client:     client,
		bucket:     opts.Bucket,
		prefix:     normalizePrefix(opts.Prefix),
		kmsKeyID:   strings.TrimSpace(opts.KMSKeyID),
		publicBase: publicBase,
		basePath:   basePath,
	}
}

// Upload puts the object under the configured prefix and returns its public URL.
func (s *Store) Upload(ctx context.Context, fileName string, mimeType string, body []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	objectKey := applyPrefix(s.prefix, util.StorageName(util.RandomID(), fileName, mimeType))

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(mimeType),
	}
	if s.kmsKeyID != "" {
		input.ServerSideEncryption = s3types.ServerSideEncryptionAwsKms
		input.SSEKMSKeyId = aws.String(s.kmsKeyID)
	} else {
		input.ServerSideEncryption = s3types.ServerSideEncryptionAes256
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("s3 put object bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}

	return s.publicBase + "/" + objectKey, nil
}

// Remove deletes the object addressed by a URL previously returned from Upload.
func (s *Store) Remove(ctx context.Context, rawURL string) error {
	objectKey, err := s.keyFromURL(rawURL)
	if err != nil {
		return err
	}
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	}); err != nil {
		return fmt.Errorf("s3 delete object bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}
	return nil
}

func (s *Store) keyFromURL(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("%w: %v", object.ErrInvalidURL, err)
	}
	key, ok := strings.CutPrefix(u.Path, s.basePath+"/")
	if !ok || key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %s", object.ErrInvalidURL, rawURL)
	}
	if s.prefix != "" && !strings.HasPrefix(key, s.prefix+"/") {
		return "", fmt.Errorf("%w: %s", object.ErrInvalidURL, rawURL)
	}
	return key, nil
}

func defaultPublicBase(bucket, region string) string {
	if region == "" {
		return fmt.Sprintf("https://%s.s3.amazonaws.com", bucket)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
}

func normalizePrefix(prefix string) string {
	return strings.Trim(strings.TrimSpace(prefix), "/")
}

func applyPrefix(prefix, key string) string {
	cleanPrefix := strings.Trim(prefix, "/")
	cleanKey := strings.TrimLeft(key, "/")
	if cleanPrefix == "" {
		return cleanKey
	}
	if cleanKey == "" {
		return cleanPrefix
	}
	return cleanPrefix + "/" + cleanKey
}

var _ object.ObjectStore = (*Store)(nil)
