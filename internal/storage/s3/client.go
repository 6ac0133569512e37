package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"library-cms/internal/config"
	"library-cms/internal/domain/asset"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
)

const (
	emptyAWSSessionToken = ""
	defaultContentType   = "application/octet-stream"
	pathSeparator        = '/'

	errFailedCreateAWSSessionFmt = "failed to create AWS session: %w"
	errFailedPutObjectFmt        = "failed to put object %s: %w"
	errFailedDeleteObjectFmt     = "failed to delete object: %w"
	errEmptyFile                 = "file is empty"
)

// Client stores assets in a single bucket and hands back their public URLs.
type Client struct {
	svc     s3iface.S3API
	bucket  string
	baseURL string
}

func NewClient(cfg *config.AWSConfig) (*Client, error) {
	awsCfg := &aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			emptyAWSSessionToken,
		),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf(errFailedCreateAWSSessionFmt, err)
	}

	return newClient(s3.New(sess), cfg), nil
}

func newClient(svc s3iface.S3API, cfg *config.AWSConfig) *Client {
	return &Client{
		svc:     svc,
		bucket:  cfg.Bucket,
		baseURL: publicBaseURL(cfg),
	}
}

// publicBaseURL resolves the prefix for object URLs: the configured public
// base, the custom endpoint in path style, or the virtual-hosted bucket host.
func publicBaseURL(cfg *config.AWSConfig) string {
	switch {
	case cfg.PublicBaseURL != "":
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

// Upload stores file under folder with a generated name and returns its URL.
func (c *Client) Upload(ctx context.Context, file *asset.File, folder string) (string, error) {
	if file.Size() == 0 {
		return "", errors.New(errEmptyFile)
	}
	key := BuildObjectKey(folder, uuid.NewString()+file.Ext())
	return c.PutObject(ctx, key, file.ContentType, file.Data)
}

func (c *Client) PutObject(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if contentType == "" {
		contentType = defaultContentType
	}
	_, err := c.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf(errFailedPutObjectFmt, key, err)
	}
	return c.ObjectURL(key), nil
}

func (c *Client) DeleteObject(ctx context.Context, key string) error {
	_, err := c.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf(errFailedDeleteObjectFmt, err)
	}
	return nil
}

func (c *Client) ObjectURL(key string) string {
	return c.baseURL + "/" + key
}

func BuildObjectKey(folderPath, filename string) string {
	if folderPath == "" {
		return filename
	}

	if folderPath[len(folderPath)-1] != pathSeparator {
		folderPath += "/"
	}

	return folderPath + filename
}
