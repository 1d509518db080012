package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	awsCreds "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/cockroachdb/errors"
)

// compile-time check that s3Client satisfies the Client interface.
var _ Client = (*s3Client)(nil)

// s3API is the subset of *s3.Client used by the adapter.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type s3Client struct {
	api s3API
}

func newS3Client(ctx context.Context, cfg Config) (*s3Client, error) {
	// A buildable client lets the SDK add a custom CA bundle (AWS_CA_BUNDLE) to the transport.
	httpClient := awshttp.NewBuildableClient().WithTransportOptions(func(tr *http.Transport) {
		applyTimeouts(tr, timeout(cfg))
	})
	opts := []func(*awsConfig.LoadOptions) error{
		awsConfig.WithHTTPClient(httpClient),
	}
	if cfg.Region != "" {
		opts = append(opts, awsConfig.WithRegion(cfg.Region))
	}
	// If we have a static access key and secret, use them instead of the default chain.
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsConfig.WithCredentialsProvider(
			awsCreds.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint := endpointURL(cfg); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = cfg.PathStyle
	})
	return &s3Client{api: client}, nil
}

// endpointURL returns the configured endpoint with a scheme, or "" to use the AWS default.
func endpointURL(cfg Config) string {
	if cfg.Endpoint == "" {
		return ""
	}
	if strings.HasPrefix(cfg.Endpoint, "http://") || strings.HasPrefix(cfg.Endpoint, "https://") {
		return cfg.Endpoint
	}
	if cfg.UseSSL {
		return "https://" + cfg.Endpoint
	}
	return "http://" + cfg.Endpoint
}

func (c *s3Client) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(objectName),
		Body:        reader,
		ContentType: ptrOrNil(contentType),
	}
	if objectSize >= 0 {
		input.ContentLength = aws.Int64(objectSize)
	}
	_, err := c.api.PutObject(ctx, input)
	return mapS3Err(err)
}

func (c *s3Client) GetObject(ctx context.Context, bucketName, objectName string) (io.ReadCloser, error) {
	resp, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(objectName),
	})
	if err != nil {
		return nil, mapS3Err(err)
	}
	return resp.Body, nil
}

func (c *s3Client) StatObject(ctx context.Context, bucketName, objectName string) (ObjectInfo, error) {
	resp, err := c.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(objectName),
	})
	if err != nil {
		return ObjectInfo{}, mapS3Err(err)
	}
	return ObjectInfo{
		Key:          objectName,
		Size:         aws.ToInt64(resp.ContentLength),
		ETag:         aws.ToString(resp.ETag),
		ContentType:  aws.ToString(resp.ContentType),
		LastModified: aws.ToTime(resp.LastModified),
	}, nil
}

func (c *s3Client) ListObjects(ctx context.Context, bucketName, prefix string) <-chan ObjectInfo {
	out := make(chan ObjectInfo)
	go func() {
		defer close(out)
		send := func(info ObjectInfo) bool {
			select {
			case out <- info:
				return true
			case <-ctx.Done():
				return false
			}
		}

		paginator := s3.NewListObjectsV2Paginator(c.api, &s3.ListObjectsV2Input{
			Bucket: aws.String(bucketName),
			Prefix: ptrOrNil(prefix),
		})
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				send(ObjectInfo{Err: mapS3Err(err)})
				return
			}
			for _, obj := range page.Contents {
				if !send(ObjectInfo{
					Key:          aws.ToString(obj.Key),
					Size:         aws.ToInt64(obj.Size),
					ETag:         aws.ToString(obj.ETag),
					LastModified: aws.ToTime(obj.LastModified),
				}) {
					return
				}
			}
		}
	}()
	return out
}

func mapS3Err(err error) error {
	var (
		noSuchKey *s3types.NoSuchKey
		notFound  *s3types.NotFound
		generic   smithy.APIError
	)
	switch {
	case err == nil:
		return nil
	case errors.As(err, &noSuchKey), errors.As(err, &notFound):
		return errors.Mark(err, ErrObjectNotFound)
	case errors.As(err, &generic):
		if code := generic.ErrorCode(); code == "NoSuchKey" || code == "NotFound" {
			return errors.Mark(err, ErrObjectNotFound)
		}
		return err
	default:
		return err
	}
}

func ptrOrNil[T comparable](val T) *T {
	var zero T
	if val != zero {
		return &val
	}
	return nil
}
