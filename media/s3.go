package media

import (
	"bytes"
	"context"
	"mime"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Target mirrors derived media into an S3 bucket so a CDN or a second
// deployment can serve the same assets. It participates in the storage-root
// set with the same best-effort semantics as local directories.
type S3Target struct {
	client *s3.Client
	bucket string
	prefix string
}

func NewS3Target(ctx context.Context, bucket, prefix string) (*S3Target, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return &S3Target{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (t *S3Target) Name() string {
	return "s3:" + t.bucket
}

func (t *S3Target) key(rel string) string {
	if t.prefix == "" {
		return rel
	}
	return path.Join(t.prefix, rel)
}

func (t *S3Target) Save(folder, filename string, data []byte) error {
	contentType := mime.TypeByExtension(path.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := t.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(t.bucket),
		Key:         aws.String(t.key(path.Join(folder, filename))),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	return err
}

func (t *S3Target) Remove(rel string) error {
	_, err := t.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(t.bucket),
		Key:    aws.String(t.key(rel)),
	})
	return err
}

// RemoveAll deletes every object under the folder prefix, page by page.
func (t *S3Target) RemoveAll(folder string) error {
	ctx := context.Background()
	paginator := s3.NewListObjectsV2Paginator(t.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(t.bucket),
		Prefix: aws.String(t.key(folder) + "/"),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, obj := range page.Contents {
			_, err := t.client.DeleteObject(ctx, &s3.DeleteObjectInput{
				Bucket: aws.String(t.bucket),
				Key:    obj.Key,
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Walk visits every stored object, passing its prefix-relative key.
func (t *S3Target) Walk(fn func(rel string) error) error {
	ctx := context.Background()
	input := &s3.ListObjectsV2Input{Bucket: aws.String(t.bucket)}
	if t.prefix != "" {
		input.Prefix = aws.String(t.prefix + "/")
	}
	paginator := s3.NewListObjectsV2Paginator(t.client, input)

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, obj := range page.Contents {
			rel := aws.ToString(obj.Key)
			if t.prefix != "" {
				rel = rel[len(t.prefix)+1:]
			}
			if err := fn(rel); err != nil {
				return err
			}
		}
	}
	return nil
}
