package media

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// objectAPI is the slice of the S3 client the library lists with.
type objectAPI interface {
	s3.ListObjectsV2APIClient
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// presignAPI presigns playback URLs. Satisfied by *s3.PresignClient.
type presignAPI interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Library resolves tracks from an S3 bucket prefix. Object keys under the
// prefix are track IDs; Resolve presigns a time-limited playback URL.
//
// Example:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	client := s3.NewFromConfig(cfg)
//	lib := media.NewS3Library(client, s3.NewPresignClient(client), "my-bucket", "tracks/")
type S3Library struct {
	client    objectAPI
	presigner presignAPI
	bucket    string
	prefix    string
	urlExpiry time.Duration
}

// NewS3Library creates a library over bucket objects under prefix.
func NewS3Library(client objectAPI, presigner presignAPI, bucket, prefix string) *S3Library {
	return &S3Library{
		client:    client,
		presigner: presigner,
		bucket:    bucket,
		prefix:    prefix,
		urlExpiry: time.Hour,
	}
}

// WithURLExpiry sets how long presigned playback URLs stay valid.
func (l *S3Library) WithURLExpiry(d time.Duration) *S3Library {
	l.urlExpiry = d
	return l
}

// List implements Library by paging through the bucket prefix.
func (l *S3Library) List(ctx context.Context) ([]Track, error) {
	paginator := s3.NewListObjectsV2Paginator(l.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(l.bucket),
		Prefix: aws.String(l.prefix),
	})

	var out []Track
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list tracks: %w", err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			id := strings.TrimPrefix(*obj.Key, l.prefix)
			if id == "" {
				continue
			}
			t := Track{
				ID:    id,
				Title: titleFromID(id),
			}
			if obj.Size != nil {
				t.Size = *obj.Size
			}
			if obj.LastModified != nil {
				t.Modified = *obj.LastModified
			}
			out = append(out, t)
		}
	}
	return out, nil
}

// Resolve implements Library. The object is headed first so a missing
// track reports ErrTrackNotFound rather than a presigned URL that 404s.
func (l *S3Library) Resolve(ctx context.Context, id string) (Track, error) {
	key := l.prefix + id
	head, err := l.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return Track{}, ErrTrackNotFound
	}

	presigned, err := l.presigner.PresignGetObject(ctx,
		&s3.GetObjectInput{
			Bucket: aws.String(l.bucket),
			Key:    aws.String(key),
		},
		s3.WithPresignExpires(l.urlExpiry),
	)
	if err != nil {
		return Track{}, fmt.Errorf("presign track %q: %w", id, err)
	}

	t := Track{
		ID:    id,
		Title: titleFromID(id),
		URL:   presigned.URL,
	}
	if head.ContentType != nil {
		t.ContentType = *head.ContentType
	}
	if head.ContentLength != nil {
		t.Size = *head.ContentLength
	}
	if head.LastModified != nil {
		t.Modified = *head.LastModified
	}
	return t, nil
}

// titleFromID derives a display title from an object key: the base name
// without its extension.
func titleFromID(id string) string {
	base := path.Base(id)
	return strings.TrimSuffix(base, path.Ext(base))
}
