package media

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// fakeS3 implements the narrow client slices the library depends on.
type fakeS3 struct {
	objects map[string]s3types.Object
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	out := &s3.ListObjectsV2Output{}
	for key, obj := range f.objects {
		if in.Prefix != nil && len(key) >= len(*in.Prefix) && key[:len(*in.Prefix)] == *in.Prefix {
			o := obj
			o.Key = aws.String(key)
			out.Contents = append(out.Contents, o)
		}
	}
	return out, nil
}

func (f *fakeS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	obj, ok := f.objects[*in.Key]
	if !ok {
		return nil, errors.New("not found")
	}
	return &s3.HeadObjectOutput{
		ContentType:   aws.String("audio/mpeg"),
		ContentLength: obj.Size,
		LastModified:  obj.LastModified,
	}, nil
}

func (f *fakeS3) PresignGetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	return &v4.PresignedHTTPRequest{
		URL: "https://signed.example/" + *in.Key,
	}, nil
}

func testLibrary() (*S3Library, *fakeS3) {
	now := time.Now()
	fake := &fakeS3{objects: map[string]s3types.Object{
		"tracks/a.mp3": {Size: aws.Int64(100), LastModified: aws.Time(now)},
		"tracks/b.mp3": {Size: aws.Int64(200), LastModified: aws.Time(now)},
		"other/x.bin":  {Size: aws.Int64(5), LastModified: aws.Time(now)},
	}}
	return NewS3Library(fake, fake, "bucket", "tracks/"), fake
}

func TestS3LibraryList(t *testing.T) {
	lib, _ := testLibrary()
	tracks, err := lib.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(tracks) != 2 {
		t.Fatalf("tracks = %d, want 2 (prefix filter)", len(tracks))
	}
	ids := map[string]bool{}
	for _, tr := range tracks {
		ids[tr.ID] = true
		if tr.URL != "" {
			t.Errorf("List should not presign URLs, got %q", tr.URL)
		}
	}
	if !ids["a.mp3"] || !ids["b.mp3"] {
		t.Errorf("ids = %v", ids)
	}
}

func TestS3LibraryResolve(t *testing.T) {
	lib, _ := testLibrary()
	track, err := lib.Resolve(context.Background(), "a.mp3")
	if err != nil {
		t.Fatal(err)
	}
	if track.URL != "https://signed.example/tracks/a.mp3" {
		t.Errorf("url = %q", track.URL)
	}
	if track.ContentType != "audio/mpeg" || track.Size != 100 {
		t.Errorf("track = %+v", track)
	}
	if track.Title != "a" {
		t.Errorf("title = %q, want a", track.Title)
	}
}

func TestS3LibraryResolveMissing(t *testing.T) {
	lib, _ := testLibrary()
	_, err := lib.Resolve(context.Background(), "ghost.mp3")
	if !errors.Is(err, ErrTrackNotFound) {
		t.Errorf("err = %v, want ErrTrackNotFound", err)
	}
}
