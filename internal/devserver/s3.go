package devserver

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/erlandsona/elm-store-pattern/pkg/data"
)

// S3Source serves image metadata for objects in an S3 bucket. The object key
// is prefix + id; the returned URL points at the bucket object.
//
// Example:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	src := devserver.NewS3Source(s3.NewFromConfig(cfg), "my-bucket", "images/")
//	srv := devserver.New(devserver.WithImageSource(src))
type S3Source struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Source creates an S3-backed image source.
func NewS3Source(client *s3.Client, bucket, prefix string) *S3Source {
	return &S3Source{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Image implements ImageSource. The object must exist; its metadata may
// carry an "alt" entry used as the image's alt text.
func (s *S3Source) Image(ctx context.Context, id data.ImageID) (data.Image, error) {
	key := s.prefix + id

	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return data.Image{}, ErrImageNotFound
		}
		return data.Image{}, err
	}

	img := data.Image{
		ID:  id,
		URL: "https://" + s.bucket + ".s3.amazonaws.com/" + key,
	}
	if alt, ok := head.Metadata["alt"]; ok {
		img.Alt = alt
	}
	return img, nil
}
