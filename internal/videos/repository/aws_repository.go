package repository

import (
	"context"
	"regexp"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"

	"github.com/rominyadav/createcollab-sub002/internal/videos"
)

var uploadNamePattern = regexp.MustCompile(`.+\.(mp4|mkv|avi|mov|wmv|flv|webm|m4v|mpeg|mpg|3gp|ogv|vob|ts|mxf)$`)

type awsRepository struct {
	client        *s3.Client
	preSignClient *s3.PresignClient
	presignExpiry time.Duration
}

func NewAwsRepository(awsClient *s3.Client, preSignClient *s3.PresignClient, presignExpiry time.Duration) videos.StorageRepository {
	return &awsRepository{
		client:        awsClient,
		preSignClient: preSignClient,
		presignExpiry: presignExpiry,
	}
}

func (a *awsRepository) PresignPutURL(ctx context.Context, input *videos.PresignInput) (string, error) {
	if !uploadNamePattern.MatchString(input.Key) {
		return "", errors.Errorf("invalid file format: %s", input.Key)
	}
	putObjectReq, err := a.preSignClient.PresignPutObject(
		ctx,
		&s3.PutObjectInput{
			Bucket:        &input.Bucket,
			Key:           &input.Key,
			ContentLength: &input.Size,
			ContentType:   &input.MimeType,
		},
		s3.WithPresignExpires(a.presignExpiry),
	)
	if err != nil {
		return "", errors.Wrap(err, "awsRepository.PresignPutURL")
	}
	return putObjectReq.URL, nil
}

func (a *awsRepository) PresignGetURL(ctx context.Context, bucket, key string) (string, error) {
	getObjectReq, err := a.preSignClient.PresignGetObject(
		ctx,
		&s3.GetObjectInput{
			Bucket: &bucket,
			Key:    &key,
		},
		s3.WithPresignExpires(a.presignExpiry),
	)
	if err != nil {
		return "", errors.Wrap(err, "awsRepository.PresignGetURL")
	}
	return getObjectReq.URL, nil
}

func (a *awsRepository) HeadObject(ctx context.Context, bucket, key string) error {
	_, err := a.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return errors.Wrapf(videos.ErrNotFound, "object %s/%s", bucket, key)
		}
		return errors.Wrap(err, "awsRepository.HeadObject")
	}
	return nil
}

func (a *awsRepository) GetObject(ctx context.Context, bucket, key string) (*videos.StorageObject, error) {
	res, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, errors.Wrapf(videos.ErrNotFound, "object %s/%s", bucket, key)
		}
		return nil, errors.Wrapf(videos.ErrUpstreamFetch, "object %s/%s: %v", bucket, key, err)
	}
	obj := &videos.StorageObject{
		Body: res.Body,
	}
	if res.ContentLength != nil {
		obj.ContentLength = *res.ContentLength
	}
	if res.ETag != nil {
		obj.ETag = *res.ETag
	}
	return obj, nil
}

func (a *awsRepository) RemoveObject(ctx context.Context, bucket, key string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return errors.Wrap(err, "awsRepository.RemoveObject")
	}
	return nil
}
