package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3EndpointEnv overrides the S3 endpoint, e.g. to point at a local minio.
const S3EndpointEnv = "ACTIONS_S3_ENDPOINT"

func NewS3(bucketName string) (Provider, error) {
	var configs []func(*config.LoadOptions) error

	if val, ok := os.LookupEnv(S3EndpointEnv); ok {
		configs = append(configs, config.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               val,
				HostnameImmutable: true,
				PartitionID:       "aws",
			}, nil
		})))
	}
	cfg, err := config.LoadDefaultConfig(context.Background(), configs...)
	if err != nil {
		return nil, err
	}
	s3Client := s3.NewFromConfig(cfg)

	_, err = s3Client.HeadBucket(context.Background(), &s3.HeadBucketInput{
		Bucket: &bucketName,
	})
	if err != nil {
		return nil, coerceAWSError(bucketName, err)
	}

	return s3Provider{
		bucketName: aws.String(bucketName),
		client:     s3Client,
	}, nil
}

type s3Provider struct {
	bucketName *string
	client     *s3.Client
}

func (s s3Provider) keyFor(locator ObjectDescriptor) string {
	return "artifacts/" + strings.Join(locator.PathComponents(), "/")
}

func (s s3Provider) locationOf(key string) string {
	return fmt.Sprintf("s3://%s/%s", *s.bucketName, key)
}

func coerceAWSError(key string, err error) error {
	var (
		bne *types.NoSuchBucket
		nsk *types.NoSuchKey
		nf  *types.NotFound
	)
	if errors.As(err, &bne) || errors.As(err, &nsk) || errors.As(err, &nf) {
		return ErrNotExist{path: key}
	}

	var sErr *smithy.OperationError
	if errors.As(err, &sErr) {
		errString := sErr.Error()
		if strings.Contains(errString, "NoSuchBucket") || strings.Contains(errString, "NoSuchKey") {
			return ErrNotExist{path: key}
		}
	}

	return err
}

var typeOfTime = reflect.TypeOf(time.Time{})

func applyS3Tags(tags []types.Tag, into *Item) error {
	values := map[string]string{}
	for _, t := range tags {
		if t.Key == nil || t.Value == nil {
			continue
		}
		values[*t.Key] = *t.Value
	}

	val := reflect.ValueOf(into).Elem()
	t := val.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tagName, ok := field.Tag.Lookup("tag")
		if !ok {
			continue
		}
		raw, ok := values[tagName]
		if !ok {
			continue
		}

		switch {
		case field.Type.Kind() == reflect.String:
			val.Field(i).SetString(raw)
		case field.Type.Kind() == reflect.Int64:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return fmt.Errorf("parsing value %s for field %s: %w", raw, field.Name, err)
			}
			val.Field(i).SetInt(n)
		case field.Type == typeOfTime:
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return fmt.Errorf("parsing value %s for field %s: %w", raw, field.Name, err)
			}
			val.Field(i).Set(reflect.ValueOf(parsed))
		default:
			return fmt.Errorf("field %s contains unsupported type %s", field.Name, field.Type)
		}
	}

	return nil
}

func tagsFromItem(item *Item) map[string]string {
	vals := map[string]string{}

	v := reflect.ValueOf(item).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag, ok := f.Tag.Lookup("tag")
		if !ok || v.Field(i).IsZero() {
			continue
		}

		switch {
		case f.Type.Kind() == reflect.Int64:
			vals[tag] = strconv.FormatInt(v.Field(i).Int(), 10)
		case f.Type.Kind() == reflect.String:
			vals[tag] = v.Field(i).String()
		case f.Type == typeOfTime:
			vals[tag] = v.Field(i).Interface().(time.Time).Format(time.RFC3339)
		default:
			panic(fmt.Errorf("unexpected type %s on tag %s", f.Type, tag))
		}
	}

	return vals
}

func awsTagsFromTags(tags map[string]string) []types.Tag {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	res := make([]types.Tag, 0, len(tags))
	for _, k := range keys {
		res = append(res, types.Tag{Key: aws.String(k), Value: aws.String(tags[k])})
	}
	return res
}

func (s s3Provider) MetadataOf(locator ObjectDescriptor) (*Item, error) {
	key := s.keyFor(locator)
	tags, err := s.client.GetObjectTagging(context.Background(), &s3.GetObjectTaggingInput{
		Bucket: s.bucketName,
		Key:    &key,
	})
	if err != nil {
		return nil, coerceAWSError(key, err)
	}

	i := &Item{Location: s.locationOf(key)}
	if err = applyS3Tags(tags.TagSet, i); err != nil {
		return nil, err
	}

	return i, nil
}

// Store uploads stream and then tags the object with its checksum, which is
// only known once the upload has consumed the stream.
func (s s3Provider) Store(locator ObjectDescriptor, mime string, objectSize int64, stream io.ReadCloser) (*Item, error) {
	defer func() { _ = stream.Close() }()

	key := s.keyFor(locator)
	h := newHash()
	counter := &countingReader{r: io.TeeReader(stream, h)}
	createdAt := time.Now().UTC()

	input := &s3.PutObjectInput{
		Bucket:  s.bucketName,
		Key:     &key,
		Body:    counter,
		Tagging: aws.String(objectTagging(&Item{CreatedAt: createdAt, Mime: mime})),
	}
	if mime != "" {
		input.ContentType = aws.String(mime)
	}

	uploader := manager.NewUploader(s.client)
	if _, err := uploader.Upload(context.Background(), input); err != nil {
		return nil, coerceAWSError(key, err)
	}

	if objectSize >= 0 && counter.n != objectSize {
		err := fmt.Errorf("short download for %s: got %d bytes, expected %d", key, counter.n, objectSize)
		if _, delErr := s.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{Bucket: s.bucketName, Key: &key}); delErr != nil {
			return nil, fmt.Errorf("%w (removing partial object: %s)", err, coerceAWSError(key, delErr))
		}
		return nil, err
	}

	item := &Item{
		CreatedAt: createdAt,
		Size:      counter.n,
		Mime:      mime,
		Checksum:  checksumOf(h),
		Location:  s.locationOf(key),
	}

	_, err := s.client.PutObjectTagging(context.Background(), &s3.PutObjectTaggingInput{
		Bucket:  s.bucketName,
		Key:     &key,
		Tagging: &types.Tagging{TagSet: awsTagsFromTags(tagsFromItem(item))},
	})
	if err != nil {
		return nil, coerceAWSError(key, err)
	}

	return item, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// objectTagging renders item tags in the query form accepted by
// PutObjectInput.Tagging.
func objectTagging(item *Item) string {
	vals := url.Values{}
	for k, v := range tagsFromItem(item) {
		vals.Set(k, v)
	}
	return vals.Encode()
}
