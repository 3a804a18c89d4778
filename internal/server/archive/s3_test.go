package archive

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	if in.Body != nil {
		f.body, _ = io.ReadAll(in.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

var testID = uuid.MustParse("6f1c2f4e-1d2b-4e7a-9c55-0a8d1b3e5f77")

func TestStorageKey(t *testing.T) {
	at := time.Date(2025, 3, 7, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		file string
		want string
	}{
		{"plain", "contract.pdf", "uploads/2025/03/07/" + testID.String() + "/contract.pdf"},
		{"unix path", "../../etc/passwd", "uploads/2025/03/07/" + testID.String() + "/passwd"},
		{"windows path", `C:\docs\a b.txt`, "uploads/2025/03/07/" + testID.String() + "/a b.txt"},
		{"empty", "", "uploads/2025/03/07/" + testID.String() + "/file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StorageKey(at, testID, tt.file))
		})
	}
}

func TestStore_PutsObject(t *testing.T) {
	f := &fakePutter{}
	s := &S3Store{client: f, bucket: "archive"}

	key, err := s.Store(context.Background(), testID, "a.txt", "text/plain", []byte("hello"),
		time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "uploads/2025/01/02/"+testID.String()+"/a.txt", key)
	assert.Equal(t, "archive", aws.ToString(f.in.Bucket))
	assert.Equal(t, key, aws.ToString(f.in.Key))
	assert.Equal(t, "text/plain", aws.ToString(f.in.ContentType))
	assert.Equal(t, int64(5), aws.ToInt64(f.in.ContentLength))
	assert.Equal(t, []byte("hello"), f.body)
}

func TestStore_Error(t *testing.T) {
	s := &S3Store{client: &fakePutter{err: errors.New("access denied")}, bucket: "b"}

	_, err := s.Store(context.Background(), testID, "a.txt", "text/plain", nil, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestNewS3Store_UsesSeams(t *testing.T) {
	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
	})

	var gotRegion string
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			_ = fn(&lo)
		}
		gotRegion = lo.Region
		return aws.Config{Region: lo.Region}, nil
	}

	var opts s3.Options
	fake := &fakePutter{}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) putObjectAPI {
		for _, fn := range optFns {
			fn(&opts)
		}
		return fake
	}

	s, err := NewS3Store(context.Background(), Config{
		Bucket: "b", Region: "eu-west-1", AccessKey: "k", SecretKey: "s",
		BaseEndpoint: "http://127.0.0.1:9000",
	})
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", gotRegion)
	assert.Equal(t, "http://127.0.0.1:9000", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)
	assert.Same(t, fake, s.client)
}

func TestNewS3Store_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no region")
	}

	_, err := NewS3Store(context.Background(), Config{})
	require.Error(t, err)
}
