package export

import (
	"context"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/rollcall/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *sc.Config {
	return &sc.Config{
		S3Region:   "us-east-1",
		S3User:     "minioadmin",
		S3Password: "minioadmin",
		S3Endpoint: "http://127.0.0.1:9000",
		S3Bucket:   "reports",
	}
}

type putCall struct {
	bucket, key, contentType string
	body                     []byte
}

func stubPut(t *testing.T, err error) *putCall {
	t.Helper()
	got := &putCall{}
	orig := putObject
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		got.bucket = aws.ToString(in.Bucket)
		got.key = aws.ToString(in.Key)
		got.contentType = aws.ToString(in.ContentType)
		got.body, _ = io.ReadAll(in.Body)
		if err != nil {
			return nil, err
		}
		return &s3.PutObjectOutput{}, nil
	}
	t.Cleanup(func() { putObject = orig })
	return got
}

func fixClock(t *testing.T, at time.Time) {
	t.Helper()
	orig := clock
	clock = func() time.Time { return at }
	t.Cleanup(func() { clock = orig })
}

func TestReportKey(t *testing.T) {
	key := ReportKey(time.Date(2024, 2, 3, 23, 0, 0, 0, time.FixedZone("X", -5*3600)))
	assert.Regexp(t, regexp.MustCompile(`^reports/2024/02/04/[0-9a-f-]{36}\.csv$`), key)
	assert.NotEqual(t, key, ReportKey(time.Date(2024, 2, 4, 4, 0, 0, 0, time.UTC)))
}

func TestNewS3Sink_AppliesConfig(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })

	var lo awsconfig.LoadOptions
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		return orig(ctx, optFns...)
	}

	sink, err := NewS3Sink(context.Background(), testConfig())
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", lo.Region)
	require.NotNil(t, lo.Credentials)

	creds, err := lo.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "minioadmin", creds.AccessKeyID)
	assert.Equal(t, "reports", sink.bucket)
}

func TestNewS3Sink_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}

	_, err := NewS3Sink(context.Background(), testConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no config")
}

func TestUpload_PutsAndPresigns(t *testing.T) {
	fixClock(t, time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC))
	put := stubPut(t, nil)

	sink, err := NewS3Sink(context.Background(), testConfig())
	require.NoError(t, err)

	url, err := sink.Upload(context.Background(), []byte("name,timestamp,event\n"))
	require.NoError(t, err)

	assert.Equal(t, "reports", put.bucket)
	assert.Regexp(t, `^reports/2024/05/06/.+\.csv$`, put.key)
	assert.Equal(t, "text/csv", put.contentType)
	assert.Equal(t, "name,timestamp,event\n", string(put.body))

	assert.Contains(t, url, "http://127.0.0.1:9000/reports/"+put.key)
	assert.Contains(t, url, "X-Amz-Expires=900")
}

func TestUpload_PutError(t *testing.T) {
	stubPut(t, errors.New("access denied"))

	sink, err := NewS3Sink(context.Background(), testConfig())
	require.NoError(t, err)

	_, err = sink.Upload(context.Background(), []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestUpload_PresignError(t *testing.T) {
	stubPut(t, nil)
	orig := presignGetObject
	t.Cleanup(func() { presignGetObject = orig })
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("sign failed")
	}

	sink, err := NewS3Sink(context.Background(), testConfig())
	require.NoError(t, err)

	_, err = sink.Upload(context.Background(), []byte("x"))
	assert.ErrorContains(t, err, "sign failed")
}
