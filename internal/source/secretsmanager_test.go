package source

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecrets struct {
	region  string
	secrets map[string]string
	err     error
	asked   []string
}

func (f *fakeSecrets) GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	id := aws.ToString(in.SecretId)
	f.asked = append(f.asked, id)
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.secrets[id]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: aws.String("no such secret")}
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(v)}, nil
}

func readerFor(f *fakeSecrets) *SecretsManagerReader {
	return &SecretsManagerReader{
		NewClient: func(ctx context.Context, region string) (SecretsAPI, error) {
			f.region = region
			return f, nil
		},
	}
}

func TestParseSecretsManagerReference(t *testing.T) {
	tests := []struct {
		ref        string
		wantRegion string
		wantID     string
		wantErr    bool
	}{
		{ref: "secretsmanager:///prod/gsp", wantID: "prod/gsp"},
		{ref: "secretsmanager://eu-west-1/prod/gsp", wantRegion: "eu-west-1", wantID: "prod/gsp"},
		{ref: "secretsmanager:///arn:aws:secretsmanager:us-east-1:123456789012:secret:gsp", wantID: "arn:aws:secretsmanager:us-east-1:123456789012:secret:gsp"},
		{ref: "secretsmanager://eu-west-1", wantErr: true},
		{ref: "file:///prod/gsp", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			region, id, err := parseSecretsManagerReference(tt.ref)
			if tt.wantErr {
				var invalid *InvalidReferenceError
				assert.True(t, errors.As(err, &invalid), "want InvalidReferenceError, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRegion, region)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestSecretsManagerReaderRead(t *testing.T) {
	fake := &fakeSecrets{secrets: map[string]string{"prod/gsp": `{"ID": "gsp@abc"}`}}
	r := readerFor(fake)

	data, err := r.Read(context.Background(), "secretsmanager://us-west-2/prod/gsp")
	require.NoError(t, err)
	assert.Equal(t, `{"ID": "gsp@abc"}`, string(data))
	assert.Equal(t, "us-west-2", fake.region)
	assert.Equal(t, []string{"prod/gsp"}, fake.asked)
}

func TestSecretsManagerReaderNotFound(t *testing.T) {
	r := readerFor(&fakeSecrets{secrets: map[string]string{}})

	_, err := r.Read(context.Background(), "secretsmanager:///missing")
	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf), "want NotFoundError, got %v", err)
}

func TestSecretsManagerReaderBackendError(t *testing.T) {
	boom := errors.New("throttled")
	r := readerFor(&fakeSecrets{err: boom})

	_, err := r.Read(context.Background(), "secretsmanager:///prod/gsp")
	var be *BackendError
	require.True(t, errors.As(err, &be), "want BackendError, got %v", err)
	assert.ErrorIs(t, err, boom)
}

func TestSecretsManagerReaderClientError(t *testing.T) {
	r := &SecretsManagerReader{
		NewClient: func(ctx context.Context, region string) (SecretsAPI, error) {
			return nil, errors.New("no credentials")
		},
	}

	_, err := r.Read(context.Background(), "secretsmanager:///prod/gsp")
	var be *BackendError
	assert.True(t, errors.As(err, &be), "want BackendError, got %v", err)
}
