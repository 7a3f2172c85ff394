package source

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
)

// SecretsAPI is the subset of the Secrets Manager client used here.
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManagerReader reads a provider document stored as a secret string:
// "secretsmanager:///prod/gsp" or "secretsmanager://eu-west-1/prod/gsp".
type SecretsManagerReader struct {
	// NewClient overrides client construction (tests). Nil uses the AWS
	// default credential chain.
	NewClient func(ctx context.Context, region string) (SecretsAPI, error)
}

func (r *SecretsManagerReader) Scheme() string { return "secretsmanager" }

func (r *SecretsManagerReader) Read(ctx context.Context, reference string) ([]byte, error) {
	region, secretID, err := parseSecretsManagerReference(reference)
	if err != nil {
		return nil, err
	}

	newClient := r.NewClient
	if newClient == nil {
		newClient = defaultSecretsClient
	}
	client, err := newClient(ctx, region)
	if err != nil {
		return nil, &BackendError{
			Backend:   "AWS Secrets Manager",
			Reference: reference,
			Reason:    "loading AWS configuration: " + err.Error(),
			Fix:       "Configure credentials with `aws configure` or AWS_PROFILE.",
			Err:       err,
		}
	}

	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return nil, classifySecretsError(err, reference, secretID)
	}

	switch {
	case out.SecretString != nil:
		return []byte(*out.SecretString), nil
	case len(out.SecretBinary) > 0:
		return out.SecretBinary, nil
	default:
		return nil, &NotFoundError{Reference: reference, Backend: "AWS Secrets Manager"}
	}
}

func defaultSecretsClient(ctx context.Context, region string) (SecretsAPI, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return secretsmanager.NewFromConfig(cfg), nil
}

// parseSecretsManagerReference splits the optional region from the secret ID.
//
//	secretsmanager:///prod/gsp          -> ("", "prod/gsp")
//	secretsmanager://us-west-2/prod/gsp -> ("us-west-2", "prod/gsp")
func parseSecretsManagerReference(ref string) (region, secretID string, err error) {
	u, err := url.Parse(ref)
	if err != nil || u.Scheme != "secretsmanager" {
		return "", "", &InvalidReferenceError{Reference: ref, Reason: "expected secretsmanager:// URI"}
	}
	secretID = strings.TrimPrefix(u.Path, "/")
	if secretID == "" {
		return "", "", &InvalidReferenceError{Reference: ref, Reason: "missing secret ID"}
	}
	return u.Host, secretID, nil
}

func classifySecretsError(err error, reference, secretID string) error {
	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return &NotFoundError{Reference: reference, Backend: "AWS Secrets Manager"}
	}

	var decrypt *types.DecryptionFailure
	if errors.As(err, &decrypt) {
		return &BackendError{
			Backend:   "AWS Secrets Manager",
			Reference: reference,
			Reason:    "secret cannot be decrypted",
			Fix:       "Check kms:Decrypt permission for the key protecting " + secretID,
			Err:       err,
		}
	}

	return &BackendError{
		Backend:   "AWS Secrets Manager",
		Reference: reference,
		Reason:    err.Error(),
		Err:       err,
	}
}
