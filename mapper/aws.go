package mapper

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/drblury/wireup/properties"
)

// AWSLoadOptions maps the AWS properties onto aws-sdk-go-v2 config load
// options. Credentials are only injected when both halves are set; otherwise
// the SDK's default chain applies.
func AWSLoadOptions(m *properties.Messaging) []func(*awsconfig.LoadOptions) error {
	var opts []func(*awsconfig.LoadOptions) error

	From(m.AWS.Region).Apply(func(v string) {
		opts = append(opts, awsconfig.WithRegion(v))
	})

	if m.AWS.AccessKeyID != "" && m.AWS.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			staticCredentialsProvider(m.AWS.AccessKeyID, m.AWS.SecretAccessKey)))
	}

	return opts
}

func staticCredentialsProvider(accessKeyID, secretAccessKey string) aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
		return aws.Credentials{
			AccessKeyID:     accessKeyID,
			SecretAccessKey: secretAccessKey,
		}, nil
	})
}
