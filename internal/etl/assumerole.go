package etl

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials/stscreds"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// NewAssumedRoleGateway builds an S3 gateway scoped to assumed-role
// credentials. stscreds refreshes the session credentials automatically
// before they expire, so the gateway stays valid for the process lifetime.
// With an empty role ARN the base session credentials are used as-is.
func NewAssumedRoleGateway(region, roleARN string) (*S3Gateway, error) {
	awsConfig := aws.NewConfig()
	if region != "" {
		awsConfig = awsConfig.WithRegion(region)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, err
	}

	if roleARN == "" {
		return NewS3Gateway(sess), nil
	}

	creds := stscreds.NewCredentials(sess, roleARN)
	svc := s3.New(sess, aws.NewConfig().WithCredentials(creds))
	return NewS3GatewayWithUploader(s3manager.NewUploaderWithClient(svc)), nil
}
