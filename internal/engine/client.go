package engine

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/aws/smithy-go/middleware"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	rerrors "github.com/r2ctl/r2ctl/internal/errors"
	"github.com/r2ctl/r2ctl/internal/resolve"
)

// newClient builds an S3 client pointed at the account's endpoint with static
// credentials. Retrying is the transport's concern, not this layer's, and is
// disabled. Extra headers are injected by a build-stage middleware so they
// apply to any verb and are covered by the signature.
func newClient(ctx context.Context, cred resolve.Credential, extraHeaders map[string]string) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cred.AccessKeyID, cred.SecretAccessKey.Reveal(), "")),
		awsconfig.WithRetryer(func() aws.Retryer { return aws.NopRetryer{} }),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(resolve.Endpoint(cred.AccountID))
		if len(extraHeaders) > 0 {
			o.APIOptions = append(o.APIOptions, injectHeaders(extraHeaders))
		}
	}), nil
}

// injectHeaders registers a build middleware that sets the merged headers on
// the outbound request before it is signed.
func injectHeaders(headers map[string]string) func(*middleware.Stack) error {
	return func(stack *middleware.Stack) error {
		return stack.Build.Add(middleware.BuildMiddlewareFunc("ExtraHeaders",
			func(ctx context.Context, in middleware.BuildInput, next middleware.BuildHandler) (
				middleware.BuildOutput, middleware.Metadata, error,
			) {
				if req, ok := in.Request.(*smithyhttp.Request); ok {
					for k, v := range headers {
						req.Header.Set(k, v)
					}
				}
				return next.HandleBuild(ctx, in)
			}), middleware.After)
	}
}

// ValidateCredential issues one lightweight list-buckets call to verify a
// candidate credential before it is persisted anywhere.
func ValidateCredential(ctx context.Context, cred resolve.Credential) error {
	client, err := newClient(ctx, cred, nil)
	if err != nil {
		return err
	}
	if _, err := client.ListBuckets(ctx, &s3.ListBucketsInput{}); err != nil {
		return mapTransportError(err)
	}
	return nil
}

// mapTransportError converts SDK failures into the engine's transport error,
// surfacing the upstream HTTP status and message.
func mapTransportError(err error) error {
	te := rerrors.TransportError{Err: err}

	var responseErr *awshttp.ResponseError
	if errors.As(err, &responseErr) {
		te.StatusCode = responseErr.HTTPStatusCode()
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		te.Code = apiErr.ErrorCode()
		te.Message = apiErr.ErrorMessage()
	}
	return te
}
