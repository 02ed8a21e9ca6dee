package engine

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	rerrors "github.com/r2ctl/r2ctl/internal/errors"
)

// presign produces a time-limited URL for the descriptor's verb family and
// prints the expiry plus a runnable curl line that re-sends the merged
// headers. No body transfer happens on this branch.
func (e *Engine) presign(ctx context.Context, desc Descriptor, merged map[string]string, opts Options) error {
	if desc.Key == "" {
		return rerrors.UserError{
			Message:    "presigning requires an object operation",
			Suggestion: "presign get, put, head, or rm with a bucket and key",
		}
	}

	client, err := newClient(ctx, e.cred, merged)
	if err != nil {
		return err
	}
	presigner := s3.NewPresignClient(client)

	expires := opts.Expires
	if expires <= 0 {
		expires = DefaultExpiry
	}
	withExpiry := func(po *s3.PresignOptions) {
		po.Expires = expires
	}

	bucket := aws.String(desc.Bucket)
	key := aws.String(desc.Key)

	var signed *v4.PresignedHTTPRequest
	switch desc.Verb.PresignMethod() {
	case http.MethodDelete:
		signed, err = presigner.PresignDeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: bucket,
			Key:    key,
		}, withExpiry)
	case http.MethodHead:
		signed, err = presigner.PresignHeadObject(ctx, &s3.HeadObjectInput{
			Bucket: bucket,
			Key:    key,
		}, withExpiry)
	default:
		signed, err = presigner.PresignGetObject(ctx, &s3.GetObjectInput{
			Bucket: bucket,
			Key:    key,
		}, withExpiry)
	}
	if err != nil {
		return mapTransportError(err)
	}

	fmt.Fprintf(e.stdout, "Expires: %s\n", time.Now().Add(expires).Format(time.RFC1123))
	fmt.Fprintln(e.stdout, curlCommand(signed.Method, signed.URL, merged))
	return nil
}
