package engine

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	humanize "github.com/dustin/go-humanize"
	"github.com/manifoldco/promptui"
	"github.com/olekukonko/tablewriter"

	"github.com/r2ctl/r2ctl/internal/logging"
	"github.com/r2ctl/r2ctl/internal/resolve"
)

// DefaultExpiry is the presigned URL lifetime when --expires is not given.
const DefaultExpiry = 24 * time.Hour

// Options control how one request is carried out.
type Options struct {
	Presign     bool
	Expires     time.Duration
	SignHeaders []string
	Verbose     bool

	// Output is the save destination for verbs that return a body. "-" means
	// standard output; empty means infer from the object key.
	Output string
}

// Engine executes requests for one resolved credential. An engine is built
// per invocation and consumed once.
type Engine struct {
	cred    resolve.Credential
	log     *logging.Logger
	stdout  io.Writer
	confirm func(label string) bool
}

// New creates an engine bound to a resolved credential.
func New(cred resolve.Credential, log *logging.Logger) *Engine {
	return &Engine{
		cred:    cred,
		log:     log,
		stdout:  os.Stdout,
		confirm: promptConfirm,
	}
}

func promptConfirm(label string) bool {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	// promptui reports decline as an error; default is decline.
	_, err := prompt.Run()
	return err == nil
}

// Run carries one descriptor through resolution of its branch: presigning or
// direct execution with optional streaming.
func (e *Engine) Run(ctx context.Context, desc Descriptor, opts Options) error {
	merged, err := MergeHeaders(desc.Headers, opts.SignHeaders)
	if err != nil {
		return err
	}

	if opts.Verbose {
		e.log.Raw("%s", curlCommand(desc.Verb.Method(), e.requestURL(desc), merged))
	}

	if opts.Presign {
		return e.presign(ctx, desc, merged, opts)
	}

	client, err := newClient(ctx, e.cred, merged)
	if err != nil {
		return err
	}

	return e.execute(ctx, client, desc, opts)
}

func (e *Engine) execute(ctx context.Context, client *s3.Client, desc Descriptor, opts Options) error {
	switch desc.Verb {
	case ListBuckets:
		return e.listBuckets(ctx, client)
	case ListObjects:
		return e.listObjects(ctx, client, desc)
	case GetObject:
		return e.getObject(ctx, client, desc, opts)
	case PutObject:
		return e.putObject(ctx, client, desc)
	case HeadObject:
		return e.headObject(ctx, client, desc)
	case DeleteObject:
		if _, err := client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(desc.Bucket),
			Key:    aws.String(desc.Key),
		}); err != nil {
			return mapTransportError(err)
		}
		e.log.Info("Deleted %s/%s", desc.Bucket, desc.Key)
		return nil
	case CreateBucket:
		if _, err := client.CreateBucket(ctx, &s3.CreateBucketInput{
			Bucket: aws.String(desc.Bucket),
		}); err != nil {
			return mapTransportError(err)
		}
		e.log.Info("Created bucket %s", desc.Bucket)
		return nil
	case DeleteBucket:
		if _, err := client.DeleteBucket(ctx, &s3.DeleteBucketInput{
			Bucket: aws.String(desc.Bucket),
		}); err != nil {
			return mapTransportError(err)
		}
		e.log.Info("Deleted bucket %s", desc.Bucket)
		return nil
	}
	return fmt.Errorf("unsupported operation %s", desc.Verb)
}

func (e *Engine) listBuckets(ctx context.Context, client *s3.Client) error {
	out, err := client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return mapTransportError(err)
	}

	table := tablewriter.NewWriter(e.stdout)
	table.SetHeader([]string{"Bucket", "Created"})
	for _, bucket := range out.Buckets {
		created := ""
		if bucket.CreationDate != nil {
			created = bucket.CreationDate.Format(time.RFC3339)
		}
		table.Append([]string{aws.ToString(bucket.Name), created})
	}
	table.Render()
	return nil
}

func (e *Engine) listObjects(ctx context.Context, client *s3.Client, desc Descriptor) error {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(desc.Bucket),
	}
	if desc.Prefix != "" {
		input.Prefix = aws.String(desc.Prefix)
	}
	if desc.StartAfter != "" {
		input.StartAfter = aws.String(desc.StartAfter)
	}
	if desc.MaxKeys > 0 {
		input.MaxKeys = aws.Int32(desc.MaxKeys)
	}

	out, err := client.ListObjectsV2(ctx, input)
	if err != nil {
		return mapTransportError(err)
	}

	table := tablewriter.NewWriter(e.stdout)
	table.SetHeader([]string{"Key", "Size", "Modified"})
	for _, object := range out.Contents {
		modified := ""
		if object.LastModified != nil {
			modified = object.LastModified.Format(time.RFC3339)
		}
		table.Append([]string{
			aws.ToString(object.Key),
			humanize.Bytes(uint64(aws.ToInt64(object.Size))),
			modified,
		})
	}
	table.Render()

	if aws.ToBool(out.IsTruncated) && len(out.Contents) > 0 {
		last := aws.ToString(out.Contents[len(out.Contents)-1].Key)
		e.log.Info("more objects available; continue with --start-after '%s'", last)
	}
	return nil
}

func (e *Engine) getObject(ctx context.Context, client *s3.Client, desc Descriptor, opts Options) error {
	input := &s3.GetObjectInput{
		Bucket: aws.String(desc.Bucket),
		Key:    aws.String(desc.Key),
	}
	if desc.Range != "" {
		input.Range = aws.String(desc.Range)
	}

	out, err := client.GetObject(ctx, input)
	if err != nil {
		return mapTransportError(err)
	}
	defer out.Body.Close()

	return e.stream(desc, opts, out.Body, out.ContentLength)
}

func (e *Engine) putObject(ctx context.Context, client *s3.Client, desc Descriptor) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(desc.Bucket),
		Key:           aws.String(desc.Key),
		Body:          desc.Body,
		ContentLength: aws.Int64(desc.ContentLength),
	}
	if desc.ContentType != "" {
		input.ContentType = aws.String(desc.ContentType)
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		return mapTransportError(err)
	}
	e.log.Info("Uploaded %s/%s (%s)", desc.Bucket, desc.Key, humanize.Bytes(uint64(desc.ContentLength)))
	return nil
}

func (e *Engine) headObject(ctx context.Context, client *s3.Client, desc Descriptor) error {
	out, err := client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(desc.Bucket),
		Key:    aws.String(desc.Key),
	})
	if err != nil {
		return mapTransportError(err)
	}

	fmt.Fprintf(e.stdout, "Content-Type: %s\n", aws.ToString(out.ContentType))
	fmt.Fprintf(e.stdout, "Content-Length: %d\n", aws.ToInt64(out.ContentLength))
	fmt.Fprintf(e.stdout, "ETag: %s\n", aws.ToString(out.ETag))
	if out.LastModified != nil {
		fmt.Fprintf(e.stdout, "Last-Modified: %s\n", out.LastModified.Format(time.RFC1123))
	}
	for _, k := range sortedMetaKeys(out.Metadata) {
		fmt.Fprintf(e.stdout, "x-amz-meta-%s: %s\n", k, out.Metadata[k])
	}
	return nil
}

func sortedMetaKeys(m map[string]string) []string {
	return sortedKeys(m)
}

// requestURL renders the fully-resolved URL of a direct call for verbose
// output. Observational only; the SDK builds the real request.
func (e *Engine) requestURL(desc Descriptor) string {
	base := resolve.Endpoint(e.cred.AccountID)
	var sb strings.Builder
	sb.WriteString(base)
	if desc.Bucket != "" {
		sb.WriteString("/" + desc.Bucket)
	}
	if desc.Key != "" {
		sb.WriteString("/" + desc.Key)
	}
	if desc.Verb == ListObjects {
		query := url.Values{"list-type": {"2"}}
		if desc.Prefix != "" {
			query.Set("prefix", desc.Prefix)
		}
		if desc.StartAfter != "" {
			query.Set("start-after", desc.StartAfter)
		}
		if desc.MaxKeys > 0 {
			query.Set("max-keys", strconv.Itoa(int(desc.MaxKeys)))
		}
		sb.WriteString("?" + query.Encode())
	}
	return sb.String()
}
