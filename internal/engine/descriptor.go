// Package engine executes one storage request against the resolved account
// endpoint: either a direct call with streamed output, or a presigned URL.
package engine

import (
	"io"
	"net/http"
)

// Verb names a storage operation. The engine treats verbs uniformly; only
// dispatch and presign-method derivation switch on them.
type Verb int

const (
	ListBuckets Verb = iota
	ListObjects
	GetObject
	PutObject
	HeadObject
	DeleteObject
	CreateBucket
	DeleteBucket
)

func (v Verb) String() string {
	switch v {
	case ListBuckets:
		return "list-buckets"
	case ListObjects:
		return "list-objects"
	case GetObject:
		return "get-object"
	case PutObject:
		return "put-object"
	case HeadObject:
		return "head-object"
	case DeleteObject:
		return "delete-object"
	case CreateBucket:
		return "create-bucket"
	case DeleteBucket:
		return "delete-bucket"
	}
	return "unknown"
}

// Method is the HTTP method of the direct call.
func (v Verb) Method() string {
	switch v {
	case PutObject, CreateBucket:
		return http.MethodPut
	case HeadObject:
		return http.MethodHead
	case DeleteObject, DeleteBucket:
		return http.MethodDelete
	}
	return http.MethodGet
}

// PresignMethod is the HTTP method a presigned URL for this verb uses.
// Creation-style verbs presign as retrieval, since the signed link exists to
// be fetched; deletion presigns as deletion; existence checks presign as a
// metadata-only method.
func (v Verb) PresignMethod() string {
	switch v {
	case DeleteObject, DeleteBucket:
		return http.MethodDelete
	case HeadObject:
		return http.MethodHead
	}
	return http.MethodGet
}

// Descriptor is one storage request: a verb, its parameters, and any extra
// headers the caller wants attached at build time.
type Descriptor struct {
	Verb   Verb
	Bucket string
	Key    string

	// ListObjects parameters.
	Prefix     string
	StartAfter string
	MaxKeys    int32

	// GetObject parameters.
	Range string

	// PutObject parameters.
	Body          io.Reader
	ContentLength int64
	ContentType   string

	// Extra headers contributed by the caller, applied to the outbound
	// request regardless of verb.
	Headers map[string]string
}
