package engine_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/r2ctl/r2ctl/internal/engine"
)

// TestPresignMethodMapping verifies the verb-family mapping: creation-style
// verbs presign as retrieval, deletion as deletion, existence checks as a
// metadata-only method.
func TestPresignMethodMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		verb   engine.Verb
		method string
	}{
		{engine.PutObject, http.MethodGet},
		{engine.CreateBucket, http.MethodGet},
		{engine.DeleteObject, http.MethodDelete},
		{engine.DeleteBucket, http.MethodDelete},
		{engine.HeadObject, http.MethodHead},
		{engine.GetObject, http.MethodGet},
		{engine.ListObjects, http.MethodGet},
		{engine.ListBuckets, http.MethodGet},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.method, tt.verb.PresignMethod(), "presign method for %s", tt.verb)
	}
}

func TestDirectMethodMapping(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.MethodPut, engine.PutObject.Method())
	assert.Equal(t, http.MethodHead, engine.HeadObject.Method())
	assert.Equal(t, http.MethodDelete, engine.DeleteObject.Method())
	assert.Equal(t, http.MethodGet, engine.GetObject.Method())
	assert.Equal(t, http.MethodPut, engine.CreateBucket.Method())
}
