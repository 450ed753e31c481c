package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndAccessors(t *testing.T) {
	err := New(ErrCodeTaxonomyUnknown, "unknown taxonomy")

	assert.Equal(t, ErrCodeTaxonomyUnknown, err.Code)
	assert.Contains(t, err.Error(), "TAX_001")
	assert.Contains(t, err.Error(), "unknown taxonomy")
	assert.NotEmpty(t, err.Stack)
}

func TestNewf(t *testing.T) {
	err := Newf(ErrCodeNodeNotFound, "node %q not found", "hs-9999")
	assert.Contains(t, err.Error(), `node "hs-9999" not found`)
}

func TestWithDetailAndCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := New(ErrCodeStoreError, "save failed").
		WithDetail("tree 42").
		WithCause(cause)

	assert.Equal(t, "tree 42", err.Detail)
	assert.True(t, stderrors.Is(err, cause))
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("read: %w", stderrors.New("eof"))
	err := Wrap(cause, ErrCodeDatasetParse, "failed to decode lookup file")

	require.NotNil(t, err)
	assert.Equal(t, ErrCodeDatasetParse, err.Code)
	assert.True(t, stderrors.Is(err, cause))
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "nothing"))
}

func TestWrapKeepsAppErrorCode(t *testing.T) {
	inner := New(ErrCodeTreeNotFound, "missing")
	outer := Wrap(inner, ErrCodeInternal, "while resolving node")

	assert.True(t, IsCode(outer, ErrCodeTreeNotFound))
}

func TestIsCode(t *testing.T) {
	err := NotFound("no such tree")

	assert.True(t, IsCode(err, ErrCodeNotFound))
	assert.False(t, IsCode(err, ErrCodeInternal))
	assert.False(t, IsCode(nil, ErrCodeNotFound))
	assert.False(t, IsCode(stderrors.New("plain"), ErrCodeNotFound))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("gone")))
	assert.True(t, IsNotFound(New(ErrCodeNodeNotFound, "no node")))
	assert.True(t, IsNotFound(New(ErrCodeTreeNotFound, "no tree")))
	assert.False(t, IsNotFound(Internal("boom")))
	assert.False(t, IsNotFound(nil))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, ErrCodeBadRequest, GetCode(InvalidParam("bad code")))
	assert.Equal(t, ErrCodeTaxonomyUnknown, GetCode(UnknownTaxonomy("sitc")))
	assert.Equal(t, CodeOK, GetCode(nil))
	assert.Equal(t, CodeUnknown, GetCode(stderrors.New("plain")))
}

func TestGetCodeUnwrapsChain(t *testing.T) {
	inner := New(ErrCodeProvenanceEmpty, "no provenance")
	wrapped := fmt.Errorf("resolve: %w", inner)

	assert.Equal(t, ErrCodeProvenanceEmpty, GetCode(wrapped))
}

func TestHTTPStatusForCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatusForCode(ErrCodeTaxonomyUnknown))
	assert.Equal(t, http.StatusNotFound, HTTPStatusForCode(ErrCodeTreeNotFound))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatusForCode(ErrCodeDatasetMissing))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusForCode(ErrorCode("NOPE_999")))
}

func TestClientServerClassification(t *testing.T) {
	assert.True(t, IsClientError(ErrCodeCodeInvalid))
	assert.False(t, IsServerError(ErrCodeCodeInvalid))
	assert.True(t, IsServerError(ErrCodeStoreError))
}

func TestModuleForCode(t *testing.T) {
	assert.Equal(t, "TAX", ModuleForCode(ErrCodeTaxonomyUnknown))
	assert.Equal(t, "BLD", ModuleForCode(ErrCodeTreeInvalid))
	assert.Equal(t, "UNKNOWN", ModuleForCode(ErrorCode("")))
}

func TestDefaultMessageForCode(t *testing.T) {
	assert.Equal(t, "unrecognized taxonomy identifier", DefaultMessageForCode(ErrCodeTaxonomyUnknown))
	assert.Equal(t, "unknown error", DefaultMessageForCode(ErrorCode("NOPE_999")))
}
