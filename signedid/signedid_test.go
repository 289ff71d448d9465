package signedid_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-test/deep"

	"github.com/clustermap/blobcore/signedid"
)

func TestWrapUnwrapRoundTrip(t *testing.T) {
	metadata := map[string]interface{}{"account": float64(100), "container": float64(200)}
	wrapped, err := signedid.Wrap("some-blob-id", metadata)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	if !strings.HasPrefix(wrapped, signedid.Prefix) {
		t.Fatalf("wrapped string %q missing prefix %q", wrapped, signedid.Prefix)
	}

	id, gotMetadata, err := signedid.Unwrap(wrapped)
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}
	if id != "some-blob-id" {
		t.Fatalf("id = %q, want some-blob-id", id)
	}
	if diff := deep.Equal(gotMetadata, metadata); diff != nil {
		t.Fatalf("metadata differs: %v", diff)
	}
}

func TestUnwrapRejectsMissingPrefix(t *testing.T) {
	if _, _, err := signedid.Unwrap("not-a-signed-id"); !errors.Is(err, signedid.ErrSerializationFailure) {
		t.Fatalf("err = %v, want ErrSerializationFailure", err)
	}
}

func TestUnwrapRejectsBadBase64(t *testing.T) {
	if _, _, err := signedid.Unwrap(signedid.Prefix + "!!!not-base64!!!"); !errors.Is(err, signedid.ErrSerializationFailure) {
		t.Fatalf("err = %v, want ErrSerializationFailure", err)
	}
}

func TestUnwrapRejectsBadJSON(t *testing.T) {
	notJSON := signedid.Prefix + "bm90IGpzb24" // base64url of "not json"
	if _, _, err := signedid.Unwrap(notJSON); !errors.Is(err, signedid.ErrSerializationFailure) {
		t.Fatalf("err = %v, want ErrSerializationFailure", err)
	}
}
