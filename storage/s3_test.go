package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewS3Storage_Validation(t *testing.T) {
	tests := []struct {
		name    string
		bucket  string
		region  string
		wantErr bool
	}{
		{"valid bucket and region", "test-bucket", "us-east-1", false},
		{"empty bucket", "", "us-east-1", true},
		{"empty region", "test-bucket", "", true},
		{"both empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewS3Storage(tt.bucket, tt.region)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, store)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, store)
			assert.Equal(t, tt.bucket, store.bucket)
		})
	}
}

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"simple path", "runs/run-1.json", "runs/run-1.json", false},
		{"cleaned path", "runs//run-1.json", "runs/run-1.json", false},
		{"empty path", "", "", true},
		{"parent traversal", "../secrets.json", "", true},
		{"absolute path", "/etc/passwd", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := objectKey(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPath)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
