package storage

import (
	"errors"
	"net/http"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
)

func TestObjectName(t *testing.T) {
	tests := []struct {
		prefix string
		key    string
		want   string
	}{
		{"", KeyHistory, "waste-classifier-history.json"},
		{"wise", KeyStats, "wise/waste-classifier-stats.json"},
		{"/wise/devices/laptop/", KeyTheme, "wise/devices/laptop/theme.json"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, objectName(tt.prefix, tt.key))
		})
	}
}

func TestTranslateObjectError(t *testing.T) {
	notFound := minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}
	assert.ErrorIs(t, translateObjectError(KeyStats, notFound), ErrNotFound)

	denied := minio.ErrorResponse{Code: "AccessDenied", StatusCode: http.StatusForbidden}
	err := translateObjectError(KeyStats, denied)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), KeyStats)

	plain := errors.New("connection reset")
	assert.ErrorIs(t, translateObjectError(KeyStats, plain), plain)
}
