package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	tests := []struct {
		err      error
		sentinel error
		name     string
		wantMsg  string
		wantText string
	}{
		{
			name:     "wraps sentinel",
			err:      NewUserError(MsgExplicitRefusal, ErrExplicitRefusal),
			sentinel: ErrExplicitRefusal,
			wantMsg:  MsgExplicitRefusal,
			wantText: MsgExplicitRefusal + ": " + ErrExplicitRefusal.Error(),
		},
		{
			name:     "wraps chained cause",
			err:      NewUserError(MsgRemoteCallFailed, fmt.Errorf("%w: %w", ErrRemoteCallFailed, errors.New("dial tcp: timeout"))),
			sentinel: ErrRemoteCallFailed,
			wantMsg:  MsgRemoteCallFailed,
			wantText: MsgRemoteCallFailed + ": remote classification failed: dial tcp: timeout",
		},
		{
			name:     "message only",
			err:      NewUserError("plain", nil),
			wantMsg:  "plain",
			wantText: "plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.sentinel != nil {
				assert.ErrorIs(t, tt.err, tt.sentinel)
			}
			assert.Equal(t, tt.wantMsg, UserMessage(tt.err))
			assert.Equal(t, tt.wantText, tt.err.Error())
		})
	}
}

func TestUserMessage_PlainError(t *testing.T) {
	assert.Equal(t, "boom", UserMessage(errors.New("boom")))
	assert.Empty(t, UserMessage(nil))
}
