package auth_test

import (
	"testing"
	"time"

	"stocktake/core/apperror"
	"stocktake/core/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name  string
		actor auth.Actor
		err   error
	}{
		{"Admin", auth.Actor{ID: "1", Role: auth.RoleAdmin}, nil},
		{"Operator", auth.Actor{ID: "2", Role: auth.RoleOperator}, apperror.ErrUnauthorized},
		{"Anonymous", auth.Actor{Role: auth.RoleAdmin}, apperror.ErrUnauthorized},
		{"Unknown role", auth.Actor{ID: "3", Role: "guest"}, apperror.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.RequireAdmin(tt.actor)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestIssueAndParse(t *testing.T) {
	actor := auth.Actor{ID: "u-1", Name: "Anna", Role: auth.RoleOperator}

	token, err := auth.Issue("secret", "stocktake", actor, time.Hour)
	require.NoError(t, err)

	parsed, err := auth.Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, actor, parsed)
	assert.Equal(t, "Anna", parsed.Label())

	_, err = auth.Parse("other-secret", token)
	assert.Error(t, err)

	expired, err := auth.Issue("secret", "stocktake", actor, -time.Minute)
	require.NoError(t, err)
	_, err = auth.Parse("secret", expired)
	assert.Error(t, err)
}
