package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	cfg := map[string]string{
		"PORT":    "9090",
		"BAD_INT": "nine",
		"DEBUG":   "true",
		"EMPTY":   "",
		"ORIGINS": " https://a.example , ,https://b.example",
	}

	assert.Equal(t, 9090, GetInt(cfg, "PORT", 8080))
	assert.Equal(t, 8080, GetInt(cfg, "BAD_INT", 8080))
	assert.Equal(t, 8080, GetInt(cfg, "MISSING", 8080))
	assert.True(t, GetBool(cfg, "DEBUG", false))
	assert.Equal(t, "fallback", GetString(cfg, "EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "PORT", "fallback"))
	assert.Equal(t, 15*time.Second, GetSeconds(cfg, "MISSING", 15))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, GetList(cfg, "ORIGINS"))
	assert.Nil(t, GetList(cfg, "MISSING"))
}

func TestSplit(t *testing.T) {
	key, value := split("A=b=c")
	assert.Equal(t, "A", key)
	assert.Equal(t, "b=c", value)

	key, value = split("LONELY")
	assert.Equal(t, "LONELY", key)
	assert.Empty(t, value)
}

type fakeParams struct {
	value string
	err   error
	asked string
}

func (f *fakeParams) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.asked = aws.ToString(in.Name)
	if f.err != nil {
		return nil, f.err
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String(f.value)}}, nil
}

func TestResolveSecret(t *testing.T) {
	ctx := context.Background()

	t.Run("plain env value without parameter", func(t *testing.T) {
		cfg := map[string]string{"CMS_TOKEN": "env-token"}
		got, err := ResolveSecret(ctx, cfg, &fakeParams{value: "ssm"}, "CMS_TOKEN", "CMS_TOKEN_SSM_PARAM")
		require.NoError(t, err)
		assert.Equal(t, "env-token", got)
	})

	t.Run("parameter overrides env", func(t *testing.T) {
		getter := &fakeParams{value: "ssm-token"}
		cfg := map[string]string{"CMS_TOKEN": "env-token", "CMS_TOKEN_SSM_PARAM": "/site/cms-token"}
		got, err := ResolveSecret(ctx, cfg, getter, "CMS_TOKEN", "CMS_TOKEN_SSM_PARAM")
		require.NoError(t, err)
		assert.Equal(t, "ssm-token", got)
		assert.Equal(t, "/site/cms-token", getter.asked)
	})

	t.Run("parameter failure", func(t *testing.T) {
		cfg := map[string]string{"CMS_TOKEN_SSM_PARAM": "/site/cms-token"}
		_, err := ResolveSecret(ctx, cfg, &fakeParams{err: errors.New("denied")}, "CMS_TOKEN", "CMS_TOKEN_SSM_PARAM")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "/site/cms-token")
	})
}
