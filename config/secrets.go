package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// ParameterGetter is the subset of the SSM API used to resolve secrets.
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// NewParameterGetter builds an SSM client from the default AWS credential chain.
func NewParameterGetter(ctx context.Context) (ParameterGetter, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return ssm.NewFromConfig(awsCfg), nil
}

// ResolveSecret returns the value of key, unless paramKey names an SSM parameter,
// in which case the decrypted parameter value wins.
func ResolveSecret(ctx context.Context, cfg map[string]string, getter ParameterGetter, key, paramKey string) (string, error) {
	paramName := GetString(cfg, paramKey, "")
	if paramName == "" || getter == nil {
		return GetString(cfg, key, ""), nil
	}

	out, err := getter.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(paramName),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to read SSM parameter %s: %w", paramName, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("SSM parameter %s has no value", paramName)
	}

	log.Info().Str("parameter", paramName).Str("key", key).Msg("Resolved secret from SSM")
	return aws.ToString(out.Parameter.Value), nil
}
