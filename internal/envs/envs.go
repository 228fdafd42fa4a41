package envs

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/awstools/ltclone/internal/clone"
)

// LogLevel is the requested log level for the process.
var LogLevel = os.Getenv("GOLANG_LOG")

// AWS holds the settings needed to talk to the EC2 control plane. It is
// resolved from the environment exactly once at startup and passed explicitly
// to whoever needs it; nothing else in the process reads these variables.
type AWS struct {
	Region          string `validate:"required"`
	AccessKeyID     string `validate:"required"`
	SecretAccessKey string `validate:"required"`
}

// LoadAWS resolves the AWS settings from the conventional shell variables
// AWS_DEFAULT_REGION, AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY. A
// non-empty region argument wins over the environment. Missing values are a
// configuration error, reported before any network activity.
func LoadAWS(region string) (AWS, error) {
	cfg := AWS{
		Region:          os.Getenv("AWS_DEFAULT_REGION"),
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
	}
	if region != "" {
		cfg.Region = region
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return AWS{}, fmt.Errorf("%w: AWS_DEFAULT_REGION, AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set: %w", clone.ErrConfiguration, err)
	}
	return cfg, nil
}
