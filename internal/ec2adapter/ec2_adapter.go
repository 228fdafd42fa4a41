package ec2adapter

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog/log"

	"github.com/awstools/ltclone/internal/clone"
	"github.com/awstools/ltclone/internal/envs"
)

// ErrNotFound is returned by FetchByName when no launch template matches the
// requested name.
var ErrNotFound = errors.New("launch template not found")

const notFoundCode = "InvalidLaunchTemplateName.NotFoundException"

// Adapter implements clone.TemplateAPI on top of the EC2 API. It wraps a
// single client which is used for both the fetch and the create call.
type Adapter struct {
	client *ec2.Client
}

// Connect function uses aws-sdk-go-v2 module to build an EC2 client bound to
// the given region and static credentials. No network traffic happens here.
func Connect(ctx context.Context, creds envs.AWS) (*Adapter, error) {
	// Define option function to set static credentials
	credFunc := func(lo *config.LoadOptions) error {
		lo.Credentials = aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
			return aws.Credentials{AccessKeyID: creds.AccessKeyID, SecretAccessKey: creds.SecretAccessKey}, nil
		})
		return nil
	}

	// Create http client.
	httpClient := awshttp.NewBuildableClient().WithTransportOptions(func(tr *http.Transport) {
		if tr.TLSClientConfig == nil {
			tr.TLSClientConfig = &tls.Config{}
		}
		tr.TLSClientConfig.MinVersion = tls.VersionTLS12
	})

	cfg, err := config.LoadDefaultConfig(ctx, credFunc, config.WithHTTPClient(httpClient), config.WithRegion(creds.Region))
	if err != nil {
		return nil, fmt.Errorf("AWS config got error : %w", err)
	}
	return &Adapter{client: ec2.NewFromConfig(cfg)}, nil
}

// FetchByName resolves name to exactly one launch template and returns its
// default version's data. Zero matches map to ErrNotFound; more than one
// match is an error of its own since the clone source must be unambiguous.
func (a *Adapter) FetchByName(ctx context.Context, name string) (clone.LaunchTemplate, error) {
	res, err := a.client.DescribeLaunchTemplates(ctx, &ec2.DescribeLaunchTemplatesInput{
		LaunchTemplateNames: []string{name},
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == notFoundCode {
			return clone.LaunchTemplate{}, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return clone.LaunchTemplate{}, fmt.Errorf("EC2 client got error : %w", err)
	}
	switch len(res.LaunchTemplates) {
	case 0:
		return clone.LaunchTemplate{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	case 1:
	default:
		return clone.LaunchTemplate{}, fmt.Errorf("%d launch templates match %q, expected exactly one", len(res.LaunchTemplates), name)
	}

	versions, err := a.client.DescribeLaunchTemplateVersions(ctx, &ec2.DescribeLaunchTemplateVersionsInput{
		LaunchTemplateId: res.LaunchTemplates[0].LaunchTemplateId,
		Versions:         []string{"$Default"},
	})
	if err != nil {
		return clone.LaunchTemplate{}, fmt.Errorf("EC2 client got error : %w", err)
	}
	if len(versions.LaunchTemplateVersions) == 0 || versions.LaunchTemplateVersions[0].LaunchTemplateData == nil {
		return clone.LaunchTemplate{}, fmt.Errorf("launch template %q has no default version data", name)
	}
	log.Debug().Msgf("Resolved launch template %q to id %s", name, aws.ToString(res.LaunchTemplates[0].LaunchTemplateId))

	return fromTemplateData(name, versions.LaunchTemplateVersions[0].LaunchTemplateData)
}

// Create registers tpl with EC2. Any rejection is surfaced with the API error
// code so the operator sees why (duplicate name, bad field combination,
// missing permission).
func (a *Adapter) Create(ctx context.Context, tpl clone.LaunchTemplate) error {
	_, err := a.client.CreateLaunchTemplate(ctx, &ec2.CreateLaunchTemplateInput{
		LaunchTemplateName: aws.String(tpl.Name),
		LaunchTemplateData: toTemplateData(tpl),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("EC2 rejected launch template %q (%s): %w", tpl.Name, apiErr.ErrorCode(), err)
		}
		return fmt.Errorf("EC2 client got error : %w", err)
	}
	return nil
}
