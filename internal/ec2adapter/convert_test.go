package ec2adapter

import (
	"encoding/base64"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/require"

	"github.com/awstools/ltclone/internal/clone"
)

// TestFromTemplateData tests decoding a full response payload into the domain
// model, including the base64 user data and the spot price string.
func TestFromTemplateData(t *testing.T) {
	data := &types.ResponseLaunchTemplateData{
		ImageId:          aws.String("ami-111"),
		KeyName:          aws.String("deploy-key"),
		InstanceType:     types.InstanceTypeT2Micro,
		SecurityGroupIds: []string{"sg-a"},
		Monitoring:       &types.LaunchTemplatesMonitoring{Enabled: aws.Bool(true)},
		EbsOptimized:     aws.Bool(false),
		UserData:         aws.String(base64.StdEncoding.EncodeToString([]byte("#!/bin/sh\n"))),
		IamInstanceProfile: &types.LaunchTemplateIamInstanceProfileSpecification{
			Name: aws.String("web-profile"),
		},
		InstanceMarketOptions: &types.LaunchTemplateInstanceMarketOptions{
			MarketType:  types.MarketTypeSpot,
			SpotOptions: &types.LaunchTemplateSpotMarketOptions{MaxPrice: aws.String("0.25")},
		},
	}

	tpl, err := fromTemplateData("lc-v1", data)
	require.NoError(t, err)
	require.Equal(t, "lc-v1", tpl.Name)
	require.Equal(t, "ami-111", tpl.ImageID)
	require.Equal(t, "deploy-key", tpl.KeyName)
	require.Equal(t, "t2.micro", tpl.InstanceType)
	require.Equal(t, []string{"sg-a"}, tpl.SecurityGroups)
	require.True(t, tpl.InstanceMonitoring)
	require.False(t, tpl.EBSOptimized)
	require.Equal(t, []byte("#!/bin/sh\n"), tpl.UserData)
	require.Equal(t, "web-profile", tpl.InstanceProfileName)
	require.Equal(t, clone.Explicit(0.25), tpl.SpotPrice)
	require.False(t, tpl.AssociatePublicIP.IsSet())
}

// TestFromTemplateDataNetworkInterface tests that the primary interface entry
// supplies both the association flag and the security groups.
func TestFromTemplateDataNetworkInterface(t *testing.T) {
	data := &types.ResponseLaunchTemplateData{
		ImageId: aws.String("ami-111"),
		NetworkInterfaces: []types.LaunchTemplateInstanceNetworkInterfaceSpecification{
			{DeviceIndex: aws.Int32(1), Groups: []string{"sg-ignored"}},
			{DeviceIndex: aws.Int32(0), AssociatePublicIpAddress: aws.Bool(false), Groups: []string{"sg-a", "sg-b"}},
		},
	}

	tpl, err := fromTemplateData("lc-v1", data)
	require.NoError(t, err)
	require.Equal(t, clone.Explicit(false), tpl.AssociatePublicIP)
	require.Equal(t, []string{"sg-a", "sg-b"}, tpl.SecurityGroups)
}

// TestFromTemplateDataBadUserData tests that undecodable user data is
// surfaced instead of silently cloned.
func TestFromTemplateDataBadUserData(t *testing.T) {
	_, err := fromTemplateData("lc-v1", &types.ResponseLaunchTemplateData{
		UserData: aws.String("not base64!"),
	})
	require.Error(t, err)
}

// TestToTemplateData tests encoding the domain model into a create request.
func TestToTemplateData(t *testing.T) {
	data := toTemplateData(clone.LaunchTemplate{
		Name:                "lc-v2",
		ImageID:             "ami-222",
		KeyName:             "deploy-key",
		SecurityGroups:      []string{"sg-a"},
		UserData:            []byte("#!/bin/sh\n"),
		InstanceType:        "m5.large",
		InstanceMonitoring:  true,
		SpotPrice:           clone.Explicit(0.1),
		InstanceProfileName: "web-profile",
		EBSOptimized:        true,
	})

	require.Equal(t, "ami-222", aws.ToString(data.ImageId))
	require.Equal(t, types.InstanceType("m5.large"), data.InstanceType)
	require.Equal(t, []string{"sg-a"}, data.SecurityGroupIds)
	require.Empty(t, data.NetworkInterfaces)
	require.True(t, aws.ToBool(data.Monitoring.Enabled))
	require.True(t, aws.ToBool(data.EbsOptimized))
	require.Equal(t, base64.StdEncoding.EncodeToString([]byte("#!/bin/sh\n")), aws.ToString(data.UserData))
	require.Equal(t, "web-profile", aws.ToString(data.IamInstanceProfile.Name))
	require.Equal(t, types.MarketTypeSpot, data.InstanceMarketOptions.MarketType)
	require.Equal(t, "0.1", aws.ToString(data.InstanceMarketOptions.SpotOptions.MaxPrice))
}

// TestToTemplateDataPublicIP tests that pinning the association moves the
// security groups onto the primary interface entry.
func TestToTemplateDataPublicIP(t *testing.T) {
	data := toTemplateData(clone.LaunchTemplate{
		Name:              "lc-v2",
		SecurityGroups:    []string{"sg-a"},
		AssociatePublicIP: clone.Explicit(false),
	})

	require.Empty(t, data.SecurityGroupIds)
	require.Len(t, data.NetworkInterfaces, 1)
	ni := data.NetworkInterfaces[0]
	require.Equal(t, int32(0), aws.ToInt32(ni.DeviceIndex))
	require.False(t, aws.ToBool(ni.AssociatePublicIpAddress))
	require.Equal(t, []string{"sg-a"}, ni.Groups)
}

// TestRoundTrip tests that a fetch of what create sent reproduces the domain
// value for the fields the wire shape keeps symmetric.
func TestRoundTrip(t *testing.T) {
	tpl := clone.LaunchTemplate{
		Name:               "lc-v2",
		ImageID:            "ami-222",
		SecurityGroups:     []string{"sg-a"},
		InstanceType:       "t2.micro",
		InstanceMonitoring: true,
		SpotPrice:          clone.Explicit(0.25),
		AssociatePublicIP:  clone.Explicit(true),
	}

	req := toTemplateData(tpl)
	back, err := fromTemplateData("lc-v2", &types.ResponseLaunchTemplateData{
		ImageId:      req.ImageId,
		InstanceType: req.InstanceType,
		Monitoring:   &types.LaunchTemplatesMonitoring{Enabled: req.Monitoring.Enabled},
		EbsOptimized: req.EbsOptimized,
		InstanceMarketOptions: &types.LaunchTemplateInstanceMarketOptions{
			MarketType:  types.MarketTypeSpot,
			SpotOptions: &types.LaunchTemplateSpotMarketOptions{MaxPrice: req.InstanceMarketOptions.SpotOptions.MaxPrice},
		},
		NetworkInterfaces: []types.LaunchTemplateInstanceNetworkInterfaceSpecification{{
			DeviceIndex:              req.NetworkInterfaces[0].DeviceIndex,
			AssociatePublicIpAddress: req.NetworkInterfaces[0].AssociatePublicIpAddress,
			Groups:                   req.NetworkInterfaces[0].Groups,
		}},
	})
	require.NoError(t, err)
	require.Equal(t, tpl, back)
}
