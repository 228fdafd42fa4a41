package ec2adapter

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/awstools/ltclone/internal/clone"
)

// fromTemplateData converts the wire representation of a launch template
// version into the domain model. User data arrives base64-encoded and is
// decoded into the raw blob; spot price arrives as a decimal string.
func fromTemplateData(name string, data *types.ResponseLaunchTemplateData) (clone.LaunchTemplate, error) {
	tpl := clone.LaunchTemplate{
		Name:           name,
		ImageID:        aws.ToString(data.ImageId),
		KeyName:        aws.ToString(data.KeyName),
		InstanceType:   string(data.InstanceType),
		SecurityGroups: data.SecurityGroupIds,
		EBSOptimized:   aws.ToBool(data.EbsOptimized),
	}
	if data.Monitoring != nil {
		tpl.InstanceMonitoring = aws.ToBool(data.Monitoring.Enabled)
	}
	if data.UserData != nil {
		raw, err := base64.StdEncoding.DecodeString(aws.ToString(data.UserData))
		if err != nil {
			return clone.LaunchTemplate{}, fmt.Errorf("user data of launch template %q is not valid base64: %w", name, err)
		}
		tpl.UserData = raw
	}
	if data.IamInstanceProfile != nil {
		tpl.InstanceProfileName = aws.ToString(data.IamInstanceProfile.Name)
	}
	if opts := data.InstanceMarketOptions; opts != nil && opts.SpotOptions != nil && opts.SpotOptions.MaxPrice != nil {
		price, err := strconv.ParseFloat(aws.ToString(opts.SpotOptions.MaxPrice), 64)
		if err != nil {
			return clone.LaunchTemplate{}, fmt.Errorf("spot price of launch template %q is not a number: %w", name, err)
		}
		tpl.SpotPrice = clone.Explicit(price)
	}
	// The public IP association lives on the primary network interface entry,
	// which then also carries the security groups instead of the top level.
	for _, ni := range data.NetworkInterfaces {
		if aws.ToInt32(ni.DeviceIndex) != 0 {
			continue
		}
		if ni.AssociatePublicIpAddress != nil {
			tpl.AssociatePublicIP = clone.Explicit(aws.ToBool(ni.AssociatePublicIpAddress))
		}
		if len(ni.Groups) > 0 {
			tpl.SecurityGroups = ni.Groups
		}
	}
	return tpl, nil
}

// toTemplateData converts the domain model into the request shape for
// CreateLaunchTemplate, inverting fromTemplateData.
func toTemplateData(tpl clone.LaunchTemplate) *types.RequestLaunchTemplateData {
	data := &types.RequestLaunchTemplateData{
		Monitoring:   &types.LaunchTemplatesMonitoringRequest{Enabled: aws.Bool(tpl.InstanceMonitoring)},
		EbsOptimized: aws.Bool(tpl.EBSOptimized),
	}
	if tpl.ImageID != "" {
		data.ImageId = aws.String(tpl.ImageID)
	}
	if tpl.KeyName != "" {
		data.KeyName = aws.String(tpl.KeyName)
	}
	if tpl.InstanceType != "" {
		data.InstanceType = types.InstanceType(tpl.InstanceType)
	}
	if len(tpl.UserData) > 0 {
		data.UserData = aws.String(base64.StdEncoding.EncodeToString(tpl.UserData))
	}
	if tpl.InstanceProfileName != "" {
		data.IamInstanceProfile = &types.LaunchTemplateIamInstanceProfileSpecificationRequest{
			Name: aws.String(tpl.InstanceProfileName),
		}
	}
	if price, ok := tpl.SpotPrice.Value(); ok {
		data.InstanceMarketOptions = &types.LaunchTemplateInstanceMarketOptionsRequest{
			MarketType: types.MarketTypeSpot,
			SpotOptions: &types.LaunchTemplateSpotMarketOptionsRequest{
				MaxPrice: aws.String(strconv.FormatFloat(price, 'f', -1, 64)),
			},
		}
	}
	if assoc, ok := tpl.AssociatePublicIP.Value(); ok {
		// When the association is pinned the security groups move onto the
		// primary interface entry, mirroring what EC2 hands back on fetch.
		data.NetworkInterfaces = []types.LaunchTemplateInstanceNetworkInterfaceSpecificationRequest{{
			DeviceIndex:              aws.Int32(0),
			AssociatePublicIpAddress: aws.Bool(assoc),
			Groups:                   tpl.SecurityGroups,
		}}
	} else {
		data.SecurityGroupIds = tpl.SecurityGroups
	}
	return data
}
