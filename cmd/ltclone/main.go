package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/awstools/ltclone/internal/buildmeta"
	"github.com/awstools/ltclone/internal/clone"
	"github.com/awstools/ltclone/internal/ec2adapter"
	"github.com/awstools/ltclone/internal/envs"
	"github.com/awstools/ltclone/internal/loggerutils"
)

func main() {
	loggerutils.Init("ltclone")

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Msgf("%v", err)
		os.Exit(1)
	}
}

// connect is swapped out by tests to keep them off the network.
var connect = func(ctx context.Context, cfg envs.AWS) (clone.TemplateAPI, error) {
	return ec2adapter.Connect(ctx, cfg)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ltclone <old-name> <new-name>",
		Short: "Clone an EC2 launch template, overriding selected fields",
		Long: "Clone a launch template. Any options passed override the cloned template's\n" +
			"settings rather than append to them. Requires shell variables to be set:\n" +
			"AWS_DEFAULT_REGION, AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY.",
		Version:       fmt.Sprintf("%s (commit %s)", buildmeta.Version, buildmeta.Commit),
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], args[1])
		},
	}

	flags := cmd.Flags()
	flags.String("ami", "", "AMI ID for the new launch template")
	flags.String("ssh-key", "", "SSH key pair name")
	flags.StringArray("security-group", nil, "security group for the new launch template, may be repeated")
	flags.String("user-data-script", "", "file containing the user data script")
	flags.String("instance-type", "", "instance type")
	flags.Bool("enable-instance-monitoring", false, "enable detailed instance monitoring")
	flags.Bool("disable-instance-monitoring", false, "disable detailed instance monitoring")
	flags.String("spot-price", "", "maximum spot price")
	flags.String("instance-profile-name", "", "name or ARN of the instance profile")
	flags.Bool("enable-ebs-optimized", false, "enable EBS optimization")
	flags.Bool("disable-ebs-optimized", false, "disable EBS optimization")
	flags.Bool("enable-associate-public-ip-address", false, "associate a public IP address")
	flags.Bool("disable-associate-public-ip-address", false, "do not associate a public IP address")
	flags.String("region", "", "region within which to clone (defaults to AWS_DEFAULT_REGION)")

	return cmd
}

func run(cmd *cobra.Command, oldName, newName string) error {
	ov, err := overridesFromFlags(cmd)
	if err != nil {
		return err
	}

	region, _ := cmd.Flags().GetString("region")
	cfg, err := envs.LoadAWS(region)
	if err != nil {
		return err
	}

	api, err := connect(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", clone.ErrConfiguration, err)
	}

	return clone.NewOrchestrator(api, log.Logger).Run(cmd.Context(), oldName, newName, ov)
}

// overridesFromFlags builds the override set from the flags the operator
// actually passed. Changed is what keeps the tri-state honest: a flag left at
// its default stays unset, while an explicit false or zero stays explicit.
func overridesFromFlags(cmd *cobra.Command) (clone.OverrideSet, error) {
	var (
		ov    clone.OverrideSet
		flags = cmd.Flags()
		err   error
	)

	if flags.Changed("ami") {
		v, _ := flags.GetString("ami")
		ov.ImageID = clone.Explicit(v)
	}
	if flags.Changed("ssh-key") {
		v, _ := flags.GetString("ssh-key")
		ov.KeyName = clone.Explicit(v)
	}
	if flags.Changed("security-group") {
		v, _ := flags.GetStringArray("security-group")
		if ov.SecurityGroups, err = clone.SecurityGroupsOverride(v); err != nil {
			return clone.OverrideSet{}, err
		}
	}
	if flags.Changed("user-data-script") {
		v, _ := flags.GetString("user-data-script")
		if ov.UserData, err = clone.ReadUserDataScript(v); err != nil {
			return clone.OverrideSet{}, err
		}
	}
	if flags.Changed("instance-type") {
		v, _ := flags.GetString("instance-type")
		ov.InstanceType = clone.Explicit(v)
	}
	if flags.Changed("spot-price") {
		v, _ := flags.GetString("spot-price")
		if ov.SpotPrice, err = clone.ParseSpotPrice(v); err != nil {
			return clone.OverrideSet{}, err
		}
	}
	if flags.Changed("instance-profile-name") {
		v, _ := flags.GetString("instance-profile-name")
		ov.InstanceProfileName = clone.Explicit(v)
	}
	if ov.InstanceMonitoring, err = boolOverride(cmd, "enable-instance-monitoring", "disable-instance-monitoring"); err != nil {
		return clone.OverrideSet{}, err
	}
	if ov.EBSOptimized, err = boolOverride(cmd, "enable-ebs-optimized", "disable-ebs-optimized"); err != nil {
		return clone.OverrideSet{}, err
	}
	if ov.AssociatePublicIP, err = boolOverride(cmd, "enable-associate-public-ip-address", "disable-associate-public-ip-address"); err != nil {
		return clone.OverrideSet{}, err
	}
	return ov, nil
}

// boolOverride folds an enable/disable flag pair into one tri-state slot.
func boolOverride(cmd *cobra.Command, enable, disable string) (clone.Override[bool], error) {
	on, off := cmd.Flags().Changed(enable), cmd.Flags().Changed(disable)
	switch {
	case on && off:
		return clone.Override[bool]{}, fmt.Errorf("%w: --%s and --%s are mutually exclusive", clone.ErrInput, enable, disable)
	case on:
		return clone.Explicit(true), nil
	case off:
		return clone.Explicit(false), nil
	default:
		return clone.Override[bool]{}, nil
	}
}
