package clone

// LaunchTemplate is a named specification for launching EC2 instances within
// an autoscaling fleet. It is decoupled from the SDK wire types; the
// ec2adapter package converts in both directions.
//
// SpotPrice and AssociatePublicIP reuse the Override tri-state because EC2
// itself distinguishes "not configured" from an explicit value for them: a
// template without spot pricing is not the same as one with a price of 0, and
// a template that leaves public IP association to the subnet default is not
// the same as one that disables it.
type LaunchTemplate struct {
	Name                string
	ImageID             string
	KeyName             string
	SecurityGroups      []string
	UserData            []byte
	InstanceType        string
	InstanceMonitoring  bool
	SpotPrice           Override[float64]
	InstanceProfileName string
	EBSOptimized        bool
	AssociatePublicIP   Override[bool]
}
