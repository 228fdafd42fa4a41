package clone

// Merge builds the clone of source: every field inherits the source's value
// unless the override set carries an explicit one, and the name is always
// newName. Fields are merged independently of each other, and a newName equal
// to the source name is passed through untouched; whether that is acceptable
// is the backend's decision.
func Merge(source LaunchTemplate, ov OverrideSet, newName string) LaunchTemplate {
	return LaunchTemplate{
		Name:                newName,
		ImageID:             ov.ImageID.Or(source.ImageID),
		KeyName:             ov.KeyName.Or(source.KeyName),
		SecurityGroups:      ov.SecurityGroups.Or(source.SecurityGroups),
		UserData:            ov.UserData.Or(source.UserData),
		InstanceType:        ov.InstanceType.Or(source.InstanceType),
		InstanceMonitoring:  ov.InstanceMonitoring.Or(source.InstanceMonitoring),
		SpotPrice:           mergeOptional(ov.SpotPrice, source.SpotPrice),
		InstanceProfileName: ov.InstanceProfileName.Or(source.InstanceProfileName),
		EBSOptimized:        ov.EBSOptimized.Or(source.EBSOptimized),
		AssociatePublicIP:   mergeOptional(ov.AssociatePublicIP, source.AssociatePublicIP),
	}
}

// mergeOptional resolves a field that is tri-state on the template itself.
// Without an explicit override the source's own slot is kept as-is, so a
// source that never configured the field produces a clone that also leaves it
// unconfigured.
func mergeOptional[T any](ov, source Override[T]) Override[T] {
	if ov.IsSet() {
		return ov
	}
	return source
}
