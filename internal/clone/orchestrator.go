package clone

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// TemplateAPI is the outbound boundary to the EC2 control plane. Both calls
// block until the backend answers; retries and timeouts are not this
// package's concern.
type TemplateAPI interface {
	FetchByName(ctx context.Context, name string) (LaunchTemplate, error)
	Create(ctx context.Context, tpl LaunchTemplate) error
}

// Orchestrator runs the fetch, merge, create sequence. Create is the only
// state-mutating call and is attempted at most once per run.
type Orchestrator struct {
	api    TemplateAPI
	logger zerolog.Logger
}

func NewOrchestrator(api TemplateAPI, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{api: api, logger: logger}
}

// Run clones the launch template named oldName into a new template named
// newName with ov applied. Steps are strictly ordered; a failed fetch means
// nothing external is changed.
func (o *Orchestrator) Run(ctx context.Context, oldName, newName string, ov OverrideSet) error {
	source, err := o.api.FetchByName(ctx, oldName)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrFetch, oldName, err)
	}
	o.logger.Debug().Str("template", oldName).Msgf("Fetched source launch template")

	merged := Merge(source, ov, newName)

	if err := o.api.Create(ctx, merged); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrCreate, newName, err)
	}
	o.logger.Info().Str("template", newName).Msgf("Created launch template as a clone of %q", oldName)
	return nil
}
