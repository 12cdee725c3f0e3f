package requirement

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/requisite/internal/events"
	"github.com/zjrosen/requisite/internal/log"
	"github.com/zjrosen/requisite/internal/metrics"
	requirement "github.com/zjrosen/requisite/internal/requirement/domain"
	"github.com/zjrosen/requisite/internal/state"
	"github.com/zjrosen/requisite/internal/tracing"
)

// ErrNilStore is returned when the service is created without a state store.
var ErrNilStore = errors.New("checklist service requires a state store")

// EventBus is the event bus the service publishes to and exposes.
type EventBus interface {
	events.Publisher
	events.Subscriber
}

// ServiceConfig configures a ChecklistService.
type ServiceConfig struct {
	// Builtin holds the embedded manifests under BuiltinRoot. Nil disables them.
	Builtin     fs.FS
	BuiltinRoot string

	// UserDir is the overlay directory. Invalid files there are skipped.
	UserDir string

	// Paths are explicit manifest files or directories. Errors are fatal.
	Paths []string

	Store   state.Store
	Events  EventBus         // optional
	Metrics *metrics.Metrics // optional
	Tracer  trace.Tracer     // optional
}

// Preview is the outcome of validating a submission without committing it.
type Preview struct {
	RequirementID string
	// Current holds the stored values of the form's keys.
	Current requirement.Values
	// Proposed holds the normalised values that would be committed.
	Proposed requirement.Values
	Errors   []requirement.FieldError
}

// Valid reports whether the submission would be accepted.
func (p Preview) Valid() bool {
	return len(p.Errors) == 0
}

// ChecklistService loads manifests into a registry and exposes evaluation and
// configuration to presentation layers. It is safe for concurrent use.
type ChecklistService struct {
	cfg    ServiceConfig
	tracer trace.Tracer

	reloadMu sync.Mutex // serializes Reload

	mu        sync.RWMutex
	registry  *requirement.Registry
	manifests []*Manifest
}

// NewChecklistService creates the service and performs the initial load.
func NewChecklistService(cfg ServiceConfig) (*ChecklistService, error) {
	if cfg.Store == nil {
		return nil, ErrNilStore
	}
	if cfg.Events == nil {
		cfg.Events = events.NewBus()
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	}

	s := &ChecklistService{cfg: cfg, tracer: tracer}
	if err := s.Reload(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload loads every manifest source, builds and validates a fresh registry,
// and swaps it in. On error the current registry stays in place.
func (s *ChecklistService) Reload(ctx context.Context) (err error) {
	_, span := s.tracer.Start(ctx, tracing.SpanReload)
	defer func() { tracing.Finish(span, err) }()

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	manifests, err := s.loadManifests()
	if err != nil {
		s.cfg.Metrics.IncrementReload(false)
		log.ErrorErr(log.CatRegistry, "Manifest reload failed", err)
		return err
	}

	reg, err := BuildRegistry(manifests, s.cfg.Store, s.cfg.Store, WithErrorHandler(s.onPredicateError))
	if err != nil {
		s.cfg.Metrics.IncrementReload(false)
		log.ErrorErr(log.CatRegistry, "Manifest reload failed", err)
		return fmt.Errorf("build registry: %w", err)
	}

	s.mu.Lock()
	s.registry = reg
	s.manifests = manifests
	s.mu.Unlock()

	span.SetAttributes(
		attribute.Int(tracing.AttrManifestCount, len(manifests)),
		attribute.Int(tracing.AttrRequirementCount, reg.Len()),
	)
	s.cfg.Metrics.IncrementReload(true)
	s.cfg.Events.Publish(events.ManifestReloaded, "", map[string]string{
		"manifests":    strconv.Itoa(len(manifests)),
		"requirements": strconv.Itoa(reg.Len()),
	})
	log.Info(log.CatRegistry, "Loaded checklist", "manifests", len(manifests), "requirements", reg.Len())
	return nil
}

func (s *ChecklistService) loadManifests() ([]*Manifest, error) {
	var all []*Manifest

	if s.cfg.Builtin != nil {
		root := s.cfg.BuiltinRoot
		if root == "" {
			root = "."
		}
		ms, err := LoadManifests(s.cfg.Builtin, root, "builtin:")
		if err != nil {
			return nil, fmt.Errorf("load builtin manifests: %w", err)
		}
		all = append(all, ms...)
	}

	all = append(all, LoadUserManifests(s.cfg.UserDir)...)

	for _, p := range s.cfg.Paths {
		ms, err := LoadManifestPath(p)
		if err != nil {
			return nil, err
		}
		all = append(all, ms...)
	}

	if len(all) == 0 {
		return nil, ErrNoManifests
	}
	return all, nil
}

func (s *ChecklistService) onPredicateError(requirementID, check string, err error) {
	log.Warn(log.CatEval, "Predicate failed, treating as false",
		"requirement", requirementID, "check", check, "error", err.Error())
	s.cfg.Metrics.IncrementPredicateError(check)
}

// Registry returns the current registry.
func (s *ChecklistService) Registry() *requirement.Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry
}

// Manifests returns the manifests the current registry was built from.
func (s *ChecklistService) Manifests() []*Manifest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Manifest, len(s.manifests))
	copy(out, s.manifests)
	return out
}

// Evaluate evaluates the checklist once.
func (s *ChecklistService) Evaluate(ctx context.Context) (rep *requirement.Report, err error) {
	ctx, span := s.tracer.Start(ctx, tracing.SpanEvaluate)
	defer func() { tracing.Finish(span, err) }()

	start := time.Now()
	rep, err = s.Registry().Evaluate(ctx)
	if err != nil {
		return nil, err
	}

	s.cfg.Metrics.ObserveEvaluation(time.Since(start), map[string]int{
		string(requirement.StateCompleted):  rep.Summary.Completed,
		string(requirement.StateActionable): rep.Summary.Actionable,
		string(requirement.StateWaiting):    rep.Summary.Waiting,
		string(requirement.StateBlocked):    rep.Summary.Blocked,
	})
	span.SetAttributes(
		attribute.Int(tracing.AttrRequirementCount, rep.Summary.Total),
		attribute.Bool(tracing.AttrFullyResolved, rep.FullyResolved),
		attribute.String(tracing.AttrNext, rep.Next),
	)
	return rep, nil
}

// AllApplicable returns the applicable requirements in dependency order.
func (s *ChecklistService) AllApplicable(ctx context.Context) ([]requirement.Requirement, error) {
	return s.Registry().AllApplicable(ctx)
}

// NextUnresolved returns the first applicable requirement that is not completed.
func (s *ChecklistService) NextUnresolved(ctx context.Context) (requirement.Requirement, bool, error) {
	return s.Registry().NextUnresolved(ctx)
}

// IsFullyResolved reports whether every applicable requirement is completed.
func (s *ChecklistService) IsFullyResolved(ctx context.Context) (bool, error) {
	return s.Registry().IsFullyResolved(ctx)
}

// Get returns the requirement with the given id.
func (s *ChecklistService) Get(id string) (requirement.Requirement, error) {
	return s.Registry().Get(id)
}

// List returns every registered requirement sorted by id.
func (s *ChecklistService) List() []requirement.Requirement {
	return s.Registry().List()
}

// Groups returns the groups in display order.
func (s *ChecklistService) Groups() []*requirement.Group {
	return s.Registry().Groups()
}

// GroupOf returns the group of r.
func (s *ChecklistService) GroupOf(r requirement.Requirement) (*requirement.Group, bool) {
	return s.Registry().GroupOf(r)
}

// Form returns the configuration form of the requirement.
func (s *ChecklistService) Form(id string) (*requirement.Form, error) {
	step, err := s.step(id)
	if err != nil {
		return nil, err
	}
	return step.Form(), nil
}

func (s *ChecklistService) step(id string) (requirement.Configurable, error) {
	req, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	step, ok := requirement.ConfigurationStep(req)
	if !ok {
		return nil, fmt.Errorf("%w: %s", requirement.ErrNoConfigurationStep, id)
	}
	return step, nil
}

// Configure validates and commits values for the requirement. A rejected
// submission returns a *requirement.ValidationError and changes nothing.
func (s *ChecklistService) Configure(ctx context.Context, id string, values requirement.Values) (res requirement.ConfigurationResult, err error) {
	ctx, span := s.tracer.Start(ctx, tracing.SpanConfigure,
		trace.WithAttributes(attribute.String(tracing.AttrRequirementID, id)),
	)
	defer func() { tracing.Finish(span, err) }()

	step, err := s.step(id)
	if err != nil {
		return requirement.ConfigurationResult{}, err
	}

	res, err = step.Configure(ctx, values)

	var verr *requirement.ValidationError
	switch {
	case errors.As(err, &verr):
		span.SetAttributes(
			attribute.String(tracing.AttrResult, metrics.ResultRejected),
			attribute.Int(tracing.AttrFieldErrors, len(verr.Fields)),
		)
		s.cfg.Metrics.IncrementConfiguration(id, metrics.ResultRejected)
		s.cfg.Events.Publish(events.RequirementRejected, id, fieldMessages(verr.Fields))
		log.Info(log.CatConfig, "Configuration rejected", "requirement", id, "errors", len(verr.Fields))
		return requirement.ConfigurationResult{}, err
	case err != nil:
		span.SetAttributes(attribute.String(tracing.AttrResult, metrics.ResultFailed))
		s.cfg.Metrics.IncrementConfiguration(id, metrics.ResultFailed)
		log.ErrorErr(log.CatConfig, "Configuration failed", err, "requirement", id)
		return requirement.ConfigurationResult{}, err
	}

	span.AddEvent(tracing.EventCommitted)
	span.SetAttributes(
		attribute.String(tracing.AttrResult, metrics.ResultAccepted),
		attribute.Bool(tracing.AttrCompleted, res.Completed),
	)
	s.cfg.Metrics.IncrementConfiguration(id, metrics.ResultAccepted)
	s.cfg.Events.Publish(events.RequirementConfigured, id, res.Values)
	log.Info(log.CatConfig, "Configuration committed", "requirement", id, "completed", res.Completed)
	return res, nil
}

// fieldMessages flattens field errors into one message per field.
func fieldMessages(errs []requirement.FieldError) map[string]string {
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		if prev, ok := out[fe.Field]; ok {
			out[fe.Field] = prev + "; " + fe.Message
			continue
		}
		out[fe.Field] = fe.Message
	}
	return out
}

// Preview validates values against the requirement's form without committing.
func (s *ChecklistService) Preview(ctx context.Context, id string, values requirement.Values) (Preview, error) {
	step, err := s.step(id)
	if err != nil {
		return Preview{}, err
	}
	form := step.Form()

	current := make(requirement.Values)
	for _, key := range form.Keys() {
		v, ok, err := s.cfg.Store.Setting(ctx, key)
		if err != nil {
			return Preview{}, fmt.Errorf("read setting %s: %w", key, err)
		}
		if ok {
			current[key] = v
		}
	}

	proposed, fieldErrs := form.Validate(values)
	return Preview{
		RequirementID: id,
		Current:       current,
		Proposed:      proposed,
		Errors:        fieldErrs,
	}, nil
}

// History returns accepted submissions for id, oldest first. An empty id
// returns the history of every requirement.
func (s *ChecklistService) History(ctx context.Context, id string) ([]state.Submission, error) {
	return s.cfg.Store.Submissions(ctx, id)
}

// Events returns the subscriber for checklist events.
func (s *ChecklistService) Events() events.Subscriber {
	return s.cfg.Events
}

// Settings returns every stored setting.
func (s *ChecklistService) Settings(ctx context.Context) (map[string]string, error) {
	return s.cfg.Store.Settings(ctx)
}

// Capabilities returns the enabled capabilities.
func (s *ChecklistService) Capabilities(ctx context.Context) ([]string, error) {
	return s.cfg.Store.Capabilities(ctx)
}

// SetSetting stores a setting outside of any configuration step.
func (s *ChecklistService) SetSetting(ctx context.Context, key, value string) error {
	if err := s.cfg.Store.SetSetting(ctx, key, value); err != nil {
		return err
	}
	s.cfg.Events.Publish(events.StateChanged, "", map[string]string{"setting": key})
	return nil
}

// DeleteSetting removes a setting.
func (s *ChecklistService) DeleteSetting(ctx context.Context, key string) error {
	if err := s.cfg.Store.DeleteSetting(ctx, key); err != nil {
		return err
	}
	s.cfg.Events.Publish(events.StateChanged, "", map[string]string{"setting": key, "deleted": "true"})
	return nil
}

// SetCapability enables or disables a capability.
func (s *ChecklistService) SetCapability(ctx context.Context, name string, enabled bool) error {
	norm, err := state.NormalizeCapability(name)
	if err != nil {
		return err
	}
	if err := s.cfg.Store.SetCapability(ctx, norm, enabled); err != nil {
		return err
	}
	s.cfg.Events.Publish(events.StateChanged, "", map[string]string{
		"capability": norm,
		"enabled":    strconv.FormatBool(enabled),
	})
	return nil
}

// Sources lists the filesystem locations manifests are read from, for watching.
func (s *ChecklistService) Sources() []string {
	var out []string
	if s.cfg.UserDir != "" {
		out = append(out, s.cfg.UserDir)
	}
	out = append(out, s.cfg.Paths...)
	return out
}
