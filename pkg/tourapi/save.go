package tourapi

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// SaveStep names one backend call of a composite tour save.
type SaveStep string

// Composite save steps, in execution order.
const (
	StepCoreFields        SaveStep = "core-fields"
	StepCategoriesAndTags SaveStep = "categories-and-tags"
	StepServices          SaveStep = "services"
)

// StepStatus is the outcome of a single step.
type StepStatus string

// Step outcomes.
const (
	StepApplied StepStatus = "applied"
	StepFailed  StepStatus = "failed"
	StepSkipped StepStatus = "skipped"
	StepNotRun  StepStatus = "not-run"
)

// TourCompositeUpdate groups everything a single "save tour" action changes.
// It has no backend representation; TourSaver splits it into independent calls.
type TourCompositeUpdate struct {
	// TourID of the tour to update. Empty creates a new tour in the first step.
	TourID string
	Core   TourFields
	// Image is optional on update and required on create.
	Image       *Upload
	CategoryIDs []int
	TagIDs      []int
	ServiceIDs  []string
	// AssociationsChanged gates the categories/tags step.
	AssociationsChanged bool
	// ServicesChanged gates the services step.
	ServicesChanged bool
}

// StepResult records what happened to one step.
type StepResult struct {
	Step     SaveStep
	Status   StepStatus
	Response OpaqueJSON
	Error    error
	Duration time.Duration
}

// SaveReport lists every step of a composite save in execution order.
type SaveReport struct {
	TourID string
	Steps  []StepResult
}

// Applied returns the steps whose effect reached the backend.
func (r *SaveReport) Applied() []SaveStep {
	var applied []SaveStep

	for _, result := range r.Steps {
		if result.Status == StepApplied {
			applied = append(applied, result.Step)
		}
	}

	return applied
}

// Step returns the result for step, or nil.
func (r *SaveReport) Step(step SaveStep) *StepResult {
	for i := range r.Steps {
		if r.Steps[i].Step == step {
			return &r.Steps[i]
		}
	}

	return nil
}

// SaveError reports the step that failed and the steps already applied.
// Applied steps are not rolled back.
type SaveError struct {
	Step    SaveStep
	Applied []SaveStep
	Err     error
}

// Error implements the error interface.
func (e *SaveError) Error() string {
	if len(e.Applied) == 0 {
		return fmt.Sprintf("saving tour: %s step failed: %v", e.Step, e.Err)
	}

	applied := make([]string, 0, len(e.Applied))
	for _, step := range e.Applied {
		applied = append(applied, string(step))
	}

	return fmt.Sprintf("saving tour: %s step failed after %s were applied: %v",
		e.Step, strings.Join(applied, ", "), e.Err)
}

// Unwrap returns the failing step's error.
func (e *SaveError) Unwrap() error {
	return e.Err
}

// PartiallyApplied reports whether earlier steps changed the backend before the failure.
func (e *SaveError) PartiallyApplied() bool {
	return len(e.Applied) > 0
}

// TourSaver runs a composite tour save as a strict sequence of independent calls.
// The backend offers no transaction across them, so a failure leaves earlier
// steps in place and is reported with the step that failed.
type TourSaver struct {
	tours    ToursClient
	services ServicesClient
}

// NewTourSaver creates a saver over the tour and service clients.
func NewTourSaver(tours ToursClient, services ServicesClient) *TourSaver {
	return &TourSaver{
		tours:    tours,
		services: services,
	}
}

// Save executes the steps in order and stops at the first failure. The report
// is always returned; the error is a *SaveError when a step fails.
func (s *TourSaver) Save(ctx context.Context, update *TourCompositeUpdate) (*SaveReport, error) {
	report := &SaveReport{
		Steps: []StepResult{
			{Step: StepCoreFields, Status: StepNotRun},
			{Step: StepCategoriesAndTags, Status: StepNotRun},
			{Step: StepServices, Status: StepNotRun},
		},
	}

	if update == nil {
		return report, s.fail(report, StepCoreFields, ErrInvalidPayload, 0)
	}

	report.TourID = update.TourID

	err := Validate(&update.Core)
	if err != nil {
		return report, s.fail(report, StepCoreFields, err, 0)
	}

	start := time.Now()

	response, err := s.saveCore(ctx, update)
	if err != nil {
		return report, s.fail(report, StepCoreFields, err, time.Since(start))
	}

	s.apply(report, StepCoreFields, response, time.Since(start))

	if update.TourID == "" {
		tourID, ok := TourIDFrom(response)
		if !ok {
			if update.AssociationsChanged || update.ServicesChanged {
				return report, s.fail(report, nextStep(update), ErrTourIDUnavailable, 0)
			}
		}

		report.TourID = tourID
	}

	if update.AssociationsChanged {
		start = time.Now()

		response, err = s.tours.UpdateCategoriesAndTags(ctx, report.TourID, &TourCategoriesAndTagsRequest{
			CategoryIDs: uniqueInts(update.CategoryIDs),
			TagIDs:      uniqueInts(update.TagIDs),
		})
		if err != nil {
			return report, s.fail(report, StepCategoriesAndTags, err, time.Since(start))
		}

		s.apply(report, StepCategoriesAndTags, response, time.Since(start))
	} else {
		report.Step(StepCategoriesAndTags).Status = StepSkipped
	}

	if update.ServicesChanged {
		start = time.Now()

		response, err = s.services.UpdateTourServices(ctx, report.TourID, &TourServicesRequest{
			ServiceIDs: uniqueStrings(update.ServiceIDs),
		})
		if err != nil {
			return report, s.fail(report, StepServices, err, time.Since(start))
		}

		s.apply(report, StepServices, response, time.Since(start))
	} else {
		report.Step(StepServices).Status = StepSkipped
	}

	return report, nil
}

func (s *TourSaver) saveCore(ctx context.Context, update *TourCompositeUpdate) (OpaqueJSON, error) {
	if update.TourID == "" {
		return s.tours.Create(ctx, &update.Core, update.Image)
	}

	return s.tours.Update(ctx, update.TourID, &update.Core, update.Image)
}

func (s *TourSaver) apply(report *SaveReport, step SaveStep, response OpaqueJSON, elapsed time.Duration) {
	result := report.Step(step)
	result.Status = StepApplied
	result.Response = response
	result.Duration = elapsed
}

func (s *TourSaver) fail(report *SaveReport, step SaveStep, err error, elapsed time.Duration) *SaveError {
	result := report.Step(step)
	result.Status = StepFailed
	result.Error = err
	result.Duration = elapsed

	return &SaveError{
		Step:    step,
		Applied: report.Applied(),
		Err:     err,
	}
}

// nextStep is the first association step a created tour would have needed.
func nextStep(update *TourCompositeUpdate) SaveStep {
	if update.AssociationsChanged {
		return StepCategoriesAndTags
	}

	return StepServices
}

func uniqueInts(values []int) []int {
	seen := make(map[int]struct{}, len(values))
	result := make([]int, 0, len(values))

	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}

		seen[value] = struct{}{}
		result = append(result, value)
	}

	return result
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}

		seen[value] = struct{}{}
		result = append(result, value)
	}

	return result
}
