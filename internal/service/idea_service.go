package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/wso2/idea-management-api/internal/config"
	"github.com/wso2/idea-management-api/internal/events"
	"github.com/wso2/idea-management-api/internal/metrics"
	"github.com/wso2/idea-management-api/internal/models"
	"github.com/wso2/idea-management-api/internal/store"
	"github.com/wso2/idea-management-api/pkg/utils"
)

// Warnings attached to a degraded result
const (
	WarningAuditNotRecorded = "audit log entry could not be recorded"
	WarningEventNotSent     = "lifecycle notification could not be delivered"
)

// IdeaService owns idea identity and state. It orchestrates classification,
// evaluation, workflow tracking and auditing.
type IdeaService struct {
	store      store.Store
	classifier *ClassificationService
	evaluator  *EvaluationService
	workflows  *WorkflowService
	audit      *AuditService
	publisher  events.Publisher
	metrics    *metrics.Metrics
	validate   *validator.Validate
	logger     *logrus.Logger

	referencePrefix string
	idMaxAttempts   int
	generateID      func(prefix string) string
	now             func() time.Time
}

// NewIdeaService creates a new idea service. publisher and m may be nil.
func NewIdeaService(
	st store.Store,
	classifier *ClassificationService,
	evaluator *EvaluationService,
	workflows *WorkflowService,
	audit *AuditService,
	publisher events.Publisher,
	m *metrics.Metrics,
	cfg config.IdeaConfig,
	logger *logrus.Logger,
) *IdeaService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	prefix := cfg.ReferencePrefix
	if prefix == "" {
		prefix = utils.DefaultReferencePrefix
	}
	attempts := cfg.IDMaxAttempts
	if attempts <= 0 {
		attempts = 5
	}

	return &IdeaService{
		store:           st,
		classifier:      classifier,
		evaluator:       evaluator,
		workflows:       workflows,
		audit:           audit,
		publisher:       publisher,
		metrics:         m,
		validate:        newValidator(),
		logger:          logger,
		referencePrefix: prefix,
		idMaxAttempts:   attempts,
		generateID:      utils.GenerateReferenceCode,
		now:             time.Now,
	}
}

// newValidator checks the same `binding` tags gin uses and reports fields by
// their JSON names
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Submit validates and records a new idea. The idea, its classification,
// its evaluation and its workflow are written in one transaction; the audit
// entry and the notification follow on a best-effort basis.
func (s *IdeaService) Submit(ctx context.Context, actor models.Actor, request *models.IdeaSubmitRequest) (*models.IdeaResult, error) {
	if request == nil {
		return nil, invalidInput("request body is required")
	}
	request.Sanitize()
	if err := s.validateStruct(request); err != nil {
		return nil, err
	}

	now := utils.TimeToMillis(s.now())
	var (
		idea           *models.Idea
		classification *models.Classification
		evaluation     *models.EvaluationScore
		err            error
	)
	// Exists runs outside the transaction, so a concurrent submission can
	// still take the drawn code; that costs one attempt and draws again.
	for attempt := 0; ; {
		var ideaID string
		if ideaID, attempt, err = s.allocateIdeaID(ctx, attempt); err != nil {
			return nil, err
		}
		idea = newIdea(ideaID, request, now)
		classification, evaluation = s.assess(idea, models.SystemActorName, now)

		err = s.store.InTx(ctx, func(tx store.Store) error {
			if err := tx.Ideas().Create(ctx, idea); err != nil {
				if errors.Is(err, store.ErrDuplicate) {
					return errIdeaIDTaken
				}
				return persistence("failed to create idea", err)
			}
			if err := tx.Classifications().Create(ctx, classification); err != nil {
				return persistence("failed to create classification", err)
			}
			if err := tx.Evaluations().Create(ctx, evaluation); err != nil {
				return persistence("failed to create evaluation", err)
			}
			_, err := s.workflows.withStore(tx).Create(ctx, ideaID)
			return err
		})
		if !errors.Is(err, errIdeaIDTaken) {
			break
		}
		s.logger.WithFields(logrus.Fields{"idea_id": ideaID, "attempt": attempt}).Warn("Idea id taken by a concurrent submission")
	}
	if err != nil {
		return nil, err
	}
	ideaID := idea.IdeaID

	performedBy := actor.Name
	if performedBy == "" {
		performedBy = idea.SubmitterName()
	}

	s.logger.WithFields(logrus.Fields{
		"idea_id":        ideaID,
		"department":     idea.Department,
		"classification": classification.Category,
		"score":          evaluation.TotalScore,
		"actor":          performedBy,
	}).Info("Idea submitted")
	if s.metrics != nil {
		s.metrics.IdeasSubmitted.Inc()
	}

	result := &models.IdeaResult{Idea: idea}
	s.recordAudit(ctx, result, ideaID, models.AuditActionCreated, performedBy,
		fmt.Sprintf("Idea submitted by %s", idea.SubmitterName()))
	s.publish(ctx, result, events.IdeaEvent{
		Kind:       events.KindSubmitted,
		IdeaID:     ideaID,
		Status:     idea.Status,
		Actor:      performedBy,
		OccurredAt: now,
	})

	return result, nil
}

// UpdateStatus moves an idea along a legal edge and applies the review patch.
// Absent patch fields leave the stored values unchanged.
func (s *IdeaService) UpdateStatus(ctx context.Context, actor models.Actor, ideaID string, newStatus models.IdeaStatus, patch models.ReviewPatch) (*models.IdeaResult, error) {
	if !newStatus.IsValid() {
		return nil, invalidInput("invalid status: %s", newStatus)
	}
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	var idea *models.Idea
	var previous models.IdeaStatus
	err := s.store.InTx(ctx, func(tx store.Store) error {
		current, err := tx.Ideas().Get(ctx, ideaID)
		if err != nil {
			return storeError(err, models.ErrCodeIdeaNotFound, "idea "+ideaID)
		}
		if !current.Status.CanTransitionTo(newStatus) {
			return invalidTransition(current.Status, newStatus)
		}

		previous = current.Status
		current.Status = newStatus
		if patch.Classification != nil {
			current.Classification = patch.Classification
		}
		if patch.Priority != nil {
			current.Priority = patch.Priority
		}
		if patch.Remarks != nil {
			current.AdminRemarks = patch.Remarks
		}
		current.UpdatedTime = utils.TimeToMillis(s.now())

		if err := tx.Ideas().Update(ctx, current); err != nil {
			return storeError(err, models.ErrCodeIdeaNotFound, "idea "+ideaID)
		}
		if _, err := s.workflows.withStore(tx).UpdateStatus(ctx, ideaID, newStatus, patch.Remarks); err != nil {
			return err
		}
		idea = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"idea_id": ideaID,
		"from":    previous,
		"status":  newStatus,
		"actor":   actor.DisplayName(),
	}).Info("Idea status changed")
	if s.metrics != nil {
		s.metrics.StatusTransitions.WithLabelValues(string(previous), string(newStatus)).Inc()
	}

	details := fmt.Sprintf("Status changed from %s to %s", previous, newStatus)
	if patch.Remarks != nil && strings.TrimSpace(*patch.Remarks) != "" {
		details += ": " + *patch.Remarks
	}

	result := &models.IdeaResult{Idea: idea}
	s.recordAudit(ctx, result, ideaID, models.AuditActionStatusChanged, actor.DisplayName(), details)
	s.publish(ctx, result, events.IdeaEvent{
		Kind:           events.KindStatusChanged,
		IdeaID:         ideaID,
		Status:         newStatus,
		PreviousStatus: previous,
		Actor:          actor.DisplayName(),
		OccurredAt:     idea.UpdatedTime,
	})

	return result, nil
}

// AssignReviewer records the reviewer of an idea. A submitted idea is moved
// under review at the same time.
func (s *IdeaService) AssignReviewer(ctx context.Context, actor models.Actor, ideaID, reviewer string) (*models.IdeaResult, error) {
	reviewer = strings.TrimSpace(reviewer)
	if reviewer == "" {
		return nil, invalidInput("reviewer is required")
	}

	var idea *models.Idea
	var previous models.IdeaStatus
	err := s.store.InTx(ctx, func(tx store.Store) error {
		current, err := tx.Ideas().Get(ctx, ideaID)
		if err != nil {
			return storeError(err, models.ErrCodeIdeaNotFound, "idea "+ideaID)
		}
		if current.Status.IsTerminal() {
			return invalidTransition(current.Status, models.IdeaStatusUnderReview)
		}

		previous = current.Status
		if current.Status == models.IdeaStatusSubmitted {
			current.Status = models.IdeaStatusUnderReview
			current.UpdatedTime = utils.TimeToMillis(s.now())
			if err := tx.Ideas().Update(ctx, current); err != nil {
				return storeError(err, models.ErrCodeIdeaNotFound, "idea "+ideaID)
			}
		}
		if _, err := s.workflows.withStore(tx).AssignReviewer(ctx, ideaID, reviewer); err != nil {
			return err
		}
		idea = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"idea_id":  ideaID,
		"reviewer": reviewer,
		"actor":    actor.DisplayName(),
	}).Info("Reviewer assigned")

	result := &models.IdeaResult{Idea: idea}
	s.recordAudit(ctx, result, ideaID, models.AuditActionUpdated, actor.DisplayName(),
		fmt.Sprintf("Assigned to %s", reviewer))

	if previous != idea.Status {
		if s.metrics != nil {
			s.metrics.StatusTransitions.WithLabelValues(string(previous), string(idea.Status)).Inc()
		}
		s.publish(ctx, result, events.IdeaEvent{
			Kind:           events.KindStatusChanged,
			IdeaID:         ideaID,
			Status:         idea.Status,
			PreviousStatus: previous,
			Actor:          actor.DisplayName(),
			OccurredAt:     idea.UpdatedTime,
		})
	}

	return result, nil
}

// Reassess re-runs classification and evaluation for an idea still in review
// and appends the new records
func (s *IdeaService) Reassess(ctx context.Context, actor models.Actor, ideaID string) (*models.Assessment, error) {
	idea, err := s.GetByID(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if idea.Status.IsTerminal() {
		return nil, &ServiceError{
			Kind:    ErrInvalidTransition,
			Code:    models.ErrCodeInvalidTransition,
			Message: fmt.Sprintf("idea %s is %s and can no longer be reassessed", ideaID, idea.Status),
		}
	}

	classification, evaluation := s.assess(idea, actor.DisplayName(), utils.TimeToMillis(s.now()))
	err = s.store.InTx(ctx, func(tx store.Store) error {
		if err := tx.Classifications().Create(ctx, classification); err != nil {
			return persistence("failed to create classification", err)
		}
		if err := tx.Evaluations().Create(ctx, evaluation); err != nil {
			return persistence("failed to create evaluation", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	assessment := &models.Assessment{IdeaID: ideaID, Classification: classification, Evaluation: evaluation}
	result := &models.IdeaResult{Idea: idea}
	s.recordAudit(ctx, result, ideaID, models.AuditActionClassified, actor.DisplayName(),
		fmt.Sprintf("Classified as %s", classification.Category))
	s.recordAudit(ctx, result, ideaID, models.AuditActionEvaluated, actor.DisplayName(),
		fmt.Sprintf("Scored %.1f (%s)", evaluation.TotalScore, evaluation.PriorityLevel))
	assessment.Degraded = result.Degraded
	assessment.Warnings = result.Warnings

	return assessment, nil
}

// assess runs both engines and returns the records to persist
func (s *IdeaService) assess(idea *models.Idea, by string, now int64) (*models.Classification, *models.EvaluationScore) {
	category := s.classifier.Classify(idea.Title, idea.Description)
	score := s.evaluator.Evaluate(idea.ExpectedBenefit, idea.Description, idea.Department)

	return &models.Classification{
			ClassificationID: utils.GenerateClassificationID(),
			IdeaID:           idea.IdeaID,
			Category:         category,
			ClassifiedTime:   now,
			ClassifiedBy:     by,
		}, &models.EvaluationScore{
			EvaluationID:  utils.GenerateEvaluationID(),
			IdeaID:        idea.IdeaID,
			Impact:        score.Impact,
			Complexity:    score.Complexity,
			Feasibility:   score.Feasibility,
			TotalScore:    score.TotalScore,
			PriorityLevel: score.PriorityLevel,
			EvaluatedTime: now,
			EvaluatedBy:   by,
		}
}

// allocateIdeaID draws reference codes until an unused one is found. used
// counts the attempts already spent; the returned count includes this call's.
func (s *IdeaService) allocateIdeaID(ctx context.Context, used int) (string, int, error) {
	for attempt := used + 1; attempt <= s.idMaxAttempts; attempt++ {
		id := s.generateID(s.referencePrefix)
		exists, err := s.store.Ideas().Exists(ctx, id)
		if err != nil {
			return "", attempt, persistence("failed to check idea id", err)
		}
		if !exists {
			return id, attempt, nil
		}
		s.logger.WithFields(logrus.Fields{"idea_id": id, "attempt": attempt}).Warn("Idea id collision")
	}
	return "", s.idMaxAttempts, &ServiceError{
		Kind:    ErrIDGenerationCollision,
		Code:    models.ErrCodeIDCollision,
		Message: fmt.Sprintf("could not allocate a unique idea id after %d attempts", s.idMaxAttempts),
	}
}

// newIdea builds a freshly submitted idea from a validated request
func newIdea(ideaID string, request *models.IdeaSubmitRequest, now int64) *models.Idea {
	return &models.Idea{
		IdeaID:             ideaID,
		Title:              request.Title,
		Description:        request.Description,
		Department:         request.Department,
		Country:            request.Country,
		ExpectedBenefit:    request.ExpectedBenefit,
		Frequency:          request.Frequency,
		SubmitterFirstName: request.SubmitterFirstName,
		SubmitterLastName:  request.SubmitterLastName,
		SubmitterEmail:     request.SubmitterEmail,
		CurrentProcess:     request.CurrentProcess,
		IsManualProcess:    request.IsManualProcess,
		TimeSpent:          request.TimeSpent,
		Status:             models.IdeaStatusSubmitted,
		SubmittedTime:      now,
		UpdatedTime:        now,
	}
}

// recordAudit appends an audit entry. Failure degrades the result.
func (s *IdeaService) recordAudit(ctx context.Context, result *models.IdeaResult, ideaID string, action models.AuditAction, by, details string) {
	if _, err := s.audit.Record(ctx, ideaID, action, by, details); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"idea_id": ideaID,
			"action":  action,
		}).Error("Failed to record audit entry")
		if s.metrics != nil {
			s.metrics.SideEffectFailures.WithLabelValues(metrics.SideEffectAudit).Inc()
		}
		result.AddWarning(WarningAuditNotRecorded)
	}
}

// publish sends a lifecycle event. Failure degrades the result.
func (s *IdeaService) publish(ctx context.Context, result *models.IdeaResult, event events.IdeaEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"idea_id": event.IdeaID,
			"kind":    event.Kind,
		}).Warn("Failed to publish idea event")
		if s.metrics != nil {
			s.metrics.SideEffectFailures.WithLabelValues(metrics.SideEffectEvent).Inc()
		}
		result.AddWarning(WarningEventNotSent)
	}
}

func (s *IdeaService) validateStruct(v interface{}) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return invalidInput("%v", err)
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "email":
			msgs = append(msgs, fe.Field()+" must be a valid email address")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return invalidInput("%s", strings.Join(msgs, "; "))
}

func validatePatch(patch models.ReviewPatch) error {
	if patch.Priority != nil {
		if err := utils.ValidateRange("priority", *patch.Priority, 1, 10); err != nil {
			return invalidInput("%v", err)
		}
	}
	if patch.Classification != nil && !patch.Classification.IsValid() {
		return invalidInput("invalid classification: %s", *patch.Classification)
	}
	return nil
}
