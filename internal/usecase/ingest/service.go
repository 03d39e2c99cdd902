package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wefi-dex/otterai-backend/internal/adapter/dto/zapier"
	"github.com/wefi-dex/otterai-backend/internal/domain/entities"
	"github.com/wefi-dex/otterai-backend/internal/domain/repositories"
	"github.com/wefi-dex/otterai-backend/pkg/config"
)

// Side effect names reported in the acknowledgment
const (
	SideEffectUpsert       = "sales_call_upsert"
	SideEffectAnalytics    = "analytics_record"
	SideEffectArchive      = "payload_archive"
	SideEffectNotification = "user_notification"
)

// orgExistsTTL bounds how long a cached tenant existence result is trusted
const orgExistsTTL = 5 * time.Minute

// PayloadArchiver stores raw payload documents in object storage
type PayloadArchiver interface {
	PutJSON(ctx context.Context, objectName string, payload []byte) error
}

// EmailSender delivers transactional email alongside in-app notifications
type EmailSender interface {
	Send(ctx context.Context, toEmail, subject, body string) error
}

// Result is the outcome of one ingestion: the resolved call record, whether
// it was created, and the per-side-effect outcomes for the acknowledgment.
type Result struct {
	SalesCallID    uuid.UUID
	Created        bool
	OrganizationID *uuid.UUID
	Extracted      Extracted
	SideEffects    []zapier.SideEffectResult
}

// Service normalizes external analysis payloads into sales call records
type Service interface {
	Ingest(ctx context.Context, payload *zapier.AnalyzePayload, raw []byte) *Result
}

type service struct {
	salesCallRepo    repositories.SalesCallRepository
	orgRepo          repositories.OrganizationRepository
	analyticsRepo    repositories.AnalyticsRepository
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	archiver         PayloadArchiver
	email            EmailSender
	redis            *redis.Client
	cfg              *config.Config
	logger           *zap.Logger
}

// NewService constructs the ingestion service. archiver, emailSender and
// redisClient may be nil; the pipeline degrades to direct lookups, skips
// archival and delivers in-app notifications only.
func NewService(
	salesCallRepo repositories.SalesCallRepository,
	orgRepo repositories.OrganizationRepository,
	analyticsRepo repositories.AnalyticsRepository,
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	archiver PayloadArchiver,
	emailSender EmailSender,
	redisClient *redis.Client,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &service{
		salesCallRepo:    salesCallRepo,
		orgRepo:          orgRepo,
		analyticsRepo:    analyticsRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		archiver:         archiver,
		email:            emailSender,
		redis:            redisClient,
		cfg:              cfg,
		logger:           logger,
	}
}

// Ingest runs the pipeline: extract, upsert, dispatch side effects. Only the
// caller-facing acknowledgment depends on the return value; persistence
// failures are logged and recorded per side effect, never propagated. The
// raw payload is retained by the analytics record for later reconciliation.
func (s *service) Ingest(ctx context.Context, payload *zapier.AnalyzePayload, raw []byte) *Result {
	extracted := Extract(payload, time.Now())
	orgID := s.resolveOrganization(ctx, payload.OrganizationID)

	result := &Result{
		OrganizationID: orgID,
		Extracted:      extracted,
	}

	// Primary record upsert. A failure here still acknowledges receipt; the
	// analytics record below captures the raw payload either way.
	call, created, err := s.upsertSalesCall(ctx, payload, extracted, orgID, raw)
	result.SalesCallID = call.ID
	result.Created = created
	result.record(SideEffectUpsert, err)
	if err != nil {
		s.logger.Error("sales call upsert failed",
			zap.String("sales_call_id", call.ID.String()),
			zap.Error(err),
		)
	}

	var callRef *uuid.UUID
	if err == nil {
		callRef = &call.ID
	}

	// Independent side effects. Each attempt is isolated so one failure
	// cannot block the others or change the acknowledgment.
	result.record(SideEffectAnalytics, s.createAnalyticsRecord(ctx, raw, orgID, callRef))

	if s.archiver != nil && s.cfg.Storage.ArchivePayloads {
		result.record(SideEffectArchive, s.archivePayload(ctx, call.ID, raw))
	}

	if s.cfg.Features.IngestNotifications {
		result.record(SideEffectNotification, s.notifyUser(ctx, extracted, orgID, call.ID))
	}

	return result
}

// record appends a structured side effect outcome
func (r *Result) record(name string, err error) {
	res := zapier.SideEffectResult{Name: name, Success: err == nil}
	if err != nil {
		res.Error = err.Error()
	}
	r.SideEffects = append(r.SideEffects, res)
}

// resolveOrganization parses and verifies the tenant reference. Anything
// that prevents confirming the tenant (bad uuid, missing row, lookup error)
// downgrades to a nil reference so the write cannot hit a foreign key
// failure. Existence results are cached briefly in Redis.
func (s *service) resolveOrganization(ctx context.Context, rawID *string) *uuid.UUID {
	if rawID == nil {
		return nil
	}
	id, err := uuid.Parse(*rawID)
	if err != nil {
		s.logger.Warn("unparseable organization id in payload", zap.String("organization_id", *rawID))
		return nil
	}

	cacheKey := "org:exists:" + id.String()
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			if cached == "1" {
				return &id
			}
			return nil
		}
	}

	exists, err := s.orgRepo.Exists(ctx, id)
	if err != nil {
		s.logger.Error("organization lookup failed, storing without tenant reference",
			zap.String("organization_id", id.String()),
			zap.Error(err),
		)
		return nil
	}

	if s.redis != nil {
		val := "0"
		if exists {
			val = "1"
		}
		if err := s.redis.Set(ctx, cacheKey, val, orgExistsTTL).Err(); err != nil {
			s.logger.Warn("failed to cache organization existence", zap.Error(err))
		}
	}

	if !exists {
		return nil
	}
	return &id
}

// upsertSalesCall applies create-vs-update semantics keyed by the optional
// caller-supplied identifier. Updates are partial: a field already populated
// on the record is never regressed to empty just because the current payload
// omitted it. Creates fix status to completed and leave outcome and sale
// amount absent, since neither is derivable from an analysis payload.
func (s *service) upsertSalesCall(
	ctx context.Context,
	payload *zapier.AnalyzePayload,
	extracted Extracted,
	orgID *uuid.UUID,
	raw []byte,
) (*entities.SalesCall, bool, error) {
	if payload.SalesCallID != nil {
		if callID, err := uuid.Parse(*payload.SalesCallID); err == nil {
			existing, err := s.salesCallRepo.FindByID(ctx, callID)
			if err == nil {
				return existing, false, s.applyUpdate(ctx, existing, extracted, raw)
			}
			if err != entities.ErrSalesCallNotFound {
				// Lookup failed outright; fall through to create so the
				// payload is not lost, but keep the caller-supplied id out
				// of it to avoid colliding with the unreachable row.
				s.logger.Error("sales call lookup failed", zap.String("sales_call_id", callID.String()), zap.Error(err))
			}
		} else {
			s.logger.Warn("unparseable sales call id in payload", zap.String("sales_call_id", *payload.SalesCallID))
		}
	}

	call := s.buildSalesCall(extracted, orgID, raw)
	return call, true, s.salesCallRepo.Create(ctx, call)
}

// applyUpdate writes only the analysis-derived fields, preserving previously
// stored timing when the new payload omits it
func (s *service) applyUpdate(ctx context.Context, call *entities.SalesCall, extracted Extracted, raw []byte) error {
	if extracted.StartedAt != nil {
		call.StartedAt = extracted.StartedAt
		call.AppointmentTime = *extracted.StartedAt
	}
	if extracted.EndedAt != nil {
		call.EndedAt = extracted.EndedAt
	}
	if extracted.DurationSeconds != nil {
		call.Duration = extracted.DurationSeconds
	}
	if extracted.TranscriptURL != nil {
		call.TranscriptURL = extracted.TranscriptURL
	}
	if extracted.RecordingURL != nil {
		call.RecordingURL = extracted.RecordingURL
	}
	if extracted.MeetingID != nil {
		call.MeetingID = extracted.MeetingID
	}
	if extracted.Score != nil {
		call.SetPerformanceScore(*extracted.Score)
	}
	if extracted.Sentiment != nil {
		call.CustomerSentiment = extracted.Sentiment
	}
	if extracted.Strengths != nil {
		call.Strengths = mustMarshal(extracted.Strengths)
	}
	if extracted.Weaknesses != nil {
		call.Weaknesses = mustMarshal(extracted.Weaknesses)
	}
	call.Analysis = raw

	return s.salesCallRepo.Update(ctx, call)
}

// buildSalesCall constructs a completed call from the extracted fields
func (s *service) buildSalesCall(extracted Extracted, orgID *uuid.UUID, raw []byte) *entities.SalesCall {
	call := entities.NewSalesCall(extracted.CustomerName)
	call.OrganizationID = orgID
	call.CustomerEmail = extracted.CustomerEmail
	call.AppointmentTime = extracted.AppointmentTime
	call.StartedAt = extracted.StartedAt
	call.EndedAt = extracted.EndedAt
	call.Duration = extracted.DurationSeconds
	call.Status = entities.SalesCallStatusCompleted
	call.CustomerSentiment = extracted.Sentiment
	call.TranscriptURL = extracted.TranscriptURL
	call.RecordingURL = extracted.RecordingURL
	call.MeetingID = extracted.MeetingID
	call.Analysis = raw
	if extracted.Score != nil {
		call.SetPerformanceScore(*extracted.Score)
	}
	if extracted.Strengths != nil {
		call.Strengths = mustMarshal(extracted.Strengths)
	}
	if extracted.Weaknesses != nil {
		call.Weaknesses = mustMarshal(extracted.Weaknesses)
	}
	return call
}

// createAnalyticsRecord appends the append-only audit artifact carrying the
// full raw payload
func (s *service) createAnalyticsRecord(ctx context.Context, raw []byte, orgID, callRef *uuid.UUID) error {
	record := entities.NewZapierAnalytics(raw)
	record.OrganizationID = orgID
	record.SalesCallID = callRef

	if err := s.analyticsRepo.Create(ctx, record); err != nil {
		s.logger.Error("analytics record insert failed", zap.Error(err))
		return err
	}
	return nil
}

// archivePayload stores the raw payload as a JSON object keyed by call id
func (s *service) archivePayload(ctx context.Context, callID uuid.UUID, raw []byte) error {
	objectName := fmt.Sprintf("zapier/%s/%d.json", callID.String(), time.Now().UnixNano())
	if err := s.archiver.PutJSON(ctx, objectName, raw); err != nil {
		s.logger.Error("payload archive failed", zap.String("object", objectName), zap.Error(err))
		return err
	}
	return nil
}

// notifyUser creates an in-app notification for the user matching the
// payload identity email. Gated by FEATURE_INGEST_NOTIFICATIONS until the
// notification validation constraints are settled.
func (s *service) notifyUser(ctx context.Context, extracted Extracted, orgID *uuid.UUID, callID uuid.UUID) error {
	if extracted.CustomerEmail == nil {
		return fmt.Errorf("no identity email to resolve a user from")
	}

	user, err := s.userRepo.FindByEmail(ctx, *extracted.CustomerEmail)
	if err != nil {
		s.logger.Warn("notification skipped, no matching user",
			zap.String("email", *extracted.CustomerEmail),
			zap.Error(err),
		)
		return err
	}

	notification := entities.NewNotification(
		user.ID,
		entities.NotificationTypeCallAnalyzed,
		"Call analysis ready",
		fmt.Sprintf("Analysis for your call with %s is available.", extracted.CustomerName),
	)
	notification.OrganizationID = orgID

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Error("notification insert failed", zap.Error(err))
		return err
	}

	// Email delivery is best effort and never fails the side effect
	if s.email != nil {
		if err := s.email.Send(ctx, user.Email, notification.Title, notification.Message); err != nil {
			s.logger.Warn("notification email delivery failed",
				zap.String("email", user.Email),
				zap.Error(err),
			)
		}
	}
	return nil
}

func mustMarshal(v interface{}) []byte {
	b, _ := json.Marshal(v)
	return b
}
