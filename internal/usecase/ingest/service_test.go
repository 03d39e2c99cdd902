package ingest

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wefi-dex/otterai-backend/internal/adapter/dto/zapier"
	"github.com/wefi-dex/otterai-backend/internal/domain/entities"
	"github.com/wefi-dex/otterai-backend/internal/domain/repositories"
	"github.com/wefi-dex/otterai-backend/pkg/config"
)

type mockSalesCallRepo struct{ mock.Mock }

func (m *mockSalesCallRepo) Create(ctx context.Context, call *entities.SalesCall) error {
	return m.Called(ctx, call).Error(0)
}

func (m *mockSalesCallRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.SalesCall, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*entities.SalesCall), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSalesCallRepo) Update(ctx context.Context, call *entities.SalesCall) error {
	return m.Called(ctx, call).Error(0)
}

func (m *mockSalesCallRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockSalesCallRepo) List(ctx context.Context, filters repositories.SalesCallFilters) ([]*entities.SalesCall, error) {
	args := m.Called(ctx, filters)
	if v := args.Get(0); v != nil {
		return v.([]*entities.SalesCall), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockOrgRepo struct{ mock.Mock }

func (m *mockOrgRepo) Create(ctx context.Context, org *entities.Organization) error {
	return m.Called(ctx, org).Error(0)
}

func (m *mockOrgRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Organization, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*entities.Organization), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrgRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockOrgRepo) Update(ctx context.Context, org *entities.Organization) error {
	return m.Called(ctx, org).Error(0)
}

func (m *mockOrgRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockOrgRepo) List(ctx context.Context, limit, offset int) ([]*entities.Organization, error) {
	args := m.Called(ctx, limit, offset)
	if v := args.Get(0); v != nil {
		return v.([]*entities.Organization), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAnalyticsRepo struct{ mock.Mock }

func (m *mockAnalyticsRepo) Create(ctx context.Context, record *entities.ZapierAnalytics) error {
	return m.Called(ctx, record).Error(0)
}

func (m *mockAnalyticsRepo) ListBySalesCall(ctx context.Context, salesCallID uuid.UUID) ([]*entities.ZapierAnalytics, error) {
	args := m.Called(ctx, salesCallID)
	if v := args.Get(0); v != nil {
		return v.([]*entities.ZapierAnalytics), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNotificationRepo struct{ mock.Mock }

func (m *mockNotificationRepo) Create(ctx context.Context, notification *entities.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

func (m *mockNotificationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Notification, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*entities.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNotificationRepo) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]*entities.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly, limit, offset)
	if v := args.Get(0); v != nil {
		return v.([]*entities.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*entities.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if v := args.Get(0); v != nil {
		return v.(*entities.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepo) List(ctx context.Context, organizationID *uuid.UUID, limit, offset int) ([]*entities.User, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if v := args.Get(0); v != nil {
		return v.([]*entities.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type serviceMocks struct {
	salesCalls    *mockSalesCallRepo
	orgs          *mockOrgRepo
	analytics     *mockAnalyticsRepo
	notifications *mockNotificationRepo
	users         *mockUserRepo
	cfg           *config.Config
}

func newTestService(t *testing.T) (Service, *serviceMocks) {
	t.Helper()

	m := &serviceMocks{
		salesCalls:    new(mockSalesCallRepo),
		orgs:          new(mockOrgRepo),
		analytics:     new(mockAnalyticsRepo),
		notifications: new(mockNotificationRepo),
		users:         new(mockUserRepo),
		cfg:           &config.Config{},
	}

	svc := NewService(m.salesCalls, m.orgs, m.analytics, m.notifications, m.users, nil, nil, nil, m.cfg, zap.NewNop())
	return svc, m
}

func sideEffect(t *testing.T, result *Result, name string) zapier.SideEffectResult {
	t.Helper()
	for _, se := range result.SideEffects {
		if se.Name == name {
			return se
		}
	}
	t.Fatalf("side effect %q not recorded", name)
	return zapier.SideEffectResult{}
}

func TestIngest_CreatesCallForNewPayload(t *testing.T) {
	svc, m := newTestService(t)

	orgID := uuid.New()
	orgStr := orgID.String()
	payload := &zapier.AnalyzePayload{
		OrganizationID: &orgStr,
		UserInfo: &zapier.UserInfo{
			UserName:  strPtr("Jamie Customer"),
			UserEmail: strPtr("jamie@example.com"),
		},
		SentimentAnalysis: &zapier.SentimentAnalysis{
			SentimentCategory: strPtr("Positive"),
			MeetingScore:      flexFloatPtr(7.25),
		},
	}

	var created *entities.SalesCall
	m.orgs.On("Exists", mock.Anything, orgID).Return(true, nil)
	m.salesCalls.On("Create", mock.Anything, mock.AnythingOfType("*entities.SalesCall")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*entities.SalesCall) }).
		Return(nil)
	m.analytics.On("Create", mock.Anything, mock.AnythingOfType("*entities.ZapierAnalytics")).Return(nil)

	result := svc.Ingest(context.Background(), payload, []byte(`{}`))

	assert.True(t, result.Created)
	require.NotNil(t, result.OrganizationID)
	assert.Equal(t, orgID, *result.OrganizationID)
	assert.True(t, sideEffect(t, result, SideEffectUpsert).Success)
	assert.True(t, sideEffect(t, result, SideEffectAnalytics).Success)

	require.NotNil(t, created)
	assert.Equal(t, "Jamie Customer", created.CustomerName)
	assert.Equal(t, entities.SalesCallStatusCompleted, created.Status)
	assert.Nil(t, created.Outcome)
	assert.Nil(t, created.SaleAmount)
	require.NotNil(t, created.PerformanceScore)
	assert.Equal(t, 7.25, *created.PerformanceScore)

	m.salesCalls.AssertExpectations(t)
	m.orgs.AssertExpectations(t)
	m.analytics.AssertExpectations(t)
}

func TestIngest_ScoreClampedToColumnPrecision(t *testing.T) {
	svc, m := newTestService(t)

	payload := &zapier.AnalyzePayload{
		SentimentAnalysis: &zapier.SentimentAnalysis{
			MeetingScore: flexFloatPtr(42),
		},
	}

	var created *entities.SalesCall
	m.salesCalls.On("Create", mock.Anything, mock.AnythingOfType("*entities.SalesCall")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*entities.SalesCall) }).
		Return(nil)
	m.analytics.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc.Ingest(context.Background(), payload, []byte(`{}`))

	require.NotNil(t, created)
	require.NotNil(t, created.PerformanceScore)
	assert.Equal(t, entities.MaxPerformanceScore, *created.PerformanceScore)
}

func TestIngest_UpdatePreservesStoredTiming(t *testing.T) {
	svc, m := newTestService(t)

	existingID := uuid.New()
	existingIDStr := existingID.String()
	storedDuration := 2700
	existing := entities.NewSalesCall("Jamie Customer")
	existing.ID = existingID
	existing.Duration = &storedDuration

	payload := &zapier.AnalyzePayload{
		SalesCallID: &existingIDStr,
		SentimentAnalysis: &zapier.SentimentAnalysis{
			SentimentCategory: strPtr("negative"),
		},
	}

	m.salesCalls.On("FindByID", mock.Anything, existingID).Return(existing, nil)
	m.salesCalls.On("Update", mock.Anything, existing).Return(nil)
	m.analytics.On("Create", mock.Anything, mock.Anything).Return(nil)

	result := svc.Ingest(context.Background(), payload, []byte(`{}`))

	assert.False(t, result.Created)
	assert.Equal(t, existingID, result.SalesCallID)
	// The payload carried no duration, the stored one survives
	require.NotNil(t, existing.Duration)
	assert.Equal(t, storedDuration, *existing.Duration)
	require.NotNil(t, existing.CustomerSentiment)
	assert.Equal(t, entities.SentimentNegative, *existing.CustomerSentiment)

	m.salesCalls.AssertExpectations(t)
}

func TestIngest_UnknownOrganizationStoredWithoutTenant(t *testing.T) {
	svc, m := newTestService(t)

	orgID := uuid.New()
	orgStr := orgID.String()
	payload := &zapier.AnalyzePayload{OrganizationID: &orgStr}

	var analyticsRecord *entities.ZapierAnalytics
	m.orgs.On("Exists", mock.Anything, orgID).Return(false, nil)
	m.salesCalls.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.analytics.On("Create", mock.Anything, mock.AnythingOfType("*entities.ZapierAnalytics")).
		Run(func(args mock.Arguments) { analyticsRecord = args.Get(1).(*entities.ZapierAnalytics) }).
		Return(nil)

	result := svc.Ingest(context.Background(), payload, []byte(`{}`))

	assert.Nil(t, result.OrganizationID)
	assert.True(t, sideEffect(t, result, SideEffectUpsert).Success)
	require.NotNil(t, analyticsRecord)
	assert.Nil(t, analyticsRecord.OrganizationID)
}

func TestIngest_UpsertFailureStillRecordsAnalytics(t *testing.T) {
	svc, m := newTestService(t)

	var analyticsRecord *entities.ZapierAnalytics
	m.salesCalls.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("connection refused"))
	m.analytics.On("Create", mock.Anything, mock.AnythingOfType("*entities.ZapierAnalytics")).
		Run(func(args mock.Arguments) { analyticsRecord = args.Get(1).(*entities.ZapierAnalytics) }).
		Return(nil)

	result := svc.Ingest(context.Background(), &zapier.AnalyzePayload{}, []byte(`{"partial":true}`))

	upsert := sideEffect(t, result, SideEffectUpsert)
	assert.False(t, upsert.Success)
	assert.Contains(t, upsert.Error, "connection refused")
	assert.True(t, sideEffect(t, result, SideEffectAnalytics).Success)

	// The generated id is still reported so the caller can correlate retries
	assert.NotEqual(t, uuid.Nil, result.SalesCallID)

	// The audit record does not reference the row that failed to persist
	require.NotNil(t, analyticsRecord)
	assert.Nil(t, analyticsRecord.SalesCallID)
	assert.Equal(t, []byte(`{"partial":true}`), []byte(analyticsRecord.Payload))
}

func TestIngest_NotificationSideEffect(t *testing.T) {
	svc, m := newTestService(t)
	m.cfg.Features.IngestNotifications = true

	payload := &zapier.AnalyzePayload{
		UserInfo: &zapier.UserInfo{
			UserName:  strPtr("Jamie Customer"),
			UserEmail: strPtr("rep@example.com"),
		},
	}

	rep := entities.NewUser("rep@example.com", "Sales Rep")
	m.salesCalls.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.analytics.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.users.On("FindByEmail", mock.Anything, "rep@example.com").Return(rep, nil)
	m.notifications.On("Create", mock.Anything, mock.AnythingOfType("*entities.Notification")).Return(nil)

	result := svc.Ingest(context.Background(), payload, []byte(`{}`))

	assert.True(t, sideEffect(t, result, SideEffectNotification).Success)
	m.notifications.AssertExpectations(t)
}

func TestIngest_UnknownSalesCallIDCreatesCompleted(t *testing.T) {
	svc, m := newTestService(t)

	unknownID := uuid.New()
	unknownIDStr := unknownID.String()
	payload := &zapier.AnalyzePayload{SalesCallID: &unknownIDStr}

	var created *entities.SalesCall
	m.salesCalls.On("FindByID", mock.Anything, unknownID).Return(nil, entities.ErrSalesCallNotFound)
	m.salesCalls.On("Create", mock.Anything, mock.AnythingOfType("*entities.SalesCall")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*entities.SalesCall) }).
		Return(nil)
	m.analytics.On("Create", mock.Anything, mock.Anything).Return(nil)

	result := svc.Ingest(context.Background(), payload, []byte(`{}`))

	assert.True(t, result.Created)
	require.NotNil(t, created)
	assert.Equal(t, entities.SalesCallStatusCompleted, created.Status)
	assert.Nil(t, created.Outcome)
	assert.Nil(t, created.SaleAmount)

	m.salesCalls.AssertNumberOfCalls(t, "Create", 1)
	m.salesCalls.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestIngest_UnparseableSalesCallIDCreatesNew(t *testing.T) {
	svc, m := newTestService(t)

	badID := "not-a-uuid"
	payload := &zapier.AnalyzePayload{SalesCallID: &badID}

	m.salesCalls.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.analytics.On("Create", mock.Anything, mock.Anything).Return(nil)

	result := svc.Ingest(context.Background(), payload, []byte(`{}`))

	assert.True(t, result.Created)
	m.salesCalls.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
