package services

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fitcoach/trainer-service/internal/analytics"
	"github.com/fitcoach/trainer-service/internal/cache"
	"github.com/fitcoach/trainer-service/internal/charts"
	"github.com/fitcoach/trainer-service/internal/events"
	"github.com/fitcoach/trainer-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memoryCache is an in-memory CacheService for tests.
type memoryCache struct {
	mu    sync.Mutex
	store map[string][]byte
	sets  int
	hits  int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{store: make(map[string][]byte)}
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = data
	c.sets++
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.store[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	c.hits++
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

func (c *memoryCache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range c.store {
		if strings.HasPrefix(key, prefix) {
			delete(c.store, key)
		}
	}
	return nil
}

func analysisFixture() (*models.Student, *models.PhysicalAssessment, []models.AssessmentHistoryRecord) {
	student := &models.Student{
		ID:        1,
		TrainerID: "trainer-1",
		Name:      "João Silva",
		Goal:      "Quero emagrecer",
	}
	current := &models.PhysicalAssessment{
		ID:         10,
		StudentID:  1,
		TrainerID:  "trainer-1",
		AssessedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		WeightKg:   80,
		HeightCm:   180,
		BodyFatPct: 20,
		Version:    2,
	}
	history := []models.AssessmentHistoryRecord{
		{
			AssessmentID: 10,
			Version:      1,
			AssessedAt:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			WeightKg:     83,
			HeightCm:     180,
			BodyFatPct:   22,
		},
	}
	return student, current, history
}

func newAnalysisServiceForTest(repo *MockRepository, cacheService cache.CacheService, publisher events.EventPublisher) AnalysisService {
	logger := newTestLogger()
	engine := analytics.NewEngine(charts.NewEChartsRenderer(), logger)
	return NewAnalysisService(repo, engine, cacheService, 15*time.Minute, logger, publisher)
}

func TestAnalysisService_GenerateForStudent(t *testing.T) {
	ctx := context.Background()

	t.Run("produces analysis and publishes event", func(t *testing.T) {
		student, current, history := analysisFixture()
		repo := newMockRepository()
		publisher := events.NewMockEventPublisher(newTestLogger())
		service := newAnalysisServiceForTest(repo, nil, publisher)

		repo.student.On("CanAccess", ctx, uint(1), "trainer-1").Return(true, nil)
		repo.student.On("GetByID", ctx, uint(1)).Return(student, nil)
		repo.assessment.On("GetLatestByStudent", ctx, uint(1)).Return(current, nil)
		repo.assessment.On("GetHistory", ctx, uint(10)).Return(history, nil)

		result, err := service.GenerateForStudent(ctx, 1, "trainer-1")
		require.NoError(t, err)

		assert.Equal(t, "Quero emagrecer", result.Student.Goal)
		assert.Len(t, result.Metrics, len(analytics.TrackedMetrics))
		assert.Equal(t, analytics.TrendImproving, result.Metrics[analytics.MetricWeight].Trend)
		assert.Len(t, result.Charts, 4)

		published := publisher.GetPublishedEvents()
		require.Len(t, published, 1)
		assert.Equal(t, events.EventAnalysisGenerated, published[0].Type)

		data, ok := published[0].Data.(events.AnalysisGeneratedEvent)
		require.True(t, ok)
		assert.Equal(t, uint(10), data.AssessmentID)
		assert.Equal(t, len(analytics.TrackedMetrics), data.MetricsAnalyzed)
		assert.Equal(t, 28, data.DaysSincePrevious)
	})

	t.Run("caches by assessment id and version", func(t *testing.T) {
		student, current, history := analysisFixture()
		repo := newMockRepository()
		memCache := newMemoryCache()
		service := newAnalysisServiceForTest(repo, memCache, nil)

		repo.student.On("CanAccess", ctx, uint(1), "trainer-1").Return(true, nil)
		repo.student.On("GetByID", ctx, uint(1)).Return(student, nil)
		repo.assessment.On("GetLatestByStudent", ctx, uint(1)).Return(current, nil)
		repo.assessment.On("GetHistory", ctx, uint(10)).Return(history, nil)

		first, err := service.GenerateForStudent(ctx, 1, "trainer-1")
		require.NoError(t, err)
		assert.Equal(t, 1, memCache.sets)
		assert.Contains(t, memCache.store, "analysis:student:1:assessment:10:v2")

		second, err := service.GenerateForStudent(ctx, 1, "trainer-1")
		require.NoError(t, err)
		assert.Equal(t, 1, memCache.hits)
		assert.Equal(t, 1, memCache.sets, "cached result must not be re-stored")
		assert.Equal(t, first.Metrics[analytics.MetricWeight].CurrentValue,
			second.Metrics[analytics.MetricWeight].CurrentValue)

		// The history fetch runs only for the uncached request.
		repo.assessment.AssertNumberOfCalls(t, "GetHistory", 1)
	})

	t.Run("version bump misses the stale cache entry", func(t *testing.T) {
		student, current, history := analysisFixture()
		repo := newMockRepository()
		memCache := newMemoryCache()
		service := newAnalysisServiceForTest(repo, memCache, nil)

		repo.student.On("CanAccess", ctx, uint(1), "trainer-1").Return(true, nil)
		repo.student.On("GetByID", ctx, uint(1)).Return(student, nil)
		repo.assessment.On("GetLatestByStudent", ctx, uint(1)).Return(current, nil)
		repo.assessment.On("GetHistory", ctx, uint(10)).Return(history, nil)

		_, err := service.GenerateForStudent(ctx, 1, "trainer-1")
		require.NoError(t, err)

		// An update archived v2 and bumped the assessment to v3.
		current.Version = 3
		_, err = service.GenerateForStudent(ctx, 1, "trainer-1")
		require.NoError(t, err)

		assert.Equal(t, 0, memCache.hits)
		assert.Equal(t, 2, memCache.sets)
		assert.Contains(t, memCache.store, "analysis:student:1:assessment:10:v3")
	})

	t.Run("denies access to other trainers", func(t *testing.T) {
		repo := newMockRepository()
		service := newAnalysisServiceForTest(repo, nil, nil)

		repo.student.On("CanAccess", ctx, uint(1), "trainer-2").Return(false, nil)

		_, err := service.GenerateForStudent(ctx, 1, "trainer-2")
		assert.True(t, IsUnauthorized(err))
	})

	t.Run("maps missing assessment to sentinel", func(t *testing.T) {
		student, _, _ := analysisFixture()
		repo := newMockRepository()
		service := newAnalysisServiceForTest(repo, nil, nil)

		repo.student.On("CanAccess", ctx, uint(1), "trainer-1").Return(true, nil)
		repo.student.On("GetByID", ctx, uint(1)).Return(student, nil)
		repo.assessment.On("GetLatestByStudent", ctx, uint(1)).Return(nil, gorm.ErrRecordNotFound)

		_, err := service.GenerateForStudent(ctx, 1, "trainer-1")
		assert.ErrorIs(t, err, ErrNoAssessmentForStudent)
	})
}
