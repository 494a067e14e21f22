package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/anuranjan87/7wink/internal/assembly"
	"github.com/anuranjan87/7wink/internal/store"
)

func newTestContentService(contentStore store.ContentStore, renderCache store.RenderCache) *ContentService {
	if renderCache == nil {
		renderCache = noopRenderCache{}
	}
	return NewContentService(contentStore, renderCache, time.Minute, zap.NewNop())
}

func TestPublish_LastWriterWins(t *testing.T) {
	contentStore := newFakeContentStore()
	svc := newTestContentService(contentStore, nil)
	ctx := context.Background()

	_, err := svc.Publish(ctx, "shop", "v1", "", "{}")
	assert.NoError(t, err)
	second, err := svc.Publish(ctx, "shop", "v2", "js", `{"n":2}`)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), second.Sequence)

	latest, err := svc.GetLatest(ctx, "shop")
	assert.NoError(t, err)
	assert.Equal(t, "v2", latest.Shell)
	assert.Equal(t, "js", latest.Behavior)
	assert.Equal(t, `{"n":2}`, latest.Payload)
}

func TestPublish_InvalidatesRenderCache(t *testing.T) {
	renderCache := new(MockRenderCache)
	svc := newTestContentService(newFakeContentStore(), renderCache)

	renderCache.On("Invalidate", mock.Anything, "shop").Return(nil)

	_, err := svc.Publish(context.Background(), "shop", "v1", "", "{}")

	assert.NoError(t, err)
	renderCache.AssertExpectations(t)
}

func TestGetHistory_NewestFirst(t *testing.T) {
	contentStore := newFakeContentStore()
	svc := newTestContentService(contentStore, nil)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := svc.Publish(ctx, "shop", fmt.Sprintf("v%d", i), "", "{}")
		assert.NoError(t, err)
	}

	history, err := svc.GetHistory(ctx, "shop")
	assert.NoError(t, err)
	assert.Len(t, history, 3)
	assert.Equal(t, int64(3), history[0].Sequence)
	assert.Equal(t, int64(1), history[2].Sequence)

	latest, err := svc.GetLatest(ctx, "shop")
	assert.NoError(t, err)
	assert.Equal(t, latest, history[0])
}

func TestRestore_CopiesLayersForward(t *testing.T) {
	contentStore := newFakeContentStore()
	svc := newTestContentService(contentStore, nil)
	ctx := context.Background()

	_, err := svc.Publish(ctx, "shop", "old shell", "old js", "old data")
	assert.NoError(t, err)
	_, err = svc.Publish(ctx, "shop", "new shell", "new js", "new data")
	assert.NoError(t, err)

	restored, err := svc.Restore(ctx, "shop", 1)
	assert.NoError(t, err)

	// Same layers, fresh sequence: history is never rewound
	assert.Equal(t, int64(3), restored.Sequence)
	assert.Equal(t, "old shell", restored.Shell)
	assert.Equal(t, "old js", restored.Behavior)
	assert.Equal(t, "old data", restored.Payload)

	history, err := svc.GetHistory(ctx, "shop")
	assert.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestRestore_UnknownSequence(t *testing.T) {
	svc := newTestContentService(newFakeContentStore(), nil)

	_, err := svc.Restore(context.Background(), "shop", 42)

	assert.ErrorIs(t, err, store.ErrVersionNotFound)
}

func TestRender_CacheMissAssemblesAndStores(t *testing.T) {
	contentStore := newFakeContentStore()
	renderCache := new(MockRenderCache)
	svc := newTestContentService(contentStore, renderCache)
	ctx := context.Background()

	shell := "<html>" + assembly.DataMarker + assembly.BehaviorMarker + "</html>"
	_, err := contentStore.Append(ctx, "shop", shell, "go();", `{"a":1}`)
	assert.NoError(t, err)

	renderCache.On("Get", mock.Anything, "shop").Return("", store.ErrNotFound)
	renderCache.On("Set", mock.Anything, "shop", mock.Anything, time.Minute).Return(nil)

	document, err := svc.Render(ctx, "shop")

	assert.NoError(t, err)
	assert.Contains(t, document, `<script type="application/json" id="site-data">{"a":1}</script>`)
	assert.Contains(t, document, "<script>go();</script>")
	renderCache.AssertExpectations(t)
}

func TestRender_CacheHitSkipsStore(t *testing.T) {
	contentStore := new(MockContentStore)
	renderCache := new(MockRenderCache)
	svc := newTestContentService(contentStore, renderCache)

	renderCache.On("Get", mock.Anything, "shop").Return("<html>warm</html>", nil)

	document, err := svc.Render(context.Background(), "shop")

	assert.NoError(t, err)
	assert.Equal(t, "<html>warm</html>", document)
	contentStore.AssertNotCalled(t, "GetLatest", mock.Anything, mock.Anything)
}

func TestRender_CacheErrorFallsThrough(t *testing.T) {
	contentStore := newFakeContentStore()
	renderCache := new(MockRenderCache)
	svc := newTestContentService(contentStore, renderCache)
	ctx := context.Background()

	_, err := contentStore.Append(ctx, "shop", "<html>plain</html>", "", "")
	assert.NoError(t, err)

	renderCache.On("Get", mock.Anything, "shop").Return("", errors.New("connection refused"))
	renderCache.On("Set", mock.Anything, "shop", mock.Anything, mock.Anything).Return(nil)

	document, err := svc.Render(ctx, "shop")

	assert.NoError(t, err)
	assert.Equal(t, "<html>plain</html>", document)
}

func TestRender_NoVersions(t *testing.T) {
	svc := newTestContentService(newFakeContentStore(), nil)

	_, err := svc.Render(context.Background(), "ghost")

	assert.ErrorIs(t, err, store.ErrVersionNotFound)
}

func TestPublish_ConcurrentSequencesAreDistinct(t *testing.T) {
	contentStore := newFakeContentStore()
	svc := newTestContentService(contentStore, nil)
	ctx := context.Background()

	const writers = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[int64]bool, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			version, err := svc.Publish(ctx, "busy", fmt.Sprintf("shell-%d", n), "", "{}")
			assert.NoError(t, err)

			mu.Lock()
			defer mu.Unlock()
			assert.False(t, seen[version.Sequence], "sequence %d assigned twice", version.Sequence)
			seen[version.Sequence] = true
		}(i)
	}
	wg.Wait()

	assert.Len(t, seen, writers)

	history, err := svc.GetHistory(ctx, "busy")
	assert.NoError(t, err)
	assert.Len(t, history, writers)
	for i := 0; i < len(history)-1; i++ {
		assert.Greater(t, history[i].Sequence, history[i+1].Sequence)
	}
}
