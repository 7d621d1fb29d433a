package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"bisnispintar/internal/model"
	"bisnispintar/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Completer stub ───────────────────────────────────────────────────────────

type stubCompleter struct {
	answer string
	err    error

	mu     sync.Mutex
	calls  int
	system string
	user   string

	// when set, Complete blocks until release is closed
	entered chan struct{}
	release chan struct{}
}

func (c *stubCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	c.mu.Lock()
	c.calls++
	c.system, c.user = system, user
	c.mu.Unlock()

	if c.release != nil {
		c.entered <- struct{}{}
		select {
		case <-c.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return c.answer, c.err
}

func newAdvisor(t *testing.T, llm service.Completer, items ...model.BusinessItem) service.AdvisorService {
	t.Helper()
	return service.NewAdvisorService(newInventory(t, newStubItemRepo(items...)), llm, 1)
}

func TestAsk_NoModelReturnsNoKeyFallback(t *testing.T) {
	adv := newAdvisor(t, nil)

	resp, err := adv.Ask(context.Background(), "Barang apa yang paling untung?")
	require.NoError(t, err)
	assert.True(t, resp.Fallback)
	assert.Equal(t, service.FallbackNoAPIKey, resp.Answer)
}

func TestAsk_ReturnsModelAnswer(t *testing.T) {
	llm := &stubCompleter{answer: "Fokus jual Kopi."}
	adv := newAdvisor(t, llm, kopi())

	resp, err := adv.Ask(context.Background(), "Apa saranmu?")
	require.NoError(t, err)
	assert.False(t, resp.Fallback)
	assert.Equal(t, "Fokus jual Kopi.", resp.Answer)

	assert.Equal(t, "Apa saranmu?", llm.user)
	assert.Contains(t, llm.system, `"name":"Kopi"`)
	assert.Contains(t, llm.system, `"totalCapital":50000`)
}

func TestAsk_RemoteErrorReturnsErrorFallback(t *testing.T) {
	adv := newAdvisor(t, &stubCompleter{err: errors.New("503")})

	resp, err := adv.Ask(context.Background(), "Halo")
	require.NoError(t, err)
	assert.True(t, resp.Fallback)
	assert.Equal(t, service.FallbackError, resp.Answer)
}

func TestAsk_EmptyAnswerReturnsEmptyFallback(t *testing.T) {
	adv := newAdvisor(t, &stubCompleter{answer: ""})

	resp, err := adv.Ask(context.Background(), "Halo")
	require.NoError(t, err)
	assert.True(t, resp.Fallback)
	assert.Equal(t, service.FallbackEmpty, resp.Answer)
}

func TestAsk_SecondConcurrentQuestionIsBusy(t *testing.T) {
	llm := &stubCompleter{
		answer:  "ok",
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	adv := newAdvisor(t, llm)

	done := make(chan error, 1)
	go func() {
		_, err := adv.Ask(context.Background(), "pertama")
		done <- err
	}()
	<-llm.entered

	_, err := adv.Ask(context.Background(), "kedua")
	assert.ErrorIs(t, err, service.ErrAdvisorBusy)

	close(llm.release)
	require.NoError(t, <-done)

	// the slot is free again
	resp, err := adv.Ask(context.Background(), "ketiga")
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Answer)
}

func TestAsk_DoesNotMutateInventory(t *testing.T) {
	repo := newStubItemRepo(kopi())
	inv := newInventory(t, repo)
	adv := service.NewAdvisorService(inv, &stubCompleter{answer: "ok"}, 1)

	_, err := adv.Ask(context.Background(), "Halo")
	require.NoError(t, err)

	_, saves := repo.snapshot()
	assert.Equal(t, 0, saves)
	assertSameItems(t, []model.BusinessItem{kopi()}, inv.Items())
}

func TestBuildAdvisorContext_SamplesFirstTwenty(t *testing.T) {
	items := make([]model.BusinessItem, 25)
	for i := range items {
		items[i] = item(fmt.Sprint(i), fmt.Sprintf("Barang %d", i), i, 1000, 1500, "Umum")
	}

	ctx := service.BuildAdvisorContext(items, service.ComputeMetrics(items))
	require.Len(t, ctx.InventorySample, service.AdvisorSampleSize)
	assert.Equal(t, "Barang 0", ctx.InventorySample[0].Name)
	assert.Equal(t, "Barang 19", ctx.InventorySample[19].Name)
	assert.Equal(t, 25, ctx.Summary.TotalItems)
}

func TestBuildAdvisorPrompt_EmbedsContextJSON(t *testing.T) {
	items := []model.BusinessItem{kopi()}
	prompt, err := service.BuildAdvisorPrompt(items, service.ComputeMetrics(items))
	require.NoError(t, err)

	start := strings.Index(prompt, "{")
	end := strings.LastIndex(prompt, "}")
	require.True(t, start >= 0 && end > start)

	var decoded struct {
		Summary struct {
			TotalItems int `json:"totalItems"`
		} `json:"summary"`
		InventorySample []struct {
			Name   string  `json:"name"`
			Stock  int     `json:"stock"`
			Buy    float64 `json:"buy"`
			Sell   float64 `json:"sell"`
			Margin float64 `json:"margin"`
		} `json:"inventory_sample"`
	}
	require.NoError(t, json.Unmarshal([]byte(prompt[start:end+1]), &decoded))
	assert.Equal(t, 1, decoded.Summary.TotalItems)
	require.Len(t, decoded.InventorySample, 1)
	assert.Equal(t, 3000.0, decoded.InventorySample[0].Margin)
}
