package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"bisnispintar/internal/dto"
	"bisnispintar/internal/model"

	"github.com/rs/zerolog/log"
)

// AdvisorSampleSize bounds how many items are summarized for the model.
const AdvisorSampleSize = 20

// Fixed answers returned instead of a model reply.
const (
	FallbackNoAPIKey = "API Key AI tidak ditemukan. Mohon pastikan environment variable API_KEY telah diatur."
	FallbackEmpty    = "Maaf, saya tidak dapat menghasilkan analisa saat ini."
	FallbackError    = "Terjadi kesalahan saat menghubungi asisten AI. Coba lagi nanti."
)

// ErrAdvisorBusy is returned when the in-flight limit is reached.
var ErrAdvisorBusy = errors.New("asisten AI sedang memproses pertanyaan lain")

// Completer is the remote chat model. infra.LLMClient satisfies it.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// AdvisorService answers free-text questions about the current inventory.
// It reads a snapshot of the store and never mutates it.
type AdvisorService interface {
	// Ask returns a model answer or one of the fixed fallbacks. The only error
	// is ErrAdvisorBusy, returned before any remote call is made.
	Ask(ctx context.Context, question string) (dto.AdvisorResponse, error)
}

type advisorService struct {
	inventory InventoryService
	model     Completer // nil when no API key is configured
	inflight  chan struct{}
}

// NewAdvisorService limits concurrent remote calls to maxInflight (at least 1).
func NewAdvisorService(inventory InventoryService, model Completer, maxInflight int) AdvisorService {
	if maxInflight <= 0 {
		maxInflight = 1
	}
	return &advisorService{
		inventory: inventory,
		model:     model,
		inflight:  make(chan struct{}, maxInflight),
	}
}

func (s *advisorService) Ask(ctx context.Context, question string) (dto.AdvisorResponse, error) {
	if s.model == nil {
		return dto.AdvisorResponse{Answer: FallbackNoAPIKey, Fallback: true}, nil
	}

	select {
	case s.inflight <- struct{}{}:
		defer func() { <-s.inflight }()
	default:
		return dto.AdvisorResponse{}, ErrAdvisorBusy
	}

	items, metrics := s.inventory.Snapshot()
	system, err := BuildAdvisorPrompt(items, metrics)
	if err != nil {
		log.Error().Err(err).Msg("advisor: build prompt")
		return dto.AdvisorResponse{Answer: FallbackError, Fallback: true}, nil
	}

	answer, err := s.model.Complete(ctx, system, question)
	if err != nil {
		log.Error().Err(err).Msg("advisor: remote call failed")
		return dto.AdvisorResponse{Answer: FallbackError, Fallback: true}, nil
	}
	if answer == "" {
		return dto.AdvisorResponse{Answer: FallbackEmpty, Fallback: true}, nil
	}
	return dto.AdvisorResponse{Answer: answer}, nil
}

// BuildAdvisorContext summarizes the metrics and the first AdvisorSampleSize items.
func BuildAdvisorContext(items []model.BusinessItem, metrics dto.BusinessMetrics) dto.AdvisorContext {
	n := min(len(items), AdvisorSampleSize)
	sample := make([]dto.AdvisorSample, 0, n)
	for _, it := range items[:n] {
		sample = append(sample, dto.AdvisorSample{
			Name:   it.Name,
			Stock:  it.Stock,
			Buy:    it.CapitalPrice,
			Sell:   it.SellingPrice,
			Margin: it.Margin(),
		})
	}
	return dto.AdvisorContext{Summary: metrics, InventorySample: sample}
}

// BuildAdvisorPrompt renders the system prompt with the data context embedded as JSON.
func BuildAdvisorPrompt(items []model.BusinessItem, metrics dto.BusinessMetrics) (string, error) {
	raw, err := json.Marshal(BuildAdvisorContext(items, metrics))
	if err != nil {
		return "", fmt.Errorf("advisor: marshal context: %w", err)
	}
	var b strings.Builder
	b.WriteString("Anda adalah konsultan bisnis untuk UMKM (Usaha Mikro Kecil Menengah) di Indonesia.\n")
	b.WriteString("Bantu pemilik usaha membaca data stok dan keuangan mereka.\n\n")
	b.WriteString("Data bisnis saat ini (JSON):\n")
	b.Write(raw)
	b.WriteString("\n\nAturan menjawab:\n")
	b.WriteString("1. Jawab pertanyaan pengguna berdasarkan data di atas.\n")
	b.WriteString("2. Beri saran praktis soal keuntungan, stok yang tidak bergerak, atau strategi harga.\n")
	b.WriteString("3. Gunakan Bahasa Indonesia yang profesional dan ramah.\n")
	b.WriteString("4. Rapikan jawaban, pakai poin-poin bila perlu.\n")
	b.WriteString("5. Jika data kosong, beri saran umum untuk memulai usaha.\n")
	return b.String(), nil
}
