package dto

import (
	"github.com/shopspring/decimal"
	"github.com/zakatkuy/amil/internal/domain"
	"github.com/zakatkuy/amil/internal/pkg/utils"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type SummaryResponse struct {
	Year                domain.Year         `json:"tahun"`
	Collected           decimal.Decimal     `json:"jumlah_pengumpulan"`
	Distributed         decimal.Decimal     `json:"jumlah_penyaluran"`
	CollectedNominal    string              `json:"jumlah_pengumpulan_nominal"`
	DistributedNominal  string              `json:"jumlah_penyaluran_nominal"`
	Ratio               *decimal.Decimal    `json:"acr"`
	RatioPercent        *string             `json:"acr_persen"`
	Effectiveness       *string             `json:"efektivitas"`
	EffectivenessCode   *int                `json:"code"`
	EffectivenessStatus domain.RatingStatus `json:"status"`
}

func NewSummaryResponse(s domain.Summary) SummaryResponse {
	resp := SummaryResponse{
		Year:                s.Year,
		Collected:           s.Collected,
		Distributed:         s.Distributed,
		CollectedNominal:    utils.FormatNominal(s.Collected),
		DistributedNominal:  utils.FormatNominal(s.Distributed),
		Ratio:               s.Ratio,
		EffectivenessStatus: domain.StatusUnrated,
	}

	if s.Ratio == nil {
		return resp
	}

	percent := utils.FormatPercent(*s.Ratio)
	resp.RatioPercent = &percent

	rating := domain.ClassifyRatio(*s.Ratio)
	resp.EffectivenessStatus = rating.Status
	if label, ok := rating.Label(); ok {
		name, code := label.String(), label.Code()
		resp.Effectiveness = &name
		resp.EffectivenessCode = &code
	}

	return resp
}

type BackendsResponse struct {
	Default  string   `json:"default"`
	Backends []string `json:"backends"`
}

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
	Backend string `json:"backend"`
}

type ChatReplyResponse struct {
	Reply    domain.Message   `json:"reply"`
	Messages []domain.Message `json:"messages"`
}

type ChatHistoryResponse struct {
	Messages []domain.Message `json:"messages"`
}

type ImportResponse struct {
	Imported int64 `json:"imported"`
}
