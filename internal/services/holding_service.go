package services

import (
	"context"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"projectdollar/internal/errors"
	"projectdollar/internal/models"
	"projectdollar/internal/store"
	"projectdollar/internal/uuid"
)

// HoldingInput carries validated holding fields from the handler layer.
type HoldingInput struct {
	Symbol        string
	Name          string
	PurchasePrice float64
	Quantity      float64
	PurchaseDate  string
	LogoURL       string
}

type holdingService struct {
	store  *store.Store
	lookup SymbolLookup
	log    *zap.SugaredLogger
}

// NewHoldingService creates the holding service. lookup may be nil; name
// and logo enrichment is then skipped.
func NewHoldingService(st *store.Store, lookup SymbolLookup, log *zap.SugaredLogger) HoldingServicer {
	return &holdingService{store: st, lookup: lookup, log: log}
}

func (s *holdingService) List() []models.Holding {
	return s.store.Assets()
}

func (s *holdingService) Get(id string) (*models.Holding, error) {
	for _, h := range s.store.Assets() {
		if h.ID == id {
			return &h, nil
		}
	}
	return nil, errors.ErrHoldingNotFound
}

func (s *holdingService) Create(ctx context.Context, input HoldingInput) (*models.Holding, error) {
	if err := validateHoldingInput(&input); err != nil {
		return nil, err
	}

	h := models.Holding{
		ID:            uuid.New(),
		Symbol:        input.Symbol,
		Name:          input.Name,
		PurchasePrice: input.PurchasePrice,
		Quantity:      input.Quantity,
		PurchaseDate:  input.PurchaseDate,
		TotalValue:    round2(input.PurchasePrice * input.Quantity),
		LogoURL:       input.LogoURL,
	}
	s.enrich(ctx, &h)

	assets := append(s.store.Assets(), h)
	s.store.SaveAssets(assets)

	s.log.Infow("Holding created", "id", h.ID, "symbol", h.Symbol)
	return &h, nil
}

func (s *holdingService) Update(ctx context.Context, id string, input HoldingInput) (*models.Holding, error) {
	if err := validateHoldingInput(&input); err != nil {
		return nil, err
	}

	assets := s.store.Assets()
	for i := range assets {
		if assets[i].ID != id {
			continue
		}

		h := assets[i]
		h.Symbol = input.Symbol
		h.Name = input.Name
		h.PurchasePrice = input.PurchasePrice
		h.Quantity = input.Quantity
		h.PurchaseDate = input.PurchaseDate
		if input.LogoURL != "" {
			h.LogoURL = input.LogoURL
		}
		// An explicit edit is the one place the stored snapshot recomputes.
		h.TotalValue = round2(input.PurchasePrice * input.Quantity)
		s.enrich(ctx, &h)

		assets[i] = h
		s.store.SaveAssets(assets)

		s.log.Infow("Holding updated", "id", id, "symbol", h.Symbol)
		return &h, nil
	}
	return nil, errors.ErrHoldingNotFound
}

func (s *holdingService) Delete(id string) error {
	assets := s.store.Assets()
	kept := assets[:0]
	for _, h := range assets {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	if len(kept) == len(assets) {
		return errors.ErrHoldingNotFound
	}

	s.store.SaveAssets(kept)
	s.log.Infow("Holding deleted", "id", id)
	return nil
}

// enrich fills in a missing name or logo from the symbol lookup. Lookup
// failures are logged and ignored; the holding saves fine without them.
func (s *holdingService) enrich(ctx context.Context, h *models.Holding) {
	if s.lookup == nil || (h.Name != "" && h.LogoURL != "") {
		return
	}

	overview, err := s.lookup.Overview(ctx, h.Symbol)
	if err != nil {
		s.log.Debugw("Symbol overview lookup failed", "symbol", h.Symbol, "error", err)
		return
	}
	if h.Name == "" {
		h.Name = overview.Name
	}
	if h.LogoURL == "" {
		h.LogoURL = overview.LogoURL
	}
}

func validateHoldingInput(input *HoldingInput) error {
	input.Symbol = strings.ToUpper(strings.TrimSpace(input.Symbol))
	if input.Symbol == "" {
		return errors.WithMessage(errors.ErrInvalidInput, "Symbol is required")
	}
	if input.PurchasePrice <= 0 {
		return errors.WithMessage(errors.ErrInvalidInput, "Purchase price must be positive")
	}
	if input.Quantity <= 0 {
		return errors.WithMessage(errors.ErrInvalidInput, "Quantity must be positive")
	}

	if input.PurchaseDate == "" {
		input.PurchaseDate = time.Now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", input.PurchaseDate); err != nil {
		return errors.WithMessage(errors.ErrInvalidInput, "Purchase date must be YYYY-MM-DD")
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
