// Package api - HTTP handler for calculations
// The handler wraps the core - it contains NO calculation logic.
package api

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"payoff/core/form"
	"payoff/core/locale"
	"payoff/core/normalize"
	"payoff/core/output"
	"payoff/core/types"
	"payoff/internal/errors"
	"payoff/internal/logging"
	"payoff/internal/metrics"
)

// Handler validates requests and delegates to the core
type Handler struct {
	defaults types.Options
	locale   locale.Locale
	currency types.Currency
	maxBatch int

	// metrics may be nil
	metrics *metrics.Metrics
}

// NewHandler creates a new handler
func NewHandler(defaults types.Options, loc locale.Locale, currency types.Currency, maxBatch int, m *metrics.Metrics) *Handler {
	return &Handler{
		defaults: defaults,
		locale:   loc,
		currency: currency,
		maxBatch: maxBatch,
		metrics:  m,
	}
}

// settings is a request's resolved options
type settings struct {
	opts     types.Options
	locale   locale.Locale
	currency types.Currency
}

func (s settings) metadata() *ResponseMetadata {
	return &ResponseMetadata{
		Mode:     s.opts.Mode.String(),
		Banding:  s.opts.Banding.String(),
		Locale:   string(s.locale),
		Currency: s.currency.String(),
	}
}

// resolve applies request overrides on top of the handler defaults
func (h *Handler) resolve(ro RequestOptions) (settings, error) {
	s := settings{opts: h.defaults, locale: h.locale, currency: h.currency}
	var errs error

	if strings.TrimSpace(ro.Mode) != "" {
		m, err := types.ParseMode(ro.Mode)
		errs = multierr.Append(errs, err)
		s.opts.Mode = m
	}
	if strings.TrimSpace(ro.Banding) != "" {
		b, err := types.ParseBanding(ro.Banding)
		errs = multierr.Append(errs, err)
		s.opts.Banding = b
	}
	if strings.TrimSpace(ro.Locale) != "" {
		l, err := locale.Parse(ro.Locale)
		errs = multierr.Append(errs, err)
		s.locale = l
	}
	if strings.TrimSpace(ro.Currency) != "" {
		c, err := types.ParseCurrency(ro.Currency)
		errs = multierr.Append(errs, err)
		s.currency = c
	}
	return s, errs
}

func (h *Handler) calculate(ctx context.Context, req *CalculateRequest) (output.Item, settings, error) {
	s, err := h.resolve(req.RequestOptions)
	if err != nil {
		return output.Item{}, s, err
	}

	in, err := form.Parse(req.RawInput, s.locale)
	if err != nil {
		h.recordInvalid()
		return output.Item{}, s, err
	}

	item := h.normalize(ctx, "", in, s.opts)
	if req.RequireFinite {
		if err := output.RequireFinite([]output.Item{item}); err != nil {
			return output.Item{}, s, err
		}
	}
	return item, s, nil
}

func (h *Handler) batch(ctx context.Context, req *BatchRequest) ([]output.ResultDTO, *output.Summary, settings, error) {
	s, err := h.resolve(req.RequestOptions)
	if err != nil {
		return nil, nil, s, err
	}
	if len(req.Items) == 0 {
		return nil, nil, s, errors.Input("items must not be empty")
	}
	if h.maxBatch > 0 && len(req.Items) > h.maxBatch {
		return nil, nil, s, errors.Newf(errors.TypeInput, "batch of %d items exceeds the limit of %d", len(req.Items), h.maxBatch)
	}

	inputs := make([]types.Input, len(req.Items))
	var errs error
	for i, it := range req.Items {
		in, err := form.Parse(it.RawInput, s.locale)
		if err != nil {
			h.recordInvalid()
			errs = multierr.Append(errs, &itemError{index: i, err: err})
			continue
		}
		inputs[i] = in
	}
	if errs != nil {
		return nil, nil, s, errors.Wrap(errors.TypeInput, "invalid batch items", errs)
	}

	items := make([]output.Item, len(req.Items))
	dtos := make([]output.ResultDTO, len(req.Items))
	for i, it := range req.Items {
		items[i] = h.normalize(ctx, it.Name, inputs[i], s.opts)
		dtos[i] = output.NewResultDTO(items[i], s.currency, s.locale)
	}
	if req.RequireFinite {
		if err := output.RequireFinite(items); err != nil {
			return nil, nil, s, err
		}
	}
	return dtos, output.Summarize(items, s.currency), s, nil
}

func (h *Handler) normalize(ctx context.Context, name string, in types.Input, opts types.Options) output.Item {
	r := normalize.Normalize(in, opts)
	if h.metrics != nil {
		h.metrics.RecordResult(r)
	}
	if !r.Finite {
		logging.FromContext(ctx).Debug("non-finite unit cost",
			zap.String("item", name),
			zap.Float64("frequency", in.FrequencyValue),
			zap.Float64("period", in.PeriodValue),
		)
	}
	return output.Item{Name: name, Input: in, Result: r}
}

// itemError ties a validation error to its batch position
type itemError struct {
	index int
	err   error
}

func (e *itemError) Error() string {
	return fmt.Sprintf("items[%d]: %v", e.index, e.err)
}

func (e *itemError) Unwrap() error {
	return e.err
}

func (h *Handler) recordInvalid() {
	if h.metrics != nil {
		h.metrics.RecordInvalid()
	}
}
