package handlers

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"olist-dashboard/internal/errors"
	"olist-dashboard/internal/models"
	"olist-dashboard/internal/services"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// rangeParams is the raw start/end pair from a query string or SSE signals.
// Empty values fall back to the dataset range.
type rangeParams struct {
	Start string `json:"start" validate:"omitempty,datetime=2006-01-02"`
	End   string `json:"end" validate:"omitempty,datetime=2006-01-02"`
}

// queryRange reads start/end from the query string. Each may appear once.
func queryRange(r *http.Request) (rangeParams, error) {
	q := r.URL.Query()
	for _, key := range []string{"start", "end"} {
		if len(q[key]) > 1 {
			return rangeParams{}, errors.BadRequest(fmt.Sprintf("%s must be given at most once", key))
		}
	}
	return rangeParams{
		Start: strings.TrimSpace(q.Get("start")),
		End:   strings.TrimSpace(q.Get("end")),
	}, nil
}

// requestRange resolves the query range of r against fallback.
func requestRange(r *http.Request, fallback models.DateRange) (models.DateRange, error) {
	p, err := queryRange(r)
	if err != nil {
		return models.DateRange{}, err
	}
	return p.resolve(fallback)
}

// resolve validates p and fills missing dates from fallback.
func (p rangeParams) resolve(fallback models.DateRange) (models.DateRange, error) {
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			field := strings.ToLower(verrs[0].Field())
			return models.DateRange{}, errors.ValidationWrap(err, fmt.Sprintf("%s date must use the YYYY-MM-DD format", field))
		}
		return models.DateRange{}, errors.ValidationWrap(err, "Invalid date range")
	}

	start := fallback.Start.Format(models.DateLayout)
	if p.Start != "" {
		start = p.Start
	}
	end := fallback.End.Format(models.DateLayout)
	if p.End != "" {
		end = p.End
	}

	rng, err := models.ParseDateRange(start, end)
	if err != nil {
		return models.DateRange{}, errors.ValidationWrap(err, "Invalid date range")
	}
	if !rng.Valid() {
		return models.DateRange{}, errors.ValidationWrap(services.ErrInvalidRange, "Start date must not be after end date")
	}
	return rng, nil
}

// serviceError maps engine errors onto API errors.
func serviceError(err error) error {
	if stderrors.Is(err, services.ErrInvalidRange) {
		return errors.ValidationWrap(err, "Start date must not be after end date")
	}
	return err
}

type rangeJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func toRangeJSON(rng models.DateRange) rangeJSON {
	return rangeJSON{
		Start: rng.Start.Format(models.DateLayout),
		End:   rng.End.Format(models.DateLayout),
	}
}
