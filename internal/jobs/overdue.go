package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"libraryhub/internal/config"
	"libraryhub/internal/model"
)

const runTimeout = time.Minute

// OverdueLister returns loans whose return date is before asOf.
type OverdueLister interface {
	GetOverdueBooks(ctx context.Context, asOf time.Time) ([]model.IssuedBook, error)
}

// OverdueReporter logs every loan past its return date.
type OverdueReporter struct {
	loans OverdueLister
	log   zerolog.Logger
	now   func() time.Time
}

// NewOverdueReporter creates a reporter over loans.
func NewOverdueReporter(loans OverdueLister, log zerolog.Logger) *OverdueReporter {
	return &OverdueReporter{loans: loans, log: log.With().Str("job", "overdue_report").Logger(), now: time.Now}
}

// Run writes one warning per overdue loan and a summary line. It returns
// the number of overdue loans.
func (r *OverdueReporter) Run(ctx context.Context) (int, error) {
	asOf := r.now().UTC()

	loans, err := r.loans.GetOverdueBooks(ctx, asOf)
	if err != nil {
		r.log.Error().Err(err).Msg("overdue report failed")
		return 0, err
	}

	for _, loan := range loans {
		r.log.Warn().
			Str("loan_id", loan.ID).
			Str("user_id", loan.UserID).
			Str("book_id", loan.BookID).
			Str("return_date", loan.ReturnDate).
			Msg("book overdue")
	}
	r.log.Info().Int("overdue", len(loans)).Str("as_of", asOf.Format(model.DateLayout)).Msg("overdue report finished")
	return len(loans), nil
}

// Schedule starts r on the cron expression spec. An empty spec or "off"
// returns a nil scheduler.
func Schedule(spec string, r *OverdueReporter, log zerolog.Logger) (*cron.Cron, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || strings.EqualFold(spec, config.CronDisabled) {
		log.Info().Msg("overdue report disabled")
		return nil, nil
	}

	c := cron.New(cron.WithLocation(time.UTC))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		_, _ = r.Run(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("parse OVERDUE_CRON %q: %w", spec, err)
	}

	c.Start()
	log.Info().Str("schedule", spec).Msg("overdue report scheduled")
	return c, nil
}
