package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/okian/squadrate/internal/domain/types"
	"github.com/okian/squadrate/pkg/logger"
	"github.com/okian/squadrate/pkg/metrics"
)

var validate = validator.New()

// submissionShape holds the checks applied before anything is written.
type submissionShape struct {
	EvalRows []types.EvalRowInput `validate:"required,min=1"`
	SelfRow  *types.SelfRowInput  `validate:"required"`
}

// Submit writes one form response: evaluation rows in concurrent batches,
// then the self-assessment row. Nothing spans the batches; a failure part
// way leaves the rows already written, which the read path tolerates.
// It returns the number of rows written.
func (s *Service) Submit(ctx context.Context, sub types.Submission) (int, error) {
	if err := validate.Struct(submissionShape{EvalRows: sub.EvalRows, SelfRow: sub.SelfRow}); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSubmission, err)
	}
	if err := s.ready(); err != nil {
		return 0, err
	}

	ctx, span := tracer.Start(ctx, "Service.Submit", trace.WithAttributes(
		attribute.Int("eval_rows", len(sub.EvalRows)),
		attribute.Int("batch", s.submitBatch),
	))
	defer span.End()

	written := 0
	for i := 0; i < len(sub.EvalRows); i += s.submitBatch {
		end := min(i+s.submitBatch, len(sub.EvalRows))
		g, gctx := errgroup.WithContext(ctx)
		for _, row := range sub.EvalRows[i:end] {
			row := row
			g.Go(func() error {
				return s.store.Insert(gctx, s.evalTable, row.Model().ToRaw())
			})
		}
		if err := g.Wait(); err != nil {
			return 0, s.failSubmit(ctx, span, written, err)
		}
		written += end - i
		metrics.RecordRowsInserted(s.evalTable, end-i)
	}

	if err := s.store.Insert(ctx, s.selfTable, sub.SelfRow.Model().ToRaw()); err != nil {
		return 0, s.failSubmit(ctx, span, written, err)
	}
	written++
	metrics.RecordRowsInserted(s.selfTable, 1)

	s.submissions.Add(1)
	span.SetStatus(codes.Ok, "")
	s.logger.Debug(ctx, "submission stored", logger.Int("rows", written))
	return written, nil
}

func (s *Service) failSubmit(ctx context.Context, span trace.Span, written int, err error) error {
	err = fmt.Errorf("%w: %w", ErrInsert, err)
	s.failures.Add(1)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	metrics.RecordErrorByComponent("service", "insert")
	s.logger.Error(ctx, "submission partially stored",
		logger.Int("rowsWritten", written),
		logger.Error(err),
	)
	return err
}
