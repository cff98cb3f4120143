package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/lucasaveiro/service-scheduler/infras/otel"
	"github.com/lucasaveiro/service-scheduler/infras/postgres"
	bookingModel "github.com/lucasaveiro/service-scheduler/internal/domains/booking/model"
	clientModel "github.com/lucasaveiro/service-scheduler/internal/domains/client/model"
	"github.com/lucasaveiro/service-scheduler/internal/domains/dashboard/model"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	"github.com/lucasaveiro/service-scheduler/shared/logger"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Dashboard interface {
	Totals(ctx context.Context, businessID string, month time.Time) (model.Totals, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Dashboard {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

// ClientCountQuery counts every client of the business.
func ClientCountQuery(businessID string) sq.SelectBuilder {
	return psql.Select("COUNT(*)").
		From(clientModel.TableName).
		Where(sq.Eq{clientModel.FieldBusinessID: businessID})
}

// RevenueQuery sums paid bookings dated inside the calendar month containing month.
func RevenueQuery(businessID string, month time.Time) sq.SelectBuilder {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	end := start.AddDate(0, 1, 0)

	return psql.Select(fmt.Sprintf("COALESCE(SUM(%s), 0)", bookingModel.FieldTotalAmount)).
		From(bookingModel.TableName).
		Where(sq.Eq{bookingModel.FieldBusinessID: businessID}).
		Where(sq.Eq{bookingModel.FieldPaymentStatus: bookingModel.PaymentStatusSucceeded}).
		Where(sq.GtOrEq{bookingModel.FieldBookingDate: start.Format(constant.DayFormat)}).
		Where(sq.Lt{bookingModel.FieldBookingDate: end.Format(constant.DayFormat)})
}

func (r *repositoryImpl) Totals(ctx context.Context, businessID string, month time.Time) (res model.Totals, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".dashboard.Totals")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = r.scalar(ctx, ClientCountQuery(businessID), &res.TotalClients); err != nil {
		return res, fmt.Errorf("failed to count clients: %w", err)
	}

	if err = r.scalar(ctx, RevenueQuery(businessID, month), &res.MonthlyRevenue); err != nil {
		return res, fmt.Errorf("failed to sum revenue: %w", err)
	}

	return res, nil
}

func (r *repositoryImpl) scalar(ctx context.Context, builder sq.SelectBuilder, dest any) error {
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if err = r.db.Read.GetContext(ctx, dest, query, args...); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}
