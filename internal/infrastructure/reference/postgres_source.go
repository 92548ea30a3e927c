package reference

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bibbank/guestrisk/internal/domain/model"
	"github.com/bibbank/guestrisk/internal/domain/port"
	"github.com/bibbank/guestrisk/pkg/postgres"
)

const referenceTable = "reference_reservations"

// PostgresSource reads the reference dataset from PostgreSQL.
type PostgresSource struct {
	pool *pgxpool.Pool
}

var _ port.ReferenceSource = (*PostgresSource)(nil)

// NewPostgresSource creates a new PostgreSQL-backed reference source.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

func columnNames() []string {
	names := make([]string, 0, model.NumericColumnCount+model.CategoricalColumnCount)
	names = append(names, model.NumericColumns[:]...)
	return append(names, model.CategoricalColumns[:]...)
}

// Load returns every reference row in insertion order.
func (s *PostgresSource) Load(ctx context.Context) ([]model.FeatureRecord, error) {
	return loadRows(ctx, s.pool)
}

func loadRows(ctx context.Context, q postgres.Querier) ([]model.FeatureRecord, error) {
	query := `
		SELECT no_of_adults, no_of_children, no_of_weekend_nights, no_of_week_nights,
			lead_time, arrival_year, arrival_month, arrival_date,
			repeated_guest, no_of_previous_cancellations, no_of_previous_bookings_not_canceled,
			avg_price_per_room, required_car_parking_space, no_of_special_requests,
			type_of_meal_plan, room_type_reserved, market_segment_type
		FROM reference_reservations
		ORDER BY id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query reference rows: %w", err)
	}
	defer rows.Close()

	var records []model.FeatureRecord
	for rows.Next() {
		var r model.FeatureRecord
		err := rows.Scan(
			&r.NoOfAdults, &r.NoOfChildren, &r.NoOfWeekendNights, &r.NoOfWeekNights,
			&r.LeadTime, &r.ArrivalYear, &r.ArrivalMonth, &r.ArrivalDate,
			&r.RepeatedGuest, &r.NoOfPreviousCancellations, &r.NoOfPreviousBookingsNotCanceled,
			&r.AvgPricePerRoom, &r.RequiredCarParkingSpace, &r.NoOfSpecialRequests,
			&r.TypeOfMealPlan, &r.RoomTypeReserved, &r.MarketSegmentType,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reference row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reference rows: %w", err)
	}

	return records, nil
}

// Import replaces the reference dataset with records in a single transaction.
func (s *PostgresSource) Import(ctx context.Context, records []model.FeatureRecord) (int64, error) {
	var copied int64

	err := postgres.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `TRUNCATE reference_reservations RESTART IDENTITY`); err != nil {
			return fmt.Errorf("failed to truncate reference rows: %w", err)
		}

		n, err := tx.CopyFrom(ctx,
			pgx.Identifier{referenceTable},
			columnNames(),
			pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
				r := records[i]
				return []any{
					r.NoOfAdults, r.NoOfChildren, r.NoOfWeekendNights, r.NoOfWeekNights,
					r.LeadTime, r.ArrivalYear, r.ArrivalMonth, r.ArrivalDate,
					r.RepeatedGuest, r.NoOfPreviousCancellations, r.NoOfPreviousBookingsNotCanceled,
					r.AvgPricePerRoom, r.RequiredCarParkingSpace, r.NoOfSpecialRequests,
					r.TypeOfMealPlan, r.RoomTypeReserved, r.MarketSegmentType,
				}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("failed to copy reference rows: %w", err)
		}
		copied = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	return copied, nil
}
