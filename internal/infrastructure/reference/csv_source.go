package reference

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bibbank/guestrisk/internal/domain/model"
	"github.com/bibbank/guestrisk/internal/domain/port"
)

// CSVSource reads the hotel reservations reference dataset from a CSV file.
// Columns are located by header name, so their order in the file is free.
type CSVSource struct {
	path string
}

var _ port.ReferenceSource = (*CSVSource)(nil)

// NewCSVSource creates a source that reads path on every Load.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Load reads and parses every row of the dataset.
func (s *CSVSource) Load(ctx context.Context) ([]model.FeatureRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference dataset: %w", err)
	}
	defer f.Close()

	return ReadCSV(ctx, f)
}

// ReadCSV parses reference rows from r. Columns other than the 17 features,
// such as Booking_ID and booking_status, are ignored.
func ReadCSV(ctx context.Context, r io.Reader) ([]model.FeatureRecord, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read reference header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range append(model.NumericColumns[:], model.CategoricalColumns[:]...) {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("reference dataset is missing column %q", name)
		}
	}

	var rows []model.FeatureRecord
	for line := 2; ; line++ {
		if line%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read reference line %d: %w", line, err)
		}

		row, err := parseRow(record, index)
		if err != nil {
			return nil, fmt.Errorf("reference line %d: %w", line, err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func parseRow(record []string, index map[string]int) (model.FeatureRecord, error) {
	var numeric [model.NumericColumnCount]float64
	for i, name := range model.NumericColumns {
		v, err := strconv.ParseFloat(strings.TrimSpace(record[index[name]]), 64)
		if err != nil {
			return model.FeatureRecord{}, fmt.Errorf("invalid %s: %w", name, err)
		}
		numeric[i] = v
	}

	var categorical [model.CategoricalColumnCount]string
	for i, name := range model.CategoricalColumns {
		categorical[i] = strings.TrimSpace(record[index[name]])
	}

	return FromColumns(numeric, categorical), nil
}

// FromColumns builds a record from values in fitted column order.
func FromColumns(numeric [model.NumericColumnCount]float64, categorical [model.CategoricalColumnCount]string) model.FeatureRecord {
	return model.FeatureRecord{
		NoOfAdults:                      int(numeric[0]),
		NoOfChildren:                    int(numeric[1]),
		NoOfWeekendNights:               int(numeric[2]),
		NoOfWeekNights:                  int(numeric[3]),
		LeadTime:                        int(numeric[4]),
		ArrivalYear:                     int(numeric[5]),
		ArrivalMonth:                    int(numeric[6]),
		ArrivalDate:                     int(numeric[7]),
		RepeatedGuest:                   int(numeric[8]),
		NoOfPreviousCancellations:       int(numeric[9]),
		NoOfPreviousBookingsNotCanceled: int(numeric[10]),
		AvgPricePerRoom:                 numeric[11],
		RequiredCarParkingSpace:         int(numeric[12]),
		NoOfSpecialRequests:             int(numeric[13]),
		TypeOfMealPlan:                  categorical[0],
		RoomTypeReserved:                categorical[1],
		MarketSegmentType:               categorical[2],
	}
}
