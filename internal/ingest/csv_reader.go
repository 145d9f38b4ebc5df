package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spacesedan/review-analyzer/internal/models"
)

// Column names expected in the header row.
const (
	ColumnReviewID = "Review_ID"
	ColumnText     = "Review_Text"
	ColumnRating   = "Rating"
	ColumnCategory = "Product_Category"
	ColumnVerified = "Verified_Purchase"
)

// Defaults used when a column is missing from the file.
const (
	DefaultReviewID = ""
	DefaultRating   = 0.0
	DefaultCategory = "Unknown"
	verifiedValue   = "Yes"
)

var ErrInvalidRating = errors.New("rating is not a number")

// ReadReviewsFile opens path and reads every review in it. A missing file is
// reported with an error that matches fs.ErrNotExist.
func ReadReviewsFile(path string) ([]models.Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("[CSVReader] Failed to open %s: %w", path, err)
	}
	defer f.Close()

	reviews, err := ReadReviews(f)
	if err != nil {
		return nil, err
	}

	slog.Info("[CSVReader] Loaded reviews",
		slog.String("path", path),
		slog.Int("count", len(reviews)))
	return reviews, nil
}

// ReadReviews reads a header row followed by review rows. Rows are returned in
// file order, including rows with blank text. Any rating that cannot be
// parsed fails the whole read.
func ReadReviews(r io.Reader) ([]models.Review, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("[CSVReader] Failed to read header: %w", err)
	}
	columns := indexColumns(header)

	var reviews []models.Review
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("[CSVReader] Failed to read row %d: %w", line, err)
		}

		row := rowFields{columns: columns, record: record}
		review, err := row.review()
		if err != nil {
			return nil, fmt.Errorf("[CSVReader] Row %d: %w", line, err)
		}
		reviews = append(reviews, review)
	}

	return reviews, nil
}

func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		columns[name] = i
	}
	return columns
}

type rowFields struct {
	columns map[string]int
	record  []string
}

// lookup returns the raw value of a column, and false when the column is not
// in the header or the row is too short to hold it.
func (r rowFields) lookup(column string) (string, bool) {
	i, ok := r.columns[column]
	if !ok || i >= len(r.record) {
		return "", false
	}
	return r.record[i], true
}

func (r rowFields) stringOr(column, fallback string) string {
	if v, ok := r.lookup(column); ok {
		return v
	}
	return fallback
}

// rating falls back to DefaultRating only when the header has no Rating
// column. A blank cell or a row too short to hold one is an error.
func (r rowFields) rating() (float64, error) {
	if _, ok := r.columns[ColumnRating]; !ok {
		return DefaultRating, nil
	}
	v, ok := r.lookup(ColumnRating)
	if !ok {
		return 0, fmt.Errorf("%w: missing value", ErrInvalidRating)
	}
	rating, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRating, v)
	}
	return rating, nil
}

func (r rowFields) review() (models.Review, error) {
	rating, err := r.rating()
	if err != nil {
		return models.Review{}, err
	}

	return models.Review{
		ReviewID:   r.stringOr(ColumnReviewID, DefaultReviewID),
		ReviewText: r.stringOr(ColumnText, ""),
		Rating:     rating,
		Category:   r.stringOr(ColumnCategory, DefaultCategory),
		Verified:   r.stringOr(ColumnVerified, "") == verifiedValue,
	}, nil
}
