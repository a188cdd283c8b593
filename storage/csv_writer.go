package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"treehouse-importer/models"
)

// CSVWriter appends an audit row for every imported listing.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write([]string{
		"owner_id", "source_url", "title", "location", "price", "guests",
		"bedrooms", "bathrooms", "rating", "review_count", "image_count", "amenities", "imported_at",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Append writes one audit row for an imported property.
func (c *CSVWriter) Append(p *models.Property) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	row := []string{
		p.OwnerID,
		p.SourceURL,
		p.Title,
		p.Location,
		strconv.Itoa(p.Price),
		strconv.Itoa(p.Guests),
		strconv.Itoa(p.Bedrooms),
		strconv.Itoa(p.Bathrooms),
		strconv.FormatFloat(p.Rating, 'f', 2, 64),
		strconv.Itoa(p.ReviewCount),
		strconv.Itoa(len(p.Images)),
		strings.Join(p.Amenities, "|"),
		p.CreatedAt.Format(time.RFC3339),
	}
	if err := c.writer.Write(row); err != nil {
		return fmt.Errorf("csv: write row: %w", err)
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
