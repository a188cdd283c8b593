package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"treehouse-importer/models"
)

// PostgresStore persists imported properties to PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresStore.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	ps := &PostgresStore{db: db}
	if err := ps.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return ps, nil
}

func (ps *PostgresStore) migrate() error {
	_, err := ps.db.Exec(`
		CREATE TABLE IF NOT EXISTS properties (
			id           SERIAL PRIMARY KEY,
			owner_id     TEXT         NOT NULL,
			source_url   TEXT         NOT NULL,
			title        TEXT         NOT NULL,
			description  TEXT         NOT NULL DEFAULT '',
			location     TEXT         NOT NULL DEFAULT '',
			price        INTEGER      NOT NULL DEFAULT 0,
			images       TEXT[]       NOT NULL DEFAULT '{}',
			guests       INTEGER      NOT NULL DEFAULT 2,
			bedrooms     INTEGER      NOT NULL DEFAULT 1,
			bathrooms    INTEGER      NOT NULL DEFAULT 1,
			amenities    TEXT[]       NOT NULL DEFAULT '{}',
			host_name    TEXT         NOT NULL DEFAULT 'Host',
			host_avatar  TEXT         NOT NULL DEFAULT '',
			rating       NUMERIC(4,2) NOT NULL DEFAULT 0,
			review_count INTEGER      NOT NULL DEFAULT 0,
			lat          DOUBLE PRECISION,
			lng          DOUBLE PRECISION,
			created_at   TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
			UNIQUE (owner_id, source_url)
		);

		CREATE INDEX IF NOT EXISTS idx_properties_owner    ON properties(owner_id);
		CREATE INDEX IF NOT EXISTS idx_properties_location ON properties(location);
		CREATE INDEX IF NOT EXISTS idx_properties_rating   ON properties(rating);
	`)
	return err
}

// Save upserts one property; re-importing the same listing for the same owner
// replaces the stored record.
func (ps *PostgresStore) Save(p *models.Property) error {
	var lat, lng sql.NullFloat64
	if p.Lat != nil {
		lat = sql.NullFloat64{Float64: *p.Lat, Valid: true}
	}
	if p.Lng != nil {
		lng = sql.NullFloat64{Float64: *p.Lng, Valid: true}
	}

	_, err := ps.db.Exec(`
		INSERT INTO properties (
			owner_id, source_url, title, description, location, price, images,
			guests, bedrooms, bathrooms, amenities, host_name, host_avatar,
			rating, review_count, lat, lng, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		ON CONFLICT (owner_id, source_url) DO UPDATE SET
			title        = EXCLUDED.title,
			description  = EXCLUDED.description,
			location     = EXCLUDED.location,
			price        = EXCLUDED.price,
			images       = EXCLUDED.images,
			guests       = EXCLUDED.guests,
			bedrooms     = EXCLUDED.bedrooms,
			bathrooms    = EXCLUDED.bathrooms,
			amenities    = EXCLUDED.amenities,
			host_name    = EXCLUDED.host_name,
			host_avatar  = EXCLUDED.host_avatar,
			rating       = EXCLUDED.rating,
			review_count = EXCLUDED.review_count,
			lat          = EXCLUDED.lat,
			lng          = EXCLUDED.lng
	`,
		p.OwnerID, p.SourceURL, p.Title, p.Description, p.Location, p.Price,
		pq.Array(p.Images), p.Guests, p.Bedrooms, p.Bathrooms, pq.Array(p.Amenities),
		p.HostName, p.HostAvatar, p.Rating, p.ReviewCount, lat, lng, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: save property: %w", err)
	}
	return nil
}

// FetchAll retrieves every stored property, oldest first.
func (ps *PostgresStore) FetchAll() ([]*models.Property, error) {
	return ps.fetch(`
		SELECT id, owner_id, source_url, title, description, location, price,
		       images, guests, bedrooms, bathrooms, amenities, host_name,
		       host_avatar, rating, review_count, lat, lng, created_at
		FROM properties
		ORDER BY id
	`)
}

// FetchByOwner retrieves the properties imported by one owner.
func (ps *PostgresStore) FetchByOwner(ownerID string) ([]*models.Property, error) {
	return ps.fetch(`
		SELECT id, owner_id, source_url, title, description, location, price,
		       images, guests, bedrooms, bathrooms, amenities, host_name,
		       host_avatar, rating, review_count, lat, lng, created_at
		FROM properties
		WHERE owner_id = $1
		ORDER BY id
	`, ownerID)
}

func (ps *PostgresStore) fetch(query string, args ...interface{}) ([]*models.Property, error) {
	rows, err := ps.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch: %w", err)
	}
	defer rows.Close()

	var properties []*models.Property
	for rows.Next() {
		p := &models.Property{}
		var images, amenities pq.StringArray
		var lat, lng sql.NullFloat64

		if err := rows.Scan(
			&p.ID, &p.OwnerID, &p.SourceURL, &p.Title, &p.Description,
			&p.Location, &p.Price, &images, &p.Guests, &p.Bedrooms,
			&p.Bathrooms, &amenities, &p.HostName, &p.HostAvatar,
			&p.Rating, &p.ReviewCount, &lat, &lng, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}

		p.Images = images
		p.Amenities = amenities
		if lat.Valid {
			p.Lat = &lat.Float64
		}
		if lng.Valid {
			p.Lng = &lng.Float64
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
