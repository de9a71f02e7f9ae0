package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"sniper-agent/models"
)

// PostgresStore persists listings, deals and alerts to PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use store.
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

	s := &PostgresStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return s, nil
}

func (s *PostgresStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS listings (
			id             BIGSERIAL PRIMARY KEY,
			source         VARCHAR(50)  NOT NULL,
			external_id    VARCHAR(100) NOT NULL,
			title          TEXT         NOT NULL DEFAULT '',
			description    TEXT         NOT NULL DEFAULT '',
			price          NUMERIC(12,2),
			currency       VARCHAR(10)  NOT NULL DEFAULT '',
			url            TEXT         NOT NULL,
			location       TEXT         NOT NULL DEFAULT '',
			category       TEXT         NOT NULL DEFAULT '',
			posted_at      TIMESTAMPTZ,
			seller_contact TEXT         NOT NULL DEFAULT '',
			is_active      BOOLEAN      NOT NULL DEFAULT TRUE,
			last_seen_at   TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
			attributes     JSONB        NOT NULL DEFAULT '{}',
			created_at     TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
			UNIQUE (source, external_id)
		);

		CREATE INDEX IF NOT EXISTS idx_listings_source    ON listings(source);
		CREATE INDEX IF NOT EXISTS idx_listings_is_active ON listings(is_active);

		CREATE TABLE IF NOT EXISTS deals (
			id               BIGSERIAL PRIMARY KEY,
			listing_id       BIGINT NOT NULL UNIQUE REFERENCES listings(id) ON DELETE CASCADE,
			status           VARCHAR(30)   NOT NULL DEFAULT 'new',
			score            NUMERIC(10,4) NOT NULL DEFAULT 0,
			estimated_margin NUMERIC(12,2) NOT NULL DEFAULT 0,
			currency         VARCHAR(10)   NOT NULL DEFAULT '',
			notes            TEXT          NOT NULL DEFAULT '',
			created_at       TIMESTAMPTZ   NOT NULL DEFAULT NOW(),
			updated_at       TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_deals_status ON deals(status);

		CREATE TABLE IF NOT EXISTS alerts (
			id         BIGSERIAL PRIMARY KEY,
			deal_id    BIGINT NOT NULL REFERENCES deals(id) ON DELETE CASCADE,
			channel    VARCHAR(30) NOT NULL,
			status     VARCHAR(30) NOT NULL DEFAULT 'pending',
			message    TEXT        NOT NULL DEFAULT '',
			sent_at    TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_alerts_deal_channel ON alerts(deal_id, channel);
		CREATE INDEX IF NOT EXISTS idx_alerts_status       ON alerts(status);
	`)
	return err
}

// UpsertListing inserts or updates by (source, external_id). Provided
// non-null/non-empty fields replace stored values; last_seen_at is always
// refreshed; attributes merge over the stored map.
func (s *PostgresStore) UpsertListing(l *models.NormalizedListing) (int64, bool, error) {
	if _, _, ok := l.NaturalKey(); !ok {
		return 0, false, ErrMissingKey
	}

	lastSeen := l.LastSeenAt
	if lastSeen.IsZero() {
		lastSeen = time.Now().UTC()
	}

	attrs, err := json.Marshal(nonNilAttributes(l.Attributes))
	if err != nil {
		return 0, false, fmt.Errorf("postgres: marshal attributes: %w", err)
	}

	var price sql.NullFloat64
	if l.Price != nil {
		price = sql.NullFloat64{Float64: *l.Price, Valid: true}
	}

	var id int64
	var created bool
	err = s.db.QueryRow(`
		INSERT INTO listings (
			source, external_id, title, description, price, currency, url,
			location, category, posted_at, seller_contact, is_active,
			last_seen_at, attributes
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (source, external_id) DO UPDATE SET
			title          = COALESCE(NULLIF(EXCLUDED.title, ''), listings.title),
			description    = COALESCE(NULLIF(EXCLUDED.description, ''), listings.description),
			price          = COALESCE(EXCLUDED.price, listings.price),
			currency       = COALESCE(NULLIF(EXCLUDED.currency, ''), listings.currency),
			url            = COALESCE(NULLIF(EXCLUDED.url, ''), listings.url),
			location       = COALESCE(NULLIF(EXCLUDED.location, ''), listings.location),
			category       = COALESCE(NULLIF(EXCLUDED.category, ''), listings.category),
			posted_at      = COALESCE(EXCLUDED.posted_at, listings.posted_at),
			seller_contact = COALESCE(NULLIF(EXCLUDED.seller_contact, ''), listings.seller_contact),
			is_active      = EXCLUDED.is_active,
			last_seen_at   = EXCLUDED.last_seen_at,
			attributes     = listings.attributes || EXCLUDED.attributes
		RETURNING id, (xmax = 0) AS created
	`,
		l.Source, l.ExternalID, l.Title, l.Description, price, l.Currency,
		l.URL, l.Location, l.Category, l.PostedAt, l.SellerContact,
		l.IsActive, lastSeen, attrs,
	).Scan(&id, &created)
	if err != nil {
		return 0, false, fmt.Errorf("postgres: upsert listing: %w", err)
	}
	return id, created, nil
}

// ListActiveListings returns all listings with is_active=true.
func (s *PostgresStore) ListActiveListings() ([]*models.Listing, error) {
	rows, err := s.db.Query(`
		SELECT id, source, external_id, title, description, price, currency,
		       url, location, category, posted_at, seller_contact, is_active,
		       last_seen_at, attributes, created_at
		FROM listings
		WHERE is_active = TRUE
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: list active listings: %w", err)
	}
	defer rows.Close()

	var listings []*models.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func scanListing(rows *sql.Rows) (*models.Listing, error) {
	l := &models.Listing{}
	var price sql.NullFloat64
	var postedAt sql.NullTime
	var attrs []byte

	if err := rows.Scan(
		&l.ID, &l.Source, &l.ExternalID, &l.Title, &l.Description, &price,
		&l.Currency, &l.URL, &l.Location, &l.Category, &postedAt,
		&l.SellerContact, &l.IsActive, &l.LastSeenAt, &attrs, &l.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("postgres: scan listing: %w", err)
	}

	if price.Valid {
		l.Price = &price.Float64
	}
	if postedAt.Valid {
		t := postedAt.Time
		l.PostedAt = &t
	}
	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &l.Attributes); err != nil {
			return nil, fmt.Errorf("postgres: unmarshal attributes: %w", err)
		}
	}
	return l, nil
}

// UpsertDeal creates or overwrites the 1:1 deal for a listing.
func (s *PostgresStore) UpsertDeal(listingID int64, status string, score, estimatedMargin float64, currency, reason string) (*models.Deal, bool, error) {
	d := &models.Deal{}
	var created bool
	err := s.db.QueryRow(`
		INSERT INTO deals (listing_id, status, score, estimated_margin, currency, notes)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (listing_id) DO UPDATE SET
			status           = EXCLUDED.status,
			score            = EXCLUDED.score,
			estimated_margin = EXCLUDED.estimated_margin,
			currency         = EXCLUDED.currency,
			notes            = EXCLUDED.notes,
			updated_at       = NOW()
		RETURNING id, listing_id, status, score, estimated_margin, currency,
		          notes, created_at, updated_at, (xmax = 0) AS created
	`, listingID, status, score, estimatedMargin, currency, reason).Scan(
		&d.ID, &d.ListingID, &d.Status, &d.Score, &d.EstimatedMargin,
		&d.Currency, &d.Notes, &d.CreatedAt, &d.UpdatedAt, &created,
	)
	if err != nil {
		return nil, false, fmt.Errorf("postgres: upsert deal: %w", err)
	}
	return d, created, nil
}

// ListEligibleDeals returns eligible deals newest first, each joined with
// its listing for message building.
func (s *PostgresStore) ListEligibleDeals() ([]*models.Deal, error) {
	rows, err := s.db.Query(`
		SELECT d.id, d.listing_id, d.status, d.score, d.estimated_margin,
		       d.currency, d.notes, d.created_at, d.updated_at,
		       l.id, l.source, l.external_id, l.title, l.description,
		       l.price, l.currency, l.url, l.location, l.category,
		       l.posted_at, l.seller_contact, l.is_active, l.last_seen_at,
		       l.attributes, l.created_at
		FROM deals d
		JOIN listings l ON l.id = d.listing_id
		WHERE d.status = 'eligible'
		ORDER BY d.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: list eligible deals: %w", err)
	}
	defer rows.Close()

	var deals []*models.Deal
	for rows.Next() {
		d := &models.Deal{Listing: &models.Listing{}}
		l := d.Listing
		var price sql.NullFloat64
		var postedAt sql.NullTime
		var attrs []byte

		if err := rows.Scan(
			&d.ID, &d.ListingID, &d.Status, &d.Score, &d.EstimatedMargin,
			&d.Currency, &d.Notes, &d.CreatedAt, &d.UpdatedAt,
			&l.ID, &l.Source, &l.ExternalID, &l.Title, &l.Description,
			&price, &l.Currency, &l.URL, &l.Location, &l.Category,
			&postedAt, &l.SellerContact, &l.IsActive, &l.LastSeenAt,
			&attrs, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan deal: %w", err)
		}

		if price.Valid {
			l.Price = &price.Float64
		}
		if postedAt.Valid {
			t := postedAt.Time
			l.PostedAt = &t
		}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &l.Attributes); err != nil {
				return nil, fmt.Errorf("postgres: unmarshal attributes: %w", err)
			}
		}
		deals = append(deals, d)
	}
	return deals, rows.Err()
}

// AlertExists reports whether an alert with the given status exists for
// the (deal, channel) pair.
func (s *PostgresStore) AlertExists(dealID int64, channel, status string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM alerts
			WHERE deal_id = $1 AND channel = $2 AND status = $3
		)
	`, dealID, channel, status).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("postgres: alert exists: %w", err)
	}
	return exists, nil
}

// InsertAlert records a new delivery attempt.
func (s *PostgresStore) InsertAlert(dealID int64, channel, status, message string) (*models.Alert, error) {
	a := &models.Alert{DealID: dealID, Channel: channel, Status: status, Message: message}
	err := s.db.QueryRow(`
		INSERT INTO alerts (deal_id, channel, status, message)
		VALUES ($1,$2,$3,$4)
		RETURNING id
	`, dealID, channel, status, message).Scan(&a.ID)
	if err != nil {
		return nil, fmt.Errorf("postgres: insert alert: %w", err)
	}
	return a, nil
}

// UpdateAlertStatus transitions an alert; sent_at is stamped when the
// alert reaches "sent".
func (s *PostgresStore) UpdateAlertStatus(alertID int64, status string) error {
	_, err := s.db.Exec(`
		UPDATE alerts
		SET status = $2,
		    sent_at = CASE WHEN $2 = 'sent' THEN NOW() ELSE sent_at END
		WHERE id = $1
	`, alertID, status)
	if err != nil {
		return fmt.Errorf("postgres: update alert status: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func nonNilAttributes(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
