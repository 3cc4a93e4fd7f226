package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/reco-labs/reco/core"
)

// SQLiteStore 是关系型商品存储：listings + sellers 两张表。
// 约束（价格/类目/地域）下推到 SQL，检索顺序为上架时间新→旧。
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite 打开（或创建）SQLite 商品库并初始化 schema。
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}

	s := &SQLiteStore{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return s, nil
}

// MustOpenSQLite 是 OpenSQLite 的 panic 版本（示例/测试用）。
func MustOpenSQLite(dsn string) *SQLiteStore {
	s, err := OpenSQLite(dsn)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *SQLiteStore) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sellers (
			seller_id TEXT PRIMARY KEY,
			seller_name TEXT NOT NULL,
			trust_safety REAL NOT NULL DEFAULT 50,
			quality_condition REAL NOT NULL DEFAULT 50,
			remote_preference REAL NOT NULL DEFAULT 50,
			activity_responsiveness REAL NOT NULL DEFAULT 50,
			price_flexibility REAL NOT NULL DEFAULT 50,
			total_sales INTEGER NOT NULL DEFAULT 0,
			avg_rating REAL NOT NULL DEFAULT 0,
			response_time_hours REAL NOT NULL DEFAULT 24
		)`,
		`CREATE TABLE IF NOT EXISTS listings (
			listing_id TEXT PRIMARY KEY,
			seller_id TEXT NOT NULL REFERENCES sellers(seller_id),
			title TEXT NOT NULL,
			price REAL NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			condition TEXT NOT NULL DEFAULT 'used',
			location TEXT NOT NULL DEFAULT '',
			view_count INTEGER NOT NULL DEFAULT 0,
			like_count INTEGER NOT NULL DEFAULT 0,
			listed_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_listings_category ON listings(category)`,
		`CREATE INDEX IF NOT EXISTS idx_listings_listed_at ON listings(listed_at DESC)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Name() string { return "sqlite" }

// PutSeller 写入/更新卖家（seed/同步任务用）。
func (s *SQLiteStore) PutSeller(ctx context.Context, seller *core.Seller) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sellers (
			seller_id, seller_name,
			trust_safety, quality_condition, remote_preference,
			activity_responsiveness, price_flexibility,
			total_sales, avg_rating, response_time_hours
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(seller_id) DO UPDATE SET
			seller_name = excluded.seller_name,
			trust_safety = excluded.trust_safety,
			quality_condition = excluded.quality_condition,
			remote_preference = excluded.remote_preference,
			activity_responsiveness = excluded.activity_responsiveness,
			price_flexibility = excluded.price_flexibility,
			total_sales = excluded.total_sales,
			avg_rating = excluded.avg_rating,
			response_time_hours = excluded.response_time_hours`,
		seller.ID, seller.Name,
		seller.Axes.TrustSafety, seller.Axes.QualityCondition, seller.Axes.RemotePreference,
		seller.Axes.ActivityResponsiveness, seller.Axes.PriceFlexibility,
		seller.TotalSales, seller.AvgRating, seller.ResponseTimeHours,
	)
	if err != nil {
		return fmt.Errorf("put seller %s: %w", seller.ID, err)
	}
	return nil
}

// PutListing 写入/更新商品（seed/同步任务用）。
func (s *SQLiteStore) PutListing(ctx context.Context, c *core.Candidate, listedAt time.Time) error {
	if c.Seller == nil {
		return fmt.Errorf("listing %s has no seller", c.ID)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO listings (
			listing_id, seller_id, title, price, category, condition, location,
			view_count, like_count, listed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(listing_id) DO UPDATE SET
			seller_id = excluded.seller_id,
			title = excluded.title,
			price = excluded.price,
			category = excluded.category,
			condition = excluded.condition,
			location = excluded.location,
			view_count = excluded.view_count,
			like_count = excluded.like_count,
			listed_at = excluded.listed_at`,
		c.ID, c.Seller.ID, c.Title, c.Price, c.Category, c.Condition, c.Location,
		c.ViewCount, c.LikeCount, listedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("put listing %s: %w", c.ID, err)
	}
	return nil
}

// FindCandidates 带约束下推的检索，JOIN 卖家快照。
// 关键词按 title LIKE 匹配（任一命中即保留），相关性为命中比例。
func (s *SQLiteStore) FindCandidates(ctx context.Context, q core.ListingQuery) ([]*core.Candidate, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	var (
		where []string
		args  []any
	)

	keywords := q.Keywords
	if len(keywords) == 0 && strings.TrimSpace(q.Query) != "" {
		keywords = strings.Fields(strings.ToLower(q.Query))
	}
	if len(keywords) > 0 {
		likes := make([]string, 0, len(keywords))
		for _, kw := range keywords {
			likes = append(likes, "lower(l.title) LIKE ?")
			args = append(args, "%"+strings.ToLower(kw)+"%")
		}
		where = append(where, "("+strings.Join(likes, " OR ")+")")
	}
	if q.PriceMin != nil {
		where = append(where, "l.price >= ?")
		args = append(args, *q.PriceMin)
	}
	if q.PriceMax != nil {
		where = append(where, "l.price <= ?")
		args = append(args, *q.PriceMax)
	}
	if q.Category != "" {
		where = append(where, "l.category = ?")
		args = append(args, q.Category)
	}
	if q.Location != "" {
		where = append(where, "lower(l.location) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Location)+"%")
	}

	query := `
		SELECT
			l.listing_id, l.title, l.price, l.category, l.condition, l.location,
			l.view_count, l.like_count,
			s.seller_id, s.seller_name,
			s.trust_safety, s.quality_condition, s.remote_preference,
			s.activity_responsiveness, s.price_flexibility,
			s.total_sales, s.avg_rating, s.response_time_hours
		FROM listings l
		JOIN sellers s ON l.seller_id = s.seller_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY l.listed_at DESC, l.listing_id LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()

	var out []*core.Candidate
	for rows.Next() {
		c := core.NewCandidate("")
		seller := &core.Seller{}
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Price, &c.Category, &c.Condition, &c.Location,
			&c.ViewCount, &c.LikeCount,
			&seller.ID, &seller.Name,
			&seller.Axes.TrustSafety, &seller.Axes.QualityCondition, &seller.Axes.RemotePreference,
			&seller.Axes.ActivityResponsiveness, &seller.Axes.PriceFlexibility,
			&seller.TotalSales, &seller.AvgRating, &seller.ResponseTimeHours,
		); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		c.Seller = seller
		if rel, ok := keywordRelevance(c.Title, q); ok {
			c.Relevance = rel
			out = append(out, c)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

var _ core.ListingStore = (*SQLiteStore)(nil)
