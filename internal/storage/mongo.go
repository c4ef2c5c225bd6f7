package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"ics-crawler/internal/stats"
)

const (
	DefaultDatabase   = "icsCrawl"
	pagesCollection   = "pages"
	reportsCollection = "reports"
)

// PageRecord is one processed page as stored in the pages collection.
type PageRecord struct {
	Session   string    `bson:"session"`
	URL       string    `bson:"url"`
	Host      string    `bson:"host"`
	Title     string    `bson:"title"`
	Words     int       `bson:"words"`
	Links     int       `bson:"links"`
	FetchedAt time.Time `bson:"fetched_at"`
}

// ReportRecord is the end-of-crawl statistics snapshot.
type ReportRecord struct {
	Session    string       `bson:"session"`
	FinishedAt time.Time    `bson:"finished_at"`
	Report     stats.Report `bson:"report"`
}

// Store persists crawl output to MongoDB. A Store built without a URI is a
// no-op so the crawler runs without a database.
type Store struct {
	client  *mongo.Client
	pages   *mongo.Collection
	reports *mongo.Collection
	session string
	logger  *zap.Logger
}

// Noop returns a Store that accepts and drops every record.
func Noop() *Store {
	return &Store{session: uuid.NewString(), logger: zap.NewNop()}
}

// New connects to uri and selects database db. An empty uri returns a
// no-op Store.
func New(ctx context.Context, uri, db string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := Noop()
	s.logger = logger
	if uri == "" {
		logger.Info("mongodb disabled, running in no-op mode")
		return s, nil
	}
	if db == "" {
		db = DefaultDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	database := client.Database(db)
	s.client = client
	s.pages = database.Collection(pagesCollection)
	s.reports = database.Collection(reportsCollection)
	logger.Info("mongodb connected", zap.String("database", db), zap.String("session", s.session))
	return s, nil
}

// Enabled reports whether the Store writes anywhere.
func (s *Store) Enabled() bool { return s.client != nil }

// Session is the id stamped on every record written by this Store.
func (s *Store) Session() string { return s.session }

// SavePage stores one page record.
func (s *Store) SavePage(ctx context.Context, rec PageRecord) error {
	if s.client == nil {
		return nil
	}
	rec.Session = s.session
	if rec.FetchedAt.IsZero() {
		rec.FetchedAt = time.Now().UTC()
	}
	if _, err := s.pages.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert page %s: %w", rec.URL, err)
	}
	return nil
}

// SaveReport stores the final statistics snapshot.
func (s *Store) SaveReport(ctx context.Context, r stats.Report) error {
	if s.client == nil {
		return nil
	}
	rec := ReportRecord{Session: s.session, FinishedAt: time.Now().UTC(), Report: r}
	if _, err := s.reports.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
