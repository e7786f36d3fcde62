package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/phenokit/pkg/report"
)

const collectionName = "validation_runs"

// Connect dials MongoDB and verifies the connection with a ping, retrying
// so service startup survives a database that is still coming up.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, error) {
	for range cfg.RetryAttempts {
		client, err := mongo.Connect(
			options.Client().
				ApplyURI(cfg.ConnectionURL).
				SetConnectTimeout(cfg.ConnectTimeout).
				SetMaxPoolSize(cfg.MaxPoolSize).
				SetMinPoolSize(cfg.MinPoolSize).
				SetMaxConnIdleTime(cfg.MaxConnIdleTime),
		)
		if err == nil {
			if err := client.Ping(ctx, nil); err == nil {
				return client, nil
			}
			_ = client.Disconnect(ctx)
		}

		time.Sleep(cfg.RetryInterval)
	}

	return nil, ErrFailedToConnect
}

// Store implements report.Store on a MongoDB database.
type Store struct {
	coll *mongo.Collection
}

// New binds the store to the validation_runs collection of db.
func New(db *mongo.Database) *Store {
	return &Store{coll: db.Collection(collectionName)}
}

// runDoc is the stored shape. The run ID doubles as the document key so
// upserts are natural and lookups hit the _id index.
type runDoc struct {
	ID         string             `bson:"_id"`
	Meta       metaDoc            `bson:"meta"`
	Counts     countsDoc          `bson:"counts"`
	Rejections []report.Rejection `bson:"rejections,omitempty"`
}

type metaDoc struct {
	RunID        string    `bson:"run_id"`
	CreatedAt    time.Time `bson:"created_at"`
	Tool         string    `bson:"tool"`
	SchemaName   string    `bson:"schema_name"`
	SchemaDigest string    `bson:"schema_digest,omitempty"`
	Source       string    `bson:"source,omitempty"`
	SourceDigest string    `bson:"source_digest,omitempty"`
}

type countsDoc struct {
	Records    int `bson:"records"`
	Accepted   int `bson:"accepted"`
	Rejected   int `bson:"rejected"`
	Violations int `bson:"violations"`
}

func toDoc(r *report.Report) runDoc {
	return runDoc{
		ID: r.Meta.RunID.String(),
		Meta: metaDoc{
			RunID:        r.Meta.RunID.String(),
			CreatedAt:    r.Meta.CreatedAt,
			Tool:         r.Meta.Tool,
			SchemaName:   r.Meta.SchemaName,
			SchemaDigest: r.Meta.SchemaDigest,
			Source:       r.Meta.Source,
			SourceDigest: r.Meta.SourceDigest,
		},
		Counts: countsDoc{
			Records:    r.Counts.Records,
			Accepted:   r.Counts.Accepted,
			Rejected:   r.Counts.Rejected,
			Violations: r.Counts.Violations,
		},
		Rejections: r.Rejections,
	}
}

func (d runDoc) toReport() (*report.Report, error) {
	meta, err := d.Meta.toMeta()
	if err != nil {
		return nil, err
	}
	return &report.Report{
		Meta: meta,
		Counts: report.Counts{
			Records:    d.Counts.Records,
			Accepted:   d.Counts.Accepted,
			Rejected:   d.Counts.Rejected,
			Violations: d.Counts.Violations,
		},
		Rejections: d.Rejections,
	}, nil
}

func (d metaDoc) toMeta() (report.Meta, error) {
	runID, err := uuid.Parse(d.RunID)
	if err != nil {
		return report.Meta{}, fmt.Errorf("parse stored run id %q: %w", d.RunID, err)
	}
	return report.Meta{
		RunID:        runID,
		CreatedAt:    d.CreatedAt,
		Tool:         d.Tool,
		SchemaName:   d.SchemaName,
		SchemaDigest: d.SchemaDigest,
		Source:       d.Source,
		SourceDigest: d.SourceDigest,
	}, nil
}

// Save upserts the run document, replacing any previous report of the same
// run.
func (s *Store) Save(ctx context.Context, r *report.Report) error {
	if r == nil {
		return report.ErrNilReport
	}
	if r.Meta.RunID == uuid.Nil {
		return report.ErrMissingRunID
	}

	doc := toDoc(r)
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": doc.ID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save report %s: %w", r.Meta.RunID, err)
	}
	return nil
}

// Load reads one run document back into a report.
func (s *Store) Load(ctx context.Context, runID uuid.UUID) (*report.Report, error) {
	if runID == uuid.Nil {
		return nil, report.ErrMissingRunID
	}

	var doc runDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": runID.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", report.ErrNotFound, runID)
		}
		return nil, fmt.Errorf("load report %s: %w", runID, err)
	}
	return doc.toReport()
}

// List returns run metadata, newest first.
func (s *Store) List(ctx context.Context) ([]report.Meta, error) {
	cursor, err := s.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "meta.created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var metas []report.Meta
	for cursor.Next(ctx) {
		var doc runDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode report document: %w", err)
		}
		meta, err := doc.Meta.toMeta()
		if err != nil {
			return nil, err
		}
		metas = append(metas, meta)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return metas, nil
}
