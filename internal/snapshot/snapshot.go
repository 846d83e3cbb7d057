// Package snapshot turns reflected schema metadata into versioned YAML
// documents and defines the Store interface for keeping them in an object
// store. Providers (MinIO today) live in subpackages; callers depend only
// on this package.
package snapshot

import (
	"context"
	"fmt"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/sqlweft/sqlweft/internal/database/mysql"
	"github.com/sqlweft/sqlweft/internal/errs"
	"github.com/sqlweft/sqlweft/internal/schema"
)

// Store is the write-side interface all snapshot storage providers
// implement.
type Store interface {
	// Ping verifies the storage backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any held resources.
	Close() error

	// EnsureBucket creates the bucket if it does not exist yet.
	EnsureBucket(ctx context.Context, bucket string) error

	// Put uploads one encoded snapshot document under key.
	Put(ctx context.Context, bucket, key string, data []byte) error

	// Get downloads the snapshot document stored under key.
	Get(ctx context.Context, bucket, key string) ([]byte, error)
}

// Config holds the settings for a snapshot storage backend.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
	Bucket    string
}

// Document is the serialized form of one schema snapshot.
type Document struct {
	Database string     `yaml:"database"`
	TakenAt  time.Time  `yaml:"taken_at"`
	Tables   []TableDoc `yaml:"tables"`
}

// TableDoc is one table inside a Document.
type TableDoc struct {
	Name    string      `yaml:"name"`
	Engine  string      `yaml:"engine,omitempty"`
	Columns []ColumnDoc `yaml:"columns"`
}

// ColumnDoc is one column inside a TableDoc. Type carries the rendered
// vendor type syntax so snapshots diff cleanly as text.
type ColumnDoc struct {
	Name       string  `yaml:"name"`
	Type       string  `yaml:"type"`
	Nullable   bool    `yaml:"nullable"`
	PrimaryKey bool    `yaml:"primary_key,omitempty"`
	Default    *string `yaml:"default,omitempty"`
	ForeignKey string  `yaml:"foreign_key,omitempty"`
}

// Build converts a reflected schema into a snapshot document.
func Build(info *schema.SchemaInfo, at time.Time) *Document {
	doc := &Document{Database: info.Database, TakenAt: at.UTC()}
	for _, tbl := range info.Tables {
		td := TableDoc{Name: tbl.Name, Engine: tbl.Engine}
		for _, col := range tbl.Columns {
			cd := ColumnDoc{
				Name:       col.Name,
				Type:       mysql.TypeSpec(col.Type),
				Nullable:   col.Nullable,
				PrimaryKey: col.PrimaryKey,
				Default:    col.Default,
			}
			if col.ForeignKey != nil {
				cd.ForeignKey = col.ForeignKey.String()
			}
			td.Columns = append(td.Columns, cd)
		}
		doc.Tables = append(doc.Tables, td)
	}
	return doc
}

// Encode renders the document as YAML.
func (d *Document) Encode() ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "encode snapshot", err)
	}
	return data, nil
}

// Key returns the object key for a snapshot of database taken at the given
// time: <database>/<timestamp>.yaml.
func Key(database string, at time.Time) string {
	return fmt.Sprintf("%s/%s.yaml", database, at.UTC().Format("20060102T150405Z"))
}
