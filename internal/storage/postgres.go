package storage

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/protobuf/types/known/anypb"

	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

// postgresSchema is applied once at startup by whoever owns migrations in
// the deployment; it is documented here rather than embedded as a
// migration runner, matching how the rest of this module stays free of a
// migration-framework dependency.
//
//	CREATE TABLE events (
//	    domain TEXT NOT NULL, root BYTEA NOT NULL, sequence INT NOT NULL,
//	    type_url TEXT NOT NULL, payload BYTEA NOT NULL,
//	    PRIMARY KEY (domain, root, sequence));
//	CREATE TABLE snapshots (
//	    domain TEXT NOT NULL, root BYTEA NOT NULL, sequence INT NOT NULL,
//	    type_url TEXT NOT NULL, payload BYTEA NOT NULL,
//	    PRIMARY KEY (domain, root));
//	CREATE TABLE editions (
//	    domain TEXT NOT NULL, name TEXT NOT NULL, divergence_sequence INT NOT NULL,
//	    PRIMARY KEY (domain, name));
//	CREATE TABLE edition_events (
//	    edition TEXT NOT NULL, domain TEXT NOT NULL, root BYTEA NOT NULL,
//	    sequence INT NOT NULL, type_url TEXT NOT NULL, payload BYTEA NOT NULL,
//	    PRIMARY KEY (edition, domain, root, sequence));
const postgresSchema = ""

// Postgres is the pgx-backed Storage Adapter. Every Append is a single
// SERIALIZABLE transaction: the CAS check (current max sequence) and the
// insert happen inside it, so two concurrent appenders to one stream cannot
// both commit at the same sequence.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects using dsn (a standard postgres:// connection string).
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool connect: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so streamLength can
// run either inside Append's transaction or standalone from Load.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (p *Postgres) streamLength(ctx context.Context, q querier, domain string, root []byte) (uint32, error) {
	row := q.QueryRow(ctx,
		`SELECT COALESCE(MAX(sequence) + 1, 0) FROM events WHERE domain = $1 AND root = $2`,
		domain, root)
	var n uint32
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("stream length: %w", err)
	}
	return n, nil
}

func (p *Postgres) Append(ctx context.Context, cover *pb.Cover, pages []*pb.EventPage, expectedSeq uint32, force bool) (*pb.EventBook, error) {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	root := cover.GetRoot().GetValue()
	cur, err := p.streamLength(ctx, tx, cover.GetDomain(), root)
	if err != nil {
		return nil, err
	}
	if !force && cur != expectedSeq {
		return nil, &ErrConcurrencyConflict{Actual: cur}
	}

	insert := sq.Insert("events").Columns("domain", "root", "sequence", "type_url", "payload").PlaceholderFormat(sq.Dollar)
	next := cur
	for _, page := range pages {
		insert = insert.Values(cover.GetDomain(), root, next, page.GetEvent().GetTypeUrl(), page.GetEvent().GetValue())
		page.Sequence = next
		next++
	}
	if len(pages) > 0 {
		sqlStr, args, err := insert.ToSql()
		if err != nil {
			return nil, fmt.Errorf("build insert: %w", err)
		}
		if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
			return nil, fmt.Errorf("insert events: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return p.Load(ctx, cover, 0, nil, true)
}

func (p *Postgres) Load(ctx context.Context, cover *pb.Cover, fromSeq uint32, toSeq *uint32, useSnapshot bool) (*pb.EventBook, error) {
	root := cover.GetRoot().GetValue()
	start := fromSeq
	var snap *pb.Snapshot
	if useSnapshot {
		row := p.pool.QueryRow(ctx,
			`SELECT sequence, type_url, payload FROM snapshots WHERE domain = $1 AND root = $2`,
			cover.GetDomain(), root)
		var seq uint32
		var typeURL string
		var payload []byte
		switch err := row.Scan(&seq, &typeURL, &payload); {
		case err == nil && seq+1 > start:
			snap = &pb.Snapshot{Sequence: seq, State: &anypb.Any{TypeUrl: typeURL, Value: payload}}
			start = seq + 1
		case err != nil && !errors.Is(err, pgx.ErrNoRows):
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
	}

	query := sq.Select("sequence", "type_url", "payload").From("events").
		Where(sq.Eq{"domain": cover.GetDomain(), "root": root}).
		Where(sq.GtOrEq{"sequence": start}).
		OrderBy("sequence ASC").PlaceholderFormat(sq.Dollar)
	if toSeq != nil {
		query = query.Where(sq.Lt{"sequence": *toSeq})
	}
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	rows, err := p.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	defer rows.Close()

	var pages []*pb.EventPage
	for rows.Next() {
		var seq uint32
		var typeURL string
		var payload []byte
		if err := rows.Scan(&seq, &typeURL, &payload); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		pages = append(pages, &pb.EventPage{Sequence: seq, Event: &anypb.Any{TypeUrl: typeURL, Value: payload}})
	}

	next, err := p.streamLength(ctx, p.pool, cover.GetDomain(), root)
	if err != nil {
		return nil, err
	}
	return &pb.EventBook{Cover: cover, Snapshot: snap, Pages: pages, NextSequence: next}, nil
}

func (p *Postgres) WriteSnapshot(ctx context.Context, cover *pb.Cover, snapshot *pb.Snapshot) error {
	state := snapshot.GetState()
	_, err := p.pool.Exec(ctx, `
		INSERT INTO snapshots (domain, root, sequence, type_url, payload)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (domain, root) DO UPDATE SET sequence = $3, type_url = $4, payload = $5`,
		cover.GetDomain(), cover.GetRoot().GetValue(), snapshot.GetSequence(), state.GetTypeUrl(), state.GetValue())
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func (p *Postgres) ListRoots(ctx context.Context, domain string) (<-chan *pb.AggregateRoot, error) {
	rows, err := p.pool.Query(ctx, `SELECT DISTINCT root FROM events WHERE domain = $1 ORDER BY root`, domain)
	if err != nil {
		return nil, fmt.Errorf("list roots: %w", err)
	}
	out := make(chan *pb.AggregateRoot)
	go func() {
		defer close(out)
		defer rows.Close()
		for rows.Next() {
			var root []byte
			if err := rows.Scan(&root); err != nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			case out <- &pb.AggregateRoot{Domain: domain, Root: &pb.UUID{Value: root}}:
			}
		}
	}()
	return out, nil
}

func (p *Postgres) CreateEdition(ctx context.Context, desc *pb.EditionDescriptor) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO editions (domain, name, divergence_sequence) VALUES ($1, $2, $3)`,
		desc.GetDomain(), desc.GetName(), desc.GetDivergenceSequence())
	if err != nil {
		return ErrEditionExists
	}
	return nil
}

func (p *Postgres) DeleteEdition(ctx context.Context, domain, name string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM editions WHERE domain = $1 AND name = $2`, domain, name)
	if err != nil {
		return fmt.Errorf("delete edition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEditionNotFound
	}
	_, err = p.pool.Exec(ctx, `DELETE FROM edition_events WHERE edition = $1 AND domain = $2`, name, domain)
	return err
}

func (p *Postgres) editionDescriptor(ctx context.Context, domain, name string) (uint32, error) {
	row := p.pool.QueryRow(ctx, `SELECT divergence_sequence FROM editions WHERE domain = $1 AND name = $2`, domain, name)
	var div uint32
	if err := row.Scan(&div); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrEditionNotFound
		}
		return 0, fmt.Errorf("edition descriptor: %w", err)
	}
	return div, nil
}

func (p *Postgres) EditionLoad(ctx context.Context, edition string, cover *pb.Cover, fromSeq uint32, toSeq *uint32) (*pb.EventBook, error) {
	div, err := p.editionDescriptor(ctx, cover.GetDomain(), edition)
	if err != nil {
		return nil, err
	}
	main, err := p.Load(ctx, cover, fromSeq, &div, true)
	if err != nil {
		return nil, err
	}

	start := fromSeq
	if div > start {
		start = div
	}
	query := sq.Select("sequence", "type_url", "payload").From("edition_events").
		Where(sq.Eq{"edition": edition, "domain": cover.GetDomain(), "root": cover.GetRoot().GetValue()}).
		Where(sq.GtOrEq{"sequence": start}).OrderBy("sequence ASC").PlaceholderFormat(sq.Dollar)
	if toSeq != nil {
		query = query.Where(sq.Lt{"sequence": *toSeq})
	}
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build edition select: %w", err)
	}
	rows, err := p.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("load edition events: %w", err)
	}
	defer rows.Close()

	pages := append([]*pb.EventPage{}, main.Pages...)
	var lastSeq = div
	for rows.Next() {
		var seq uint32
		var typeURL string
		var payload []byte
		if err := rows.Scan(&seq, &typeURL, &payload); err != nil {
			return nil, fmt.Errorf("scan edition event: %w", err)
		}
		pages = append(pages, &pb.EventPage{Sequence: seq, Event: &anypb.Any{TypeUrl: typeURL, Value: payload}})
		lastSeq = seq + 1
	}
	return &pb.EventBook{Cover: cover, Snapshot: main.Snapshot, Pages: pages, NextSequence: lastSeq}, nil
}

func (p *Postgres) EditionAppend(ctx context.Context, edition string, cover *pb.Cover, pages []*pb.EventPage, expectedSeq uint32, force bool) (*pb.EventBook, error) {
	div, err := p.editionDescriptor(ctx, cover.GetDomain(), edition)
	if err != nil {
		return nil, err
	}
	root := cover.GetRoot().GetValue()
	row := p.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(sequence) + 1, $3) FROM edition_events WHERE edition = $1 AND domain = $2 AND root = $4`,
		edition, cover.GetDomain(), div, root)
	var cur uint32
	if err := row.Scan(&cur); err != nil {
		return nil, fmt.Errorf("edition stream length: %w", err)
	}
	if !force && cur != expectedSeq {
		return nil, &ErrConcurrencyConflict{Actual: cur}
	}

	insert := sq.Insert("edition_events").Columns("edition", "domain", "root", "sequence", "type_url", "payload").PlaceholderFormat(sq.Dollar)
	next := cur
	for _, page := range pages {
		insert = insert.Values(edition, cover.GetDomain(), root, next, page.GetEvent().GetTypeUrl(), page.GetEvent().GetValue())
		page.Sequence = next
		next++
	}
	if len(pages) > 0 {
		sqlStr, args, err := insert.ToSql()
		if err != nil {
			return nil, fmt.Errorf("build edition insert: %w", err)
		}
		if _, err := p.pool.Exec(ctx, sqlStr, args...); err != nil {
			return nil, fmt.Errorf("insert edition events: %w", err)
		}
	}
	return &pb.EventBook{Cover: cover, Pages: pages, NextSequence: next}, nil
}

func (p *Postgres) Close() {
	p.pool.Close()
}

var _ Adapter = (*Postgres)(nil)
