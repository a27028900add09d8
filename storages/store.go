// Package storages keeps named snapshots in a sqlite database.
package storages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/reusee/stepviz/logs"
	"github.com/reusee/stepviz/snapshots"
	_ "modernc.org/sqlite"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

const schema = `
create table if not exists snapshots (
	program text not null,
	name text not null,
	data blob not null,
	updated_at integer not null,
	primary key (program, name)
)
`

type Store struct {
	db     *sql.DB
	logger logs.Logger
}

// Entry describes one stored snapshot.
type Entry struct {
	Program   string
	Name      string
	Elements  int
	UpdatedAt time.Time
}

func Open(ctx context.Context, path string, logger logs.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// a single connection serializes writers
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, "pragma busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	logger.DebugContext(ctx, "snapshot store opened", "path", path)
	return &Store{
		db:     db,
		logger: logger,
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores snapshot under (program, name), replacing any previous one.
func (s *Store) Save(ctx context.Context, program string, name string, snapshot snapshots.Snapshot) error {
	data, err := snapshots.MarshalCBOR(snapshot)
	if err != nil {
		return err
	}
	err = s.withTx(ctx, func(tx Tx) error {
		_, err := tx.Exec(ctx, `
			insert into snapshots (program, name, data, updated_at)
			values (?, ?, ?, ?)
			on conflict (program, name) do update set
				data = excluded.data,
				updated_at = excluded.updated_at
		`, program, name, data, time.Now().UnixNano())
		return err
	})
	if err != nil {
		return fmt.Errorf("save %s/%s: %w", program, name, err)
	}
	s.logger.InfoContext(ctx, "snapshot saved",
		"program", program,
		"name", name,
		"elements", snapshot.Len(),
	)
	return nil
}

func (s *Store) Load(ctx context.Context, program string, name string) (ret snapshots.Snapshot, err error) {
	var data []byte
	err = s.db.QueryRowContext(ctx,
		`select data from snapshots where program = ? and name = ?`,
		program, name,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return ret, fmt.Errorf("%w: %s/%s", ErrSnapshotNotFound, program, name)
	}
	if err != nil {
		return ret, err
	}
	return snapshots.UnmarshalCBOR(data)
}

// List returns entries of program ordered by name.
func (s *Store) List(ctx context.Context, program string) (ret []Entry, err error) {
	err = s.withTx(ctx, func(tx Tx) error {
		rows, err := tx.Query(ctx,
			`select name, data, updated_at from snapshots where program = ? order by name`,
			program,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var name string
			var data []byte
			var updatedAt int64
			if err := rows.Scan(&name, &data, &updatedAt); err != nil {
				return err
			}
			snapshot, err := snapshots.UnmarshalCBOR(data)
			if err != nil {
				return fmt.Errorf("decode %s/%s: %w", program, name, err)
			}
			ret = append(ret, Entry{
				Program:   program,
				Name:      name,
				Elements:  snapshot.Len(),
				UpdatedAt: time.Unix(0, updatedAt),
			})
		}
		return rows.Err()
	})
	return
}

func (s *Store) Delete(ctx context.Context, program string, name string) error {
	return s.withTx(ctx, func(tx Tx) error {
		res, err := tx.Exec(ctx,
			`delete from snapshots where program = ? and name = ?`,
			program, name,
		)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: %s/%s", ErrSnapshotNotFound, program, name)
		}
		return nil
	})
}
