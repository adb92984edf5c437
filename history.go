package main

import (
	"database/sql"
	"fmt"
	"io"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"osuplay/dotosu"
	"osuplay/playfield"
)

// Play is one finished (or abandoned) run through a chart.
type Play struct {
	Checksum string
	Title    string
	Version  string
	Score    int
	Hits     int
	Misses   int
	PlayedAt time.Time
}

func newPlay(b *dotosu.Beatmap, st playfield.Stats, at time.Time) Play {
	return Play{
		Checksum: b.Checksum,
		Title:    b.Metadata.Title,
		Version:  b.Metadata.Version,
		Score:    st.Score,
		Hits:     st.Hits,
		Misses:   st.Misses,
		PlayedAt: at,
	}
}

// Accuracy is hits over judged objects, 0 when nothing was judged.
func (p Play) Accuracy() float64 {
	n := p.Hits + p.Misses
	if n == 0 {
		return 0
	}
	return float64(p.Hits) / float64(n)
}

type History struct {
	db *sql.DB
}

func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	initStatement := `
	create table if not exists plays
	  (
		  id integer not null primary key,
		  sum text not null,
		  title text,
		  version text,
		  score integer,
		  hits integer,
		  misses integer,
		  played_at integer
	  );
	create index if not exists plays_sum on plays(sum);
	`
	if _, err = db.Exec(initStatement); nil != err {
		db.Close()
		return nil, fmt.Errorf("init %s: %w", path, err)
	}
	return &History{db: db}, nil
}

func (h *History) Close() error {
	if nil == h.db {
		return nil
	}
	return h.db.Close()
}

func (h *History) Save(p Play) error {
	_, err := h.db.Exec("insert into plays(sum, title, version, score, hits, misses, played_at) values(?, ?, ?, ?, ?, ?, ?)",
		p.Checksum, p.Title, p.Version, p.Score, p.Hits, p.Misses, p.PlayedAt.UnixMilli())
	if nil != err {
		return fmt.Errorf("save play: %w", err)
	}
	return nil
}

// Load returns the plays of the chart with the given checksum, newest first.
func (h *History) Load(checksum string) ([]Play, error) {
	rows, err := h.db.Query("select sum, title, version, score, hits, misses, played_at from plays where sum = ? order by played_at desc, id desc", checksum)
	if nil != err {
		return nil, fmt.Errorf("load plays: %w", err)
	}
	defer rows.Close()

	var plays []Play
	for rows.Next() {
		var p Play
		var at int64
		if err := rows.Scan(&p.Checksum, &p.Title, &p.Version, &p.Score, &p.Hits, &p.Misses, &at); nil != err {
			return nil, err
		}
		p.PlayedAt = time.UnixMilli(at)
		plays = append(plays, p)
	}
	return plays, rows.Err()
}

func history(w io.Writer, chart string) error {
	b, err := dotosu.DecodeFile(chart)
	if err != nil {
		return err
	}
	h, err := OpenHistory(*dbPath)
	if err != nil {
		return err
	}
	defer h.Close()

	plays, err := h.Load(b.Checksum)
	if err != nil {
		return err
	}
	if len(plays) == 0 {
		fmt.Fprintf(w, "no plays of %s [%s]\n", b.Metadata.Title, b.Metadata.Version)
		return nil
	}

	fmt.Fprintf(w, "%s [%s], %d plays\n", b.Metadata.Title, b.Metadata.Version, len(plays))
	for _, p := range plays {
		fmt.Fprintf(w, "  %s  %7d  %4d/%-4d  %6.2f%%\n",
			p.PlayedAt.Format("2006-01-02 15:04"), p.Score, p.Hits, p.Hits+p.Misses, 100*p.Accuracy())
	}
	return nil
}
