package main

import (
	"database/sql"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
}

// AccountRow represents a registered player account
type AccountRow struct {
	ID        int64
	Username  string
	PassHash  string
	CreatedAt time.Time
}

// DuelResultPlayer is one participant's line in a finished duel
type DuelResultPlayer struct {
	PlayerID  string
	AccountID int64 // 0 = guest
	Name      string
	Wins      int // rounds won
	Won       bool
}

// DuelResult is a completed best-of-N duel
type DuelResult struct {
	ID       string // uuid
	Winner   string // in-game player id
	Rounds   int
	Duration float64 // seconds
	Players  []DuelResultPlayer
}

// GameRow is a recent-games listing entry
type GameRow struct {
	ID        string    `json:"id"`
	Winner    string    `json:"winner"`
	Rounds    int       `json:"rounds"`
	Duration  float64   `json:"duration"`
	CreatedAt time.Time `json:"created_at"`
}

// LeaderboardEntry represents one row in the leaderboard
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	Username   string  `json:"username"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	WinRate    float64 `json:"win_rate"`
	TotalGames int     `json:"total_games"`
}

// OpenDB opens (or creates) the SQLite database
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL mode for better concurrency
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies the connection for health checks.
func (db *DB) Ping() error {
	return db.conn.Ping()
}

// migrate creates tables if they don't exist
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS accounts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		pass_hash TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS stats (
		account_id INTEGER PRIMARY KEY REFERENCES accounts(id),
		wins INTEGER NOT NULL DEFAULT 0,
		losses INTEGER NOT NULL DEFAULT 0,
		rounds_played INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS duels (
		id TEXT PRIMARY KEY,
		winner_name TEXT NOT NULL DEFAULT '',
		rounds INTEGER NOT NULL DEFAULT 0,
		duration REAL NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS duel_players (
		duel_id TEXT NOT NULL REFERENCES duels(id),
		account_id INTEGER NOT NULL DEFAULT 0,
		name TEXT NOT NULL,
		round_wins INTEGER NOT NULL DEFAULT 0,
		won INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (duel_id, name)
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_duel_players_account ON duel_players(account_id);
	CREATE INDEX IF NOT EXISTS idx_accounts_username ON accounts(username);
	`
	_, err := db.conn.Exec(schema)
	if err != nil {
		log.Printf("DB migration error: %v", err)
	}
	return err
}

// CreateAccount creates a new account (returns account ID)
func (db *DB) CreateAccount(username, passHash string) (int64, error) {
	res, err := db.conn.Exec(
		"INSERT INTO accounts (username, pass_hash) VALUES (?, ?)",
		username, passHash,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	_, err = db.conn.Exec("INSERT INTO stats (account_id) VALUES (?)", id)
	return id, err
}

// GetAccountByUsername returns an account by username, nil if absent
func (db *DB) GetAccountByUsername(username string) (*AccountRow, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, pass_hash, created_at FROM accounts WHERE username = ?",
		username,
	)
	a := &AccountRow{}
	err := row.Scan(&a.ID, &a.Username, &a.PassHash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

// UsernameExists checks if a username is taken
func (db *DB) UsernameExists(username string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM accounts WHERE username = ?", username).Scan(&count)
	return count > 0, err
}

// GetSetting reads a settings value; "" when absent
func (db *DB) GetSetting(key string) string {
	var v string
	err := db.conn.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&v)
	if err != nil {
		return ""
	}
	return v
}

// SetSetting upserts a settings value
func (db *DB) SetSetting(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

// RecordDuel persists a finished duel and updates each authenticated
// participant's stats.
func (db *DB) RecordDuel(res DuelResult) error {
	winnerName := ""
	for _, p := range res.Players {
		if p.Won {
			winnerName = p.Name
		}
	}

	_, err := db.conn.Exec(
		"INSERT INTO duels (id, winner_name, rounds, duration) VALUES (?, ?, ?, ?)",
		res.ID, winnerName, res.Rounds, res.Duration,
	)
	if err != nil {
		return err
	}

	for _, p := range res.Players {
		won := 0
		if p.Won {
			won = 1
		}
		if _, err := db.conn.Exec(
			"INSERT INTO duel_players (duel_id, account_id, name, round_wins, won) VALUES (?, ?, ?, ?, ?)",
			res.ID, p.AccountID, p.Name, p.Wins, won,
		); err != nil {
			return err
		}
		if p.AccountID == 0 {
			continue
		}
		winInc, lossInc := 0, 1
		if p.Won {
			winInc, lossInc = 1, 0
		}
		if _, err := db.conn.Exec(
			"UPDATE stats SET wins = wins + ?, losses = losses + ?, rounds_played = rounds_played + ? WHERE account_id = ?",
			winInc, lossInc, res.Rounds, p.AccountID,
		); err != nil {
			return err
		}
	}
	return nil
}

// GetLeaderboard returns the top players by wins, then win rate. Guests
// never get an accounts row, so the join already excludes them.
func (db *DB) GetLeaderboard(limit int) ([]LeaderboardEntry, error) {
	rows, err := db.conn.Query(`
		SELECT a.username, s.wins, s.losses
		FROM stats s JOIN accounts a ON a.id = s.account_id
		ORDER BY s.wins DESC,
			CASE WHEN s.wins + s.losses > 0
				THEN CAST(s.wins AS REAL) / (s.wins + s.losses)
				ELSE 0 END DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.Username, &e.Wins, &e.Losses); err != nil {
			return nil, err
		}
		e.TotalGames = e.Wins + e.Losses
		if e.TotalGames > 0 {
			e.WinRate = float64(e.Wins) / float64(e.TotalGames) * 100
		}
		e.Rank = rank
		rank++
		result = append(result, e)
	}
	return result, rows.Err()
}

// GetRecentGames returns the latest completed duels, newest first.
func (db *DB) GetRecentGames(limit int) ([]GameRow, error) {
	rows, err := db.conn.Query(`
		SELECT id, winner_name, rounds, duration, created_at
		FROM duels ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []GameRow
	for rows.Next() {
		var g GameRow
		if err := rows.Scan(&g.ID, &g.Winner, &g.Rounds, &g.Duration, &g.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	return result, rows.Err()
}
