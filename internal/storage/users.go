package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrUserTaken = errors.New("username already exists")
)

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type AuditEntry struct {
	ID       int64          `json:"id"`
	TS       time.Time      `json:"ts"`
	Username string         `json:"username,omitempty"`
	Action   string         `json:"action"`
	Resource string         `json:"resource,omitempty"`
	Meta     map[string]any `json:"meta,omitempty"`
}

// ValidRole reports whether role is one the API understands.
func ValidRole(role string) bool { return role == RoleAdmin || role == RoleViewer }

func (db *DB) CreateUser(username, passHash, role string) (int64, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, errors.New("username required")
	}
	if !ValidRole(role) {
		return 0, fmt.Errorf("unknown role %q", role)
	}
	now := stamp(time.Now())
	res, err := db.conn.Exec(`INSERT INTO users(username, pass_hash, role, created_at) VALUES(?,?,?,?)`,
		username, passHash, role, now)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, fmt.Errorf("%w: %s", ErrUserTaken, username)
		}
		return 0, err
	}
	return res.LastInsertId()
}

// GetUserByUsername returns the user and its password hash.
func (db *DB) GetUserByUsername(username string) (User, string, error) {
	row := db.conn.QueryRow(`SELECT id, username, role, created_at, pass_hash FROM users WHERE username=?`, username)
	var u User
	var ph, created string
	if err := row.Scan(&u.ID, &u.Username, &u.Role, &created, &ph); err != nil {
		return User{}, "", notFound(err)
	}
	u.CreatedAt = parseTS(created)
	return u, ph, nil
}

func (db *DB) CreateSession(userID int64, token string, expires time.Time) error {
	now := stamp(time.Now())
	return execOne(db.conn, `INSERT INTO sessions(token, user_id, expires_at, created_at) VALUES(?,?,?,?)`,
		token, userID, stamp(expires), now)
}

// GetSession resolves an unexpired session token to its user.
func (db *DB) GetSession(token string) (User, error) {
	row := db.conn.QueryRow(`
SELECT u.id, u.username, u.role, u.created_at
FROM sessions s JOIN users u ON s.user_id=u.id
WHERE s.token=? AND s.expires_at > ?`, token, stamp(time.Now()))
	var u User
	var created string
	if err := row.Scan(&u.ID, &u.Username, &u.Role, &created); err != nil {
		return User{}, notFound(err)
	}
	u.CreatedAt = parseTS(created)
	return u, nil
}

func (db *DB) DeleteSession(token string) error {
	return execOne(db.conn, `DELETE FROM sessions WHERE token=?`, token)
}

// PurgeExpiredSessions drops sessions past their expiry and returns how many.
func (db *DB) PurgeExpiredSessions(now time.Time) (int64, error) {
	res, err := db.conn.Exec(`DELETE FROM sessions WHERE expires_at <= ?`, stamp(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (db *DB) LogAudit(username, action, resource string, meta map[string]any) error {
	b, _ := json.Marshal(meta)
	_, err := db.conn.Exec(`INSERT INTO audit(ts, username, action, resource, meta_json) VALUES(?,?,?,?,?)`,
		stamp(time.Now()), username, action, resource, string(b))
	return err
}

// ListAudit returns the newest entries first.
func (db *DB) ListAudit(limit int) ([]AuditEntry, error) {
	rows, err := db.conn.Query(`
SELECT id, ts, COALESCE(username,''), action, COALESCE(resource,''), COALESCE(meta_json,'')
FROM audit ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AuditEntry
	for rows.Next() {
		var e AuditEntry
		var ts, meta string
		if err := rows.Scan(&e.ID, &ts, &e.Username, &e.Action, &e.Resource, &meta); err != nil {
			return nil, err
		}
		e.TS = parseTS(ts)
		if meta != "" && meta != "null" {
			_ = json.Unmarshal([]byte(meta), &e.Meta)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func execOne(db *sql.DB, q string, args ...any) error {
	res, err := db.Exec(q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// tsLayout is fixed width so that SQLite's string comparison of stored
// timestamps agrees with time order.
const tsLayout = "2006-01-02T15:04:05.000000000Z07:00"

func stamp(t time.Time) string { return t.UTC().Format(tsLayout) }

func parseTS(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	return time.Time{}
}
