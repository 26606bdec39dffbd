//go:build unit || e2e

package dbtest

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123", precomputed so fixtures stay cheap.
const TestPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

const TestPassword = "password123"

func CreateTestMember(t *testing.T, db DBLike, email, displayName, role string) uuid.UUID {
	t.Helper()

	memberID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO members (id, email, password_hash, display_name, role, is_active) VALUES ($1, $2, $3, $4, $5, true) ON CONFLICT (email) DO NOTHING",
		memberID, email, TestPasswordHash, displayName, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		err = db.QueryRow(ctx, "SELECT id FROM members WHERE email = $1", email).Scan(&memberID)
		require.NoError(t, err)
	}

	return memberID
}

func GrantCredits(t *testing.T, db DBLike, memberID uuid.UUID, tierMinutes, balance int) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"INSERT INTO credit_balances (member_id, tier_minutes, balance) VALUES ($1, $2, $3) ON CONFLICT (member_id, tier_minutes) DO UPDATE SET balance = $3",
		memberID, tierMinutes, balance)
	require.NoError(t, err)
}

func CreditBalance(t *testing.T, db DBLike, memberID uuid.UUID, tierMinutes int) int {
	t.Helper()

	var balance int
	err := db.QueryRow(context.Background(),
		"SELECT balance FROM credit_balances WHERE member_id = $1 AND tier_minutes = $2",
		memberID, tierMinutes).Scan(&balance)
	require.NoError(t, err)
	return balance
}

// CreateTestAvailability inserts one availability block with the given
// [start, end) minute segments.
func CreateTestAvailability(t *testing.T, db DBLike, trainerID uuid.UUID, day string, segments ...[2]int) uuid.UUID {
	t.Helper()

	blockID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO availability_blocks (id, trainer_id, day) VALUES ($1, $2, $3)",
		blockID, trainerID, day)
	require.NoError(t, err)

	for _, seg := range segments {
		_, err = db.Exec(ctx,
			"INSERT INTO availability_segments (id, block_id, start_minute, end_minute) VALUES ($1, $2, $3, $4)",
			uuid.New(), blockID, seg[0], seg[1])
		require.NoError(t, err)
	}

	return blockID
}

func CreateTestClass(t *testing.T, db DBLike, name, instructor, day string, startMinute, endMinute, capacity int) uuid.UUID {
	t.Helper()

	classID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO class_occurrences (id, name, instructor, capacity, booked_count, day, start_minute, end_minute) VALUES ($1, $2, $3, $4, 0, $5, $6, $7)",
		classID, name, instructor, capacity, day, startMinute, endMinute)
	require.NoError(t, err)
	return classID
}

// CreateTestBlackout inserts a blackout; pass uuid.Nil for trainerID to
// create a facility-wide one.
func CreateTestBlackout(t *testing.T, db DBLike, trainerID uuid.UUID, day string, startMinute, endMinute int) uuid.UUID {
	t.Helper()

	blackoutID := uuid.New()
	var scoped *uuid.UUID
	if trainerID != uuid.Nil {
		scoped = &trainerID
	}
	_, err := db.Exec(context.Background(),
		"INSERT INTO blackouts (id, description, trainer_id, day, start_minute, end_minute) VALUES ($1, 'maintenance', $2, $3, $4, $5)",
		blackoutID, scoped, day, startMinute, endMinute)
	require.NoError(t, err)
	return blackoutID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates every table in public so each subtest starts clean.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var buildErr error
	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			buildErr = err
			return
		}
		defer rows.Close()

		var tables []string
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				buildErr = err
				return
			}
			tables = append(tables, name)
		}
		if err := rows.Err(); err != nil {
			buildErr = err
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE")
	})
	if buildErr != nil {
		return buildErr
	}

	stmt, _ := truncateSQL.Load().(string)
	if stmt == "" {
		return nil
	}
	_, err := pool.Exec(ctx, stmt)
	return err
}
