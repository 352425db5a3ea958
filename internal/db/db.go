package db

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
)

var Conn *pgxpool.Pool

// Init connects to Postgres
func Init() {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
	)

	var err error
	Conn, err = pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}

	if err = Conn.Ping(context.Background()); err != nil {
		log.Fatalf("Unable to ping database: %v\n", err)
	}

	log.Println("Connected to Postgres successfully")

	// Ensure core tables exist before serving traffic
	ensureUsersTable()
	ensureCouponsTable()
	ensureTransactionsTable()
	ensureNotificationsTable()
}

// ensureNotificationsTable creates the in-app notifications table
func ensureNotificationsTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS notifications (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id TEXT NOT NULL,
			type TEXT NOT NULL,
			title TEXT NOT NULL,
			body TEXT,
			reference TEXT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			read_at TIMESTAMP WITH TIME ZONE NULL
		);
		CREATE INDEX IF NOT EXISTS idx_notifications_user_created ON notifications(user_id, created_at);
		CREATE INDEX IF NOT EXISTS idx_notifications_user_unread ON notifications(user_id) WHERE read_at IS NULL;
	`)
	if err != nil {
		log.Printf("failed to create notifications table: %v", err)
	}
}

// ensureUsersTable creates the users table with auth and profile columns
func ensureUsersTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user','admin')),
			is_active BOOLEAN DEFAULT TRUE,
			name TEXT DEFAULT '',
			gender TEXT DEFAULT '',
			age TEXT DEFAULT '',
			phone TEXT DEFAULT '',
			address TEXT DEFAULT '',
			dob TEXT DEFAULT '',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		log.Printf("failed to create users table: %v", err)
		return
	}
	// Older deployments predate the profile columns
	_, err = Conn.Exec(ctx, `
		ALTER TABLE users ADD COLUMN IF NOT EXISTS gender TEXT DEFAULT '';
		ALTER TABLE users ADD COLUMN IF NOT EXISTS age TEXT DEFAULT '';
		ALTER TABLE users ADD COLUMN IF NOT EXISTS phone TEXT DEFAULT '';
		ALTER TABLE users ADD COLUMN IF NOT EXISTS address TEXT DEFAULT '';
		ALTER TABLE users ADD COLUMN IF NOT EXISTS dob TEXT DEFAULT '';
		ALTER TABLE users ADD COLUMN IF NOT EXISTS is_active BOOLEAN DEFAULT TRUE;
	`)
	if err != nil {
		log.Printf("failed to ensure users profile columns: %v", err)
	}
}

// ensureCouponsTable creates the listings table used by discovery and the
// transfer operation
func ensureCouponsTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS coupons (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			user_email TEXT,
			name TEXT,
			value NUMERIC,
			details TEXT,
			category TEXT,
			expiry_date TIMESTAMP WITH TIME ZONE NOT NULL,
			type TEXT NOT NULL DEFAULT 'sell',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_coupons_type_expiry ON coupons(type, expiry_date);
		CREATE INDEX IF NOT EXISTS idx_coupons_user ON coupons(user_id);
	`)
	if err != nil {
		log.Printf("failed to create coupons table: %v", err)
	}
}

// ensureTransactionsTable creates the purchase ledger. The primary key is
// the buyerID_couponID idempotency key, so a retried purchase overwrites
// instead of duplicating.
func ensureTransactionsTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			coupon_id TEXT NOT NULL,
			coupon_name TEXT NOT NULL,
			coupon_value NUMERIC NOT NULL,
			buyer_id TEXT NOT NULL,
			buyer_email TEXT NOT NULL,
			seller_id TEXT NOT NULL,
			seller_email TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT 'buy',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_transactions_buyer ON transactions(buyer_id, created_at);
		CREATE INDEX IF NOT EXISTS idx_transactions_seller ON transactions(seller_id, created_at);
	`)
	if err != nil {
		log.Printf("failed to create transactions table: %v", err)
	}
}
