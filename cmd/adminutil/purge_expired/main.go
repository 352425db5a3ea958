package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/couponhub/couponhub/internal/db"
)

func main() {
	days := flag.Int("days", 0, "Only purge listings expired more than this many days ago")
	dryRun := flag.Bool("dry-run", false, "Count matching listings without deleting them")
	flag.Parse()

	if *days < 0 {
		log.Fatalf("-days must be zero or positive")
	}

	_ = godotenv.Load()
	db.Init()

	ctx := context.Background()

	if *dryRun {
		var n int64
		err := db.Conn.QueryRow(ctx,
			`SELECT COUNT(*) FROM coupons WHERE expiry_date < NOW() - make_interval(days => $1)`,
			*days,
		).Scan(&n)
		if err != nil {
			log.Fatalf("failed to count expired listings: %v", err)
		}
		fmt.Printf("%d expired listing(s) would be purged.\n", n)
		return
	}

	ct, err := db.Conn.Exec(ctx,
		`DELETE FROM coupons WHERE expiry_date < NOW() - make_interval(days => $1)`,
		*days,
	)
	if err != nil {
		log.Fatalf("failed to purge expired listings: %v", err)
	}

	fmt.Printf("Purged %d expired listing(s).\n", ct.RowsAffected())
}
