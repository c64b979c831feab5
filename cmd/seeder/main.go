// Command seeder bulk-loads demo customers and accounts into PostgreSQL.
package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"time"

	"github.com/benx421/account-ledger/internal/config"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const accountNumberDigits = 11

func main() {
	customers := flag.Int("customers", 100, "number of customers to create")
	accountsPer := flag.Int("accounts", 2, "accounts per customer")
	balanceCents := flag.Int64("balance-cents", 100000, "opening balance of every account, in cents")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := cfg.Logger.NewLogger()

	if err := run(context.Background(), cfg, logger, *customers, *accountsPer, *balanceCents); err != nil {
		logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, customers, accountsPer int, balanceCents int64) error {
	conn, err := pgx.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}
	defer conn.Close(ctx)

	var existing int
	if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM customers").Scan(&existing); err != nil {
		return fmt.Errorf("failed to count customers: %w", err)
	}
	if existing >= customers {
		logger.Info("database already seeded, skipping", "customers", existing)
		return nil
	}

	customerRows, accountRows, err := buildRows(customers-existing, accountsPer, balanceCents, time.Now().UTC())
	if err != nil {
		return err
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	customerCount, err := tx.CopyFrom(ctx,
		pgx.Identifier{"customers"},
		[]string{"id", "name", "email", "date_of_birth", "created_at"},
		pgx.CopyFromRows(customerRows),
	)
	if err != nil {
		return fmt.Errorf("bulk insert of customers failed: %w", err)
	}

	accountCount, err := tx.CopyFrom(ctx,
		pgx.Identifier{"accounts"},
		[]string{"id", "customer_id", "account_number", "balance", "created_at"},
		pgx.CopyFromRows(accountRows),
	)
	if err != nil {
		return fmt.Errorf("bulk insert of accounts failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("database seeded", "customers", customerCount, "accounts", accountCount)
	return nil
}

func buildRows(customers, accountsPer int, balanceCents int64, now time.Time) ([][]any, [][]any, error) {
	customerRows := make([][]any, 0, customers)
	accountRows := make([][]any, 0, customers*accountsPer)
	seen := make(map[string]struct{}, customers*accountsPer)

	balance := pgtype.Numeric{Int: big.NewInt(balanceCents), Exp: -2, Valid: true}
	dob := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)

	for i := range customers {
		customerID := uuid.New()
		customerRows = append(customerRows, []any{
			customerID,
			fmt.Sprintf("Seed Customer %d", i+1),
			fmt.Sprintf("seed%d@example.com", i+1),
			dob.AddDate(0, 0, i),
			now,
		})

		for range accountsPer {
			number, err := uniqueAccountNumber(seen)
			if err != nil {
				return nil, nil, err
			}
			accountRows = append(accountRows, []any{uuid.New(), customerID, number, balance, now})
		}
	}

	return customerRows, accountRows, nil
}

// uniqueAccountNumber avoids collisions within the batch; collisions with
// existing rows fail the copy and the whole batch is rolled back.
func uniqueAccountNumber(seen map[string]struct{}) (string, error) {
	lower := new(big.Int).Exp(big.NewInt(10), big.NewInt(accountNumberDigits-1), nil)
	span := new(big.Int).Sub(new(big.Int).Mul(lower, big.NewInt(10)), lower)

	for {
		n, err := rand.Int(rand.Reader, span)
		if err != nil {
			return "", fmt.Errorf("failed to generate account number: %w", err)
		}
		number := n.Add(n, lower).String()
		if _, dup := seen[number]; !dup {
			seen[number] = struct{}{}
			return number, nil
		}
	}
}
