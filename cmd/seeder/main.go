// Command seeder provisions seller accounts and phone targets in PostgreSQL.
// It runs once at system initialization, optionally grants each account an
// opening credit through an approved credit request, and prints bearer tokens
// for the created sellers and an administrator.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/SscSPs/recharge_backend/internal/core/domain"
	"github.com/SscSPs/recharge_backend/internal/core/services"
	"github.com/SscSPs/recharge_backend/internal/dto"
	"github.com/SscSPs/recharge_backend/internal/platform/config"
	"github.com/SscSPs/recharge_backend/internal/repositories/database/pgsql"
	"github.com/SscSPs/recharge_backend/internal/utils"
	"github.com/SscSPs/recharge_backend/pkg/database"
	"github.com/google/uuid"
)

func main() {
	accounts := flag.Int("accounts", 2, "number of seller accounts to create")
	phones := flag.String("phones", "09120000001,09120000002", "comma-separated phone numbers to register as targets")
	openingCredit := flag.Int64("opening-credit", 0, "credit granted to each new account, 0 to skip")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := run(context.Background(), *accounts, splitPhones(*phones), *openingCredit); err != nil {
		logger.Error("Seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, accountCount int, phones []string, openingCredit int64) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.StorageBackend != config.StorageBackendPostgres {
		return fmt.Errorf("seeding needs STORAGE_BACKEND=%s, got %q", config.StorageBackendPostgres, cfg.StorageBackend)
	}

	if cfg.RunMigrations {
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			return err
		}
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(dbPool)

	repos := pgsql.NewRepositoryProvider(dbPool, cfg.LockTimeout)
	container := services.NewServiceContainer(repos)
	admin := domain.SystemCaller()

	for _, phone := range phones {
		target, err := container.Provisioning.RegisterTarget(ctx, phone)
		if err != nil {
			return fmt.Errorf("register target %s: %w", phone, err)
		}
		fmt.Printf("target\t%s\t%s\n", target.TargetID, target.ExternalID)
	}

	for i := 0; i < accountCount; i++ {
		account, err := container.Provisioning.ProvisionAccount(ctx, "")
		if err != nil {
			return fmt.Errorf("provision account: %w", err)
		}

		seller := domain.Caller{
			UserID:       "seller-" + uuid.NewString(),
			AccountID:    account.AccountID,
			Capabilities: []domain.Capability{domain.CapabilityAccountOwner},
		}

		if openingCredit > 0 {
			req, err := container.CreditRequest.SubmitCreditRequest(ctx, seller, dto.SubmitCreditRequestRequest{
				ReferenceID: "opening-" + account.AccountID,
				AccountID:   account.AccountID,
				Amount:      openingCredit,
			})
			if err != nil {
				return fmt.Errorf("opening credit for %s: %w", account.AccountID, err)
			}
			if _, err := container.CreditRequest.ProcessCreditRequest(ctx, admin, req.RequestID, domain.DecisionApprove); err != nil {
				return fmt.Errorf("approve opening credit for %s: %w", account.AccountID, err)
			}
		}

		token, err := utils.GenerateJWT(seller, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		fmt.Printf("account\t%s\t%s\n", account.AccountID, token)
	}

	adminToken, err := utils.GenerateJWT(domain.Caller{
		UserID:       "admin",
		Capabilities: []domain.Capability{domain.CapabilityAdministrator},
	}, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)
	if err != nil {
		return fmt.Errorf("issue admin token: %w", err)
	}
	fmt.Printf("admin\t-\t%s\n", adminToken)
	return nil
}

func splitPhones(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
