package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/alienbank/bank-backend/internal/adapter/http"
	"github.com/alienbank/bank-backend/internal/adapter/repository/postgres"
	"github.com/alienbank/bank-backend/internal/auth"
	"github.com/alienbank/bank-backend/internal/config"
	"github.com/alienbank/bank-backend/internal/usecase/account"
	"github.com/alienbank/bank-backend/internal/usecase/admin"
	"github.com/alienbank/bank-backend/internal/usecase/application"
	authusecase "github.com/alienbank/bank-backend/internal/usecase/auth"
	"github.com/alienbank/bank-backend/internal/usecase/creditcard"
	"github.com/alienbank/bank-backend/internal/usecase/loan"
	"github.com/alienbank/bank-backend/internal/usecase/password"
	"github.com/alienbank/bank-backend/internal/usecase/seeder"
	"github.com/alienbank/bank-backend/internal/usecase/transaction"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 1. Setup Database
	db, err := postgres.NewDB(cfg.DBConnStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// 2. Initialize Repositories (Postgres)
	userRepo := postgres.NewUserRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	cardApplicationRepo := postgres.NewCardApplicationRepository(db)
	loanApplicationRepo := postgres.NewLoanApplicationRepository(db)
	loanRepo := postgres.NewLoanRepository(db)
	resetRepo := postgres.NewPasswordResetRepository(db)

	// 3. Initialize Services (Use Cases)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := authusecase.NewAuthService(userRepo, tokens)
	accountService := account.NewAccountService(accountRepo)
	transactionService := transaction.NewTransactionService(accountRepo, transactionRepo)
	applicationService := application.NewCardApplicationService(cardApplicationRepo, accountRepo)
	creditCardService := creditcard.NewCreditCardService(accountRepo, transactionRepo)
	loanService := loan.NewLoanService(loanApplicationRepo, loanRepo)
	adminService := admin.NewAdminService(userRepo, accountRepo, transactionRepo)
	passwordService := password.NewPasswordService(accountRepo, userRepo, resetRepo)
	passwordService.DeliverCode = func(phone, code string) {
		// SMS delivery is not wired; operators read the code from the
		// server log during development.
		log.Printf("Verification code for %s: %s", phone, code)
	}

	// Ensure the administrator account exists
	ctx := context.Background()
	if cfg.AdminPassword != "" {
		adminSeeder := seeder.NewAdminSeeder(userRepo, cfg.AdminEmail, cfg.AdminPassword)
		if err := adminSeeder.Seed(ctx); err != nil {
			log.Fatalf("Failed to seed admin user: %v", err)
		}
		log.Printf("Admin user %s ready", cfg.AdminEmail)
	} else {
		log.Println("ADMIN_PASSWORD not set, skipping admin seeding")
	}

	// 4. Background maintenance loop
	maintenanceCtx, stopMaintenance := context.WithCancel(ctx)
	defer stopMaintenance()
	go runMaintenance(maintenanceCtx, cfg.MaintenanceInterval, creditCardService, passwordService)

	// 5. Start HTTP server
	router := httpadapter.NewRouter(httpadapter.Handlers{
		Auth:         &httpadapter.AuthHandler{Auth: authService},
		Accounts:     &httpadapter.AccountHandler{Accounts: accountService},
		Transactions: &httpadapter.TransactionHandler{Transactions: transactionService},
		Applications: &httpadapter.ApplicationHandler{Applications: applicationService},
		CreditCards:  &httpadapter.CreditCardHandler{CreditCards: creditCardService},
		Loans:        &httpadapter.LoanHandler{Loans: loanService},
		Admin:        &httpadapter.AdminHandler{Admin: adminService},
		Passwords:    &httpadapter.PasswordHandler{Passwords: passwordService},
	}, tokens)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	waitForShutdown(server, stopMaintenance)
}

// runMaintenance freezes overdue credit cards, applies monthly
// interest on the first day of each month and purges expired
// password-reset requests, on every tick until ctx is cancelled.
func runMaintenance(ctx context.Context, interval time.Duration, creditCards *creditcard.CreditCardService, passwords *password.PasswordService) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastInterestMonth time.Month

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if frozen, err := creditCards.FreezeOverdueCards(ctx); err != nil {
			log.Printf("Maintenance: freezing overdue cards failed: %v", err)
		} else if frozen > 0 {
			log.Printf("Maintenance: froze %d overdue credit cards", frozen)
		}

		if now := time.Now(); now.Day() == 1 && now.Month() != lastInterestMonth {
			if err := creditCards.ApplyMonthlyInterest(ctx); err != nil {
				log.Printf("Maintenance: applying monthly interest failed: %v", err)
			} else {
				lastInterestMonth = now.Month()
				log.Println("Maintenance: monthly credit card interest applied")
			}
		}

		if err := passwords.CleanExpired(ctx); err != nil {
			log.Printf("Maintenance: cleaning expired reset requests failed: %v", err)
		}
	}
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(server *http.Server, stopMaintenance context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Printf("Received signal: %v. Shutting down gracefully...", sig)

	stopMaintenance()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	log.Println("HTTP server stopped")
}
