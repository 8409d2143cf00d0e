package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/alienbank/bank-backend/internal/auth"
)

// Handlers bundles every route handler the router mounts
type Handlers struct {
	Auth         *AuthHandler
	Accounts     *AccountHandler
	Transactions *TransactionHandler
	Applications *ApplicationHandler
	CreditCards  *CreditCardHandler
	Loans        *LoanHandler
	Admin        *AdminHandler
	Passwords    *PasswordHandler
}

// NewRouter builds the gin engine with all routes mounted. CORS is wide
// open because the browser client is served from a different origin.
func NewRouter(handlers Handlers, tokens *auth.TokenManager) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", handlers.Auth.Register)
		authGroup.POST("/login", handlers.Auth.Login)
	}

	authed := router.Group("/", RequireAuth(tokens))
	{
		authed.GET("/account", handlers.Accounts.List)

		tx := authed.Group("/transaction")
		{
			tx.POST("/deposit", handlers.Transactions.Deposit)
			tx.POST("/withdraw", handlers.Transactions.Withdraw)
			tx.POST("/transfer", handlers.Transactions.Transfer)
			tx.GET("/history", handlers.Transactions.History)
			tx.GET("/history/:accountId", handlers.Transactions.AccountHistory)
		}

		app := authed.Group("/application")
		{
			app.POST("/submit", handlers.Applications.Submit)
			app.GET("/my", handlers.Applications.ListMine)
			app.POST("/:id/process", RequireAdmin(), handlers.Applications.Process)
		}

		credit := authed.Group("/credit-card")
		{
			credit.POST("/payment", handlers.CreditCards.Payment)
			credit.POST("/spend", handlers.CreditCards.Spend)
		}

		loan := authed.Group("/loan")
		{
			loan.POST("/apply", handlers.Loans.Apply)
			loan.GET("/my", handlers.Loans.ListMine)
			loan.GET("/active", handlers.Loans.ActiveLoans)
			loan.POST("/:id/payment", handlers.Loans.Payment)
			loan.POST("/:id/process", RequireAdmin(), handlers.Loans.Process)
		}

		pw := authed.Group("/password")
		{
			pw.POST("/change", handlers.Passwords.Change)
			// Resetting a forgotten PIN still requires a session; the
			// code only proves control of the registered phone.
			pw.POST("/forgot/send-code", handlers.Passwords.SendCode)
			pw.POST("/forgot/verify", handlers.Passwords.Verify)
		}

		adminGroup := authed.Group("/admin", RequireAdmin())
		{
			adminGroup.GET("/users", handlers.Admin.ListUsers)
			adminGroup.GET("/accounts", handlers.Admin.ListAccounts)
			adminGroup.GET("/transactions", handlers.Admin.ListTransactions)
			adminGroup.GET("/statistics", handlers.Admin.Statistics)
			adminGroup.PUT("/users/:id/freeze", handlers.Admin.SetUserActive(false))
			adminGroup.PUT("/users/:id/unfreeze", handlers.Admin.SetUserActive(true))
			adminGroup.PUT("/accounts/:id/freeze", handlers.Admin.SetAccountActive(false))
			adminGroup.PUT("/accounts/:id/unfreeze", handlers.Admin.SetAccountActive(true))

			adminGroup.GET("/applications", handlers.Applications.ListAll)
			adminGroup.GET("/applications/pending", handlers.Applications.ListPending)

			adminGroup.GET("/loans", handlers.Loans.ListAll)
			adminGroup.GET("/loans/pending", handlers.Loans.ListPending)
		}
	}

	return router
}
