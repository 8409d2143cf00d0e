package http

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alienbank/bank-backend/internal/domain"
	"github.com/alienbank/bank-backend/internal/usecase/admin"
	"github.com/alienbank/bank-backend/internal/usecase/transaction"
)

// AccountView is an owner's view of their account. The PIN is never
// serialized; the CVV is, because the owner needs it to spend.
type AccountView struct {
	ID                 uuid.UUID  `json:"id"`
	CardNumber         string     `json:"card_number"`
	Balance            float64    `json:"balance"`
	IsActive           bool       `json:"is_active"`
	CardType           string     `json:"card_type"`
	CVV                string     `json:"cvv,omitempty"`
	CreditLimit        float64    `json:"credit_limit,omitempty"`
	AvailableCredit    float64    `json:"available_credit,omitempty"`
	OutstandingBalance float64    `json:"outstanding_balance,omitempty"`
	LastPaymentDate    *time.Time `json:"last_payment_date,omitempty"`
}

func accountView(a *domain.Account) AccountView {
	view := AccountView{
		ID:         a.ID,
		CardNumber: a.CardNumber,
		Balance:    a.Balance.InexactFloat64(),
		IsActive:   a.IsActive,
		CardType:   string(a.CardType),
	}
	if a.CardType == domain.CardTypeCredit {
		view.CVV = a.CVV
		view.CreditLimit = a.CreditLimit.InexactFloat64()
		view.AvailableCredit = a.AvailableCredit.InexactFloat64()
		view.OutstandingBalance = a.OutstandingBalance.InexactFloat64()
		view.LastPaymentDate = a.LastPaymentDate
	}
	return view
}

func accountViews(accounts []*domain.Account) []AccountView {
	views := make([]AccountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, accountView(a))
	}
	return views
}

// TransactionView is a ledger row shaped for history tables
type TransactionView struct {
	ID           uuid.UUID `json:"id"`
	AccountID    uuid.UUID `json:"account_id"`
	CardNumber   string    `json:"card_number,omitempty"`
	Type         string    `json:"type"`
	Amount       float64   `json:"amount"`
	Notes        string    `json:"notes"`
	Timestamp    time.Time `json:"timestamp"`
	BalanceAfter float64   `json:"balance_after"`
}

func transactionView(t *domain.Transaction) TransactionView {
	return TransactionView{
		ID:           t.ID,
		AccountID:    t.AccountID,
		Type:         string(t.Type),
		Amount:       t.Amount.InexactFloat64(),
		Notes:        t.Notes,
		Timestamp:    t.Timestamp,
		BalanceAfter: t.BalanceAfter.InexactFloat64(),
	}
}

func historyViews(entries []transaction.HistoryEntry) []TransactionView {
	views := make([]TransactionView, 0, len(entries))
	for _, e := range entries {
		view := transactionView(e.Transaction)
		view.CardNumber = domain.MaskCardNumber(e.CardNumber)
		views = append(views, view)
	}
	return views
}

// TransferView is the authoritative transfer result returned to the
// client; card numbers arrive pre-masked
type TransferView struct {
	TransferID       uuid.UUID `json:"transfer_id"`
	FromCardNumber   string    `json:"from_card_number"`
	ToCardNumber     string    `json:"to_card_number"`
	Amount           float64   `json:"amount"`
	TransferFee      float64   `json:"transfer_fee"`
	FromBalanceAfter float64   `json:"from_balance_after"`
	Notes            string    `json:"notes,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

func transferView(o *domain.TransferOutcome) TransferView {
	return TransferView{
		TransferID:       o.TransferID,
		FromCardNumber:   o.FromCardNumber,
		ToCardNumber:     o.ToCardNumber,
		Amount:           o.Amount.InexactFloat64(),
		TransferFee:      o.Fee.InexactFloat64(),
		FromBalanceAfter: o.FromBalanceAfter.InexactFloat64(),
		Notes:            o.Notes,
		Timestamp:        o.Timestamp,
	}
}

// CardApplicationView is an application record shaped for both the
// applicant and the admin console
type CardApplicationView struct {
	ID                   uuid.UUID  `json:"id"`
	UserID               uuid.UUID  `json:"user_id"`
	CardType             string     `json:"card_type"`
	RequestedCreditLimit *float64   `json:"requested_credit_limit,omitempty"`
	ApplicationReason    string     `json:"application_reason"`
	Status               string     `json:"status"`
	ApplicationDate      time.Time  `json:"application_date"`
	ProcessedDate        *time.Time `json:"processed_date,omitempty"`
	AdminNotes           string     `json:"admin_notes,omitempty"`
	GeneratedCardNumber  string     `json:"generated_card_number,omitempty"`
}

func cardApplicationView(a *domain.CardApplication) CardApplicationView {
	view := CardApplicationView{
		ID:                  a.ID,
		UserID:              a.UserID,
		CardType:            string(a.CardType),
		ApplicationReason:   a.ApplicationReason,
		Status:              string(a.Status),
		ApplicationDate:     a.ApplicationDate,
		ProcessedDate:       a.ProcessedDate,
		AdminNotes:          a.AdminNotes,
		GeneratedCardNumber: a.GeneratedCardNumber,
	}
	if a.RequestedCreditLimit != nil {
		f := a.RequestedCreditLimit.InexactFloat64()
		view.RequestedCreditLimit = &f
	}
	return view
}

func cardApplicationViews(apps []*domain.CardApplication) []CardApplicationView {
	views := make([]CardApplicationView, 0, len(apps))
	for _, a := range apps {
		views = append(views, cardApplicationView(a))
	}
	return views
}

// LoanApplicationView is a loan application shaped for display
type LoanApplicationView struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	RequestedAmount float64    `json:"requested_amount"`
	LoanTermMonths  int        `json:"loan_term_months"`
	LoanPurpose     string     `json:"loan_purpose"`
	MonthlyIncome   float64    `json:"monthly_income"`
	ExistingDebt    float64    `json:"existing_debt"`
	CreditScore     float64    `json:"credit_score"`
	ApprovedAmount  *float64   `json:"approved_amount,omitempty"`
	MonthlyPayment  *float64   `json:"monthly_payment,omitempty"`
	InterestRate    *float64   `json:"interest_rate,omitempty"`
	Status          string     `json:"status"`
	ApplicationDate time.Time  `json:"application_date"`
	ProcessedDate   *time.Time `json:"processed_date,omitempty"`
	AdminNotes      string     `json:"admin_notes,omitempty"`
}

func loanApplicationView(a *domain.LoanApplication) LoanApplicationView {
	view := LoanApplicationView{
		ID:              a.ID,
		UserID:          a.UserID,
		RequestedAmount: a.RequestedAmount.InexactFloat64(),
		LoanTermMonths:  a.LoanTermMonths,
		LoanPurpose:     a.LoanPurpose,
		MonthlyIncome:   a.MonthlyIncome.InexactFloat64(),
		ExistingDebt:    a.ExistingDebt.InexactFloat64(),
		CreditScore:     a.CreditScore.InexactFloat64(),
		Status:          string(a.Status),
		ApplicationDate: a.ApplicationDate,
		ProcessedDate:   a.ProcessedDate,
		AdminNotes:      a.AdminNotes,
	}
	view.ApprovedAmount = floatPtr(a.ApprovedAmount)
	view.MonthlyPayment = floatPtr(a.MonthlyPayment)
	view.InterestRate = floatPtr(a.InterestRate)
	return view
}

func loanApplicationViews(apps []*domain.LoanApplication) []LoanApplicationView {
	views := make([]LoanApplicationView, 0, len(apps))
	for _, a := range apps {
		views = append(views, loanApplicationView(a))
	}
	return views
}

// LoanView is an active loan shaped for display
type LoanView struct {
	ID                 uuid.UUID  `json:"id"`
	PrincipalAmount    float64    `json:"principal_amount"`
	OutstandingBalance float64    `json:"outstanding_balance"`
	MonthlyPayment     float64    `json:"monthly_payment"`
	InterestRate       float64    `json:"interest_rate"`
	TotalTermMonths    int        `json:"total_term_months"`
	RemainingTerms     int        `json:"remaining_terms"`
	NextPaymentDate    *time.Time `json:"next_payment_date,omitempty"`
	LastPaymentDate    *time.Time `json:"last_payment_date,omitempty"`
	IsActive           bool       `json:"is_active"`
	CreatedDate        time.Time  `json:"created_date"`
}

func loanView(l *domain.Loan) LoanView {
	return LoanView{
		ID:                 l.ID,
		PrincipalAmount:    l.PrincipalAmount.InexactFloat64(),
		OutstandingBalance: l.OutstandingBalance.InexactFloat64(),
		MonthlyPayment:     l.MonthlyPayment.InexactFloat64(),
		InterestRate:       l.InterestRate.InexactFloat64(),
		TotalTermMonths:    l.TotalTermMonths,
		RemainingTerms:     l.RemainingTerms,
		NextPaymentDate:    l.NextPaymentDate,
		LastPaymentDate:    l.LastPaymentDate,
		IsActive:           l.IsActive,
		CreatedDate:        l.CreatedDate,
	}
}

func loanViews(loans []*domain.Loan) []LoanView {
	views := make([]LoanView, 0, len(loans))
	for _, l := range loans {
		views = append(views, loanView(l))
	}
	return views
}

// UserSummaryView is a user row in the admin console
type UserSummaryView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	AccountCount int       `json:"account_count"`
	TotalBalance float64   `json:"total_balance"`
}

func userSummaryViews(summaries []*admin.UserSummary) []UserSummaryView {
	views := make([]UserSummaryView, 0, len(summaries))
	for _, s := range summaries {
		views = append(views, UserSummaryView{
			ID:           s.ID,
			Name:         s.Name,
			Email:        s.Email,
			Phone:        domain.MaskPhone(s.Phone),
			Role:         string(s.Role),
			IsActive:     s.IsActive,
			AccountCount: s.AccountCount,
			TotalBalance: s.TotalBalance.InexactFloat64(),
		})
	}
	return views
}

// AccountSummaryView is an account row in the admin console. The card
// number is masked; admins do not need the full PAN.
type AccountSummaryView struct {
	ID               uuid.UUID `json:"id"`
	CardNumber       string    `json:"card_number"`
	CardType         string    `json:"card_type"`
	Balance          float64   `json:"balance"`
	IsActive         bool      `json:"is_active"`
	OwnerName        string    `json:"owner_name"`
	OwnerEmail       string    `json:"owner_email"`
	TransactionCount int       `json:"transaction_count"`
}

func accountSummaryViews(summaries []*admin.AccountSummary) []AccountSummaryView {
	views := make([]AccountSummaryView, 0, len(summaries))
	for _, s := range summaries {
		views = append(views, AccountSummaryView{
			ID:               s.ID,
			CardNumber:       domain.MaskCardNumber(s.CardNumber),
			CardType:         string(s.CardType),
			Balance:          s.Balance.InexactFloat64(),
			IsActive:         s.IsActive,
			OwnerName:        s.OwnerName,
			OwnerEmail:       s.OwnerEmail,
			TransactionCount: s.TransactionCount,
		})
	}
	return views
}

// StatisticsView is the admin dashboard snapshot
type StatisticsView struct {
	TotalUsers          int64   `json:"total_users"`
	ActiveUsers         int64   `json:"active_users"`
	TotalAccounts       int64   `json:"total_accounts"`
	ActiveAccounts      int64   `json:"active_accounts"`
	TotalTransactions   int64   `json:"total_transactions"`
	TotalBalance        float64 `json:"total_balance"`
	TodayTransactions   int64   `json:"today_transactions"`
	TodayVolume         float64 `json:"today_volume"`
	TodayTransferVolume float64 `json:"today_transfer_volume"`
	TodayFeeRevenue     float64 `json:"today_fee_revenue"`
}

func statisticsView(s *admin.Statistics) StatisticsView {
	return StatisticsView{
		TotalUsers:          s.TotalUsers,
		ActiveUsers:         s.ActiveUsers,
		TotalAccounts:       s.TotalAccounts,
		ActiveAccounts:      s.ActiveAccounts,
		TotalTransactions:   s.TotalTransactions,
		TotalBalance:        s.TotalBalance.InexactFloat64(),
		TodayTransactions:   s.TodayTransactions,
		TodayVolume:         s.TodayVolume.InexactFloat64(),
		TodayTransferVolume: s.TodayTransferVolume.InexactFloat64(),
		TodayFeeRevenue:     s.TodayFeeRevenue.InexactFloat64(),
	}
}

func floatPtr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}
