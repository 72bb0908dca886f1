package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	errs "errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/errors"
	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/domain/repositories"
	"github.com/rafabene/carteira-backend/internal/domain/valueobjects"
)

// ReportService monta o dashboard e exporta extratos
type ReportService struct {
	users        repositories.UserRepository
	wallets      *WalletService
	transactions repositories.TransactionRepository
	categories   repositories.CategoryRepository
	methods      repositories.PaymentMethodRepository
	ledger       *LedgerService
	renderer     ports.StatementRenderer
	store        ports.FileStore
	clock        ports.Clock
	logger       ports.Logger
}

// NewReportService cria um novo ReportService
func NewReportService(
	users repositories.UserRepository,
	wallets *WalletService,
	transactions repositories.TransactionRepository,
	categories repositories.CategoryRepository,
	methods repositories.PaymentMethodRepository,
	ledger *LedgerService,
	renderer ports.StatementRenderer,
	store ports.FileStore,
	clock ports.Clock,
	logger ports.Logger,
) *ReportService {
	if clock == nil {
		clock = ports.SystemClock
	}
	return &ReportService{
		users:        users,
		wallets:      wallets,
		transactions: transactions,
		categories:   categories,
		methods:      methods,
		ledger:       ledger,
		renderer:     renderer,
		store:        store,
		clock:        clock,
		logger:       logger.With("component", "reports"),
	}
}

// Dashboard agrega os números exibidos na tela inicial
type Dashboard struct {
	Wallet             *entities.Wallet
	Balance            valueobjects.Money
	Totals             entities.Totals
	MonthlySummary     []entities.MonthlySummary
	ExpensesByCategory []entities.CategoryTotal
}

// Dashboard usa as agregações tolerantes a falha: erros viram zero ou lista vazia
func (s *ReportService) Dashboard(ctx context.Context, userID uint) (*Dashboard, error) {
	wallet, err := s.wallets.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	totals := s.ledger.IncomeExpenseTotals(ctx, wallet.ID)
	return &Dashboard{
		Wallet:             wallet,
		Balance:            totals.Balance(),
		Totals:             totals,
		MonthlySummary:     s.ledger.MonthlySummary(ctx, wallet.ID),
		ExpensesByCategory: s.ledger.ExpensesByCategory(ctx, wallet.ID),
	}, nil
}

// StatementInput delimita o período do extrato; datas vazias não filtram
type StatementInput struct {
	From string
	To   string
}

// StatementFile identifica o arquivo gerado
type StatementFile struct {
	Name        string
	Lines       int
	GeneratedAt time.Time
}

func statementPrefix(userID uint) string {
	return "extrato_" + strconv.FormatUint(uint64(userID), 10) + "_"
}

// Statement exporta o extrato em arquivo. Qualquer falha de agregação aborta a exportação.
func (s *ReportService) Statement(ctx context.Context, userID uint, input StatementInput) (*StatementFile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	wallet, err := s.wallets.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	filters := repositories.TransactionFilters{WalletID: wallet.ID}
	statement := &entities.Statement{
		UserName:    user.Name,
		WalletName:  wallet.Name,
		GeneratedAt: s.clock().UTC(),
	}
	if input.From != "" {
		from, err := entities.ParseTransactionDate(input.From)
		if err != nil {
			return nil, errors.ErrInvalidTransactionDate
		}
		filters.From, statement.From = &from, &from
	}
	if input.To != "" {
		to, err := entities.ParseTransactionDate(input.To)
		if err != nil {
			return nil, errors.ErrInvalidTransactionDate
		}
		filters.To, statement.To = &to, &to
	}

	items, _, err := s.transactions.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	lines, err := s.lines(ctx, userID, items)
	if err != nil {
		return nil, err
	}
	statement.Lines = lines

	// O rodapé cobre o mesmo período das linhas
	totals, err := s.ledger.PeriodTotalsStrict(ctx, wallet.ID, filters.From, filters.To)
	if err != nil {
		return nil, err
	}
	statement.Totals = totals
	statement.Balance = totals.Balance()

	data, err := s.renderer.Render(statement)
	if err != nil {
		return nil, err
	}

	name := statementPrefix(userID) + timestampHash(statement.GeneratedAt) + s.renderer.Extension()
	if err := s.store.Save(ctx, name, data); err != nil {
		return nil, err
	}

	s.logger.Info("statement exported", "user_id", userID, "file", name, "lines", len(lines))
	return &StatementFile{Name: name, Lines: len(lines), GeneratedAt: statement.GeneratedAt}, nil
}

// lines resolve os nomes de categoria e forma de pagamento de cada transação
func (s *ReportService) lines(ctx context.Context, userID uint, items []*entities.Transaction) ([]entities.StatementLine, error) {
	categories, err := s.categories.ListVisible(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	categoryNames := make(map[uint]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	methods, err := s.methods.ListVisible(ctx, userID)
	if err != nil {
		return nil, err
	}
	methodNames := make(map[uint]string, len(methods))
	for _, m := range methods {
		methodNames[m.ID] = m.Name
	}

	lines := make([]entities.StatementLine, 0, len(items))
	for _, tx := range items {
		line := entities.StatementLine{
			Date:        tx.Date,
			Type:        tx.Type,
			Category:    categoryNames[tx.CategoryID],
			Description: tx.Description,
			Amount:      tx.Amount,
			Status:      tx.Status,
		}
		if tx.PaymentMethodID != nil {
			line.PaymentMethod = methodNames[*tx.PaymentMethodID]
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// timestampHash deriva um sufixo curto do instante de geração
func timestampHash(t time.Time) string {
	sum := sha256.Sum256([]byte(strconv.FormatInt(t.UnixNano(), 10)))
	return hex.EncodeToString(sum[:])[:12]
}

// Download resolve um arquivo exportado pelo próprio usuário
func (s *ReportService) Download(ctx context.Context, userID uint, name string) (string, error) {
	if !strings.HasPrefix(name, statementPrefix(userID)) {
		return "", errors.ErrFileNotFound
	}
	path, err := s.store.Path(name)
	if err != nil {
		if errs.Is(err, ports.ErrFileNotFound) {
			return "", errors.ErrFileNotFound
		}
		return "", fmt.Errorf("resolve report file: %w", err)
	}
	return path, nil
}
