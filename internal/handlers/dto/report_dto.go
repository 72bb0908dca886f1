package dto

import (
	"time"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/services"
)

type MonthlySummaryResponse struct {
	Ano      int    `json:"ano"`
	Mes      int    `json:"mes"`
	Receitas string `json:"receitas"`
	Despesas string `json:"despesas"`
}

type CategoryTotalResponse struct {
	CategoriaID uint   `json:"categoria_id"`
	Nome        string `json:"nome"`
	Cor         string `json:"cor"`
	Icone       string `json:"icone"`
	Total       string `json:"total"`
}

type DashboardResponse struct {
	Carteira             WalletResponse           `json:"carteira"`
	Saldo                string                   `json:"saldo"`
	TotalReceitas        string                   `json:"total_receitas"`
	TotalDespesas        string                   `json:"total_despesas"`
	ResumoMensal         []MonthlySummaryResponse `json:"resumo_mensal"`
	DespesasPorCategoria []CategoryTotalResponse  `json:"despesas_por_categoria"`
}

func ToDashboardResponse(d *services.Dashboard) DashboardResponse {
	monthly := make([]MonthlySummaryResponse, len(d.MonthlySummary))
	for i, m := range d.MonthlySummary {
		monthly[i] = MonthlySummaryResponse{
			Ano:      m.Year,
			Mes:      m.Month,
			Receitas: m.Income.String(),
			Despesas: m.Expense.String(),
		}
	}

	return DashboardResponse{
		Carteira:             ToWalletResponse(d.Wallet, d.Balance),
		Saldo:                d.Balance.String(),
		TotalReceitas:        d.Totals.Income.String(),
		TotalDespesas:        d.Totals.Expense.String(),
		ResumoMensal:         monthly,
		DespesasPorCategoria: ToCategoryTotalResponses(d.ExpensesByCategory),
	}
}

func ToCategoryTotalResponses(totals []entities.CategoryTotal) []CategoryTotalResponse {
	responses := make([]CategoryTotalResponse, len(totals))
	for i, t := range totals {
		responses[i] = CategoryTotalResponse{
			CategoriaID: t.CategoryID,
			Nome:        t.Name,
			Cor:         t.Color,
			Icone:       t.Icon,
			Total:       t.Total.String(),
		}
	}
	return responses
}

// StatementRequest delimita o período do extrato
type StatementRequest struct {
	DataInicio string `json:"data_inicio"`
	DataFim    string `json:"data_fim"`
}

type StatementResponse struct {
	Arquivo  string    `json:"arquivo"`
	URL      string    `json:"url"`
	Linhas   int       `json:"linhas"`
	GeradoEm time.Time `json:"gerado_em"`
}

func ToStatementResponse(file *services.StatementFile, url string) StatementResponse {
	return StatementResponse{
		Arquivo:  file.Name,
		URL:      url,
		Linhas:   file.Lines,
		GeradoEm: file.GeneratedAt,
	}
}
